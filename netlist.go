// Copyright 2026 The VTR-RRGraph-Core Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package vtrcore

// Open is the sentinel pin/subblock reference meaning "unconnected".
const Open = -1

// NetPin identifies one endpoint of a Net: the block that owns it and
// the pin index within that block (undefined — left at Open — for
// pads, which have a single physical pin).
type NetPin struct {
	Block  int
	BlkPin int
}

// Net is a single signal: pin 0 is the driver, pins 1..n-1 are sinks.
type Net struct {
	Name   string
	Pins   []NetPin
	Global bool
}

// Driver returns the net's unique driver endpoint.
func (n *Net) Driver() NetPin { return n.Pins[0] }

// Sinks returns the net's sink endpoints (pins[1:]).
func (n *Net) Sinks() []NetPin { return n.Pins[1:] }

// Subblock is one LUT+optional-FF atom inside a cluster. Inputs are
// ordered [0..lut_size-1]; Output and Clock use Open when unconnected.
// Each non-Open reference is either a cluster-pin index (0..P-1) or a
// "hidden" pin naming another subblock's output (P..P+max_subblocks-1);
// see PinRef for the decoded form used once hidden pins are resolved.
type Subblock struct {
	Name   string
	Inputs []int
	Output int
	Clock  int
}

// PinRef is a decoded reference into either the cluster's own pin space
// or another subblock's (hidden) output, replacing the raw
// offset-by-pins_per_clb encoding used on the wire (§9 design notes).
type PinRef struct {
	IsSubblockOutput bool
	Index            int // cluster pin index, or subblock index within the same cluster
}

// DecodePinRef turns a raw hidden-pin-space index into a PinRef.
func DecodePinRef(raw, pinsPerCLB int) PinRef {
	if raw < pinsPerCLB {
		return PinRef{IsSubblockOutput: false, Index: raw}
	}
	return PinRef{IsSubblockOutput: true, Index: raw - pinsPerCLB}
}

// Block is a placed netlist block: a logic cluster or a pad.
type Block struct {
	Name      string
	Kind      BlockKind
	Nets      []int // Nets[pin] = net index driving/sinking that pin, or Open
	Subblocks []Subblock
}

// Netlist is the placed, read-only design the core builds graphs over.
type Netlist struct {
	Blocks []Block
	Nets   []Net
}

// NetlistStats summarizes the per-cluster constant-generator and
// flip-flop counts produced during validation (§6: "Returns the
// per-cluster constant-generator and flip-flop counts").
type NetlistStats struct {
	ConstGenTotal int
	FFTotal       int
	PerBlockConstGen []int
	PerBlockFF       []int
}

// ValidateNetlist checks every invariant in §3 Netlist and returns the
// constant-generator/flip-flop bookkeeping required by §6. It fails
// fast on the first malformed-netlist or architectural violation; it
// records non-fatal warnings (constant generators, duplicate-sink-class
// pins) into warnings instead of failing.
//
// Grounded on VPR's check_netlist.c, which performs the same family of
// checks (driver uniqueness, name uniqueness, global-pin coherence,
// subblock well-formedness) in the same order.
func ValidateNetlist(arch *Architecture, nl *Netlist, warnings *WarningSet) (NetlistStats, error) {
	stats := NetlistStats{
		PerBlockConstGen: make([]int, len(nl.Blocks)),
		PerBlockFF:       make([]int, len(nl.Blocks)),
	}

	if err := checkUniqueBlockNames(nl); err != nil {
		return stats, err
	}
	if err := checkNetDrivers(arch, nl); err != nil {
		return stats, err
	}
	if err := checkGlobalCoherence(arch, nl); err != nil {
		return stats, err
	}
	if err := checkBlockPinCounts(arch, nl); err != nil {
		return stats, err
	}
	if err := validateSubblocks(arch, nl, warnings, &stats); err != nil {
		return stats, err
	}
	checkDuplicateSinkClasses(arch, nl, warnings)

	return stats, nil
}

func checkUniqueBlockNames(nl *Netlist) error {
	seen := make(map[string]int, len(nl.Blocks))
	for i, b := range nl.Blocks {
		if prev, ok := seen[b.Name]; ok {
			return Fatal(ErrMalformedNetlist, "duplicate block name", "name", b.Name, "block", i, "first_block", prev)
		}
		seen[b.Name] = i
	}
	return nil
}

// checkNetDrivers enforces: exactly one driver per net, a pin declared
// DRIVER may only be used as a net source, a RECEIVER pin may only be
// used as a sink, and a cluster pin is the driver of at most one net.
func checkNetDrivers(arch *Architecture, nl *Netlist) error {
	driverOfPin := make(map[[2]int]int) // (block,pin) -> net index it drives

	for ni, net := range nl.Nets {
		if len(net.Pins) == 0 {
			return Fatal(ErrMalformedNetlist, "net has no pins", "net", ni, "name", net.Name)
		}
		driver := net.Driver()
		blk := nl.Blocks[driver.Block]

		if blk.Kind == BlockLogicCluster {
			class, err := arch.PinClassOf(driver.BlkPin)
			if err != nil {
				return Wrap(ErrMalformedNetlist, "net driver references invalid pin", err, "net", ni)
			}
			kind, _ := arch.ClassKind(class)
			if kind != ClassDriver {
				return Fatal(ErrMalformedNetlist, "net driven by a RECEIVER-class pin", "net", ni, "block", driver.Block, "pin", driver.BlkPin)
			}
			key := [2]int{driver.Block, driver.BlkPin}
			if prev, ok := driverOfPin[key]; ok {
				return Fatal(ErrMalformedNetlist, "cluster pin drives more than one net", "block", driver.Block, "pin", driver.BlkPin, "net", ni, "other_net", prev)
			}
			driverOfPin[key] = ni
		}

		for si, sink := range net.Sinks() {
			sblk := nl.Blocks[sink.Block]
			if sblk.Kind != BlockLogicCluster {
				continue
			}
			class, err := arch.PinClassOf(sink.BlkPin)
			if err != nil {
				return Wrap(ErrMalformedNetlist, "net sink references invalid pin", err, "net", ni, "sink", si)
			}
			kind, _ := arch.ClassKind(class)
			if kind != ClassReceiver {
				return Fatal(ErrMalformedNetlist, "net sunk by a DRIVER-class pin", "net", ni, "block", sink.Block, "pin", sink.BlkPin)
			}
		}
	}
	return nil
}

// checkGlobalCoherence enforces: global nets only connect to global
// cluster pins, non-global nets only connect to non-global cluster
// pins. Pads are exempt (they have one undifferentiated physical pin).
func checkGlobalCoherence(arch *Architecture, nl *Netlist) error {
	for ni, net := range nl.Nets {
		for _, ep := range net.Pins {
			blk := nl.Blocks[ep.Block]
			if blk.Kind != BlockLogicCluster {
				continue
			}
			isGlobalPin := arch.IsGlobalPin(ep.BlkPin)
			if net.Global != isGlobalPin {
				return Fatal(ErrArchViolation, "global/non-global net touches mismatched pin", "net", ni, "net.Global", net.Global, "block", ep.Block, "pin", ep.BlkPin, "pin.Global", isGlobalPin)
			}
		}
	}
	return nil
}

// checkBlockPinCounts enforces: pads have exactly one pin; clusters
// have pins_per_clb pins and 1..max_subblocks subblocks; IO blocks have
// zero subblocks.
func checkBlockPinCounts(arch *Architecture, nl *Netlist) error {
	for bi, b := range nl.Blocks {
		switch b.Kind {
		case BlockLogicCluster:
			if len(b.Nets) != arch.PinsPerCLB {
				return Fatal(ErrMalformedNetlist, "cluster has wrong pin count", "block", bi, "name", b.Name, "got", len(b.Nets), "want", arch.PinsPerCLB)
			}
			if len(b.Subblocks) < 1 || len(b.Subblocks) > arch.MaxSubblocks {
				return Fatal(ErrMalformedNetlist, "cluster subblock count out of range", "block", bi, "name", b.Name, "got", len(b.Subblocks), "max", arch.MaxSubblocks)
			}
		case BlockInputPad, BlockOutputPad, BlockIO:
			if len(b.Nets) != 1 {
				return Fatal(ErrMalformedNetlist, "pad does not have exactly one pin", "block", bi, "name", b.Name, "got", len(b.Nets))
			}
			if len(b.Subblocks) != 0 {
				return Fatal(ErrMalformedNetlist, "pad has subblocks", "block", bi, "name", b.Name)
			}
		default:
			return Fatal(ErrArchViolation, "unknown block kind", "block", bi, "name", b.Name, "kind", int(b.Kind))
		}
	}
	return nil
}

// validateSubblocks enforces the constant-generator/clocked-constant-
// generator rule and accumulates the stats required by §6.
func validateSubblocks(arch *Architecture, nl *Netlist, warnings *WarningSet, stats *NetlistStats) error {
	for bi, b := range nl.Blocks {
		if b.Kind != BlockLogicCluster {
			continue
		}
		for si, sb := range b.Subblocks {
			if sb.Output == Open {
				continue // unused subblock: no constraint, no timing node
			}
			numInputs := 0
			for _, in := range sb.Inputs {
				if in != Open {
					numInputs++
				}
			}
			hasClock := sb.Clock != Open

			if numInputs == 0 && hasClock {
				return Fatal(ErrTimingContract, "clocked constant generator", "block", bi, "subblock", si, "name", sb.Name)
			}
			if numInputs == 0 && !hasClock {
				stats.ConstGenTotal++
				stats.PerBlockConstGen[bi]++
				if warnings != nil {
					warnings.Add(nil, "constant generator", "block", b.Name, "subblock", sb.Name)
				}
				continue
			}
			if hasClock {
				stats.FFTotal++
				stats.PerBlockFF[bi]++
			}
		}
	}
	return nil
}

// checkDuplicateSinkClasses warns when two sink pins of the same net
// land in the same logical-equivalence class at the same block — the
// sinks are then only distinguishable by routing, which the route
// checker's "logically-equivalent sinks may match in any order" policy
// already tolerates, but a repeat is usually a netlisting mistake.
// Grounded on VPR's check_netlist.c duplicate-pin-class diagnostic.
func checkDuplicateSinkClasses(arch *Architecture, nl *Netlist, warnings *WarningSet) {
	if warnings == nil {
		return
	}
	type key struct {
		block, class int
	}
	for _, net := range nl.Nets {
		seen := make(map[key]int)
		for _, sink := range net.Sinks() {
			blk := nl.Blocks[sink.Block]
			if blk.Kind != BlockLogicCluster {
				continue
			}
			class, err := arch.PinClassOf(sink.BlkPin)
			if err != nil {
				continue
			}
			k := key{sink.Block, class}
			seen[k]++
			if seen[k] > 1 {
				warnings.Add(nil, "duplicate sink pin in same equivalence class", "block", sink.Block, "class", class, "count", seen[k])
			}
		}
	}
}
