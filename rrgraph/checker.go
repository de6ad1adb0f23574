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

package rrgraph

import vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"

// legalEdge reports whether the (from,to) kind pair is one of the
// directed pairings allowed by §4.3.2.
func legalEdge(from, to Kind) bool {
	switch from {
	case Source:
		return to == Opin
	case Ipin:
		return to == Sink
	case Opin:
		return to == Chanx || to == Chany
	case Chanx:
		return to == Ipin || to == Chanx || to == Chany
	case Chany:
		return to == Ipin || to == Chanx || to == Chany
	default:
		return false
	}
}

// Check validates structural self-consistency of g against the
// architecture (C4/§4.4). It fails fast with the offending node id on
// the first violation.
func Check(arch *vtrcore.Architecture, g *Graph, chipWidth, chipHeight int) error {
	for id, n := range g.Nodes {
		if n.Xlow < 0 || n.Ylow < 0 || n.Xhigh >= chipWidth || n.Yhigh >= chipHeight || n.Xlow > n.Xhigh || n.Ylow > n.Yhigh {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "node coordinates out of range", "node", id, "kind", n.Kind.String())
		}
		if n.Kind.IsChan() {
			if n.Kind == Chanx && n.Ylow != n.Yhigh {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "CHANX node spans more than one row", "node", id)
			}
			if n.Kind == Chany && n.Xlow != n.Xhigh {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "CHANY node spans more than one column", "node", id)
			}
		} else {
			if n.Xlow != n.Xhigh || n.Ylow != n.Yhigh {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "unit node spans more than one cell", "node", id, "kind", n.Kind.String())
			}
		}

		switch n.Kind {
		case Source, Sink:
			if n.PtcNum < 0 || n.PtcNum >= len(arch.PinClasses) {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "SOURCE/SINK ptc_num not a valid class index", "node", id, "ptc", n.PtcNum)
			}
			class := arch.PinClasses[n.PtcNum]
			wantKind := vtrcore.ClassDriver
			if n.Kind == Sink {
				wantKind = vtrcore.ClassReceiver
			}
			if class.Kind != wantKind {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "SOURCE/SINK class-kind mismatch", "node", id)
			}
			if n.Capacity != len(class.Pins) {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "SOURCE/SINK capacity disagrees with class pin count", "node", id, "capacity", n.Capacity, "want", len(class.Pins))
			}
		case Ipin, Opin:
			if n.Capacity != 1 {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "IPIN/OPIN capacity must be 1", "node", id, "capacity", n.Capacity)
			}
			if n.PtcNum < 0 || n.PtcNum >= len(arch.Pins) {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "IPIN/OPIN ptc_num not a valid pin index", "node", id, "ptc", n.PtcNum)
			}
		}

		for _, e := range n.Edges {
			if int(e.To) < 0 || int(e.To) >= len(g.Nodes) {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "edge destination out of range", "node", id, "to", e.To)
			}
			if e.Switch < 0 || e.Switch >= len(arch.SwitchTypes) {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "edge switch index out of range", "node", id, "switch", e.Switch)
			}
			toKind := g.Nodes[e.To].Kind
			if !legalEdge(n.Kind, toKind) {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "illegal edge kind pairing", "node", id, "from", n.Kind.String(), "to_node", e.To, "to", toKind.String())
			}
		}

		if len(g.CostEntries) > 0 && (n.CostIndex < 0 || n.CostIndex >= len(g.CostEntries)) {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "cost_index out of range", "node", id, "cost_index", n.CostIndex)
		}
		if n.Occupancy < 0 || n.Occupancy > n.Capacity {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "occupancy exceeds capacity", "node", id, "occupancy", n.Occupancy, "capacity", n.Capacity)
		}
	}
	return nil
}
