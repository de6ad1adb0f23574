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

import "fmt"

// BlockKind is the kind of tile occupying a grid location.
type BlockKind int

const (
	BlockIllegal BlockKind = iota
	BlockLogicCluster
	BlockInputPad
	BlockOutputPad
	BlockIO
)

func (k BlockKind) String() string {
	switch k {
	case BlockLogicCluster:
		return "logic-cluster"
	case BlockInputPad:
		return "input-pad"
	case BlockOutputPad:
		return "output-pad"
	case BlockIO:
		return "io"
	default:
		return "illegal"
	}
}

// PinClassKind distinguishes a cluster pin-class's direction.
type PinClassKind int

const (
	ClassDriver PinClassKind = iota
	ClassReceiver
)

func (k PinClassKind) String() string {
	if k == ClassDriver {
		return "driver"
	}
	return "receiver"
}

// Side is a side of a cluster tile that pins may appear on.
type Side int

const (
	Top Side = iota
	Bottom
	Left
	Right
)

func (s Side) String() string {
	switch s {
	case Top:
		return "TOP"
	case Bottom:
		return "BOTTOM"
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	default:
		return "?"
	}
}

// AllSides enumerates the four tile sides in a fixed, stable order used
// for deterministic round-robin allocation (§4.3.4).
var AllSides = [4]Side{Top, Right, Bottom, Left}

// Pin is a single cluster-local pin: an index, the class it belongs to,
// and whether it is a dedicated global resource (e.g. a clock).
type Pin struct {
	Index   int
	Class   int // index into Architecture.PinClasses
	Global  bool
	Sides   []Side // physical side(s) this pin appears on
}

// PinClass is a set of logically interchangeable pins of one direction.
type PinClass struct {
	Kind PinClassKind
	Pins []int // pin indices belonging to this class
}

// SegmentType is a routing-track template (§3 Architecture).
type SegmentType struct {
	Name       string
	Length     int // in tiles; LongLine overrides this at build time
	LongLine   bool
	FracCB     float64 // density of connection-box presence, [0,1]
	FracSB     float64 // density of switch-box presence, [0,1]
	Frequency  float64 // fraction of total tracks using this type; sums to 1 across types
	WireSwitch int     // switch index used wire-to-wire
	OpinSwitch int      // switch index used opin-to-wire
	RMetal     float64
	CMetal     float64
}

// SwitchType is a routing switch (§3 Architecture). Delay of the switch
// chain for an unloaded switch is TDelay + R*Cout.
type SwitchType struct {
	Name     string
	Buffered bool
	R        float64
	Cin      float64
	Cout     float64
	TDelay   float64
}

// UnloadedDelay is T_delay + R*C_out for this switch driving nothing.
func (s SwitchType) UnloadedDelay() float64 {
	return s.TDelay + s.R*s.Cout
}

// SubblockTemplate describes the LUT+optional-FF atom used for timing.
type SubblockTemplate struct {
	LUTSize  int
	TComb    float64 // combinational delay, input to output
	TSeqIn   float64 // input to FF delay
	TSeqOut  float64 // FF to output delay
}

// Architecture is the read-only, load-once description of the target
// device. It is populated by an external collaborator (architecture
// ingestion, §6) and queried thereafter; nothing in this package
// mutates it.
type Architecture struct {
	PinsPerCLB       int
	NumClass         int
	Pins             []Pin
	PinClasses       []PinClass
	SegmentTypes     []SegmentType
	SwitchTypes      []SwitchType
	Subblock         SubblockTemplate
	MaxSubblocks     int
	IORat            int // pad instances per IO grid location
	DelaylessSwitch  int
	WireToIpinSwitch int
}

// PinClassOf returns the class index of a cluster pin.
func (a *Architecture) PinClassOf(pin int) (int, error) {
	if pin < 0 || pin >= len(a.Pins) {
		return 0, Fatal(ErrArchViolation, "pin index out of range", "pin", pin)
	}
	return a.Pins[pin].Class, nil
}

// ClassKind returns whether class is a DRIVER or RECEIVER class.
func (a *Architecture) ClassKind(class int) (PinClassKind, error) {
	if class < 0 || class >= len(a.PinClasses) {
		return 0, Fatal(ErrArchViolation, "class index out of range", "class", class)
	}
	return a.PinClasses[class].Kind, nil
}

// IsGlobalPin reports whether pin is a dedicated global resource.
func (a *Architecture) IsGlobalPin(pin int) bool {
	if pin < 0 || pin >= len(a.Pins) {
		return false
	}
	return a.Pins[pin].Global
}

// PinSides returns the sides a physical pin appears on.
func (a *Architecture) PinSides(pin int) []Side {
	if pin < 0 || pin >= len(a.Pins) {
		return nil
	}
	return a.Pins[pin].Sides
}

// NumPinsInClass returns how many physical pins belong to class.
func (a *Architecture) NumPinsInClass(class int) int {
	if class < 0 || class >= len(a.PinClasses) {
		return 0
	}
	return len(a.PinClasses[class].Pins)
}

// Segment returns the segment type at index i.
func (a *Architecture) Segment(i int) (SegmentType, error) {
	if i < 0 || i >= len(a.SegmentTypes) {
		return SegmentType{}, Fatal(ErrArchViolation, "segment type index out of range", "seg", i)
	}
	return a.SegmentTypes[i], nil
}

// Switch returns the switch type at index i.
func (a *Architecture) Switch(i int) (SwitchType, error) {
	if i < 0 || i >= len(a.SwitchTypes) {
		return SwitchType{}, Fatal(ErrArchViolation, "switch type index out of range", "sw", i)
	}
	return a.SwitchTypes[i], nil
}

// Validate checks structural self-consistency of the architecture model
// that does not depend on a netlist: no pin is listed by more than one
// pin class and each listed pin's Pin.Class names the class that lists
// it (a pin listed by no class is not rejected), segment frequencies sum
// to ~1, and switch/segment cross-references are in range.
func (a *Architecture) Validate() error {
	seen := make([]bool, len(a.Pins))
	for ci, c := range a.PinClasses {
		for _, p := range c.Pins {
			if p < 0 || p >= len(a.Pins) {
				return Fatal(ErrArchViolation, "pin-class references out-of-range pin", "class", ci, "pin", p)
			}
			if seen[p] {
				return Fatal(ErrArchViolation, "pin belongs to more than one class", "pin", p)
			}
			seen[p] = true
			if a.Pins[p].Class != ci {
				return Fatal(ErrArchViolation, "pin.Class disagrees with owning PinClass", "pin", p, "pin.Class", a.Pins[p].Class, "class", ci)
			}
		}
	}
	var freqSum float64
	for i, s := range a.SegmentTypes {
		freqSum += s.Frequency
		if s.WireSwitch < 0 || s.WireSwitch >= len(a.SwitchTypes) {
			return Fatal(ErrArchViolation, "segment wire_switch out of range", "seg", i, "switch", s.WireSwitch)
		}
		if s.OpinSwitch < 0 || s.OpinSwitch >= len(a.SwitchTypes) {
			return Fatal(ErrArchViolation, "segment opin_switch out of range", "seg", i, "switch", s.OpinSwitch)
		}
		if s.FracCB < 0 || s.FracCB > 1 || s.FracSB < 0 || s.FracSB > 1 {
			return Fatal(ErrArchViolation, "segment frac_cb/frac_sb out of [0,1]", "seg", i)
		}
	}
	if len(a.SegmentTypes) > 0 && (freqSum < 0.999 || freqSum > 1.001) {
		return Fatal(ErrArchViolation, "segment frequencies must sum to 1", "sum", freqSum)
	}
	if a.DelaylessSwitch < 0 || a.DelaylessSwitch >= len(a.SwitchTypes) {
		return Fatal(ErrArchViolation, "delayless switch index out of range", "switch", a.DelaylessSwitch)
	}
	if a.WireToIpinSwitch < 0 || a.WireToIpinSwitch >= len(a.SwitchTypes) {
		return Fatal(ErrArchViolation, "wire-to-ipin switch index out of range", "switch", a.WireToIpinSwitch)
	}
	return nil
}

// String renders a short human-readable summary, used in log lines.
func (a *Architecture) String() string {
	return fmt.Sprintf("Architecture{pins_per_clb=%d classes=%d seg_types=%d switch_types=%d}",
		a.PinsPerCLB, len(a.PinClasses), len(a.SegmentTypes), len(a.SwitchTypes))
}
