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

import (
	"testing"

	"github.com/stretchr/testify/require"

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

// twoClassArch gives pin 0 class 0 (driver) and pin 1 class 1
// (receiver), enough to exercise the §4.5 step 3 pin-class check on
// both the SOURCE->OPIN and IPIN->SINK hops.
func twoClassArch() *vtrcore.Architecture {
	return &vtrcore.Architecture{
		Pins: []vtrcore.Pin{
			{Index: 0, Class: 0},
			{Index: 1, Class: 1},
		},
		PinClasses: []vtrcore.PinClass{
			{Kind: vtrcore.ClassDriver, Pins: []int{0}},
			{Kind: vtrcore.ClassReceiver, Pins: []int{1}},
		},
	}
}

func TestCheckRoutesAcceptsValidTrace(t *testing.T) {
	g := &Graph{
		Nodes: []Node{
			{Kind: Source, Xlow: 0, Ylow: 0, Xhigh: 0, Yhigh: 0, PtcNum: 0, Capacity: 1},
			{Kind: Opin, Xlow: 0, Ylow: 0, Xhigh: 0, Yhigh: 0, PtcNum: 0, Capacity: 1},
			{Kind: Chanx, Xlow: 0, Ylow: 0, Xhigh: 2, Yhigh: 0, PtcNum: 0, Capacity: 1},
			{Kind: Ipin, Xlow: 2, Ylow: 0, Xhigh: 2, Yhigh: 0, PtcNum: 1, Capacity: 1},
			{Kind: Sink, Xlow: 2, Ylow: 0, Xhigh: 2, Yhigh: 0, PtcNum: 1, Capacity: 1},
		},
		NetRRTerminals: [][]NodeID{{0, 4}},
	}
	trace := []TraceElem{{Node: 0}, {Node: 1}, {Node: 2}, {Node: 3}, {Node: 4}}
	require.NoError(t, CheckRoutes(twoClassArch(), g, [][]TraceElem{trace}, nil, nil))
}

// TestCheckRoutesRejectsOpinClassMismatch mirrors §4.5 step 3: an OPIN
// reached from a SOURCE must belong to that SOURCE's own pin class,
// never a different class's pin, even when the two sit at the same
// location.
func TestCheckRoutesRejectsOpinClassMismatch(t *testing.T) {
	g := &Graph{
		Nodes: []Node{
			{Kind: Source, Xlow: 0, Ylow: 0, Xhigh: 0, Yhigh: 0, PtcNum: 0, Capacity: 1},
			{Kind: Opin, Xlow: 0, Ylow: 0, Xhigh: 0, Yhigh: 0, PtcNum: 1, Capacity: 1},
			{Kind: Chanx, Xlow: 0, Ylow: 0, Xhigh: 2, Yhigh: 0, PtcNum: 0, Capacity: 1},
			{Kind: Ipin, Xlow: 2, Ylow: 0, Xhigh: 2, Yhigh: 0, PtcNum: 1, Capacity: 1},
			{Kind: Sink, Xlow: 2, Ylow: 0, Xhigh: 2, Yhigh: 0, PtcNum: 1, Capacity: 1},
		},
		NetRRTerminals: [][]NodeID{{0, 4}},
	}
	trace := []TraceElem{{Node: 0}, {Node: 1}, {Node: 2}, {Node: 3}, {Node: 4}}
	err := CheckRoutes(twoClassArch(), g, [][]TraceElem{trace}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "SOURCE->OPIN pin class mismatch")
}

// TestCheckRoutesRejectsNonAdjacentChanxJump mirrors scenario S5: a
// traceback jump from CHANX xlow=5 to a CHANX xhigh=2 in the same row
// must be rejected as a non-adjacent segment jump.
func TestCheckRoutesRejectsNonAdjacentChanxJump(t *testing.T) {
	g := &Graph{
		Nodes: []Node{
			{Kind: Source, Xlow: 5, Ylow: 0, Xhigh: 5, Yhigh: 0, PtcNum: 0, Capacity: 1},
			{Kind: Opin, Xlow: 5, Ylow: 0, Xhigh: 5, Yhigh: 0, PtcNum: 0, Capacity: 1},
			{Kind: Chanx, Xlow: 5, Ylow: 0, Xhigh: 8, Yhigh: 0, PtcNum: 0, Capacity: 1},
			{Kind: Chanx, Xlow: 0, Ylow: 0, Xhigh: 2, Yhigh: 0, PtcNum: 0, Capacity: 1},
			{Kind: Sink, Xlow: 2, Ylow: 0, Xhigh: 2, Yhigh: 0, PtcNum: 0, Capacity: 1},
		},
		NetRRTerminals: [][]NodeID{{0, 4}},
	}
	trace := []TraceElem{{Node: 0}, {Node: 1}, {Node: 2}, {Node: 3}, {Node: 4}}
	err := CheckRoutes(twoClassArch(), g, [][]TraceElem{trace}, nil, nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "Non-adjacent segments in traceback")
}

func TestCheckRoutesRejectsOccupancyOverCapacity(t *testing.T) {
	g := &Graph{
		Nodes: []Node{
			{Kind: Source, Capacity: 1},
		},
	}
	trace := []TraceElem{{Node: 0}, {Node: 0}}
	err := CheckRoutes(twoClassArch(), g, [][]TraceElem{trace}, nil, nil)
	require.Error(t, err)
}
