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

func simpleCheckerArch() *vtrcore.Architecture {
	return &vtrcore.Architecture{
		Pins:        []vtrcore.Pin{{Index: 0, Class: 0}},
		PinClasses:  []vtrcore.PinClass{{Kind: vtrcore.ClassDriver, Pins: []int{0}}},
		SwitchTypes: []vtrcore.SwitchType{{Name: "s0"}},
	}
}

func TestCheckAcceptsWellFormedGraph(t *testing.T) {
	arch := simpleCheckerArch()
	g := &Graph{Nodes: []Node{
		{Kind: Source, PtcNum: 0, Capacity: 1, Edges: []Edge{{To: 1, Switch: 0}}},
		{Kind: Opin, PtcNum: 0, Capacity: 1},
	}}
	require.NoError(t, Check(arch, g, 4, 4))
}

func TestCheckRejectsIllegalEdgeKind(t *testing.T) {
	arch := simpleCheckerArch()
	g := &Graph{Nodes: []Node{
		{Kind: Source, PtcNum: 0, Capacity: 1, Edges: []Edge{{To: 1, Switch: 0}}},
		{Kind: Sink, PtcNum: 0, Capacity: 1},
	}}
	require.Error(t, Check(arch, g, 4, 4))
}

func TestCheckRejectsOutOfRangeCoordinates(t *testing.T) {
	arch := simpleCheckerArch()
	g := &Graph{Nodes: []Node{
		{Kind: Source, Xlow: 10, Xhigh: 10, PtcNum: 0, Capacity: 1},
	}}
	require.Error(t, Check(arch, g, 4, 4))
}

func TestCheckRejectsCapacityMismatch(t *testing.T) {
	arch := simpleCheckerArch()
	g := &Graph{Nodes: []Node{
		{Kind: Source, PtcNum: 0, Capacity: 2},
	}}
	require.Error(t, Check(arch, g, 4, 4))
}

func TestCheckRejectsOccupancyOverCapacity(t *testing.T) {
	arch := simpleCheckerArch()
	g := &Graph{Nodes: []Node{
		{Kind: Source, PtcNum: 0, Capacity: 1, Occupancy: 2},
	}}
	require.Error(t, Check(arch, g, 4, 4))
}
