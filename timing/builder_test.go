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

package timing

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verilog-to-routing/vtr-rrgraph-core/config"

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

// tinyArch builds a 2-pin cluster (1 driver pin, 1 receiver pin),
// max_subblocks=2, LUT size 2.
func tinyArch() *vtrcore.Architecture {
	return &vtrcore.Architecture{
		PinsPerCLB: 2,
		Pins: []vtrcore.Pin{
			{Index: 0, Class: 0},
			{Index: 1, Class: 1},
		},
		PinClasses: []vtrcore.PinClass{
			{Kind: vtrcore.ClassDriver, Pins: []int{0}},
			{Kind: vtrcore.ClassReceiver, Pins: []int{1}},
		},
		MaxSubblocks: 2,
		Subblock: vtrcore.SubblockTemplate{
			LUTSize: 2,
			TComb:   1.0,
			TSeqIn:  0.5,
			TSeqOut: 0.3,
		},
	}
}

func tp() config.TimingParams {
	return config.TimingParams{
		TIpad:               2.0,
		TOpad:               2.0,
		TClbIpinToSblkIpin:  0.1,
		TSblkOpinToSblkIpin: 0.1,
		TSblkOpinToClbOpin:  0.1,
		TConstGen:           -1000,
	}
}

// combinationalNetlist: INPUT -> cluster pin 1 -> subblock0 (comb,
// output -> cluster pin 0) -> OUTPUT pad.
func combinationalNetlist() *vtrcore.Netlist {
	return &vtrcore.Netlist{
		Blocks: []vtrcore.Block{
			{Name: "in0", Kind: vtrcore.BlockInputPad, Nets: []int{0}},
			{
				Name: "clb0", Kind: vtrcore.BlockLogicCluster,
				Nets: []int{1, 0},
				Subblocks: []vtrcore.Subblock{
					{Name: "lut0", Inputs: []int{1, vtrcore.Open}, Output: 0, Clock: vtrcore.Open},
				},
			},
			{Name: "out0", Kind: vtrcore.BlockOutputPad, Nets: []int{1}},
		},
		Nets: []vtrcore.Net{
			{Name: "n_in", Pins: []vtrcore.NetPin{{Block: 0, BlkPin: 0}, {Block: 1, BlkPin: 1}}},
			{Name: "n_out", Pins: []vtrcore.NetPin{{Block: 1, BlkPin: 0}, {Block: 2, BlkPin: 0}}},
		},
	}
}

func TestBuildWiresCombinationalPath(t *testing.T) {
	arch := tinyArch()
	nl := combinationalNetlist()
	g, err := NewBuilder(arch, nl, tp()).Build()
	require.NoError(t, err)

	var haveIpad, haveSblkIpin, haveSblkOpin, haveOutSink bool
	for _, n := range g.Nodes {
		switch n.Kind {
		case InpadSource:
			haveIpad = true
		case SubblkIpin:
			haveSblkIpin = true
		case SubblkOpin:
			haveSblkOpin = true
		case OutpadSink:
			haveOutSink = true
		}
	}
	require.True(t, haveIpad)
	require.True(t, haveSblkIpin)
	require.True(t, haveSblkOpin)
	require.True(t, haveOutSink)

	require.NotEqual(t, NodeID(-1), g.NetToDriverTNode[0])
	require.NotEqual(t, NodeID(-1), g.NetToDriverTNode[1])
}

// constantGeneratorNetlist: subblock0 has no used inputs and no clock,
// driving cluster pin 0 straight to an output pad.
func constantGeneratorNetlist() *vtrcore.Netlist {
	return &vtrcore.Netlist{
		Blocks: []vtrcore.Block{
			{
				Name: "clb0", Kind: vtrcore.BlockLogicCluster,
				Nets: []int{0, vtrcore.Open},
				Subblocks: []vtrcore.Subblock{
					{Name: "const0", Inputs: []int{vtrcore.Open, vtrcore.Open}, Output: 0, Clock: vtrcore.Open},
				},
			},
			{Name: "out0", Kind: vtrcore.BlockOutputPad, Nets: []int{0}},
		},
		Nets: []vtrcore.Net{
			{Name: "n_const", Pins: []vtrcore.NetPin{{Block: 0, BlkPin: 0}, {Block: 1, BlkPin: 0}}},
		},
	}
}

func TestBuildWiresConstantGenerator(t *testing.T) {
	arch := tinyArch()
	nl := constantGeneratorNetlist()
	g, err := NewBuilder(arch, nl, tp()).Build()
	require.NoError(t, err)

	var dummy *TNode
	for i := range g.Nodes {
		if g.Nodes[i].Kind == ConstantGenSource {
			dummy = &g.Nodes[i]
		}
	}
	require.NotNil(t, dummy, "expected a CONSTANT_GEN_SOURCE node")
	require.Equal(t, -1000.0, dummy.TArr)
	require.Len(t, dummy.OutEdges, 1)
}

// sequentialArch/sequentialNetlist: subblock0 is a registered subblock
// whose data input is cluster pin 1 and whose clock is cluster pin 2 (a
// global pin carrying the global net n_clk), so clock and data arrive on
// different receiver pins.
func sequentialArch() *vtrcore.Architecture {
	return &vtrcore.Architecture{
		PinsPerCLB: 3,
		Pins: []vtrcore.Pin{
			{Index: 0, Class: 0},
			{Index: 1, Class: 1},
			{Index: 2, Class: 1, Global: true},
		},
		PinClasses: []vtrcore.PinClass{
			{Kind: vtrcore.ClassDriver, Pins: []int{0}},
			{Kind: vtrcore.ClassReceiver, Pins: []int{1, 2}},
		},
		MaxSubblocks: 1,
		Subblock: vtrcore.SubblockTemplate{
			LUTSize: 1,
			TComb:   1.0,
			TSeqIn:  0.5,
			TSeqOut: 0.3,
		},
	}
}

func sequentialNetlist() *vtrcore.Netlist {
	return &vtrcore.Netlist{
		Blocks: []vtrcore.Block{
			{Name: "d0", Kind: vtrcore.BlockInputPad, Nets: []int{0}},
			{Name: "clk0", Kind: vtrcore.BlockInputPad, Nets: []int{1}},
			{
				Name: "clb0", Kind: vtrcore.BlockLogicCluster,
				Nets: []int{vtrcore.Open, 0, 1},
				Subblocks: []vtrcore.Subblock{
					{Name: "ff0", Inputs: []int{1}, Output: 0, Clock: 2},
				},
			},
		},
		Nets: []vtrcore.Net{
			{Name: "n_d", Pins: []vtrcore.NetPin{{Block: 0, BlkPin: 0}, {Block: 2, BlkPin: 1}}},
			{Name: "n_clk", Pins: []vtrcore.NetPin{{Block: 1, BlkPin: 0}, {Block: 2, BlkPin: 2}}, Global: true},
		},
	}
}

func TestBuildWiresSequentialSubblock(t *testing.T) {
	arch := sequentialArch()
	nl := sequentialNetlist()
	g, err := NewBuilder(arch, nl, tp()).Build()
	require.NoError(t, err)

	var haveFFSource, haveFFSink bool
	var ffSourceInEdges int
	for i, n := range g.Nodes {
		if n.Kind == FFSource {
			haveFFSource = true
			for _, other := range g.Nodes {
				for _, e := range other.OutEdges {
					if int(e.To) == i {
						ffSourceInEdges++
					}
				}
			}
		}
		if n.Kind == FFSink {
			haveFFSink = true
		}
	}
	require.True(t, haveFFSource)
	require.True(t, haveFFSink)
	require.Equal(t, 1, ffSourceInEdges, "FF_SOURCE should have exactly one in-edge, from the clock net")
}

func TestOpinOutEdgeOrderingMatchesNetSinks(t *testing.T) {
	arch := tinyArch()
	arch.PinsPerCLB = 2
	nl := &vtrcore.Netlist{
		Blocks: []vtrcore.Block{
			{Name: "clb0", Kind: vtrcore.BlockLogicCluster, Nets: []int{0, vtrcore.Open},
				Subblocks: []vtrcore.Subblock{{Name: "c", Inputs: []int{vtrcore.Open, vtrcore.Open}, Output: 0, Clock: vtrcore.Open}}},
			{Name: "out0", Kind: vtrcore.BlockOutputPad, Nets: []int{0}},
			{Name: "out1", Kind: vtrcore.BlockOutputPad, Nets: []int{0}},
		},
		Nets: []vtrcore.Net{
			{Name: "n0", Pins: []vtrcore.NetPin{
				{Block: 0, BlkPin: 0},
				{Block: 1, BlkPin: 0},
				{Block: 2, BlkPin: 0},
			}},
		},
	}
	g, err := NewBuilder(arch, nl, tp()).Build()
	require.NoError(t, err)

	driver := g.Nodes[g.NetToDriverTNode[0]]
	require.Len(t, driver.OutEdges, 2)
	require.Equal(t, OutpadIpin, g.Nodes[driver.OutEdges[0].To].Kind)
	require.Equal(t, 1, g.Nodes[driver.OutEdges[0].To].OwnerBlock)
	require.Equal(t, 2, g.Nodes[driver.OutEdges[1].To].OwnerBlock)
}
