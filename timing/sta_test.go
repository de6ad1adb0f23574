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

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

func TestForwardBackwardPassChain(t *testing.T) {
	g := chainGraph()
	Levelize(g)
	tCrit := ForwardPass(g, -1000)
	require.Equal(t, 3.0, tCrit)
	require.Equal(t, 0.0, g.Nodes[0].TArr)
	require.Equal(t, 3.0, g.Nodes[3].TArr)

	BackwardPass(g, 0)
	require.Equal(t, 3.0, g.Nodes[3].TReq)
	require.Equal(t, 2.0, g.Nodes[2].TReq)
	require.Equal(t, 1.0, g.Nodes[1].TReq)
	require.Equal(t, 0.0, g.Nodes[0].TReq)
}

func TestBackwardPassHonorsTargetCycleTime(t *testing.T) {
	g := chainGraph()
	Levelize(g)
	ForwardPass(g, -1000)
	BackwardPass(g, 10)
	require.Equal(t, 10.0, g.Nodes[3].TReq)
	require.Equal(t, 9.0, g.Nodes[2].TReq)
}

func TestCriticalPathFollowsMinSlack(t *testing.T) {
	g := diamondGraph()
	Levelize(g)
	ForwardPass(g, -1000)
	BackwardPass(g, 0)
	path := CriticalPath(g)
	require.Equal(t, NodeID(0), path[0])
	require.Equal(t, NodeID(3), path[len(path)-1])
	// the a->c->d leg has the larger edge delays (2,1) so it is the one
	// with zero slack; a->b->d (1,1) has positive slack.
	require.Contains(t, path, NodeID(2))
}

// constGenWithRealInputNetlist builds two independent chains sharing
// one netlist: a constant-generator cluster driving out0, and a real
// input pad wired straight through to out1. The real path's arrival
// time is the only one that can ever dominate T_crit, matching VPR's
// "constants generated early so they never affect the critical path."
func constGenWithRealInputNetlist() *vtrcore.Netlist {
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
			{Name: "in1", Kind: vtrcore.BlockInputPad, Nets: []int{1}},
			{Name: "out1", Kind: vtrcore.BlockOutputPad, Nets: []int{1}},
		},
		Nets: []vtrcore.Net{
			{Name: "n_const", Pins: []vtrcore.NetPin{{Block: 0, BlkPin: 0}, {Block: 1, BlkPin: 0}}},
			{Name: "n_real", Pins: []vtrcore.NetPin{{Block: 2, BlkPin: 0}, {Block: 3, BlkPin: 0}}},
		},
	}
}

func TestConstantGeneratorNeverDominatesCriticalPath(t *testing.T) {
	arch := tinyArch()
	params := tp()
	params.TIpad = 0
	nl := constGenWithRealInputNetlist()

	g, err := NewBuilder(arch, nl, params).Build()
	require.NoError(t, err)
	Levelize(g)
	tCrit := ForwardPass(g, params.TConstGen)
	require.Equal(t, params.TOpad, tCrit, "the real input->output path is the only one that can set T_crit")

	var dummy *TNode
	for i := range g.Nodes {
		if g.Nodes[i].Kind == ConstantGenSource {
			dummy = &g.Nodes[i]
		}
	}
	require.NotNil(t, dummy)
	require.Equal(t, params.TConstGen, dummy.TArr)

	BackwardPass(g, 0)
	var sinkOfConstPath *TNode
	for i := range g.Nodes {
		if g.Nodes[i].Kind == OutpadSink && g.Nodes[i].OwnerBlock == 1 {
			sinkOfConstPath = &g.Nodes[i]
		}
	}
	require.NotNil(t, sinkOfConstPath)
	require.Equal(t, tCrit, sinkOfConstPath.TReq)
	require.Equal(t, tCrit, g.TCrit)

	slacks := ComputeSlacks(g, nl)
	require.Len(t, slacks[0], 1) // n_const has one sink
	driver := g.Nodes[g.NetToDriverTNode[0]]
	wantSlack := g.Nodes[driver.OutEdges[0].To].TReq - driver.TArr - driver.OutEdges[0].TDelay
	require.Equal(t, wantSlack, slacks[0][0])
}

func TestLoadNetDelaysWritesDriverOutEdge(t *testing.T) {
	g := chainGraph()
	delays := [][]float64{{42}}
	g.NetToDriverTNode = []NodeID{0}
	LoadNetDelays(g, delays)
	require.Equal(t, 42.0, g.Nodes[0].OutEdges[0].TDelay)
}
