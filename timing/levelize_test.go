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
)

// chain builds a -> b -> c -> d, a simple 4-level graph.
func chainGraph() *Graph {
	g := &Graph{}
	a := g.addNode(TNode{Kind: InpadSource})
	b := g.addNode(TNode{Kind: ClbIpin})
	c := g.addNode(TNode{Kind: ClbOpin})
	d := g.addNode(TNode{Kind: OutpadSink})
	g.Nodes[a].OutEdges = []TEdge{{To: b, TDelay: 1}}
	g.Nodes[b].OutEdges = []TEdge{{To: c, TDelay: 1}}
	g.Nodes[c].OutEdges = []TEdge{{To: d, TDelay: 1}}
	return g
}

func TestLevelizeChain(t *testing.T) {
	g := chainGraph()
	Levelize(g)
	require.Len(t, g.Levels, 4)
	require.Equal(t, 1, g.NumSinks)
	for i, lvl := range g.Levels {
		require.Len(t, lvl, 1)
		require.Equal(t, NodeID(i), lvl[0])
	}
}

// diamond: a feeds b and c, both feed d. d should be in level 2.
func diamondGraph() *Graph {
	g := &Graph{}
	a := g.addNode(TNode{Kind: InpadSource})
	b := g.addNode(TNode{Kind: ClbIpin})
	c := g.addNode(TNode{Kind: ClbOpin})
	d := g.addNode(TNode{Kind: OutpadSink})
	g.Nodes[a].OutEdges = []TEdge{{To: b, TDelay: 1}, {To: c, TDelay: 2}}
	g.Nodes[b].OutEdges = []TEdge{{To: d, TDelay: 1}}
	g.Nodes[c].OutEdges = []TEdge{{To: d, TDelay: 1}}
	return g
}

func TestLevelizeDiamond(t *testing.T) {
	g := diamondGraph()
	Levelize(g)
	require.Len(t, g.Levels, 3)
	require.ElementsMatch(t, []NodeID{0}, g.Levels[0])
	require.ElementsMatch(t, []NodeID{1, 2}, g.Levels[1])
	require.ElementsMatch(t, []NodeID{3}, g.Levels[2])
	require.Equal(t, 1, g.NumSinks)
}
