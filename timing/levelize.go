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

// Levelize computes a topological levelization of g (§4.7.1): level[0]
// holds every node with zero in-edges, and each subsequent level holds
// the nodes whose in-edges are all satisfied by earlier levels
// (reverse-BFS counting down remaining in-edges). It also counts the
// total number of sinks (nodes with zero out-edges).
func Levelize(g *Graph) {
	inDegree := make([]int, len(g.Nodes))
	for _, n := range g.Nodes {
		for _, e := range n.OutEdges {
			inDegree[e.To]++
		}
	}

	var levels [][]NodeID
	remaining := append([]int(nil), inDegree...)
	placed := make([]bool, len(g.Nodes))
	numSinks := 0

	for _, n := range g.Nodes {
		if len(n.OutEdges) == 0 {
			numSinks++
		}
	}

	for {
		var level []NodeID
		for id, deg := range remaining {
			if !placed[id] && deg == 0 {
				level = append(level, NodeID(id))
			}
		}
		if len(level) == 0 {
			break
		}
		for _, id := range level {
			placed[id] = true
		}
		for _, id := range level {
			for _, e := range g.Nodes[id].OutEdges {
				remaining[e.To]--
			}
		}
		levels = append(levels, level)
	}

	g.Levels = levels
	g.NumSinks = numSinks
}
