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

package routing

import "github.com/verilog-to-routing/vtr-rrgraph-core/noc"

// ChannelDependencyGraph is a graph over NoC links: a vertex per link,
// and a directed edge L1 -> L2 whenever some route traverses L1
// immediately followed by L2 (§4.8.3). Absence of a cycle proves the
// set of routes is deadlock-free; the turn-model algorithms are
// expected to produce acyclic graphs by construction, so this check is
// a safety net for hand-built or BFS-derived routes.
type ChannelDependencyGraph struct {
	adjacency map[noc.LinkID][]noc.LinkID
}

// NewChannelDependencyGraph builds a CDG from a set of traffic-flow
// routes, each a sequence of links traversed in order.
func NewChannelDependencyGraph(routes [][]noc.LinkID) *ChannelDependencyGraph {
	cdg := &ChannelDependencyGraph{adjacency: make(map[noc.LinkID][]noc.LinkID)}

	for _, route := range routes {
		for i := 0; i+1 < len(route); i++ {
			from, to := route[i], route[i+1]
			if !containsLink(cdg.adjacency[from], to) {
				cdg.adjacency[from] = append(cdg.adjacency[from], to)
			}
		}
	}
	return cdg
}

func containsLink(links []noc.LinkID, target noc.LinkID) bool {
	for _, l := range links {
		if l == target {
			return true
		}
	}
	return false
}

// HasCycles runs a recursive DFS over the CDG and reports whether any
// back-edge (an edge to a vertex currently on the traversal stack) was
// found.
func (cdg *ChannelDependencyGraph) HasCycles() bool {
	visited := make(map[noc.LinkID]bool)
	onStack := make(map[noc.LinkID]bool)

	var visit func(noc.LinkID) bool
	visit = func(v noc.LinkID) bool {
		visited[v] = true
		onStack[v] = true
		for _, next := range cdg.adjacency[v] {
			if onStack[next] {
				return true
			}
			if !visited[next] && visit(next) {
				return true
			}
		}
		onStack[v] = false
		return false
	}

	for v := range cdg.adjacency {
		if !visited[v] {
			if visit(v) {
				return true
			}
		}
	}
	return false
}
