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

import "fmt"

type indexKey struct {
	x, y int
	kind Kind
	ptc  int
}

// nodeIndex is the sole keyed lookup into the graph (§4, GetRRNodeIndex).
// A CHANX/CHANY node is reachable from every (x,y) cell its span covers,
// matching VPR's rr_node_indices behavior of answering get_rr_node_index
// for any point along a wire, not just its starting cell.
type nodeIndex struct {
	m map[indexKey]NodeID
}

func buildIndex(nodes []Node) *nodeIndex {
	idx := &nodeIndex{m: make(map[indexKey]NodeID, len(nodes)*2)}
	for id, n := range nodes {
		switch n.Kind {
		case Chanx:
			for x := n.Xlow; x <= n.Xhigh; x++ {
				idx.m[indexKey{x, n.Ylow, n.Kind, n.PtcNum}] = NodeID(id)
			}
		case Chany:
			for y := n.Ylow; y <= n.Yhigh; y++ {
				idx.m[indexKey{n.Xlow, y, n.Kind, n.PtcNum}] = NodeID(id)
			}
		default:
			idx.m[indexKey{n.Xlow, n.Ylow, n.Kind, n.PtcNum}] = NodeID(id)
		}
	}
	return idx
}

// GetRRNodeIndex returns the unique node at (x,y) of the given kind and
// ptc. W is accepted for interface symmetry with the spec but is not
// needed by a map-based index (it disambiguates nothing once kind+ptc
// are known). Returns false if no such node exists.
func (g *Graph) GetRRNodeIndex(x, y int, kind Kind, ptc, w int) (NodeID, bool) {
	if g.index == nil {
		g.index = buildIndex(g.Nodes)
	}
	id, ok := g.index.m[indexKey{x, y, kind, ptc}]
	return id, ok
}

// MustGetRRNodeIndex is GetRRNodeIndex but returns a descriptive error
// instead of a boolean, for callers that want to fail fast.
func (g *Graph) MustGetRRNodeIndex(x, y int, kind Kind, ptc, w int) (NodeID, error) {
	id, ok := g.GetRRNodeIndex(x, y, kind, ptc, w)
	if !ok {
		return 0, fmt.Errorf("no %s node at (%d,%d) ptc=%d", kind, x, y, ptc)
	}
	return id, nil
}
