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

// TraceElem is one hop of a net's routing trace: the node reached and
// the switch used to leave it towards the next hop (§4.5). The last
// element of a trace has no outgoing switch.
type TraceElem struct {
	Node   NodeID
	Switch int
}

// CheckRoutes validates every net's trace against g (C8/§4.5): it
// recomputes occupancy from the traces, verifies capacity, and walks
// each trace checking SOURCE/SINK identity, pin-reachability, the
// tree-except-at-equivalent-sinks rule, physical adjacency, and (§4.5
// step 3) that a SOURCE->OPIN or IPIN->SINK hop stays within one pin
// class. It fails fast with the offending node id.
func CheckRoutes(arch *vtrcore.Architecture, g *Graph, traces [][]TraceElem, locallyUsedOpins []NodeID, expectedOpinClass map[NodeID]int) error {
	occ := make([]int, len(g.Nodes))
	for _, trace := range traces {
		for _, e := range trace {
			occ[e.Node]++
		}
	}
	for id, n := range g.Nodes {
		if occ[id] > n.Capacity {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "node occupancy exceeds capacity", "node", id, "occupancy", occ[id], "capacity", n.Capacity)
		}
	}

	for ni, trace := range traces {
		if len(trace) == 0 {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "net has an empty trace", "net", ni)
		}
		if g.Nodes[trace[0].Node].Kind != Source {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "trace does not start at a SOURCE", "net", ni, "node", trace[0].Node)
		}
		if expected := g.NetRRTerminals[ni]; len(expected) > 0 && trace[0].Node != expected[0] {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "trace SOURCE does not match net_rr_terminals[net][0]", "net", ni)
		}
		if g.Nodes[trace[len(trace)-1].Node].Kind != Sink {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "trace does not end at a SINK", "net", ni)
		}

		seen := make(map[NodeID]bool)
		seenSinkClass := make(map[int]bool)
		sinkVisits := make(map[NodeID]int)
		seen[trace[0].Node] = true

		for i := 0; i+1 < len(trace); i++ {
			u, v := trace[i].Node, trace[i+1].Node
			un, vn := g.Nodes[u], g.Nodes[v]

			if un.Kind == Sink {
				if !seen[v] {
					return vtrcore.Fatal(vtrcore.ErrCheckViolation, "fork target not already in tree", "net", ni, "from", u, "to", v)
				}
				continue
			}

			if err := checkAdjacency(arch, u, un, v, vn); err != nil {
				return vtrcore.Wrap(vtrcore.ErrCheckViolation, "illegal trace adjacency", err, "net", ni, "from", u, "to", v)
			}

			if vn.Kind == Sink {
				if seenSinkClass[vn.PtcNum] {
					// logically-equivalent sinks of the same class may
					// be reached more than once; anything else seen
					// twice is an error, handled below.
				}
				seenSinkClass[vn.PtcNum] = true
				sinkVisits[v]++
			} else if seen[v] {
				return vtrcore.Fatal(vtrcore.ErrCheckViolation, "trace revisits a non-sink node", "net", ni, "node", v)
			}
			seen[v] = true
		}

		// Every terminal in net_rr_terminals[net][1:] must be reached
		// exactly once, and no other SINK may be reached.
		if expected := g.NetRRTerminals[ni]; len(expected) > 1 {
			for _, s := range expected[1:] {
				sinkVisits[s]--
			}
			for s, k := range sinkVisits {
				if k != 0 {
					return vtrcore.Fatal(vtrcore.ErrCheckViolation, "net sink not reached exactly once per terminal", "net", ni, "sink", s)
				}
			}
		}
	}

	for _, opin := range locallyUsedOpins {
		n, ok := indexOf(g, opin)
		if !ok {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "locally-used OPIN not in graph", "node", opin)
		}
		if n.Kind != Opin {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "locally-used node is not an OPIN", "node", opin)
		}
		if want, ok := expectedOpinClass[opin]; ok && n.PtcNum != want {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "locally-used OPIN has unexpected class", "node", opin, "got", n.PtcNum, "want", want)
		}
	}
	return nil
}

func indexOf(g *Graph, id NodeID) (Node, bool) {
	if int(id) < 0 || int(id) >= len(g.Nodes) {
		return Node{}, false
	}
	return g.Nodes[id], true
}

// checkAdjacency implements the physical adjacency and pin-class rules
// of §4.5 step 3 for one hop (u,v). A SOURCE's PtcNum is its pin class;
// an OPIN's PtcNum is the physical pin it represents. arch.PinClassOf
// resolves the latter back to a class so the two can be compared; pad
// pins have no PinClass membership, so a lookup error there is not a
// violation, it just means there is nothing to cross-check.
func checkAdjacency(arch *vtrcore.Architecture, u NodeID, un Node, v NodeID, vn Node) error {
	switch {
	case un.Kind == Source && vn.Kind == Opin:
		if un.Xlow != vn.Xlow || un.Ylow != vn.Ylow {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "SOURCE->OPIN not at same location", "u", u, "v", v)
		}
		if class, err := arch.PinClassOf(vn.PtcNum); err == nil && class != un.PtcNum {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "SOURCE->OPIN pin class mismatch", "u", u, "v", v, "source_class", un.PtcNum, "opin_class", class)
		}
	case un.Kind == Ipin && vn.Kind == Sink:
		if un.Xlow != vn.Xlow || un.Ylow != vn.Ylow {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "IPIN->SINK not at same location", "u", u, "v", v)
		}
		if class, err := arch.PinClassOf(un.PtcNum); err == nil && class != vn.PtcNum {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "IPIN->SINK pin class mismatch", "u", u, "v", v, "ipin_class", class, "sink_class", vn.PtcNum)
		}
	case un.Kind == Opin && vn.Kind.IsChan():
		if !spanContains(vn, un.Xlow, un.Ylow) {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "OPIN not adjacent to channel span", "u", u, "v", v)
		}
	case un.Kind.IsChan() && vn.Kind == Ipin:
		if !spanContains(un, vn.Xlow, vn.Ylow) {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "channel span does not reach IPIN", "u", u, "v", v)
		}
	case un.Kind == Chanx && vn.Kind == Chanx:
		if un.Ylow != vn.Ylow {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "CHANX->CHANX not in same row", "u", u, "v", v)
		}
		if !(vn.Xhigh == un.Xlow-1 || un.Xhigh == vn.Xlow-1 || spansOverlap(un.Xlow, un.Xhigh, vn.Xlow, vn.Xhigh)) {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "Non-adjacent segments in traceback", "u", u, "v", v)
		}
	case un.Kind == Chany && vn.Kind == Chany:
		if un.Xlow != vn.Xlow {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "CHANY->CHANY not in same column", "u", u, "v", v)
		}
		if !(vn.Yhigh == un.Ylow-1 || un.Yhigh == vn.Ylow-1 || spansOverlap(un.Ylow, un.Yhigh, vn.Ylow, vn.Yhigh)) {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "CHANY->CHANY non-adjacent segments in traceback", "u", u, "v", v)
		}
	case un.Kind.IsChan() && vn.Kind.IsChan():
		if !(spansOverlap(un.Xlow, un.Xhigh, vn.Xlow, vn.Xhigh) && spansOverlap(un.Ylow, un.Yhigh, vn.Ylow, vn.Yhigh)) {
			return vtrcore.Fatal(vtrcore.ErrCheckViolation, "CHANX/CHANY spans do not intersect", "u", u, "v", v)
		}
	default:
		return vtrcore.Fatal(vtrcore.ErrCheckViolation, "illegal node-kind pairing in trace", "u", u, "v", v, "from_kind", un.Kind.String(), "to_kind", vn.Kind.String())
	}
	return nil
}

func spanContains(n Node, x, y int) bool {
	return x >= n.Xlow && x <= n.Xhigh && y >= n.Ylow && y <= n.Yhigh
}

func spansOverlap(lo1, hi1, lo2, hi2 int) bool {
	return lo1 <= hi2 && lo2 <= hi1
}
