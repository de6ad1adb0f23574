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

// Package rrgraph builds, checks, and validates routes against the
// routing-resource graph (§3, §4.3-4.5, §4.2 of the core spec): a large,
// sparse, typed directed graph over SOURCE/SINK/IPIN/OPIN/CHANX/CHANY
// nodes. Following the "sum-typed nodes" and "index-based graphs" design
// notes, nodes live in one contiguous slice and each node carries its
// out-edges as (to, switch) pairs addressed by index rather than pointer.
package rrgraph

import "fmt"

// Kind is one of the six RR-graph node kinds (§3).
type Kind int

const (
	Source Kind = iota
	Sink
	Ipin
	Opin
	Chanx
	Chany
)

func (k Kind) String() string {
	switch k {
	case Source:
		return "SOURCE"
	case Sink:
		return "SINK"
	case Ipin:
		return "IPIN"
	case Opin:
		return "OPIN"
	case Chanx:
		return "CHANX"
	case Chany:
		return "CHANY"
	default:
		return "UNKNOWN"
	}
}

// IsChan reports whether k is a wire-segment kind.
func (k Kind) IsChan() bool { return k == Chanx || k == Chany }

// NodeID indexes into Graph.Nodes.
type NodeID int

// Edge is a directed RR-graph edge, stored as (to, switch) pairs hung
// off the From node so that out-edges can be walked without a separate
// edge arena (§9: index-based graphs, a single arena suffices).
type Edge struct {
	To     NodeID
	Switch int // index into the architecture's SwitchTypes
}

// Node is one RR-graph node (§3). CHANX/CHANY span [Xlow..Xhigh] at
// Ylow==Yhigh, or [Ylow..Yhigh] at Xlow==Xhigh, respectively; SOURCE,
// SINK, IPIN, and OPIN are unit nodes with Xlow==Xhigh, Ylow==Yhigh.
type Node struct {
	Kind       Kind
	Xlow, Ylow   int
	Xhigh, Yhigh int
	PtcNum     int // class index | pin index | track index, depending on Kind
	CostIndex  int // index into Graph.CostEntries
	Capacity   int
	Occupancy  int
	R, C       float64
	Edges      []Edge
}

// CostEntry is the small table of cost profiles keyed by CostIndex
// (§3 RR-indexed data).
type CostEntry struct {
	BaseCost       float64
	OrthoCostIndex int
	SegIndex       int
	InvLength      float64
	TLinear        float64
	TQuadratic     float64
	CLoad          float64
}

// Graph is the complete routing-resource graph for one build. It is
// freed by simply dropping the reference (Go is garbage collected). The
// Builder that produced it rejects a second build until the Context
// passed to Build is closed, which runs the cleanup that clears the
// Builder's built flag (the §5 single-teardown-entry-point contract).
type Graph struct {
	Nodes       []Node
	CostEntries []CostEntry

	// NetRRTerminals[net][0] is the net's driver SOURCE; [1:] are SINKs.
	NetRRTerminals [][]NodeID
	// RRClbSource[block][class] is the SOURCE (DRIVER classes) or SINK
	// (RECEIVER classes) rooted at that block's cluster.
	RRClbSource map[[2]int]NodeID

	index *nodeIndex
}

func (g *Graph) String() string {
	return fmt.Sprintf("rrgraph.Graph{nodes=%d}", len(g.Nodes))
}

// CountByKind returns the number of nodes of each kind, used for
// logging and metrics.
func (g *Graph) CountByKind() map[Kind]int {
	out := make(map[Kind]int, 6)
	for _, n := range g.Nodes {
		out[n.Kind]++
	}
	return out
}

// NumEdges returns the total number of edges in the graph.
func (g *Graph) NumEdges() int {
	total := 0
	for _, n := range g.Nodes {
		total += len(n.Edges)
	}
	return total
}
