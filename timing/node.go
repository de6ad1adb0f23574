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

// Package timing builds the timing graph (§3, §4.6) and runs static
// timing analysis over it (§4.7): levelization, a forward arrival-time
// pass, a backward required-time pass, slack, and critical-path
// extraction.
package timing

// Kind is one of the eleven timing-node kinds (§3).
type Kind int

const (
	InpadSource Kind = iota
	InpadOpin
	OutpadIpin
	OutpadSink
	ClbIpin
	ClbOpin
	SubblkIpin
	SubblkOpin
	FFSource
	FFSink
	ConstantGenSource
)

func (k Kind) String() string {
	switch k {
	case InpadSource:
		return "INPAD_SOURCE"
	case InpadOpin:
		return "INPAD_OPIN"
	case OutpadIpin:
		return "OUTPAD_IPIN"
	case OutpadSink:
		return "OUTPAD_SINK"
	case ClbIpin:
		return "CLB_IPIN"
	case ClbOpin:
		return "CLB_OPIN"
	case SubblkIpin:
		return "SUBBLK_IPIN"
	case SubblkOpin:
		return "SUBBLK_OPIN"
	case FFSource:
		return "FF_SOURCE"
	case FFSink:
		return "FF_SINK"
	case ConstantGenSource:
		return "CONSTANT_GEN_SOURCE"
	default:
		return "UNKNOWN"
	}
}

// NodeID indexes into Graph.Nodes.
type NodeID int

// TEdge is a directed timing-graph edge; delays live on edges, not on
// nodes (§3).
type TEdge struct {
	To     NodeID
	TDelay float64
}

// TNode is one timing-graph node (§3).
type TNode struct {
	Kind       Kind
	OwnerBlock int
	PinIdx     int // cluster pin index, or Open (-1) if not pin-addressed
	SubblkIdx  int // subblock index, or Open (-1) if not subblock-addressed
	OutEdges   []TEdge

	TArr float64
	TReq float64
}

// Graph is the complete timing graph for one build.
type Graph struct {
	Nodes []TNode

	// NetToDriverTNode[net] is the timing node that drives net, so edge
	// delays can be set externally via LoadNetDelays (§4.7.5).
	NetToDriverTNode []NodeID

	Levels      [][]NodeID
	NumSinks    int
	TCrit       float64
}

// Open mirrors the netlist sentinel for "no pin/subblock reference".
const Open = -1

func (g *Graph) addNode(n TNode) NodeID {
	id := NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, n)
	return id
}
