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
	"github.com/verilog-to-routing/vtr-rrgraph-core/config"

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

// Builder constructs a timing graph over an architecture and netlist
// (C6/§4.6).
type Builder struct {
	arch *vtrcore.Architecture
	nl   *vtrcore.Netlist
	tp   config.TimingParams
}

// NewBuilder returns a Builder over the given inputs.
func NewBuilder(arch *vtrcore.Architecture, nl *vtrcore.Netlist, tp config.TimingParams) *Builder {
	return &Builder{arch: arch, nl: nl, tp: tp}
}

// pinNode is the timing node representing one block's external pin,
// whatever kind that pin resolves to given the owning block's kind.
type pinNode struct {
	id   NodeID
	kind Kind
}

// Build constructs the complete timing graph.
//
// The FF_SOURCE node of a sequential subblock is wired with a real
// incoming edge from the clock-driving cluster pin (delay 0), rather
// than left with zero in-edges as a "pseudo source": this lets ordinary
// level-by-level forward propagation carry clock-network delay into
// T_arr without a separate clock pass. (Decision recorded in DESIGN.md.)
func (b *Builder) Build() (*Graph, error) {
	g := &Graph{
		NetToDriverTNode: make([]NodeID, len(b.nl.Nets)),
	}
	for i := range g.NetToDriverTNode {
		g.NetToDriverTNode[i] = -1
	}

	pinNodes := make(map[[2]int]pinNode)

	// Pass 1: one node per used external pin of every block.
	for bi, blk := range b.nl.Blocks {
		switch blk.Kind {
		case vtrcore.BlockLogicCluster:
			for pin, net := range blk.Nets {
				if net == vtrcore.Open {
					continue
				}
				class, err := b.arch.PinClassOf(pin)
				if err != nil {
					return nil, err
				}
				kind, _ := b.arch.ClassKind(class)
				if kind == vtrcore.ClassDriver {
					id := g.addNode(TNode{Kind: ClbOpin, OwnerBlock: bi, PinIdx: pin, SubblkIdx: Open})
					pinNodes[[2]int{bi, pin}] = pinNode{id, ClbOpin}
					g.NetToDriverTNode[net] = id
				} else {
					id := g.addNode(TNode{Kind: ClbIpin, OwnerBlock: bi, PinIdx: pin, SubblkIdx: Open})
					pinNodes[[2]int{bi, pin}] = pinNode{id, ClbIpin}
				}
			}
		case vtrcore.BlockInputPad:
			net := blk.Nets[0]
			src := g.addNode(TNode{Kind: InpadSource, OwnerBlock: bi, PinIdx: 0, SubblkIdx: Open, TArr: 0})
			delay := b.tp.TIpad
			if net != vtrcore.Open && b.nl.Nets[net].Global && b.isClockNet(net) {
				delay = 0
			}
			opin := g.addNode(TNode{Kind: InpadOpin, OwnerBlock: bi, PinIdx: 0, SubblkIdx: Open})
			g.Nodes[src].OutEdges = append(g.Nodes[src].OutEdges, TEdge{To: opin, TDelay: delay})
			pinNodes[[2]int{bi, 0}] = pinNode{opin, InpadOpin}
			if net != vtrcore.Open {
				g.NetToDriverTNode[net] = opin
			}
		case vtrcore.BlockOutputPad, vtrcore.BlockIO:
			ipin := g.addNode(TNode{Kind: OutpadIpin, OwnerBlock: bi, PinIdx: 0, SubblkIdx: Open})
			sink := g.addNode(TNode{Kind: OutpadSink, OwnerBlock: bi, PinIdx: 0, SubblkIdx: Open})
			g.Nodes[ipin].OutEdges = append(g.Nodes[ipin].OutEdges, TEdge{To: sink, TDelay: b.tp.TOpad})
			pinNodes[[2]int{bi, 0}] = pinNode{ipin, OutpadIpin}
		}
	}

	// Pass 2: subblocks, in the teacher-style per-cluster then per-
	// subblock order so SUBBLK_IPIN/SUBBLK_OPIN node allocation is
	// deterministic.
	for bi, blk := range b.nl.Blocks {
		if blk.Kind != vtrcore.BlockLogicCluster {
			continue
		}
		for si, sb := range blk.Subblocks {
			if err := b.wireSubblock(g, pinNodes, bi, si, sb); err != nil {
				return nil, err
			}
		}
	}

	// Pass 3: OPIN -> net sinks, preserving net.Pins[1:] ordering
	// (§4.6 ordering invariant: edge[k] <-> net.pins[k+1]).
	for _, net := range b.nl.Nets {
		driver := net.Driver()
		dn, ok := pinNodes[[2]int{driver.Block, driver.BlkPin}]
		if !ok {
			continue
		}
		for _, sink := range net.Sinks() {
			sn, ok := pinNodes[[2]int{sink.Block, sink.BlkPin}]
			if !ok {
				continue
			}
			g.Nodes[dn.id].OutEdges = append(g.Nodes[dn.id].OutEdges, TEdge{To: sn.id, TDelay: 0})
		}
	}

	return g, nil
}

// isClockNet reports whether net is used as any subblock's clock pin
// anywhere in the netlist.
func (b *Builder) isClockNet(net int) bool {
	for _, blk := range b.nl.Blocks {
		if blk.Kind != vtrcore.BlockLogicCluster {
			continue
		}
		for _, sb := range blk.Subblocks {
			if sb.Clock == vtrcore.Open {
				continue
			}
			ref := vtrcore.DecodePinRef(sb.Clock, b.arch.PinsPerCLB)
			if !ref.IsSubblockOutput && blk.Nets[ref.Index] == net {
				return true
			}
		}
	}
	return false
}

// wireSubblock allocates and wires the timing nodes for one subblock
// (§4.6): SUBBLK_IPIN per used input, SUBBLK_OPIN if the output is
// used, and the constant-generator / sequential extra nodes.
func (b *Builder) wireSubblock(g *Graph, pinNodes map[[2]int]pinNode, bi, si int, sb vtrcore.Subblock) error {
	if sb.Output == vtrcore.Open {
		return nil // unused subblock: no timing nodes at all
	}

	numInputs := 0
	for _, in := range sb.Inputs {
		if in != vtrcore.Open {
			numInputs++
		}
	}
	sequential := sb.Clock != vtrcore.Open

	opin := g.addNode(TNode{Kind: SubblkOpin, OwnerBlock: bi, PinIdx: Open, SubblkIdx: si})

	// Expose the subblock's own output at hidden-pin index
	// pins_per_clb+si so downstream subblocks in this cluster resolve
	// PinRef{IsSubblockOutput:true, Index:si} to this node.
	pinNodes[[2]int{bi, b.arch.PinsPerCLB + si}] = pinNode{opin, SubblkOpin}

	if sb.Output < b.arch.PinsPerCLB {
		if clb, ok := pinNodes[[2]int{bi, sb.Output}]; ok {
			g.Nodes[opin].OutEdges = append(g.Nodes[opin].OutEdges, TEdge{To: clb.id, TDelay: b.tp.TSblkOpinToClbOpin})
		}
	}

	var sink NodeID = -1
	if sequential {
		sink = g.addNode(TNode{Kind: FFSink, OwnerBlock: bi, PinIdx: Open, SubblkIdx: si})

		clockRef := vtrcore.DecodePinRef(sb.Clock, b.arch.PinsPerCLB)
		var clockDriver pinNode
		var haveClockDriver bool
		if clockRef.IsSubblockOutput {
			clockDriver, haveClockDriver = pinNodes[[2]int{bi, b.arch.PinsPerCLB + clockRef.Index}]
		} else {
			clockDriver, haveClockDriver = pinNodes[[2]int{bi, clockRef.Index}]
		}
		ffSrc := g.addNode(TNode{Kind: FFSource, OwnerBlock: bi, PinIdx: Open, SubblkIdx: si})
		if haveClockDriver {
			g.Nodes[clockDriver.id].OutEdges = append(g.Nodes[clockDriver.id].OutEdges, TEdge{To: ffSrc, TDelay: 0})
		}
		g.Nodes[ffSrc].OutEdges = append(g.Nodes[ffSrc].OutEdges, TEdge{To: opin, TDelay: b.arch.Subblock.TSeqOut})
	}

	if numInputs == 0 && !sequential {
		// The -10^3 magnitude lives on the node's T_arr (set again by
		// ForwardPass's initialisation pass); the edge itself carries no
		// extra delay, so it isn't counted twice during propagation.
		dummy := g.addNode(TNode{Kind: ConstantGenSource, OwnerBlock: bi, PinIdx: Open, SubblkIdx: si, TArr: b.constGenDelay()})
		g.Nodes[dummy].OutEdges = append(g.Nodes[dummy].OutEdges, TEdge{To: opin, TDelay: 0})
		return nil
	}

	for _, in := range sb.Inputs {
		if in == vtrcore.Open {
			continue
		}
		ref := vtrcore.DecodePinRef(in, b.arch.PinsPerCLB)
		ipin := g.addNode(TNode{Kind: SubblkIpin, OwnerBlock: bi, PinIdx: Open, SubblkIdx: si})

		var driver pinNode
		var ok bool
		var delay float64
		if ref.IsSubblockOutput {
			driver, ok = pinNodes[[2]int{bi, b.arch.PinsPerCLB + ref.Index}]
			delay = b.tp.TSblkOpinToSblkIpin
		} else {
			driver, ok = pinNodes[[2]int{bi, ref.Index}]
			delay = b.tp.TClbIpinToSblkIpin
		}
		if ok {
			g.Nodes[driver.id].OutEdges = append(g.Nodes[driver.id].OutEdges, TEdge{To: ipin, TDelay: delay})
		}

		if sequential {
			g.Nodes[ipin].OutEdges = append(g.Nodes[ipin].OutEdges, TEdge{To: sink, TDelay: b.arch.Subblock.TSeqIn})
		} else {
			g.Nodes[ipin].OutEdges = append(g.Nodes[ipin].OutEdges, TEdge{To: opin, TDelay: b.arch.Subblock.TComb})
		}
	}
	return nil
}

// constGenDelay is T_CONST_GEN (§4.6): a large negative delay so a
// constant generator's output arrives effectively at -infinity.
func (b *Builder) constGenDelay() float64 {
	if b.tp.TConstGen != 0 {
		return b.tp.TConstGen
	}
	return -1e3
}
