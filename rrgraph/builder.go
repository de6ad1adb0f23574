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

import (
	"math"

	"github.com/verilog-to-routing/vtr-rrgraph-core/config"

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

// Builder constructs one RR-graph from an architecture, netlist, and
// placement under a BuildConfig (§4.3). A Builder may only build once;
// attempting a second build without releasing the first is rejected, per
// the §5 single-build-at-a-time contract.
type Builder struct {
	arch  *vtrcore.Architecture
	nl    *vtrcore.Netlist
	pl    *vtrcore.Placement
	cfg   *config.BuildConfig
	built bool
}

// NewBuilder returns a Builder over the given inputs.
func NewBuilder(arch *vtrcore.Architecture, nl *vtrcore.Netlist, pl *vtrcore.Placement, cfg *config.BuildConfig) *Builder {
	return &Builder{arch: arch, nl: nl, pl: pl, cfg: cfg}
}

type pinClassNodes struct {
	// driverSource[block][class] and receiverSink[block][class] hold the
	// SOURCE/SINK node for a cluster's pin classes.
	driverSource   map[[2]int]NodeID
	receiverSink   map[[2]int]NodeID
	opinOfPin      map[[2]int]NodeID
	ipinOfPin      map[[2]int]NodeID
}

// Build runs the full C3 pipeline and returns the completed graph. ctx is
// used to register teardown of intermediate state on any exit path.
func (b *Builder) Build(ctx *vtrcore.Context) (*Graph, error) {
	if b.built {
		return nil, vtrcore.Fatal(vtrcore.ErrRRGraphImpossible, "builder already produced a graph; free it before building again")
	}
	b.built = true
	ctx.OnCancel(func() { b.built = false })

	w := b.cfg.ChannelWidth
	maxDim := b.pl.Width
	if b.pl.Height > maxDim {
		maxDim = b.pl.Height
	}

	segs, err := AllocateSegments(b.arch.SegmentTypes, w, maxDim)
	if err != nil {
		return nil, err
	}

	warnings := &vtrcore.WarningSet{}
	g := &Graph{
		NetRRTerminals: make([][]NodeID, len(b.nl.Nets)),
		RRClbSource:    make(map[[2]int]NodeID),
	}

	nodes := pinClassNodes{
		driverSource: make(map[[2]int]NodeID),
		receiverSink: make(map[[2]int]NodeID),
		opinOfPin:    make(map[[2]int]NodeID),
		ipinOfPin:    make(map[[2]int]NodeID),
	}

	// Step 1/2: SOURCE/SINK/OPIN/IPIN per cluster location (§4.3.5).
	for blkIdx, blk := range b.nl.Blocks {
		loc := b.pl.BlockLoc[blkIdx]
		if blk.Kind != vtrcore.BlockLogicCluster {
			continue
		}
		if err := b.emitClusterTerminals(g, &nodes, blkIdx, loc, w, warnings); err != nil {
			return nil, err
		}
	}

	// Pads: io_rat copies at each pad location (§4.3.5).
	for blkIdx, blk := range b.nl.Blocks {
		if blk.Kind != vtrcore.BlockInputPad && blk.Kind != vtrcore.BlockOutputPad && blk.Kind != vtrcore.BlockIO {
			continue
		}
		loc := b.pl.BlockLoc[blkIdx]
		if err := b.emitPadTerminals(g, &nodes, blkIdx, loc, w, warnings); err != nil {
			return nil, err
		}
	}

	// Step 3: CHANX/CHANY per segment start position, plus their edges.
	chanxAt := make(map[[2]int][]NodeID) // (x,y) -> CHANX nodes starting there (row y)
	chanyAt := make(map[[2]int][]NodeID) // (x,y) -> CHANY nodes starting there (col x)

	for y := 0; y < b.pl.Height; y++ {
		for x := 0; x < b.pl.Width; x++ {
			for t, tr := range segs {
				if startsHere(x, tr) {
					xhigh := minInt(x+tr.Length-1, b.pl.Width-1)
					id := g.addNode(Node{Kind: Chanx, Xlow: x, Ylow: y, Xhigh: xhigh, Yhigh: y, PtcNum: t,
						R: tr.RMetal * float64(xhigh-x+1), C: tr.CMetal * float64(xhigh-x+1)})
					chanxAt[[2]int{x, y}] = append(chanxAt[[2]int{x, y}], id)
				}
				if startsHere(y, tr) {
					yhigh := minInt(y+tr.Length-1, b.pl.Height-1)
					id := g.addNode(Node{Kind: Chany, Xlow: x, Ylow: y, Xhigh: x, Yhigh: yhigh, PtcNum: t,
						R: tr.RMetal * float64(yhigh-y+1), C: tr.CMetal * float64(yhigh-y+1)})
					chanyAt[[2]int{x, y}] = append(chanyAt[[2]int{x, y}], id)
				}
			}
		}
	}

	cbByClass, err := b.buildConnectionBoxes(w, warnings)
	if err != nil {
		return nil, err
	}
	fcPad := config.ResolveFc(b.cfg.DetailedParams.FcPad, w, false)

	if err := b.wireWires(g, &nodes, segs, chanxAt, chanyAt, w, cbByClass, fcPad, warnings); err != nil {
		return nil, err
	}

	if err := b.wireOpins(g, &nodes, segs, chanxAt, chanyAt, cbByClass, fcPad, warnings); err != nil {
		return nil, err
	}

	g.index = nil // force rebuild on first query
	return g, nil
}

func startsHere(pos int, tr TrackSegment) bool {
	if tr.Length <= 0 {
		return false
	}
	return mod(pos-(tr.Start-1), tr.Length) == 0
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (g *Graph) addNode(n Node) NodeID {
	id := NodeID(len(g.Nodes))
	g.Nodes = append(g.Nodes, n)
	return id
}

// emitClusterTerminals emits SOURCE/SINK/OPIN/IPIN nodes for one cluster
// and wires SOURCE->OPIN, IPIN->SINK with the delayless switch.
func (b *Builder) emitClusterTerminals(g *Graph, nodes *pinClassNodes, blkIdx int, loc vtrcore.Loc, w int, warnings *vtrcore.WarningSet) error {
	for ci, class := range b.arch.PinClasses {
		switch class.Kind {
		case vtrcore.ClassDriver:
			src := g.addNode(Node{Kind: Source, Xlow: loc.X, Ylow: loc.Y, Xhigh: loc.X, Yhigh: loc.Y, PtcNum: ci, Capacity: len(class.Pins)})
			nodes.driverSource[[2]int{blkIdx, ci}] = src
			g.RRClbSource[[2]int{blkIdx, ci}] = src
			for _, pin := range class.Pins {
				opin := g.addNode(Node{Kind: Opin, Xlow: loc.X, Ylow: loc.Y, Xhigh: loc.X, Yhigh: loc.Y, PtcNum: pin, Capacity: 1})
				nodes.opinOfPin[[2]int{blkIdx, pin}] = opin
				g.Nodes[src].Edges = append(g.Nodes[src].Edges, Edge{To: opin, Switch: b.arch.DelaylessSwitch})
			}
		case vtrcore.ClassReceiver:
			sink := g.addNode(Node{Kind: Sink, Xlow: loc.X, Ylow: loc.Y, Xhigh: loc.X, Yhigh: loc.Y, PtcNum: ci, Capacity: len(class.Pins)})
			nodes.receiverSink[[2]int{blkIdx, ci}] = sink
			g.RRClbSource[[2]int{blkIdx, ci}] = sink
			for _, pin := range class.Pins {
				ipin := g.addNode(Node{Kind: Ipin, Xlow: loc.X, Ylow: loc.Y, Xhigh: loc.X, Yhigh: loc.Y, PtcNum: pin, Capacity: 1})
				nodes.ipinOfPin[[2]int{blkIdx, pin}] = ipin
				g.Nodes[ipin].Edges = append(g.Nodes[ipin].Edges, Edge{To: sink, Switch: b.arch.DelaylessSwitch})
			}
		}
	}
	return nil
}

// emitPadTerminals emits io_rat copies of {SOURCE,SINK,OPIN,IPIN} for a
// pad block and wires SOURCE->OPIN, IPIN->SINK; the OPIN's Fc_pad track
// edges are added later by wireOpins.
func (b *Builder) emitPadTerminals(g *Graph, nodes *pinClassNodes, blkIdx int, loc vtrcore.Loc, w int, warnings *vtrcore.WarningSet) error {
	ioRat := b.arch.IORat
	if ioRat < 1 {
		ioRat = 1
	}
	for copyIdx := 0; copyIdx < ioRat; copyIdx++ {
		src := g.addNode(Node{Kind: Source, Xlow: loc.X, Ylow: loc.Y, Xhigh: loc.X, Yhigh: loc.Y, PtcNum: copyIdx, Capacity: 1})
		sink := g.addNode(Node{Kind: Sink, Xlow: loc.X, Ylow: loc.Y, Xhigh: loc.X, Yhigh: loc.Y, PtcNum: copyIdx, Capacity: 1})
		opin := g.addNode(Node{Kind: Opin, Xlow: loc.X, Ylow: loc.Y, Xhigh: loc.X, Yhigh: loc.Y, PtcNum: copyIdx, Capacity: 1})
		ipin := g.addNode(Node{Kind: Ipin, Xlow: loc.X, Ylow: loc.Y, Xhigh: loc.X, Yhigh: loc.Y, PtcNum: copyIdx, Capacity: 1})
		g.Nodes[src].Edges = append(g.Nodes[src].Edges, Edge{To: opin, Switch: b.arch.DelaylessSwitch})
		g.Nodes[ipin].Edges = append(g.Nodes[ipin].Edges, Edge{To: sink, Switch: b.arch.DelaylessSwitch})
		nodes.opinOfPin[[2]int{blkIdx, copyIdx}] = opin
		nodes.ipinOfPin[[2]int{blkIdx, copyIdx}] = ipin

		fcPad := config.ResolveFc(b.cfg.DetailedParams.FcPad, w, false)
		if fcPad <= 0 {
			return vtrcore.Fatal(vtrcore.ErrRRGraphImpossible, "pad OPIN connects to zero tracks", "block", blkIdx)
		}
	}
	return nil
}

// buildConnectionBoxes computes the Fc-limited OPIN/IPIN connectivity
// table for every DRIVER/RECEIVER pin class (§4.3.4), keyed by class
// index, ready for wireOpins/wireWires to consult instead of the
// blanket CB-mask loop.
func (b *Builder) buildConnectionBoxes(w int, warnings *vtrcore.WarningSet) (map[int]*ConnectionBoxTables, error) {
	fcOut := config.ResolveFc(b.cfg.DetailedParams.FcOutput, w, true)
	fcIn := config.ResolveFc(b.cfg.DetailedParams.FcInput, w, false)

	cbByClass := make(map[int]*ConnectionBoxTables, len(b.arch.PinClasses))
	for ci, class := range b.arch.PinClasses {
		switch class.Kind {
		case vtrcore.ClassDriver:
			tbl, err := BuildConnectionBox(b.arch, ci, w, fcOut, true, float64(w)/float64(fcOut), warnings)
			if err != nil {
				return nil, err
			}
			cbByClass[ci] = tbl
		case vtrcore.ClassReceiver:
			tbl, err := BuildConnectionBox(b.arch, ci, w, fcIn, false, float64(w)/float64(fcIn), warnings)
			if err != nil {
				return nil, err
			}
			cbByClass[ci] = tbl
		}
	}
	return cbByClass, nil
}

// padTracks round-robin distributes the copyIdx'th of total io_rat pad
// copies across fc of the w channel tracks, using the same formula as
// BuildConnectionBox (§4.3.4). Pad pins are not members of any
// Architecture PinClass, so they cannot go through BuildConnectionBox
// itself, which indexes pins by class membership.
func padTracks(copyIdx, total, fc, w int) []int {
	if fc <= 0 || total <= 0 || w <= 0 {
		return nil
	}
	step := float64(w) / (float64(fc) * float64(total))
	tracks := make([]int, 0, fc)
	for j := 0; j < fc; j++ {
		t := int(math.Mod(float64(copyIdx)*step+float64(j)*float64(w)/float64(fc), float64(w)))
		tracks = append(tracks, t)
	}
	return tracks
}

// pinTracks returns the Fc-limited set of channel tracks pin (on block
// blkIdx) connects to (§4.3.4): a cluster pin's tracks come from its
// architecture pin class's connection-box table; a pad pin belongs to
// no PinClass; and so is round-robin distributed directly via
// padTracks.
func (b *Builder) pinTracks(blkIdx, pin int, cbByClass map[int]*ConnectionBoxTables, fcPad, ioRat, w int) []int {
	if b.nl.Blocks[blkIdx].Kind != vtrcore.BlockLogicCluster {
		return padTracks(pin, ioRat, fcPad, w)
	}
	class, err := b.arch.PinClassOf(pin)
	if err != nil {
		return nil
	}
	tbl := cbByClass[class]
	if tbl == nil {
		return nil
	}
	seen := make(map[int]bool)
	var tracks []int
	for _, side := range b.arch.PinSides(pin) {
		for _, t := range tbl.TracksOf[pin][sideOrdinal(side)] {
			if !seen[t] {
				seen[t] = true
				tracks = append(tracks, t)
			}
		}
	}
	return tracks
}

// wireOpins connects cluster/pad OPINs to the tracks their Fc-limited
// connection-box table reaches, using opin_switch (§4.3.4, §4.3.5 step
// 2).
func (b *Builder) wireOpins(g *Graph, nodes *pinClassNodes, segs []TrackSegment, chanxAt, chanyAt map[[2]int][]NodeID, cbByClass map[int]*ConnectionBoxTables, fcPad int, warnings *vtrcore.WarningSet) error {
	ioRat := b.arch.IORat
	if ioRat < 1 {
		ioRat = 1
	}
	w := len(segs)

	for key, opinID := range nodes.opinOfPin {
		blkIdx, pin := key[0], key[1]
		loc := b.pl.BlockLoc[blkIdx]

		for _, t := range b.pinTracks(blkIdx, pin, cbByClass, fcPad, ioRat, w) {
			if t < 0 || t >= len(segs) {
				continue
			}
			sw := segs[t].OpinSwitch
			if row, ok := chanxAt[[2]int{loc.X, loc.Y}]; ok {
				for _, cid := range row {
					if int(g.Nodes[cid].PtcNum) == t {
						g.Nodes[opinID].Edges = append(g.Nodes[opinID].Edges, Edge{To: cid, Switch: sw})
					}
				}
			}
			if col, ok := chanyAt[[2]int{loc.X, loc.Y}]; ok {
				for _, cid := range col {
					if int(g.Nodes[cid].PtcNum) == t {
						g.Nodes[opinID].Edges = append(g.Nodes[opinID].Edges, Edge{To: cid, Switch: sw})
					}
				}
			}
		}
	}
	return nil
}

// ipinAtLoc is an IPIN located at a grid cell, kept alongside the
// owning block/pin so its Fc-limited reachable-track set (§4.3.4) can
// be consulted rather than wiring it to every CB-marked track blindly.
type ipinAtLoc struct {
	id     NodeID
	blkIdx int
	pin    int
}

// wireWires adds wire->IPIN, wire->orthogonal-wire, and wire->same-
// direction-wire edges (§4.3.5 step 3, §4.3.6 reconciliation), and
// applies the electrical roll-up (§4.3.7).
func (b *Builder) wireWires(g *Graph, nodes *pinClassNodes, segs []TrackSegment, chanxAt, chanyAt map[[2]int][]NodeID, w int, cbByClass map[int]*ConnectionBoxTables, fcPad int, warnings *vtrcore.WarningSet) error {
	sbType := string(b.cfg.DetailedParams.SwitchBlockType)
	ioRat := b.arch.IORat
	if ioRat < 1 {
		ioRat = 1
	}

	// wire -> IPIN: CB mask marks where a connection box physically
	// exists along the wire's span; within that, only the specific
	// tracks the IPIN's Fc table selected are actually wired (§4.3.4).
	ipinAt := make(map[[2]int][]ipinAtLoc)
	for key, id := range nodes.ipinOfPin {
		blkIdx, pin := key[0], key[1]
		loc := b.pl.BlockLoc[blkIdx]
		ipinAt[[2]int{loc.X, loc.Y}] = append(ipinAt[[2]int{loc.X, loc.Y}], ipinAtLoc{id: id, blkIdx: blkIdx, pin: pin})
	}

	for key, row := range chanxAt {
		loc := vtrcore.Loc{X: key[0], Y: key[1]}
		for _, cid := range row {
			n := &g.Nodes[cid]
			tr := segs[n.PtcNum]
			for x := n.Xlow; x <= n.Xhigh; x++ {
				pos := x - n.Xlow
				if pos < len(tr.CB) && tr.CB[pos] {
					if ipins, ok := ipinAt[[2]int{x, loc.Y}]; ok {
						for _, ip := range ipins {
							if containsTrack(b.pinTracks(ip.blkIdx, ip.pin, cbByClass, fcPad, ioRat, w), int(n.PtcNum)) {
								n.Edges = append(n.Edges, Edge{To: ip.id, Switch: b.arch.WireToIpinSwitch})
							}
						}
					}
				}
			}
			// switch-box turns at both ends
			b.wireEndpoints(g, cid, Chanx, segs, chanxAt, chanyAt, sbType)
		}
	}
	for key, col := range chanyAt {
		loc := vtrcore.Loc{X: key[0], Y: key[1]}
		for _, cid := range col {
			n := &g.Nodes[cid]
			tr := segs[n.PtcNum]
			for y := n.Ylow; y <= n.Yhigh; y++ {
				pos := y - n.Ylow
				if pos < len(tr.CB) && tr.CB[pos] {
					if ipins, ok := ipinAt[[2]int{loc.X, y}]; ok {
						for _, ip := range ipins {
							if containsTrack(b.pinTracks(ip.blkIdx, ip.pin, cbByClass, fcPad, ioRat, w), int(n.PtcNum)) {
								n.Edges = append(n.Edges, Edge{To: ip.id, Switch: b.arch.WireToIpinSwitch})
							}
						}
					}
				}
			}
			b.wireEndpoints(g, cid, Chany, segs, chanxAt, chanyAt, sbType)
		}
	}

	b.electricalRollup(g, segs)
	return nil
}

func containsTrack(tracks []int, t int) bool {
	for _, v := range tracks {
		if v == t {
			return true
		}
	}
	return false
}

// wireEndpoints adds the switch-block turn edges at both ends of wire
// cid, de-duplicating destinations per source as required by §4.3.6.
func (b *Builder) wireEndpoints(g *Graph, cid NodeID, kind Kind, segs []TrackSegment, chanxAt, chanyAt map[[2]int][]NodeID, sbType string) {
	n := &g.Nodes[cid]
	tr := segs[n.PtcNum]
	seen := make(map[NodeID]bool)

	fromSwitch, fromErr := b.arch.Switch(tr.WireSwitch)

	endpoints := []struct {
		x, y int
		side vtrcore.Side
	}{}
	if kind == Chanx {
		endpoints = append(endpoints,
			struct {
				x, y int
				side vtrcore.Side
			}{n.Xlow, n.Ylow, vtrcore.Left},
			struct {
				x, y int
				side vtrcore.Side
			}{n.Xhigh, n.Ylow, vtrcore.Right})
	} else {
		endpoints = append(endpoints,
			struct {
				x, y int
				side vtrcore.Side
			}{n.Xlow, n.Ylow, vtrcore.Bottom},
			struct {
				x, y int
				side vtrcore.Side
			}{n.Xhigh, n.Yhigh, vtrcore.Top})
	}

	for _, ep := range endpoints {
		sbIdx := 0
		if ep.side == vtrcore.Right || ep.side == vtrcore.Top {
			sbIdx = len(tr.SB) - 1
		}
		fromWants := sbIdx < len(tr.SB) && tr.SB[sbIdx]

		for _, toSide := range vtrcore.AllSides {
			if toSide == ep.side {
				continue
			}
			toTrack, ok := TrackPair(ep.side, toSide, n.PtcNum, len(segs), sbType)
			if !ok || toTrack >= len(segs) {
				continue
			}
			var dests []NodeID
			if toSide == vtrcore.Left || toSide == vtrcore.Right {
				dests = chanxAt[[2]int{ep.x, ep.y}]
			} else {
				dests = chanyAt[[2]int{ep.x, ep.y}]
			}

			// chanxAt/chanyAt index wires by their starting position, so
			// any destination found there is at the low (start) end of
			// its own span: its SB-wants bit is always SB[0] (§4.3.6).
			destTr := segs[toTrack]
			toWants := len(destTr.SB) > 0 && destTr.SB[0]
			toSwitch, toErr := b.arch.Switch(destTr.WireSwitch)
			if fromErr != nil || toErr != nil {
				continue
			}

			result := Reconcile(fromWants, toWants, tr.WireSwitch, destTr.WireSwitch, fromSwitch, toSwitch)
			if result.ForwardSwitch == nil {
				continue
			}

			for _, d := range dests {
				if int(g.Nodes[d].PtcNum) != toTrack || d == cid {
					continue
				}
				if seen[d] {
					continue
				}
				seen[d] = true
				n.Edges = append(n.Edges, Edge{To: d, Switch: *result.ForwardSwitch})
			}
		}
	}
}

// electricalRollup implements §4.3.7: for every edge it adds the
// switch's Cout to the from node's C and its Cin to the to node's C, and
// fills the CostEntries chain-delay table. No per-connection-box input
// capacitance term is added.
func (b *Builder) electricalRollup(g *Graph, segs []TrackSegment) {
	for i := range g.Nodes {
		n := &g.Nodes[i]
		for _, e := range n.Edges {
			sw, err := b.arch.Switch(e.Switch)
			if err != nil {
				continue
			}
			n.C += sw.Cout
			g.Nodes[e.To].C += sw.Cin
		}
	}

	g.CostEntries = make([]CostEntry, len(segs))
	for i, tr := range segs {
		sw, err := b.arch.Switch(tr.WireSwitch)
		entry := CostEntry{SegIndex: i}
		if tr.Length > 0 {
			entry.InvLength = 1.0 / float64(tr.Length)
		}
		if err == nil {
			if sw.Buffered {
				entry.TLinear = sw.UnloadedDelay()
				entry.TQuadratic = 0
				entry.CLoad = 0
			} else {
				entry.TLinear = sw.TDelay
				entry.TQuadratic = sw.R * tr.CMetal
				entry.CLoad = tr.CMetal
			}
		}
		g.CostEntries[i] = entry
	}
}
