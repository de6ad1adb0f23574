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
	"math"

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

// ForwardPass runs the §4.7.2 forward arrival-time pass: every node's
// T_arr is initialised to tConstGen, INPAD_SOURCE nodes are reset to 0,
// and then T_arr propagates level by level. Returns T_crit, the maximum
// T_arr seen over the whole graph.
func ForwardPass(g *Graph, tConstGen float64) float64 {
	for i := range g.Nodes {
		g.Nodes[i].TArr = tConstGen
	}
	for i, n := range g.Nodes {
		if n.Kind == InpadSource {
			g.Nodes[i].TArr = 0
		}
	}

	tCrit := tConstGen
	for _, level := range g.Levels {
		for _, id := range level {
			n := &g.Nodes[id]
			if n.TArr > tCrit {
				tCrit = n.TArr
			}
			for _, e := range n.OutEdges {
				cand := n.TArr + e.TDelay
				if cand > g.Nodes[e.To].TArr {
					g.Nodes[e.To].TArr = cand
				}
			}
		}
	}
	g.TCrit = tCrit
	return tCrit
}

// BackwardPass runs the §4.7.3 required-time pass. T_cycle is
// targetCycleTime if positive, else g.TCrit (which ForwardPass must have
// already set).
func BackwardPass(g *Graph, targetCycleTime float64) {
	tCycle := g.TCrit
	if targetCycleTime > 0 {
		tCycle = targetCycleTime
	}

	for i := range g.Nodes {
		if len(g.Nodes[i].OutEdges) == 0 {
			g.Nodes[i].TReq = tCycle
		} else {
			g.Nodes[i].TReq = math.MaxFloat64
		}
	}

	for lvl := len(g.Levels) - 1; lvl >= 0; lvl-- {
		for _, id := range g.Levels[lvl] {
			n := &g.Nodes[id]
			if len(n.OutEdges) == 0 {
				continue
			}
			min := math.MaxFloat64
			for _, e := range n.OutEdges {
				cand := g.Nodes[e.To].TReq - e.TDelay
				if cand < min {
					min = cand
				}
			}
			n.TReq = min
		}
	}
}

// ComputeSlacks computes slack[net][sink_idx] = T_req[sink] -
// T_arr[driver] - T_delay_of_net_edge (§4.7.4). Nets with no recorded
// driver (unused nets) get a nil row.
func ComputeSlacks(g *Graph, nl *vtrcore.Netlist) [][]float64 {
	out := make([][]float64, len(nl.Nets))
	for ni, net := range nl.Nets {
		driverID := g.NetToDriverTNode[ni]
		if driverID < 0 {
			continue
		}
		driver := g.Nodes[driverID]
		sinks := net.Sinks()
		row := make([]float64, len(sinks))
		for k := range sinks {
			if k >= len(driver.OutEdges) {
				break
			}
			e := driver.OutEdges[k]
			row[k] = g.Nodes[e.To].TReq - driver.TArr - e.TDelay
		}
		out[ni] = row
	}
	return out
}

// LoadNetDelays writes delays[net][k] into the k-th out-edge of net's
// driver timing node (§4.7.5), relying on the §4.6 ordering invariant
// that edge[k] corresponds to net.pins[k+1].
func LoadNetDelays(g *Graph, delays [][]float64) {
	for ni, row := range delays {
		driverID := g.NetToDriverTNode[ni]
		if driverID < 0 {
			continue
		}
		edges := g.Nodes[driverID].OutEdges
		for k, d := range row {
			if k >= len(edges) {
				break
			}
			edges[k].TDelay = d
		}
	}
}

// CriticalPath constructs the critical-path chain (§4.7.4): starting at
// the level-0 node with the smallest slack, follow at each step the
// out-edge leading to the node with the smallest slack.
func CriticalPath(g *Graph) []NodeID {
	if len(g.Levels) == 0 {
		return nil
	}
	start := NodeID(-1)
	best := math.MaxFloat64
	for _, id := range g.Levels[0] {
		s := g.Nodes[id].TReq - g.Nodes[id].TArr
		if start == -1 || s < best {
			start = id
			best = s
		}
	}
	if start == -1 {
		return nil
	}

	path := []NodeID{start}
	cur := start
	for {
		n := g.Nodes[cur]
		if len(n.OutEdges) == 0 {
			break
		}
		next := n.OutEdges[0].To
		bestSlack := math.MaxFloat64
		for _, e := range n.OutEdges {
			s := g.Nodes[e.To].TReq - n.TArr - e.TDelay
			if s < bestSlack {
				bestSlack = s
				next = e.To
			}
		}
		path = append(path, next)
		cur = next
	}
	return path
}
