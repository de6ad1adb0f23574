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

import (
	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
	"github.com/verilog-to-routing/vtr-rrgraph-core/noc"
)

// Algorithm finds a route for a traffic flow through a NoC model
// (§4.8.1, §6 "NoC routing").
type Algorithm interface {
	RouteFlow(src, dst noc.RouterID, flow noc.TrafficFlowID, model *noc.Storage) ([]noc.LinkID, error)
}

// turnModelPolicy is the strategy a concrete turn-model algorithm (XY,
// west-first, north-last, negative-first, odd-even) supplies to
// turnModel.RouteFlow: which directions are legal at the current router
// given where the flow started and where it's headed, and which of
// those legal directions to take when more than one remains.
//
// This mirrors the teacher's pattern of a shared orchestration method
// (TurnModelRouting::route_flow) driven by a small per-algorithm
// interface, one struct embedding the shared implementation per
// concrete policy.
type turnModelPolicy interface {
	legalDirections(src, curr, dst noc.RouterID, model *noc.Storage) []Direction
	selectDirection(legal []Direction, src, dst, curr noc.RouterID, flow noc.TrafficFlowID, model *noc.Storage) Direction
}

// turnModel implements route_flow (§4.8.1) once, on top of a policy's
// legalDirections/selectDirection. Embed it in each concrete algorithm.
type turnModel struct {
	policy turnModelPolicy
}

// RouteFlow walks the NoC from src to dst one link at a time, asking
// the policy for the legal directions at the current router and
// selecting among them, until dst is reached. A router already visited
// is never revisited, guarding against the algorithm oscillating
// forever when no route exists.
func (tm turnModel) RouteFlow(src, dst noc.RouterID, flow noc.TrafficFlowID, model *noc.Storage) ([]noc.LinkID, error) {
	var route []noc.LinkID
	visited := map[noc.RouterID]bool{src: true}
	curr := src

	for curr != dst {
		legal := tm.policy.legalDirections(src, curr, dst, model)
		if len(legal) == 0 {
			return nil, vtrcore.Fatal(vtrcore.ErrNocRouting, "no legal direction from router", "router", curr, "dst", dst, "flow", flow)
		}
		direction := tm.policy.selectDirection(legal, src, dst, curr, flow, model)

		next, link, ok := moveInDirection(curr, direction, visited, model)
		if !ok {
			return nil, vtrcore.Fatal(vtrcore.ErrNocRouting, "no outgoing link moves toward the selected direction without revisiting a router", "router", curr, "direction", direction.String(), "flow", flow)
		}
		route = append(route, link)
		visited[next] = true
		curr = next
	}
	return route, nil
}

// moveInDirection finds an outgoing link of curr that leads to an
// unvisited router positioned in direction relative to curr, and
// returns the router it leads to and the link taken.
func moveInDirection(curr noc.RouterID, direction Direction, visited map[noc.RouterID]bool, model *noc.Storage) (noc.RouterID, noc.LinkID, bool) {
	currLoc := model.Router(curr).Location
	for _, linkID := range model.OutgoingLinks(curr) {
		link := model.Link(linkID)
		nextLoc := model.Router(link.Sink).Location

		var matches bool
		switch direction {
		case Left:
			matches = nextLoc.X < currLoc.X
		case Right:
			matches = nextLoc.X > currLoc.X
		case Up:
			matches = nextLoc.Y > currLoc.Y
		case Down:
			matches = nextLoc.Y < currLoc.Y
		}
		if matches && !visited[link.Sink] {
			return link.Sink, linkID, true
		}
	}
	return 0, 0, false
}
