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

// BFS finds the shortest path (by link count, not distance) from
// source to sink by breadth-first search over the NoC's link
// connectivity. It is not deadlock-safe on its own — it forbids no
// turns — and is offered as the baseline against which the turn-model
// algorithms are measured (§6: create_routing_algorithm names it
// alongside the turn-model policies).
type BFS struct{}

// NewBFS returns a breadth-first-search routing algorithm.
func NewBFS() *BFS {
	return &BFS{}
}

// RouteFlow implements Algorithm.
func (BFS) RouteFlow(src, dst noc.RouterID, flow noc.TrafficFlowID, model *noc.Storage) ([]noc.LinkID, error) {
	if src == dst {
		return nil, nil
	}

	visited := map[noc.RouterID]bool{src: true}
	parentLink := make(map[noc.RouterID]noc.LinkID)
	queue := []noc.RouterID{src}
	found := false

	for len(queue) > 0 && !found {
		curr := queue[0]
		queue = queue[1:]

		for _, linkID := range model.OutgoingLinks(curr) {
			sink := model.Link(linkID).Sink
			if visited[sink] {
				continue
			}
			visited[sink] = true
			parentLink[sink] = linkID
			queue = append(queue, sink)
			if sink == dst {
				found = true
				break
			}
		}
	}

	if !found {
		return nil, vtrcore.Fatal(vtrcore.ErrNocRouting, "no path found between routers", "source", src, "sink", dst, "flow", flow)
	}

	var route []noc.LinkID
	for at := dst; at != src; {
		link := parentLink[at]
		route = append([]noc.LinkID{link}, route...)
		at = model.Link(link).Source
	}
	return route, nil
}
