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

// NorthLast forbids every turn out of the north direction: once a flow
// starts moving north it may never turn again. So north is only
// offered when none of east, west, or south keep the route minimal
// (§4.8.2).
type NorthLast struct {
	turnModel
}

// NewNorthLast returns a north-last routing algorithm.
func NewNorthLast() *NorthLast {
	n := &NorthLast{}
	n.turnModel.policy = n
	return n
}

func (n *NorthLast) legalDirections(_, curr, dst noc.RouterID, model *noc.Storage) []Direction {
	currLoc, dstLoc := model.Router(curr).Location, model.Router(dst).Location
	var legal []Direction
	if dstLoc.X < currLoc.X {
		legal = append(legal, Left)
	} else if dstLoc.X > currLoc.X {
		legal = append(legal, Right)
	}
	if dstLoc.Y < currLoc.Y {
		legal = append(legal, Down)
	}
	if len(legal) == 0 && dstLoc.Y > currLoc.Y {
		legal = append(legal, Up)
	}
	return legal
}

func (n *NorthLast) selectDirection(legal []Direction, src, dst, curr noc.RouterID, flow noc.TrafficFlowID, model *noc.Storage) Direction {
	if len(legal) == 1 {
		return legal[0]
	}

	currLoc, dstLoc := model.Router(curr).Location, model.Router(dst).Location
	deltaX := absInt(dstLoc.X - currLoc.X)
	deltaY := absInt(dstLoc.Y - currLoc.Y)

	hash := hashValue(src, dst, curr, flow)
	southProbability := uint32(deltaY) * (^uint32(0) / uint32(deltaX+deltaY))
	if hash < southProbability {
		return Down
	}
	return selectOtherThan(legal, Down)
}
