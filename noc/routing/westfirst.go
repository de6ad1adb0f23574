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

// WestFirst forbids both turns into the west direction: once a flow
// moves vertically, it may no longer turn west. So if the destination
// lies to the west, the flow must travel west exclusively until
// column-aligned; otherwise it adapts among east, north, and south
// (§4.8.2).
type WestFirst struct {
	turnModel
}

// NewWestFirst returns a west-first routing algorithm.
func NewWestFirst() *WestFirst {
	w := &WestFirst{}
	w.turnModel.policy = w
	return w
}

func (w *WestFirst) legalDirections(_, curr, dst noc.RouterID, model *noc.Storage) []Direction {
	currLoc, dstLoc := model.Router(curr).Location, model.Router(dst).Location
	var legal []Direction
	if dstLoc.X < currLoc.X {
		return []Direction{Left}
	}
	if dstLoc.X > currLoc.X {
		legal = append(legal, Right)
	}
	if dstLoc.Y > currLoc.Y {
		legal = append(legal, Up)
	} else if dstLoc.Y < currLoc.Y {
		legal = append(legal, Down)
	}
	return legal
}

func (w *WestFirst) selectDirection(legal []Direction, src, dst, curr noc.RouterID, flow noc.TrafficFlowID, model *noc.Storage) Direction {
	if len(legal) == 1 {
		return legal[0]
	}

	currLoc, dstLoc := model.Router(curr).Location, model.Router(dst).Location
	deltaX := absInt(dstLoc.X - currLoc.X)
	deltaY := absInt(dstLoc.Y - currLoc.Y)

	hash := hashValue(src, dst, curr, flow)
	eastProbability := uint32(deltaX) * (^uint32(0) / uint32(deltaX+deltaY))
	if hash < eastProbability {
		return Right
	}
	return selectOtherThan(legal, Right)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
