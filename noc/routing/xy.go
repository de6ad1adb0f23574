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

// XY moves along X until column-aligned with the destination, then
// along Y (§4.8.2). There is never more than one legal direction, so
// no turn is ever a choice and no randomization is needed.
type XY struct {
	turnModel
}

// NewXY returns an XY-routing algorithm.
func NewXY() *XY {
	x := &XY{}
	x.turnModel.policy = x
	return x
}

func (x *XY) legalDirections(_, curr, dst noc.RouterID, model *noc.Storage) []Direction {
	currLoc, dstLoc := model.Router(curr).Location, model.Router(dst).Location
	switch {
	case dstLoc.X > currLoc.X:
		return []Direction{Right}
	case dstLoc.X < currLoc.X:
		return []Direction{Left}
	case dstLoc.Y > currLoc.Y:
		return []Direction{Up}
	case dstLoc.Y < currLoc.Y:
		return []Direction{Down}
	default:
		return nil
	}
}

func (x *XY) selectDirection(legal []Direction, _, _, _ noc.RouterID, _ noc.TrafficFlowID, _ *noc.Storage) Direction {
	if len(legal) == 1 {
		return legal[0]
	}
	return Invalid
}
