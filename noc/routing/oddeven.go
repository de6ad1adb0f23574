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

// OddEven implements the odd-even turn model (Chiu 2000, §4.8.2): NW
// and SW turns are forbidden in odd columns, EN and ES turns are
// forbidden in even columns. Column parity is evaluated on the
// router's grid X coordinate directly — the teacher maps this through
// a placement-time "compressed" grid (dense sub-coordinates skipping
// unused columns); that compression step belongs to placement, which
// is out of scope here, so an uncompressed mesh is assumed and grid X
// doubles as the compressed column (documented in DESIGN.md).
type OddEven struct {
	turnModel
}

// NewOddEven returns an odd-even routing algorithm.
func NewOddEven() *OddEven {
	oe := &OddEven{}
	oe.turnModel.policy = oe
	return oe
}

func isOddCol(x int) bool { return x%2 != 0 }

func (oe *OddEven) legalDirections(src, curr, dst noc.RouterID, model *noc.Storage) []Direction {
	srcLoc, currLoc, dstLoc := model.Router(src).Location, model.Router(curr).Location, model.Router(dst).Location
	diffX := dstLoc.X - currLoc.X
	diffY := dstLoc.Y - currLoc.Y

	var legal []Direction
	switch {
	case diffX == 0:
		if diffY > 0 {
			legal = append(legal, Up)
		} else {
			legal = append(legal, Down)
		}
	case diffX > 0: // eastbound
		if diffY == 0 {
			legal = append(legal, Right)
			break
		}
		// EN/ES forbidden in even columns: only move vertically from an
		// odd column (or the flow's own starting column).
		if isOddCol(currLoc.X) || currLoc.X == srcLoc.X {
			if diffY > 0 {
				legal = append(legal, Up)
			} else {
				legal = append(legal, Down)
			}
		}
		if isOddCol(dstLoc.X) || diffX != 1 {
			legal = append(legal, Right)
		}
	default: // westbound
		legal = append(legal, Left)
		// NW/SW forbidden in odd columns: only move vertically from an
		// even column.
		if !isOddCol(currLoc.X) {
			if diffY > 0 {
				legal = append(legal, Up)
			} else {
				legal = append(legal, Down)
			}
		}
	}
	return legal
}

func (oe *OddEven) selectDirection(legal []Direction, src, dst, curr noc.RouterID, flow noc.TrafficFlowID, model *noc.Storage) Direction {
	if len(legal) == 1 {
		return legal[0]
	}

	currLoc, dstLoc := model.Router(curr).Location, model.Router(dst).Location
	deltaX := absInt(dstLoc.X - currLoc.X)
	deltaY := absInt(dstLoc.Y - currLoc.Y)

	hash := hashValue(src, dst, curr, flow)
	verticalProbability := uint32(deltaY) * (^uint32(0) / uint32(deltaX+deltaY))
	if hash < verticalProbability {
		return selectVertical(legal)
	}
	return selectHorizontal(legal)
}
