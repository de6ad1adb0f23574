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

package vtrcore

// Loc is a grid coordinate on the target device.
type Loc struct {
	X, Y int
}

// Placement assigns every netlist block a grid location. It is produced
// by an external collaborator (the annealing placer, out of scope here)
// and consumed read-only by the RR-graph and timing builders.
type Placement struct {
	// BlockLoc[block] is that block's grid location.
	BlockLoc []Loc
	Width    int
	Height   int
}

// BlocksAt returns the indices of every block placed at loc.
func (p *Placement) BlocksAt(loc Loc) []int {
	var out []int
	for b, l := range p.BlockLoc {
		if l == loc {
			out = append(out, b)
		}
	}
	return out
}

// Validate checks every block has an in-bounds location.
func (p *Placement) Validate(nl *Netlist) error {
	if len(p.BlockLoc) != len(nl.Blocks) {
		return Fatal(ErrMalformedNetlist, "placement block count mismatch", "got", len(p.BlockLoc), "want", len(nl.Blocks))
	}
	for b, l := range p.BlockLoc {
		if l.X < 0 || l.X >= p.Width || l.Y < 0 || l.Y >= p.Height {
			return Fatal(ErrArchViolation, "block placed out of bounds", "block", b, "x", l.X, "y", l.Y)
		}
	}
	return nil
}
