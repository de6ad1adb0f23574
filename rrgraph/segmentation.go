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
	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

// TrackSegment is one of the W tracks of a channel (§3 Segmentation).
type TrackSegment struct {
	Length       int
	Start        int // 1..Length, staggers where the segment begins
	LongLine     bool
	CB           []bool // len == Length; connection-box presence per unit span
	SB           []bool // len == Length+1; switch-box presence per endpoint
	RMetal       float64
	CMetal       float64
	WireSwitch   int
	OpinSwitch   int
	SegTypeIndex int
}

// AllocateSegments assigns the W tracks of a channel to segment types
// round-robin by frequency, and populates each track's start offset and
// cb/sb masks, per §4.3.3. maxFPGADim is substituted for Length on
// longline segments.
func AllocateSegments(segTypes []vtrcore.SegmentType, w, maxFPGADim int) ([]TrackSegment, error) {
	if len(segTypes) == 0 {
		return nil, vtrcore.Fatal(vtrcore.ErrRRGraphImpossible, "no segment types supplied")
	}

	// Round-robin allocation of W tracks to segment types by frequency:
	// walk the types repeatedly, giving each type tracks proportional
	// to its frequency until W tracks are assigned.
	typeOfTrack := make([]int, w)
	counts := make([]int, len(segTypes))
	assigned := 0
	cursor := make([]float64, len(segTypes))
	for assigned < w {
		// pick the type whose cumulative share is furthest behind its
		// target frequency share, a standard largest-remainder
		// round-robin.
		best := -1
		var bestDeficit float64
		for i, st := range segTypes {
			target := st.Frequency * float64(assigned+1)
			deficit := target - cursor[i]
			if best == -1 || deficit > bestDeficit {
				best = i
				bestDeficit = deficit
			}
		}
		typeOfTrack[assigned] = best
		cursor[best]++
		counts[best]++
		assigned++
	}

	tracks := make([]TrackSegment, w)
	trackOrdinalWithinType := make([]int, len(segTypes))
	for t := 0; t < w; t++ {
		ti := typeOfTrack[t]
		st := segTypes[ti]
		length := st.Length
		if st.LongLine {
			length = maxFPGADim
		}
		if length < 1 {
			return nil, vtrcore.Fatal(vtrcore.ErrRRGraphImpossible, "segment length must be >= 1", "seg_type", ti)
		}
		count := counts[ti]
		i := trackOrdinalWithinType[ti]
		trackOrdinalWithinType[ti]++

		start := (i*length/maxInt(count, 1))%length + 1

		cb := populateSpacedMask(length, st.FracCB, length, st.LongLine)
		sb := populateSpacedMask(length+1, st.FracSB, length+1, st.LongLine)
		if st.LongLine {
			// Rotate so that consecutive longlines do not line up.
			rotateBools(sb, i)
		}

		tracks[t] = TrackSegment{
			Length:       length,
			Start:        start,
			LongLine:     st.LongLine,
			CB:           cb,
			SB:           sb,
			RMetal:       st.RMetal,
			CMetal:       st.CMetal,
			WireSwitch:   st.WireSwitch,
			OpinSwitch:   st.OpinSwitch,
			SegTypeIndex: ti,
		}
	}
	return tracks, nil
}

// populateSpacedMask builds a boolean mask of length n with
// round(n*frac) positions set to true, spread as evenly as possible
// (§4.3.3: cb_step = (length-1)/(n_cb-1) for non-longlines and
// length/n_cb for longlines).
func populateSpacedMask(n int, frac float64, length int, longline bool) []bool {
	mask := make([]bool, n)
	numSet := int(frac*float64(n) + 0.5)
	if numSet <= 0 {
		return mask
	}
	if numSet >= n {
		for i := range mask {
			mask[i] = true
		}
		return mask
	}
	var step float64
	if longline {
		step = float64(length) / float64(numSet)
	} else if numSet > 1 {
		step = float64(length-1) / float64(numSet-1)
	} else {
		step = float64(length) / 2
	}
	for i := 0; i < numSet; i++ {
		pos := int(float64(i)*step + 0.5)
		if pos >= n {
			pos = n - 1
		}
		mask[pos] = true
	}
	return mask
}

func rotateBools(b []bool, by int) {
	n := len(b)
	if n == 0 {
		return
	}
	by = by % n
	if by == 0 {
		return
	}
	out := make([]bool, n)
	for i := range b {
		out[(i+by)%n] = b[i]
	}
	copy(b, out)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// TrackPair implements the switch-block policy (§4.2): the track on
// to_side reached by a switch-box switch from from_track on from_side.
// No self-side pairing exists. Formulas grounded verbatim on VPR's
// get_simple_switch_block_track (rr_graph_sbox.c).
func TrackPair(fromSide, toSide vtrcore.Side, fromTrack, w int, sbType string) (int, bool) {
	if fromSide == toSide {
		return 0, false
	}
	switch sbType {
	case "subset", "":
		return fromTrack, true
	case "wilton":
		return wiltonTrack(fromSide, toSide, fromTrack, w)
	case "universal":
		return universalTrack(fromSide, toSide, fromTrack, w)
	default:
		return 0, false
	}
}

func wiltonTrack(fromSide, toSide vtrcore.Side, t, w int) (int, bool) {
	switch fromSide {
	case vtrcore.Left:
		switch toSide {
		case vtrcore.Right:
			return t, true
		case vtrcore.Top:
			return mod(w-t, w), true
		case vtrcore.Bottom:
			return mod(w+t-1, w), true
		}
	case vtrcore.Right:
		switch toSide {
		case vtrcore.Left:
			return t, true
		case vtrcore.Top:
			return mod(w+t-1, w), true
		case vtrcore.Bottom:
			return mod(2*w-2-t, w), true
		}
	case vtrcore.Bottom:
		switch toSide {
		case vtrcore.Top:
			return t, true
		case vtrcore.Left:
			return mod(t+1, w), true
		case vtrcore.Right:
			return mod(2*w-2-t, w), true
		}
	case vtrcore.Top:
		switch toSide {
		case vtrcore.Bottom:
			return t, true
		case vtrcore.Left:
			return mod(w-t, w), true
		case vtrcore.Right:
			return mod(t+1, w), true
		}
	}
	return 0, false
}

func universalTrack(fromSide, toSide vtrcore.Side, t, w int) (int, bool) {
	switch fromSide {
	case vtrcore.Left:
		switch toSide {
		case vtrcore.Right:
			return t, true
		case vtrcore.Top:
			return w - 1 - t, true
		case vtrcore.Bottom:
			return t, true
		}
	case vtrcore.Right:
		switch toSide {
		case vtrcore.Left:
			return t, true
		case vtrcore.Top:
			return t, true
		case vtrcore.Bottom:
			return w - 1 - t, true
		}
	case vtrcore.Bottom:
		switch toSide {
		case vtrcore.Top:
			return t, true
		case vtrcore.Left:
			return t, true
		case vtrcore.Right:
			return w - 1 - t, true
		}
	case vtrcore.Top:
		switch toSide {
		case vtrcore.Bottom:
			return t, true
		case vtrcore.Left:
			return w - 1 - t, true
		case vtrcore.Right:
			return t, true
		}
	}
	return 0, false
}

func mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}
