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
	"testing"

	"github.com/stretchr/testify/require"

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

func TestAllocateSegmentsSingleType(t *testing.T) {
	segs := []vtrcore.SegmentType{
		{Name: "len4", Length: 4, FracCB: 0.5, FracSB: 0.5, Frequency: 1.0, WireSwitch: 0, OpinSwitch: 0},
	}
	tracks, err := AllocateSegments(segs, 4, 20)
	require.NoError(t, err)
	require.Len(t, tracks, 4)
	for _, tr := range tracks {
		require.Equal(t, 4, tr.Length)
		require.Len(t, tr.CB, 4)
		require.Len(t, tr.SB, 5)
		require.GreaterOrEqual(t, tr.Start, 1)
		require.LessOrEqual(t, tr.Start, tr.Length)
	}
}

func TestAllocateSegmentsProportionalSplit(t *testing.T) {
	segs := []vtrcore.SegmentType{
		{Name: "short", Length: 1, Frequency: 0.5, FracCB: 1, FracSB: 1},
		{Name: "long", Length: 4, Frequency: 0.5, FracCB: 0.5, FracSB: 0.5},
	}
	tracks, err := AllocateSegments(segs, 8, 20)
	require.NoError(t, err)
	require.Len(t, tracks, 8)
	counts := map[int]int{}
	for _, tr := range tracks {
		counts[tr.SegTypeIndex]++
	}
	require.Equal(t, 4, counts[0])
	require.Equal(t, 4, counts[1])
}

func TestAllocateSegmentsRejectsEmptyTypes(t *testing.T) {
	_, err := AllocateSegments(nil, 4, 20)
	require.Error(t, err)
}

func TestAllocateSegmentsLonglineUsesMaxDim(t *testing.T) {
	segs := []vtrcore.SegmentType{
		{Name: "ll", Length: 4, LongLine: true, Frequency: 1.0, FracCB: 1, FracSB: 1},
	}
	tracks, err := AllocateSegments(segs, 2, 16)
	require.NoError(t, err)
	for _, tr := range tracks {
		require.Equal(t, 16, tr.Length)
		require.True(t, tr.LongLine)
	}
}

// TestTrackPairWilton checks scenario S3: track_pair under the Wilton
// switch-block policy at W=4.
func TestTrackPairWilton(t *testing.T) {
	cases := []struct {
		from, to vtrcore.Side
		track    int
		want     int
	}{
		{vtrcore.Left, vtrcore.Top, 0, 0},
		{vtrcore.Left, vtrcore.Bottom, 1, 0},
		{vtrcore.Bottom, vtrcore.Right, 2, 0},
	}
	for _, c := range cases {
		got, ok := TrackPair(c.from, c.to, c.track, 4, "wilton")
		require.True(t, ok)
		require.Equal(t, c.want, got)
	}
}

func TestTrackPairSubsetIsIdentity(t *testing.T) {
	got, ok := TrackPair(vtrcore.Left, vtrcore.Right, 3, 8, "subset")
	require.True(t, ok)
	require.Equal(t, 3, got)
}

func TestTrackPairRejectsSameSide(t *testing.T) {
	_, ok := TrackPair(vtrcore.Left, vtrcore.Left, 0, 4, "wilton")
	require.False(t, ok)
}

func TestTrackPairUniversalSymmetric(t *testing.T) {
	got, ok := TrackPair(vtrcore.Left, vtrcore.Right, 2, 8, "universal")
	require.True(t, ok)
	require.Equal(t, 2, got)
}
