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
	"math"

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

// ConnectionBoxTables is tracks[pin][side] -> the Fc tracks that pin
// connects to on that side (§4.3.4), plus its inverse tables.
type ConnectionBoxTables struct {
	// TracksOf[pin][sideIdx] is the list of tracks that pin reaches on
	// vtrcore.AllSides[sideIdx], or nil if the pin isn't on that side.
	TracksOf [][4][]int

	// ClbIpinOfTrack[track][sideIdx] lists the IPIN pins reachable from
	// track on that side (inverse of TracksOf for RECEIVER pins).
	ClbIpinOfTrack [][4][]int
	// PadsOfTrack[track] lists the pad-facing pins reachable from track.
	PadsOfTrack [][]int

	// StepWarning is true if some round-robin step exceeded 1, meaning
	// some tracks are unreachable from any pin of this class.
	StepWarning bool
}

// BuildConnectionBox populates the Fc connection tables for one pin
// class, round-robin distributing its physical pins across the W
// tracks of the channel (§4.3.4). isOutput selects the DRIVER
// (OPIN-side) semantics; otherwise the RECEIVER (IPIN-side) semantics,
// including the perturbed-pattern anti-pin-domain rule.
func BuildConnectionBox(arch *vtrcore.Architecture, class int, w, fc int, isOutput bool, fcRatio float64, warnings *vtrcore.WarningSet) (*ConnectionBoxTables, error) {
	if fc <= 0 {
		return nil, vtrcore.Fatal(vtrcore.ErrRRGraphImpossible, "Fc must be positive", "class", class)
	}
	pins := arch.PinClasses[class].Pins
	var physPins []int
	for _, p := range pins {
		if !arch.IsGlobalPin(p) {
			physPins = append(physPins, p)
		}
	}
	n := len(physPins)
	if n == 0 {
		return &ConnectionBoxTables{}, nil
	}

	step := float64(w) / (float64(fc) * float64(n))
	if step > 1.0 {
		warnings.Add(vtrcore.Log(), "connection-box round-robin step exceeds 1; some tracks unreachable",
			"class", class, "step", step)
	}

	perturb := !isOutput && fc <= w-2 &&
		math.Abs(fcRatio-math.Round(fcRatio)) < 0.5/float64(w)

	tracksOf := make([][4][]int, len(arch.Pins))
	reachable := make([]bool, w)

	for i, pin := range physPins {
		for _, side := range arch.PinSides(pin) {
			sideIdx := sideOrdinal(side)
			var tracks []int
			if perturb {
				tracks = perturbedTracks(i, fc, w, step)
			} else {
				for j := 0; j < fc; j++ {
					t := int(math.Mod(float64(i)*step+float64(j)*float64(w)/float64(fc), float64(w)))
					tracks = append(tracks, t)
				}
			}
			tracksOf[pin][sideIdx] = tracks
			for _, t := range tracks {
				reachable[t] = true
			}
		}
	}

	if !isOutput {
		for t, ok := range reachable {
			if !ok {
				warnings.Add(vtrcore.Log(), "track unreachable from any IPIN of class", "class", class, "track", t)
			}
		}
	}

	clbIpinOfTrack := make([][4][]int, w)
	padsOfTrack := make([][]int, w)
	for _, pin := range physPins {
		for s := 0; s < 4; s++ {
			for _, t := range tracksOf[pin][s] {
				if !isOutput {
					clbIpinOfTrack[t][s] = append(clbIpinOfTrack[t][s], pin)
				} else {
					padsOfTrack[t] = append(padsOfTrack[t], pin)
				}
			}
		}
	}

	return &ConnectionBoxTables{
		TracksOf:       tracksOf,
		ClbIpinOfTrack: clbIpinOfTrack,
		PadsOfTrack:    padsOfTrack,
		StepWarning:    step > 1.0,
	}, nil
}

// perturbedTracks implements the "anti pin-domain" perturbed pattern
// (§4.3.4 step 3): floor(Fc/2)+1 switches in one half of the channel,
// ceil(Fc/2)-1 in the other, alternating which half is dense by pin
// ordinal.
func perturbedTracks(pinOrdinal, fc, w int, step float64) []int {
	dense := fc/2 + 1
	sparse := fc - dense
	half := w / 2
	denseFirst := pinOrdinal%2 == 0

	var tracks []int
	assign := func(count, regionStart, regionLen int) {
		if count <= 0 || regionLen <= 0 {
			return
		}
		for j := 0; j < count; j++ {
			t := regionStart + (j*regionLen)/count
			tracks = append(tracks, t%w)
		}
	}
	if denseFirst {
		assign(dense, 0, half)
		assign(sparse, half, w-half)
	} else {
		assign(sparse, 0, half)
		assign(dense, half, w-half)
	}
	return tracks
}

func sideOrdinal(s vtrcore.Side) int {
	for i, a := range vtrcore.AllSides {
		if a == s {
			return i
		}
	}
	return 0
}
