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

package noc

// Link is a unidirectional connection between two routers (§3 NoC
// "Link"). Traversal is only legal from Source to Sink; a bidirectional
// connection between two routers is modelled as a pair of Links.
type Link struct {
	ID                    LinkID
	Source, Sink          RouterID
	BandwidthCapacity     float64
	Latency               float64
	CurrentBandwidthUsage float64
}

// CongestedBandwidth returns the amount by which the link's current
// usage exceeds its capacity. A positive value means the link is
// congested.
func (l Link) CongestedBandwidth() float64 {
	return l.CurrentBandwidthUsage - l.BandwidthCapacity
}
