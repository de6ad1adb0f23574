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

// TrafficFlowID indexes a traffic flow within a build.
type TrafficFlowID int

// TrafficFlow is a required communication between two logical router
// blocks in the clustered netlist (§3 NoC "Traffic flow"). SourceCluster
// and SinkCluster name clustered-netlist blocks, resolved to physical
// routers only once those blocks are placed.
type TrafficFlow struct {
	ID                         TrafficFlowID
	SourceCluster, SinkCluster string
	Bandwidth, MaxLatency      float64
	Priority                   int
}
