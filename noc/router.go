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

// Package noc models the embedded Network-on-Chip (C9): its routers,
// links, and traffic flows, plus turn-model routing over that model in
// the routing subpackage (C10).
package noc

// RouterID indexes into Storage.Routers. It is assigned densely,
// starting at zero, in the order routers are added — distinct from the
// user-supplied UserID, which is only used to look a router up again.
type RouterID int

// LinkID indexes into Storage.Links.
type LinkID int

const invalidID = -1

// GridLocation is the physical FPGA tile a router occupies. Each
// location hosts at most one router (§3 NoC invariant).
type GridLocation struct {
	X, Y int
}

// Router is a physical entry point into the NoC (§3 NoC "Router").
// LogicalBlock names the clustered netlist block currently placed on
// this physical router, if any; it is empty until placement assigns
// one.
type Router struct {
	ID           RouterID
	UserID       int
	Location     GridLocation
	LogicalBlock string
	Latency      float64
}
