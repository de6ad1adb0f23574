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

import (
	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

// Storage is the NoC model (§4.9): append-only while being built,
// immutable once FinishedBuilding is called. It owns every Router and
// Link and the adjacency/lookup indexes needed to traverse and query
// them.
type Storage struct {
	Routers []Router
	Links   []Link

	outgoing [][]LinkID // per RouterID, outgoing link ids
	incoming [][]LinkID // per RouterID, incoming link ids

	byUserID       map[int]RouterID
	byLocation     map[GridLocation]RouterID
	byLogicalBlock map[string]RouterID

	built bool
}

// NewStorage returns an empty, buildable NoC model.
func NewStorage() *Storage {
	return &Storage{
		byUserID:       make(map[int]RouterID),
		byLocation:     make(map[GridLocation]RouterID),
		byLogicalBlock: make(map[string]RouterID),
	}
}

func (s *Storage) requireNotBuilt(op string) error {
	if s.built {
		return vtrcore.Fatal(vtrcore.ErrArchViolation, "noc storage already finished building; cannot "+op)
	}
	return nil
}

// AddRouter creates a new router at the given grid location and
// returns its RouterID. It is a fatal error to add a second router at
// a location already occupied, or to add a router after
// FinishedBuilding (§3 NoC invariants).
func (s *Storage) AddRouter(userID, x, y int, latency float64) (RouterID, error) {
	if err := s.requireNotBuilt("add a router"); err != nil {
		return invalidID, err
	}
	loc := GridLocation{X: x, Y: y}
	if _, exists := s.byLocation[loc]; exists {
		return invalidID, vtrcore.Fatal(vtrcore.ErrArchViolation, "grid location already hosts a router", "x", x, "y", y)
	}
	id := RouterID(len(s.Routers))
	s.Routers = append(s.Routers, Router{ID: id, UserID: userID, Location: loc, Latency: latency})
	s.outgoing = append(s.outgoing, nil)
	s.incoming = append(s.incoming, nil)
	s.byUserID[userID] = id
	s.byLocation[loc] = id
	return id, nil
}

// AddLink creates a new link from source to sink and returns its
// LinkID. A link whose source equals its sink violates §3's NoC
// invariant and is rejected.
func (s *Storage) AddLink(source, sink RouterID, bandwidth, latency float64) (LinkID, error) {
	if err := s.requireNotBuilt("add a link"); err != nil {
		return invalidID, err
	}
	if source == sink {
		return invalidID, vtrcore.Fatal(vtrcore.ErrArchViolation, "link source and sink must differ", "router", source)
	}
	if int(source) < 0 || int(source) >= len(s.Routers) || int(sink) < 0 || int(sink) >= len(s.Routers) {
		return invalidID, vtrcore.Fatal(vtrcore.ErrArchViolation, "link endpoint is not a known router", "source", source, "sink", sink)
	}
	id := LinkID(len(s.Links))
	s.Links = append(s.Links, Link{ID: id, Source: source, Sink: sink, BandwidthCapacity: bandwidth, Latency: latency})
	s.outgoing[source] = append(s.outgoing[source], id)
	s.incoming[sink] = append(s.incoming[sink], id)
	return id, nil
}

// FinishedBuilding marks the NoC topology immutable. Every subsequent
// AddRouter or AddLink call returns a fatal error.
func (s *Storage) FinishedBuilding() {
	s.built = true
}

// Built reports whether FinishedBuilding has been called.
func (s *Storage) Built() bool { return s.built }

// RouterByUserID resolves the user-supplied router id assigned at
// AddRouter time back to its RouterID.
func (s *Storage) RouterByUserID(userID int) (RouterID, bool) {
	id, ok := s.byUserID[userID]
	return id, ok
}

// RouterAtLocation resolves a grid location to the router occupying
// it, if any.
func (s *Storage) RouterAtLocation(loc GridLocation) (RouterID, bool) {
	id, ok := s.byLocation[loc]
	return id, ok
}

// Router returns the router identified by id.
func (s *Storage) Router(id RouterID) Router {
	return s.Routers[id]
}

// Link returns the link identified by id.
func (s *Storage) Link(id LinkID) Link {
	return s.Links[id]
}

// OutgoingLinks returns the links leaving router id, in the order they
// were added.
func (s *Storage) OutgoingLinks(id RouterID) []LinkID {
	return s.outgoing[id]
}

// IncomingLinks returns the links entering router id, in the order
// they were added.
func (s *Storage) IncomingLinks(id RouterID) []LinkID {
	return s.incoming[id]
}

// LinkBetween performs the linear scan described in §4.9 ("link lookup
// by (src, dst) endpoints, rarely called") and returns the id of the
// link from src to dst, if one exists. Scanning src's (usually short)
// outgoing list rather than every link in the NoC keeps this cheap in
// practice despite the linear-scan contract.
func (s *Storage) LinkBetween(src, dst RouterID) (LinkID, bool) {
	for _, id := range s.outgoing[src] {
		if s.Links[id].Sink == dst {
			return id, true
		}
	}
	return invalidID, false
}

// SetBandwidthUsage updates the current bandwidth usage of a link.
// Traffic-flow routing calls this as flows are (re-)routed.
func (s *Storage) SetBandwidthUsage(id LinkID, usage float64) {
	s.Links[id].CurrentBandwidthUsage = usage
}

// AssignLogicalBlock records that clustered netlist block name is
// currently placed on router id (§3 NoC "Router": "logical_block?").
// This is placement bookkeeping layered on top of the router/link
// model itself, so unlike AddRouter/AddLink it is allowed both before
// and after FinishedBuilding — reassigning which logical block sits on
// a physical router does not change the NoC's topology.
func (s *Storage) AssignLogicalBlock(id RouterID, name string) {
	s.Routers[id].LogicalBlock = name
	s.byLogicalBlock[name] = id
}

// RouterByLogicalBlock resolves a clustered netlist block name to the
// router it is currently placed on, if any.
func (s *Storage) RouterByLogicalBlock(name string) (RouterID, bool) {
	id, ok := s.byLogicalBlock[name]
	return id, ok
}
