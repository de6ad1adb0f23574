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

import vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"

// ReconcileResult is which physical switch(es), if any, implement a
// switch-box turn between two segments meeting at a junction, in each
// direction (§4.3.6).
type ReconcileResult struct {
	// ForwardSwitch is the switch index used for the from-segment ->
	// to-segment edge, or nil if that edge does not exist.
	ForwardSwitch *int
	// BackwardSwitch is the switch index used for the to-segment ->
	// from-segment edge, or nil if that edge does not exist.
	BackwardSwitch *int
}

// Exists reports whether a switch-box turn is physically built at all:
// the originating segment wants a switch, or the destination segment
// wants one and its switch type is an unbuffered pass transistor.
func Exists(fromWants, toWants bool, toSwitch vtrcore.SwitchType) bool {
	return fromWants || (toWants && !toSwitch.Buffered)
}

// Reconcile decides which switch(es) implement the turn in each
// direction, per the table in §4.3.6.
func Reconcile(fromWants, toWants bool, fromIdx, toIdx int, fromSwitch, toSwitch vtrcore.SwitchType) ReconcileResult {
	if !Exists(fromWants, toWants, toSwitch) {
		return ReconcileResult{}
	}

	switch {
	case fromWants && toWants:
		if fromIdx == toIdx {
			// both want a switch, same type -> 1 switch of that type
			i := fromIdx
			return ReconcileResult{ForwardSwitch: &i, BackwardSwitch: &i}
		}
		if !fromSwitch.Buffered && !toSwitch.Buffered {
			// both pass, different types -> the type with lower R;
			// ties broken by lower switch index
			chosen := fromIdx
			if toSwitch.R < fromSwitch.R || (toSwitch.R == fromSwitch.R && toIdx < fromIdx) {
				chosen = toIdx
			}
			return ReconcileResult{ForwardSwitch: &chosen, BackwardSwitch: &chosen}
		}
		// mixed buffered/pass, or both buffered with different types:
		// 2 switches, one per direction
		f, b := fromIdx, toIdx
		return ReconcileResult{ForwardSwitch: &f, BackwardSwitch: &b}

	case fromWants && !toWants:
		// only forward wants -> 1 switch of to-type
		t := toIdx
		return ReconcileResult{ForwardSwitch: &t}

	default: // !fromWants && toWants, and Exists() established toSwitch unbuffered
		// only backward wants AND to-type is pass transistor -> 1
		// switch of from-type, in the other direction
		f := fromIdx
		return ReconcileResult{BackwardSwitch: &f}
	}
}
