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

import "fmt"

// Kind classifies a fatal condition raised anywhere in the core, per the
// error taxonomy. It never changes across releases, so callers can
// switch on it.
type Kind int

const (
	// ErrMalformedNetlist covers duplicate block names, unknown
	// keywords, out-of-range subblock pin indices, and class/type
	// mismatches in the ingested netlist.
	ErrMalformedNetlist Kind = iota
	// ErrArchViolation covers global/non-global pin mismatches, driver
	// conflicts, pads with more than one pin, OPINs reaching zero
	// tracks, and unreachable tracks.
	ErrArchViolation
	// ErrRRGraphImpossible covers segmentation too coarse for the
	// chosen Fc, unknown block kinds at a grid cell, and building a
	// second RR-graph without freeing the first.
	ErrRRGraphImpossible
	// ErrCheckViolation covers over-capacity nodes, non-adjacent
	// successors, non-tree routes, and source/sink mismatches found by
	// the RR-graph or route checkers.
	ErrCheckViolation
	// ErrTimingContract covers clocked constant generators and other
	// violations of the timing-graph invariants.
	ErrTimingContract
	// ErrNocRouting covers routes for which no legal direction exists
	// and channel-dependency-graph cycles.
	ErrNocRouting
)

func (k Kind) String() string {
	switch k {
	case ErrMalformedNetlist:
		return "malformed netlist"
	case ErrArchViolation:
		return "architectural violation"
	case ErrRRGraphImpossible:
		return "rr-graph build impossible"
	case ErrCheckViolation:
		return "check violation"
	case ErrTimingContract:
		return "timing contract breach"
	case ErrNocRouting:
		return "noc routing failure"
	default:
		return "unknown"
	}
}

// FatalError is a fatal condition reported to the caller with enough
// context (ids, coordinates, kinds) to act on without re-deriving it.
// The core never recovers from one locally; it is always propagated.
type FatalError struct {
	Kind    Kind
	Message string
	Context map[string]any
	Wrapped error
}

func (e *FatalError) Error() string {
	if len(e.Context) == 0 {
		if e.Wrapped != nil {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Wrapped)
		}
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("%s: %s %v: %v", e.Kind, e.Message, e.Context, e.Wrapped)
	}
	return fmt.Sprintf("%s: %s %v", e.Kind, e.Message, e.Context)
}

func (e *FatalError) Unwrap() error { return e.Wrapped }

// Fatal constructs a FatalError with the given kind, message, and
// structured context. ctx pairs are flattened key,value,key,value...;
// an odd trailing key is dropped.
func Fatal(kind Kind, message string, ctx ...any) *FatalError {
	m := make(map[string]any, len(ctx)/2)
	for i := 0; i+1 < len(ctx); i += 2 {
		key, ok := ctx[i].(string)
		if !ok {
			continue
		}
		m[key] = ctx[i+1]
	}
	return &FatalError{Kind: kind, Message: message, Context: m}
}

// Wrap attaches kind and context to an existing error without losing it
// (Unwrap still reaches the original cause).
func Wrap(kind Kind, message string, err error, ctx ...any) *FatalError {
	fe := Fatal(kind, message, ctx...)
	fe.Wrapped = err
	return fe
}
