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

import (
	"fmt"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Warning is a single non-fatal condition raised during a build:
// constant generators, very low Fc, low fan-out single-pin clusters,
// duplicate-sink-class pins, or a connection-box population step > 1
// (§7, §9 Open Questions — all of these are specified as non-fatal).
type Warning struct {
	Message string
	Context map[string]any
}

func (w Warning) Error() string {
	if len(w.Context) == 0 {
		return w.Message
	}
	return fmt.Sprintf("%s %v", w.Message, w.Context)
}

// WarningSet accumulates warnings raised over the course of a build. It
// never causes a build to fail; callers inspect it after the fact. It is
// built on go.uber.org/multierr so the accumulated set composes with
// ordinary error-handling code (errors.Is/As, multierr.Errors) without a
// bespoke container type.
type WarningSet struct {
	combined error
	count    int
}

// Add records a warning and logs it at Warn level.
func (ws *WarningSet) Add(logger *zap.Logger, message string, kv ...any) {
	w := Warning{Message: message, Context: make(map[string]any, len(kv)/2)}
	fields := make([]zap.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		w.Context[key] = kv[i+1]
		fields = append(fields, zap.Any(key, kv[i+1]))
	}
	ws.combined = multierr.Append(ws.combined, w)
	ws.count++
	if logger != nil {
		logger.Warn(message, fields...)
	}
}

// Count returns the number of warnings accumulated so far.
func (ws *WarningSet) Count() int { return ws.count }

// Errors returns the accumulated warnings as a slice, in the order they
// were added.
func (ws *WarningSet) Errors() []error {
	return multierr.Errors(ws.combined)
}
