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
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Context defines the lifetime of a single build (an RR-graph build, a
// timing-graph build, or a NoC build). It carries a build-scoped logger
// and a list of cleanup functions that must run — in LIFO order — on
// every exit path, including failure paths, so that a builder's partial
// allocations are always released (§5: "the constructor of each graph
// MUST guarantee release of any partial allocation on any failure
// path").
type Context struct {
	context.Context

	id      uuid.UUID
	logger  *zap.Logger
	cleanup []func()
	done    bool
}

// NewContext derives a fresh build Context from parent. Call Close
// exactly once, via defer, immediately after construction.
func NewContext(parent context.Context) Context {
	if parent == nil {
		parent = context.Background()
	}
	id := uuid.New()
	return Context{
		Context: parent,
		id:      id,
		logger:  Log().With(zap.String("build_id", id.String())),
	}
}

// Logger returns the build-scoped logger.
func (c *Context) Logger() *zap.Logger { return c.logger }

// BuildID returns the unique id minted for this build, used to correlate
// log lines and metrics across the lifetime of one graph.
func (c *Context) BuildID() uuid.UUID { return c.id }

// OnCancel registers f to run when Close is called. Functions run in
// LIFO order, mirroring deferred-cleanup idiom, so the most recently
// allocated resource is released first.
func (c *Context) OnCancel(f func()) {
	c.cleanup = append(c.cleanup, f)
}

// Close runs every registered cleanup function exactly once. It is safe
// to call multiple times; only the first call has effect. Builders call
// this on every exit path (success or failure) to guarantee teardown.
func (c *Context) Close() {
	if c.done {
		return
	}
	c.done = true
	for i := len(c.cleanup) - 1; i >= 0; i-- {
		c.cleanup[i]()
	}
}
