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

package routing

import (
	"sort"
	"sync"

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
)

// Constructor builds a fresh Algorithm instance. Registered algorithms
// are stateless, so a single instance would do, but a constructor per
// name mirrors the teacher's Caddy-module pattern of handing callers a
// new instance rather than a shared one.
type Constructor func() Algorithm

var (
	registryMu sync.RWMutex
	registry   = map[string]Constructor{
		"xy":             func() Algorithm { return NewXY() },
		"bfs":            func() Algorithm { return NewBFS() },
		"west_first":     func() Algorithm { return NewWestFirst() },
		"north_last":     func() Algorithm { return NewNorthLast() },
		"negative_first": func() Algorithm { return NewNegativeFirst() },
		"odd_even":       func() Algorithm { return NewOddEven() },
	}
)

// Register adds a new named routing algorithm to the registry,
// overwriting any algorithm previously registered under the same name.
// Host applications can use this to plug in a custom policy beyond the
// five named in §4.8.2 plus the BFS baseline.
func Register(name string, ctor Constructor) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[name] = ctor
}

// Create resolves name to a fresh Algorithm (§6:
// "create_routing_algorithm(name) -> algo").
func Create(name string) (Algorithm, error) {
	registryMu.RLock()
	ctor, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, vtrcore.Fatal(vtrcore.ErrNocRouting, "unknown routing algorithm", "name", name, "known", Names())
	}
	return ctor(), nil
}

// Names returns every registered algorithm name, sorted.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
