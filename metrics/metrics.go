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

// Package metrics exposes Prometheus instrumentation for the core
// builders, mirroring the teacher's top-level metrics.go. Nothing in
// the core reads these back; they exist purely for callers who scrape
// them alongside their own application metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Collectors groups every metric this module registers, so a host
// application can pull them into its own registry with a single call.
var Collectors = struct {
	RRGraphNodes        *prometheus.GaugeVec
	RRGraphEdges        prometheus.Gauge
	RRGraphBuildSeconds prometheus.Histogram
	TimingCriticalPath  prometheus.Gauge
	TimingNodeCount     prometheus.Gauge
	NoCRoutingFailures  prometheus.Counter
	NoCCDGCycles        prometheus.Counter
}{
	RRGraphNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "vtrcore",
		Subsystem: "rrgraph",
		Name:      "nodes",
		Help:      "Number of RR-graph nodes, by kind.",
	}, []string{"kind"}),
	RRGraphEdges: prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vtrcore",
		Subsystem: "rrgraph",
		Name:      "edges",
		Help:      "Total number of RR-graph edges.",
	}),
	RRGraphBuildSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "vtrcore",
		Subsystem: "rrgraph",
		Name:      "build_seconds",
		Help:      "Wall-clock time to build one RR-graph.",
	}),
	TimingCriticalPath: prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vtrcore",
		Subsystem: "timing",
		Name:      "critical_path_delay_seconds",
		Help:      "T_crit from the most recent static timing analysis.",
	}),
	TimingNodeCount: prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "vtrcore",
		Subsystem: "timing",
		Name:      "nodes",
		Help:      "Number of timing-graph nodes.",
	}),
	NoCRoutingFailures: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vtrcore",
		Subsystem: "noc",
		Name:      "routing_failures_total",
		Help:      "Number of traffic flows that could not be routed.",
	}),
	NoCCDGCycles: prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "vtrcore",
		Subsystem: "noc",
		Name:      "cdg_cycles_detected_total",
		Help:      "Number of channel-dependency-graph checks that found a cycle.",
	}),
}

// MustRegister registers every collector above with reg. Panics (like
// prometheus.MustRegister) if a collector of the same name already
// exists in reg.
func MustRegister(reg *prometheus.Registry) {
	reg.MustRegister(
		Collectors.RRGraphNodes,
		Collectors.RRGraphEdges,
		Collectors.RRGraphBuildSeconds,
		Collectors.TimingCriticalPath,
		Collectors.TimingNodeCount,
		Collectors.NoCRoutingFailures,
		Collectors.NoCCDGCycles,
	)
}
