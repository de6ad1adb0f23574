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

// Package driver is the top-level entry point that wires the core's
// independent pieces together (§5, §6): architecture and netlist go in,
// the RR-graph and timing-graph builds run concurrently, and — entirely
// independently — the NoC model is built and routed. Nothing in the core
// packages imports driver, so it is free to depend on all of them.
package driver

import (
	"time"

	humanize "github.com/dustin/go-humanize"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	vtrcore "github.com/verilog-to-routing/vtr-rrgraph-core"
	"github.com/verilog-to-routing/vtr-rrgraph-core/config"
	"github.com/verilog-to-routing/vtr-rrgraph-core/metrics"
	"github.com/verilog-to-routing/vtr-rrgraph-core/noc"
	"github.com/verilog-to-routing/vtr-rrgraph-core/noc/routing"
	"github.com/verilog-to-routing/vtr-rrgraph-core/rrgraph"
	"github.com/verilog-to-routing/vtr-rrgraph-core/timing"
)

// Result collects everything a top-level build produces: the RR-graph
// and timing-graph pipelines (§5: built concurrently, since neither
// reads the other's output) plus, independently again, the NoC model
// and its routes (spec.md's dependency graph: "C9 -> C10 (independent
// of C1-C8)").
type Result struct {
	RRGraph *rrgraph.Graph
	Timing  *timing.Graph
	TCrit   float64

	NoC    *noc.Storage
	Routes map[noc.TrafficFlowID][]noc.LinkID

	Stats    vtrcore.NetlistStats
	Warnings *vtrcore.WarningSet
}

// Build runs the complete core pipeline over arch, nl, and pl under
// cfg. Per §5's dependency graph, architecture-then-netlist validation
// happens first and strictly sequentially; only once the netlist is
// known-good do the RR-graph and timing-graph builds run concurrently
// via errgroup (mirroring the teacher's use of errgroup to fan out
// independent, equally-fallible work). Independently of both, the NoC
// model is built and its configured traffic flows are routed if
// cfg.NoC is set — spec.md's dependency graph marks C9/C10 independent
// of C1-C8, so it runs in the same fan-out rather than after it.
//
// If any stage fails, Build returns the first error observed and no
// Result; the other concurrent stages are not cancelled and still run to
// completion.
func Build(ctx vtrcore.Context, arch *vtrcore.Architecture, nl *vtrcore.Netlist, pl *vtrcore.Placement, cfg *config.BuildConfig) (*Result, error) {
	res := &Result{Warnings: &vtrcore.WarningSet{}}

	stats, err := vtrcore.ValidateNetlist(arch, nl, res.Warnings)
	if err != nil {
		return nil, err
	}
	res.Stats = stats

	if err := pl.Validate(nl); err != nil {
		return nil, err
	}

	// Plain errgroup, not errgroup.WithContext: per §5 no operation in
	// this core blocks, suspends, or polls for cancellation, so there is
	// nothing for a derived context to interrupt — each stage simply
	// runs to completion or fails hard, and the first error returned by
	// any of them is what Wait reports.
	var g errgroup.Group

	g.Go(func() error {
		start := time.Now()
		builder := rrgraph.NewBuilder(arch, nl, pl, cfg)
		built, err := builder.Build(&ctx)
		if err != nil {
			return err
		}
		if err := rrgraph.Check(arch, built, pl.Width, pl.Height); err != nil {
			return err
		}
		metrics.Collectors.RRGraphBuildSeconds.Observe(time.Since(start).Seconds())
		res.RRGraph = built
		return nil
	})

	g.Go(func() error {
		built, err := timing.NewBuilder(arch, nl, cfg.Timing).Build()
		if err != nil {
			return err
		}
		timing.Levelize(built)
		tCrit := timing.ForwardPass(built, cfg.Timing.TConstGen)
		timing.BackwardPass(built, cfg.TargetCycleTime)
		res.Timing = built
		res.TCrit = tCrit
		metrics.Collectors.TimingCriticalPath.Set(tCrit)
		metrics.Collectors.TimingNodeCount.Set(float64(len(built.Nodes)))
		return nil
	})

	if cfg.NoC != nil {
		g.Go(func() error {
			built, routes, err := buildAndRouteNoC(nl, pl, cfg.NoC)
			if err != nil {
				return err
			}
			res.NoC = built
			res.Routes = routes
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if res.RRGraph != nil {
		metrics.Collectors.RRGraphEdges.Set(float64(res.RRGraph.NumEdges()))
		for kind, count := range res.RRGraph.CountByKind() {
			metrics.Collectors.RRGraphNodes.WithLabelValues(kind.String()).Set(float64(count))
		}
		vtrcore.Log().Info("build finished",
			zap.String("rr_nodes", humanize.Comma(int64(len(res.RRGraph.Nodes)))),
			zap.String("rr_edges", humanize.Comma(int64(res.RRGraph.NumEdges()))),
			zap.String("timing_nodes", humanize.Comma(int64(len(res.Timing.Nodes)))),
			zap.Float64("t_crit", res.TCrit),
		)
	}

	return res, nil
}

// buildAndRouteNoC constructs a router per placed logic-cluster block
// (§4.9: "add_router(id, x, y, layer, latency)" — the embedded NoC's
// physical routers sit at the same grid locations as the clusters they
// serve) and routes every configured traffic flow over it with the
// selected algorithm, checking the resulting route set for deadlock
// with the channel-dependency graph (§4.8.3).
func buildAndRouteNoC(nl *vtrcore.Netlist, pl *vtrcore.Placement, ncfg *config.NoCConfig) (*noc.Storage, map[noc.TrafficFlowID][]noc.LinkID, error) {
	model := noc.NewStorage()

	for b, blk := range nl.Blocks {
		if blk.Kind != vtrcore.BlockLogicCluster {
			continue
		}
		loc := pl.BlockLoc[b]
		id, err := model.AddRouter(b, loc.X, loc.Y, 0)
		if err != nil {
			return nil, nil, err
		}
		model.AssignLogicalBlock(id, blk.Name)
	}

	for from := range model.Routers {
		fromLoc := model.Router(noc.RouterID(from)).Location
		for to := range model.Routers {
			if from == to {
				continue
			}
			toLoc := model.Router(noc.RouterID(to)).Location
			if manhattan(fromLoc, toLoc) != 1 {
				continue
			}
			if _, err := model.AddLink(noc.RouterID(from), noc.RouterID(to), 0, 0); err != nil {
				return nil, nil, err
			}
		}
	}
	model.FinishedBuilding()

	algo, err := routing.Create(ncfg.RoutingAlgorithm)
	if err != nil {
		return nil, nil, err
	}

	routes := make(map[noc.TrafficFlowID][]noc.LinkID, len(ncfg.TrafficFlows))
	var all [][]noc.LinkID
	for i, tf := range ncfg.TrafficFlows {
		flowID := noc.TrafficFlowID(i)
		src, ok := model.RouterByLogicalBlock(tf.SourceCluster)
		if !ok {
			return nil, nil, vtrcore.Fatal(vtrcore.ErrNocRouting, "traffic flow source cluster has no router", "cluster", tf.SourceCluster)
		}
		dst, ok := model.RouterByLogicalBlock(tf.SinkCluster)
		if !ok {
			return nil, nil, vtrcore.Fatal(vtrcore.ErrNocRouting, "traffic flow sink cluster has no router", "cluster", tf.SinkCluster)
		}
		route, err := algo.RouteFlow(src, dst, flowID, model)
		if err != nil {
			metrics.Collectors.NoCRoutingFailures.Inc()
			return nil, nil, err
		}
		routes[flowID] = route
		all = append(all, route)
	}

	cdg := routing.NewChannelDependencyGraph(all)
	if cdg.HasCycles() {
		metrics.Collectors.NoCCDGCycles.Inc()
		return nil, nil, vtrcore.Fatal(vtrcore.ErrNocRouting, "channel-dependency graph has a cycle; routes are not deadlock-free")
	}

	return model, routes, nil
}

func manhattan(a, b noc.GridLocation) int {
	return absInt(a.X-b.X) + absInt(a.Y-b.Y)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
