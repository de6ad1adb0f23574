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

// Package vtrcore is the core of an FPGA physical-design back end: it
// builds the routing-resource graph and the timing graph over a placed
// netlist, checks both for structural and semantic consistency, and runs
// static timing analysis to produce per-sink slack.
//
// The package is organized the way a large Go service is: a small root
// package holds the process-wide lifecycle (Context, logging, errors,
// warnings) while build configuration lives in the config subpackage
// and each major subsystem lives in its own subpackage — rrgraph,
// timing, and noc/noc/routing. Architecture and
// netlist ingestion are owned by the caller; this package only consumes
// the read-only models they produce.
package vtrcore
