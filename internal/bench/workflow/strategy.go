// Copyright 2025 Esteban Alvarez. All Rights Reserved.
//
// Created: October 2025
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

// Package workflow implements the per-task load patterns (workflow
// strategies) that the runner drives against a set of client adapters.
package workflow

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"eventbench/internal/bench/adapter"
	"eventbench/internal/bench/metrics"
	"eventbench/internal/bench/workload"
)

// Window is the three-instant clock a strategy runs against: tasks generate
// load from "now" until EndAt, but only samples captured in
// [MeasurementStart, MeasurementEnd] count.
type Window struct {
	MeasurementStart time.Time
	MeasurementEnd   time.Time
	EndAt            time.Time
}

// InWindow reports whether t falls inside the measurement window.
func (w Window) InWindow(t time.Time) bool {
	return !t.Before(w.MeasurementStart) && !t.After(w.MeasurementEnd)
}

// Result is what a strategy hands back to the runner after every task has
// joined.
type Result struct {
	Histogram     *metrics.LatencyRecorder
	EventsWritten uint64
	EventsRead    uint64
	Samples       []metrics.RawSample
}

// Strategy is a named load pattern. Implementations ignore whichever client
// slice they don't need (e.g. ConcurrentWriters ignores readers).
type Strategy interface {
	// Execute runs one task per relevant client and blocks until every task
	// has observed EndAt and returned.
	Execute(ctx context.Context, readers, writers []adapter.EventStoreAdapter, win Window, seed uint64, obs Observer) (Result, error)
}

// Observer receives a live notification for every completed operation, for
// optional telemetry. It must not block.
type Observer interface {
	ObserveOp(op string, ok bool)
}

// Factory builds a Strategy instance from a name, keyed the same way
// adapter.Registry keys adapters.
type Factory interface {
	Name() string
	Create() Strategy
}

// Registry is the small, build-time-known set of workflow factories.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds a Registry from the given factories.
func NewRegistry(factories ...Factory) *Registry {
	r := &Registry{factories: make(map[string]Factory, len(factories))}
	for _, f := range factories {
		r.factories[f.Name()] = f
	}
	return r
}

// Lookup returns the named factory, or an error if none is registered.
func (r *Registry) Lookup(name string) (Factory, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown workflow: %s", name)
	}
	return f, nil
}

// Names returns all registered workflow names.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	return names
}

// hotSetSize is the number of low stream indices that make up the "hot set"
// under the zipf-like heavy-tail policy.
const hotSetSize = 100

// pickStreamIndex implements the one stream-selection policy shared by every
// workflow: under "zipf" (case-insensitive), 20% of draws land uniformly in
// the hot set [0, min(100, uniqueStreams)); the rest, and all draws under any
// other distribution name, land uniformly in [0, uniqueStreams).
func pickStreamIndex(rng *rand.Rand, streams workload.Streams) uint64 {
	unique := streams.UniqueStreams
	if unique == 0 {
		unique = 1
	}
	if strings.EqualFold(streams.Distribution, "zipf") {
		if rng.Float64() < 0.2 {
			hotSet := uint64(hotSetSize)
			if unique < hotSet {
				hotSet = unique
			}
			return uint64(rng.Int63n(int64(hotSet)))
		}
	}
	return uint64(rng.Int63n(int64(unique)))
}

// streamName renders the stream identifier convention shared by every
// workflow and by setup prepopulation.
func streamName(idx uint64) string {
	return fmt.Sprintf("stream-%d", idx)
}
