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

package workflow

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"eventbench/internal/bench/adapter"
	"eventbench/internal/bench/metrics"
	"eventbench/internal/bench/workload"
)

// readLimit bounds how many events a single read pulls back.
const readLimit = uint64(100)

// ConcurrentReadersWorkflow drives reads against one stream per request, one
// goroutine per reader client, until EndAt.
type ConcurrentReadersWorkflow struct {
	wl workload.Workload
}

// Execute implements Strategy. readers is used; writers is ignored.
func (w *ConcurrentReadersWorkflow) Execute(ctx context.Context, readers, writers []adapter.EventStoreAdapter, win Window, seed uint64, obs Observer) (Result, error) {
	var (
		mu      sync.Mutex
		samples []metrics.RawSample
		wg      sync.WaitGroup
	)

	overall := metrics.NewLatencyRecorder()
	var overallMu sync.Mutex
	var eventsRead uint64
	var eventsReadMu sync.Mutex
	limit := readLimit

	for i, client := range readers {
		i, client := i, client
		wg.Add(1)
		go func() {
			defer wg.Done()

			rng := rand.New(rand.NewSource(int64(seed) + int64(i)))
			rec := metrics.NewLatencyRecorder()
			var readerEventsRead uint64

			for time.Now().Before(win.EndAt) {
				idx := pickStreamIndex(rng, w.wl.Streams)
				req := adapter.ReadRequest{
					Stream: streamName(idx),
					Limit:  &limit,
				}

				t0 := time.Now()
				events, err := client.Read(ctx, req)
				dt := time.Since(t0)
				now := time.Now()
				ok := err == nil
				if ok {
					readerEventsRead += uint64(len(events))
				}

				if obs != nil {
					obs.ObserveOp("read", ok)
				}

				if win.InWindow(now) {
					rec.Record(dt)
					latencyUs := uint64(dt.Microseconds())
					if latencyUs < 1 {
						latencyUs = 1
					}
					mu.Lock()
					samples = append(samples, metrics.RawSample{
						TMs:       metrics.NowMs(),
						Op:        "read",
						LatencyUs: latencyUs,
						OK:        ok,
					})
					mu.Unlock()
				}
			}

			overallMu.Lock()
			overall.Merge(rec)
			overallMu.Unlock()

			eventsReadMu.Lock()
			eventsRead += readerEventsRead
			eventsReadMu.Unlock()
		}()
	}

	wg.Wait()

	return Result{
		Histogram:  overall,
		EventsRead: eventsRead,
		Samples:    samples,
	}, nil
}

// ConcurrentReadersFactory builds ConcurrentReadersWorkflow instances.
type ConcurrentReadersFactory struct {
	Workload workload.Workload
}

// Name implements Factory.
func (f ConcurrentReadersFactory) Name() string { return "concurrent_readers" }

// Create implements Factory.
func (f ConcurrentReadersFactory) Create() Strategy {
	return &ConcurrentReadersWorkflow{wl: f.Workload}
}
