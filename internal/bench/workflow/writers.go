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

// ConcurrentWritersWorkflow drives unconditional appends against one stream
// per write, one goroutine per writer client, until EndAt. Each goroutine
// owns its client and its histogram exclusively; the sample buffer is
// shared across goroutines behind a mutex.
type ConcurrentWritersWorkflow struct {
	wl workload.Workload
}

// Execute implements Strategy. writers is used; readers is ignored.
func (w *ConcurrentWritersWorkflow) Execute(ctx context.Context, readers, writers []adapter.EventStoreAdapter, win Window, seed uint64, obs Observer) (Result, error) {
	var (
		mu      sync.Mutex
		samples []metrics.RawSample
		wg      sync.WaitGroup
	)

	overall := metrics.NewLatencyRecorder()
	var overallMu sync.Mutex
	var eventsWritten uint64
	var eventsWrittenMu sync.Mutex

	for i, client := range writers {
		i, client := i, client
		wg.Add(1)
		go func() {
			defer wg.Done()

			rng := rand.New(rand.NewSource(int64(seed) + int64(i)))
			rec := metrics.NewLatencyRecorder()
			payload := make([]byte, w.wl.EventSizeBytes)

			for time.Now().Before(win.EndAt) {
				idx := pickStreamIndex(rng, w.wl.Streams)
				evt := adapter.EventData{
					Stream:    streamName(idx),
					EventType: "test",
					Payload:   payload,
				}

				t0 := time.Now()
				err := client.Append(ctx, evt)
				dt := time.Since(t0)
				now := time.Now()
				ok := err == nil

				if obs != nil {
					obs.ObserveOp("append", ok)
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
						Op:        "append",
						LatencyUs: latencyUs,
						OK:        ok,
					})
					mu.Unlock()
				}
			}

			overallMu.Lock()
			overall.Merge(rec)
			overallMu.Unlock()

			eventsWrittenMu.Lock()
			eventsWritten += rec.Count()
			eventsWrittenMu.Unlock()
		}()
	}

	wg.Wait()

	return Result{
		Histogram:     overall,
		EventsWritten: eventsWritten,
		Samples:       samples,
	}, nil
}

// ConcurrentWritersFactory builds ConcurrentWritersWorkflow instances.
type ConcurrentWritersFactory struct {
	Workload workload.Workload
}

// Name implements Factory.
func (f ConcurrentWritersFactory) Name() string { return "concurrent_writers" }

// Create implements Factory.
func (f ConcurrentWritersFactory) Create() Strategy {
	return &ConcurrentWritersWorkflow{wl: f.Workload}
}
