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

// Package runner is the single coordinator that drives one workload
// end-to-end: container start, optional prepopulation, client construction,
// the timed measurement window, and artifact-ready metrics.
package runner

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"eventbench/internal/bench/adapter"
	"eventbench/internal/bench/containerstats"
	"eventbench/internal/bench/metrics"
	"eventbench/internal/bench/workflow"
	"eventbench/internal/bench/workload"
)

// warmupCooldown is the fixed 1-second warmup and cooldown margin around the
// timed measurement window.
const warmupCooldown = 1 * time.Second

// Options parameterizes one run.
type Options struct {
	Workload        workload.Workload
	AdapterFactory  adapter.Factory
	WorkflowFactory workflow.Factory
	ConnParams      adapter.ConnectionParams // used only when AdapterFactory has no ContainerManager
	Seed            uint64
	Observer        interface {
		workflow.Observer
		containerstats.Observer
	}
}

// Outcome is everything a run produced, ready to be handed to the result
// emitter.
type Outcome struct {
	Summary metrics.Summary
	Samples []metrics.RawSample
}

// Run executes one workload against one adapter and returns its outcome.
// Lifecycle errors (container start, client construction) abort the run and
// best-effort tear down anything already started.
func Run(ctx context.Context, opts Options) (Outcome, error) {
	var (
		params       adapter.ConnectionParams
		startupTimeS float64
		mgr          adapter.ContainerManager
	)

	var imageSize *uint64
	mgr = opts.AdapterFactory.ContainerManager()
	if mgr != nil {
		t0 := time.Now()
		var err error
		params, err = mgr.Start(ctx)
		if err != nil {
			return Outcome{}, fmt.Errorf("start container: %w", err)
		}
		startupTimeS = time.Since(t0).Seconds()
		if size, err := containerstats.ImageSizeBytes(mgr.ContainerID()); err == nil {
			imageSize = &size
		}
	} else {
		params = opts.ConnParams
	}

	teardown := func() {
		if mgr != nil {
			if err := mgr.Stop(ctx); err != nil {
				log.Printf("container teardown failed: %v", err)
			}
		}
	}

	if opts.Workload.Setup != nil {
		if err := runSetup(ctx, opts.AdapterFactory, params, opts.Workload); err != nil {
			teardown()
			return Outcome{}, fmt.Errorf("setup phase: %w", err)
		}
	}

	readers := make([]adapter.EventStoreAdapter, 0, opts.Workload.Readers)
	writers := make([]adapter.EventStoreAdapter, 0, opts.Workload.Writers)
	allClients := make([]adapter.EventStoreAdapter, 0, opts.Workload.Readers+opts.Workload.Writers)

	closeAll := func() {
		for _, c := range allClients {
			_ = c.Close()
		}
	}

	for i := 0; i < opts.Workload.Readers; i++ {
		c := opts.AdapterFactory.NewClient()
		if err := c.Connect(ctx, params); err != nil {
			closeAll()
			teardown()
			return Outcome{}, fmt.Errorf("construct reader client %d: %w", i, err)
		}
		readers = append(readers, c)
		allClients = append(allClients, c)
	}
	for i := 0; i < opts.Workload.Writers; i++ {
		c := opts.AdapterFactory.NewClient()
		if err := c.Connect(ctx, params); err != nil {
			closeAll()
			teardown()
			return Outcome{}, fmt.Errorf("construct writer client %d: %w", i, err)
		}
		writers = append(writers, c)
		allClients = append(allClients, c)
	}

	startAt := time.Now()
	measurementStart := startAt.Add(warmupCooldown)
	measurementEnd := measurementStart.Add(time.Duration(opts.Workload.DurationSeconds) * time.Second)
	endAt := measurementEnd.Add(warmupCooldown)

	win := workflow.Window{
		MeasurementStart: measurementStart,
		MeasurementEnd:   measurementEnd,
		EndAt:            endAt,
	}

	var containerID string
	if mgr != nil {
		containerID = mgr.ContainerID()
	}
	var statsObserver containerstats.Observer
	if opts.Observer != nil {
		statsObserver = opts.Observer
	}
	sampler := containerstats.NewSampler(containerID, endAt, statsObserver)
	go sampler.Run()

	strategy := opts.WorkflowFactory.Create()
	var wfObserver workflow.Observer
	if opts.Observer != nil {
		wfObserver = opts.Observer
	}
	result, err := strategy.Execute(ctx, readers, writers, win, opts.Seed, wfObserver)

	sampler.Wait()
	closeAll()
	teardown()

	if err != nil {
		return Outcome{}, fmt.Errorf("execute workflow: %w", err)
	}

	avgCPU, peakCPU, avgMem, peakMem := sampler.Aggregate()

	durationS := opts.Workload.DurationSeconds
	throughput := 0.0
	totalEvents := result.EventsWritten + result.EventsRead
	if durationS > 0 {
		throughput = float64(totalEvents) / float64(durationS)
	}

	summary := metrics.Summary{
		Workload:      opts.Workload.Name,
		Adapter:       opts.AdapterFactory.Name(),
		Writers:       opts.Workload.Writers,
		Readers:       opts.Workload.Readers,
		EventsWritten: result.EventsWritten,
		EventsRead:    result.EventsRead,
		DurationS:     float64(durationS),
		ThroughputEPS: math.Round(throughput*100) / 100,
		Latency:       result.Histogram.Stats(),
		Container: metrics.ContainerMetrics{
			ImageSizeBytes:  imageSize,
			StartupTimeS:    startupTimeS,
			AvgCPUPercent:   avgCPU,
			PeakCPUPercent:  peakCPU,
			AvgMemoryBytes:  avgMem,
			PeakMemoryBytes: peakMem,
		},
	}

	return Outcome{Summary: summary, Samples: result.Samples}, nil
}

// runSetup prepopulates streams before the timed measurement window, on a
// single dedicated client, sequentially.
func runSetup(ctx context.Context, factory adapter.Factory, params adapter.ConnectionParams, wl workload.Workload) error {
	setup := wl.Setup
	numStreams := wl.Streams.UniqueStreams
	if setup.PrepopulateStreams != nil {
		numStreams = *setup.PrepopulateStreams
	}
	if numStreams == 0 {
		numStreams = 1
	}

	eventsPerStream := (setup.EventsToPrepopulate + numStreams - 1) / numStreams

	client := factory.NewClient()
	defer client.Close()
	if err := client.Connect(ctx, params); err != nil {
		return fmt.Errorf("connect setup client: %w", err)
	}

	payload := make([]byte, wl.EventSizeBytes)
	for i := uint64(0); i < numStreams; i++ {
		stream := fmt.Sprintf("stream-%d", i)
		for j := uint64(0); j < eventsPerStream; j++ {
			evt := adapter.EventData{
				Stream:    stream,
				EventType: "test",
				Payload:   payload,
			}
			if err := client.Append(ctx, evt); err != nil {
				return fmt.Errorf("prepopulate %s: %w", stream, err)
			}
		}
	}
	return nil
}
