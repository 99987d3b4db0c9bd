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

package runner

import (
	"context"
	"testing"

	"eventbench/internal/bench/adapter"
	"eventbench/internal/bench/adapter/dummy"
	"eventbench/internal/bench/workflow"
	"eventbench/internal/bench/workload"
)

func TestRun_DummyWritersOnly(t *testing.T) {
	wl := workload.Workload{
		Name:            "writers-only",
		DurationSeconds: 1,
		Writers:         2,
		Readers:         0,
		EventSizeBytes:  64,
		Streams:         workload.Streams{Distribution: "uniform", UniqueStreams: 100},
	}

	outcome, err := Run(context.Background(), Options{
		Workload:        wl,
		AdapterFactory:  dummy.Factory{},
		WorkflowFactory: workflow.ConcurrentWritersFactory{Workload: wl},
		Seed:            42,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if outcome.Summary.EventsWritten == 0 {
		t.Error("expected events_written > 0")
	}
	if outcome.Summary.EventsRead != 0 {
		t.Errorf("expected events_read == 0, got %d", outcome.Summary.EventsRead)
	}
	if outcome.Summary.ThroughputEPS <= 0 {
		t.Error("expected throughput_eps > 0")
	}
	if len(outcome.Samples) == 0 {
		t.Error("expected at least one sample")
	}
	if outcome.Summary.DurationS != float64(wl.DurationSeconds) {
		t.Errorf("duration_s = %v, want %v", outcome.Summary.DurationS, wl.DurationSeconds)
	}
}

func TestRun_DummyReadersOnly(t *testing.T) {
	wl := workload.Workload{
		Name:            "readers-only",
		DurationSeconds: 1,
		Writers:         0,
		Readers:         2,
		EventSizeBytes:  64,
		Streams:         workload.Streams{Distribution: "uniform", UniqueStreams: 100},
	}

	outcome, err := Run(context.Background(), Options{
		Workload:        wl,
		AdapterFactory:  dummy.Factory{},
		WorkflowFactory: workflow.ConcurrentReadersFactory{Workload: wl},
		Seed:            42,
	})
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	if outcome.Summary.EventsRead != 0 {
		t.Errorf("dummy reads always return empty, want events_read == 0, got %d", outcome.Summary.EventsRead)
	}
	if len(outcome.Samples) == 0 {
		t.Error("expected at least one sample")
	}
	for _, s := range outcome.Samples {
		if s.Op != "read" {
			t.Errorf("sample op = %q, want \"read\"", s.Op)
		}
		if s.LatencyUs < 1 {
			t.Errorf("sample latency_us = %d, want >= 1", s.LatencyUs)
		}
	}
}

func TestRunSetup_Prepopulation(t *testing.T) {
	streams := uint64(10)
	wl := workload.Workload{
		Name:           "prepopulate",
		EventSizeBytes: 16,
		Streams:        workload.Streams{Distribution: "uniform", UniqueStreams: streams},
		Setup: &workload.Setup{
			EventsToPrepopulate: 100,
			PrepopulateStreams:  &streams,
		},
	}

	factory := dummy.Factory{}
	if err := runSetup(context.Background(), factory, adapter.ConnectionParams{}, wl); err != nil {
		t.Fatalf("runSetup() error: %v", err)
	}
}
