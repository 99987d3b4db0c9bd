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

// Package metrics holds the latency histogram, the raw per-operation sample
// shape, and the aggregated artifacts the runner emits at the end of a run.
package metrics

// RawSample is one completed operation inside the measurement window.
type RawSample struct {
	TMs       int64  `json:"t_ms"`
	Op        string `json:"op"`
	LatencyUs uint64 `json:"latency_us"`
	OK        bool   `json:"ok"`
}

// LatencyStats are percentiles derived from a histogram, in milliseconds.
type LatencyStats struct {
	P50Ms  float64 `json:"p50_ms"`
	P95Ms  float64 `json:"p95_ms"`
	P99Ms  float64 `json:"p99_ms"`
	P999Ms float64 `json:"p999_ms"`
}

// ContainerMetrics summarizes resource usage sampled out-of-band during a
// run. Pointer fields are absent (nil) when no sample was ever collected.
type ContainerMetrics struct {
	ImageSizeBytes  *uint64  `json:"image_size_bytes,omitempty"`
	StartupTimeS    float64  `json:"startup_time_s"`
	AvgCPUPercent   *float64 `json:"avg_cpu_percent,omitempty"`
	PeakCPUPercent  *float64 `json:"peak_cpu_percent,omitempty"`
	AvgMemoryBytes  *uint64  `json:"avg_memory_bytes,omitempty"`
	PeakMemoryBytes *uint64  `json:"peak_memory_bytes,omitempty"`
}

// Summary is the top-level result of one workload run against one adapter.
type Summary struct {
	Workload       string       `json:"workload"`
	Adapter        string       `json:"adapter"`
	Writers        int          `json:"writers"`
	Readers        int          `json:"readers"`
	EventsWritten  uint64       `json:"events_written"`
	EventsRead     uint64       `json:"events_read"`
	DurationS      float64      `json:"duration_s"`
	ThroughputEPS  float64      `json:"throughput_eps"`
	Latency        LatencyStats `json:"latency"`
	Container      ContainerMetrics `json:"container"`
}
