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

package metrics

import (
	"time"

	hdr "github.com/HdrHistogram/hdrhistogram-go"
)

// histMin/histMax bound the histogram's dynamic range: at least 1 microsecond
// up to 60 seconds, per the latency recorder's contract.
const (
	histMin     = 1
	histMax     = 60 * 1000 * 1000 // 60s in microseconds
	sigFigs     = 3
)

// LatencyRecorder is a high-dynamic-range histogram over microsecond
// latencies. Values are recorded in microseconds; percentile queries are
// exposed in milliseconds.
type LatencyRecorder struct {
	hist *hdr.Histogram
}

// NewLatencyRecorder returns an empty recorder.
func NewLatencyRecorder() *LatencyRecorder {
	return &LatencyRecorder{hist: hdr.New(histMin, histMax, sigFigs)}
}

// Record stores one completed operation's latency. Durations are clamped to
// at least 1 microsecond so a near-instant operation still counts.
func (r *LatencyRecorder) Record(d time.Duration) {
	us := d.Microseconds()
	if us < 1 {
		us = 1
	}
	_ = r.hist.RecordValue(us)
}

// Count is the number of values recorded so far.
func (r *LatencyRecorder) Count() uint64 {
	return uint64(r.hist.TotalCount())
}

// Merge folds other's counts into r. Used to combine per-task histograms at
// join time.
func (r *LatencyRecorder) Merge(other *LatencyRecorder) {
	if other == nil {
		return
	}
	r.hist.Merge(other.hist)
}

// Stats returns the current p50/p95/p99/p999 in milliseconds.
func (r *LatencyRecorder) Stats() LatencyStats {
	return LatencyStats{
		P50Ms:  float64(r.hist.ValueAtQuantile(50)) / 1000.0,
		P95Ms:  float64(r.hist.ValueAtQuantile(95)) / 1000.0,
		P99Ms:  float64(r.hist.ValueAtQuantile(99)) / 1000.0,
		P999Ms: float64(r.hist.ValueAtQuantile(99.9)) / 1000.0,
	}
}

// NowMs returns the current wall-clock time in epoch milliseconds, the unit
// RawSample.TMs is captured in.
func NowMs() int64 {
	return time.Now().UnixMilli()
}
