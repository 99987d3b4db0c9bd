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

package containerstats

import (
	"sync"
	"time"
)

// samplePeriod is the fixed interval between stats snapshots.
const samplePeriod = 1 * time.Second

// Observer receives a sample as soon as it is taken, for optional live
// telemetry. It must not block.
type Observer interface {
	ObserveContainerSample(cpuPercent float64, memoryBytes uint64)
}

// Sampler polls the container runtime CLI on a dedicated goroutine — never
// the goroutine(s) running the measured append/read path — so a slow
// subprocess call cannot stall load generation. It runs until EndAt, taking
// one sample per second.
type Sampler struct {
	containerID string
	endAt       time.Time
	observer    Observer

	mu          sync.Mutex
	cpuSamples  []float64
	memSamples  []uint64

	stopped chan struct{}
}

// NewSampler returns a Sampler that will poll containerID until endAt.
// observer may be nil.
func NewSampler(containerID string, endAt time.Time, observer Observer) *Sampler {
	return &Sampler{
		containerID: containerID,
		endAt:       endAt,
		observer:    observer,
		stopped:     make(chan struct{}),
	}
}

// Run blocks, sampling once per second until EndAt, then returns. Intended
// to be launched on its own goroutine by the caller.
func (s *Sampler) Run() {
	defer close(s.stopped)

	if s.containerID == "" {
		return
	}

	ticker := time.NewTicker(samplePeriod)
	defer ticker.Stop()

	for {
		if !time.Now().Before(s.endAt) {
			return
		}
		<-ticker.C
		if !time.Now().Before(s.endAt) {
			return
		}
		s.sampleOnce()
	}
}

// sampleOnce takes one snapshot. Parse or CLI failures are silently
// skipped, per the stats-sample-failure error policy.
func (s *Sampler) sampleOnce() {
	sample, err := readDockerStats(s.containerID)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.cpuSamples = append(s.cpuSamples, sample.CPUPercent)
	s.memSamples = append(s.memSamples, sample.MemoryBytes)
	s.mu.Unlock()

	if s.observer != nil {
		s.observer.ObserveContainerSample(sample.CPUPercent, sample.MemoryBytes)
	}
}

// Wait blocks until Run has returned.
func (s *Sampler) Wait() {
	<-s.stopped
}

// Aggregate reduces the collected samples to avg/peak CPU and memory.
// Fields are nil when no sample was ever collected.
func (s *Sampler) Aggregate() (avgCPU, peakCPU *float64, avgMem, peakMem *uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.cpuSamples) > 0 {
		var sum, peak float64
		for i, v := range s.cpuSamples {
			sum += v
			if i == 0 || v > peak {
				peak = v
			}
		}
		avg := sum / float64(len(s.cpuSamples))
		avgCPU, peakCPU = &avg, &peak
	}

	if len(s.memSamples) > 0 {
		var sum, peak uint64
		for i, v := range s.memSamples {
			sum += v
			if i == 0 || v > peak {
				peak = v
			}
		}
		avg := sum / uint64(len(s.memSamples))
		avgMem, peakMem = &avg, &peak
	}

	return avgCPU, peakCPU, avgMem, peakMem
}

// ImageSizeBytes resolves the image size for containerID. It is called once
// after container start, not sampled periodically.
func ImageSizeBytes(containerID string) (uint64, error) {
	return readImageSizeBytes(containerID)
}
