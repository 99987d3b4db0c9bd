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
	"testing"
	"time"
)

func TestSampler_NoContainerIDStopsImmediately(t *testing.T) {
	s := NewSampler("", time.Now().Add(5*time.Second), nil)
	done := make(chan struct{})
	go func() {
		s.Run()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(1 * time.Second):
		t.Fatal("Run() did not return promptly when containerID is empty")
	}

	avgCPU, peakCPU, avgMem, peakMem := s.Aggregate()
	if avgCPU != nil || peakCPU != nil || avgMem != nil || peakMem != nil {
		t.Errorf("Aggregate() = (%v,%v,%v,%v), want all nil when no samples were collected", avgCPU, peakCPU, avgMem, peakMem)
	}
}

func TestSampler_AggregateEmpty(t *testing.T) {
	s := NewSampler("fake-container", time.Now(), nil)
	avgCPU, peakCPU, avgMem, peakMem := s.Aggregate()
	if avgCPU != nil || peakCPU != nil || avgMem != nil || peakMem != nil {
		t.Errorf("Aggregate() on empty sampler should return all-nil, got (%v,%v,%v,%v)", avgCPU, peakCPU, avgMem, peakMem)
	}
}
