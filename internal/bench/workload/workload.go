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

// Package workload decodes the declarative workload spec that parameterizes
// one benchmark run.
package workload

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Streams controls how a workflow picks which stream to hit on each
// operation.
type Streams struct {
	Distribution  string `yaml:"distribution"`
	UniqueStreams uint64 `yaml:"unique_streams"`
}

// Setup describes an optional prepopulation phase run once before the
// timed workload.
type Setup struct {
	EventsToPrepopulate uint64  `yaml:"events_to_prepopulate"`
	PrepopulateStreams  *uint64 `yaml:"prepopulate_streams"`
}

// Workload is the full declarative spec for one run. It is immutable once
// loaded.
type Workload struct {
	Name            string   `yaml:"name"`
	DurationSeconds uint64   `yaml:"duration_seconds"`
	Writers         int      `yaml:"writers"`
	Readers         int      `yaml:"readers"`
	EventSizeBytes  int      `yaml:"event_size_bytes"`
	Streams         Streams  `yaml:"streams"`
	Setup           *Setup   `yaml:"setup"`
	ConflictRate    *float64 `yaml:"conflict_rate"`
	Durability      *string  `yaml:"durability"`
}

// Load decodes a workload YAML file. Unknown fields are ignored; absent
// optionals keep their Go zero value (nil for pointers).
func Load(path string) (Workload, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Workload{}, fmt.Errorf("read workload file %s: %w", path, err)
	}
	var wl Workload
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return Workload{}, fmt.Errorf("parse workload file %s: %w", path, err)
	}
	return wl, nil
}
