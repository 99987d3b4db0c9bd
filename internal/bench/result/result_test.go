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

package result

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"eventbench/internal/bench/metrics"
)

func TestDir_SuffixRules(t *testing.T) {
	testCases := []struct {
		name    string
		writers int
		readers int
		want    string
	}{
		{"writers only", 4, 0, "results/raw/big/dummy_w4"},
		{"readers only", 0, 3, "results/raw/big/dummy_r3"},
		{"both", 2, 2, "results/raw/big/dummy_w2_r2"},
		{"neither", 0, 0, "results/raw/big/dummy_w0_r0"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Dir("results/raw", "workloads/big.yaml", "dummy", tc.writers, tc.readers)
			want := filepath.FromSlash(tc.want)
			if got != want {
				t.Errorf("Dir(...) = %q, want %q", got, want)
			}
		})
	}
}

func TestWrite_ArtifactLayout(t *testing.T) {
	dir := t.TempDir()
	summary := metrics.Summary{Workload: "big", Adapter: "dummy", Writers: 4, Readers: 0}
	samples := []metrics.RawSample{
		{TMs: 1, Op: "append", LatencyUs: 10, OK: true},
		{TMs: 2, Op: "append", LatencyUs: 20, OK: false},
	}

	if err := Write(dir, "workloads/big.yaml", summary, samples); err != nil {
		t.Fatalf("Write() error: %v", err)
	}

	runDir := Dir(dir, "workloads/big.yaml", "dummy", 4, 0)
	entries, err := os.ReadDir(runDir)
	if err != nil {
		t.Fatalf("ReadDir(%s) error: %v", runDir, err)
	}
	names := map[string]bool{}
	for _, e := range entries {
		names[e.Name()] = true
	}
	for _, want := range []string{"summary.json", "samples.jsonl", "run.meta.json"} {
		if !names[want] {
			t.Errorf("missing artifact %s in %v", want, names)
		}
	}
	if len(entries) != 3 {
		t.Errorf("expected exactly 3 artifacts, got %d", len(entries))
	}

	metaBytes, err := os.ReadFile(filepath.Join(runDir, "run.meta.json"))
	if err != nil {
		t.Fatalf("read run.meta.json: %v", err)
	}
	var meta runMeta
	if err := json.Unmarshal(metaBytes, &meta); err != nil {
		t.Fatalf("unmarshal run.meta.json: %v", err)
	}
	if meta.Adapter != "dummy" || meta.Workload != "workloads/big.yaml" {
		t.Errorf("run.meta.json = %+v, want adapter=dummy workload=workloads/big.yaml", meta)
	}

	samplesBytes, err := os.ReadFile(filepath.Join(runDir, "samples.jsonl"))
	if err != nil {
		t.Fatalf("read samples.jsonl: %v", err)
	}
	lines := 0
	for _, b := range samplesBytes {
		if b == '\n' {
			lines++
		}
	}
	if lines != len(samples) {
		t.Errorf("samples.jsonl has %d lines, want %d", lines, len(samples))
	}
}
