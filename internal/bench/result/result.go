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

// Package result writes a run's machine-readable artifacts to disk.
package result

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"eventbench/internal/bench/metrics"
)

// runMeta is the tiny provenance record written alongside summary.json.
type runMeta struct {
	Adapter  string `json:"adapter"`
	Workload string `json:"workload"`
}

// Dir computes the artifact directory for one run:
// <output>/<workload_stem>/<adapter>[_w<W>][_r<R>]/
func Dir(output, workloadPath, adapterName string, writers, readers int) string {
	stem := strings.TrimSuffix(filepath.Base(workloadPath), filepath.Ext(workloadPath))
	return filepath.Join(output, stem, adapterName+suffix(writers, readers))
}

func suffix(writers, readers int) string {
	switch {
	case writers > 0 && readers == 0:
		return fmt.Sprintf("_w%d", writers)
	case readers > 0 && writers == 0:
		return fmt.Sprintf("_r%d", readers)
	default:
		return fmt.Sprintf("_w%d_r%d", writers, readers)
	}
}

// Write emits summary.json (pretty), samples.jsonl (one compact object per
// line, trailing newline) and run.meta.json (compact single line) under
// Dir(output, workloadPath, summary.Adapter, summary.Writers, summary.Readers).
func Write(output, workloadPath string, summary metrics.Summary, samples []metrics.RawSample) error {
	dir := Dir(output, workloadPath, summary.Adapter, summary.Writers, summary.Readers)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create result dir %s: %w", dir, err)
	}

	if err := writeSummary(filepath.Join(dir, "summary.json"), summary); err != nil {
		return err
	}
	if err := writeSamples(filepath.Join(dir, "samples.jsonl"), samples); err != nil {
		return err
	}
	if err := writeMeta(filepath.Join(dir, "run.meta.json"), summary.Adapter, workloadPath); err != nil {
		return err
	}
	return nil
}

func writeSummary(path string, summary metrics.Summary) error {
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func writeSamples(path string, samples []metrics.RawSample) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, s := range samples {
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encode sample: %w", err)
		}
	}
	return nil
}

func writeMeta(path, adapterName, workloadPath string) error {
	data, err := json.Marshal(runMeta{Adapter: adapterName, Workload: workloadPath})
	if err != nil {
		return fmt.Errorf("marshal run meta: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
