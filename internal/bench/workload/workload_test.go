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

package workload

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.yaml")
	contents := `
name: sample
duration_seconds: 30
writers: 4
readers: 0
event_size_bytes: 128
streams:
  distribution: zipf
  unique_streams: 1000
setup:
  events_to_prepopulate: 100
  prepopulate_streams: 10
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	wl, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if wl.Name != "sample" || wl.Writers != 4 || wl.Readers != 0 {
		t.Errorf("Load() = %+v, unexpected core fields", wl)
	}
	if wl.Streams.Distribution != "zipf" || wl.Streams.UniqueStreams != 1000 {
		t.Errorf("Load() streams = %+v, unexpected", wl.Streams)
	}
	if wl.Setup == nil || wl.Setup.EventsToPrepopulate != 100 {
		t.Fatalf("Load() setup = %+v, unexpected", wl.Setup)
	}
	if wl.Setup.PrepopulateStreams == nil || *wl.Setup.PrepopulateStreams != 10 {
		t.Errorf("Load() setup.prepopulate_streams = %v, want 10", wl.Setup.PrepopulateStreams)
	}
}

func TestLoad_AbsentOptionalsStayNil(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "minimal.yaml")
	if err := os.WriteFile(path, []byte("name: minimal\n"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	wl, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if wl.Setup != nil {
		t.Errorf("Setup = %+v, want nil", wl.Setup)
	}
	if wl.ConflictRate != nil {
		t.Errorf("ConflictRate = %v, want nil", wl.ConflictRate)
	}
	if wl.Durability != nil {
		t.Errorf("Durability = %v, want nil", wl.Durability)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/path.yaml"); err == nil {
		t.Fatal("Load() expected error for missing file, got nil")
	}
}
