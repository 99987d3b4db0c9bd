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

package dummy

import (
	"context"
	"testing"

	"eventbench/internal/bench/adapter"
)

func TestAdapter_AppendAndRead(t *testing.T) {
	a := &Adapter{}
	ctx := context.Background()

	if err := a.Connect(ctx, adapter.ConnectionParams{}); err != nil {
		t.Fatalf("Connect() error: %v", err)
	}
	if err := a.Append(ctx, adapter.EventData{Stream: "stream-0", EventType: "test", Payload: []byte("x")}); err != nil {
		t.Fatalf("Append() error: %v", err)
	}

	events, err := a.Read(ctx, adapter.ReadRequest{Stream: "stream-0"})
	if err != nil {
		t.Fatalf("Read() error: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("Read() = %v, want empty (dummy never stores anything)", events)
	}
}

func TestAdapter_BatchAppendUsesDefaultLoop(t *testing.T) {
	a := &Adapter{}
	ctx := context.Background()
	events := []adapter.EventData{
		{Stream: "stream-0", EventType: "test"},
		{Stream: "stream-1", EventType: "test"},
	}
	if err := a.BatchAppend(ctx, events); err != nil {
		t.Fatalf("BatchAppend() error: %v", err)
	}
}

func TestAdapter_Ping(t *testing.T) {
	a := &Adapter{}
	d, err := a.Ping(context.Background())
	if err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
	if d <= 0 {
		t.Errorf("Ping() duration = %v, want > 0", d)
	}
}

func TestFactory_NoContainerManager(t *testing.T) {
	f := Factory{}
	if f.Name() != "dummy" {
		t.Errorf("Name() = %q, want dummy", f.Name())
	}
	if f.ContainerManager() != nil {
		t.Error("ContainerManager() should be nil for dummy")
	}
	if f.NewClient() == nil {
		t.Error("NewClient() should not be nil")
	}
}
