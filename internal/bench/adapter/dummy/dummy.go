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

// Package dummy is a no-op adapter used to exercise the runner and
// workflow strategies without a real store. It never touches a container.
package dummy

import (
	"context"
	"time"

	"eventbench/internal/bench/adapter"
)

// Adapter accepts every append and returns no events on every read. It
// never fails.
type Adapter struct{}

// Connect is a no-op; dummy has no wire to dial.
func (a *Adapter) Connect(ctx context.Context, params adapter.ConnectionParams) error {
	return nil
}

// Append sleeps a fixed 10 microseconds to give the histogram a nonzero,
// realistic-shaped value, then succeeds.
func (a *Adapter) Append(ctx context.Context, evt adapter.EventData) error {
	time.Sleep(10 * time.Microsecond)
	return nil
}

// BatchAppend uses the shared default loop.
func (a *Adapter) BatchAppend(ctx context.Context, events []adapter.EventData) error {
	return adapter.DefaultBatchAppend(ctx, a, events)
}

// Read always returns an empty result set.
func (a *Adapter) Read(ctx context.Context, req adapter.ReadRequest) ([]adapter.ReadEvent, error) {
	return nil, nil
}

// Ping reports a fixed 1 millisecond round trip.
func (a *Adapter) Ping(ctx context.Context) (time.Duration, error) {
	return 1 * time.Millisecond, nil
}

// Close is a no-op.
func (a *Adapter) Close() error {
	return nil
}

// Factory builds dummy Adapter instances. It deliberately has no
// ContainerManager — the dummy store doesn't use containers.
type Factory struct{}

// Name implements adapter.Factory.
func (f Factory) Name() string { return "dummy" }

// NewClient implements adapter.Factory.
func (f Factory) NewClient() adapter.EventStoreAdapter { return &Adapter{} }

// ContainerManager implements adapter.Factory. Always nil.
func (f Factory) ContainerManager() adapter.ContainerManager { return nil }
