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

package adapter

import (
	"context"
	"time"
)

// EventStoreAdapter is the uniform client wrapper every store implements.
// Implementations must be safe for use by exactly one goroutine at a time —
// the runner guarantees one instance per concurrent task and never shares an
// instance across tasks, so adapters must not add their own internal mutex
// to paper over concurrent misuse.
type EventStoreAdapter interface {
	// Connect dials the store using params. Called once, before any other method.
	Connect(ctx context.Context, params ConnectionParams) error

	// Append durably records one event. A store-level failure is returned as
	// an error; the adapter never retries.
	Append(ctx context.Context, evt EventData) error

	// BatchAppend appends a sequence of events. The default loops over Append
	// and stops at the first failure, matching Append's per-event atomicity.
	// Adapters may override this for efficiency but must preserve that
	// stop-on-first-failure behavior.
	BatchAppend(ctx context.Context, events []EventData) error

	// Read returns events with Offset >= *req.FromOffset (when set), truncated
	// to *req.Limit (when set), in store order.
	Read(ctx context.Context, req ReadRequest) ([]ReadEvent, error)

	// Ping round-trips a minimal request and reports how long it took.
	Ping(ctx context.Context) (time.Duration, error)

	// Close releases any resources held by the client. Idempotent.
	Close() error
}

// Factory produces independent client instances. Name is stable and used for
// CLI selection and default-URI lookup; ContainerManager is optional — nil
// means the store is reached directly via a user-supplied ConnectionParams.
type Factory interface {
	Name() string
	NewClient() EventStoreAdapter
	ContainerManager() ContainerManager
}

// ContainerManager controls the lifecycle of a store instance that the
// harness itself brings up, as opposed to one already running externally.
// It is deliberately a separate interface from EventStoreAdapter: many
// independent client instances can share the one container a ContainerManager
// starts.
type ContainerManager interface {
	// Start brings the store up and polls readiness. It returns the
	// externally reachable connection params, or an error if readiness was
	// not reached within the budget.
	Start(ctx context.Context) (ConnectionParams, error)

	// Stop tears the store down. Idempotent.
	Stop(ctx context.Context) error

	// ContainerID exposes the runtime identifier for the stats sampler.
	// Empty before Start or after Stop.
	ContainerID() string
}

// DefaultBatchAppend is the reusable BatchAppend body: sequential Append
// calls that stop at the first failure. Adapters call this from their
// BatchAppend instead of hand-rolling the loop.
func DefaultBatchAppend(ctx context.Context, a EventStoreAdapter, events []EventData) error {
	for _, e := range events {
		if err := a.Append(ctx, e); err != nil {
			return err
		}
	}
	return nil
}
