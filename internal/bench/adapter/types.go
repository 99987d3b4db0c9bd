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

// Package adapter defines the uniform capability set that every event-store
// client exposes to the workload runner, independent of the store's native
// wire protocol.
package adapter

// ConnectionParams carries whatever a client needs to dial a store. It is
// produced once — either by a ContainerManager's Start, or supplied directly
// on the CLI — and is treated as immutable from that point on.
type ConnectionParams struct {
	URI     string
	Options map[string]string
}

// EventData is the write-side payload for a single append. It is created
// fresh per operation by a workflow task and consumed by exactly one
// adapter call.
type EventData struct {
	Stream    string
	EventType string
	Payload   []byte
	Tags      []string
}

// ReadRequest selects a slice of a stream's history. FromOffset and Limit are
// pointers so "not set" and "set to zero" are distinguishable.
type ReadRequest struct {
	Stream     string
	FromOffset *uint64
	Limit      *uint64
}

// ReadEvent is one event returned by a read. TimestampMs is adapter-defined
// (wall-clock or store-assigned) and must never be used by the harness to
// order or time anything.
type ReadEvent struct {
	Offset      uint64
	EventType   string
	Payload     []byte
	TimestampMs uint64
}
