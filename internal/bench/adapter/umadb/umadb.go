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

// Package umadb adapts the harness's uniform contract onto UmaDB's
// dynamic-consistency-boundary (DCB) event store, reached over gRPC.
package umadb

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"

	"eventbench/internal/bench/adapter"
	"eventbench/internal/bench/adapter/grpcutil"
	"eventbench/internal/bench/containermgr"
)

const healthServiceName = "umadb.DCB"

// dcbEvent mirrors the tagged event shape UmaDB's DCB append RPC expects.
type dcbEvent struct {
	EventType string   `json:"event_type"`
	Tags      []string `json:"tags"`
	Data      []byte   `json:"data"`
	UUID      string   `json:"uuid"`
}

type appendRequest struct {
	Events []dcbEvent `json:"events"`
}

type appendResponse struct {
	Position uint64 `json:"position"`
}

type readRequest struct {
	Tags       []string `json:"tags"`
	FromOffset *uint64  `json:"from_offset,omitempty"`
	Limit      *uint32  `json:"limit,omitempty"`
}

type readEventWire struct {
	Position  uint64 `json:"position"`
	EventType string `json:"event_type"`
	Data      []byte `json:"data"`
}

type readResponse struct {
	Events []readEventWire `json:"events"`
}

// Adapter is a per-task UmaDB client; the underlying gRPC connection is
// exclusively owned by one task for the run's duration.
type Adapter struct {
	conn *grpc.ClientConn
}

// Connect dials the DCB service over plaintext gRPC at params.URI.
// params.Options is not read: api_key, ca_path and batch_size, if given,
// have no effect.
func (a *Adapter) Connect(ctx context.Context, params adapter.ConnectionParams) error {
	conn, err := grpcutil.Dial(params.URI)
	if err != nil {
		return fmt.Errorf("dial umadb at %s: %w", params.URI, err)
	}
	a.conn = conn
	return nil
}

// Append records one event, tagging it with the owning stream so reads can
// filter by stream.
func (a *Adapter) Append(ctx context.Context, evt adapter.EventData) error {
	tags := append(append([]string{}, evt.Tags...), "stream:"+evt.Stream)
	req := appendRequest{Events: []dcbEvent{{
		EventType: evt.EventType,
		Tags:      tags,
		Data:      evt.Payload,
	}}}
	var resp appendResponse
	return grpcutil.Invoke(ctx, a.conn, "/umadb.DCB/Append", &req, &resp)
}

// BatchAppend uses the shared default loop; the DCB service exposes a
// multi-event append but per-event atomicity there is not guaranteed to
// match Append's, so the default sequential loop is kept instead.
func (a *Adapter) BatchAppend(ctx context.Context, events []adapter.EventData) error {
	return adapter.DefaultBatchAppend(ctx, a, events)
}

// Read queries events tagged with the requested stream.
func (a *Adapter) Read(ctx context.Context, req adapter.ReadRequest) ([]adapter.ReadEvent, error) {
	wireReq := readRequest{Tags: []string{"stream:" + req.Stream}, FromOffset: req.FromOffset}
	if req.Limit != nil {
		l := uint32(*req.Limit)
		wireReq.Limit = &l
	}
	var resp readResponse
	if err := grpcutil.Invoke(ctx, a.conn, "/umadb.DCB/Read", &wireReq, &resp); err != nil {
		return nil, err
	}
	out := make([]adapter.ReadEvent, 0, len(resp.Events))
	for _, e := range resp.Events {
		out = append(out, adapter.ReadEvent{
			Offset:    e.Position,
			EventType: e.EventType,
			Payload:   e.Data,
		})
	}
	return out, nil
}

// Ping round-trips the standard gRPC health-checking protocol.
func (a *Adapter) Ping(ctx context.Context) (time.Duration, error) {
	return grpcutil.Ping(ctx, a.conn, healthServiceName)
}

// Close releases the gRPC connection.
func (a *Adapter) Close() error {
	if a.conn == nil {
		return nil
	}
	err := a.conn.Close()
	a.conn = nil
	return err
}

// Factory builds UmaDB client instances and owns the container lifecycle.
type Factory struct {
	mgr *containermgr.Manager
}

// NewFactory returns a Factory with its own container manager.
func NewFactory() *Factory {
	f := &Factory{}
	f.mgr = containermgr.NewManager(containermgr.UmaDBSpec(containermgr.PingProbe(func() adapter.EventStoreAdapter {
		return &Adapter{}
	})))
	return f
}

// Name implements adapter.Factory.
func (f *Factory) Name() string { return "umadb" }

// NewClient implements adapter.Factory.
func (f *Factory) NewClient() adapter.EventStoreAdapter { return &Adapter{} }

// ContainerManager implements adapter.Factory.
func (f *Factory) ContainerManager() adapter.ContainerManager { return f.mgr }
