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

// Package axonserver adapts the harness's uniform contract onto Axon
// Server's event-sourcing gRPC API.
package axonserver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/grpc"

	"eventbench/internal/bench/adapter"
	"eventbench/internal/bench/adapter/grpcutil"
	"eventbench/internal/bench/containermgr"
)

const healthServiceName = "io.axoniq.axonserver.grpc.event.EventStore"

type tag struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

type wireEvent struct {
	Identifier string `json:"identifier"`
	TimestampMs int64  `json:"timestamp"`
	Name       string `json:"name"`
	Payload    []byte `json:"payload"`
}

type taggedEvent struct {
	Event wireEvent `json:"event"`
	Tags  []tag     `json:"tag"`
}

type appendRequest struct {
	Events []taggedEvent `json:"events"`
}

type appendResponse struct {
	Sequence uint64 `json:"sequence"`
}

type sourceRequest struct {
	From  int64  `json:"from"`
	Limit uint64 `json:"limit"`
	Tag   tag    `json:"tag"`
}

type sourceEvent struct {
	Sequence  uint64    `json:"sequence"`
	TimestampMs int64   `json:"timestamp"`
	Event     wireEvent `json:"event"`
}

type sourceResponse struct {
	Events []sourceEvent `json:"events"`
}

// Adapter is a per-task Axon Server client.
type Adapter struct {
	conn *grpc.ClientConn
}

// Connect dials the gRPC port. Axon Server's default URI carries an
// http:// prefix in this harness's configuration; it is stripped before
// dialing since gRPC targets are bare host:port.
func (a *Adapter) Connect(ctx context.Context, params adapter.ConnectionParams) error {
	target := strings.TrimPrefix(strings.TrimPrefix(params.URI, "http://"), "https://")
	conn, err := grpcutil.Dial(target)
	if err != nil {
		return fmt.Errorf("dial axonserver at %s: %w", target, err)
	}
	a.conn = conn
	return nil
}

// Append sends one tagged event, stamping a stream tag so reads can filter
// by stream.
func (a *Adapter) Append(ctx context.Context, evt adapter.EventData) error {
	tags := make([]tag, 0, len(evt.Tags)+1)
	for _, t := range evt.Tags {
		tags = append(tags, tag{Key: []byte(t)})
	}
	tags = append(tags, tag{Key: []byte("stream"), Value: []byte(evt.Stream)})

	req := appendRequest{Events: []taggedEvent{{
		Event: wireEvent{
			TimestampMs: time.Now().UnixMilli(),
			Name:        evt.EventType,
			Payload:     evt.Payload,
		},
		Tags: tags,
	}}}
	var resp appendResponse
	return grpcutil.Invoke(ctx, a.conn, "/io.axoniq.axonserver.grpc.event.dcb.DcbEventStore/Append", &req, &resp)
}

// BatchAppend uses the shared default loop.
func (a *Adapter) BatchAppend(ctx context.Context, events []adapter.EventData) error {
	return adapter.DefaultBatchAppend(ctx, a, events)
}

// Read sources events tagged with the requested stream.
func (a *Adapter) Read(ctx context.Context, req adapter.ReadRequest) ([]adapter.ReadEvent, error) {
	var from int64
	if req.FromOffset != nil {
		from = int64(*req.FromOffset)
	}
	limit := uint64(4096)
	if req.Limit != nil {
		limit = *req.Limit
	}
	wireReq := sourceRequest{From: from, Limit: limit, Tag: tag{Key: []byte("stream"), Value: []byte(req.Stream)}}

	var resp sourceResponse
	if err := grpcutil.Invoke(ctx, a.conn, "/io.axoniq.axonserver.grpc.event.dcb.DcbEventStore/Source", &wireReq, &resp); err != nil {
		return nil, err
	}
	out := make([]adapter.ReadEvent, 0, len(resp.Events))
	for _, e := range resp.Events {
		out = append(out, adapter.ReadEvent{
			Offset:      e.Sequence,
			EventType:   e.Event.Name,
			Payload:     e.Event.Payload,
			TimestampMs: uint64(e.TimestampMs),
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

// Factory builds Axon Server client instances and owns the container
// lifecycle.
type Factory struct {
	mgr *containermgr.Manager
}

// NewFactory returns a Factory with its own container manager.
func NewFactory() *Factory {
	f := &Factory{}
	f.mgr = containermgr.NewManager(containermgr.AxonServerSpec(containermgr.PingProbe(func() adapter.EventStoreAdapter {
		return &Adapter{}
	})))
	return f
}

// Name implements adapter.Factory.
func (f *Factory) Name() string { return "axonserver" }

// NewClient implements adapter.Factory.
func (f *Factory) NewClient() adapter.EventStoreAdapter { return &Adapter{} }

// ContainerManager implements adapter.Factory.
func (f *Factory) ContainerManager() adapter.ContainerManager { return f.mgr }
