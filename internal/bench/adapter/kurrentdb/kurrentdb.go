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

// Package kurrentdb adapts the harness's uniform contract onto KurrentDB,
// reached over its HTTP AtomPub interface (the container spec this harness
// starts enables KURRENTDB_ENABLE_ATOM_PUB_OVER_HTTP).
package kurrentdb

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"eventbench/internal/bench/adapter"
	"eventbench/internal/bench/containermgr"
)

// atomEvent is one entry in a KurrentDB AtomPub write/read payload.
type atomEvent struct {
	EventID   string          `json:"eventId"`
	EventType string          `json:"eventType"`
	Data      json.RawMessage `json:"data"`
}

type atomFeedEntry struct {
	Summary string `json:"summary"`
}

// Adapter is a per-task KurrentDB client, talking plain HTTP.
type Adapter struct {
	baseURL string
	http    *http.Client
}

// Connect resolves esdb://host:port?tls=false into a plain http base URL;
// KurrentDB's gRPC scheme and its AtomPub HTTP port share the same host.
func (a *Adapter) Connect(ctx context.Context, params adapter.ConnectionParams) error {
	uri := params.URI
	if uri == "" {
		uri = "esdb://localhost:2113?tls=false"
	}
	parsed, err := url.Parse(uri)
	if err != nil {
		return fmt.Errorf("parse kurrentdb uri %q: %w", uri, err)
	}
	scheme := "https"
	if strings.Contains(parsed.RawQuery, "tls=false") {
		scheme = "http"
	}
	a.baseURL = fmt.Sprintf("%s://%s", scheme, parsed.Host)
	a.http = &http.Client{Timeout: 10 * time.Second}
	return nil
}

// Append POSTs one event onto the stream's AtomPub feed.
func (a *Adapter) Append(ctx context.Context, evt adapter.EventData) error {
	payload := []atomEvent{{
		EventID:   uuid.NewString(),
		EventType: evt.EventType,
		Data:      rawJSON(evt.Payload),
	}}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/streams/%s", a.baseURL, evt.Stream), bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/vnd.eventstore.events+json")
	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("append to %s: %w", evt.Stream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("append to %s: status %d", evt.Stream, resp.StatusCode)
	}
	return nil
}

// BatchAppend uses the shared default loop.
func (a *Adapter) BatchAppend(ctx context.Context, events []adapter.EventData) error {
	return adapter.DefaultBatchAppend(ctx, a, events)
}

// Read walks the stream's forward AtomPub feed starting at FromOffset (or
// 0), up to Limit (default 4096) entries.
func (a *Adapter) Read(ctx context.Context, req adapter.ReadRequest) ([]adapter.ReadEvent, error) {
	var from uint64
	if req.FromOffset != nil {
		from = *req.FromOffset
	}
	limit := uint64(4096)
	if req.Limit != nil {
		limit = *req.Limit
	}

	reqURL := fmt.Sprintf("%s/streams/%s/%d/forward/%d", a.baseURL, req.Stream, from, limit)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/vnd.eventstore.atom+json")
	resp, err := a.http.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", req.Stream, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("read %s: status %d", req.Stream, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	var feed struct {
		Entries []atomFeedEntry `json:"entries"`
	}
	if err := json.Unmarshal(body, &feed); err != nil {
		return nil, fmt.Errorf("parse atom feed for %s: %w", req.Stream, err)
	}

	out := make([]adapter.ReadEvent, 0, len(feed.Entries))
	for i, entry := range feed.Entries {
		out = append(out, adapter.ReadEvent{
			Offset:    from + uint64(i),
			EventType: entry.Summary,
		})
	}
	return out, nil
}

// Ping performs a probe append to a dedicated stream, matching the readable
// semantics of a leader-write health check.
func (a *Adapter) Ping(ctx context.Context) (time.Duration, error) {
	t0 := time.Now()
	err := a.Append(ctx, adapter.EventData{Stream: "_ping", EventType: "ping", Payload: []byte("{}")})
	return time.Since(t0), err
}

// Close is a no-op; the HTTP client has no persistent connection to release.
func (a *Adapter) Close() error {
	return nil
}

func rawJSON(payload []byte) json.RawMessage {
	if len(payload) == 0 || payload[0] != '{' {
		return json.RawMessage(`{"raw":"` + encodeHex(payload) + `"}`)
	}
	return json.RawMessage(payload)
}

func encodeHex(b []byte) string {
	const hextable = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hextable[v>>4]
		out[i*2+1] = hextable[v&0x0f]
	}
	return string(out)
}

// Factory builds KurrentDB client instances and owns the container
// lifecycle.
type Factory struct {
	mgr *containermgr.Manager
}

// NewFactory returns a Factory with its own container manager.
func NewFactory() *Factory {
	f := &Factory{}
	f.mgr = containermgr.NewManager(containermgr.KurrentDBSpec(containermgr.PingProbe(func() adapter.EventStoreAdapter {
		return &Adapter{}
	})))
	return f
}

// Name implements adapter.Factory.
func (f *Factory) Name() string { return "kurrentdb" }

// NewClient implements adapter.Factory.
func (f *Factory) NewClient() adapter.EventStoreAdapter { return &Adapter{} }

// ContainerManager implements adapter.Factory.
func (f *Factory) ContainerManager() adapter.ContainerManager { return f.mgr }
