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
	"errors"
	"testing"
	"time"
)

type recordingAdapter struct {
	appended []EventData
	failAt   int
}

func (r *recordingAdapter) Connect(ctx context.Context, params ConnectionParams) error { return nil }
func (r *recordingAdapter) Append(ctx context.Context, evt EventData) error {
	if r.failAt >= 0 && len(r.appended) == r.failAt {
		return errors.New("injected failure")
	}
	r.appended = append(r.appended, evt)
	return nil
}
func (r *recordingAdapter) BatchAppend(ctx context.Context, events []EventData) error {
	return DefaultBatchAppend(ctx, r, events)
}
func (r *recordingAdapter) Read(ctx context.Context, req ReadRequest) ([]ReadEvent, error) {
	return nil, nil
}
func (r *recordingAdapter) Ping(ctx context.Context) (time.Duration, error) { return 0, nil }
func (r *recordingAdapter) Close() error                                    { return nil }

func TestDefaultBatchAppend_StopsOnFirstFailure(t *testing.T) {
	a := &recordingAdapter{failAt: 1}
	events := []EventData{{Stream: "s0"}, {Stream: "s1"}, {Stream: "s2"}}

	err := a.BatchAppend(context.Background(), events)
	if err == nil {
		t.Fatal("expected error from injected failure")
	}
	if len(a.appended) != 1 {
		t.Errorf("appended %d events before stopping, want 1", len(a.appended))
	}
}

func TestDefaultBatchAppend_AllSucceed(t *testing.T) {
	a := &recordingAdapter{failAt: -1}
	events := []EventData{{Stream: "s0"}, {Stream: "s1"}}

	if err := a.BatchAppend(context.Background(), events); err != nil {
		t.Fatalf("BatchAppend() error: %v", err)
	}
	if len(a.appended) != 2 {
		t.Errorf("appended %d events, want 2", len(a.appended))
	}
}
