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

// Package grpcutil holds the generic gRPC plumbing shared by adapters whose
// store speaks gRPC but whose wire contract is opaque to the harness: a
// JSON codec for raw method invocation, and a health-check-based Ping.
package grpcutil

import (
	"context"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"encoding/json"
)

const jsonCodecName = "eventbench-json"

// jsonCodec marshals gRPC messages as JSON instead of protobuf, so this
// package can invoke arbitrary store methods without a generated .proto
// client. Registered once via init.
type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error) { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string { return jsonCodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// Dial opens a plaintext gRPC connection to target, using the JSON codec for
// any subsequent Invoke call.
func Dial(target string) (*grpc.ClientConn, error) {
	return grpc.NewClient(
		target,
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(jsonCodecName)),
	)
}

// Invoke calls method on conn, marshaling req and unmarshaling into resp
// with the JSON codec.
func Invoke(ctx context.Context, conn *grpc.ClientConn, method string, req, resp any) error {
	return conn.Invoke(ctx, method, req, resp)
}

// Ping round-trips the standard gRPC health-checking protocol and reports
// elapsed time. Used as the container readiness probe and as the adapter's
// own Ping.
func Ping(ctx context.Context, conn *grpc.ClientConn, service string) (time.Duration, error) {
	client := grpc_health_v1.NewHealthClient(conn)
	t0 := time.Now()
	resp, err := client.Check(ctx, &grpc_health_v1.HealthCheckRequest{Service: service})
	if err != nil {
		if status.Code(err) == codes.Unimplemented {
			// The store doesn't implement the health service; a reachable
			// connection is still evidence of readiness.
			return time.Since(t0), nil
		}
		return 0, err
	}
	if resp.Status != grpc_health_v1.HealthCheckResponse_SERVING {
		return 0, status.Errorf(codes.Unavailable, "service %s not serving: %s", service, resp.Status)
	}
	return time.Since(t0), nil
}
