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

// Package containermgr brings up and tears down the store instances the
// harness tests against, using testcontainers-go. It is deliberately
// separate from the adapter package: many independent client instances
// share the one container a Manager starts.
package containermgr

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"eventbench/internal/bench/adapter"
)

// readinessAttempts and readinessInterval bound the start-up probe budget:
// up to 60 attempts at 1 second apart, ≈60 seconds total.
const (
	readinessAttempts = 60
	readinessInterval = 1 * time.Second
)

// Probe checks whether a freshly started container is ready to serve
// traffic. Each call is one attempt that reports success/failure; probes
// never retry internally — Manager owns the retry loop. Manager sets no
// per-attempt deadline: an attempt is bounded only by ctx and by whatever
// timeout the probe's own client applies.
type Probe func(ctx context.Context, params adapter.ConnectionParams) error

// Spec describes one store's container image, ports, environment and the
// probe used to decide readiness.
type Spec struct {
	Image        string
	ExposedPort  string // e.g. "50051/tcp"
	Env          map[string]string
	Cmd          []string
	WaitStrategy wait.Strategy
	BuildURI     func(host string, port string) string
	Probe        Probe
}

// Manager is the generic, testcontainers-backed ContainerManager used by
// every real store adapter. It differs only in its Spec.
type Manager struct {
	spec      Spec
	container testcontainers.Container
	id        string
}

// NewManager returns a Manager for the given image spec.
func NewManager(spec Spec) *Manager {
	return &Manager{spec: spec}
}

// Start brings the container up and polls readiness for up to 60 attempts
// at 1-second intervals using the store-specific probe.
func (m *Manager) Start(ctx context.Context) (adapter.ConnectionParams, error) {
	req := testcontainers.ContainerRequest{
		Image:        m.spec.Image,
		ExposedPorts: []string{m.spec.ExposedPort},
		Env:          m.spec.Env,
		Cmd:          m.spec.Cmd,
	}
	if m.spec.WaitStrategy != nil {
		req.WaitingFor = m.spec.WaitStrategy
	}

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return adapter.ConnectionParams{}, fmt.Errorf("start container %s: %w", m.spec.Image, err)
	}
	m.container = c

	id := c.GetContainerID()
	m.id = id

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(ctx)
		return adapter.ConnectionParams{}, fmt.Errorf("resolve container host: %w", err)
	}
	mappedPort, err := c.MappedPort(ctx, nat.Port(m.spec.ExposedPort))
	if err != nil {
		_ = c.Terminate(ctx)
		return adapter.ConnectionParams{}, fmt.Errorf("resolve mapped port: %w", err)
	}

	params := adapter.ConnectionParams{
		URI: m.spec.BuildURI(host, mappedPort.Port()),
	}

	if err := m.pollReady(ctx, params); err != nil {
		_ = c.Terminate(ctx)
		m.container = nil
		m.id = ""
		return adapter.ConnectionParams{}, err
	}

	return params, nil
}

// pollReady retries the spec's probe up to readinessAttempts times, sleeping
// readinessInterval between attempts.
func (m *Manager) pollReady(ctx context.Context, params adapter.ConnectionParams) error {
	if m.spec.Probe == nil {
		return nil
	}
	var lastErr error
	for attempt := 0; attempt < readinessAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(readinessInterval):
			}
		}
		if err := m.spec.Probe(ctx, params); err == nil {
			return nil
		} else {
			lastErr = err
		}
	}
	return fmt.Errorf("container did not become ready after %d attempts: %w", readinessAttempts, lastErr)
}

// Stop terminates the container. Idempotent.
func (m *Manager) Stop(ctx context.Context) error {
	if m.container == nil {
		return nil
	}
	err := m.container.Terminate(ctx)
	m.container = nil
	m.id = ""
	return err
}

// ContainerID implements adapter.ContainerManager.
func (m *Manager) ContainerID() string {
	return m.id
}
