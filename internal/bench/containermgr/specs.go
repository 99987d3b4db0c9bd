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

package containermgr

import (
	"context"
	"fmt"

	"github.com/testcontainers/testcontainers-go/wait"

	"eventbench/internal/bench/adapter"
)

// UmaDBSpec brings up the UmaDB gRPC store.
func UmaDBSpec(probe Probe) Spec {
	return Spec{
		Image:       "umadb/umadb:latest",
		ExposedPort: "50051/tcp",
		BuildURI: func(host, port string) string {
			return fmt.Sprintf("%s:%s", host, port)
		},
		Probe: probe,
	}
}

// KurrentDBSpec brings up KurrentDB in insecure mode, matching the options
// the harness needs for local benchmarking.
func KurrentDBSpec(probe Probe) Spec {
	return Spec{
		Image:       "docker.kurrent.io/kurrent-latest/kurrentdb:25.1.0-x64-8.0-bookworm-slim",
		ExposedPort: "2113/tcp",
		Env: map[string]string{
			"KURRENTDB_INSECURE":                  "true",
			"KURRENTDB_RUN_PROJECTIONS":           "All",
			"KURRENTDB_ENABLE_ATOM_PUB_OVER_HTTP": "true",
		},
		BuildURI: func(host, port string) string {
			return fmt.Sprintf("esdb://%s:%s?tls=false", host, port)
		},
		Probe: probe,
	}
}

// AxonServerSpec brings up a standalone Axon Server instance.
func AxonServerSpec(probe Probe) Spec {
	return Spec{
		Image:       "axoniq/axonserver:latest",
		ExposedPort: "8124/tcp",
		Env: map[string]string{
			"AXONIQ_AXONSERVER_NAME":            "bench-axon-server",
			"AXONIQ_AXONSERVER_HOSTNAME":        "bench-axon-server",
			"AXONIQ_AXONSERVER_STANDALONE_DCB": "true",
		},
		WaitStrategy: wait.ForLog("Started AxonServer"),
		BuildURI: func(host, port string) string {
			return fmt.Sprintf("%s:%s", host, port)
		},
		Probe: probe,
	}
}

// EventSourcingDBAPIToken is the fixed API token the container is started
// with; adapters read it back out to authenticate requests.
const EventSourcingDBAPIToken = "secret"

// EventSourcingDBSpec brings up EventSourcingDB with an ephemeral data
// directory and HTTPS disabled, suitable for a throwaway benchmark run.
func EventSourcingDBSpec(probe Probe) Spec {
	return Spec{
		Image:       "thenativeweb/eventsourcingdb:1.2.0",
		ExposedPort: "3000/tcp",
		Cmd:         []string{"run", "--data-directory-temporary", "--https-enabled=false", "--http-enabled", "--api-token", EventSourcingDBAPIToken},
		BuildURI: func(host, port string) string {
			return fmt.Sprintf("http://%s:%s", host, port)
		},
		Probe: probe,
	}
}

// PingProbe adapts any adapter.EventStoreAdapter's Connect+Ping pair into a
// Probe, for stores whose readiness is best judged by a real client round
// trip rather than a raw TCP/log check.
func PingProbe(factory func() adapter.EventStoreAdapter) Probe {
	return func(ctx context.Context, params adapter.ConnectionParams) error {
		client := factory()
		defer client.Close()
		if err := client.Connect(ctx, params); err != nil {
			return err
		}
		_, err := client.Ping(ctx)
		return err
	}
}
