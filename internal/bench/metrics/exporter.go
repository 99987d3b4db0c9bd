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

package metrics

import (
	"context"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Exporter optionally serves live run telemetry on a Prometheus /metrics
// endpoint while a workload is in flight. It is strictly observational: it
// never touches the measured append/read path, matching the harness's
// no-backpressure rule. Safe to use with a nil *Exporter (all methods no-op).
type Exporter struct {
	reg           *prometheus.Registry
	eventsWritten prometheus.Counter
	eventsRead    prometheus.Counter
	opFailures    prometheus.Counter
	cpuPercent    prometheus.Gauge
	memoryBytes   prometheus.Gauge

	srv *http.Server
}

// NewExporter builds an Exporter with its own registry, so enabling it never
// collides with metrics registered elsewhere in the process.
func NewExporter() *Exporter {
	e := &Exporter{
		reg: prometheus.NewRegistry(),
		eventsWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "esbs_events_written_total",
			Help: "Events successfully appended so far in the current run.",
		}),
		eventsRead: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "esbs_events_read_total",
			Help: "Successful read calls so far in the current run (one per call, regardless of how many events it returned).",
		}),
		opFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "esbs_operation_failures_total",
			Help: "Append/read operations that returned an error.",
		}),
		cpuPercent: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esbs_container_cpu_percent",
			Help: "Most recent container CPU percent sample.",
		}),
		memoryBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "esbs_container_memory_bytes",
			Help: "Most recent container memory sample, in bytes.",
		}),
	}
	e.reg.MustRegister(e.eventsWritten, e.eventsRead, e.opFailures, e.cpuPercent, e.memoryBytes)
	return e
}

// Serve starts the /metrics HTTP server on addr in the background. It
// returns once the listener is bound; call Shutdown to stop it.
func (e *Exporter) Serve(addr string) error {
	if e == nil {
		return nil
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(e.reg, promhttp.HandlerOpts{}))
	e.srv = &http.Server{Addr: addr, Handler: mux}
	go func() { _ = e.srv.Serve(ln) }()
	return nil
}

// Shutdown stops the metrics HTTP server, if one was started.
func (e *Exporter) Shutdown(ctx context.Context) error {
	if e == nil || e.srv == nil {
		return nil
	}
	return e.srv.Shutdown(ctx)
}

// ObserveOp records the outcome of one append/read for the live counters.
func (e *Exporter) ObserveOp(op string, ok bool) {
	if e == nil {
		return
	}
	if !ok {
		e.opFailures.Inc()
		return
	}
	switch op {
	case "append":
		e.eventsWritten.Inc()
	case "read":
		e.eventsRead.Inc()
	}
}

// ObserveContainerSample updates the live CPU/memory gauges from one
// out-of-band stats sample.
func (e *Exporter) ObserveContainerSample(cpuPercent float64, memoryBytes uint64) {
	if e == nil {
		return
	}
	e.cpuPercent.Set(cpuPercent)
	e.memoryBytes.Set(float64(memoryBytes))
}
