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

// Command esbs is the Event Store Benchmark Suite CLI: it drives a
// workload against one adapter and writes its result artifacts to disk.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"eventbench/internal/bench/adapter"
	"eventbench/internal/bench/adapter/axonserver"
	"eventbench/internal/bench/adapter/dummy"
	"eventbench/internal/bench/adapter/eventsourcingdb"
	"eventbench/internal/bench/adapter/kurrentdb"
	"eventbench/internal/bench/adapter/umadb"
	"eventbench/internal/bench/metrics"
	"eventbench/internal/bench/result"
	"eventbench/internal/bench/runner"
	"eventbench/internal/bench/workflow"
	"eventbench/internal/bench/workload"
)

func adapterRegistry() *adapter.Registry {
	return adapter.NewRegistry(
		dummy.Factory{},
		umadb.NewFactory(),
		kurrentdb.NewFactory(),
		axonserver.NewFactory(),
		eventsourcingdb.NewFactory(),
	)
}

func workflowRegistry(wl workload.Workload) *workflow.Registry {
	return workflow.NewRegistry(
		workflow.ConcurrentWritersFactory{Workload: wl},
		workflow.ConcurrentReadersFactory{Workload: wl},
	)
}

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "run":
		err = runCommand(os.Args[2:])
	case "list-stores":
		err = listStoresCommand()
	case "list-workflows":
		err = listWorkflowsCommand()
	case "list-workloads":
		err = listWorkloadsCommand(os.Args[2:])
	case "-h", "--help", "help":
		usage()
		return
	default:
		usage()
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: esbs <run|list-stores|list-workflows|list-workloads> [flags]")
}

// keyValueList accumulates repeated --option K=V flags.
type keyValueList map[string]string

func (m keyValueList) String() string {
	parts := make([]string, 0, len(m))
	for k, v := range m {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

func (m keyValueList) Set(s string) error {
	idx := strings.IndexByte(s, '=')
	if idx < 0 {
		return fmt.Errorf("invalid option %q: want KEY=VALUE", s)
	}
	m[s[:idx]] = s[idx+1:]
	return nil
}

func runCommand(args []string) error {
	fs := flag.NewFlagSet("run", flag.ExitOnError)
	store := fs.String("store", "", "store adapter name (required)")
	workflowName := fs.String("workflow", "", "workflow strategy name (required)")
	workloadPath := fs.String("workload", "", "path to workload YAML (required)")
	output := fs.String("output", "results/raw", "output directory base")
	uri := fs.String("uri", "", "connection URI (defaults per adapter)")
	seed := fs.Uint64("seed", 42, "random seed")
	logLevel := fs.String("log", "info", "log level")
	metricsAddr := fs.String("metrics-addr", "", "if set, serve live Prometheus telemetry on this address while the run is in flight")
	options := make(keyValueList)
	fs.Var(options, "option", "K=V connection option (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *store == "" || *workflowName == "" || *workloadPath == "" {
		return fmt.Errorf("run requires --store, --workflow and --workload")
	}

	log.SetFlags(0)
	log.SetPrefix(fmt.Sprintf("[esbs %s] ", *logLevel))

	wl, err := workload.Load(*workloadPath)
	if err != nil {
		return err
	}

	factory, err := adapterRegistry().Lookup(strings.ToLower(*store))
	if err != nil {
		return err
	}
	wfFactory, err := workflowRegistry(wl).Lookup(*workflowName)
	if err != nil {
		return err
	}

	connURI := *uri
	if connURI == "" {
		connURI = adapter.DefaultURI(strings.ToLower(*store))
	}

	var exporter *metrics.Exporter
	if *metricsAddr != "" {
		exporter = metrics.NewExporter()
		if err := exporter.Serve(*metricsAddr); err != nil {
			return fmt.Errorf("start metrics exporter: %w", err)
		}
		defer exporter.Shutdown(context.Background())
		log.Printf("live telemetry on http://%s/metrics", *metricsAddr)
	}

	ctx := context.Background()
	outcome, err := runner.Run(ctx, runner.Options{
		Workload:        wl,
		AdapterFactory:  factory,
		WorkflowFactory: wfFactory,
		ConnParams:      adapter.ConnectionParams{URI: connURI, Options: options},
		Seed:            *seed,
		Observer:        exporter,
	})
	if err != nil {
		return fmt.Errorf("run failed: %w", err)
	}

	if err := result.Write(*output, *workloadPath, outcome.Summary, outcome.Samples); err != nil {
		return fmt.Errorf("write results: %w", err)
	}

	dir := result.Dir(*output, *workloadPath, outcome.Summary.Adapter, outcome.Summary.Writers, outcome.Summary.Readers)
	fmt.Printf("wrote results to %s\n", dir)
	return nil
}

func listStoresCommand() error {
	for _, name := range adapterRegistry().Names() {
		fmt.Println(name)
	}
	return nil
}

func listWorkflowsCommand() error {
	for _, name := range workflowRegistry(workload.Workload{}).Names() {
		fmt.Println(name)
	}
	return nil
}

func listWorkloadsCommand(args []string) error {
	fs := flag.NewFlagSet("list-workloads", flag.ExitOnError)
	path := fs.String("path", "workloads", "directory to scan for workload YAML files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	entries, err := os.ReadDir(*path)
	if err != nil {
		return fmt.Errorf("read %s: %w", *path, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if ext := filepath.Ext(e.Name()); ext == ".yaml" || ext == ".yml" {
			fmt.Println(filepath.Join(*path, e.Name()))
		}
	}
	return nil
}
