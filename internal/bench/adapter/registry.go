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
	"fmt"
	"sort"
)

// Registry is a small, build-time-known set of adapter factories keyed by
// name. The adapter set is open but small — a registry keyed by name is
// preferred over a plugin-loading mechanism.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry builds a Registry from a list of factories.
func NewRegistry(factories ...Factory) *Registry {
	r := &Registry{factories: make(map[string]Factory, len(factories))}
	for _, f := range factories {
		r.factories[f.Name()] = f
	}
	return r
}

// Lookup returns the named factory, or an error if it is not registered.
func (r *Registry) Lookup(name string) (Factory, error) {
	f, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("unknown adapter: %s", name)
	}
	return f, nil
}

// Names returns all registered adapter names, sorted for stable CLI output.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for n := range r.factories {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// DefaultURI returns the documented default connection URI for a store name,
// or "" when the adapter has no documented default.
func DefaultURI(name string) string {
	switch name {
	case "umadb":
		return "http://localhost:50051"
	case "kurrentdb":
		return "esdb://localhost:2113?tls=false"
	case "axonserver":
		return "http://localhost:8124"
	case "eventsourcingdb":
		return "http://localhost:4000"
	default:
		return ""
	}
}
