/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/dynabench"
	"github.com/suparena/dynabench/config"
)

// Factory builds an uninitialized driver from a benchmark configuration.
type Factory func(cfg *config.Config) (dynabench.Driver, error)

var (
	driverRegistry = make(map[string]Factory)
	mu             sync.RWMutex
)

// Register associates a driver name with its factory. Driver packages call
// this from init. If a factory is already registered under the name, it
// panics to prevent accidental overrides.
func Register(name string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := driverRegistry[name]; exists {
		panic(fmt.Sprintf("driver registry: driver %q already registered", name))
	}
	driverRegistry[name] = f
}

// New builds a driver by registered name. The returned driver still needs
// Init before it can serve data-path calls.
func New(name string, cfg *config.Config) (dynabench.Driver, error) {
	mu.RLock()
	f, ok := driverRegistry[name]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("driver registry: no driver registered with name %q", name)
	}
	return f(cfg)
}

// Drivers returns the sorted names of all registered drivers.
func Drivers() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(driverRegistry))
	for name := range driverRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
