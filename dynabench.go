/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dynabench

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/dynabench/datagen"
)

// Driver is the contract a benchmark client driver implements. Init must
// run before any data-path call, and Shutdown must run with no data-path
// calls in flight; between the two, all data-path methods are safe for
// concurrent use from many workers.
type Driver interface {
	// Init resolves credentials, builds the client handle and, when the
	// benchmark owns the table, creates it and waits until it is ready.
	Init(ctx context.Context, gen datagen.Generator) error

	// ReadSingle fetches one item, honoring the configured consistency
	// mode. It returns nil when the item does not exist.
	ReadSingle(ctx context.Context, key string) (*string, error)

	// WriteSingle writes one item with a freshly generated value and
	// returns a string rendering of the write outcome.
	WriteSingle(ctx context.Context, key string) (string, error)

	// ReadBulk issues a batched get for the given unique keys, draining
	// partial failures until every key has been served.
	ReadBulk(ctx context.Context, keys []string) ([]string, error)

	// WriteBulk issues a batched put for the given unique keys, draining
	// partial failures until every item has been accepted.
	WriteBulk(ctx context.Context, keys []string) ([]string, error)

	// Shutdown optionally deletes the owned table, then releases the
	// client handles.
	Shutdown(ctx context.Context) error

	// ConnectionInfo returns a human-readable summary of the connection
	// target. Diagnostic only.
	ConnectionInfo() string
}

// Manager is a thread-safe collection of live driver sessions, keyed by
// name. It exists so a harness can run several drivers side by side while
// keeping a single owner for their lifecycles.
type Manager struct {
	mu      sync.RWMutex
	drivers map[string]Driver
}

// NewManager creates an empty Manager.
func NewManager() *Manager {
	return &Manager{
		drivers: make(map[string]Driver),
	}
}

// Register adds a driver under the given key.
func (m *Manager) Register(key string, d Driver) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.drivers[key]; exists {
		return fmt.Errorf("driver with key %q already registered", key)
	}
	m.drivers[key] = d
	return nil
}

// Get retrieves a driver by key.
func (m *Manager) Get(key string) (Driver, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, exists := m.drivers[key]
	if !exists {
		return nil, fmt.Errorf("driver with key %q not found", key)
	}
	return d, nil
}

// Remove deletes a driver by key. The caller remains responsible for
// shutting the driver down.
func (m *Manager) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.drivers[key]; !exists {
		return fmt.Errorf("driver with key %q not found", key)
	}
	delete(m.drivers, key)
	return nil
}

// List returns all registered driver keys.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0, len(m.drivers))
	for k := range m.drivers {
		keys = append(keys, k)
	}
	return keys
}
