/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/dynabench"
	"github.com/suparena/dynabench/config"
	"github.com/suparena/dynabench/datagen"
)

type stubDriver struct{ table string }

func (d *stubDriver) Init(ctx context.Context, gen datagen.Generator) error     { return nil }
func (d *stubDriver) ReadSingle(ctx context.Context, key string) (*string, error) { return nil, nil }
func (d *stubDriver) WriteSingle(ctx context.Context, key string) (string, error) { return "", nil }
func (d *stubDriver) ReadBulk(ctx context.Context, keys []string) ([]string, error) {
	return nil, nil
}
func (d *stubDriver) WriteBulk(ctx context.Context, keys []string) ([]string, error) {
	return nil, nil
}
func (d *stubDriver) Shutdown(ctx context.Context) error { return nil }
func (d *stubDriver) ConnectionInfo() string             { return d.table }

func TestRegisterAndNew(t *testing.T) {
	Register("stub", func(cfg *config.Config) (dynabench.Driver, error) {
		return &stubDriver{table: cfg.TableName}, nil
	})

	cfg := config.Default()
	cfg.TableName = "stub-table"

	drv, err := New("stub", cfg)
	require.NoError(t, err)
	assert.Equal(t, "stub-table", drv.ConnectionInfo())
}

func TestNewUnknownDriver(t *testing.T) {
	_, err := New("no-such-driver", config.Default())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no driver registered")
}

func TestRegisterDuplicatePanics(t *testing.T) {
	factory := func(cfg *config.Config) (dynabench.Driver, error) { return &stubDriver{}, nil }

	Register("dup", factory)
	assert.Panics(t, func() { Register("dup", factory) })
}

func TestDriversSorted(t *testing.T) {
	factory := func(cfg *config.Config) (dynabench.Driver, error) { return &stubDriver{}, nil }
	Register("zeta", factory)
	Register("alpha", factory)

	names := Drivers()
	assert.True(t, sortedContains(names, "alpha"))
	assert.True(t, sortedContains(names, "zeta"))
	for i := 1; i < len(names); i++ {
		assert.LessOrEqual(t, names[i-1], names[i])
	}
}

func sortedContains(names []string, want string) bool {
	for _, n := range names {
		if n == want {
			return true
		}
	}
	return false
}
