/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package runner drives a registered driver with a concurrent operation mix
// and collects a run summary.
package runner

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/dynabench"
	"github.com/suparena/dynabench/datagen"
)

// Options configures a benchmark run.
type Options struct {
	// Workers is the number of concurrent workers issuing operations.
	Workers int

	// Ops is the total number of operations across all workers.
	Ops int

	// BulkSize is the number of keys per bulk operation. Zero disables
	// bulk operations and the run issues only single-key calls.
	BulkSize int

	// ReadRatio is the fraction of operations that are reads, in [0, 1].
	ReadRatio float64

	// KeyCount is the size of the key space operations draw from.
	KeyCount int
}

func (o *Options) normalize() {
	if o.Workers <= 0 {
		o.Workers = 4
	}
	if o.Ops <= 0 {
		o.Ops = 1000
	}
	if o.ReadRatio < 0 {
		o.ReadRatio = 0
	}
	if o.ReadRatio > 1 {
		o.ReadRatio = 1
	}
	if o.KeyCount <= 0 {
		o.KeyCount = 1000
	}
	if o.BulkSize < 0 {
		o.BulkSize = 0
	}
	if o.BulkSize > o.KeyCount {
		o.BulkSize = o.KeyCount
	}
}

type counters struct {
	reads      atomic.Int64
	writes     atomic.Int64
	bulkReads  atomic.Int64
	bulkWrites atomic.Int64
	failures   atomic.Int64
}

// Run initializes the driver, issues the configured operation mix from a
// pool of workers, shuts the driver down, and returns the run summary. The
// summary is returned even when operations failed; only an init failure
// aborts the run.
func Run(ctx context.Context, driver dynabench.Driver, gen datagen.Generator, opts Options) (*Summary, error) {
	opts.normalize()
	log := slog.Default().With("component", "runner")

	if err := driver.Init(ctx, gen); err != nil {
		return nil, fmt.Errorf("driver init: %w", err)
	}
	defer func() {
		if err := driver.Shutdown(context.WithoutCancel(ctx)); err != nil {
			log.Warn("driver shutdown failed", "error", err)
		}
	}()

	log.Info("starting run",
		"target", driver.ConnectionInfo(),
		"workers", opts.Workers,
		"ops", opts.Ops,
		"bulkSize", opts.BulkSize,
		"readRatio", opts.ReadRatio,
	)

	started := time.Now()
	var (
		c         counters
		remaining atomic.Int64
		wg        sync.WaitGroup
	)
	remaining.Store(int64(opts.Ops))

	for i := 0; i < opts.Workers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			w := worker{
				driver: driver,
				opts:   opts,
				rng:    rand.New(rand.NewSource(seed)),
				c:      &c,
			}
			for remaining.Add(-1) >= 0 {
				if ctx.Err() != nil {
					return
				}
				w.step(ctx)
			}
		}(started.UnixNano() + int64(i))
	}
	wg.Wait()
	finished := time.Now()

	s := newSummary(driver.ConnectionInfo(), opts, &c, started, finished)
	s.StartedAt = strfmt.DateTime(started.UTC())
	s.FinishedAt = strfmt.DateTime(finished.UTC())
	log.Info("run complete", "ops", s.TotalOps, "failures", s.Failures, "opsPerSec", s.OpsPerSecond)
	return s, nil
}

type worker struct {
	driver dynabench.Driver
	opts   Options
	rng    *rand.Rand
	c      *counters
}

// step issues one operation: a read or a write per ReadRatio, bulk or
// single-key per a coin flip when bulk operations are enabled.
func (w *worker) step(ctx context.Context) {
	read := w.rng.Float64() < w.opts.ReadRatio
	bulk := w.opts.BulkSize > 1 && w.rng.Intn(2) == 0

	var err error
	switch {
	case read && bulk:
		_, err = w.driver.ReadBulk(ctx, w.bulkKeys())
		w.c.bulkReads.Add(1)
	case read:
		_, err = w.driver.ReadSingle(ctx, w.key())
		w.c.reads.Add(1)
	case bulk:
		_, err = w.driver.WriteBulk(ctx, w.bulkKeys())
		w.c.bulkWrites.Add(1)
	default:
		_, err = w.driver.WriteSingle(ctx, w.key())
		w.c.writes.Add(1)
	}
	if err != nil {
		w.c.failures.Add(1)
	}
}

func (w *worker) key() string {
	return keyName(w.rng.Intn(w.opts.KeyCount))
}

// bulkKeys draws BulkSize consecutive keys from a random offset, wrapping
// around the key space. Consecutive draws keep the keys within one bulk
// unique, which the driver requires.
func (w *worker) bulkKeys() []string {
	start := w.rng.Intn(w.opts.KeyCount)
	keys := make([]string, w.opts.BulkSize)
	for i := range keys {
		keys[i] = keyName((start + i) % w.opts.KeyCount)
	}
	return keys
}

func keyName(i int) string {
	return fmt.Sprintf("key-%d", i)
}
