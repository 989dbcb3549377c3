/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package runner

import (
	"io"
	"time"

	"github.com/go-openapi/strfmt"
	"gopkg.in/yaml.v3"
)

// Summary reports the outcome of a run.
type Summary struct {
	Target     string          `yaml:"target"`
	StartedAt  strfmt.DateTime `yaml:"startedAt"`
	FinishedAt strfmt.DateTime `yaml:"finishedAt"`
	DurationMs int64           `yaml:"durationMs"`

	Workers   int     `yaml:"workers"`
	BulkSize  int     `yaml:"bulkSize"`
	ReadRatio float64 `yaml:"readRatio"`
	KeyCount  int     `yaml:"keyCount"`

	Reads      int64 `yaml:"reads"`
	Writes     int64 `yaml:"writes"`
	BulkReads  int64 `yaml:"bulkReads"`
	BulkWrites int64 `yaml:"bulkWrites"`
	Failures   int64 `yaml:"failures"`
	TotalOps   int64 `yaml:"totalOps"`

	OpsPerSecond float64 `yaml:"opsPerSecond"`
}

func newSummary(target string, opts Options, c *counters, started, finished time.Time) *Summary {
	s := &Summary{
		Target:     target,
		DurationMs: finished.Sub(started).Milliseconds(),
		Workers:    opts.Workers,
		BulkSize:   opts.BulkSize,
		ReadRatio:  opts.ReadRatio,
		KeyCount:   opts.KeyCount,
		Reads:      c.reads.Load(),
		Writes:     c.writes.Load(),
		BulkReads:  c.bulkReads.Load(),
		BulkWrites: c.bulkWrites.Load(),
		Failures:   c.failures.Load(),
	}
	s.TotalOps = s.Reads + s.Writes + s.BulkReads + s.BulkWrites
	if d := finished.Sub(started).Seconds(); d > 0 {
		s.OpsPerSecond = float64(s.TotalOps) / d
	}
	return s
}

// WriteYAML renders the summary as YAML to w.
func (s *Summary) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(s)
}
