/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package datagen defines the data generator contract used to produce the
// random value payload written alongside each benchmark key.
package datagen

import (
	"strings"

	"github.com/google/uuid"
)

// DefaultValueSize is the payload size used when none is configured.
const DefaultValueSize = 128

// Generator produces the value payload for a write. Implementations must be
// safe for concurrent use: the driver calls RandomValue from many workers.
type Generator interface {
	RandomValue() string
}

// RandomGenerator produces fixed-size random string payloads built from
// UUID blocks. uuid.NewString is safe for concurrent use, so the generator
// carries no state of its own.
type RandomGenerator struct {
	size int
}

// NewRandomGenerator creates a generator emitting payloads of the given
// size. Sizes below 1 fall back to DefaultValueSize.
func NewRandomGenerator(size int) *RandomGenerator {
	if size < 1 {
		size = DefaultValueSize
	}
	return &RandomGenerator{size: size}
}

// RandomValue returns a fresh random payload of the configured size.
func (g *RandomGenerator) RandomValue() string {
	var b strings.Builder
	b.Grow(g.size + 36)
	for b.Len() < g.size {
		b.WriteString(uuid.NewString())
	}
	return b.String()[:g.size]
}

// Static is a generator returning a fixed value, useful in tests where the
// written payload must be predictable.
type Static string

// RandomValue returns the fixed value.
func (s Static) RandomValue() string { return string(s) }
