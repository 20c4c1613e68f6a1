// Package idgen provides ID generation utilities
package idgen

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync/atomic"
	"time"
)

// Generator generates unique identifiers
type Generator interface {
	Generate() string
}

// TimestampGenerator produces monotonic-time based IDs with a random
// tiebreak: <unix-nanos>_<hex>. Two IDs generated in the same nanosecond
// still differ by their random suffix.
type TimestampGenerator struct {
	prefix string
}

// NewTimestamp creates a timestamp generator. An empty prefix yields bare IDs.
func NewTimestamp(prefix string) *TimestampGenerator {
	return &TimestampGenerator{prefix: prefix}
}

// Generate creates a new ID
func (g *TimestampGenerator) Generate() string {
	timestamp := time.Now().UnixNano()
	randomBytes := make([]byte, 4)
	_, err := rand.Read(randomBytes)
	if err != nil {
		// crypto/rand.Read only fails on a broken system
		panic(fmt.Sprintf("crypto/rand.Read failed: %v", err))
	}
	random := hex.EncodeToString(randomBytes)

	if g.prefix != "" {
		return fmt.Sprintf("%s_%d_%s", g.prefix, timestamp, random)
	}
	return fmt.Sprintf("%d_%s", timestamp, random)
}

// SequentialGenerator generates sequential IDs for testing
type SequentialGenerator struct {
	prefix  string
	counter uint64
}

// NewSequential creates a new sequential generator
func NewSequential(prefix string) *SequentialGenerator {
	return &SequentialGenerator{prefix: prefix}
}

// Generate creates a new sequential ID
func (g *SequentialGenerator) Generate() string {
	n := atomic.AddUint64(&g.counter, 1)
	if g.prefix != "" {
		return fmt.Sprintf("%s_%d", g.prefix, n)
	}
	return fmt.Sprintf("%d", n)
}
