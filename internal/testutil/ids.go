package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator hands out deterministic, UUID-shaped run IDs:
// 00000000-0000-7000-8000-000000000001, ...002 and so on.
//
// This enables golden comparison of stored runs. IDs sort in issue order,
// matching the time ordering UUIDv7 gives in production.
//
// Thread-safety: all methods are safe for concurrent use.
type SequentialIDGenerator struct {
	mu  sync.Mutex
	seq int64
}

// NewSequentialIDGenerator creates a generator whose first ID ends in 1.
func NewSequentialIDGenerator() *SequentialIDGenerator {
	return &SequentialIDGenerator{}
}

// Generate returns the next ID.
//
// Implements store.IDGenerator.
func (g *SequentialIDGenerator) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq++
	return fmt.Sprintf("00000000-0000-7000-8000-%012d", g.seq)
}

// Reset restarts the sequence. After Reset the next ID ends in 1 again.
func (g *SequentialIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.seq = 0
}
