package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDs returns run ids "test-run-0001", "test-run-0002", ...
//
// It stands in for the UUIDv7 generator so history rows and JSON reports
// are deterministic.
//
// Thread-safety: SequentialIDs is safe for concurrent use via internal mutex.
type SequentialIDs struct {
	mu sync.Mutex
	n  int
}

// NewSequentialIDs creates a generator whose first id is test-run-0001.
func NewSequentialIDs() *SequentialIDs {
	return &SequentialIDs{}
}

// Generate returns the next id.
func (g *SequentialIDs) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("test-run-%04d", g.n)
}
