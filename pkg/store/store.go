// Package store defines the transaction store contract the import
// pipeline hands its output to, plus an in-memory implementation used
// by the CLI and tests. Persistence, identity assignment and balance
// recalculation are the store's problem, not the pipeline's.
package store

import (
	"context"
	"sync"

	"github.com/wealthwise/wealthwise/pkg/models"
)

// Record is the create payload for one transaction.
type Record struct {
	AccountID   string
	Transaction models.Transaction
	IsRecurring bool
	Tags        []string
}

// Store accepts normalized transactions.
type Store interface {
	CreateTransaction(ctx context.Context, rec Record) error
}

// Memory is a Store that keeps records in memory.
type Memory struct {
	mu      sync.Mutex
	records []Record
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) CreateTransaction(_ context.Context, rec Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	return nil
}

// Records returns a copy of everything created so far.
func (m *Memory) Records() []Record {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}
