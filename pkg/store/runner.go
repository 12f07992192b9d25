package store

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/wealthwise/wealthwise/pkg/models"
)

// Result is the aggregate outcome of one import batch.
type Result struct {
	Created int
	Failed  int
}

// Runner writes normalized transactions into a Store one row at a
// time. Writes are deliberately sequential: per-row failures stay
// attributable and the store never sees concurrent writes from a
// single import.
type Runner struct {
	store  Store
	logger *log.Logger
}

func NewRunner(store Store, logger *log.Logger) *Runner {
	return &Runner{store: store, logger: logger}
}

// Import creates each transaction under accountID. A failed create is
// counted and logged; it never aborts the rest of the batch.
func (r *Runner) Import(ctx context.Context, accountID string, transactions []models.Transaction) Result {
	var result Result
	for _, tx := range transactions {
		rec := Record{
			AccountID:   accountID,
			Transaction: tx,
			IsRecurring: false,
			Tags:        []string{},
		}
		if err := r.store.CreateTransaction(ctx, rec); err != nil {
			r.logger.Warn("transaction create failed",
				"account_id", accountID,
				"date", tx.Date.Format("2006-01-02"),
				"description", tx.Description,
				"error", err)
			result.Failed++
			continue
		}
		result.Created++
	}
	return result
}
