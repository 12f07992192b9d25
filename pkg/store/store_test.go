package store

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthwise/wealthwise/pkg/models"
)

// flakyStore fails every create whose description is "FAIL".
type flakyStore struct {
	created []Record
}

func (s *flakyStore) CreateTransaction(_ context.Context, rec Record) error {
	if rec.Transaction.Description == "FAIL" {
		return errors.New("boom")
	}
	s.created = append(s.created, rec)
	return nil
}

func testTx(desc string) models.Transaction {
	return models.Transaction{
		Date:        time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      decimal.NewFromInt(10),
		Type:        models.TypeExpense,
	}
}

func TestRunnerFailureIsolation(t *testing.T) {
	flaky := &flakyStore{}
	runner := NewRunner(flaky, log.New(io.Discard))

	result := runner.Import(context.Background(), "acct-1", []models.Transaction{
		testTx("ok one"),
		testTx("FAIL"),
		testTx("ok two"),
	})

	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Failed)

	// The failure must not stop later rows from being written.
	require.Len(t, flaky.created, 2)
	assert.Equal(t, "ok two", flaky.created[1].Transaction.Description)
	assert.Equal(t, "acct-1", flaky.created[0].AccountID)
}

func TestRunnerEmptyBatch(t *testing.T) {
	runner := NewRunner(NewMemory(), log.New(io.Discard))
	result := runner.Import(context.Background(), "acct-1", nil)
	assert.Zero(t, result.Created)
	assert.Zero(t, result.Failed)
}

func TestMemoryRecordsReturnsCopy(t *testing.T) {
	mem := NewMemory()
	require.NoError(t, mem.CreateTransaction(context.Background(), Record{AccountID: "a"}))

	records := mem.Records()
	require.Len(t, records, 1)
	records[0].AccountID = "mutated"

	assert.Equal(t, "a", mem.Records()[0].AccountID)
}
