package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthwise/wealthwise/pkg/extract"
	"github.com/wealthwise/wealthwise/pkg/mapping"
	"github.com/wealthwise/wealthwise/pkg/models"
	"github.com/wealthwise/wealthwise/pkg/normalize"
)

func tx(day int, desc string, amount string, typ models.TransactionType, category string) models.Transaction {
	amt, err := decimal.NewFromString(amount)
	if err != nil {
		panic(err)
	}
	return models.Transaction{
		Date:        time.Date(2025, time.March, day, 0, 0, 0, 0, time.UTC),
		Description: desc,
		Amount:      amt,
		Type:        typ,
		Category:    category,
	}
}

func TestWriteCSVQuoting(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []models.Transaction{
		tx(1, `She said "hi", then left`, "12.50", models.TypeExpense, ""),
	}, nil)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "date,description,amount,type,category", lines[0])
	// Amounts render in decimal's minimal form: trailing zeros dropped.
	assert.Equal(t, `2025-03-01,"She said ""hi"", then left",12.5,expense,`, lines[1])
}

func TestWriteCSVFilter(t *testing.T) {
	var buf bytes.Buffer
	transactions := []models.Transaction{
		tx(1, "KEEP", "10", models.TypeIncome, ""),
		tx(2, "DROP", "20", models.TypeExpense, ""),
	}
	onlyIncome := func(tx models.Transaction) bool { return tx.Type == models.TypeIncome }

	require.NoError(t, WriteCSV(&buf, transactions, onlyIncome))
	assert.Contains(t, buf.String(), "KEEP")
	assert.NotContains(t, buf.String(), "DROP")
}

// Exporting and re-importing through the full pipeline must reproduce
// the same transactions, including ones with quoted descriptions.
func TestCSVRoundTrip(t *testing.T) {
	original := []models.Transaction{
		tx(5, "SALARY MARCH", "55000", models.TypeIncome, "salary"),
		tx(6, `UPI, "GROCERY MART"`, "450.5", models.TypeExpense, ""),
		tx(7, "NEFT SELF", "10000", models.TypeTransfer, "savings"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, original, nil))

	table, err := extract.ExtractCSV(buf.Bytes())
	require.NoError(t, err)

	proposed := mapping.Propose(table)
	require.NoError(t, mapping.Validate(proposed))

	result := normalize.Normalize(table, proposed)
	require.Len(t, result.Transactions, len(original))
	assert.Zero(t, result.Rejected)

	for i, got := range result.Transactions {
		want := original[i]
		assert.True(t, got.Date.Equal(want.Date), "row %d date", i)
		assert.Equal(t, want.Description, got.Description, "row %d description", i)
		assert.True(t, got.Amount.Equal(want.Amount), "row %d amount", i)
		assert.Equal(t, want.Type, got.Type, "row %d type", i)
		assert.Equal(t, want.Category, got.Category, "row %d category", i)
	}
}
