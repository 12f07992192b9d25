// Package normalize applies a confirmed column mapping to an extracted
// table and produces typed transactions. It is a pure transform: no
// I/O, no store access, and rejection is the only per-row failure mode.
package normalize

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise/pkg/mapping"
	"github.com/wealthwise/wealthwise/pkg/models"
	"github.com/wealthwise/wealthwise/pkg/parseutil"
)

// Result carries the accepted transactions plus the reject count so
// callers can report "X imported, Y skipped".
type Result struct {
	Transactions []models.Transaction
	Rejected     int
	Total        int
}

// Normalize converts every row of the table through the mapping.
// Rows without a parseable date, a description, or a positive amount
// are dropped silently and counted. When multiple columns map to the
// same non-skip field, the last one wins.
func Normalize(table *models.GenericTable, mappings []models.ColumnMapping) *Result {
	splitAmounts := mapping.UsesSplitAmounts(mappings)

	result := &Result{Total: len(table.Rows)}
	for _, row := range table.Rows {
		tx, ok := normalizeRow(row, mappings, splitAmounts)
		if !ok {
			result.Rejected++
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}
	return result
}

// record is the working form of one row after mapping application.
type record map[models.TargetField]string

func buildRecord(row map[string]string, mappings []models.ColumnMapping) record {
	rec := make(record)
	for _, m := range mappings {
		if m.TargetField == models.FieldSkip {
			continue
		}
		value := row[m.SourceColumn]
		if remapped, ok := m.ValueMapping[strings.ToLower(strings.TrimSpace(value))]; ok {
			value = remapped
		}
		rec[m.TargetField] = value
	}
	return rec
}

func normalizeRow(row map[string]string, mappings []models.ColumnMapping, splitAmounts bool) (models.Transaction, bool) {
	rec := buildRecord(row, mappings)

	date, err := parseutil.ParseDate(rec[models.FieldDate])
	if err != nil {
		return models.Transaction{}, false
	}

	description := strings.TrimSpace(rec[models.FieldDescription])
	if description == "" {
		return models.Transaction{}, false
	}

	var amount decimal.Decimal
	var txType models.TransactionType
	if splitAmounts {
		debit := parseutil.ParseAmountOrZero(rec[models.FieldAmountDebit])
		credit := parseutil.ParseAmountOrZero(rec[models.FieldAmountCredit])
		switch {
		case debit.IsPositive():
			amount, txType = debit, models.TypeExpense
		case credit.IsPositive():
			amount, txType = credit, models.TypeIncome
		default:
			return models.Transaction{}, false // no amount on either side
		}
	} else {
		parsed, err := parseutil.ParseAmount(rec[models.FieldAmount])
		if err != nil {
			return models.Transaction{}, false
		}
		amount = parsed.Abs()

		txType = models.TypeExpense
		if t, ok := models.ParseTransactionType(strings.ToLower(strings.TrimSpace(rec[models.FieldType]))); ok {
			txType = t
		}
	}

	if !amount.IsPositive() {
		return models.Transaction{}, false
	}

	return models.Transaction{
		Date:        date,
		Description: description,
		Amount:      amount,
		Type:        txType,
		Category:    strings.TrimSpace(rec[models.FieldCategory]),
	}, true
}
