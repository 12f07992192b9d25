package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthwise/wealthwise/pkg/models"
)

var singleAmountMappings = []models.ColumnMapping{
	{SourceColumn: "Date", TargetField: models.FieldDate},
	{SourceColumn: "Narration", TargetField: models.FieldDescription},
	{SourceColumn: "Amount", TargetField: models.FieldAmount},
	{SourceColumn: "Type", TargetField: models.FieldType, ValueMapping: map[string]string{
		"cr": "income",
		"dr": "expense",
	}},
}

var splitAmountMappings = []models.ColumnMapping{
	{SourceColumn: "Date", TargetField: models.FieldDate},
	{SourceColumn: "Narration", TargetField: models.FieldDescription},
	{SourceColumn: "Withdrawal Amt", TargetField: models.FieldAmountDebit},
	{SourceColumn: "Deposit Amt", TargetField: models.FieldAmountCredit},
}

func TestNormalizeSingleAmountColumn(t *testing.T) {
	table := &models.GenericTable{
		Headers: []string{"Date", "Narration", "Amount", "Type"},
		Rows: []map[string]string{
			{"Date": "05/03/24", "Narration": "SALARY MARCH", "Amount": "55,000.00", "Type": "CR"},
			{"Date": "06/03/24", "Narration": "GROCERY", "Amount": "-450.00", "Type": "DR"},
			{"Date": "07/03/24", "Narration": "NO TYPE MARKER", "Amount": "100"},
		},
	}

	result := Normalize(table, singleAmountMappings)
	require.Len(t, result.Transactions, 3)
	assert.Zero(t, result.Rejected)
	assert.Equal(t, 3, result.Total)

	salary := result.Transactions[0]
	assert.Equal(t, "2024-03-05", salary.Date.Format("2006-01-02"))
	assert.Equal(t, "SALARY MARCH", salary.Description)
	assert.Equal(t, "55000", salary.Amount.String())
	assert.Equal(t, models.TypeIncome, salary.Type)

	// Negative amounts are stored unsigned, direction lives in Type.
	grocery := result.Transactions[1]
	assert.Equal(t, "450", grocery.Amount.String())
	assert.Equal(t, models.TypeExpense, grocery.Type)

	// Missing type marker defaults to expense.
	assert.Equal(t, models.TypeExpense, result.Transactions[2].Type)
}

func TestNormalizeSplitAmountColumns(t *testing.T) {
	table := &models.GenericTable{
		Headers: []string{"Date", "Narration", "Withdrawal Amt", "Deposit Amt"},
		Rows: []map[string]string{
			{"Date": "01/02/2024", "Narration": "ATM", "Withdrawal Amt": "500.00", "Deposit Amt": "0"},
			{"Date": "02/02/2024", "Narration": "SALARY", "Withdrawal Amt": "0", "Deposit Amt": "1,200.00"},
			{"Date": "03/02/2024", "Narration": "EMPTY ROW", "Withdrawal Amt": "0", "Deposit Amt": ""},
		},
	}

	result := Normalize(table, splitAmountMappings)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, 1, result.Rejected)

	assert.Equal(t, models.TypeExpense, result.Transactions[0].Type)
	assert.Equal(t, "500", result.Transactions[0].Amount.String())
	assert.Equal(t, models.TypeIncome, result.Transactions[1].Type)
	assert.Equal(t, "1200", result.Transactions[1].Amount.String())
}

func TestNormalizeRejectCounting(t *testing.T) {
	rows := []map[string]string{
		{"Date": "01/04/2024", "Narration": "OK ONE", "Amount": "10"},
		{"Date": "not a date", "Narration": "BAD DATE", "Amount": "10"},
		{"Date": "02/04/2024", "Narration": "", "Amount": "10"},
		{"Date": "03/04/2024", "Narration": "   ", "Amount": "10"},
		{"Date": "04/04/2024", "Narration": "ZERO AMOUNT", "Amount": "0"},
		{"Date": "05/04/2024", "Narration": "BAD AMOUNT", "Amount": "n/a"},
		{"Date": "06/04/2024", "Narration": "OK TWO", "Amount": "20"},
	}
	table := &models.GenericTable{Headers: []string{"Date", "Narration", "Amount"}, Rows: rows}

	result := Normalize(table, singleAmountMappings)
	assert.Len(t, result.Transactions, 2)
	assert.Equal(t, 5, result.Rejected)
	assert.Equal(t, 7, result.Total)
}

func TestNormalizeEmptyDescriptionsRejected(t *testing.T) {
	rows := make([]map[string]string, 0, 10)
	for i := 0; i < 10; i++ {
		desc := "ROW OK"
		if i == 2 || i == 5 || i == 8 {
			desc = ""
		}
		rows = append(rows, map[string]string{
			"Date": "01/04/2024", "Narration": desc, "Amount": "10",
		})
	}
	table := &models.GenericTable{Headers: []string{"Date", "Narration", "Amount"}, Rows: rows}

	result := Normalize(table, singleAmountMappings)
	assert.Len(t, result.Transactions, 7)
	assert.Equal(t, 3, result.Rejected)
	assert.Equal(t, 10, result.Total)
}

func TestNormalizeValueRemapping(t *testing.T) {
	mappings := []models.ColumnMapping{
		{SourceColumn: "Date", TargetField: models.FieldDate},
		{SourceColumn: "Narration", TargetField: models.FieldDescription},
		{SourceColumn: "Amount", TargetField: models.FieldAmount},
		{SourceColumn: "Ind", TargetField: models.FieldType, ValueMapping: map[string]string{
			"c": "income",
		}},
	}
	table := &models.GenericTable{
		Headers: []string{"Date", "Narration", "Amount", "Ind"},
		Rows: []map[string]string{
			{"Date": "01/05/2024", "Narration": "REMAPPED", "Amount": "5", "Ind": " C "},
			{"Date": "02/05/2024", "Narration": "UNMAPPED", "Amount": "5", "Ind": "X"},
		},
	}

	result := Normalize(table, mappings)
	require.Len(t, result.Transactions, 2)
	assert.Equal(t, models.TypeIncome, result.Transactions[0].Type)
	// A value outside the dictionary falls back to the expense default.
	assert.Equal(t, models.TypeExpense, result.Transactions[1].Type)
}

func TestNormalizeDuplicateTargetLastWins(t *testing.T) {
	mappings := []models.ColumnMapping{
		{SourceColumn: "Date", TargetField: models.FieldDate},
		{SourceColumn: "Narration", TargetField: models.FieldDescription},
		{SourceColumn: "Remarks", TargetField: models.FieldDescription},
		{SourceColumn: "Amount", TargetField: models.FieldAmount},
	}
	table := &models.GenericTable{
		Headers: []string{"Date", "Narration", "Remarks", "Amount"},
		Rows: []map[string]string{
			{"Date": "01/06/2024", "Narration": "FIRST", "Remarks": "SECOND", "Amount": "9"},
		},
	}

	result := Normalize(table, mappings)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "SECOND", result.Transactions[0].Description)
}

func TestNormalizeCategoryPassthrough(t *testing.T) {
	mappings := append(singleAmountMappings, models.ColumnMapping{
		SourceColumn: "Tag", TargetField: models.FieldCategory,
	})
	table := &models.GenericTable{
		Headers: []string{"Date", "Narration", "Amount", "Type", "Tag"},
		Rows: []map[string]string{
			{"Date": "01/07/2024", "Narration": "LUNCH", "Amount": "12", "Type": "DR", "Tag": " food "},
		},
	}

	result := Normalize(table, mappings)
	require.Len(t, result.Transactions, 1)
	assert.Equal(t, "food", result.Transactions[0].Category)
}
