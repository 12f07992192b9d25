package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wealthwise/wealthwise/pkg/models"
)

const statementText = `HDFC BANK LIMITED
Statement of Account
Account Number: XXXXXX1234
Customer ID: 987654
Statement Period: 01/09/2025 to 30/09/2025
Date Narration Chq/Ref No Withdrawal Amt Deposit Amt Closing Balance
Opening Balance 275196.50
22/09/2025 WMS/MF/H-HNNIRG-M02337361/002509220 100 0 275296.5
23/09/2025 UPI-GROCERY MART-PAYMENT 450.00 0 274846.50
24/09/2025 NEFT-ACME CORP-SALARY 0 55,000.00 329846.50
Page 1 of 1
Total Debits: 550.00
Terms and Conditions apply`

func TestTableFromStatementText_EndToEnd(t *testing.T) {
	table, err := tableFromStatementText(strings.Split(statementText, "\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Description", "Amount", "Type"}, table.Headers)
	require.Len(t, table.Rows, 3)

	first := table.Rows[0]
	assert.Equal(t, "2025-09-22", first["Date"])
	assert.Equal(t, "WMS/MF/H-HNNIRG-M02337361/002509220", first["Description"])
	assert.Equal(t, "100", first["Amount"])
	assert.Equal(t, "expense", first["Type"])

	assert.Equal(t, "450.00", table.Rows[1]["Amount"])
	assert.Equal(t, "transfer", table.Rows[1]["Type"]) // UPI keyword

	// Credit rows in withdrawal/deposit layouts surface the zero
	// withdrawal as their first amount token; the normalizer rejects
	// them later. The extractor's job is only date+amount recovery.
	assert.Equal(t, "0", table.Rows[2]["Amount"])
	assert.Equal(t, "transfer", table.Rows[2]["Type"]) // NEFT keyword
}

func TestTableFromStatementText_NoTable(t *testing.T) {
	lines := []string{"Dear customer,", "thank you for banking with us.", "Regards"}
	_, err := tableFromStatementText(lines)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestTableFromStatementText_NoTransactions(t *testing.T) {
	lines := []string{
		"Date Narration Withdrawal Amt Deposit Amt",
		"no transactions in this period",
	}
	_, err := tableFromStatementText(lines)
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Contains(t, err.Error(), "no transactions")
}

func TestTransactionFromLine_RequiresDateAndAmount(t *testing.T) {
	_, ok := transactionFromLine("no date or amount here")
	assert.False(t, ok)

	_, ok = transactionFromLine("22/09/2025 description without an amount")
	assert.False(t, ok)

	_, ok = transactionFromLine("amount 100 without a date")
	assert.False(t, ok)
}

func TestTransactionFromLine_ThousandsCommas(t *testing.T) {
	row, ok := transactionFromLine("01/01/2025 RENT PAYMENT 1,25,000 seems wrong but 12,500.00 is fine")
	require.True(t, ok)
	// "1,25,000" is not a valid thousands grouping; the first
	// well-formed amount wins.
	assert.Equal(t, "12500.00", row["Amount"])
}

func TestInferLineType_Priority(t *testing.T) {
	// Transfer keywords beat income keywords.
	assert.Equal(t, models.TypeTransfer, inferLineType("NEFT SALARY CREDIT", "NEFT SALARY CREDIT 100"))
	assert.Equal(t, models.TypeIncome, inferLineType("SALARY CREDIT", "SALARY CREDIT 100"))
	assert.Equal(t, models.TypeExpense, inferLineType("ATM WITHDRAWAL", "ATM WITHDRAWAL 100"))
	assert.Equal(t, models.TypeExpense, inferLineType("MISC", "MISC 100"))
}

func TestInferLineType_ShortTokensMatchWholeWordsOnly(t *testing.T) {
	// "cr" inside a reference number must not read as income.
	assert.Equal(t, models.TypeExpense, inferLineType("REF-CR123456", "REF-CR123456 100"))
	assert.Equal(t, models.TypeIncome, inferLineType("REVERSAL CR", "REVERSAL CR 100"))
}

func TestShouldSkipLine(t *testing.T) {
	skipped := []string{
		"Page 3 of 12",
		"Statement Period: 01/09/2025 to 30/09/2025",
		"Opening Balance 1,000.00",
		"Total Debits: 550.00",
		"Sr No Date Narration Amount",
	}
	for _, line := range skipped {
		assert.True(t, shouldSkipLine(line), "line %q", line)
	}

	assert.False(t, shouldSkipLine("22/09/2025 UPI-GROCERY 450.00"))
}
