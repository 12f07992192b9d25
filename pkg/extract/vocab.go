package extract

import (
	"regexp"
	"strings"
)

// headerKeywords is the vocabulary used to recognize the real header
// row of CSV and spreadsheet exports. Multi-word entries match as
// substrings, so "Withdrawal Amt." counts for both "withdrawal" and
// "withdrawal amt".
var headerKeywords = []string{
	"date", "description", "amount", "type", "category",
	"debit", "credit", "balance", "narration", "particulars",
	"withdrawal", "deposit", "value dt", "chq", "ref.no", "ref no",
	"withdrawal amt", "deposit amt", "closing balance",
}

// tableIndicators is the superset vocabulary used to find the start of
// the transaction table in PDF text.
var tableIndicators = append([]string{
	"txn date", "posting date",
}, headerKeywords...)

func countMatches(line string, vocabulary []string) int {
	line = strings.ToLower(line)
	count := 0
	for _, kw := range vocabulary {
		if strings.Contains(line, kw) {
			count++
		}
	}
	return count
}

// Cell-level keyword classes for the spreadsheet header heuristic.
var (
	dateLikeCell   = regexp.MustCompile(`date|dt|txn`)
	amountLikeCell = regexp.MustCompile(`amount|debit|credit|withdrawal|deposit|balance`)
	descLikeCell   = regexp.MustCompile(`description|narration|particulars|details|remark`)
)

// looksLikeHeaderRow applies the two spreadsheet header heuristics:
// enough vocabulary matches across the row, or at least three non-empty
// cells among which a date-like, an amount-like and a description-like
// cell all appear.
func looksLikeHeaderRow(cells []string) bool {
	joined := strings.ToLower(strings.Join(cells, " "))
	if countMatches(joined, headerKeywords) >= 3 {
		return true
	}

	nonEmpty := 0
	var hasDate, hasAmount, hasDesc bool
	for _, cell := range cells {
		cell = strings.ToLower(strings.TrimSpace(cell))
		if cell == "" {
			continue
		}
		nonEmpty++
		if dateLikeCell.MatchString(cell) {
			hasDate = true
		}
		if amountLikeCell.MatchString(cell) {
			hasAmount = true
		}
		if descLikeCell.MatchString(cell) {
			hasDesc = true
		}
	}
	return nonEmpty >= 3 && hasDate && hasAmount && hasDesc
}

func countNonEmpty(cells []string) int {
	n := 0
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			n++
		}
	}
	return n
}
