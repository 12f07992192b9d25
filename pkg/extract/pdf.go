package extract

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/wealthwise/wealthwise/pkg/detect"
	"github.com/wealthwise/wealthwise/pkg/models"
	"github.com/wealthwise/wealthwise/pkg/parseutil"
)

// pdfTableScanDepth is how many leading lines are searched for the
// start of the transaction table.
const pdfTableScanDepth = 50

// Synthetic headers for PDF-derived tables. PDF statements carry no
// machine-readable header, so the extractor emits pre-classified
// columns and the downstream mapping flow stays uniform.
var pdfHeaders = []string{"Date", "Description", "Amount", "Type"}

// ExtractPDF pulls the text layer out of a PDF statement and recovers
// transactions line by line. It never errors on narrative text between
// transactions; it errors only when no transaction at all can be
// recovered, which signals an unsupported statement layout.
func ExtractPDF(data []byte) (*models.GenericTable, error) {
	text, err := pdfText(data)
	if err != nil {
		return nil, &ParseError{Format: detect.FormatPDF, Reason: err.Error()}
	}
	return tableFromStatementText(splitLines(text))
}

// pdfText extracts all page text in order, concatenated into one blob.
// The pdf library panics on some malformed files, so the whole walk is
// guarded.
func pdfText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library failure: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	numPages := reader.NumPage()
	if numPages == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	var b strings.Builder
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				b.WriteString(line)
				b.WriteByte('\n')
			}
		}
	}
	return b.String(), nil
}

// Shapes that identify the header line of a statement table when the
// indicator vocabulary is inconclusive.
var tableShapes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)date.*(description|particulars|narration).*amount`),
	regexp.MustCompile(`(?i)date.*particulars.*debit.*credit`),
	regexp.MustCompile(`(?i)txn.*date.*narration`),
}

// Header/footer noise that must not be read as transactions.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^page\s+\d+(\s+of\s+\d+)?$`),
	regexp.MustCompile(`(?i)statement period`),
	regexp.MustCompile(`(?i)account number`),
	regexp.MustCompile(`(?i)customer id`),
	regexp.MustCompile(`(?i)(opening|closing) balance`),
	regexp.MustCompile(`(?i)total (credits|debits)`),
	regexp.MustCompile(`(?i)terms and conditions`),
	regexp.MustCompile(`(?i)^\s*(s\.?\s?no|sr\.?\s?no|sl\.?\s?no)\b`),
}

var (
	pdfDateToken = regexp.MustCompile(`\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`)
	// A standalone numeric field: digit groups with optional thousands
	// commas and up to two decimals.
	pdfAmountToken = regexp.MustCompile(`^\d{1,3}(,\d{3})*(\.\d{1,2})?$`)
)

// tableFromStatementText scans statement text lines for the transaction
// table and returns the recovered rows under synthetic headers.
func tableFromStatementText(lines []string) (*models.GenericTable, error) {
	start := -1
	limit := pdfTableScanDepth
	if limit > len(lines) {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		if countMatches(lines[i], tableIndicators) >= 2 || matchesAnyShape(lines[i]) {
			start = i
			break
		}
	}
	if start == -1 {
		return nil, &ParseError{Format: detect.FormatPDF, Reason: "no transaction table found"}
	}

	var rows []map[string]string
	for _, line := range lines[start+1:] {
		line = strings.TrimSpace(line)
		if line == "" || shouldSkipLine(line) {
			continue
		}

		row, ok := transactionFromLine(line)
		if !ok {
			continue // narrative text between transactions
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, &ParseError{Format: detect.FormatPDF, Reason: "no transactions recovered; statement layout not supported"}
	}

	return &models.GenericTable{Headers: pdfHeaders, Rows: rows}, nil
}

func matchesAnyShape(line string) bool {
	for _, shape := range tableShapes {
		if shape.MatchString(line) {
			return true
		}
	}
	return false
}

func shouldSkipLine(line string) bool {
	for _, pattern := range skipPatterns {
		if pattern.MatchString(line) {
			return true
		}
	}
	// Repeated header rows inside the table body.
	return countMatches(line, tableIndicators) >= 2
}

// transactionFromLine extracts date, description and amount from one
// candidate line. The date is the first date-shaped token; the amount
// is the first standalone amount-shaped field after it; the description
// is everything in between. Lines missing either are not transactions.
func transactionFromLine(line string) (map[string]string, bool) {
	loc := pdfDateToken.FindStringIndex(line)
	if loc == nil {
		return nil, false
	}

	date, err := parseutil.ParseDate(line[loc[0]:loc[1]])
	if err != nil {
		return nil, false
	}

	rest := strings.Fields(line[loc[1]:])
	amountIdx := -1
	for i, field := range rest {
		if pdfAmountToken.MatchString(field) {
			amountIdx = i
			break
		}
	}
	if amountIdx == -1 {
		return nil, false
	}

	description := strings.TrimSpace(strings.Join(rest[:amountIdx], " "))
	amount := strings.ReplaceAll(rest[amountIdx], ",", "")

	return map[string]string{
		"Date":        date.Format("2006-01-02"),
		"Description": description,
		"Amount":      amount,
		"Type":        string(inferLineType(description, line)),
	}, true
}

// Keyword classes for inferring the transaction direction from PDF
// text, checked in priority order.
var (
	transferKeywords = []string{"transfer", "neft", "imps", "rtgs", "upi"}
	incomeKeywords   = []string{"credit", "salary", "deposit", "interest", "refund", "cr", "payment received"}
	expenseKeywords  = []string{"debit", "withdrawal", "payment", "purchase", "dr", "charge", "fee"}
)

func inferLineType(description, line string) models.TransactionType {
	desc := strings.ToLower(description)
	full := strings.ToLower(line)

	switch {
	case containsAnyWord(desc, transferKeywords) || containsAnyWord(full, transferKeywords):
		return models.TypeTransfer
	case containsAnyWord(desc, incomeKeywords) || containsAnyWord(full, incomeKeywords):
		return models.TypeIncome
	case containsAnyWord(desc, expenseKeywords) || containsAnyWord(full, expenseKeywords):
		return models.TypeExpense
	case strings.Contains(full, "withdrawal") || strings.Contains(full, "debit amt"):
		return models.TypeExpense
	case strings.Contains(full, "deposit") || strings.Contains(full, "credit amt"):
		return models.TypeIncome
	}
	return models.TypeExpense
}

var wordSplitter = regexp.MustCompile(`[^a-z0-9]+`)

// containsAnyWord matches keywords against whole words so that short
// tokens like "cr" and "dr" do not fire inside reference numbers.
func containsAnyWord(text string, keywords []string) bool {
	words := wordSplitter.Split(text, -1)
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	for _, kw := range keywords {
		if strings.ContainsRune(kw, ' ') {
			if strings.Contains(text, kw) {
				return true
			}
			continue
		}
		if _, ok := set[kw]; ok {
			return true
		}
	}
	return false
}
