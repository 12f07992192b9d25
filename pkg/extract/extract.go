// Package extract turns raw statement files into a GenericTable: an
// ordered header row plus string-keyed data rows. Each extractor has to
// locate the true header row (or transaction block) behind whatever
// summary lines the bank prepends.
package extract

import (
	"fmt"

	"github.com/wealthwise/wealthwise/pkg/detect"
	"github.com/wealthwise/wealthwise/pkg/models"
)

// ParseError reports that a file of a known format could not be decoded
// or contained no recognizable table. It aborts the whole import; the
// user may retry with a different file.
type ParseError struct {
	Format detect.Format
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s statement: %s", e.Format, e.Reason)
}

type handlerFunc func(data []byte) (*models.GenericTable, error)

// handlers is the fixed format→extractor table. New formats are added
// here, not registered at runtime.
var handlers = map[detect.Format]handlerFunc{
	detect.FormatCSV:   ExtractCSV,
	detect.FormatExcel: ExtractExcel,
	detect.FormatPDF:   ExtractPDF,
}

// Extract runs the extractor for the given format.
func Extract(format detect.Format, data []byte) (*models.GenericTable, error) {
	h, ok := handlers[format]
	if !ok {
		return nil, fmt.Errorf("no extractor for format %q", format)
	}
	return h(data)
}

// uniqueHeaders rewrites duplicate or empty header cells so they can be
// used as row map keys. "Amount", "Amount" becomes "Amount",
// "Amount (2)"; an empty cell becomes "Column N".
func uniqueHeaders(cells []string) []string {
	seen := make(map[string]int, len(cells))
	headers := make([]string, len(cells))
	for i, cell := range cells {
		name := cell
		if name == "" {
			name = fmt.Sprintf("Column %d", i+1)
		}
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name = fmt.Sprintf("%s (%d)", name, n+1)
		} else {
			seen[name] = 1
		}
		headers[i] = name
	}
	return headers
}

// rowFromFields zips headers with a data row, padding missing trailing
// fields with empty strings. Extra fields beyond the header are
// dropped.
func rowFromFields(headers, fields []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(fields) {
			row[h] = fields[i]
		} else {
			row[h] = ""
		}
	}
	return row
}
