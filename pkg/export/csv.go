// Package export writes normalized transactions back out. The CSV
// format here is the canonical round-trip contract: exporting and
// re-importing with the default mapping reproduces the same set of
// transactions.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/wealthwise/wealthwise/pkg/models"
)

// csvHeader is the documented, stable column set of the canonical
// format.
var csvHeader = []string{"date", "description", "amount", "type", "category"}

// FilterFunc selects which transactions are written.
type FilterFunc func(models.Transaction) bool

// WriteCSV writes transactions in the canonical CSV format. Fields
// containing quotes or commas are quoted with doubled quotes by the
// csv writer.
func WriteCSV(w io.Writer, transactions []models.Transaction, filter FilterFunc) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	for _, tx := range transactions {
		if filter != nil && !filter(tx) {
			continue
		}
		record := []string{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			tx.Amount.String(),
			string(tx.Type),
			tx.Category,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
