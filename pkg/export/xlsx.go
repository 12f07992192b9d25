package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/wealthwise/wealthwise/pkg/models"
)

// WriteXLSX writes transactions as a single-sheet workbook with the
// canonical column set. Amounts are written as numbers so spreadsheet
// tools can sum them.
func WriteXLSX(w io.Writer, transactions []models.Transaction, filter FilterFunc) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)

	header := make([]interface{}, len(csvHeader))
	for i, h := range csvHeader {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing xlsx header: %w", err)
	}

	rowNum := 2
	for _, tx := range transactions {
		if filter != nil && !filter(tx) {
			continue
		}
		amount, _ := tx.Amount.Float64()
		row := []interface{}{
			tx.Date.Format("2006-01-02"),
			tx.Description,
			amount,
			string(tx.Type),
			tx.Category,
		}
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("writing xlsx row %d: %w", rowNum, err)
		}
		rowNum++
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}
