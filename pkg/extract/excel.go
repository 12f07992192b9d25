package extract

import (
	"bytes"
	"errors"

	"github.com/extrame/xls"
	"github.com/xuri/excelize/v2"

	"github.com/wealthwise/wealthwise/pkg/detect"
	"github.com/wealthwise/wealthwise/pkg/models"
)

// excelHeaderScanDepth is how many leading rows are searched for the
// header row of a spreadsheet export.
const excelHeaderScanDepth = 30

// ExtractExcel reads the first worksheet of a workbook into a
// GenericTable. Both .xlsx (zip container) and legacy .xls (OLE
// container) files are handled; the container is sniffed from the
// leading bytes rather than trusted from the file name.
func ExtractExcel(data []byte) (*models.GenericTable, error) {
	grid, err := workbookGrid(data)
	if err != nil {
		return nil, &ParseError{Format: detect.FormatExcel, Reason: err.Error()}
	}
	return tableFromGrid(grid)
}

var errNoSheet = errors.New("no data found in sheet")

var (
	zipMagic = []byte{0x50, 0x4b, 0x03, 0x04}
	oleMagic = []byte{0xd0, 0xcf, 0x11, 0xe0}
)

func workbookGrid(data []byte) ([][]string, error) {
	if bytes.HasPrefix(data, zipMagic) {
		return xlsxGrid(data)
	}
	if bytes.HasPrefix(data, oleMagic) {
		return xlsGrid(data)
	}
	// Ambiguous container: try the modern format first.
	grid, err := xlsxGrid(data)
	if err == nil {
		return grid, nil
	}
	return xlsGrid(data)
}

func xlsxGrid(data []byte) ([][]string, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, errNoSheet
	}
	return f.GetRows(sheets[0])
}

func xlsGrid(data []byte) ([][]string, error) {
	workbook, err := xls.OpenReader(bytes.NewReader(data), "cp1252")
	if err != nil {
		return nil, err
	}

	rows := workbook.ReadAllCells(10000)
	if len(rows) == 0 {
		return nil, errNoSheet
	}
	return rows, nil
}

// tableFromGrid locates the header row in a cell grid and builds the
// GenericTable from the rows below it.
func tableFromGrid(grid [][]string) (*models.GenericTable, error) {
	headerIdx := -1
	limit := excelHeaderScanDepth
	if limit > len(grid) {
		limit = len(grid)
	}
	for i := 0; i < limit; i++ {
		if looksLikeHeaderRow(grid[i]) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 {
		// Fall back to the first row that carries enough cells to be a
		// plausible table header.
		for i := 0; i < limit; i++ {
			if countNonEmpty(grid[i]) >= 3 {
				headerIdx = i
				break
			}
		}
	}
	if headerIdx == -1 {
		return nil, &ParseError{Format: detect.FormatExcel, Reason: "no header row found"}
	}

	headers := uniqueHeaders(grid[headerIdx])

	var rows []map[string]string
	for _, cells := range grid[headerIdx+1:] {
		if countNonEmpty(cells) == 0 {
			continue
		}
		rows = append(rows, rowFromFields(headers, cells))
	}

	// A header with no data underneath is a summary sheet, not a table.
	if len(rows) == 0 {
		return nil, &ParseError{Format: detect.FormatExcel, Reason: "no data rows below header"}
	}

	return &models.GenericTable{Headers: headers, Rows: rows}, nil
}
