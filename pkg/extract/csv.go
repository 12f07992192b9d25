package extract

import (
	"strings"

	"github.com/wealthwise/wealthwise/pkg/detect"
	"github.com/wealthwise/wealthwise/pkg/models"
)

// csvHeaderScanDepth is how many non-empty leading lines are searched
// for the real header row. Bank exports often prepend account summary
// and metadata lines before the table starts.
const csvHeaderScanDepth = 10

// ExtractCSV reads CSV text of unknown layout into a GenericTable.
func ExtractCSV(data []byte) (*models.GenericTable, error) {
	text := strings.TrimPrefix(string(data), "\uFEFF")
	lines := splitLines(text)

	headerIdx := -1
	scanned := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		scanned++
		if countMatches(line, headerKeywords) >= 2 {
			headerIdx = i
			break
		}
		if scanned >= csvHeaderScanDepth {
			break
		}
	}
	if headerIdx == -1 {
		return nil, &ParseError{Format: detect.FormatCSV, Reason: "no header row found"}
	}

	headers := uniqueHeaders(splitCSVLine(lines[headerIdx]))

	var rows []map[string]string
	for _, line := range lines[headerIdx+1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, rowFromFields(headers, splitCSVLine(line)))
	}

	return &models.GenericTable{Headers: headers, Rows: rows}, nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// splitCSVLine splits one line into fields with RFC4180-style quote
// handling: a quote toggles quote state, a doubled quote inside quotes
// is a literal quote, and a comma only ends a field outside quotes.
// Malformed quoting never errors; the field simply keeps what was read.
func splitCSVLine(line string) []string {
	var fields []string
	var field strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch {
		case c == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				field.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case c == ',' && !inQuotes:
			fields = append(fields, field.String())
			field.Reset()
		default:
			field.WriteRune(c)
		}
	}
	fields = append(fields, field.String())
	return fields
}
