// Package detect classifies uploaded statement files by format.
package detect

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Format is the file format of an uploaded statement.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatExcel   Format = "excel"
	FormatPDF     Format = "pdf"
	FormatUnknown Format = "unknown"
)

// ErrUnsupportedFormat is returned by Require when a file matches no
// supported format. The import must stop immediately: no extractor runs
// on an unclassified file.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Detect classifies a file by its name extension first, then by the
// declared content type. It is pure: the same inputs always yield the
// same format.
func Detect(filename, contentType string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return FormatCSV
	case ".xlsx", ".xls":
		return FormatExcel
	case ".pdf":
		return FormatPDF
	}

	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "csv"):
		return FormatCSV
	case strings.Contains(ct, "spreadsheet"), strings.Contains(ct, "excel"):
		return FormatExcel
	case strings.Contains(ct, "pdf"):
		return FormatPDF
	}

	return FormatUnknown
}

// Require detects the format and fails with ErrUnsupportedFormat when
// neither signal matches.
func Require(filename, contentType string) (Format, error) {
	format := Detect(filename, contentType)
	if format == FormatUnknown {
		return FormatUnknown, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
	return format, nil
}
