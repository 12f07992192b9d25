package models

// GenericTable is the intermediate header+rows representation shared by
// all statement extractors. Headers are kept exactly as they appear in
// the source file and are used as opaque row keys, never parsed.
type GenericTable struct {
	Headers []string
	Rows    []map[string]string
}

// SampleRows returns up to n leading rows for preview surfaces.
func (t *GenericTable) SampleRows(n int) []map[string]string {
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}
