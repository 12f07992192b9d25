package models

// TargetField is a semantic field a source column can be mapped to.
type TargetField string

const (
	FieldDate         TargetField = "date"
	FieldDescription  TargetField = "description"
	FieldAmount       TargetField = "amount"
	FieldAmountDebit  TargetField = "amount_debit"
	FieldAmountCredit TargetField = "amount_credit"
	FieldType         TargetField = "type"
	FieldCategory     TargetField = "category"
	FieldSkip         TargetField = "skip"
)

// ColumnMapping assigns one source column to a semantic field,
// optionally remapping individual cell values. ValueMapping keys are
// lowercased source values.
type ColumnMapping struct {
	SourceColumn string            `json:"sourceColumn"`
	TargetField  TargetField       `json:"targetField"`
	ValueMapping map[string]string `json:"valueMapping,omitempty"`
}
