// Package mapping proposes column→field assignments for an extracted
// table and validates the mapping the user confirms. Detection is a
// best-effort classifier: it returns a proposal, never a hard failure,
// and always routes through the confirmation step.
package mapping

import (
	"fmt"
	"strings"

	"github.com/wealthwise/wealthwise/pkg/models"
)

// Propose classifies every header of the table into a semantic field
// and, where a type column is found, pre-maps its observed values.
func Propose(table *models.GenericTable) []models.ColumnMapping {
	mappings := make([]models.ColumnMapping, 0, len(table.Headers))
	for _, header := range table.Headers {
		m := models.ColumnMapping{
			SourceColumn: header,
			TargetField:  classifyHeader(header),
		}
		if m.TargetField == models.FieldType {
			m.ValueMapping = proposeTypeValues(table, header)
		}
		mappings = append(mappings, m)
	}
	return mappings
}

// classifyHeader applies the first matching substring rule. The
// debit/credit-specific checks must run before the generic amount
// check, otherwise "Debit Amt." would classify as a plain amount.
func classifyHeader(header string) models.TargetField {
	h := strings.ToLower(strings.TrimSpace(header))
	switch {
	case strings.Contains(h, "date"), strings.Contains(h, "txn"), h == "dt":
		return models.FieldDate
	case strings.Contains(h, "description"),
		strings.Contains(h, "narration"),
		strings.Contains(h, "particulars"),
		strings.Contains(h, "details"),
		strings.Contains(h, "remarks"):
		return models.FieldDescription
	case strings.Contains(h, "withdrawal"),
		strings.Contains(h, "debit amt"),
		strings.Contains(h, "debit") && strings.Contains(h, "amt"):
		return models.FieldAmountDebit
	case strings.Contains(h, "deposit"),
		strings.Contains(h, "credit amt"),
		strings.Contains(h, "credit") && strings.Contains(h, "amt"):
		return models.FieldAmountCredit
	case strings.Contains(h, "amount"), strings.Contains(h, "amt"), h == "value":
		return models.FieldAmount
	case strings.Contains(h, "type"), strings.Contains(h, "transaction type"), h == "cr/dr":
		return models.FieldType
	case strings.Contains(h, "category"), strings.Contains(h, "tag"):
		return models.FieldCategory
	}
	return models.FieldSkip
}

// typeValueDictionary maps raw statement type markers to canonical
// transaction types. Values outside the dictionary are left unmapped
// for the user to resolve.
var typeValueDictionary = map[string]string{
	"credit":     string(models.TypeIncome),
	"cr":         string(models.TypeIncome),
	"deposit":    string(models.TypeIncome),
	"debit":      string(models.TypeExpense),
	"dr":         string(models.TypeExpense),
	"withdrawal": string(models.TypeExpense),
	"payment":    string(models.TypeExpense),
	"charge":     string(models.TypeExpense),
	"income":     string(models.TypeIncome),
	"expense":    string(models.TypeExpense),
	"transfer":   string(models.TypeTransfer),
}

// proposeTypeValues samples the distinct values of the type column and
// auto-maps the ones the dictionary knows.
func proposeTypeValues(table *models.GenericTable, header string) map[string]string {
	valueMap := make(map[string]string)
	for _, row := range table.Rows {
		raw := strings.ToLower(strings.TrimSpace(row[header]))
		if raw == "" {
			continue
		}
		if _, seen := valueMap[raw]; seen {
			continue
		}
		if canonical, ok := typeValueDictionary[raw]; ok {
			valueMap[raw] = canonical
		}
	}
	if len(valueMap) == 0 {
		return nil
	}
	return valueMap
}

// IncompleteError is the blocking state of the confirmation surface:
// the mapping is missing jointly required fields. It is resolved by
// user action, never silently defaulted.
type IncompleteError struct {
	Missing []models.TargetField
}

func (e *IncompleteError) Error() string {
	names := make([]string, len(e.Missing))
	for i, f := range e.Missing {
		names[i] = string(f)
	}
	return fmt.Sprintf("mapping incomplete: missing %s", strings.Join(names, ", "))
}

// Validate checks the joint field requirement: date and description
// always, plus either a single amount column or both a debit and a
// credit column. With debit and credit both mapped, amount and type are
// unnecessary — type is inferred per row from which side is non-zero —
// so their absence does not block.
func Validate(mappings []models.ColumnMapping) error {
	mapped := make(map[models.TargetField]bool)
	for _, m := range mappings {
		if m.TargetField != models.FieldSkip {
			mapped[m.TargetField] = true
		}
	}

	var missing []models.TargetField
	if !mapped[models.FieldDate] {
		missing = append(missing, models.FieldDate)
	}
	if !mapped[models.FieldDescription] {
		missing = append(missing, models.FieldDescription)
	}

	hasSplit := mapped[models.FieldAmountDebit] && mapped[models.FieldAmountCredit]
	if !hasSplit && !mapped[models.FieldAmount] {
		missing = append(missing, models.FieldAmount)
	}

	if len(missing) > 0 {
		return &IncompleteError{Missing: missing}
	}
	return nil
}

// UsesSplitAmounts reports whether the mapping resolves amounts from
// separate debit and credit columns.
func UsesSplitAmounts(mappings []models.ColumnMapping) bool {
	var debit, credit bool
	for _, m := range mappings {
		switch m.TargetField {
		case models.FieldAmountDebit:
			debit = true
		case models.FieldAmountCredit:
			credit = true
		}
	}
	return debit && credit
}
