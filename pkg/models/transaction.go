package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType classifies a normalized transaction.
type TransactionType string

const (
	TypeIncome   TransactionType = "income"
	TypeExpense  TransactionType = "expense"
	TypeTransfer TransactionType = "transfer"
)

// ParseTransactionType maps a raw string to a TransactionType.
// Unrecognized values report ok=false so callers can apply their own
// default.
func ParseTransactionType(s string) (TransactionType, bool) {
	switch TransactionType(s) {
	case TypeIncome, TypeExpense, TypeTransfer:
		return TransactionType(s), true
	}
	return "", false
}

// Transaction is a normalized statement row. Amount is always positive;
// direction is carried by Type. Immutable once produced by the
// normalizer — the external store assigns identity and persists it.
type Transaction struct {
	Date        time.Time
	Description string
	Amount      decimal.Decimal
	Type        TransactionType
	Category    string
}
