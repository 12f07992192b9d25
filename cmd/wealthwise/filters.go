package main

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise/pkg/export"
	"github.com/wealthwise/wealthwise/pkg/models"
)

type filters struct {
	startDate string
	endDate   string
	minAmount float64
	maxAmount float64
	txType    string
}

func (f *filters) toFilterFunc() export.FilterFunc {
	return func(t models.Transaction) bool {
		if f.startDate != "" {
			start, _ := time.Parse("2006-01-02", f.startDate)
			if t.Date.Before(start) {
				return false
			}
		}
		if f.endDate != "" {
			end, _ := time.Parse("2006-01-02", f.endDate)
			if t.Date.After(end) {
				return false
			}
		}
		if f.minAmount != 0 && t.Amount.LessThan(decimal.NewFromFloat(f.minAmount)) {
			return false
		}
		if f.maxAmount != 0 && t.Amount.GreaterThan(decimal.NewFromFloat(f.maxAmount)) {
			return false
		}
		if f.txType != "" && string(t.Type) != f.txType {
			return false
		}
		return true
	}
}
