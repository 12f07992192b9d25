package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayoutFrequency is how often a deposit pays interest.
type PayoutFrequency string

const (
	PayoutMonthly   PayoutFrequency = "monthly"
	PayoutQuarterly PayoutFrequency = "quarterly"
	PayoutAnnually  PayoutFrequency = "annually"
	PayoutMaturity  PayoutFrequency = "maturity"
)

// Deposit holds the contractual terms of a fixed/recurring deposit.
// Valuation fields (current value, interest earned) are derived on
// read by the deposit package, never stored here.
type Deposit struct {
	Principal       decimal.Decimal
	AnnualRate      decimal.Decimal // percentage, e.g. 7 for 7% p.a.
	TenureMonths    int
	CompletedMonths int
	Payout          PayoutFrequency
	MaturityDate    time.Time
	MaturityAmount  decimal.Decimal
	TDSDeducted     decimal.Decimal
}

// StartDate is the opening date implied by the maturity date and
// tenure.
func (d Deposit) StartDate() time.Time {
	return d.MaturityDate.AddDate(0, -d.TenureMonths, 0)
}
