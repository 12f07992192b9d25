// Package deposit computes the current value, accrued interest and
// payout schedule of a fixed deposit. All currency math uses decimal
// arithmetic; every function is deterministic given (deposit, today).
package deposit

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wealthwise/wealthwise/pkg/models"
)

var hundred = decimal.NewFromInt(100)

// Valuation is the derived state of a deposit at a point in time.
// Nothing here is persisted; it is recomputed on every read.
type Valuation struct {
	CurrentValue      decimal.Decimal `json:"currentValue"`
	InterestEarned    decimal.Decimal `json:"interestEarned"`
	DaysUntilMaturity int             `json:"daysUntilMaturity"`
	IsMatured         bool            `json:"isMatured"`
	// NextInterestDate is the next payout boundary after today. Nil
	// when the deposit pays at maturity or has already matured.
	NextInterestDate *time.Time      `json:"nextInterestDate,omitempty"`
	ProgressPercent  decimal.Decimal `json:"progressPercent"`
}

// monthsPerPeriod returns the compounding interval. Deposits that pay
// only at maturity compound quarterly, the usual cumulative-deposit
// convention.
func monthsPerPeriod(f models.PayoutFrequency) int {
	switch f {
	case models.PayoutMonthly:
		return 1
	case models.PayoutAnnually:
		return 12
	default: // quarterly, maturity
		return 3
	}
}

// Valuate computes the deposit's derived fields as of today.
func Valuate(d models.Deposit, today time.Time) Valuation {
	v := Valuation{
		CurrentValue:      currentValue(d),
		DaysUntilMaturity: daysBetween(today, d.MaturityDate),
	}
	v.IsMatured = v.DaysUntilMaturity <= 0
	v.InterestEarned = v.CurrentValue.Sub(d.Principal).Sub(d.TDSDeducted)

	if d.TenureMonths > 0 {
		v.ProgressPercent = decimal.NewFromInt(int64(d.CompletedMonths)).
			Div(decimal.NewFromInt(int64(d.TenureMonths))).
			Mul(hundred)
	}

	if d.Payout != models.PayoutMaturity && !v.IsMatured {
		if next := nextPayoutDate(d, today); next != nil {
			v.NextInterestDate = next
		}
	}

	return v
}

// currentValue is the principal compounded over the completed whole
// periods, plus simple interest on the leftover months of the current
// period.
func currentValue(d models.Deposit) decimal.Decimal {
	rate := d.AnnualRate.Div(hundred)
	perPeriod := monthsPerPeriod(d.Payout)

	wholePeriods := d.CompletedMonths / perPeriod
	remainderMonths := d.CompletedMonths % perPeriod

	periodRate := rate.Mul(decimal.NewFromInt(int64(perPeriod))).Div(decimal.NewFromInt(12))
	value := d.Principal.Mul(decimal.NewFromInt(1).Add(periodRate).Pow(decimal.NewFromInt(int64(wholePeriods))))

	if remainderMonths > 0 {
		fraction := decimal.NewFromInt(int64(remainderMonths)).Div(decimal.NewFromInt(12))
		value = value.Add(value.Mul(rate).Mul(fraction))
	}

	return value
}

// nextPayoutDate walks payout boundaries from the opening date and
// returns the first one after today, or nil once past maturity.
func nextPayoutDate(d models.Deposit, today time.Time) *time.Time {
	perPeriod := monthsPerPeriod(d.Payout)
	start := d.StartDate()

	for months := perPeriod; months <= d.TenureMonths; months += perPeriod {
		boundary := start.AddDate(0, months, 0)
		if boundary.After(today) {
			return &boundary
		}
	}
	return nil
}

// DeriveCompletedMonths counts whole months elapsed since the deposit
// opened, clamped to [0, tenure].
func DeriveCompletedMonths(d models.Deposit, today time.Time) int {
	start := d.StartDate()
	if today.Before(start) {
		return 0
	}

	months := (today.Year()-start.Year())*12 + int(today.Month()) - int(start.Month())
	if today.Day() < start.Day() {
		months--
	}
	if months < 0 {
		months = 0
	}
	if months > d.TenureMonths {
		months = d.TenureMonths
	}
	return months
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
