// Package parseutil holds the date and amount parsing shared by the
// extractors and the normalizer.
package parseutil

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

var dmyPattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)

// dateLayouts are tried in order for values dmyPattern does not cover.
var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02 Jan 2006",
	"2 Jan 2006",
	"02-Jan-2006",
}

var errUnparseableDate = errors.New("unparseable date")

// ExpandYear widens a two-digit year. Years below 50 map to 20xx, the
// rest to 19xx. This mirrors how bank statements abbreviate recent
// dates; legitimate dates outside ~1950–2049 will be misread, a known
// limitation of the heuristic.
func ExpandYear(y int) int {
	if y >= 100 {
		return y
	}
	if y < 50 {
		return 2000 + y
	}
	return 1900 + y
}

// ParseDate parses the date notations seen in bank exports. Numeric
// day/month/year forms are read day-first (DD/MM/YYYY, DD-MM-YY, ...).
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, errUnparseableDate
	}

	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year := ExpandYear(atoi(m[3]))

		t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		// time.Date normalizes overflow (32/13/...); require a round trip.
		if t.Day() != day || int(t.Month()) != month || t.Year() != year {
			return time.Time{}, errUnparseableDate
		}
		return t, nil
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}

	return time.Time{}, errUnparseableDate
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

var amountCleaner = strings.NewReplacer(
	",", "",
	" ", "",
	" ", "",
	"₹", "",
	"£", "",
	"$", "",
	"€", "",
	"rs.", "",
	"inr", "",
)

// ParseAmount reads a currency value into a decimal. Thousands
// separators, currency symbols and surrounding whitespace are
// stripped; a parenthesized value reads as negative.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = amountCleaner.Replace(s)
	if s == "" || s == "-" {
		return decimal.Zero, errors.New("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// ParseAmountOrZero is ParseAmount with empty/unparseable values
// reading as zero, the convention for blank debit/credit cells.
func ParseAmountOrZero(s string) decimal.Decimal {
	d, err := ParseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
