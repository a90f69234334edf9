// Package contract maps calendar dates to futures contract symbols using
// the exchange month-code table.
package contract

import (
	"fmt"
	"time"
)

// monthCodes is the fixed month → code table:
// Jan F, Feb G, Mar H, Apr J, May K, Jun M, Jul N, Aug Q, Sep U, Oct V,
// Nov X, Dec Z.
var monthCodes = [12]byte{'F', 'G', 'H', 'J', 'K', 'M', 'N', 'Q', 'U', 'V', 'X', 'Z'}

// MonthCode returns the single-letter code for a contract month.
// Out-of-range months are a setup defect.
func MonthCode(m time.Month) (byte, error) {
	if m < time.January || m > time.December {
		return 0, fmt.Errorf("invalid contract month %d", int(m))
	}
	return monthCodes[m-1], nil
}

// SymbolFor builds "<root><monthCode><yearDigit>" for an explicit
// (year, month), validating the month.
func SymbolFor(root string, year int, m time.Month) (string, error) {
	code, err := MonthCode(m)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%c%d", root, code, year%10), nil
}

// Primary returns the meeting-month contract symbol for a date.
func Primary(root string, d time.Time) string {
	sym, _ := SymbolFor(root, d.Year(), d.Month()) // months from time.Time are always valid
	return sym
}

// Fallback returns the next-month contract symbol, rolling the year over
// on December → January.
func Fallback(root string, d time.Time) string {
	y, m := d.Year(), d.Month()+1
	if m > time.December {
		m, y = time.January, y+1
	}
	sym, _ := SymbolFor(root, y, m)
	return sym
}

// Candidates returns the ordered symbol chain for a date: meeting-month
// first, next-month fallback second. Resolution tries each in turn and
// keeps the first that yields data.
func Candidates(root string, d time.Time) []string {
	return []string{Primary(root, d), Fallback(root, d)}
}
