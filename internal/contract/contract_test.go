package contract

import (
	"testing"
	"time"
)

func TestMonthCode(t *testing.T) {
	want := map[time.Month]byte{
		time.January: 'F', time.February: 'G', time.March: 'H',
		time.April: 'J', time.May: 'K', time.June: 'M',
		time.July: 'N', time.August: 'Q', time.September: 'U',
		time.October: 'V', time.November: 'X', time.December: 'Z',
	}
	for m, code := range want {
		got, err := MonthCode(m)
		if err != nil {
			t.Fatalf("MonthCode(%v) failed: %v", m, err)
		}
		if got != code {
			t.Errorf("MonthCode(%v) = %c, want %c", m, got, code)
		}
	}

	if _, err := MonthCode(time.Month(0)); err == nil {
		t.Error("MonthCode(0) did not fail")
	}
	if _, err := MonthCode(time.Month(13)); err == nil {
		t.Error("MonthCode(13) did not fail")
	}
}

func TestPrimaryAndFallback(t *testing.T) {
	tests := []struct {
		date     string
		primary  string
		fallback string
	}{
		{"2023-11-01", "ZQX3", "ZQZ3"},
		{"2024-12-18", "ZQZ4", "ZQF5"}, // year rolls over on December
		{"2024-01-31", "ZQF4", "ZQG4"},
		{"2020-02-29", "ZQG0", "ZQH0"},
	}
	for _, tt := range tests {
		d, err := time.Parse("2006-01-02", tt.date)
		if err != nil {
			t.Fatalf("parse %s: %v", tt.date, err)
		}
		if got := Primary("ZQ", d); got != tt.primary {
			t.Errorf("Primary(ZQ, %s) = %q, want %q", tt.date, got, tt.primary)
		}
		if got := Fallback("ZQ", d); got != tt.fallback {
			t.Errorf("Fallback(ZQ, %s) = %q, want %q", tt.date, got, tt.fallback)
		}
	}
}

func TestFallbackIsNextMonthPrimary(t *testing.T) {
	// The fallback of month m must equal the primary of month m+1 for a
	// full year of dates, including the December rollover.
	for m := time.January; m <= time.December; m++ {
		d := time.Date(2023, m, 15, 0, 0, 0, 0, time.UTC)
		next := time.Date(2023, m, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
		if got, want := Fallback("ZQ", d), Primary("ZQ", next); got != want {
			t.Errorf("Fallback(%v) = %q, want next-month primary %q", m, got, want)
		}
	}
}

func TestSymbolFor(t *testing.T) {
	sym, err := SymbolFor("ES", 2024, time.March)
	if err != nil {
		t.Fatalf("SymbolFor failed: %v", err)
	}
	if sym != "ESH4" {
		t.Errorf("SymbolFor(ES, 2024, March) = %q, want ESH4", sym)
	}

	if _, err := SymbolFor("ES", 2024, time.Month(13)); err == nil {
		t.Error("SymbolFor accepted an invalid month")
	}
}

func TestCandidates(t *testing.T) {
	d := time.Date(2023, time.November, 1, 0, 0, 0, 0, time.UTC)
	got := Candidates("ZQ", d)
	if len(got) != 2 || got[0] != "ZQX3" || got[1] != "ZQZ3" {
		t.Errorf("Candidates = %v, want [ZQX3 ZQZ3]", got)
	}
}
