package entity

import (
	"fmt"
	"time"

	"github.com/sangkips/milk-ledger/internal/timeutil"
)

// YearMonth identifies a calendar month. It is the aggregation key for
// totals and payment status and is written as YYYY-MM.
type YearMonth struct {
	Year  int
	Month time.Month
}

// ParseYearMonth parses a strict YYYY-MM string.
func ParseYearMonth(s string) (YearMonth, error) {
	if len(s) != len(timeutil.YearMonthLayout) {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: want YYYY-MM", s)
	}
	t, err := time.Parse(timeutil.YearMonthLayout, s)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year-month %q: want YYYY-MM", s)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// MustYearMonth is ParseYearMonth for constants; it panics on bad input.
func MustYearMonth(s string) YearMonth {
	ym, err := ParseYearMonth(s)
	if err != nil {
		panic(err)
	}
	return ym
}

// YearMonthOf returns the month a YYYY-MM-DD date falls in.
func YearMonthOf(date string) (YearMonth, error) {
	t, err := timeutil.ParseDate(date)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid date %q: want YYYY-MM-DD", date)
	}
	return YearMonth{Year: t.Year(), Month: t.Month()}, nil
}

// CurrentYearMonth is the current month in IST.
func CurrentYearMonth() YearMonth {
	now := timeutil.Now()
	return YearMonth{Year: now.Year(), Month: now.Month()}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// FirstDay returns midnight IST on the first of the month.
func (ym YearMonth) FirstDay() time.Time {
	return time.Date(ym.Year, ym.Month, 1, 0, 0, 0, 0, timeutil.IST)
}

// Prev returns the month before ym.
func (ym YearMonth) Prev() YearMonth {
	t := ym.FirstDay().AddDate(0, -1, 0)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

func (ym YearMonth) Next() YearMonth {
	t := ym.FirstDay().AddDate(0, 1, 0)
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Contains reports whether the YYYY-MM-DD date belongs to this month.
func (ym YearMonth) Contains(date string) bool {
	other, err := YearMonthOf(date)
	return err == nil && other == ym
}

func (ym YearMonth) MarshalText() ([]byte, error) {
	return []byte(ym.String()), nil
}

func (ym *YearMonth) UnmarshalText(text []byte) error {
	parsed, err := ParseYearMonth(string(text))
	if err != nil {
		return err
	}
	*ym = parsed
	return nil
}

// MonthKey is the composite key for everything stored per customer and month.
type MonthKey struct {
	CustomerID string
	YearMonth  YearMonth
}

func (k MonthKey) String() string {
	return k.CustomerID + "/" + k.YearMonth.String()
}
