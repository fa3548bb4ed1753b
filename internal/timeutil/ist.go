package timeutil

import (
	"time"
)

// IST is the Indian Standard Time location (UTC+5:30)
var IST *time.Location

func init() {
	var err error
	IST, err = time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// tzdata missing in minimal images
		IST = time.FixedZone("IST", 5*60*60+30*60)
	}
}

// Layouts used by the ledger
const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
	DisplayLayout   = "02 Jan 2006, 03:04 PM"
)

// Now returns the current time in IST
func Now() time.Time {
	return time.Now().In(IST)
}

// CurrentYearMonth returns the current month in IST as YYYY-MM.
func CurrentYearMonth() string {
	return Now().Format(YearMonthLayout)
}

// ParseDate parses a strict YYYY-MM-DD calendar date in IST.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, IST)
}

