package entity

// MonthStatement is a value object: one customer's month with its derived
// totals and payment state. It is composed on request for the ledger page,
// bills and printed slips and is never stored.
type MonthStatement struct {
	Customer  Customer      `json:"customer"`
	YearMonth YearMonth     `json:"year_month"`
	Entries   []DayEntry    `json:"entries"`
	Totals    MonthTotals   `json:"totals"`
	Payment   PaymentStatus `json:"payment"`
}

// Statement composes the statement for customer c and month ym.
func (l *Ledger) Statement(c Customer, ym YearMonth) MonthStatement {
	key := MonthKey{CustomerID: c.ID, YearMonth: ym}
	entries := l.MonthEntries(key)
	return MonthStatement{
		Customer:  c,
		YearMonth: ym,
		Entries:   entries,
		Totals:    ComputeTotals(entries, c.MilkPrice),
		Payment:   l.Payment(key),
	}
}

// DeliveryDays counts the days with any milk delivered.
func (s MonthStatement) DeliveryDays() int {
	n := 0
	for _, e := range s.Entries {
		if e.Liters() > 0 {
			n++
		}
	}
	return n
}
