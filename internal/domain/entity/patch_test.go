package entity

import (
	"testing"

	"github.com/sangkips/milk-ledger/internal/domain/enum"
	"github.com/stretchr/testify/assert"
)

func TestCustomerPatchApply(t *testing.T) {
	orig := Customer{ID: "c1", Name: "Asha", Phone: "919900000001", MilkPrice: 40}

	name := "  Asha K "
	price := 45.5
	got := CustomerPatch{Name: &name, MilkPrice: &price}.Apply(orig)

	assert.Equal(t, Customer{ID: "c1", Name: "Asha K", Phone: "919900000001", MilkPrice: 45.5}, got)
	assert.Equal(t, "Asha", orig.Name, "original value is untouched")
	assert.True(t, CustomerPatch{}.IsEmpty())
	assert.False(t, CustomerPatch{Name: &name}.IsEmpty())
}

func TestPaymentPatchApply(t *testing.T) {
	ym := MustYearMonth("2024-03")

	ps := PaidCash().Apply(DefaultPayment(ym), ym)
	assert.Equal(t, PaymentStatus{YearMonth: ym, Paid: true, Method: enum.PaymentMethodCash}, ps)
	assert.Empty(t, ps.Reference)

	ps = PaidOnline(" UTR42 ").Apply(ps, ym)
	assert.Equal(t, enum.PaymentMethodOnline, ps.Method)
	assert.Equal(t, "UTR42", ps.Reference)

	ps = Unpaid().Apply(ps, ym)
	assert.Equal(t, DefaultPayment(ym), ps)

	// the month is always re-stamped
	other := MustYearMonth("2024-04")
	paid := true
	ps = PaymentPatch{Paid: &paid}.Apply(PaymentStatus{YearMonth: ym}, other)
	assert.Equal(t, other, ps.YearMonth)
}

func TestDayEntryHelpers(t *testing.T) {
	e := NoDelivery("2024-03-06")
	assert.Equal(t, NoDeliveryNote, e.Note)
	assert.Zero(t, e.Liters())
	assert.NotNil(t, e.OtherItems)

	e = DayEntry{Date: "2024-03-06", AMQty: 1.25, PMQty: 0.75}
	assert.Equal(t, 2.0, e.Liters())

	entries := []DayEntry{{Date: "2024-03-10"}, {Date: "2024-03-02"}, {Date: "2024-03-31"}}
	SortEntries(entries)
	assert.Equal(t, []string{"2024-03-02", "2024-03-10", "2024-03-31"}, dates(entries))
}
