package entity

import (
	"strings"

	"github.com/sangkips/milk-ledger/internal/domain/enum"
)

// PaymentStatus is the settlement state of one customer's month. A month
// with no stored record is unpaid with no method.
type PaymentStatus struct {
	YearMonth YearMonth          `json:"year_month"`
	Paid      bool               `json:"paid"`
	Method    enum.PaymentMethod `json:"method,omitempty"`
	Reference string             `json:"reference,omitempty"`
}

// DefaultPayment is the implicit status of a month nobody has touched.
func DefaultPayment(ym YearMonth) PaymentStatus {
	return PaymentStatus{YearMonth: ym}
}

// PaymentPatch holds the payment fields an update may change. A non-nil
// pointer to the zero value clears the field.
type PaymentPatch struct {
	Paid      *bool
	Method    *enum.PaymentMethod
	Reference *string
}

// Apply returns a copy of ps with the patch applied. The month is always
// re-stamped to ym.
func (p PaymentPatch) Apply(ps PaymentStatus, ym YearMonth) PaymentStatus {
	if p.Paid != nil {
		ps.Paid = *p.Paid
	}
	if p.Method != nil {
		ps.Method = *p.Method
	}
	if p.Reference != nil {
		ps.Reference = strings.TrimSpace(*p.Reference)
	}
	ps.YearMonth = ym
	return ps
}

// PaidCash marks a month settled in cash.
func PaidCash() PaymentPatch {
	paid, method := true, enum.PaymentMethodCash
	return PaymentPatch{Paid: &paid, Method: &method}
}

// PaidOnline marks a month settled online with a transaction reference.
func PaidOnline(reference string) PaymentPatch {
	paid, method := true, enum.PaymentMethodOnline
	return PaymentPatch{Paid: &paid, Method: &method, Reference: &reference}
}

// Unpaid reverts a month to unpaid and clears method and reference.
func Unpaid() PaymentPatch {
	paid, method, reference := false, enum.PaymentMethodNone, ""
	return PaymentPatch{Paid: &paid, Method: &method, Reference: &reference}
}
