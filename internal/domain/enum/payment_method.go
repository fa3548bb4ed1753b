package enum

import (
	"encoding/json"
	"fmt"
)

// PaymentMethod records how a month was settled. The zero value means no
// method has been recorded.
type PaymentMethod string

const (
	PaymentMethodNone   PaymentMethod = ""
	PaymentMethodCash   PaymentMethod = "cash"
	PaymentMethodOnline PaymentMethod = "online"
)

// ParsePaymentMethod accepts "cash", "online" or the empty string.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(s)
	if !m.IsValid() {
		return PaymentMethodNone, fmt.Errorf("invalid payment method %q", s)
	}
	return m, nil
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodNone, PaymentMethodCash, PaymentMethodOnline:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// Label is the human-readable form used on bills and reports.
func (m PaymentMethod) Label() string {
	switch m {
	case PaymentMethodCash:
		return "Cash"
	case PaymentMethodOnline:
		return "Online"
	}
	return "-"
}

func (m *PaymentMethod) UnmarshalJSON(data []byte) error {
	var str *string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == nil {
		*m = PaymentMethodNone
		return nil
	}
	parsed, err := ParsePaymentMethod(*str)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
