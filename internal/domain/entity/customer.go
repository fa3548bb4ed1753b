package entity

import "strings"

// Customer is a household on the seller's delivery round.
type Customer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	MilkPrice float64 `json:"milk_price"` // per liter, always the current rate
}

// CustomerPatch holds the fields an update may change. Nil fields are left
// untouched.
type CustomerPatch struct {
	Name      *string
	Phone     *string
	MilkPrice *float64
}

// Apply returns a copy of c with the patch applied. The id never changes.
func (p CustomerPatch) Apply(c Customer) Customer {
	if p.Name != nil {
		c.Name = strings.TrimSpace(*p.Name)
	}
	if p.Phone != nil {
		c.Phone = strings.TrimSpace(*p.Phone)
	}
	if p.MilkPrice != nil {
		c.MilkPrice = *p.MilkPrice
	}
	return c
}

// IsEmpty reports whether the patch changes nothing.
func (p CustomerPatch) IsEmpty() bool {
	return p.Name == nil && p.Phone == nil && p.MilkPrice == nil
}
