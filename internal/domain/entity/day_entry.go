package entity

import "sort"

// NoDeliveryNote marks a day explicitly recorded as having no delivery.
const NoDeliveryNote = "none"

// OtherItem is an ad-hoc line item delivered alongside the milk.
type OtherItem struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// DayEntry is one customer's deliveries for one calendar date.
type DayEntry struct {
	Date       string      `json:"date"`
	AMQty      float64     `json:"am_qty"`
	PMQty      float64     `json:"pm_qty"`
	OtherItems []OtherItem `json:"other_items"`
	Note       string      `json:"note,omitempty"`
}

// Liters is the morning plus evening quantity.
func (e DayEntry) Liters() float64 {
	return e.AMQty + e.PMQty
}

// NoDelivery returns the entry written by the "mark none" action.
func NoDelivery(date string) DayEntry {
	return DayEntry{Date: date, OtherItems: []OtherItem{}, Note: NoDeliveryNote}
}

// Clone returns a copy that shares no slices with e.
func (e DayEntry) Clone() DayEntry {
	items := make([]OtherItem, len(e.OtherItems))
	copy(items, e.OtherItems)
	e.OtherItems = items
	return e
}

// WithoutItem returns a copy of e with every item carrying itemID removed,
// and whether anything was removed.
func (e DayEntry) WithoutItem(itemID string) (DayEntry, bool) {
	kept := make([]OtherItem, 0, len(e.OtherItems))
	for _, it := range e.OtherItems {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	removed := len(kept) != len(e.OtherItems)
	e.OtherItems = kept
	return e, removed
}

// SortEntries orders entries by date ascending. Dates are YYYY-MM-DD so
// string order is calendar order.
func SortEntries(entries []DayEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Date < entries[j].Date
	})
}
