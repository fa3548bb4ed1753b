package entity

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/sangkips/milk-ledger/internal/domain/enum"
)

// Ledger is the complete application state: every customer, every day entry
// and every payment record. It is loaded, mutated and saved as one document.
type Ledger struct {
	Customers map[string]Customer
	Entries   map[MonthKey][]DayEntry
	Payments  map[MonthKey]PaymentStatus
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		Customers: make(map[string]Customer),
		Entries:   make(map[MonthKey][]DayEntry),
		Payments:  make(map[MonthKey]PaymentStatus),
	}
}

// Customer returns the customer with the given id.
func (l *Ledger) Customer(id string) (Customer, bool) {
	c, ok := l.Customers[id]
	return c, ok
}

func (l *Ledger) HasCustomer(id string) bool {
	_, ok := l.Customers[id]
	return ok
}

// PutCustomer inserts or replaces a customer record.
func (l *Ledger) PutCustomer(c Customer) {
	l.Customers[c.ID] = c
}

// DeleteCustomer removes the customer and every entry and payment record
// keyed by its id.
func (l *Ledger) DeleteCustomer(id string) {
	delete(l.Customers, id)
	for k := range l.Entries {
		if k.CustomerID == id {
			delete(l.Entries, k)
		}
	}
	for k := range l.Payments {
		if k.CustomerID == id {
			delete(l.Payments, k)
		}
	}
}

// CustomerByPhone returns the first customer whose phone equals phone
// exactly. Ids are scanned in sorted order so duplicates resolve the same
// way every time.
func (l *Ledger) CustomerByPhone(phone string) (Customer, bool) {
	for _, id := range l.customerIDs() {
		if c := l.Customers[id]; c.Phone == phone {
			return c, true
		}
	}
	return Customer{}, false
}

// PhoneTaken reports whether another customer already uses phone.
func (l *Ledger) PhoneTaken(phone, exceptID string) bool {
	for id, c := range l.Customers {
		if id != exceptID && c.Phone == phone {
			return true
		}
	}
	return false
}

// MonthEntries returns a sorted copy of the entries for key. The result is
// never nil.
func (l *Ledger) MonthEntries(key MonthKey) []DayEntry {
	stored := l.Entries[key]
	out := make([]DayEntry, 0, len(stored))
	for _, e := range stored {
		out = append(out, e.Clone())
	}
	return out
}

// UpsertEntry replaces the entry for e.Date or appends it, then re-sorts the
// month.
func (l *Ledger) UpsertEntry(customerID string, e DayEntry) error {
	ym, err := YearMonthOf(e.Date)
	if err != nil {
		return err
	}
	key := MonthKey{CustomerID: customerID, YearMonth: ym}
	list := l.Entries[key]

	replaced := false
	for i := range list {
		if list[i].Date == e.Date {
			list[i] = e.Clone()
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, e.Clone())
	}
	SortEntries(list)
	l.Entries[key] = list
	return nil
}

// RemoveOtherItem filters itemID out of the entry for date. It reports
// whether anything changed.
func (l *Ledger) RemoveOtherItem(customerID, date, itemID string) bool {
	ym, err := YearMonthOf(date)
	if err != nil {
		return false
	}
	key := MonthKey{CustomerID: customerID, YearMonth: ym}
	list := l.Entries[key]
	for i := range list {
		if list[i].Date != date {
			continue
		}
		updated, removed := list[i].WithoutItem(itemID)
		if removed {
			list[i] = updated
		}
		return removed
	}
	return false
}

// Payment returns the stored status for key or the unpaid default.
func (l *Ledger) Payment(key MonthKey) PaymentStatus {
	if ps, ok := l.Payments[key]; ok {
		return ps
	}
	return DefaultPayment(key.YearMonth)
}

func (l *Ledger) SetPayment(key MonthKey, ps PaymentStatus) {
	ps.YearMonth = key.YearMonth
	l.Payments[key] = ps
}

// Normalize restores the ledger invariants on data that came from outside:
// entries sorted by date, payment months matching their keys, and no
// records for customers that do not exist. It returns the number of
// orphaned records dropped.
func (l *Ledger) Normalize() int {
	dropped := 0
	for k, list := range l.Entries {
		if !l.HasCustomer(k.CustomerID) {
			delete(l.Entries, k)
			dropped++
			continue
		}
		SortEntries(list)
	}
	for k, ps := range l.Payments {
		if !l.HasCustomer(k.CustomerID) {
			delete(l.Payments, k)
			dropped++
			continue
		}
		ps.YearMonth = k.YearMonth
		l.Payments[k] = ps
	}
	return dropped
}

// Clone returns a deep copy.
func (l *Ledger) Clone() *Ledger {
	out := NewLedger()
	for id, c := range l.Customers {
		out.Customers[id] = c
	}
	for k, list := range l.Entries {
		cp := make([]DayEntry, len(list))
		for i, e := range list {
			cp[i] = e.Clone()
		}
		out.Entries[k] = cp
	}
	for k, ps := range l.Payments {
		out.Payments[k] = ps
	}
	return out
}

func (l *Ledger) customerIDs() []string {
	ids := make([]string, 0, len(l.Customers))
	for id := range l.Customers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Storage layout. Field names are camelCase so a document exported from
// the browser version of the ledger loads unchanged.
type ledgerDocument struct {
	Customers map[string]customerDocument                 `json:"customers"`
	Entries   map[string]map[string][]dayEntryDocument    `json:"entries"`
	Payments  map[string]map[string]paymentStatusDocument `json:"payments"`
}

type customerDocument struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	MilkPrice float64 `json:"milkPrice"`
}

type otherItemDocument struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type dayEntryDocument struct {
	Date       string              `json:"date"`
	AMQty      *float64            `json:"amQty,omitempty"`
	PMQty      *float64            `json:"pmQty,omitempty"`
	OtherItems []otherItemDocument `json:"otherItems,omitempty"`
	Note       *string             `json:"note,omitempty"`
}

type paymentStatusDocument struct {
	YearMonth string  `json:"yearMonth"`
	Paid      bool    `json:"paid"`
	Method    *string `json:"method,omitempty"`
	Reference *string `json:"reference,omitempty"`
}

// MarshalJSON writes the ledger in its storage layout.
func (l Ledger) MarshalJSON() ([]byte, error) {
	doc := ledgerDocument{
		Customers: make(map[string]customerDocument, len(l.Customers)),
		Entries:   make(map[string]map[string][]dayEntryDocument),
		Payments:  make(map[string]map[string]paymentStatusDocument),
	}

	for id, c := range l.Customers {
		doc.Customers[id] = customerDocument{ID: id, Name: c.Name, Phone: c.Phone, MilkPrice: c.MilkPrice}
	}

	for k, list := range l.Entries {
		months, ok := doc.Entries[k.CustomerID]
		if !ok {
			months = make(map[string][]dayEntryDocument)
			doc.Entries[k.CustomerID] = months
		}
		out := make([]dayEntryDocument, 0, len(list))
		for _, e := range list {
			out = append(out, toDayEntryDocument(e))
		}
		months[k.YearMonth.String()] = out
	}

	for k, ps := range l.Payments {
		months, ok := doc.Payments[k.CustomerID]
		if !ok {
			months = make(map[string]paymentStatusDocument)
			doc.Payments[k.CustomerID] = months
		}
		pd := paymentStatusDocument{YearMonth: k.YearMonth.String(), Paid: ps.Paid}
		if ps.Method != enum.PaymentMethodNone {
			m := ps.Method.String()
			pd.Method = &m
		}
		if ps.Reference != "" {
			r := ps.Reference
			pd.Reference = &r
		}
		months[k.YearMonth.String()] = pd
	}

	return json.Marshal(doc)
}

// UnmarshalJSON reads the storage layout. Missing sections load as empty;
// malformed month keys, dates or payment methods are errors.
func (l *Ledger) UnmarshalJSON(data []byte) error {
	var doc ledgerDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}

	out := NewLedger()
	for id, c := range doc.Customers {
		out.Customers[id] = Customer{ID: id, Name: c.Name, Phone: c.Phone, MilkPrice: c.MilkPrice}
	}

	for id, months := range doc.Entries {
		for ymStr, list := range months {
			ym, err := ParseYearMonth(ymStr)
			if err != nil {
				return fmt.Errorf("entries[%s]: %w", id, err)
			}
			entries := make([]DayEntry, 0, len(list))
			for _, d := range list {
				if !ym.Contains(d.Date) {
					return fmt.Errorf("entries[%s][%s]: date %q outside month", id, ymStr, d.Date)
				}
				entries = append(entries, fromDayEntryDocument(d))
			}
			SortEntries(entries)
			out.Entries[MonthKey{CustomerID: id, YearMonth: ym}] = entries
		}
	}

	for id, months := range doc.Payments {
		for ymStr, pd := range months {
			ym, err := ParseYearMonth(ymStr)
			if err != nil {
				return fmt.Errorf("payments[%s]: %w", id, err)
			}
			ps := PaymentStatus{YearMonth: ym, Paid: pd.Paid}
			if pd.Method != nil {
				m, err := enum.ParsePaymentMethod(*pd.Method)
				if err != nil {
					return fmt.Errorf("payments[%s][%s]: %w", id, ymStr, err)
				}
				ps.Method = m
			}
			if pd.Reference != nil {
				ps.Reference = *pd.Reference
			}
			out.Payments[MonthKey{CustomerID: id, YearMonth: ym}] = ps
		}
	}

	*l = *out
	return nil
}

func toDayEntryDocument(e DayEntry) dayEntryDocument {
	am, pm := e.AMQty, e.PMQty
	d := dayEntryDocument{Date: e.Date, AMQty: &am, PMQty: &pm}
	if len(e.OtherItems) > 0 {
		d.OtherItems = make([]otherItemDocument, 0, len(e.OtherItems))
		for _, it := range e.OtherItems {
			d.OtherItems = append(d.OtherItems, otherItemDocument(it))
		}
	}
	if e.Note != "" {
		note := e.Note
		d.Note = &note
	}
	return d
}

func fromDayEntryDocument(d dayEntryDocument) DayEntry {
	e := DayEntry{Date: d.Date, OtherItems: make([]OtherItem, 0, len(d.OtherItems))}
	if d.AMQty != nil {
		e.AMQty = *d.AMQty
	}
	if d.PMQty != nil {
		e.PMQty = *d.PMQty
	}
	for _, it := range d.OtherItems {
		e.OtherItems = append(e.OtherItems, OtherItem(it))
	}
	if d.Note != nil {
		e.Note = *d.Note
	}
	return e
}
