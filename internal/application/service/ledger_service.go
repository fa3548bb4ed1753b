package service

import (
	"context"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sangkips/milk-ledger/internal/domain/entity"
	"github.com/sangkips/milk-ledger/internal/domain/repository"
	"github.com/sangkips/milk-ledger/pkg/apperror"
	"github.com/sangkips/milk-ledger/pkg/money"
	"github.com/sangkips/milk-ledger/pkg/pagination"
	"github.com/sangkips/milk-ledger/pkg/utils"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// LedgerService owns every read and write of the ledger. Each call loads the
// whole document from the store, and each mutation writes it back; nothing
// is cached between calls.
type LedgerService struct {
	store  repository.LedgerStore
	locale language.Tag
	logger *slog.Logger

	// serialises load-mutate-save within this process
	mu sync.Mutex
}

// NewLedgerService creates a ledger service. locale is a BCP 47 tag used to
// order customer names; an unparsable tag falls back to English.
func NewLedgerService(store repository.LedgerStore, locale string, logger *slog.Logger) *LedgerService {
	if logger == nil {
		logger = slog.Default()
	}
	tag, err := language.Parse(locale)
	if err != nil {
		logger.Warn("unknown ledger locale, using en", "locale", locale, "error", err)
		tag = language.English
	}
	return &LedgerService{store: store, locale: tag, logger: logger}
}

// mutate runs fn against a freshly loaded ledger and saves the result when
// fn reports a change.
func (s *LedgerService) mutate(ctx context.Context, fn func(l *entity.Ledger) (bool, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(l)
	if err != nil || !changed {
		return err
	}
	return s.store.Save(ctx, l)
}

// Customers

// ListCustomers returns every customer ordered by name for the configured
// locale, ties broken by id.
func (s *LedgerService) ListCustomers(ctx context.Context) ([]entity.Customer, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	customers := make([]entity.Customer, 0, len(l.Customers))
	for _, c := range l.Customers {
		customers = append(customers, c)
	}
	s.sortByName(customers)
	return customers, nil
}

// ListCustomersPage returns one page of the sorted customer list.
func (s *LedgerService) ListCustomersPage(ctx context.Context, params *pagination.PaginationParams) (*pagination.PaginatedResult[entity.Customer], error) {
	customers, err := s.ListCustomers(ctx)
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(customers, params), nil
}

func (s *LedgerService) sortByName(customers []entity.Customer) {
	// collators are not safe for concurrent use
	col := collate.New(s.locale)
	sort.SliceStable(customers, func(i, j int) bool {
		if c := col.CompareString(customers[i].Name, customers[j].Name); c != 0 {
			return c < 0
		}
		return customers[i].ID < customers[j].ID
	})
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name      string
	Phone     string
	MilkPrice float64
}

// CreateCustomer stores a new customer under a fresh id. Phone numbers must
// be unique because customers look themselves up by phone.
func (s *LedgerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	customer := entity.Customer{
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		MilkPrice: money.Sanitize(input.MilkPrice),
	}
	var errs []apperror.FieldError
	if customer.Name == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "is required"})
	}
	if customer.Phone == "" {
		errs = append(errs, apperror.FieldError{Field: "phone", Message: "is required"})
	}
	if customer.MilkPrice < 0 {
		errs = append(errs, apperror.FieldError{Field: "milk_price", Message: "must not be negative"})
	}
	if len(errs) > 0 {
		return nil, apperror.NewValidationError(errs)
	}

	err := s.mutate(ctx, func(l *entity.Ledger) (bool, error) {
		if l.PhoneTaken(customer.Phone, "") {
			return false, apperror.NewConflictError("A customer with this phone number already exists")
		}
		customer.ID = utils.NewUniqueShortID(l.HasCustomer)
		l.PutCustomer(customer)
		return true, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("customer created", "customer_id", customer.ID)
	return &customer, nil
}

// UpdateCustomer merges patch into the stored customer. Unknown ids are
// ignored.
func (s *LedgerService) UpdateCustomer(ctx context.Context, id string, patch entity.CustomerPatch) error {
	var errs []apperror.FieldError
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		errs = append(errs, apperror.FieldError{Field: "name", Message: "must not be empty"})
	}
	if patch.Phone != nil && strings.TrimSpace(*patch.Phone) == "" {
		errs = append(errs, apperror.FieldError{Field: "phone", Message: "must not be empty"})
	}
	if patch.MilkPrice != nil {
		price := money.Sanitize(*patch.MilkPrice)
		if price < 0 {
			errs = append(errs, apperror.FieldError{Field: "milk_price", Message: "must not be negative"})
		}
		patch.MilkPrice = &price
	}
	if len(errs) > 0 {
		return apperror.NewValidationError(errs)
	}
	if patch.IsEmpty() {
		return nil
	}

	return s.mutate(ctx, func(l *entity.Ledger) (bool, error) {
		current, ok := l.Customer(id)
		if !ok {
			s.logger.Debug("update for unknown customer ignored", "customer_id", id)
			return false, nil
		}
		updated := patch.Apply(current)
		if updated.Phone != current.Phone && l.PhoneTaken(updated.Phone, id) {
			return false, apperror.NewConflictError("A customer with this phone number already exists")
		}
		l.PutCustomer(updated)
		return true, nil
	})
}

// DeleteCustomer removes the customer with all of its entries and payment
// records.
func (s *LedgerService) DeleteCustomer(ctx context.Context, id string) error {
	err := s.mutate(ctx, func(l *entity.Ledger) (bool, error) {
		if !l.HasCustomer(id) {
			return false, nil
		}
		l.DeleteCustomer(id)
		return true, nil
	})
	if err == nil {
		s.logger.Info("customer deleted", "customer_id", id)
	}
	return err
}

// GetCustomer returns nil, nil when the customer does not exist.
func (s *LedgerService) GetCustomer(ctx context.Context, id string) (*entity.Customer, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := l.Customer(id)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// FindCustomerByPhone matches the trimmed phone exactly and returns nil, nil
// when nobody has that number.
func (s *LedgerService) FindCustomerByPhone(ctx context.Context, phone string) (*entity.Customer, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, nil
	}
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := l.CustomerByPhone(phone)
	if !ok {
		return nil, nil
	}
	return &c, nil
}

// Day entries

// GetMonthEntries returns the month's entries sorted by date. The slice is
// empty, not nil, when nothing was recorded.
func (s *LedgerService) GetMonthEntries(ctx context.Context, customerID string, ym entity.YearMonth) ([]entity.DayEntry, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return l.MonthEntries(entity.MonthKey{CustomerID: customerID, YearMonth: ym}), nil
}

// UpsertDayEntry replaces the entry for entry.Date or adds it. Items without
// an id get one. Entries for unknown customers are ignored.
func (s *LedgerService) UpsertDayEntry(ctx context.Context, customerID string, entry entity.DayEntry) error {
	entry, err := normalizeEntry(entry)
	if err != nil {
		return err
	}
	return s.mutate(ctx, func(l *entity.Ledger) (bool, error) {
		if !l.HasCustomer(customerID) {
			s.logger.Debug("entry for unknown customer ignored", "customer_id", customerID, "date", entry.Date)
			return false, nil
		}
		if err := l.UpsertEntry(customerID, entry); err != nil {
			return false, apperror.NewFieldError("date", err.Error())
		}
		return true, nil
	})
}

// MarkNoDelivery records the date as a day with nothing delivered.
func (s *LedgerService) MarkNoDelivery(ctx context.Context, customerID, date string) error {
	return s.UpsertDayEntry(ctx, customerID, entity.NoDelivery(date))
}

// RemoveOtherItem drops one item from a day. Nothing happens if the day or
// the item does not exist.
func (s *LedgerService) RemoveOtherItem(ctx context.Context, customerID, date, itemID string) error {
	return s.mutate(ctx, func(l *entity.Ledger) (bool, error) {
		return l.RemoveOtherItem(customerID, date, itemID), nil
	})
}

// normalizeEntry validates an entry and fills in what callers may omit.
// Non-finite numbers become zero; negative ones are rejected.
func normalizeEntry(e entity.DayEntry) (entity.DayEntry, error) {
	var errs []apperror.FieldError
	if _, err := entity.YearMonthOf(e.Date); err != nil {
		errs = append(errs, apperror.FieldError{Field: "date", Message: "must be a valid YYYY-MM-DD date"})
	}

	e.AMQty = money.Sanitize(e.AMQty)
	e.PMQty = money.Sanitize(e.PMQty)
	if e.AMQty < 0 {
		errs = append(errs, apperror.FieldError{Field: "am_qty", Message: "must not be negative"})
	}
	if e.PMQty < 0 {
		errs = append(errs, apperror.FieldError{Field: "pm_qty", Message: "must not be negative"})
	}
	e.Note = strings.TrimSpace(e.Note)

	items := make([]entity.OtherItem, 0, len(e.OtherItems))
	seen := make(map[string]bool, len(e.OtherItems))
	for i, it := range e.OtherItems {
		it.Name = strings.TrimSpace(it.Name)
		it.Price = money.Sanitize(it.Price)
		if it.Price < 0 {
			errs = append(errs, apperror.FieldError{Field: "other_items[" + strconv.Itoa(i) + "].price", Message: "must not be negative"})
		}
		it.ID = strings.TrimSpace(it.ID)
		if it.ID == "" || seen[it.ID] {
			it.ID = utils.NewUniqueShortID(func(id string) bool { return seen[id] })
		}
		seen[it.ID] = true
		items = append(items, it)
	}
	e.OtherItems = items

	if len(errs) > 0 {
		return e, apperror.NewValidationError(errs)
	}
	return e, nil
}

// Totals and payments

// ComputeTotals sums the customer's month at the customer's current milk
// price. A price change therefore applies to past months too.
func (s *LedgerService) ComputeTotals(ctx context.Context, customer entity.Customer, ym entity.YearMonth) (entity.MonthTotals, error) {
	entries, err := s.GetMonthEntries(ctx, customer.ID, ym)
	if err != nil {
		return entity.MonthTotals{}, err
	}
	return entity.ComputeTotals(entries, customer.MilkPrice), nil
}

// GetPaymentStatus returns the stored status or the unpaid default.
func (s *LedgerService) GetPaymentStatus(ctx context.Context, customerID string, ym entity.YearMonth) (entity.PaymentStatus, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return entity.PaymentStatus{}, err
	}
	return l.Payment(entity.MonthKey{CustomerID: customerID, YearMonth: ym}), nil
}

// SetPaymentStatus merges patch over the stored status, or over the unpaid
// default, and re-stamps the month.
func (s *LedgerService) SetPaymentStatus(ctx context.Context, customerID string, ym entity.YearMonth, patch entity.PaymentPatch) error {
	if patch.Method != nil && !patch.Method.IsValid() {
		return apperror.NewFieldError("method", "must be cash or online")
	}
	return s.mutate(ctx, func(l *entity.Ledger) (bool, error) {
		if !l.HasCustomer(customerID) {
			s.logger.Debug("payment for unknown customer ignored", "customer_id", customerID, "month", ym.String())
			return false, nil
		}
		key := entity.MonthKey{CustomerID: customerID, YearMonth: ym}
		l.SetPayment(key, patch.Apply(l.Payment(key), ym))
		return true, nil
	})
}

// MarkPaidCash records the month as paid in cash.
func (s *LedgerService) MarkPaidCash(ctx context.Context, customerID string, ym entity.YearMonth) error {
	return s.SetPaymentStatus(ctx, customerID, ym, entity.PaidCash())
}

// MarkPaidOnline records the month as paid online with a transaction reference.
func (s *LedgerService) MarkPaidOnline(ctx context.Context, customerID string, ym entity.YearMonth, reference string) error {
	return s.SetPaymentStatus(ctx, customerID, ym, entity.PaidOnline(reference))
}

// MarkUnpaid reverts the month and clears method and reference.
func (s *LedgerService) MarkUnpaid(ctx context.Context, customerID string, ym entity.YearMonth) error {
	return s.SetPaymentStatus(ctx, customerID, ym, entity.Unpaid())
}

// Whole-month and whole-ledger views

// MonthSummary returns the customer's statement for ym, or nil, nil when the
// customer does not exist.
func (s *LedgerService) MonthSummary(ctx context.Context, customerID string, ym entity.YearMonth) (*entity.MonthStatement, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	c, ok := l.Customer(customerID)
	if !ok {
		return nil, nil
	}
	st := l.Statement(c, ym)
	return &st, nil
}

// MonthStatements returns the statement of every customer for ym, in
// ListCustomers order.
func (s *LedgerService) MonthStatements(ctx context.Context, ym entity.YearMonth) ([]entity.MonthStatement, error) {
	l, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	customers := make([]entity.Customer, 0, len(l.Customers))
	for _, c := range l.Customers {
		customers = append(customers, c)
	}
	s.sortByName(customers)

	out := make([]entity.MonthStatement, 0, len(customers))
	for _, c := range customers {
		out = append(out, l.Statement(c, ym))
	}
	return out, nil
}

// ExportLedger returns the whole stored ledger.
func (s *LedgerService) ExportLedger(ctx context.Context) (*entity.Ledger, error) {
	return s.store.Load(ctx)
}

// ImportLedger replaces the stored ledger. Records that reference missing
// customers are dropped; the number dropped is returned.
func (s *LedgerService) ImportLedger(ctx context.Context, l *entity.Ledger) (int, error) {
	if l == nil {
		return 0, apperror.NewBadRequestError("Ledger document is required")
	}
	imported := l.Clone()
	var errs []apperror.FieldError
	for id, c := range imported.Customers {
		c.ID = id
		c.MilkPrice = money.Sanitize(c.MilkPrice)
		if c.MilkPrice < 0 {
			errs = append(errs, apperror.FieldError{Field: "customers." + id + ".milkPrice", Message: "must not be negative"})
		}
		imported.Customers[id] = c
	}
	if len(errs) > 0 {
		return 0, apperror.NewValidationError(errs)
	}
	dropped := imported.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.store.Save(ctx, imported); err != nil {
		return 0, err
	}
	s.logger.Info("ledger imported", "customers", len(imported.Customers), "dropped", dropped)
	return dropped, nil
}
