package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/milk-ledger/internal/application/service"
	"github.com/sangkips/milk-ledger/internal/domain/entity"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/response"
)

// LedgerHandler handles day entries, totals and payments for one customer
type LedgerHandler struct {
	ledgerService *service.LedgerService
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerService: ledgerService}
}

// requireCustomer answers 404 and returns nil when the customer is unknown.
func (h *LedgerHandler) requireCustomer(c *gin.Context, id string) *entity.Customer {
	customer, err := h.ledgerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil
	}
	if customer == nil {
		response.NotFound(c, "Customer not found")
		return nil
	}
	return customer
}

// Summary returns the month's entries, totals and payment state
func (h *LedgerHandler) Summary(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}

	st, err := h.ledgerService.MonthSummary(c.Request.Context(), uri.ID, uri.YearMonth())
	if err != nil {
		response.Error(c, err)
		return
	}
	if st == nil {
		response.NotFound(c, "Customer not found")
		return
	}

	response.OK(c, "Month summary retrieved successfully", response.NewMonthSummaryResponse(st, GetRole(c)))
}

// Entries returns the month's day entries sorted by date
func (h *LedgerHandler) Entries(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}
	ctx := c.Request.Context()
	if h.requireCustomer(c, uri.ID) == nil {
		return
	}

	entries, err := h.ledgerService.GetMonthEntries(ctx, uri.ID, uri.YearMonth())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Entries retrieved successfully", entries)
}

// Totals returns the month's totals at the customer's current price
func (h *LedgerHandler) Totals(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}
	ctx := c.Request.Context()
	customer := h.requireCustomer(c, uri.ID)
	if customer == nil {
		return
	}

	totals, err := h.ledgerService.ComputeTotals(ctx, *customer, uri.YearMonth())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Totals computed successfully", totals)
}

// GetPayment returns the month's payment state, unpaid when never set
func (h *LedgerHandler) GetPayment(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}
	ctx := c.Request.Context()
	if h.requireCustomer(c, uri.ID) == nil {
		return
	}

	ps, err := h.ledgerService.GetPaymentStatus(ctx, uri.ID, uri.YearMonth())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Payment status retrieved successfully", ps)
}

// UpdatePayment merges the request into the month's payment state
func (h *LedgerHandler) UpdatePayment(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}
	var req request.PaymentPatchRequest
	if !bindJSON(c, &req) {
		return
	}

	err := h.ledgerService.SetPaymentStatus(c.Request.Context(), uri.ID, uri.YearMonth(), req.ToPatch())
	h.respondPayment(c, uri, err, "Payment status updated successfully")
}

// MarkPaidCash records the month as paid in cash
func (h *LedgerHandler) MarkPaidCash(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}

	err := h.ledgerService.MarkPaidCash(c.Request.Context(), uri.ID, uri.YearMonth())
	h.respondPayment(c, uri, err, "Marked paid (cash)")
}

// MarkPaidOnline records the month as paid online. The body may be omitted
// when there is no transaction reference.
func (h *LedgerHandler) MarkPaidOnline(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}
	var req request.OnlinePaymentRequest
	if c.Request.ContentLength != 0 && !bindJSON(c, &req) {
		return
	}

	err := h.ledgerService.MarkPaidOnline(c.Request.Context(), uri.ID, uri.YearMonth(), req.Reference)
	h.respondPayment(c, uri, err, "Marked paid (online)")
}

// MarkUnpaid reverts the month to unpaid
func (h *LedgerHandler) MarkUnpaid(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}

	err := h.ledgerService.MarkUnpaid(c.Request.Context(), uri.ID, uri.YearMonth())
	h.respondPayment(c, uri, err, "Marked unpaid")
}

func (h *LedgerHandler) respondPayment(c *gin.Context, uri request.MonthURI, err error, message string) {
	if err != nil {
		response.Error(c, err)
		return
	}

	ps, err := h.ledgerService.GetPaymentStatus(c.Request.Context(), uri.ID, uri.YearMonth())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, message, ps)
}

// UpsertEntry replaces the entry for a date and returns the month's entries
func (h *LedgerHandler) UpsertEntry(c *gin.Context) {
	var uri request.EntryURI
	if !bindURI(c, &uri) {
		return
	}
	var req request.DayEntryRequest
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	if err := h.ledgerService.UpsertDayEntry(ctx, uri.ID, req.ToEntity(uri.Date)); err != nil {
		response.Error(c, err)
		return
	}

	h.respondMonth(c, uri, "Entry saved successfully")
}

// MarkNoDelivery records a date as having no delivery
func (h *LedgerHandler) MarkNoDelivery(c *gin.Context) {
	var uri request.EntryURI
	if !bindURI(c, &uri) {
		return
	}

	ctx := c.Request.Context()
	if err := h.ledgerService.MarkNoDelivery(ctx, uri.ID, uri.Date); err != nil {
		response.Error(c, err)
		return
	}

	h.respondMonth(c, uri, "Day marked as no delivery")
}

// RemoveItem deletes one extra item from a date
func (h *LedgerHandler) RemoveItem(c *gin.Context) {
	var uri request.EntryURI
	if !bindURI(c, &uri) {
		return
	}
	if uri.ItemID == "" {
		response.BadRequest(c, "Invalid path parameter")
		return
	}

	ctx := c.Request.Context()
	if err := h.ledgerService.RemoveOtherItem(ctx, uri.ID, uri.Date, uri.ItemID); err != nil {
		response.Error(c, err)
		return
	}

	h.respondMonth(c, uri, "Item removed successfully")
}

func (h *LedgerHandler) respondMonth(c *gin.Context, uri request.EntryURI, message string) {
	ym, _ := entity.YearMonthOf(uri.Date)
	entries, err := h.ledgerService.GetMonthEntries(c.Request.Context(), uri.ID, ym)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, entries)
}

// Export downloads the whole ledger in its storage layout
func (h *LedgerHandler) Export(c *gin.Context) {
	l, err := h.ledgerService.ExportLedger(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	data, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, "ledger_v1.json", "application/json", data)
}

// Import replaces the whole ledger with a document in the storage layout
func (h *LedgerHandler) Import(c *gin.Context) {
	var l entity.Ledger
	if err := c.ShouldBindJSON(&l); err != nil {
		response.BadRequest(c, "Invalid ledger document: "+err.Error())
		return
	}

	dropped, err := h.ledgerService.ImportLedger(c.Request.Context(), &l)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ledger imported successfully", &response.ImportResponse{
		Customers: len(l.Customers),
		Dropped:   dropped,
	})
}
