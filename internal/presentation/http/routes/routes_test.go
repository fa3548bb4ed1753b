package routes

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/milk-ledger/internal/application/service"
	"github.com/sangkips/milk-ledger/internal/config"
	"github.com/sangkips/milk-ledger/internal/domain/entity"
	"github.com/sangkips/milk-ledger/internal/infrastructure/repository"
	"github.com/sangkips/milk-ledger/internal/presentation/http/handler"
	"github.com/sangkips/milk-ledger/pkg/apperror"
	"github.com/sangkips/milk-ledger/pkg/printer"
	"github.com/sangkips/milk-ledger/pkg/whatsapp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var quiet = slog.New(slog.NewTextHandler(io.Discard, nil))

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Data    json.RawMessage       `json:"data"`
	Errors  []apperror.FieldError `json:"errors"`
}

func testConfig() *config.Config {
	return &config.Config{
		App:       config.AppConfig{Name: "milk-ledger-test"},
		RateLimit: config.RateLimitConfig{Requests: 1000, Duration: 1},
		Bill:      config.BillConfig{CurrencySymbol: "₹", WhatsAppBaseURL: "https://wa.me", SellerName: "Gokul Dairy"},
		Printer:   config.PrinterConfig{Type: "none", Width: 32},
	}
}

func newRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	ledger := service.NewLedgerService(repository.NewMemoryLedgerStore(quiet), "en", quiet)
	bills := service.NewBillService(ledger, whatsapp.NewLinkBuilder(cfg.Bill.WhatsAppBaseURL, ""), cfg.Bill.CurrencySymbol, cfg.Bill.SellerName)
	reports := service.NewReportService(ledger)
	printers := service.NewPrinterService(printer.NewNullPrinter(), ledger, cfg.Printer.Type, cfg.Printer.Width, cfg.Bill.SellerName, quiet)
	limiter := NewRateLimiter(&cfg.RateLimit)
	t.Cleanup(limiter.Stop)

	return Setup(&Handlers{
		Customer: handler.NewCustomerHandler(ledger),
		Ledger:   handler.NewLedgerHandler(ledger),
		Bill:     handler.NewBillHandler(bills),
		Report:   handler.NewReportHandler(reports),
		Printer:  handler.NewPrinterHandler(printers),
	}, &Deps{Cfg: cfg, Logger: quiet, RateLimiter: limiter})
}

func do(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	case []byte:
		reader = bytes.NewReader(b)
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, data interface{}) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	if data != nil {
		require.NoError(t, json.Unmarshal(env.Data, data))
	}
	return env
}

func createCustomer(t *testing.T, r http.Handler, name, phone string, price float64) entity.Customer {
	t.Helper()
	w := do(t, r, http.MethodPost, "/api/v1/seller/customers", gin.H{"name": name, "phone": phone, "milk_price": price})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var c entity.Customer
	decode(t, w, &c)
	return c
}

func TestHealth(t *testing.T) {
	r := newRouter(t, testConfig())

	w := do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "milk-ledger-test")
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestCustomerRoutes(t *testing.T) {
	r := newRouter(t, testConfig())
	asha := createCustomer(t, r, "Asha", "919900000001", 40)
	createCustomer(t, r, "Bob", "919900000002", 50)

	w := do(t, r, http.MethodGet, "/api/v1/seller/customers?per_page=1", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var page struct {
		Items []entity.Customer `json:"items"`
		Pagination struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	decode(t, w, &page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Asha", page.Items[0].Name)
	assert.Equal(t, 2, page.Pagination.Total)

	w = do(t, r, http.MethodPatch, "/api/v1/seller/customers/"+asha.ID, gin.H{"milk_price": 45})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated entity.Customer
	decode(t, w, &updated)
	assert.Equal(t, 45.0, updated.MilkPrice)
	assert.Equal(t, "Asha", updated.Name)

	w = do(t, r, http.MethodGet, "/api/v1/customer/lookup?phone=919900000001", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var found entity.Customer
	decode(t, w, &found)
	assert.Equal(t, asha.ID, found.ID)

	w = do(t, r, http.MethodGet, "/api/v1/customer/lookup?phone=000", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/customer/lookup", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// price edits are a seller route only
	w = do(t, r, http.MethodPatch, "/api/v1/customer/customers/"+asha.ID, gin.H{"milk_price": 1})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, r, http.MethodDelete, "/api/v1/seller/customers/"+asha.ID, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, "/api/v1/seller/customers/"+asha.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerValidationAndConflict(t *testing.T) {
	r := newRouter(t, testConfig())
	createCustomer(t, r, "Asha", "919900000001", 40)

	w := do(t, r, http.MethodPost, "/api/v1/seller/customers", gin.H{"name": "Other", "phone": "919900000001", "milk_price": 40})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = do(t, r, http.MethodPost, "/api/v1/seller/customers", gin.H{"phone": "1", "milk_price": -5})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w, nil)
	fields := make([]string, 0, len(env.Errors))
	for _, fe := range env.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"name", "milk_price"}, fields)

	w = do(t, r, http.MethodPost, "/api/v1/seller/customers", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLedgerRoutes(t *testing.T) {
	r := newRouter(t, testConfig())
	asha := createCustomer(t, r, "Asha", "919900000001", 40)
	base := "/api/v1/customer/customers/" + asha.ID

	w := do(t, r, http.MethodPut, base+"/entries/2024-03-05", gin.H{
		"am_qty":      1,
		"pm_qty":      0.5,
		"other_items": []gin.H{{"name": "Bread", "price": 35}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var entries []entity.DayEntry
	decode(t, w, &entries)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].OtherItems, 1)
	itemID := entries[0].OtherItems[0].ID
	assert.NotEmpty(t, itemID)

	w = do(t, r, http.MethodGet, base+"/months/2024-03", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var summary struct {
		Totals       entity.MonthTotals   `json:"totals"`
		Payment      entity.PaymentStatus `json:"payment"`
		DeliveryDays int                  `json:"delivery_days"`
		PrevMonth    string               `json:"prev_month"`
		NextMonth    string               `json:"next_month"`
		Role         string               `json:"role"`
		CanEditPrice bool                 `json:"can_edit_price"`
	}
	decode(t, w, &summary)
	assert.Equal(t, entity.MonthTotals{TotalMilkLiters: 1.5, MilkAmount: 60, OtherAmount: 35, GrandTotal: 95}, summary.Totals)
	assert.False(t, summary.Payment.Paid)
	assert.Equal(t, 1, summary.DeliveryDays)
	assert.Equal(t, "2024-02", summary.PrevMonth)
	assert.Equal(t, "2024-04", summary.NextMonth)
	assert.Equal(t, "customer", summary.Role)
	assert.False(t, summary.CanEditPrice)

	w = do(t, r, http.MethodGet, "/api/v1/seller/customers/"+asha.ID+"/months/2024-03", nil)
	decode(t, w, &summary)
	assert.True(t, summary.CanEditPrice)

	w = do(t, r, http.MethodDelete, base+"/entries/2024-03-05/items/"+itemID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var totals entity.MonthTotals
	w = do(t, r, http.MethodGet, base+"/months/2024-03/totals", nil)
	decode(t, w, &totals)
	assert.Equal(t, 60.0, totals.GrandTotal)

	w = do(t, r, http.MethodPost, base+"/entries/2024-03-06/none", nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = do(t, r, http.MethodGet, base+"/months/2024-03/entries", nil)
	decode(t, w, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.NoDeliveryNote, entries[1].Note)

	w = do(t, r, http.MethodGet, "/api/v1/customer/customers/ghost/months/2024-03/entries", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLedgerRouteValidation(t *testing.T) {
	r := newRouter(t, testConfig())
	asha := createCustomer(t, r, "Asha", "919900000001", 40)
	base := "/api/v1/seller/customers/" + asha.ID

	w := do(t, r, http.MethodGet, base+"/months/2024-13", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "YYYY-MM")

	w = do(t, r, http.MethodPut, base+"/entries/2024-02-30", gin.H{"am_qty": 1})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, r, http.MethodPut, base+"/entries/2024-03-05", gin.H{"am_qty": -1, "other_items": []gin.H{{"name": "x", "price": -3}}})
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	env := decode(t, w, nil)
	fields := make([]string, 0, len(env.Errors))
	for _, fe := range env.Errors {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"am_qty", "other_items[0].price"}, fields)
}

func TestUnnamedItemIsSaved(t *testing.T) {
	r := newRouter(t, testConfig())
	asha := createCustomer(t, r, "Asha", "919900000001", 40)
	base := "/api/v1/seller/customers/" + asha.ID

	// a freshly added item row has no name or price yet
	w := do(t, r, http.MethodPut, base+"/entries/2024-03-05", gin.H{"other_items": []gin.H{{"name": "", "price": 0}}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var entries []entity.DayEntry
	decode(t, w, &entries)
	require.Len(t, entries, 1)
	require.Len(t, entries[0].OtherItems, 1)
	assert.Empty(t, entries[0].OtherItems[0].Name)
	assert.NotEmpty(t, entries[0].OtherItems[0].ID)
}

func TestPaymentRoutes(t *testing.T) {
	r := newRouter(t, testConfig())
	asha := createCustomer(t, r, "Asha", "919900000001", 40)
	path := "/api/v1/customer/customers/" + asha.ID + "/months/2024-03/payment"

	w := do(t, r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var ps entity.PaymentStatus
	decode(t, w, &ps)
	assert.Equal(t, entity.DefaultPayment(entity.MustYearMonth("2024-03")), ps)

	w = do(t, r, http.MethodPatch, path, gin.H{"paid": true, "method": "online", "reference": "UTR1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	decode(t, w, &ps)
	assert.True(t, ps.Paid)
	assert.Equal(t, "online", ps.Method.String())
	assert.Equal(t, "UTR1", ps.Reference)

	// clearing the reference keeps the rest
	w = do(t, r, http.MethodPatch, path, gin.H{"reference": ""})
	require.Equal(t, http.StatusOK, w.Code)
	ps = entity.PaymentStatus{}
	decode(t, w, &ps)
	assert.True(t, ps.Paid)
	assert.Empty(t, ps.Reference)

	w = do(t, r, http.MethodPatch, path, gin.H{"method": "card"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPaymentActionRoutes(t *testing.T) {
	r := newRouter(t, testConfig())
	asha := createCustomer(t, r, "Asha", "919900000001", 40)
	path := "/api/v1/customer/customers/" + asha.ID + "/months/2024-03/payment"

	w := do(t, r, http.MethodPost, path+"/online", gin.H{"reference": "UTR9"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var ps entity.PaymentStatus
	decode(t, w, &ps)
	assert.True(t, ps.Paid)
	assert.Equal(t, "online", ps.Method.String())
	assert.Equal(t, "UTR9", ps.Reference)

	w = do(t, r, http.MethodPost, path+"/cash", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ps = entity.PaymentStatus{}
	decode(t, w, &ps)
	assert.True(t, ps.Paid)
	assert.Equal(t, "cash", ps.Method.String())
	// cash merges over the stored status, the old reference stays
	assert.Equal(t, "UTR9", ps.Reference)

	w = do(t, r, http.MethodPost, path+"/unpaid", nil)
	require.Equal(t, http.StatusOK, w.Code)
	ps = entity.PaymentStatus{}
	decode(t, w, &ps)
	assert.Equal(t, entity.DefaultPayment(entity.MustYearMonth("2024-03")), ps)

	// no body means no reference
	w = do(t, r, http.MethodPost, path+"/online", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ps = entity.PaymentStatus{}
	decode(t, w, &ps)
	assert.True(t, ps.Paid)
	assert.Empty(t, ps.Reference)
}

func TestBillRoutes(t *testing.T) {
	r := newRouter(t, testConfig())
	asha := createCustomer(t, r, "Asha", "919900000001", 40)
	base := "/api/v1/seller/customers/" + asha.ID
	w := do(t, r, http.MethodPut, base+"/entries/2024-03-05", gin.H{"am_qty": 1, "pm_qty": 0.5})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, base+"/months/2024-03/bill", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var bill service.Bill
	decode(t, w, &bill)
	assert.Contains(t, bill.Message, "Grand total: ₹60")
	assert.True(t, strings.HasPrefix(bill.URL, "https://wa.me/919900000001?text="))

	w = do(t, r, http.MethodGet, base+"/months/2024-03/bill/pdf", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))

	w = do(t, r, http.MethodPost, base+"/months/2024-03/bill/print", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "printing failed")
	assert.Contains(t, w.Body.String(), "warning")

	w = do(t, r, http.MethodGet, "/api/v1/seller/customers/ghost/months/2024-03/bill", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReportAndBackupRoutes(t *testing.T) {
	r := newRouter(t, testConfig())
	asha := createCustomer(t, r, "Asha", "919900000001", 40)
	w := do(t, r, http.MethodPut, "/api/v1/seller/customers/"+asha.ID+"/entries/2024-03-05", gin.H{"am_qty": 1})
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/api/v1/seller/reports/2024-03/workbook", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "ledger-2024-03.xlsx")
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = do(t, r, http.MethodGet, "/api/v1/seller/ledger/export", nil)
	require.Equal(t, http.StatusOK, w.Code)
	exported := w.Body.Bytes()
	assert.Contains(t, string(exported), `"milkPrice"`)

	other := newRouter(t, testConfig())
	w = do(t, other, http.MethodPut, "/api/v1/seller/ledger/import", exported)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"dropped":0`)

	w = do(t, other, http.MethodGet, "/api/v1/seller/customers/"+asha.ID+"/months/2024-03/totals", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var totals entity.MonthTotals
	decode(t, w, &totals)
	assert.Equal(t, 40.0, totals.GrandTotal)

	w = do(t, other, http.MethodPut, "/api/v1/seller/ledger/import", `{"entries":{"x":{"bad-key":[]}}}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPrinterRoutes(t *testing.T) {
	r := newRouter(t, testConfig())

	w := do(t, r, http.MethodGet, "/api/v1/seller/printer/status", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"configured":false`)

	w = do(t, r, http.MethodPost, "/api/v1/seller/printer/test", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "PRINTER TEST")
}

func TestMetricsEndpoint(t *testing.T) {
	r := newRouter(t, testConfig())
	do(t, r, http.MethodGet, "/health", nil)

	w := do(t, r, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `http_requests_total{method="GET",path="/health",status="200"} 1`)
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = config.RateLimitConfig{Requests: 2, Duration: 60}
	r := newRouter(t, cfg)

	for i := 0; i < 2; i++ {
		w := do(t, r, http.MethodGet, "/api/v1/seller/customers", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := do(t, r, http.MethodGet, "/api/v1/seller/customers", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "1", w.Header().Get("Retry-After"))

	// health checks are not limited
	w = do(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(t, r, http.MethodGet, "/metrics", nil)
	assert.Contains(t, w.Body.String(), "http_rate_limiter_active_clients 1")
}
