package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/sangkips/milk-ledger/internal/domain/entity"
	"github.com/sangkips/milk-ledger/internal/timeutil"
	"github.com/sangkips/milk-ledger/pkg/apperror"
	"github.com/sangkips/milk-ledger/pkg/money"
	"github.com/sangkips/milk-ledger/pkg/whatsapp"
)

// pdfCurrency replaces the configured symbol in PDFs; the core PDF fonts
// have no glyph for ₹.
const pdfCurrency = "Rs. "

// Bill is the shareable form of a month: the message and the chat link
// that carries it.
type Bill struct {
	Message string `json:"message"`
	URL     string `json:"url"`
}

// BillService formats monthly bills for customers.
type BillService struct {
	ledger     *LedgerService
	links      *whatsapp.LinkBuilder
	currency   string
	sellerName string
}

// NewBillService creates a bill service. currency is the symbol printed in
// front of amounts in messages.
func NewBillService(ledger *LedgerService, links *whatsapp.LinkBuilder, currency, sellerName string) *BillService {
	return &BillService{
		ledger:     ledger,
		links:      links,
		currency:   currency,
		sellerName: sellerName,
	}
}

// FormatMessage renders the bill text. Numbers are printed in their shortest
// form, so 60.00 reads "60" and 1.50 reads "1.5".
func (s *BillService) FormatMessage(c entity.Customer, ym entity.YearMonth, t entity.MonthTotals) string {
	cur := s.currency
	lines := []string{
		"Monthly Bill - " + ym.String(),
		"Name: " + c.Name,
		"Phone: " + c.Phone,
		"Milk price: " + cur + money.Format(c.MilkPrice) + "/L",
		"Total milk: " + money.Format(t.TotalMilkLiters) + " L = " + cur + money.Format(t.MilkAmount),
		"Other items: " + cur + money.Format(t.OtherAmount),
		"Grand total: " + cur + money.Format(t.GrandTotal),
		"",
		"Please pay your dues. Thank you!",
	}
	return strings.Join(lines, "\n")
}

// BuildBillMessage computes the month's totals and returns the chat URL
// addressed to the customer's phone with the bill as its text.
func (s *BillService) BuildBillMessage(ctx context.Context, customer entity.Customer, ym entity.YearMonth) (string, error) {
	bill, err := s.buildBill(ctx, customer, ym)
	if err != nil {
		return "", err
	}
	return bill.URL, nil
}

// GetBill returns the message and URL for a stored customer.
func (s *BillService) GetBill(ctx context.Context, customerID string, ym entity.YearMonth) (*Bill, error) {
	customer, err := s.ledger.GetCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return s.buildBill(ctx, *customer, ym)
}

func (s *BillService) buildBill(ctx context.Context, customer entity.Customer, ym entity.YearMonth) (*Bill, error) {
	totals, err := s.ledger.ComputeTotals(ctx, customer, ym)
	if err != nil {
		return nil, err
	}
	msg := s.FormatMessage(customer, ym, totals)
	return &Bill{Message: msg, URL: s.links.ChatURL(customer.Phone, msg)}, nil
}

// BillPDF renders the customer's month as an A4 PDF: every recorded day,
// the totals and the payment state.
func (s *BillService) BillPDF(ctx context.Context, customerID string, ym entity.YearMonth) ([]byte, error) {
	st, err := s.ledger.MonthSummary(ctx, customerID, ym)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return s.renderPDF(st)
}

func (s *BillService) renderPDF(st *entity.MonthStatement) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetTitle("Monthly Bill "+st.YearMonth.String(), true)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	// Header
	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(190, 10, tr(s.sellerName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 12)
	pdf.CellFormat(190, 7, "Monthly Bill - "+st.YearMonth.String(), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(190, 5, "Generated: "+timeutil.Now().Format(timeutil.DisplayLayout), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	// Customer
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Customer", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, tr("Name: "+st.Customer.Name), "LB", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, "Phone: "+st.Customer.Phone, "RB", 1, "L", false, 0, "")
	pdf.CellFormat(190, 7, "Milk price: "+pdfCurrency+money.Format2(st.Customer.MilkPrice)+" / L", "LRB", 1, "L", false, 0, "")
	pdf.Ln(4)

	// Deliveries
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(190, 8, "Deliveries", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(30, 7, "Date", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "AM (L)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(20, 7, "PM (L)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(60, 7, "Other items", "1", 0, "C", true, 0, "")
	pdf.CellFormat(25, 7, "Items (Rs.)", "1", 0, "C", true, 0, "")
	pdf.CellFormat(35, 7, "Note", "1", 1, "C", true, 0, "")

	pdf.SetFont("Arial", "", 10)
	if len(st.Entries) == 0 {
		pdf.CellFormat(190, 6, "No deliveries recorded", "1", 1, "C", false, 0, "")
	}
	for _, e := range st.Entries {
		names := make([]string, 0, len(e.OtherItems))
		itemsTotal := 0.0
		for _, it := range e.OtherItems {
			names = append(names, it.Name)
			itemsTotal += money.Sanitize(it.Price)
		}
		pdf.CellFormat(30, 6, e.Date, "1", 0, "C", false, 0, "")
		pdf.CellFormat(20, 6, money.Format(e.AMQty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 6, money.Format(e.PMQty), "1", 0, "R", false, 0, "")
		pdf.CellFormat(60, 6, tr(truncate(strings.Join(names, ", "), 32)), "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 6, money.Format2(itemsTotal), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 6, tr(truncate(e.Note, 18)), "1", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// Totals
	t := st.Totals
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(240, 240, 240)
	pdf.CellFormat(190, 8, "Summary", "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(95, 7, "Total milk", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, money.Format(t.TotalMilkLiters)+" L", "1", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, "Milk amount", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, pdfCurrency+money.Format2(t.MilkAmount), "1", 1, "R", false, 0, "")
	pdf.CellFormat(95, 7, "Other items", "1", 0, "L", false, 0, "")
	pdf.CellFormat(95, 7, pdfCurrency+money.Format2(t.OtherAmount), "1", 1, "R", false, 0, "")

	if st.Payment.Paid {
		pdf.SetFillColor(200, 255, 200)
	} else {
		pdf.SetFillColor(255, 200, 200)
	}
	pdf.SetFont("Arial", "B", 13)
	pdf.CellFormat(95, 9, "Grand total", "1", 0, "L", true, 0, "")
	pdf.CellFormat(95, 9, pdfCurrency+money.Format2(t.GrandTotal), "1", 1, "R", true, 0, "")
	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(190, 8, tr(paymentLine(st.Payment)), "1", 1, "C", false, 0, "")

	pdf.Ln(6)
	pdf.SetFont("Arial", "I", 10)
	pdf.CellFormat(190, 6, "Please pay your dues. Thank you!", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render bill pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func paymentLine(ps entity.PaymentStatus) string {
	if !ps.Paid {
		return "Status: UNPAID"
	}
	line := "Status: PAID (" + ps.Method.Label() + ")"
	if ps.Reference != "" {
		line += " Ref: " + ps.Reference
	}
	return line
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
