package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sangkips/milk-ledger/internal/domain/entity"
	"github.com/sangkips/milk-ledger/internal/timeutil"
	"github.com/sangkips/milk-ledger/pkg/apperror"
	"github.com/sangkips/milk-ledger/pkg/money"
	"github.com/sangkips/milk-ledger/pkg/printer"
)

// PrinterService handles bill slip formatting and thermal printing.
type PrinterService struct {
	printer     printer.Printer
	ledger      *LedgerService
	printerType string
	width       int
	sellerName  string
	logger      *slog.Logger
}

// NewPrinterService creates a new printer service. width is the paper
// width in characters (32 for 58mm rolls).
func NewPrinterService(
	p printer.Printer,
	ledger *LedgerService,
	printerType string,
	width int,
	sellerName string,
	logger *slog.Logger,
) *PrinterService {
	if logger == nil {
		logger = slog.Default()
	}
	return &PrinterService{
		printer:     p,
		ledger:      ledger,
		printerType: printerType,
		width:       width,
		sellerName:  sellerName,
		logger:      logger,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// TestPrint sends a sample slip to the printer.
// Returns the sample statement so the handler can show it when printing fails.
func (s *PrinterService) TestPrint() (*entity.MonthStatement, error) {
	ym := entity.CurrentYearMonth()
	first := ym.FirstDay().Format(timeutil.DateLayout)
	entries := []entity.DayEntry{
		{Date: first, AMQty: 1, PMQty: 0.5, OtherItems: []entity.OtherItem{{ID: "test", Name: "Bread", Price: 35}}},
	}
	st := &entity.MonthStatement{
		Customer:  entity.Customer{ID: "test", Name: "PRINTER TEST", Phone: "0000000000", MilkPrice: 40},
		YearMonth: ym,
		Entries:   entries,
		Totals:    entity.ComputeTotals(entries, 40),
		Payment:   entity.DefaultPayment(ym),
	}

	if err := s.printer.Print(s.FormatBillSlip(st)); err != nil {
		return st, fmt.Errorf("test print failed: %w", err)
	}
	return st, nil
}

// PrintMonthlyBill prints the customer's month as a bill slip.
func (s *PrinterService) PrintMonthlyBill(ctx context.Context, customerID string, ym entity.YearMonth) (*entity.MonthStatement, error) {
	st, err := s.ledger.MonthSummary(ctx, customerID, ym)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if err := s.printer.Print(s.FormatBillSlip(st)); err != nil {
		s.logger.Error("printer error", "customer_id", customerID, "month", ym.String(), "error", err)
		return st, fmt.Errorf("failed to print bill: %w", err)
	}
	return st, nil
}

// FormatBillSlip converts a month statement into ESC/POS bytes.
func (s *PrinterService) FormatBillSlip(st *entity.MonthStatement) []byte {
	doc := printer.NewDocument(s.width)

	// Header
	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(s.sellerName).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		Text("Monthly Bill " + st.YearMonth.String())

	doc.SetAlign(printer.AlignLeft).
		Separator('-')

	doc.Columns("Name:", st.Customer.Name).
		Columns("Phone:", st.Customer.Phone).
		Columns("Price/L:", money.Format2(st.Customer.MilkPrice))

	doc.Separator('-')

	// Days
	for _, e := range st.Entries {
		switch {
		case e.Liters() > 0:
			doc.Columns(dayOfMonth(e.Date), money.Format(e.Liters())+" L")
		case e.Note != "":
			doc.Columns(dayOfMonth(e.Date), e.Note)
		}
		for _, it := range e.OtherItems {
			doc.Columns("  "+it.Name, money.Format2(it.Price))
		}
	}

	doc.Separator('-')

	// Totals
	t := st.Totals
	doc.Columns("Milk:", money.Format(t.TotalMilkLiters)+" L").
		Columns("Milk amount:", money.Format2(t.MilkAmount)).
		Columns("Other items:", money.Format2(t.OtherAmount))
	doc.SetBold(true).
		Columns("TOTAL:", money.Format2(t.GrandTotal)).
		SetBold(false)

	if st.Payment.Paid {
		doc.Columns("Paid:", st.Payment.Method.Label())
		if st.Payment.Reference != "" {
			doc.Columns("Ref:", st.Payment.Reference)
		}
	} else {
		doc.Columns("Status:", "UNPAID")
	}

	doc.Separator('-')

	// Footer
	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Please pay your dues. Thank you!").
		LineFeed().
		SetAlign(printer.AlignLeft)

	doc.FeedLines(3).
		PartialCut()

	return doc.Bytes()
}

// dayOfMonth shortens YYYY-MM-DD to DD for the narrow slip.
func dayOfMonth(date string) string {
	if len(date) == len(timeutil.DateLayout) {
		return date[8:]
	}
	return date
}
