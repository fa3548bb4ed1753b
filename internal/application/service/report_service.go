package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/sangkips/milk-ledger/internal/domain/entity"
	"github.com/sangkips/milk-ledger/pkg/money"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet    = "Summary"
	DeliveriesSheet = "Deliveries"
)

var (
	summaryHeader = []interface{}{
		"Customer", "Phone", "Milk price", "Liters", "Milk amount",
		"Other items", "Grand total", "Paid", "Method", "Reference",
	}
	deliveriesHeader = []interface{}{
		"Customer", "Date", "AM (L)", "PM (L)", "Liters", "Other items", "Items amount", "Note",
	}
)

// ReportService builds monthly spreadsheets across all customers.
type ReportService struct {
	ledger *LedgerService
}

func NewReportService(ledger *LedgerService) *ReportService {
	return &ReportService{ledger: ledger}
}

// MonthlyWorkbook returns an XLSX file with a summary row per customer and
// a sheet listing every delivery of the month.
func (s *ReportService) MonthlyWorkbook(ctx context.Context, ym entity.YearMonth) ([]byte, error) {
	statements, err := s.ledger.MonthStatements(ctx, ym)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if _, err := f.NewSheet(DeliveriesSheet); err != nil {
		return nil, fmt.Errorf("failed to create deliveries sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, err
	}
	amountFmt := "0.00"
	amountStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &amountFmt})
	if err != nil {
		return nil, err
	}
	totalStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}, CustomNumFmt: &amountFmt})
	if err != nil {
		return nil, err
	}

	if err := writeSummary(f, statements, headerStyle, amountStyle, totalStyle); err != nil {
		return nil, err
	}
	if err := writeDeliveries(f, statements, headerStyle, amountStyle); err != nil {
		return nil, err
	}

	f.SetActiveSheet(0)
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, statements []entity.MonthStatement, headerStyle, amountStyle, totalStyle int) error {
	if err := f.SetSheetRow(SummarySheet, "A1", &summaryHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "J1", headerStyle); err != nil {
		return err
	}

	var liters, milk, other, grand float64
	row := 2
	for _, st := range statements {
		t := st.Totals
		paid := "No"
		if st.Payment.Paid {
			paid = "Yes"
		}
		values := []interface{}{
			st.Customer.Name,
			st.Customer.Phone,
			st.Customer.MilkPrice,
			t.TotalMilkLiters,
			t.MilkAmount,
			t.OtherAmount,
			t.GrandTotal,
			paid,
			st.Payment.Method.String(),
			st.Payment.Reference,
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(SummarySheet, cell, &values); err != nil {
			return err
		}
		liters += t.TotalMilkLiters
		milk += t.MilkAmount
		other += t.OtherAmount
		grand += t.GrandTotal
		row++
	}
	if row > 2 {
		if err := f.SetCellStyle(SummarySheet, "C2", fmt.Sprintf("G%d", row-1), amountStyle); err != nil {
			return err
		}
	}

	totals := []interface{}{
		"Total", "", "",
		money.Round2(liters), money.Round2(milk), money.Round2(other), money.Round2(grand),
	}
	cell, _ := excelize.CoordinatesToCellName(1, row)
	if err := f.SetSheetRow(SummarySheet, cell, &totals); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, cell, fmt.Sprintf("G%d", row), totalStyle); err != nil {
		return err
	}

	if err := f.SetColWidth(SummarySheet, "A", "B", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "C", "J", 13); err != nil {
		return err
	}
	return f.SetPanes(SummarySheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}

func writeDeliveries(f *excelize.File, statements []entity.MonthStatement, headerStyle, amountStyle int) error {
	if err := f.SetSheetRow(DeliveriesSheet, "A1", &deliveriesHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(DeliveriesSheet, "A1", "H1", headerStyle); err != nil {
		return err
	}

	row := 2
	for _, st := range statements {
		for _, e := range st.Entries {
			names := make([]string, 0, len(e.OtherItems))
			itemsAmount := 0.0
			for _, it := range e.OtherItems {
				names = append(names, it.Name)
				itemsAmount += money.Sanitize(it.Price)
			}
			values := []interface{}{
				st.Customer.Name,
				e.Date,
				money.Sanitize(e.AMQty),
				money.Sanitize(e.PMQty),
				money.Round2(e.Liters()),
				strings.Join(names, ", "),
				money.Round2(itemsAmount),
				e.Note,
			}
			cell, _ := excelize.CoordinatesToCellName(1, row)
			if err := f.SetSheetRow(DeliveriesSheet, cell, &values); err != nil {
				return err
			}
			if err := f.SetCellStyle(DeliveriesSheet, fmt.Sprintf("G%d", row), fmt.Sprintf("G%d", row), amountStyle); err != nil {
				return err
			}
			row++
		}
	}

	if err := f.SetColWidth(DeliveriesSheet, "A", "A", 20); err != nil {
		return err
	}
	if err := f.SetColWidth(DeliveriesSheet, "F", "F", 30); err != nil {
		return err
	}
	return f.SetPanes(DeliveriesSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"})
}
