package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/sangkips/milk-ledger/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestMonthlyWorkbook(t *testing.T) {
	ledger, _ := newLedgerService(t)
	ctx := context.Background()
	asha := seedMarch(t, ledger)
	bob, err := ledger.CreateCustomer(ctx, &CreateCustomerInput{Name: "Bob", Phone: "2", MilkPrice: 50})
	require.NoError(t, err)
	require.NoError(t, ledger.UpsertDayEntry(ctx, bob.ID, entity.DayEntry{Date: "2024-03-02", PMQty: 2}))
	require.NoError(t, ledger.MarkPaidCash(ctx, asha.ID, march))

	data, err := NewReportService(ledger).MonthlyWorkbook(ctx, march)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SummarySheet, DeliveriesSheet}, f.GetSheetList())

	raw := excelize.Options{RawCellValue: true}
	cell := func(sheet, ref string) string {
		v, err := f.GetCellValue(sheet, ref, raw)
		require.NoError(t, err)
		return v
	}

	assert.Equal(t, "Customer", cell(SummarySheet, "A1"))
	assert.Equal(t, "Asha", cell(SummarySheet, "A2"))
	assert.Equal(t, "95", cell(SummarySheet, "G2"))
	assert.Equal(t, "Yes", cell(SummarySheet, "H2"))
	assert.Equal(t, "cash", cell(SummarySheet, "I2"))
	assert.Equal(t, "Bob", cell(SummarySheet, "A3"))
	assert.Equal(t, "No", cell(SummarySheet, "H3"))
	assert.Equal(t, "Total", cell(SummarySheet, "A4"))
	assert.Equal(t, "3.5", cell(SummarySheet, "D4"))
	assert.Equal(t, "195", cell(SummarySheet, "G4"))

	assert.Equal(t, "2024-03-05", cell(DeliveriesSheet, "B2"))
	assert.Equal(t, "Bread", cell(DeliveriesSheet, "F2"))
	assert.Equal(t, "Bob", cell(DeliveriesSheet, "A3"))
	assert.Equal(t, "2", cell(DeliveriesSheet, "E3"))
}

func TestMonthlyWorkbookEmptyLedger(t *testing.T) {
	ledger, _ := newLedgerService(t)

	data, err := NewReportService(ledger).MonthlyWorkbook(context.Background(), march)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Total", rows[1][0])
}
