package entity

import (
	"github.com/sangkips/milk-ledger/pkg/money"
	"github.com/shopspring/decimal"
)

// MonthTotals is derived from a month's entries on every request and never
// stored.
type MonthTotals struct {
	TotalMilkLiters float64 `json:"total_milk_liters"`
	MilkAmount      float64 `json:"milk_amount"`
	OtherAmount     float64 `json:"other_amount"`
	GrandTotal      float64 `json:"grand_total"`
}

// ComputeTotals sums a month of entries at the given per-liter price. Each
// figure is rounded to 2 decimals once, at the end; the milk amount is
// computed from the unrounded liters and the grand total from the unrounded
// milk and other amounts.
func ComputeTotals(entries []DayEntry, milkPrice float64) MonthTotals {
	liters := decimal.Zero
	other := decimal.Zero
	for _, e := range entries {
		liters = liters.Add(money.FromFloat(e.AMQty)).Add(money.FromFloat(e.PMQty))
		for _, it := range e.OtherItems {
			other = other.Add(money.FromFloat(it.Price))
		}
	}

	milk := liters.Mul(money.FromFloat(milkPrice))

	return MonthTotals{
		TotalMilkLiters: money.Round2Dec(liters),
		MilkAmount:      money.Round2Dec(milk),
		OtherAmount:     money.Round2Dec(other),
		GrandTotal:      money.Round2Dec(milk.Add(other)),
	}
}
