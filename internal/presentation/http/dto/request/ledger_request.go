package request

import (
	"github.com/sangkips/milk-ledger/internal/domain/entity"
	"github.com/sangkips/milk-ledger/internal/domain/enum"
)

// MonthURI binds /customers/:id/months/:month
type MonthURI struct {
	ID    string `uri:"id" binding:"required"`
	Month string `uri:"month" binding:"required,yearmonth"`
}

// YearMonth is only valid after binding succeeded.
func (u MonthURI) YearMonth() entity.YearMonth {
	return entity.MustYearMonth(u.Month)
}

// ReportURI binds /reports/:month
type ReportURI struct {
	Month string `uri:"month" binding:"required,yearmonth"`
}

func (u ReportURI) YearMonth() entity.YearMonth {
	return entity.MustYearMonth(u.Month)
}

// EntryURI binds /customers/:id/entries/:date and its item routes
type EntryURI struct {
	ID     string `uri:"id" binding:"required"`
	Date   string `uri:"date" binding:"required,isodate"`
	ItemID string `uri:"item_id"`
}

// OtherItemRequest is one extra item on a day. Items without an id get one.
type OtherItemRequest struct {
	ID    string  `json:"id" binding:"omitempty,max=64"`
	Name  string  `json:"name" binding:"max=100"`
	Price float64 `json:"price" binding:"min=0"`
}

// DayEntryRequest replaces everything recorded for one date
type DayEntryRequest struct {
	AMQty      float64            `json:"am_qty" binding:"min=0"`
	PMQty      float64            `json:"pm_qty" binding:"min=0"`
	OtherItems []OtherItemRequest `json:"other_items" binding:"omitempty,dive"`
	Note       string             `json:"note" binding:"max=255"`
}

func (r DayEntryRequest) ToEntity(date string) entity.DayEntry {
	items := make([]entity.OtherItem, 0, len(r.OtherItems))
	for _, it := range r.OtherItems {
		items = append(items, entity.OtherItem{ID: it.ID, Name: it.Name, Price: it.Price})
	}
	return entity.DayEntry{
		Date:       date,
		AMQty:      r.AMQty,
		PMQty:      r.PMQty,
		OtherItems: items,
		Note:       r.Note,
	}
}

// PaymentPatchRequest represents a partial payment update. An empty method
// or reference clears the stored value; omitting it leaves it unchanged.
type PaymentPatchRequest struct {
	Paid      *bool               `json:"paid"`
	Method    *enum.PaymentMethod `json:"method"`
	Reference *string             `json:"reference" binding:"omitempty,max=128"`
}

func (r PaymentPatchRequest) ToPatch() entity.PaymentPatch {
	return entity.PaymentPatch{
		Paid:      r.Paid,
		Method:    r.Method,
		Reference: r.Reference,
	}
}

// OnlinePaymentRequest carries the optional transaction reference for an
// online payment.
type OnlinePaymentRequest struct {
	Reference string `json:"reference" binding:"max=128"`
}
