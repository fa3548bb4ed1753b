package response

import (
	"github.com/sangkips/milk-ledger/internal/domain/entity"
	"github.com/sangkips/milk-ledger/internal/domain/enum"
)

// MonthSummaryResponse is the ledger page for one customer and month
type MonthSummaryResponse struct {
	*entity.MonthStatement
	DeliveryDays int              `json:"delivery_days"`
	PrevMonth    entity.YearMonth `json:"prev_month"`
	NextMonth    entity.YearMonth `json:"next_month"`
	Role         enum.Role        `json:"role"`
	CanEditPrice bool             `json:"can_edit_price"`
}

func NewMonthSummaryResponse(st *entity.MonthStatement, role enum.Role) *MonthSummaryResponse {
	return &MonthSummaryResponse{
		MonthStatement: st,
		DeliveryDays:   st.DeliveryDays(),
		PrevMonth:      st.YearMonth.Prev(),
		NextMonth:      st.YearMonth.Next(),
		Role:           role,
		CanEditPrice:   role.CanEditPrice(),
	}
}

// ImportResponse reports the outcome of a ledger import
type ImportResponse struct {
	Customers int `json:"customers"`
	Dropped   int `json:"dropped"`
}
