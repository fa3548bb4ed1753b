package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/milk-ledger/internal/application/service"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/response"
)

// BillHandler serves monthly bills as chat links and PDFs
type BillHandler struct {
	billService *service.BillService
}

// NewBillHandler creates a new bill handler
func NewBillHandler(billService *service.BillService) *BillHandler {
	return &BillHandler{billService: billService}
}

// Bill returns the bill text and the WhatsApp URL that carries it
func (h *BillHandler) Bill(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}

	bill, err := h.billService.GetBill(c.Request.Context(), uri.ID, uri.YearMonth())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill generated successfully", bill)
}

// PDF downloads the bill as a PDF document
func (h *BillHandler) PDF(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}

	data, err := h.billService.BillPDF(c.Request.Context(), uri.ID, uri.YearMonth())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, "bill-"+uri.ID+"-"+uri.Month+".pdf", "application/pdf", data)
}
