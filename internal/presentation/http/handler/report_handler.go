package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/milk-ledger/internal/application/service"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportHandler serves ledger-wide reports
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// Workbook downloads the month's XLSX report for every customer
func (h *ReportHandler) Workbook(c *gin.Context) {
	var uri request.ReportURI
	if !bindURI(c, &uri) {
		return
	}

	data, err := h.reportService.MonthlyWorkbook(c.Request.Context(), uri.YearMonth())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Attachment(c, "ledger-"+uri.Month+".xlsx", xlsxContentType, data)
}
