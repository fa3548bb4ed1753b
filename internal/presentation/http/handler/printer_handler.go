package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/milk-ledger/internal/application/service"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/request"
	"github.com/sangkips/milk-ledger/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus()
	response.OK(c, "Printer status retrieved", status)
}

// TestPrint sends a sample slip to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	statement, err := h.printerService.TestPrint()
	if err != nil {
		// Return the slip data anyway (useful when printer type is "none")
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"statement": statement,
			"warning":   err.Error(),
		})
		return
	}

	response.OK(c, "Test page sent to printer", gin.H{
		"statement": statement,
	})
}

// PrintBill prints the customer's monthly bill slip.
func (h *PrinterHandler) PrintBill(c *gin.Context) {
	var uri request.MonthURI
	if !bindURI(c, &uri) {
		return
	}

	statement, err := h.printerService.PrintMonthlyBill(c.Request.Context(), uri.ID, uri.YearMonth())
	if err != nil {
		// If the bill was built but printing failed, return it with a warning
		if statement != nil {
			response.OK(c, "Bill generated but printing failed", gin.H{
				"statement": statement,
				"warning":   err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Bill printed successfully", gin.H{
		"statement": statement,
	})
}
