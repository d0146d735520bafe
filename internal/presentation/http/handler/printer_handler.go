package handler

import (
	"net/http"

	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
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
	response.OK(c, "Printer status retrieved", h.printerService.GetStatus())
}

// TestPrint sends a test ticket to the printer.
func (h *PrinterHandler) TestPrint(c *gin.Context) {
	ticket, err := h.printerService.TestPrint(c.Request.Context())
	if err != nil {
		if ticket == nil {
			response.Error(c, err)
			return
		}
		// The ticket is still useful as a preview when printing is disabled
		response.OK(c, "Test print completed (printer may be disabled)", gin.H{
			"ticket":  ticket,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Test ticket sent to printer", gin.H{
		"ticket": ticket,
	})
}

// PrintInvoice prints the delivery ticket of a completed invoice.
func (h *PrinterHandler) PrintInvoice(c *gin.Context) {
	ticket, err := h.printerService.PrintInvoice(c.Request.Context(), c.Param("number"))
	if err != nil {
		if ticket == nil {
			response.Error(c, err)
			return
		}
		response.ErrorWithData(c, http.StatusBadGateway, "Ticket could not be printed", gin.H{
			"ticket":  ticket,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "Ticket sent to printer", gin.H{
		"ticket": ticket,
	})
}

// PreviewInvoice returns the delivery ticket without printing it.
func (h *PrinterHandler) PreviewInvoice(c *gin.Context) {
	ticket, err := h.printerService.PreviewInvoice(c.Request.Context(), c.Param("number"))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Ticket preview", gin.H{
		"ticket": ticket,
	})
}
