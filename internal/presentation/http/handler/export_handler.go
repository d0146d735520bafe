package handler

import (
	"bytes"
	"context"
	"io"
	"strconv"
	"time"

	"github.com/barberoil/fuelpos/internal/application/service"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/request"
	"github.com/barberoil/fuelpos/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves invoice exports for bookkeeping
type ExportHandler struct {
	exportService *service.ExportService
}

// NewExportHandler creates a new export handler
func NewExportHandler(exportService *service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// CSV downloads the filtered invoices as CSV
func (h *ExportHandler) CSV(c *gin.Context) {
	h.export(c, "csv", "text/csv; charset=utf-8", h.exportService.WriteCSV)
}

// XLSX downloads the filtered invoices as a workbook
func (h *ExportHandler) XLSX(c *gin.Context) {
	h.export(c, "xlsx", xlsxContentType, h.exportService.WriteXLSX)
}

type exportWriter func(ctx context.Context, w io.Writer, filter *service.InvoiceFilter) (int, error)

func (h *ExportHandler) export(c *gin.Context, ext, contentType string, write exportWriter) {
	var req request.InvoiceFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, "Invalid query: "+err.Error())
		return
	}
	filter, err := toInvoiceFilter(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	var buf bytes.Buffer
	rows, err := write(c.Request.Context(), &buf, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Header("X-Export-Rows", strconv.Itoa(rows))
	response.Attachment(c, service.ExportFileName(time.Now(), ext), contentType, buf.Bytes())
}
