package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/pricing"
	"github.com/xuri/excelize/v2"
)

// ExportHeaders are the columns of the invoice export.
var ExportHeaders = []string{
	"InvoiceNumber", "Date", "CustomerName", "AccountNumber", "Product", "Gallons",
	"PricePerGallon", "LineTotal", "Tax", "GrandTotal", "PaymentStatus", "Driver",
}

const exportSheet = "Invoices"

// ExportService writes completed invoices as CSV or XLSX for accounting
type ExportService struct {
	invoiceService *InvoiceService
}

// NewExportService creates a new export service
func NewExportService(invoiceService *InvoiceService) *ExportService {
	return &ExportService{invoiceService: invoiceService}
}

// ExportFileName is the default download name, e.g.
// barber-oil-invoices-2026-03-02.csv
func ExportFileName(now time.Time, ext string) string {
	return fmt.Sprintf("barber-oil-invoices-%s.%s", now.Format("2006-01-02"), ext)
}

// ExportRows flattens invoices into one row per line item, oldest invoice
// first. Money is rounded to cents and unit prices to three places.
func ExportRows(invoices []entity.Invoice) [][]string {
	sorted := make([]entity.Invoice, len(invoices))
	copy(sorted, invoices)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.Before(sorted[j].Date)
	})

	var rows [][]string
	for _, inv := range sorted {
		for _, li := range inv.LineItems {
			rows = append(rows, []string{
				inv.InvoiceNumber,
				inv.Date.UTC().Format(time.RFC3339),
				inv.CustomerName,
				inv.CustomerID,
				li.ProductName,
				li.Gallons.String(),
				pricing.FormatPrice(li.PricePerGallon),
				pricing.FormatAmount(li.LineTotal),
				pricing.FormatAmount(li.LineTax),
				pricing.FormatAmount(inv.GrandTotal),
				inv.PaymentStatus.String(),
				inv.DriverName,
			})
		}
	}
	return rows
}

// Rows loads the invoices matching filter and flattens them
func (s *ExportService) Rows(ctx context.Context, filter *InvoiceFilter) ([][]string, error) {
	invoices, err := s.invoiceService.FilterInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}
	return ExportRows(invoices), nil
}

// WriteCSV writes the export as CSV to w
func (s *ExportService) WriteCSV(ctx context.Context, w io.Writer, filter *InvoiceFilter) (int, error) {
	rows, err := s.Rows(ctx, filter)
	if err != nil {
		return 0, err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeaders); err != nil {
		return 0, err
	}
	if err := cw.WriteAll(rows); err != nil {
		return 0, err
	}
	return len(rows), nil
}

// WriteXLSX writes the export as an Excel workbook to w
func (s *ExportService) WriteXLSX(ctx context.Context, w io.Writer, filter *InvoiceFilter) (int, error) {
	rows, err := s.Rows(ctx, filter)
	if err != nil {
		return 0, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return 0, err
	}
	sw, err := f.NewStreamWriter(exportSheet)
	if err != nil {
		return 0, err
	}

	header := make([]interface{}, len(ExportHeaders))
	for i, h := range ExportHeaders {
		header[i] = h
	}
	if err := sw.SetRow("A1", header); err != nil {
		return 0, err
	}
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return 0, err
		}
		if err := sw.SetRow(cell, cells); err != nil {
			return 0, err
		}
	}
	if err := sw.Flush(); err != nil {
		return 0, err
	}

	if _, err := f.WriteTo(w); err != nil {
		return 0, err
	}
	return len(rows), nil
}
