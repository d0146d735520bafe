package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/barberoil/fuelpos/internal/domain/pricing"
	"github.com/barberoil/fuelpos/pkg/printer"
	"github.com/shopspring/decimal"
)

const ticketDateLayout = "01/02/2006 3:04 PM"

// PrinterService composes delivery tickets and sends them to the thermal
// printer.
type PrinterService struct {
	printer         printer.Printer
	invoiceService  *InvoiceService
	settingsService *SettingsService
	printerType     string
	width           int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	invoiceService *InvoiceService,
	settingsService *SettingsService,
	printerType string,
	width int,
) *PrinterService {
	if width <= 0 {
		width = printer.DefaultWidth
	}
	return &PrinterService{
		printer:         p,
		invoiceService:  invoiceService,
		settingsService: settingsService,
		printerType:     printerType,
		width:           width,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
	Width      int    `json:"width"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != printer.TypeNone && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
		Width:      s.width,
	}
}

// TestPrint prints a sample ticket. The ticket is returned even when
// printing fails so it can be previewed.
func (s *PrinterService) TestPrint(ctx context.Context) (*entity.DeliveryTicket, error) {
	profile, err := s.settingsService.GetBusinessProfile(ctx)
	if err != nil {
		return nil, err
	}

	sample := &entity.Invoice{
		InvoiceNumber: "BO-TEST-0000",
		Date:          time.Now(),
		Status:        enum.InvoiceStatusCompleted,
		DriverName:    "System",
		CustomerID:    "TEST",
		CustomerName:  "PRINTER TEST",
		LineItems: []entity.LineItem{{
			ProductID:      "TEST",
			ProductName:    "Test Product",
			Gallons:        decimal.NewFromInt(1),
			PricePerGallon: decimal.Zero,
			LineTotal:      decimal.Zero,
			LineTax:        decimal.Zero,
		}},
	}
	pricing.ApplyTotals(sample)

	ticket := BuildTicket(sample, profile)
	if err := s.printer.Print(FormatTicket(ticket, s.width)); err != nil {
		return ticket, fmt.Errorf("test print failed: %w", err)
	}
	return ticket, nil
}

// PrintInvoice prints the delivery ticket of a completed invoice.
func (s *PrinterService) PrintInvoice(ctx context.Context, invoiceNumber string) (*entity.DeliveryTicket, error) {
	inv, err := s.invoiceService.GetInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	profile, err := s.settingsService.GetBusinessProfile(ctx)
	if err != nil {
		return nil, err
	}

	ticket := BuildTicket(inv, profile)
	if err := s.printer.Print(FormatTicket(ticket, s.width)); err != nil {
		log.Printf("Printer error (invoice %s): %v", invoiceNumber, err)
		return ticket, fmt.Errorf("failed to print ticket: %w", err)
	}
	return ticket, nil
}

// PreviewInvoice composes the delivery ticket without printing it.
func (s *PrinterService) PreviewInvoice(ctx context.Context, invoiceNumber string) (*entity.DeliveryTicket, error) {
	inv, err := s.invoiceService.GetInvoice(ctx, invoiceNumber)
	if err != nil {
		return nil, err
	}
	profile, err := s.settingsService.GetBusinessProfile(ctx)
	if err != nil {
		return nil, err
	}
	return BuildTicket(inv, profile), nil
}

// BuildTicket composes the printable ticket of an invoice. Amounts are
// rounded here and nowhere earlier.
func BuildTicket(inv *entity.Invoice, profile *entity.BusinessProfile) *entity.DeliveryTicket {
	ticket := &entity.DeliveryTicket{
		Header: entity.TicketHeader{
			BusinessName: profile.Name,
			Location:     profile.Location,
			Phone:        profile.Phone,
		},
		InvoiceNumber:   inv.InvoiceNumber,
		Date:            inv.Date.Format(ticketDateLayout),
		Driver:          inv.DriverName,
		Customer:        inv.CustomerName,
		AccountNumber:   inv.CustomerID,
		CustomerAddress: inv.CustomerAddress,
		TaxExempt:       inv.CustomerTaxExempt,
		PONumber:        inv.PONumber,
		TicketNumber:    inv.TicketNumber,
		TankBefore:      inv.TankReadingBefore,
		TankAfter:       inv.TankReadingAfter,
		Subtotal:        pricing.FormatMoney(inv.Subtotal),
		Tax:             pricing.FormatMoney(inv.TaxTotal),
		Total:           pricing.FormatMoney(inv.GrandTotal),
		Payment:         paymentLabel(inv),
		Notes:           inv.DeliveryNotes,
		Signed:          inv.Signature != "",
		Lines:           make([]entity.TicketLine, 0, len(inv.LineItems)),
	}
	for _, li := range inv.LineItems {
		ticket.Lines = append(ticket.Lines, entity.TicketLine{
			Product:        li.ProductName,
			Gallons:        pricing.FormatGallons(li.Gallons),
			PricePerGallon: pricing.FormatPrice(li.PricePerGallon),
			Amount:         pricing.FormatAmount(li.LineTotal),
			Taxable:        li.Taxable,
		})
	}
	return ticket
}

func paymentLabel(inv *entity.Invoice) string {
	label := inv.PaymentStatus.Label()
	if inv.PaymentStatus != enum.PaymentStatusPaid || inv.PaymentMethod == enum.PaymentMethodNone {
		return label
	}
	label += " - " + string(inv.PaymentMethod)
	if inv.PaymentRef != "" {
		label += " #" + inv.PaymentRef
	}
	return label
}

// FormatTicket converts a DeliveryTicket into ESC/POS bytes.
func FormatTicket(t *entity.DeliveryTicket, width int) []byte {
	doc := printer.NewDocument(width)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(t.Header.BusinessName).
		SetFontSize(printer.FontNormal).
		SetBold(false)
	if t.Header.Location != "" {
		doc.Text(t.Header.Location)
	}
	if t.Header.Phone != "" {
		doc.Text(t.Header.Phone)
	}
	doc.Text("DELIVERY TICKET").
		SetAlign(printer.AlignLeft).
		Separator('-')

	doc.KeyValue("Invoice:", t.InvoiceNumber).
		KeyValue("Date:", t.Date)
	if t.Driver != "" {
		doc.KeyValue("Driver:", t.Driver)
	}
	doc.Separator('-').
		SetBold(true).
		Wrap(t.Customer).
		SetBold(false).
		KeyValue("Account:", t.AccountNumber)
	if t.CustomerAddress != "" {
		doc.Wrap(t.CustomerAddress)
	}
	if t.TaxExempt {
		doc.Text("TAX EXEMPT")
	}
	if t.PONumber != "" {
		doc.KeyValue("PO #:", t.PONumber)
	}
	if t.TicketNumber != "" {
		doc.KeyValue("Ticket #:", t.TicketNumber)
	}
	if t.TankBefore != "" || t.TankAfter != "" {
		doc.KeyValue("Tank before:", t.TankBefore).
			KeyValue("Tank after:", t.TankAfter)
	}

	doc.Separator('-')
	taxed := false
	for _, line := range t.Lines {
		name := line.Product
		if line.Taxable {
			name += " *"
			taxed = true
		}
		doc.ItemLine(name, line.Gallons+" gal", line.PricePerGallon, line.Amount)
	}
	doc.Separator('-')

	doc.KeyValue("Subtotal:", t.Subtotal)
	if taxed {
		doc.KeyValue("Tax (7%):", t.Tax)
	}
	doc.SetBold(true).
		KeyValue("TOTAL:", t.Total).
		SetBold(false).
		KeyValue("Payment:", t.Payment)
	if taxed {
		doc.Text("* taxable")
	}

	if t.Notes != "" {
		doc.Separator('-').
			Wrap(t.Notes)
	}

	doc.Separator('-')
	if t.Signed {
		doc.Text("Signature on file")
	} else {
		doc.LineFeed().
			Text("X" + strings.Repeat("_", doc.Width()-1))
	}

	doc.SetAlign(printer.AlignCenter).
		LineFeed().
		Text("Thank you for your business!").
		SetAlign(printer.AlignLeft).
		FeedLines(3).
		PartialCut()

	return doc.Bytes()
}
