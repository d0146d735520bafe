package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/barberoil/fuelpos/pkg/apperror"
)

type recordingPrinter struct {
	jobs [][]byte
	err  error
}

func (p *recordingPrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, append([]byte(nil), data...))
	return nil
}

func (p *recordingPrinter) Close() error      { return nil }
func (p *recordingPrinter) IsConnected() bool { return p.err == nil }

func ticketInvoice() *entity.Invoice {
	return &entity.Invoice{
		InvoiceNumber:     "BO-260302-4321",
		Date:              testNow,
		Status:            enum.InvoiceStatusCompleted,
		DriverName:        "Driver 1",
		CustomerID:        "1001",
		CustomerName:      "Lewis County Farm",
		CustomerAddress:   "12 Main St, Hohenwald, TN",
		PONumber:          "PO-7",
		TankReadingBefore: "20%",
		TankReadingAfter:  "85%",
		LineItems: []entity.LineItem{
			{ProductName: "Dyed Diesel", Gallons: dec("5"), PricePerGallon: dec("2.85"), LineTotal: dec("14.25"), Taxable: true, LineTax: dec("0.9975")},
		},
		Subtotal:      dec("14.25"),
		TaxTotal:      dec("0.9975"),
		GrandTotal:    dec("15.2475"),
		PaymentStatus: enum.PaymentStatusPaid,
		PaymentMethod: enum.PaymentMethodCheck,
		PaymentRef:    "5521",
		Signature:     "data:image/png;base64,AAAA",
	}
}

func TestBuildTicket(t *testing.T) {
	ticket := BuildTicket(ticketInvoice(), &entity.BusinessProfile{Name: "Barber Oil", Location: "Hohenwald, Tennessee"})

	if ticket.Total != "$15.25" || ticket.Tax != "$1.00" || ticket.Subtotal != "$14.25" {
		t.Errorf("amounts = %s/%s/%s", ticket.Subtotal, ticket.Tax, ticket.Total)
	}
	if ticket.Payment != "Paid - check #5521" {
		t.Errorf("Payment = %q", ticket.Payment)
	}
	if ticket.Date != "03/02/2026 10:30 AM" {
		t.Errorf("Date = %q", ticket.Date)
	}
	line := ticket.Lines[0]
	if line.Gallons != "5.0" || line.PricePerGallon != "2.850" || line.Amount != "14.25" || !line.Taxable {
		t.Errorf("line = %+v", line)
	}
	if !ticket.Signed || ticket.Header.BusinessName != "Barber Oil" {
		t.Errorf("ticket = %+v", ticket)
	}

	unpaid := ticketInvoice()
	unpaid.PaymentStatus = enum.PaymentStatusInvoice
	if got := BuildTicket(unpaid, &entity.BusinessProfile{}).Payment; got != "Invoice - Bill Later" {
		t.Errorf("unpaid Payment = %q", got)
	}
}

func TestFormatTicket(t *testing.T) {
	data := FormatTicket(BuildTicket(ticketInvoice(), &entity.BusinessProfile{Name: "Barber Oil"}), 32)

	for _, want := range []string{
		"Barber Oil\n",
		"Invoice:          BO-260302-4321\n",
		"Dyed Diesel *\n",
		"  5.0 gal @ 2.850          14.25\n",
		"TOTAL:                    $15.25\n",
		"Tax (7%):                  $1.00\n",
		"Signature on file\n",
	} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("ticket is missing %q", want)
		}
	}
	if !bytes.HasSuffix(data, []byte{0x1D, 'V', 0x01}) {
		t.Error("ticket does not end with a partial cut")
	}
}

func TestPrintInvoice(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	inv := ticketInvoice()
	if err := d.invoices.Insert(ctx, inv); err != nil {
		t.Fatal(err)
	}

	p := &recordingPrinter{}
	settings := NewSettingsService(d.settings, entity.BusinessProfile{Name: "Barber Oil"})
	svc := NewPrinterService(p, d.invoiceService(), settings, "usb", 0)

	ticket, err := svc.PrintInvoice(ctx, inv.InvoiceNumber)
	if err != nil {
		t.Fatalf("PrintInvoice() error = %v", err)
	}
	if len(p.jobs) != 1 || ticket.InvoiceNumber != inv.InvoiceNumber {
		t.Errorf("jobs = %d, ticket = %s", len(p.jobs), ticket.InvoiceNumber)
	}
	if _, err := svc.PrintInvoice(ctx, "BO-000000-0000"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("PrintInvoice(missing) error = %v, want NotFound", err)
	}

	p.err = errors.New("paper out")
	ticket, err = svc.PrintInvoice(ctx, inv.InvoiceNumber)
	if err == nil || ticket == nil {
		t.Errorf("PrintInvoice() with failing printer = %v, %v; want ticket and error", ticket, err)
	}

	status := svc.GetStatus()
	if !status.Configured || status.Connected || status.Width != 32 {
		t.Errorf("GetStatus() = %+v", status)
	}
}
