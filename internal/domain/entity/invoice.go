package entity

import (
	"time"

	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/shopspring/decimal"
)

// Invoice is a delivery invoice. Customer fields are a snapshot taken when
// the customer was selected and do not follow later edits of the customer.
type Invoice struct {
	InvoiceNumber string             `json:"invoiceNumber"`
	Date          time.Time          `json:"date"`
	Status        enum.InvoiceStatus `json:"status"`

	DriverID   string `json:"driverId"`
	DriverName string `json:"driverName"`

	CustomerID        string `json:"customerId"`
	CustomerName      string `json:"customerName"`
	CustomerAddress   string `json:"customerAddress"`
	CustomerPhone     string `json:"customerPhone"`
	CustomerEmail     string `json:"customerEmail"`
	CustomerTaxExempt bool   `json:"customerTaxExempt"`

	LineItems  []LineItem      `json:"lineItems"`
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxTotal   decimal.Decimal `json:"taxTotal"`
	GrandTotal decimal.Decimal `json:"grandTotal"`

	PONumber          string `json:"poNumber"`
	TicketNumber      string `json:"ticketNumber"`
	TankReadingBefore string `json:"tankReadingBefore"`
	TankReadingAfter  string `json:"tankReadingAfter"`
	DeliveryNotes     string `json:"deliveryNotes"`

	PaymentStatus enum.PaymentStatus `json:"paymentStatus"`
	PaymentMethod enum.PaymentMethod `json:"paymentMethod"`
	PaymentRef    string             `json:"paymentRef"`

	// Signature is an opaque image, usually a PNG data URL.
	Signature string `json:"signature"`
}

// IsCompleted reports whether the invoice has been saved for good.
func (inv *Invoice) IsCompleted() bool {
	return inv.Status == enum.InvoiceStatusCompleted
}

// Gallons is the total quantity delivered.
func (inv *Invoice) Gallons() decimal.Decimal {
	total := decimal.Zero
	for _, li := range inv.LineItems {
		total = total.Add(li.Gallons)
	}
	return total
}

// LineItem is one priced product on an invoice.
type LineItem struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"productId"`
	ProductName    string          `json:"productName"`
	Gallons        decimal.Decimal `json:"gallons"`
	PricePerGallon decimal.Decimal `json:"pricePerGallon"`
	LineTotal      decimal.Decimal `json:"lineTotal"`
	Taxable        bool            `json:"taxable"`
	LineTax        decimal.Decimal `json:"lineTax"`
}
