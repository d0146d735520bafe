package entity

// TicketHeader is the business block at the top of a delivery ticket.
type TicketHeader struct {
	BusinessName string `json:"businessName"`
	Location     string `json:"location,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// TicketLine is a line item formatted for print.
type TicketLine struct {
	Product        string `json:"product"`
	Gallons        string `json:"gallons"`
	PricePerGallon string `json:"pricePerGallon"`
	Amount         string `json:"amount"`
	Taxable        bool   `json:"taxable"`
}

// DeliveryTicket is a value object composed from a completed invoice at
// print time. Every amount is already rounded for display.
type DeliveryTicket struct {
	Header          TicketHeader `json:"header"`
	InvoiceNumber   string       `json:"invoiceNumber"`
	Date            string       `json:"date"`
	Driver          string       `json:"driver,omitempty"`
	Customer        string       `json:"customer"`
	AccountNumber   string       `json:"accountNumber"`
	CustomerAddress string       `json:"customerAddress,omitempty"`
	TaxExempt       bool         `json:"taxExempt"`
	PONumber        string       `json:"poNumber,omitempty"`
	TicketNumber    string       `json:"ticketNumber,omitempty"`
	TankBefore      string       `json:"tankBefore,omitempty"`
	TankAfter       string       `json:"tankAfter,omitempty"`
	Lines           []TicketLine `json:"lines"`
	Subtotal        string       `json:"subtotal"`
	Tax             string       `json:"tax"`
	Total           string       `json:"total"`
	Payment         string       `json:"payment"`
	Notes           string       `json:"notes,omitempty"`
	Signed          bool         `json:"signed"`
}
