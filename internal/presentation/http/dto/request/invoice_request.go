package request

// SelectCustomerRequest sets the customer of a draft
type SelectCustomerRequest struct {
	AccountNumber string `json:"accountNumber" binding:"required"`
}

// AddLineRequest adds a product line to a draft
type AddLineRequest struct {
	ProductID     string      `json:"productId" binding:"required"`
	Gallons       DecimalText `json:"gallons"`
	PriceOverride DecimalText `json:"priceOverride"`
}

// DraftDetailsRequest updates delivery and payment fields of a draft.
// Omitted fields are left unchanged.
type DraftDetailsRequest struct {
	PONumber          *string `json:"poNumber"`
	TicketNumber      *string `json:"ticketNumber"`
	TankReadingBefore *string `json:"tankReadingBefore"`
	TankReadingAfter  *string `json:"tankReadingAfter"`
	DeliveryNotes     *string `json:"deliveryNotes"`
	PaymentStatus     *string `json:"paymentStatus" binding:"omitempty,oneof=invoice paid"`
	PaymentMethod     *string `json:"paymentMethod" binding:"omitempty,oneof=cash check card"`
	PaymentRef        *string `json:"paymentRef"`
	Signature         *string `json:"signature"`
}

// InvoiceFilterRequest represents invoice history parameters. Dates are
// YYYY-MM-DD in the device's local time zone.
type InvoiceFilterRequest struct {
	Search     string `form:"search"`
	CustomerID string `form:"customer_id"`
	DriverID   string `form:"driver_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
