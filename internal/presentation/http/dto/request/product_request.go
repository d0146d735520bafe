package request

// ProductRequest represents a product create or update request. Prices are
// kept as typed so no precision is lost in transit.
type ProductRequest struct {
	ID             string      `json:"id" binding:"omitempty,max=32"`
	Name           string      `json:"name" binding:"required,max=255"`
	ShortName      string      `json:"shortName" binding:"max=64"`
	PricePerGallon DecimalText `json:"pricePerGallon"`
	Taxable        bool        `json:"taxable"`
}

// UpdatePriceRequest sets the per-gallon price of a product
type UpdatePriceRequest struct {
	PricePerGallon DecimalText `json:"pricePerGallon"`
}
