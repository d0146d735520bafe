package entity

import "github.com/shopspring/decimal"

// Product is a fuel product sold by the gallon.
type Product struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	ShortName      string          `json:"shortName"`
	PricePerGallon decimal.Decimal `json:"pricePerGallon"`
	Taxable        bool            `json:"taxable"`
}

// DisplayName is the short name used on line items, falling back to the
// full name.
func (p *Product) DisplayName() string {
	if p.ShortName != "" {
		return p.ShortName
	}
	return p.Name
}
