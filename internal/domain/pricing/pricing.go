// Package pricing turns line item requests into priced line items and
// keeps invoice totals consistent with them. It has no side effects: amounts
// are exact decimals and are only rounded by the Format helpers.
package pricing

import (
	"strings"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/utils"
	"github.com/shopspring/decimal"
)

// TaxRate applies to taxable lines of customers that are not exempt.
var TaxRate = decimal.RequireFromString("0.07")

// LineRequest is a line item as entered by the operator.
type LineRequest struct {
	ProductID     string `json:"productId"`
	Quantity      string `json:"gallons"`
	PriceOverride string `json:"priceOverride,omitempty"`
}

// Totals are the aggregates of an invoice.
type Totals struct {
	Subtotal   decimal.Decimal `json:"subtotal"`
	TaxTotal   decimal.Decimal `json:"taxTotal"`
	GrandTotal decimal.Decimal `json:"grandTotal"`
}

// ParseQuantity parses a quantity that must be a finite number above zero.
func ParseQuantity(s string) (decimal.Decimal, error) {
	q, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, apperror.NewRejectedLineError("gallons", "quantity must be a number")
	}
	if !q.IsPositive() {
		return decimal.Zero, apperror.NewRejectedLineError("gallons", "quantity must be greater than zero")
	}
	return q, nil
}

// ParsePrice parses a unit price, which may be zero but not negative.
func ParsePrice(s string) (decimal.Decimal, error) {
	p, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero, apperror.NewRejectedLineError("priceOverride", "price must be a number")
	}
	if p.IsNegative() {
		return decimal.Zero, apperror.NewRejectedLineError("priceOverride", "price cannot be negative")
	}
	return p, nil
}

// PriceLine prices one line for a customer with the given exemption flag.
// A blank override uses the catalog price. The line is taxable only when the
// product is taxable and the customer is not exempt.
func PriceLine(product *entity.Product, taxExempt bool, req LineRequest) (*entity.LineItem, error) {
	if product == nil {
		return nil, apperror.NewRejectedLineError("productId", "product not found")
	}

	qty, err := ParseQuantity(req.Quantity)
	if err != nil {
		return nil, err
	}

	unit := product.PricePerGallon
	if strings.TrimSpace(req.PriceOverride) != "" {
		if unit, err = ParsePrice(req.PriceOverride); err != nil {
			return nil, err
		}
	}
	if unit.IsNegative() {
		return nil, apperror.NewRejectedLineError("pricePerGallon", "catalog price cannot be negative")
	}

	lineTotal := qty.Mul(unit)
	taxable := product.Taxable && !taxExempt
	lineTax := decimal.Zero
	if taxable {
		lineTax = lineTotal.Mul(TaxRate)
	}

	return &entity.LineItem{
		ID:             utils.NewID(),
		ProductID:      product.ID,
		ProductName:    product.DisplayName(),
		Gallons:        qty,
		PricePerGallon: unit,
		LineTotal:      lineTotal,
		Taxable:        taxable,
		LineTax:        lineTax,
	}, nil
}

// RecomputeTotals sums the whole line sequence from scratch.
func RecomputeTotals(items []entity.LineItem) Totals {
	subtotal := decimal.Zero
	taxTotal := decimal.Zero
	for _, li := range items {
		subtotal = subtotal.Add(li.LineTotal)
		taxTotal = taxTotal.Add(li.LineTax)
	}
	return Totals{
		Subtotal:   subtotal,
		TaxTotal:   taxTotal,
		GrandTotal: subtotal.Add(taxTotal),
	}
}

// ApplyTotals recomputes and stores the aggregates of inv.
func ApplyTotals(inv *entity.Invoice) Totals {
	t := RecomputeTotals(inv.LineItems)
	inv.Subtotal = t.Subtotal
	inv.TaxTotal = t.TaxTotal
	inv.GrandTotal = t.GrandTotal
	return t
}
