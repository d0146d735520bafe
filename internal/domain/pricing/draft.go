package pricing

import (
	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/pkg/apperror"
)

// SelectCustomer snapshots the customer's contact and exemption fields into
// inv. Lines already on the invoice keep the taxability they were added with.
func SelectCustomer(inv *entity.Invoice, c *entity.Customer) {
	inv.CustomerID = c.AccountNumber
	inv.CustomerName = c.Name
	inv.CustomerAddress = c.FullAddress()
	inv.CustomerPhone = c.Phone
	inv.CustomerEmail = c.Email
	inv.CustomerTaxExempt = c.TaxExempt
}

// AddLine prices req against product for the invoice's current customer and
// appends it.
func AddLine(inv *entity.Invoice, product *entity.Product, req LineRequest) (*entity.LineItem, error) {
	item, err := PriceLine(product, inv.CustomerTaxExempt, req)
	if err != nil {
		return nil, err
	}
	inv.LineItems = append(inv.LineItems, *item)
	ApplyTotals(inv)
	return item, nil
}

// RemoveLine drops the line with the given id.
func RemoveLine(inv *entity.Invoice, lineID string) error {
	for i := range inv.LineItems {
		if inv.LineItems[i].ID == lineID {
			inv.LineItems = append(inv.LineItems[:i:i], inv.LineItems[i+1:]...)
			ApplyTotals(inv)
			return nil
		}
	}
	return apperror.NewNotFoundError("Line item")
}
