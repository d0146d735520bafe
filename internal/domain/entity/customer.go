package entity

import "strings"

// Customer is a delivery customer, keyed by the account number carried over
// from the accounting system.
type Customer struct {
	AccountNumber string `json:"accountNumber"`
	Name          string `json:"name"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Zip           string `json:"zip"`
	Phone         string `json:"phone"`
	Email         string `json:"email"`
	TaxExempt     bool   `json:"taxExempt"`
	Notes         string `json:"notes"`
}

// FullAddress joins the non-empty address parts with ", ".
func (c *Customer) FullAddress() string {
	parts := make([]string, 0, 4)
	for _, p := range []string{c.Address, c.City, c.State, c.Zip} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}
