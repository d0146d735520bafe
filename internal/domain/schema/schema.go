// Package schema declares the record collections the store manages.
package schema

import (
	"fmt"
	"slices"
)

// Collection names
const (
	Customers = "customers"
	Products  = "products"
	Invoices  = "invoices"
	Users     = "users"
	Settings  = "settings"
)

// Name and Version of the default schema.
const (
	Name    = "BarberOilDB"
	Version = 3
)

// Collection describes one named collection: the JSON field holding its
// primary key and the fields carrying a secondary index.
type Collection struct {
	Name    string   `json:"name"`
	KeyPath string   `json:"keyPath"`
	Indexes []string `json:"indexes,omitempty"`
}

// HasIndex reports whether field is indexed in the collection.
func (c Collection) HasIndex(field string) bool {
	return slices.Contains(c.Indexes, field)
}

// Schema is a declarative descriptor applied by the store on open.
type Schema struct {
	Name        string
	Version     int
	Collections []Collection
}

// Default returns the schema of the point-of-sale database.
func Default() Schema {
	return Schema{
		Name:    Name,
		Version: Version,
		Collections: []Collection{
			{Name: Customers, KeyPath: "accountNumber", Indexes: []string{"name"}},
			{Name: Products, KeyPath: "id"},
			{Name: Invoices, KeyPath: "invoiceNumber", Indexes: []string{"customerId", "date", "driverId"}},
			{Name: Users, KeyPath: "id"},
			{Name: Settings, KeyPath: "key"},
		},
	}
}

// Lookup returns the named collection.
func (s Schema) Lookup(name string) (Collection, bool) {
	for _, c := range s.Collections {
		if c.Name == name {
			return c, true
		}
	}
	return Collection{}, false
}

// Validate checks the descriptor is well formed.
func (s Schema) Validate() error {
	if s.Version < 1 {
		return fmt.Errorf("schema %q: version must be positive, got %d", s.Name, s.Version)
	}
	seen := make(map[string]bool, len(s.Collections))
	for _, c := range s.Collections {
		if c.Name == "" {
			return fmt.Errorf("schema %q: collection without a name", s.Name)
		}
		if seen[c.Name] {
			return fmt.Errorf("schema %q: duplicate collection %q", s.Name, c.Name)
		}
		seen[c.Name] = true
		if c.KeyPath == "" {
			return fmt.Errorf("schema %q: collection %q has no key path", s.Name, c.Name)
		}
		for _, idx := range c.Indexes {
			if idx == "" || idx == c.KeyPath {
				return fmt.Errorf("schema %q: collection %q has invalid index %q", s.Name, c.Name, idx)
			}
		}
	}
	return nil
}
