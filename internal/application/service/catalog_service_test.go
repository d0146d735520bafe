package service

import (
	"context"
	"errors"
	"testing"

	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/pagination"
)

func TestCustomerService(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := NewCustomerService(d.customers)

	for _, in := range []CustomerInput{
		{AccountNumber: "1001", Name: "lewis County Farm"},
		{AccountNumber: "2002", Name: "Acme Fuel", TaxExempt: true},
		{AccountNumber: "3003", Name: "Zion Church"},
	} {
		in := in
		if _, err := svc.CreateCustomer(ctx, &in); err != nil {
			t.Fatalf("CreateCustomer(%s) error = %v", in.AccountNumber, err)
		}
	}
	if _, err := svc.CreateCustomer(ctx, &CustomerInput{AccountNumber: "1001", Name: "Again"}); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("CreateCustomer(duplicate) error = %v, want Conflict", err)
	}
	if _, err := svc.CreateCustomer(ctx, &CustomerInput{}); !errors.Is(err, apperror.ErrValidationFailed) {
		t.Errorf("CreateCustomer(empty) error = %v, want ValidationFailed", err)
	}

	page, err := svc.ListCustomers(ctx, &pagination.PaginationParams{Page: 1, PerPage: 10}, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 3 || page.Items[0].Name != "Acme Fuel" || page.Items[1].Name != "lewis County Farm" {
		t.Errorf("ListCustomers() not sorted by name: %+v", page.Items)
	}
	page, _ = svc.ListCustomers(ctx, nil, "300")
	if len(page.Items) != 1 || page.Items[0].AccountNumber != "3003" {
		t.Errorf("ListCustomers(search account) = %+v", page.Items)
	}

	updated, err := svc.UpdateCustomer(ctx, "2002", &CustomerInput{Name: "Acme Fuel LLC", City: "Hohenwald"})
	if err != nil {
		t.Fatal(err)
	}
	if updated.TaxExempt || updated.City != "Hohenwald" {
		t.Errorf("UpdateCustomer() = %+v", updated)
	}
	if _, err := svc.UpdateCustomer(ctx, "2002", &CustomerInput{AccountNumber: "9999", Name: "X"}); !errors.Is(err, apperror.ErrValidationFailed) {
		t.Errorf("changing account number error = %v, want ValidationFailed", err)
	}

	if err := svc.DeleteCustomer(ctx, "3003"); err != nil {
		t.Fatal(err)
	}
	if err := svc.DeleteCustomer(ctx, "3003"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeleteCustomer(missing) error = %v, want NotFound", err)
	}
}

func TestProductService(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.seedCatalog(t)
	svc := NewProductService(d.products)

	p, err := svc.CreateProduct(ctx, &ProductInput{ID: " def ", Name: "Diesel Exhaust Fluid", ShortName: "DEF", PricePerGallon: "4.5"})
	if err != nil {
		t.Fatalf("CreateProduct() error = %v", err)
	}
	if p.ID != "DEF" || !p.PricePerGallon.Equal(dec("4.5")) {
		t.Errorf("CreateProduct() = %+v", p)
	}
	if _, err := svc.CreateProduct(ctx, &ProductInput{ID: "DEF", Name: "Again"}); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("CreateProduct(duplicate) error = %v, want Conflict", err)
	}

	tests := []struct {
		price   string
		want    string
		wantErr bool
	}{
		{"3.459", "3.459", false},
		{"", "0", false},
		{"0", "0", false},
		{"-1", "", true},
		{"cheap", "", true},
	}
	for _, tt := range tests {
		got, err := svc.UpdatePrice(ctx, "DYED", tt.price)
		if tt.wantErr {
			if !errors.Is(err, apperror.ErrValidationFailed) {
				t.Errorf("UpdatePrice(%q) error = %v, want ValidationFailed", tt.price, err)
			}
			continue
		}
		if err != nil {
			t.Fatalf("UpdatePrice(%q) error = %v", tt.price, err)
		}
		if !got.PricePerGallon.Equal(dec(tt.want)) {
			t.Errorf("UpdatePrice(%q) = %s, want %s", tt.price, got.PricePerGallon, tt.want)
		}
	}

	if _, err := svc.UpdateProduct(ctx, "DYED", &ProductInput{ID: "OTHER", Name: "Dyed"}); !errors.Is(err, apperror.ErrValidationFailed) {
		t.Errorf("changing product id error = %v, want ValidationFailed", err)
	}
	if err := svc.DeleteProduct(ctx, "DEF"); err != nil {
		t.Fatal(err)
	}
	products, _ := svc.ListProducts(ctx)
	if len(products) != 2 {
		t.Errorf("ListProducts() = %d, want 2", len(products))
	}
}
