package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Account #":      "account",
		"account_number": "accountnumber",
		"AccountNumber":  "accountnumber",
		"E-mail Address": "emailaddress",
		" Zip Code ":     "zipcode",
	}
	for in, want := range tests {
		if got := NormalizeHeader(in); got != want {
			t.Errorf("NormalizeHeader(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestImportCustomersCSV(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := NewCustomerService(d.customers)

	csvText := "\ufeffAcct No,Customer Name,Street,City,State,Postal Code,Telephone,E-mail Address,Tax Exempt,Notes\n" +
		"1001,Lewis County Farm,12 Main St,Hohenwald,TN,38462,931-555-0100,farm@example.com,no,gate code 44\n" +
		"1002,Exempt Co-op,,,,,,,YES,\n" +
		",,,,,,,,,\n" +
		"1003,,1 Nowhere,,,,,,,\n" +
		"1004,Maybe Exempt,,,,,,,sometimes,\n" +
		"1001,Duplicate Farm,,,,,,,,\n" +
		",Walk-in Customer,,,,,,,,\n"

	result, err := svc.ImportCustomersCSV(ctx, strings.NewReader(csvText))
	if err != nil {
		t.Fatalf("ImportCustomersCSV() error = %v", err)
	}
	if result.TotalRows != 6 || result.Successful != 3 || result.Failed != 3 {
		t.Fatalf("result = %+v, want 6 rows, 3 successful, 3 failed", result)
	}

	wantErrors := []ImportRowError{
		{Row: 5, Field: "name"},
		{Row: 6, Field: "taxExempt"},
		{Row: 7, Field: "accountNumber"},
	}
	for i, want := range wantErrors {
		got := result.Errors[i]
		if got.Row != want.Row || got.Field != want.Field {
			t.Errorf("Errors[%d] = %+v, want row %d field %s", i, got, want.Row, want.Field)
		}
	}

	farm, err := svc.GetCustomer(ctx, "1001")
	if err != nil {
		t.Fatal(err)
	}
	if farm.Name != "Lewis County Farm" || farm.Address != "12 Main St" || farm.Zip != "38462" ||
		farm.Phone != "931-555-0100" || farm.Email != "farm@example.com" || farm.TaxExempt || farm.Notes != "gate code 44" {
		t.Errorf("imported customer = %+v", farm)
	}
	coop, err := svc.GetCustomer(ctx, "1002")
	if err != nil {
		t.Fatal(err)
	}
	if !coop.TaxExempt {
		t.Error("YES did not mark the customer exempt")
	}

	walkIns, err := d.customers.FindByName(ctx, "Walk-in Customer")
	if err != nil {
		t.Fatal(err)
	}
	if len(walkIns) != 1 || !strings.HasPrefix(walkIns[0].AccountNumber, "IMPORT-") || len(walkIns[0].AccountNumber) != len("IMPORT-")+6 {
		t.Errorf("generated account = %+v", walkIns)
	}
}

func TestImportCustomersRejectsFile(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := NewCustomerService(d.customers)

	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"no name column", "Account,City\n1,Hohenwald\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ImportCustomersCSV(ctx, strings.NewReader(tt.text))
			if !errors.Is(err, apperror.ErrBadRequest) {
				t.Errorf("ImportCustomersCSV() error = %v, want BadRequest", err)
			}
		})
	}
}

func TestImportCustomersXLSX(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := NewCustomerService(d.customers)

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	rows := [][]interface{}{
		{"Account", "Name", "Exempt"},
		{"7001", "Sheet Farm", "true"},
		{"7002", "Other Farm", ""},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		t.Fatal(err)
	}
	f.Close()

	result, err := svc.ImportCustomersXLSX(ctx, &buf)
	if err != nil {
		t.Fatalf("ImportCustomersXLSX() error = %v", err)
	}
	if result.Successful != 2 || result.Failed != 0 {
		t.Fatalf("result = %+v", result)
	}
	c, err := svc.GetCustomer(ctx, "7001")
	if err != nil {
		t.Fatal(err)
	}
	if !c.TaxExempt || c.Name != "Sheet Farm" {
		t.Errorf("customer = %+v", c)
	}
}
