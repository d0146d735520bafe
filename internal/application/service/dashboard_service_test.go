package service

import (
	"context"
	"testing"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/enum"
)

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.seedCatalog(t)
	seedUsers(t, d)

	invoices := []entity.Invoice{
		{
			InvoiceNumber: "BO-260302-1001", Date: testNow.Add(-time.Hour), PaymentStatus: enum.PaymentStatusPaid,
			GrandTotal: dec("15.2475"),
			LineItems:  []entity.LineItem{{ProductID: "DYED", ProductName: "Dyed Diesel", Gallons: dec("5"), LineTotal: dec("14.25")}},
		},
		{
			InvoiceNumber: "BO-260302-1002", Date: testNow.Add(-2 * time.Hour),
			GrandTotal: dec("34.99"),
			LineItems:  []entity.LineItem{{ProductID: "REG87", ProductName: "Reg 87 No-Eth", Gallons: dec("10"), LineTotal: dec("34.99")}},
		},
		{
			InvoiceNumber: "BO-260227-1003", Date: testNow.AddDate(0, 0, -3),
			GrandTotal: dec("100"),
			LineItems:  []entity.LineItem{{ProductID: "REG87", ProductName: "Reg 87 No-Eth", Gallons: dec("25.5"), LineTotal: dec("100")}},
		},
	}
	for i := range invoices {
		invoices[i].Status = enum.InvoiceStatusCompleted
		if err := d.invoices.Insert(ctx, &invoices[i]); err != nil {
			t.Fatal(err)
		}
	}

	svc := NewDashboardService(d.invoices, d.customers, d.users)
	svc.now = func() time.Time { return testNow }

	stats, err := svc.GetDashboardStats(ctx)
	if err != nil {
		t.Fatalf("GetDashboardStats() error = %v", err)
	}

	checks := []struct {
		name      string
		got, want string
	}{
		{"today revenue", stats.TodayRevenue.String(), "50.24"},
		{"today gallons", stats.TodayGallons.String(), "15"},
		{"total revenue", stats.TotalRevenue.String(), "150.24"},
		{"total gallons", stats.TotalGallons.String(), "40.5"},
		{"unpaid total", stats.UnpaidTotal.String(), "134.99"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %s, want %s", c.name, c.got, c.want)
		}
	}
	if stats.TodayInvoices != 2 || stats.TotalInvoices != 3 || stats.UnpaidInvoices != 2 {
		t.Errorf("counts = today %d, total %d, unpaid %d", stats.TodayInvoices, stats.TotalInvoices, stats.UnpaidInvoices)
	}
	if stats.TotalCustomers != 2 || stats.TotalDrivers != 1 {
		t.Errorf("customers = %d, drivers = %d", stats.TotalCustomers, stats.TotalDrivers)
	}
	if len(stats.ProductGallons) != 2 || stats.ProductGallons[0].ProductID != "REG87" || stats.ProductGallons[0].Gallons.String() != "35.5" {
		t.Errorf("ProductGallons = %+v", stats.ProductGallons)
	}
	if len(stats.RecentInvoices) != 3 || stats.RecentInvoices[0].InvoiceNumber != "BO-260302-1001" {
		t.Errorf("RecentInvoices[0] = %s, want newest", stats.RecentInvoices[0].InvoiceNumber)
	}
}
