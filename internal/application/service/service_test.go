package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	domainRepo "github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/internal/infrastructure/repository"
	"github.com/barberoil/fuelpos/internal/infrastructure/store"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testDeps struct {
	store     *store.Store
	customers domainRepo.CustomerRepository
	products  domainRepo.ProductRepository
	invoices  domainRepo.InvoiceRepository
	users     domainRepo.UserRepository
	settings  domainRepo.SettingsRepository
}

var testNow = time.Date(2026, 3, 2, 10, 30, 0, 0, time.Local)

func newTestDeps(t *testing.T) *testDeps {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatal(err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	st, err := store.Open(context.Background(), db, schema.Default())
	if err != nil {
		t.Fatalf("store.Open() error = %v", err)
	}
	return &testDeps{
		store:     st,
		customers: repository.NewCustomerRepository(st),
		products:  repository.NewProductRepository(st),
		invoices:  repository.NewInvoiceRepository(st),
		users:     repository.NewUserRepository(st),
		settings:  repository.NewSettingsRepository(st),
	}
}

func (d *testDeps) invoiceService() *InvoiceService {
	svc := NewInvoiceService(d.invoices, d.customers, d.products)
	svc.now = func() time.Time { return testNow }
	return svc
}

func (d *testDeps) seedCatalog(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	products := []entity.Product{
		{ID: "REG87", Name: "Regular Gasoline 87 Octane (No Ethanol)", ShortName: "Reg 87 No-Eth", PricePerGallon: dec("3.499")},
		{ID: "DYED", Name: "Dyed Diesel (Off-Road Use Only)", ShortName: "Dyed Diesel", PricePerGallon: dec("2.850"), Taxable: true},
	}
	for i := range products {
		if err := d.products.Save(ctx, &products[i]); err != nil {
			t.Fatal(err)
		}
	}
	customers := []entity.Customer{
		{AccountNumber: "1001", Name: "Lewis County Farm", City: "Hohenwald", State: "TN"},
		{AccountNumber: "2002", Name: "Exempt Co-op", TaxExempt: true},
	}
	if err := d.customers.SaveAll(ctx, customers); err != nil {
		t.Fatal(err)
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func strPtr(s string) *string {
	return &s
}
