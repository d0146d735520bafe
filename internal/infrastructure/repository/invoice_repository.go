package repository

import (
	"context"
	"sort"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	domainRepo "github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/internal/domain/schema"
	"github.com/barberoil/fuelpos/internal/infrastructure/store"
)

type invoiceRepository struct {
	store *store.Store
}

// NewInvoiceRepository creates a new invoice repository
func NewInvoiceRepository(st *store.Store) domainRepo.InvoiceRepository {
	return &invoiceRepository{store: st}
}

func (r *invoiceRepository) Insert(ctx context.Context, invoice *entity.Invoice) error {
	return r.store.Insert(ctx, schema.Invoices, invoice)
}

func (r *invoiceRepository) Exists(ctx context.Context, invoiceNumber string) (bool, error) {
	return r.store.Exists(ctx, schema.Invoices, invoiceNumber)
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error) {
	var invoice entity.Invoice
	found, err := r.store.Get(ctx, schema.Invoices, invoiceNumber, &invoice)
	if err != nil || !found {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	if err := r.store.GetAll(ctx, schema.Invoices, &invoices); err != nil {
		return nil, err
	}
	sortNewestFirst(invoices)
	return invoices, nil
}

func (r *invoiceRepository) ListByCustomer(ctx context.Context, accountNumber string) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	if err := r.store.Find(ctx, schema.Invoices, "customerId", accountNumber, &invoices); err != nil {
		return nil, err
	}
	sortNewestFirst(invoices)
	return invoices, nil
}

func (r *invoiceRepository) ListByDriver(ctx context.Context, driverID string) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	if err := r.store.Find(ctx, schema.Invoices, "driverId", driverID, &invoices); err != nil {
		return nil, err
	}
	sortNewestFirst(invoices)
	return invoices, nil
}

func (r *invoiceRepository) ListBetween(ctx context.Context, from, to time.Time) ([]entity.Invoice, error) {
	var invoices []entity.Invoice
	err := r.store.FindRange(ctx, schema.Invoices, "date",
		from.UTC().Format(time.RFC3339Nano), to.UTC().Format(time.RFC3339Nano), &invoices)
	if err != nil {
		return nil, err
	}
	return invoices, nil
}

func sortNewestFirst(invoices []entity.Invoice) {
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].Date.After(invoices[j].Date)
	})
}
