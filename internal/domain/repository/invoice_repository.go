package repository

import (
	"context"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
)

// InvoiceRepository stores completed invoices. There is no update: an
// invoice number can be written once.
type InvoiceRepository interface {
	Insert(ctx context.Context, invoice *entity.Invoice) error
	Exists(ctx context.Context, invoiceNumber string) (bool, error)
	GetByNumber(ctx context.Context, invoiceNumber string) (*entity.Invoice, error)
	// List returns all invoices, newest first.
	List(ctx context.Context) ([]entity.Invoice, error)
	ListByCustomer(ctx context.Context, accountNumber string) ([]entity.Invoice, error)
	ListByDriver(ctx context.Context, driverID string) ([]entity.Invoice, error)
	// ListBetween returns invoices dated within [from, to], oldest first.
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.Invoice, error)
}
