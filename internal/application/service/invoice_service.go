package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/barberoil/fuelpos/internal/domain/pricing"
	"github.com/barberoil/fuelpos/internal/domain/repository"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/pagination"
)

const (
	invoicePrefix = "BO"
	// invoice numbers end in a random NNNN between these bounds
	invoiceSeqMin = 1000
	invoiceSeqMax = 9999

	maxNumberAttempts = 25
)

// InvoiceService owns the invoice lifecycle: open drafts are kept in memory
// and become append-only records in the store when completed.
type InvoiceService struct {
	invoiceRepo  repository.InvoiceRepository
	customerRepo repository.CustomerRepository
	productRepo  repository.ProductRepository

	mu     sync.Mutex
	drafts map[string]*entity.Invoice
	now    func() time.Time
	rng    *rand.Rand
}

// NewInvoiceService creates a new invoice service
func NewInvoiceService(
	invoiceRepo repository.InvoiceRepository,
	customerRepo repository.CustomerRepository,
	productRepo repository.ProductRepository,
) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		drafts:       make(map[string]*entity.Invoice),
		now:          time.Now,
		rng:          rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// DraftDetails holds the delivery and payment fields of a draft. Nil fields
// are left unchanged.
type DraftDetails struct {
	PONumber          *string
	TicketNumber      *string
	TankReadingBefore *string
	TankReadingAfter  *string
	DeliveryNotes     *string
	PaymentStatus     *enum.PaymentStatus
	PaymentMethod     *enum.PaymentMethod
	PaymentRef        *string
	Signature         *string
}

// InvoiceFilter narrows the invoice history
type InvoiceFilter struct {
	Search     string
	CustomerID string
	DriverID   string
	From       *time.Time
	To         *time.Time
}

// FormatInvoiceNumber renders BO-YYMMDD-NNNN for the given day and sequence
func FormatInvoiceNumber(day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", invoicePrefix, day.Format("060102"), seq)
}

// NewDraft opens a draft invoice for driver under a fresh invoice number.
// Numbers already used by a stored invoice or an open draft are skipped.
func (s *InvoiceService) NewDraft(ctx context.Context, driver *entity.User) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		number := FormatInvoiceNumber(now, invoiceSeqMin+s.rng.Intn(invoiceSeqMax-invoiceSeqMin+1))
		if _, open := s.drafts[number]; open {
			continue
		}
		exists, err := s.invoiceRepo.Exists(ctx, number)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		draft := &entity.Invoice{
			InvoiceNumber: number,
			Date:          now,
			Status:        enum.InvoiceStatusDraft,
			PaymentStatus: enum.PaymentStatusInvoice,
			LineItems:     []entity.LineItem{},
		}
		if driver != nil {
			draft.DriverID = driver.ID
			draft.DriverName = driver.Name
		}
		pricing.ApplyTotals(draft)
		s.drafts[number] = draft
		return cloneInvoice(draft), nil
	}

	return nil, apperror.NewTransactionFailedError("allocate invoice number",
		fmt.Errorf("no free invoice number for %s after %d attempts", now.Format("060102"), maxNumberAttempts))
}

// GetDraft returns a copy of an open draft
func (s *InvoiceService) GetDraft(number string) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(number)
	if err != nil {
		return nil, err
	}
	return cloneInvoice(draft), nil
}

// ListDrafts returns copies of the open drafts, oldest first
func (s *InvoiceService) ListDrafts() []entity.Invoice {
	s.mu.Lock()
	defer s.mu.Unlock()

	drafts := make([]entity.Invoice, 0, len(s.drafts))
	for _, d := range s.drafts {
		drafts = append(drafts, *cloneInvoice(d))
	}
	sort.Slice(drafts, func(i, j int) bool {
		if drafts[i].Date.Equal(drafts[j].Date) {
			return drafts[i].InvoiceNumber < drafts[j].InvoiceNumber
		}
		return drafts[i].Date.Before(drafts[j].Date)
	})
	return drafts
}

// DiscardDraft drops an open draft without saving it
func (s *InvoiceService) DiscardDraft(number string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.draft(number); err != nil {
		return err
	}
	delete(s.drafts, number)
	return nil
}

// SetCustomer selects the customer of a draft
func (s *InvoiceService) SetCustomer(ctx context.Context, number, accountNumber string) (*entity.Invoice, error) {
	customer, err := s.customerRepo.GetByAccountNumber(ctx, strings.TrimSpace(accountNumber))
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(number)
	if err != nil {
		return nil, err
	}
	pricing.SelectCustomer(draft, customer)
	return cloneInvoice(draft), nil
}

// AddLine prices a line against the current catalog and adds it to a draft.
// A rejected line leaves the draft unchanged.
func (s *InvoiceService) AddLine(ctx context.Context, number string, req pricing.LineRequest) (*entity.Invoice, error) {
	product, err := s.productRepo.GetByID(ctx, strings.TrimSpace(req.ProductID))
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(number)
	if err != nil {
		return nil, err
	}
	if _, err := pricing.AddLine(draft, product, req); err != nil {
		return nil, err
	}
	return cloneInvoice(draft), nil
}

// RemoveLine removes a line from a draft
func (s *InvoiceService) RemoveLine(number, lineID string) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(number)
	if err != nil {
		return nil, err
	}
	if err := pricing.RemoveLine(draft, lineID); err != nil {
		return nil, err
	}
	return cloneInvoice(draft), nil
}

// UpdateDetails sets delivery and payment fields of a draft
func (s *InvoiceService) UpdateDetails(number string, details *DraftDetails) (*entity.Invoice, error) {
	if details.PaymentMethod != nil && !details.PaymentMethod.Valid() {
		return nil, apperror.NewFieldValidationError("paymentMethod", "Payment method must be cash, check or card")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(number)
	if err != nil {
		return nil, err
	}

	setString(&draft.PONumber, details.PONumber)
	setString(&draft.TicketNumber, details.TicketNumber)
	setString(&draft.TankReadingBefore, details.TankReadingBefore)
	setString(&draft.TankReadingAfter, details.TankReadingAfter)
	setString(&draft.PaymentRef, details.PaymentRef)
	if details.DeliveryNotes != nil {
		draft.DeliveryNotes = *details.DeliveryNotes
	}
	if details.Signature != nil {
		draft.Signature = *details.Signature
	}
	if details.PaymentStatus != nil {
		draft.PaymentStatus = *details.PaymentStatus
	}
	if details.PaymentMethod != nil {
		draft.PaymentMethod = *details.PaymentMethod
	}
	return cloneInvoice(draft), nil
}

// CompleteDraft completes an open draft and closes it. On failure the draft
// stays open for correction.
func (s *InvoiceService) CompleteDraft(ctx context.Context, number string) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	draft, err := s.draft(number)
	if err != nil {
		return nil, err
	}
	completed, err := s.complete(ctx, draft)
	if err != nil {
		return nil, err
	}
	delete(s.drafts, number)
	return completed, nil
}

// Complete validates a draft invoice, stamps it with the current time and
// stores it as completed. Nothing is written when validation fails, and an
// invoice number that is already stored is a Conflict.
func (s *InvoiceService) Complete(ctx context.Context, draft *entity.Invoice) (*entity.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.complete(ctx, draft)
}

func (s *InvoiceService) complete(ctx context.Context, draft *entity.Invoice) (*entity.Invoice, error) {
	if draft == nil {
		return nil, apperror.NewBadRequestError("Invoice is required")
	}
	if draft.IsCompleted() {
		return nil, apperror.NewConflictError("Invoice " + draft.InvoiceNumber + " is already completed")
	}
	if err := validateForCompletion(draft); err != nil {
		return nil, err
	}

	inv := cloneInvoice(draft)
	inv.Date = s.now()
	inv.Status = enum.InvoiceStatusCompleted
	if inv.PaymentStatus != enum.PaymentStatusPaid {
		inv.PaymentMethod = enum.PaymentMethodNone
	}
	pricing.ApplyTotals(inv)

	if err := s.invoiceRepo.Insert(ctx, inv); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.NewConflictError("Invoice " + inv.InvoiceNumber + " already exists")
		}
		return nil, err
	}
	return inv, nil
}

func validateForCompletion(inv *entity.Invoice) error {
	var fieldErrors []apperror.FieldError
	if strings.TrimSpace(inv.InvoiceNumber) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "invoiceNumber", Message: "Invoice number is required"})
	}
	if strings.TrimSpace(inv.CustomerID) == "" {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "customerId", Message: "Please select a customer"})
	}
	if len(inv.LineItems) == 0 {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "lineItems", Message: "Please add at least one product"})
	}
	if inv.PaymentStatus == enum.PaymentStatusPaid && inv.PaymentMethod == enum.PaymentMethodNone {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "paymentMethod", Message: "Payment method is required for paid invoices"})
	}
	if !inv.PaymentMethod.Valid() {
		fieldErrors = append(fieldErrors, apperror.FieldError{Field: "paymentMethod", Message: "Payment method must be cash, check or card"})
	}
	if len(fieldErrors) > 0 {
		return apperror.NewValidationError(fieldErrors)
	}
	return nil
}

// GetInvoice gets a completed invoice by number
func (s *InvoiceService) GetInvoice(ctx context.Context, number string) (*entity.Invoice, error) {
	inv, err := s.invoiceRepo.GetByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		return nil, apperror.NewNotFoundError("Invoice")
	}
	return inv, nil
}

// ListInvoices lists completed invoices newest first, filtered and paginated
func (s *InvoiceService) ListInvoices(ctx context.Context, params *pagination.PaginationParams, filter *InvoiceFilter) (*pagination.PaginatedResult[entity.Invoice], error) {
	invoices, err := s.FilterInvoices(ctx, filter)
	if err != nil {
		return nil, err
	}
	return pagination.Paginate(invoices, params), nil
}

// FilterInvoices returns every completed invoice matching filter, newest
// first. Customer, driver and date filters go through the store indexes.
func (s *InvoiceService) FilterInvoices(ctx context.Context, filter *InvoiceFilter) ([]entity.Invoice, error) {
	if filter == nil {
		filter = &InvoiceFilter{}
	}

	var (
		invoices []entity.Invoice
		err      error
	)
	switch {
	case filter.CustomerID != "":
		invoices, err = s.invoiceRepo.ListByCustomer(ctx, filter.CustomerID)
	case filter.DriverID != "":
		invoices, err = s.invoiceRepo.ListByDriver(ctx, filter.DriverID)
	case filter.From != nil || filter.To != nil:
		invoices, err = s.ListBetween(ctx, filter.From, filter.To)
	default:
		invoices, err = s.invoiceRepo.List(ctx)
	}
	if err != nil {
		return nil, err
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	result := invoices[:0]
	for _, inv := range invoices {
		if filter.CustomerID != "" && inv.CustomerID != filter.CustomerID {
			continue
		}
		if filter.DriverID != "" && inv.DriverID != filter.DriverID {
			continue
		}
		if filter.From != nil && inv.Date.Before(*filter.From) {
			continue
		}
		if filter.To != nil && inv.Date.After(*filter.To) {
			continue
		}
		if search != "" && !matchesInvoice(&inv, search) {
			continue
		}
		result = append(result, inv)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Date.After(result[j].Date)
	})
	return result, nil
}

// ListByCustomer lists the invoices of a customer, newest first
func (s *InvoiceService) ListByCustomer(ctx context.Context, accountNumber string) ([]entity.Invoice, error) {
	return s.invoiceRepo.ListByCustomer(ctx, accountNumber)
}

// ListByDriver lists the invoices delivered by a driver, newest first
func (s *InvoiceService) ListByDriver(ctx context.Context, driverID string) ([]entity.Invoice, error) {
	return s.invoiceRepo.ListByDriver(ctx, driverID)
}

// ListBetween lists invoices dated within [from, to], oldest first. A nil
// bound is open.
func (s *InvoiceService) ListBetween(ctx context.Context, from, to *time.Time) ([]entity.Invoice, error) {
	lo := time.Time{}
	if from != nil {
		lo = *from
	}
	hi := s.now().AddDate(100, 0, 0)
	if to != nil {
		hi = *to
	}
	if hi.Before(lo) {
		return nil, apperror.NewBadRequestError("Invalid date range")
	}
	return s.invoiceRepo.ListBetween(ctx, lo, hi)
}

func (s *InvoiceService) draft(number string) (*entity.Invoice, error) {
	draft, ok := s.drafts[number]
	if !ok {
		return nil, apperror.NewNotFoundError("Draft invoice")
	}
	return draft, nil
}

func matchesInvoice(inv *entity.Invoice, search string) bool {
	return strings.Contains(strings.ToLower(inv.InvoiceNumber), search) ||
		strings.Contains(strings.ToLower(inv.CustomerName), search) ||
		strings.Contains(strings.ToLower(inv.CustomerID), search)
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func cloneInvoice(inv *entity.Invoice) *entity.Invoice {
	c := *inv
	c.LineItems = append([]entity.LineItem(nil), inv.LineItems...)
	if c.LineItems == nil {
		c.LineItems = []entity.LineItem{}
	}
	return &c
}
