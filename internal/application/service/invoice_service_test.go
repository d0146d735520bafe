package service

import (
	"context"
	"errors"
	"math/rand"
	"regexp"
	"testing"
	"time"

	"github.com/barberoil/fuelpos/internal/domain/entity"
	"github.com/barberoil/fuelpos/internal/domain/enum"
	"github.com/barberoil/fuelpos/internal/domain/pricing"
	"github.com/barberoil/fuelpos/pkg/apperror"
	"github.com/barberoil/fuelpos/pkg/pagination"
)

var driver1 = &entity.User{ID: "driver1", Name: "Driver 1", PIN: "1111", Role: enum.UserRoleDriver}

// constSource always yields the same random number.
type constSource struct{}

func (constSource) Int63() int64 { return 0 }
func (constSource) Seed(int64)   {}

func TestNewDraftNumberFormat(t *testing.T) {
	d := newTestDeps(t)
	svc := d.invoiceService()

	draft, err := svc.NewDraft(context.Background(), driver1)
	if err != nil {
		t.Fatalf("NewDraft() error = %v", err)
	}
	if !regexp.MustCompile(`^BO-260302-[1-9][0-9]{3}$`).MatchString(draft.InvoiceNumber) {
		t.Errorf("InvoiceNumber = %q, want BO-260302-NNNN", draft.InvoiceNumber)
	}
	if draft.Status != enum.InvoiceStatusDraft {
		t.Errorf("Status = %v, want draft", draft.Status)
	}
	if draft.DriverID != "driver1" || draft.DriverName != "Driver 1" {
		t.Errorf("driver = %q/%q", draft.DriverID, draft.DriverName)
	}
	if !draft.GrandTotal.IsZero() {
		t.Errorf("GrandTotal = %s, want 0", draft.GrandTotal)
	}
}

func TestNewDraftSkipsStoredNumber(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)

	replay := rand.New(rand.NewSource(42))
	first := FormatInvoiceNumber(testNow, invoiceSeqMin+replay.Intn(invoiceSeqMax-invoiceSeqMin+1))
	second := FormatInvoiceNumber(testNow, invoiceSeqMin+replay.Intn(invoiceSeqMax-invoiceSeqMin+1))
	if first == second {
		t.Skip("seed produced the same number twice")
	}

	if err := d.invoices.Insert(ctx, &entity.Invoice{InvoiceNumber: first, Date: testNow, Status: enum.InvoiceStatusCompleted}); err != nil {
		t.Fatal(err)
	}

	svc := d.invoiceService()
	svc.rng = rand.New(rand.NewSource(42))
	draft, err := svc.NewDraft(ctx, driver1)
	if err != nil {
		t.Fatalf("NewDraft() error = %v", err)
	}
	if draft.InvoiceNumber != second {
		t.Errorf("InvoiceNumber = %q, want %q", draft.InvoiceNumber, second)
	}
}

func TestNewDraftGivesUpAfterCollisions(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.invoiceService()
	svc.rng = rand.New(constSource{})

	draft, err := svc.NewDraft(ctx, driver1)
	if err != nil {
		t.Fatalf("first NewDraft() error = %v", err)
	}
	if draft.InvoiceNumber != "BO-260302-1000" {
		t.Fatalf("InvoiceNumber = %q, want BO-260302-1000", draft.InvoiceNumber)
	}

	// the only number the source yields is held by the open draft
	_, err = svc.NewDraft(ctx, driver1)
	if !errors.Is(err, apperror.ErrTransactionFailed) {
		t.Errorf("second NewDraft() error = %v, want TransactionFailed", err)
	}
}

func TestCompleteWithoutCustomerLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.seedCatalog(t)
	svc := d.invoiceService()

	draft, err := svc.NewDraft(ctx, driver1)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddLine(ctx, draft.InvoiceNumber, pricing.LineRequest{ProductID: "REG87", Quantity: "10"}); err != nil {
		t.Fatal(err)
	}

	_, err = svc.CompleteDraft(ctx, draft.InvoiceNumber)
	if !errors.Is(err, apperror.ErrValidationFailed) {
		t.Fatalf("CompleteDraft() error = %v, want ValidationFailed", err)
	}
	if n, _ := d.store.Count(ctx, "invoices"); n != 0 {
		t.Errorf("invoices = %d after rejected completion, want 0", n)
	}
	if _, err := svc.GetDraft(draft.InvoiceNumber); err != nil {
		t.Errorf("draft closed after rejected completion: %v", err)
	}
}

func TestCompleteValidation(t *testing.T) {
	line := []entity.LineItem{{ID: "l1", ProductID: "REG87", Gallons: dec("1"), PricePerGallon: dec("1"), LineTotal: dec("1")}}
	tests := []struct {
		name      string
		invoice   entity.Invoice
		wantField string
	}{
		{"no customer", entity.Invoice{InvoiceNumber: "BO-1", LineItems: line}, "customerId"},
		{"no lines", entity.Invoice{InvoiceNumber: "BO-1", CustomerID: "1001"}, "lineItems"},
		{"paid without method", entity.Invoice{InvoiceNumber: "BO-1", CustomerID: "1001", LineItems: line, PaymentStatus: enum.PaymentStatusPaid}, "paymentMethod"},
		{"unknown method", entity.Invoice{InvoiceNumber: "BO-1", CustomerID: "1001", LineItems: line, PaymentMethod: "iou"}, "paymentMethod"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestDeps(t)
			svc := d.invoiceService()

			_, err := svc.Complete(context.Background(), &tt.invoice)
			appErr := apperror.GetAppError(err)
			if appErr.Kind != apperror.KindValidationFailed {
				t.Fatalf("Complete() error = %v, want ValidationFailed", err)
			}
			found := false
			for _, fe := range appErr.Errors {
				if fe.Field == tt.wantField {
					found = true
				}
			}
			if !found {
				t.Errorf("field errors = %+v, want one for %s", appErr.Errors, tt.wantField)
			}
		})
	}
}

func TestDraftToCompletedInvoice(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.seedCatalog(t)
	svc := d.invoiceService()

	draft, err := svc.NewDraft(ctx, driver1)
	if err != nil {
		t.Fatal(err)
	}
	number := draft.InvoiceNumber

	if _, err := svc.SetCustomer(ctx, number, "1001"); err != nil {
		t.Fatalf("SetCustomer() error = %v", err)
	}
	if _, err := svc.SetCustomer(ctx, number, "9999"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("SetCustomer(unknown) error = %v, want NotFound", err)
	}

	if _, err := svc.AddLine(ctx, number, pricing.LineRequest{ProductID: "DYED", Quantity: "5"}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddLine(ctx, number, pricing.LineRequest{ProductID: "NOPE", Quantity: "5"}); !errors.Is(err, apperror.ErrRejectedLine) {
		t.Errorf("AddLine(unknown product) error = %v, want RejectedLine", err)
	}
	got, err := svc.AddLine(ctx, number, pricing.LineRequest{ProductID: "DYED", Quantity: "abc"})
	if !errors.Is(err, apperror.ErrRejectedLine) || got != nil {
		t.Errorf("AddLine(bad quantity) = %v, %v", got, err)
	}

	paid := enum.PaymentStatusPaid
	if _, err := svc.UpdateDetails(number, &DraftDetails{PaymentStatus: &paid, PONumber: strPtr(" PO-7 ")}); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.CompleteDraft(ctx, number); !errors.Is(err, apperror.ErrValidationFailed) {
		t.Fatalf("CompleteDraft(paid, no method) error = %v, want ValidationFailed", err)
	}
	cash := enum.PaymentMethodCash
	if _, err := svc.UpdateDetails(number, &DraftDetails{PaymentMethod: &cash}); err != nil {
		t.Fatal(err)
	}

	inv, err := svc.CompleteDraft(ctx, number)
	if err != nil {
		t.Fatalf("CompleteDraft() error = %v", err)
	}
	if !inv.IsCompleted() {
		t.Errorf("Status = %v, want completed", inv.Status)
	}
	if !inv.GrandTotal.Equal(dec("15.2475")) {
		t.Errorf("GrandTotal = %s, want 15.2475", inv.GrandTotal)
	}
	if inv.PONumber != "PO-7" {
		t.Errorf("PONumber = %q, want PO-7", inv.PONumber)
	}
	if _, err := svc.GetDraft(number); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("draft still open after completion: %v", err)
	}

	stored, err := svc.GetInvoice(ctx, number)
	if err != nil {
		t.Fatalf("GetInvoice() error = %v", err)
	}
	if stored.CustomerName != "Lewis County Farm" || len(stored.LineItems) != 1 {
		t.Errorf("stored invoice = %+v", stored)
	}
	if !stored.Date.Equal(testNow) {
		t.Errorf("Date = %v, want %v", stored.Date, testNow)
	}
	if !stored.LineItems[0].LineTax.Equal(dec("0.9975")) {
		t.Errorf("LineTax = %s, want 0.9975", stored.LineItems[0].LineTax)
	}

	// completed invoices are never overwritten
	again := *stored
	again.Status = enum.InvoiceStatusDraft
	again.CustomerName = "Someone Else"
	if _, err := svc.Complete(ctx, &again); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Complete(existing number) error = %v, want Conflict", err)
	}
	if _, err := svc.Complete(ctx, stored); !errors.Is(err, apperror.ErrConflict) {
		t.Errorf("Complete(completed) error = %v, want Conflict", err)
	}
	stored, _ = svc.GetInvoice(ctx, number)
	if stored.CustomerName != "Lewis County Farm" {
		t.Errorf("completed invoice was modified: %q", stored.CustomerName)
	}
}

func TestDraftSessionIsolation(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	d.seedCatalog(t)
	svc := d.invoiceService()

	draft, err := svc.NewDraft(ctx, driver1)
	if err != nil {
		t.Fatal(err)
	}
	updated, err := svc.AddLine(ctx, draft.InvoiceNumber, pricing.LineRequest{ProductID: "REG87", Quantity: "10"})
	if err != nil {
		t.Fatal(err)
	}

	// mutating a returned copy does not touch the session
	updated.LineItems[0].LineTotal = dec("999")
	current, _ := svc.GetDraft(draft.InvoiceNumber)
	if !current.LineItems[0].LineTotal.Equal(dec("34.99")) {
		t.Errorf("LineTotal = %s, want 34.99", current.LineItems[0].LineTotal)
	}

	removed, err := svc.RemoveLine(draft.InvoiceNumber, current.LineItems[0].ID)
	if err != nil {
		t.Fatal(err)
	}
	if len(removed.LineItems) != 0 || !removed.Subtotal.IsZero() {
		t.Errorf("after RemoveLine: %d lines, subtotal %s", len(removed.LineItems), removed.Subtotal)
	}

	if len(svc.ListDrafts()) != 1 {
		t.Errorf("ListDrafts() = %d, want 1", len(svc.ListDrafts()))
	}
	if err := svc.DiscardDraft(draft.InvoiceNumber); err != nil {
		t.Fatal(err)
	}
	if err := svc.DiscardDraft(draft.InvoiceNumber); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("second DiscardDraft() error = %v, want NotFound", err)
	}

	bad := enum.PaymentMethod("iou")
	if _, err := svc.UpdateDetails("BO-X", &DraftDetails{PaymentMethod: &bad}); !errors.Is(err, apperror.ErrValidationFailed) {
		t.Errorf("UpdateDetails(bad method) error = %v, want ValidationFailed", err)
	}
}

func TestInvoiceHistory(t *testing.T) {
	ctx := context.Background()
	d := newTestDeps(t)
	svc := d.invoiceService()

	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	history := []entity.Invoice{
		{InvoiceNumber: "BO-260301-1111", Date: base, CustomerID: "1001", CustomerName: "Lewis County Farm", DriverID: "driver1"},
		{InvoiceNumber: "BO-260302-2222", Date: base.AddDate(0, 0, 1), CustomerID: "2002", CustomerName: "Exempt Co-op", DriverID: "driver1"},
		{InvoiceNumber: "BO-260303-3333", Date: base.AddDate(0, 0, 2), CustomerID: "1001", CustomerName: "Lewis County Farm", DriverID: "driver2"},
	}
	for i := range history {
		history[i].Status = enum.InvoiceStatusCompleted
		if err := d.invoices.Insert(ctx, &history[i]); err != nil {
			t.Fatal(err)
		}
	}

	numbers := func(invs []entity.Invoice) []string {
		out := make([]string, len(invs))
		for i, inv := range invs {
			out[i] = inv.InvoiceNumber
		}
		return out
	}
	from := base.AddDate(0, 0, 1)
	tests := []struct {
		name   string
		filter *InvoiceFilter
		want   []string
	}{
		{"all newest first", nil, []string{"BO-260303-3333", "BO-260302-2222", "BO-260301-1111"}},
		{"by customer", &InvoiceFilter{CustomerID: "1001"}, []string{"BO-260303-3333", "BO-260301-1111"}},
		{"by driver", &InvoiceFilter{DriverID: "driver1"}, []string{"BO-260302-2222", "BO-260301-1111"}},
		{"from date", &InvoiceFilter{From: &from}, []string{"BO-260303-3333", "BO-260302-2222"}},
		{"search name", &InvoiceFilter{Search: "co-op"}, []string{"BO-260302-2222"}},
		{"search number", &InvoiceFilter{Search: "3333"}, []string{"BO-260303-3333"}},
		{"customer and driver", &InvoiceFilter{CustomerID: "1001", DriverID: "driver2"}, []string{"BO-260303-3333"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.FilterInvoices(ctx, tt.filter)
			if err != nil {
				t.Fatal(err)
			}
			if g := numbers(got); len(g) != len(tt.want) || (len(g) > 0 && g[0] != tt.want[0]) || (len(g) > 1 && g[len(g)-1] != tt.want[len(tt.want)-1]) {
				t.Errorf("FilterInvoices() = %v, want %v", g, tt.want)
			}
		})
	}

	page, err := svc.ListInvoices(ctx, &pagination.PaginationParams{Page: 2, PerPage: 2}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(page.Items) != 1 || page.Items[0].InvoiceNumber != "BO-260301-1111" || page.Pagination.Total != 3 {
		t.Errorf("ListInvoices(page 2) = %v, total %d", numbers(page.Items), page.Pagination.Total)
	}

	between, err := svc.ListBetween(ctx, &base, &from)
	if err != nil {
		t.Fatal(err)
	}
	if g := numbers(between); len(g) != 2 || g[0] != "BO-260301-1111" {
		t.Errorf("ListBetween() = %v, want oldest first", g)
	}
	if _, err := svc.ListBetween(ctx, &from, &base); !errors.Is(err, apperror.ErrBadRequest) {
		t.Errorf("ListBetween(reversed) error = %v, want BadRequest", err)
	}
	if _, err := svc.GetInvoice(ctx, "BO-000000-0000"); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetInvoice(missing) error = %v, want NotFound", err)
	}
}
