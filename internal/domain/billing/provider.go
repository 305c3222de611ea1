package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItemInput describes one billable line to create.
type InvoiceItemInput struct {
	Name        string
	Description string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
}

// Validate checks a single line item.
func (i InvoiceItemInput) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("%w: line item name is required", ErrInvalidInput)
	}
	if !i.Quantity.IsPositive() {
		return fmt.Errorf("%w: line item quantity must be positive", ErrInvalidInput)
	}
	if i.UnitPrice.IsNegative() {
		return fmt.Errorf("%w: line item unit price cannot be negative", ErrInvalidInput)
	}
	return nil
}

// CreateInvoiceInput is the request to create an invoice for a business.
type CreateInvoiceInput struct {
	Business      string
	CustomerName  string
	CustomerEmail string
	Title         string
	Items         []InvoiceItemInput
	DueDate       time.Time
	Notes         string
}

// Validate checks the input before any remote call is made.
func (in CreateInvoiceInput) Validate() error {
	if in.Business == "" {
		return fmt.Errorf("%w: business is required", ErrInvalidInput)
	}
	if in.CustomerEmail == "" {
		return fmt.Errorf("%w: customer email is required", ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: at least one line item is required", ErrInvalidInput)
	}
	for _, item := range in.Items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CreateInvoiceOutput is the result of a successful invoice creation.
type CreateInvoiceOutput struct {
	InvoiceID string
	ViewURL   string
}

// InvoicingProvider is the integration boundary to the external accounting
// platform. Implementations own the active business context: EnsureReady must
// run business and account resolution exactly once per activation, and every
// other operation requires an initialized context.
type InvoicingProvider interface {
	// EnsureReady resolves the named business and its ledger accounts if not
	// already resolved. Concurrent callers for the same business observe a
	// single resolution sequence and share its outcome.
	EnsureReady(ctx context.Context, business string) error

	// CreateInvoice creates one sellable product per line item and a single
	// invoice referencing them, returning the invoice's internal ID and
	// human-viewable URL.
	CreateInvoice(ctx context.Context, input CreateInvoiceInput) (*CreateInvoiceOutput, error)

	// FetchInvoices aggregates invoice listings across every configured
	// business, newest first. A single business's failure is absorbed; the
	// result is the union of whichever businesses succeeded. filterEmail, when
	// non-empty, keeps only invoices whose customer email matches
	// case-insensitively.
	FetchInvoices(ctx context.Context, filterEmail string) ([]Invoice, error)

	// DeleteInvoice removes an invoice by ID within the currently active,
	// initialized business context.
	DeleteInvoice(ctx context.Context, invoiceID string) error
}
