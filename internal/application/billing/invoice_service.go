package billing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	domain "github.com/goldenhour/backend/internal/domain/billing"
)

// InvoiceService is the application surface consumed by the HTTP layer. It
// delegates all provider interaction to the InvoicingProvider and keeps no
// state of its own beyond dependencies; the provider owns the active business
// context.
type InvoiceService struct {
	provider domain.InvoicingProvider
	notifier Notifier
	logger   *zap.Logger
}

// NewInvoiceService creates an InvoiceService. A nil notifier falls back to
// NopNotifier.
func NewInvoiceService(provider domain.InvoicingProvider, notifier Notifier, logger *zap.Logger) *InvoiceService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &InvoiceService{
		provider: provider,
		notifier: notifier,
		logger:   logger,
	}
}

// SetActiveBusiness switches the active business context, triggering tenant
// and account resolution for the new target.
func (s *InvoiceService) SetActiveBusiness(ctx context.Context, business string) error {
	return s.provider.EnsureReady(ctx, business)
}

// CreateInvoice creates a single-line invoice.
func (s *InvoiceService) CreateInvoice(ctx context.Context, req CreateInvoiceRequest) (*InvoiceResult, error) {
	return s.create(ctx, CreateInvoiceWithItemsRequest{
		Business:      req.Business,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Title:         req.Title,
		Items:         []LineItemRequest{req.Item},
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	})
}

// CreateInvoiceWithItems creates a multi-line invoice.
func (s *InvoiceService) CreateInvoiceWithItems(ctx context.Context, req CreateInvoiceWithItemsRequest) (*InvoiceResult, error) {
	return s.create(ctx, req)
}

func (s *InvoiceService) create(ctx context.Context, req CreateInvoiceWithItemsRequest) (*InvoiceResult, error) {
	input := domain.CreateInvoiceInput{
		Business:      req.Business,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Title:         req.Title,
		DueDate:       req.DueDate,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, domain.InvoiceItemInput{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    decimal.NewFromInt(item.Quantity),
			UnitPrice:   item.UnitPrice,
		})
	}

	out, err := s.provider.CreateInvoice(ctx, input)
	if err != nil {
		s.logger.Error("Invoice creation failed",
			zap.String("business", req.Business),
			zap.Error(err))
		return nil, err
	}

	// Notification delivery is best effort; a send failure never fails the
	// invoice that was already created.
	notification := Notification{
		FromAlias: true,
		To:        req.CustomerEmail,
		Subject:   fmt.Sprintf("Your invoice from %s", req.Business),
		Body:      fmt.Sprintf("Your invoice is ready to view at %s", out.ViewURL),
	}
	if err := s.notifier.Send(ctx, notification); err != nil {
		s.logger.Warn("Invoice notification failed",
			zap.String("invoice_id", out.InvoiceID),
			zap.Error(err))
	}

	return &InvoiceResult{InvoiceID: out.InvoiceID, ViewURL: out.ViewURL}, nil
}

// ListInvoices aggregates invoices across every configured business, newest
// first, optionally filtered by customer email.
func (s *InvoiceService) ListInvoices(ctx context.Context, filterEmail string) ([]domain.Invoice, error) {
	return s.provider.FetchInvoices(ctx, filterEmail)
}

// DeleteInvoice removes an invoice within the active business context.
func (s *InvoiceService) DeleteInvoice(ctx context.Context, invoiceID string) error {
	return s.provider.DeleteInvoice(ctx, invoiceID)
}
