package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goldenhour/backend/internal/domain/billing"
)

const invoiceDeleteMutation = `
mutation DeleteInvoice($input: InvoiceDeleteInput!) {
  invoiceDelete(input: $input) {
    didSucceed
    inputErrors {
      code
      message
    }
  }
}`

// DeleteInvoice removes an invoice by ID within the currently active business
// context. The caller is responsible for having selected the right business;
// an uninitialized context fails with billing.ErrNotInitialized.
func (a *WaveAdapter) DeleteInvoice(ctx context.Context, invoiceID string) error {
	if invoiceID == "" {
		return fmt.Errorf("%w: invoice ID is required", billing.ErrInvalidInput)
	}
	bctx, ok := a.activeContext()
	if !ok {
		return fmt.Errorf("%w: select a business before deleting invoices", billing.ErrNotInitialized)
	}

	var data invoiceDeleteData
	err := a.client.execute(ctx, invoiceDeleteMutation, map[string]any{
		"input": map[string]any{
			"invoiceId": invoiceID,
		},
	}, &data)
	if err != nil {
		return err
	}

	result := data.InvoiceDelete
	if result == nil {
		return fmt.Errorf("%w: invoiceDelete payload missing", billing.ErrInvalidResponse)
	}
	if len(result.InputErrors) > 0 {
		return fmt.Errorf("%w: invoiceDelete: %s", billing.ErrProviderRejected, joinInputErrors(result.InputErrors))
	}
	if !result.DidSucceed {
		return fmt.Errorf("%w: invoiceDelete did not succeed", billing.ErrProviderRejected)
	}

	a.logger.Info("Deleted invoice",
		zap.String("business", bctx.displayName),
		zap.String("invoice_id", invoiceID))
	return nil
}
