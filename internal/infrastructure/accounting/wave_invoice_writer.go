package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goldenhour/backend/internal/domain/billing"
)

// Fixed invoice submission parameters.
const (
	invoiceCurrencyCode  = "USD"
	invoiceSubmitStatus  = "SAVED"
	invoiceDueDateLayout = "2006-01-02"
)

const productCreateMutation = `
mutation CreateProduct($input: ProductCreateInput!) {
  productCreate(input: $input) {
    didSucceed
    inputErrors {
      code
      message
      path
    }
    product {
      id
    }
  }
}`

const invoiceCreateMutation = `
mutation CreateInvoice($input: InvoiceCreateInput!) {
  invoiceCreate(input: $input) {
    didSucceed
    inputErrors {
      code
      message
      path
    }
    invoice {
      id
      viewUrl
    }
  }
}`

// CreateInvoice runs the full write pipeline: ensure the business context is
// ready, resolve or create the customer, create one sellable product per line
// item, then submit a single invoice mutation referencing every product.
//
// A fresh product is created for every line even when name and price repeat
// across invoices; lines stay distinct on the remote side.
func (a *WaveAdapter) CreateInvoice(ctx context.Context, input billing.CreateInvoiceInput) (*billing.CreateInvoiceOutput, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}
	if err := a.EnsureReady(ctx, input.Business); err != nil {
		return nil, err
	}
	bctx, ok := a.activeContext()
	if !ok || bctx.displayName != input.Business {
		return nil, fmt.Errorf("%w: active context lost before write", billing.ErrNotInitialized)
	}

	customerID, err := a.getOrCreateCustomer(ctx, bctx.tenantID, input.CustomerName, input.CustomerEmail)
	if err != nil {
		return nil, err
	}

	items := make([]map[string]any, 0, len(input.Items))
	for _, item := range input.Items {
		productID, err := a.createProduct(ctx, bctx, item)
		if err != nil {
			return nil, err
		}
		items = append(items, map[string]any{
			"productId": productID,
			"quantity":  item.Quantity.IntPart(),
			"unitPrice": item.UnitPrice.StringFixed(2),
		})
	}

	invoiceInput := map[string]any{
		"businessId":   bctx.tenantID,
		"customerId":   customerID,
		"status":       invoiceSubmitStatus,
		"currencyCode": invoiceCurrencyCode,
		"title":        a.config.TitleFor(input.Business, input.Title),
		"items":        items,
	}
	if !input.DueDate.IsZero() {
		invoiceInput["dueDate"] = input.DueDate.Format(invoiceDueDateLayout)
	}
	if input.Notes != "" {
		invoiceInput["memo"] = input.Notes
	}

	var data invoiceCreateData
	if err := a.client.execute(ctx, invoiceCreateMutation, map[string]any{"input": invoiceInput}, &data); err != nil {
		return nil, err
	}

	result := data.InvoiceCreate
	if result == nil {
		return nil, fmt.Errorf("%w: invoiceCreate payload missing", billing.ErrInvalidResponse)
	}
	if len(result.InputErrors) > 0 {
		return nil, fmt.Errorf("%w: invoiceCreate: %s", billing.ErrProviderRejected, joinInputErrors(result.InputErrors))
	}
	if !result.DidSucceed {
		return nil, fmt.Errorf("%w: invoiceCreate did not succeed", billing.ErrProviderRejected)
	}
	if result.Invoice == nil || result.Invoice.ID == "" {
		return nil, fmt.Errorf("%w: invoiceCreate returned no invoice", billing.ErrInvalidResponse)
	}

	a.logger.Info("Created invoice",
		zap.String("business", input.Business),
		zap.String("invoice_id", result.Invoice.ID),
		zap.String("customer_id", customerID),
		zap.Int("items", len(items)))

	return &billing.CreateInvoiceOutput{
		InvoiceID: result.Invoice.ID,
		ViewURL:   result.Invoice.ViewURL,
	}, nil
}

// createProduct creates a sellable product line bound to the tenant's income
// and expense ledger accounts.
func (a *WaveAdapter) createProduct(ctx context.Context, bctx businessContext, item billing.InvoiceItemInput) (string, error) {
	var data productCreateData
	err := a.client.execute(ctx, productCreateMutation, map[string]any{
		"input": map[string]any{
			"businessId":       bctx.tenantID,
			"name":             item.Name,
			"description":      item.Description,
			"unitPrice":        item.UnitPrice.StringFixed(2),
			"incomeAccountId":  bctx.incomeAccountID,
			"expenseAccountId": bctx.expenseAccountID,
		},
	}, &data)
	if err != nil {
		return "", err
	}

	result := data.ProductCreate
	if result == nil {
		return "", fmt.Errorf("%w: productCreate payload missing", billing.ErrInvalidResponse)
	}
	if len(result.InputErrors) > 0 {
		return "", fmt.Errorf("%w: productCreate: %s", billing.ErrProviderRejected, joinInputErrors(result.InputErrors))
	}
	if !result.DidSucceed {
		return "", fmt.Errorf("%w: productCreate did not succeed", billing.ErrProviderRejected)
	}
	if result.Product == nil || result.Product.ID == "" {
		return "", fmt.Errorf("%w: productCreate returned no product", billing.ErrInvalidResponse)
	}
	return result.Product.ID, nil
}
