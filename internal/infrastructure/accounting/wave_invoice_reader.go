package accounting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/goldenhour/backend/internal/domain/billing"
)

const invoiceListQuery = `
query ListInvoices($businessId: ID!, $page: Int!, $pageSize: Int!) {
  business(id: $businessId) {
    invoices(page: $page, pageSize: $pageSize) {
      pageInfo {
        currentPage
        totalPages
        totalCount
      }
      edges {
        node {
          id
          title
          viewUrl
          status
          createdAt
          dueDate
          memo
          footer
          lastSentAt
          lastSentVia
          lastViewedAt
          total {
            value
            currency {
              code
            }
          }
          customer {
            id
            name
            email
          }
          items {
            product {
              name
            }
            quantity
            unitPrice
            total {
              value
            }
          }
        }
      }
    }
  }
}`

// FetchInvoices aggregates the invoice listings of every configured business
// into one normalized collection sorted by creation time descending.
//
// Partial-failure policy: a business whose initialization or page fetch fails
// is logged and skipped; this is the only place a failure is absorbed rather
// than surfaced. Only when no business yields results does the last error
// propagate.
func (a *WaveAdapter) FetchInvoices(ctx context.Context, filterEmail string) ([]billing.Invoice, error) {
	all := make([]billing.Invoice, 0)
	succeeded := 0
	var lastErr error

	for _, business := range a.config.Businesses {
		if err := a.EnsureReady(ctx, business); err != nil {
			a.logger.Warn("Skipping business: initialization failed",
				zap.String("business", business),
				zap.Error(err))
			lastErr = err
			continue
		}
		bctx, ok := a.activeContext()
		if !ok || bctx.displayName != business {
			lastErr = fmt.Errorf("%w: active context lost during aggregation", billing.ErrNotInitialized)
			continue
		}

		rows, err := a.fetchBusinessInvoices(ctx, business, bctx.tenantID, filterEmail)
		if err != nil {
			a.logger.Warn("Skipping business: invoice fetch failed",
				zap.String("business", business),
				zap.Error(err))
			lastErr = err
			continue
		}
		succeeded++
		all = append(all, rows...)
	}

	if succeeded == 0 && lastErr != nil {
		return nil, lastErr
	}

	billing.SortInvoicesByCreatedAtDesc(all)
	return all, nil
}

// fetchBusinessInvoices pages through one tenant's invoices until the
// reported page counters are exhausted.
func (a *WaveAdapter) fetchBusinessInvoices(ctx context.Context, business, tenantID, filterEmail string) ([]billing.Invoice, error) {
	var rows []billing.Invoice
	wantedEmail := billing.NormalizeEmail(filterEmail)

	for page := 1; ; page++ {
		data, err := a.fetchInvoicePage(ctx, tenantID, page)
		if err != nil {
			return nil, err
		}
		if data.Business == nil || data.Business.Invoices == nil {
			return nil, fmt.Errorf("%w: invoice listing payload missing", billing.ErrInvalidResponse)
		}

		listing := data.Business.Invoices
		for _, edge := range listing.Edges {
			inv := mapInvoiceNode(edge.Node, business)
			if wantedEmail != "" && billing.NormalizeEmail(inv.CustomerEmail) != wantedEmail {
				continue
			}
			rows = append(rows, inv)
		}

		if listing.PageInfo.CurrentPage >= listing.PageInfo.TotalPages {
			break
		}
	}
	return rows, nil
}

// fetchInvoicePage issues a single page query. A rate-limit signal is retried
// exactly once after a fixed delay; no other failure is retried here.
func (a *WaveAdapter) fetchInvoicePage(ctx context.Context, tenantID string, page int) (*invoiceListData, error) {
	variables := map[string]any{
		"businessId": tenantID,
		"page":       page,
		"pageSize":   a.config.InvoicePageSize,
	}

	var data invoiceListData
	err := a.client.execute(ctx, invoiceListQuery, variables, &data)
	if errors.Is(err, billing.ErrRateLimited) {
		a.logger.Warn("Invoice page fetch rate limited, retrying once",
			zap.String("tenant_id", tenantID),
			zap.Int("page", page),
			zap.Duration("delay", a.config.RateLimitRetryDelay))

		select {
		case <-time.After(a.config.RateLimitRetryDelay):
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %v", billing.ErrProviderUnavailable, ctx.Err())
		}

		data = invoiceListData{}
		err = a.client.execute(ctx, invoiceListQuery, variables, &data)
	}
	if err != nil {
		return nil, err
	}
	return &data, nil
}

// mapInvoiceNode normalizes a wire invoice row into the domain model. Amounts
// arrive as numbers or strings and dates in several ISO-8601 variants; both
// are normalized here and never leave the integration layer raw.
func mapInvoiceNode(node invoiceNode, business string) billing.Invoice {
	inv := billing.Invoice{
		ID:           node.ID,
		Business:     business,
		Title:        node.Title,
		ViewURL:      node.ViewURL,
		Status:       billing.InvoiceStatus(node.Status),
		Amount:       node.Total.Value.Decimal,
		Currency:     node.Total.Currency.Code,
		Memo:         node.Memo,
		Footer:       node.Footer,
		LastSentVia:  node.LastSentVia,
		DueDate:      parseWaveTimePtr(node.DueDate),
		LastSentAt:   parseWaveTimePtr(node.LastSentAt),
		LastViewedAt: parseWaveTimePtr(node.LastViewedAt),
		Items:        make([]billing.LineItem, 0, len(node.Items)),
	}

	if t, ok := parseWaveTime(node.CreatedAt); ok {
		inv.CreatedAt = t
	}
	if node.Customer != nil {
		inv.CustomerID = node.Customer.ID
		inv.CustomerName = node.Customer.Name
		inv.CustomerEmail = node.Customer.Email
	}
	for _, item := range node.Items {
		inv.Items = append(inv.Items, billing.LineItem{
			ProductName: item.Product.Name,
			Quantity:    item.Quantity.Decimal,
			UnitPrice:   item.UnitPrice.Decimal,
			Total:       item.Total.Value.Decimal,
		})
	}
	return inv
}
