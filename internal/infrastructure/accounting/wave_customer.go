package accounting

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/goldenhour/backend/internal/domain/billing"
)

const customerListQuery = `
query ListCustomers($businessId: ID!, $page: Int!, $pageSize: Int!) {
  business(id: $businessId) {
    customers(page: $page, pageSize: $pageSize) {
      edges {
        node {
          id
          name
          email
        }
      }
    }
  }
}`

const customerCreateMutation = `
mutation CreateCustomer($input: CustomerCreateInput!) {
  customerCreate(input: $input) {
    didSucceed
    inputErrors {
      code
      message
      path
    }
    customer {
      id
    }
  }
}`

// getOrCreateCustomer finds a billing contact by case-insensitive email
// within the tenant, creating one only on a miss so no two customers ever
// share (tenant, lowercased email). The search is a single bounded page with
// a generous page size.
//
// Search-then-create is not atomic against writers outside this process;
// in-process callers serialize through the initialization gate.
func (a *WaveAdapter) getOrCreateCustomer(ctx context.Context, tenantID, name, email string) (string, error) {
	var data customerListData
	err := a.client.execute(ctx, customerListQuery, map[string]any{
		"businessId": tenantID,
		"page":       1,
		"pageSize":   a.config.CustomerPageSize,
	}, &data)
	if err != nil {
		return "", err
	}
	if data.Business == nil {
		return "", fmt.Errorf("%w: business payload missing from customer listing", billing.ErrInvalidResponse)
	}

	wanted := billing.NormalizeEmail(email)
	for _, edge := range data.Business.Customers.Edges {
		if billing.NormalizeEmail(edge.Node.Email) == wanted {
			return edge.Node.ID, nil
		}
	}

	return a.createCustomer(ctx, tenantID, billing.CustomerNameFallback(name, email), email)
}

func (a *WaveAdapter) createCustomer(ctx context.Context, tenantID, name, email string) (string, error) {
	var data customerCreateData
	err := a.client.execute(ctx, customerCreateMutation, map[string]any{
		"input": map[string]any{
			"businessId": tenantID,
			"name":       name,
			"email":      email,
		},
	}, &data)
	if err != nil {
		return "", err
	}

	result := data.CustomerCreate
	if result == nil {
		return "", fmt.Errorf("%w: customerCreate payload missing", billing.ErrInvalidResponse)
	}
	if len(result.InputErrors) > 0 {
		return "", fmt.Errorf("%w: customerCreate: %s", billing.ErrProviderRejected, joinInputErrors(result.InputErrors))
	}
	if !result.DidSucceed {
		return "", fmt.Errorf("%w: customerCreate did not succeed", billing.ErrProviderRejected)
	}
	if result.Customer == nil || result.Customer.ID == "" {
		return "", fmt.Errorf("%w: customerCreate returned no customer", billing.ErrInvalidResponse)
	}

	a.logger.Info("Created customer",
		zap.String("tenant_id", tenantID),
		zap.String("customer_id", result.Customer.ID))
	return result.Customer.ID, nil
}
