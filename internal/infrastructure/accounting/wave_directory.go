package accounting

import (
	"context"
	"fmt"

	"github.com/goldenhour/backend/internal/domain/billing"
)

// Ledger account types the chart-of-accounts query distinguishes.
const (
	accountTypeIncome  = "INCOME"
	accountTypeExpense = "EXPENSE"
)

const businessListQuery = `
query ListBusinesses($page: Int!, $pageSize: Int!) {
  businesses(page: $page, pageSize: $pageSize) {
    edges {
      node {
        id
        name
      }
    }
  }
}`

const accountListQuery = `
query ListAccounts($businessId: ID!, $page: Int!, $pageSize: Int!) {
  business(id: $businessId) {
    accounts(page: $page, pageSize: $pageSize) {
      edges {
        node {
          id
          name
          type {
            name
          }
        }
      }
    }
  }
}`

// resolveBusiness lists every business visible to the credential and matches
// the display name exactly, case-sensitively. No match is a data problem
// (billing.ErrBusinessNotFound), not a transport failure.
func (a *WaveAdapter) resolveBusiness(ctx context.Context, name string) (string, error) {
	var data businessListData
	err := a.client.execute(ctx, businessListQuery, map[string]any{
		"page":     1,
		"pageSize": a.config.BusinessPageSize,
	}, &data)
	if err != nil {
		return "", err
	}

	for _, edge := range data.Businesses.Edges {
		if edge.Node.Name == name {
			return edge.Node.ID, nil
		}
	}
	return "", fmt.Errorf("%w: no business named %q is visible to this credential", billing.ErrBusinessNotFound, name)
}

// resolveAccounts lists the tenant's ledger accounts and selects the income
// and expense accounts matching the business's naming convention. A missing
// account is remote misconfiguration and must not be retried automatically.
func (a *WaveAdapter) resolveAccounts(ctx context.Context, tenantID string, names AccountNames) (string, string, error) {
	var data accountListData
	err := a.client.execute(ctx, accountListQuery, map[string]any{
		"businessId": tenantID,
		"page":       1,
		"pageSize":   a.config.AccountPageSize,
	}, &data)
	if err != nil {
		return "", "", err
	}
	if data.Business == nil {
		return "", "", fmt.Errorf("%w: business payload missing from account listing", billing.ErrInvalidResponse)
	}

	var incomeID, expenseID string
	for _, edge := range data.Business.Accounts.Edges {
		node := edge.Node
		switch {
		case node.Name == names.Income && node.Type.Name == accountTypeIncome:
			incomeID = node.ID
		case node.Name == names.Expense && node.Type.Name == accountTypeExpense:
			expenseID = node.ID
		}
	}

	if incomeID == "" {
		return "", "", fmt.Errorf("%w: expected income account %q", billing.ErrAccountNotFound, names.Income)
	}
	if expenseID == "" {
		return "", "", fmt.Errorf("%w: expected expense account %q", billing.ErrAccountNotFound, names.Expense)
	}
	return incomeID, expenseID, nil
}
