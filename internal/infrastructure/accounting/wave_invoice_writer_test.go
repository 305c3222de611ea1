package accounting

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goldenhour/backend/internal/domain/billing"
)

// stubWritePath installs the directory plus happy-path customer, product, and
// invoice mutation handlers.
func stubWritePath(f *fakeWave) {
	f.stubDirectory()
	f.on("customers", func(map[string]any) (int, string) {
		return dataResponse(`{"business":{"customers":{"edges":[]}}}`)
	})
	f.on("customerCreate", func(map[string]any) (int, string) {
		return dataResponse(`{"customerCreate":{"didSucceed":true,"inputErrors":[],"customer":{"id":"cust-1"}}}`)
	})
	productSeq := 0
	f.on("productCreate", func(map[string]any) (int, string) {
		productSeq++
		return dataResponse(fmt.Sprintf(
			`{"productCreate":{"didSucceed":true,"inputErrors":[],"product":{"id":"prod-%d"}}}`, productSeq))
	})
	f.on("invoiceCreate", func(map[string]any) (int, string) {
		return dataResponse(`{"invoiceCreate":{"didSucceed":true,"inputErrors":[],"invoice":{"id":"inv-1","viewUrl":"https://invoices.example.com/inv-1"}}}`)
	})
}

func sampleCreateInput(business string) billing.CreateInvoiceInput {
	return billing.CreateInvoiceInput{
		Business:      business,
		CustomerName:  "Ana Reyes",
		CustomerEmail: "ana.reyes@example.com",
		Title:         "Wedding Shoot",
		Items: []billing.InvoiceItemInput{
			{Name: "Full-day coverage", Quantity: decimal.RequireFromString("1"), UnitPrice: decimal.RequireFromString("2500")},
			{Name: "Print package", Description: "50 prints", Quantity: decimal.RequireFromString("2"), UnitPrice: decimal.RequireFromString("149.99")},
		},
		DueDate: time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Notes:   "Net 15",
	}
}

func TestCreateInvoicePipelineOrder(t *testing.T) {
	f := newFakeWave(t)
	stubWritePath(f)
	adapter := newTestAdapter(t, f)

	out, err := adapter.CreateInvoice(context.Background(), sampleCreateInput(testBusinessPhoto))
	require.NoError(t, err)
	assert.Equal(t, "inv-1", out.InvoiceID)
	assert.Equal(t, "https://invoices.example.com/inv-1", out.ViewURL)

	// Context resolution first, then customer, one product per line, one
	// invoice mutation last.
	assert.Equal(t, []string{
		"businesses", "accounts",
		"customers", "customerCreate",
		"productCreate", "productCreate",
		"invoiceCreate",
	}, f.callOrder())
}

func TestCreateInvoiceSubmitsFixedParameters(t *testing.T) {
	f := newFakeWave(t)
	stubWritePath(f)
	adapter := newTestAdapter(t, f)

	_, err := adapter.CreateInvoice(context.Background(), sampleCreateInput(testBusinessPhoto))
	require.NoError(t, err)

	call, ok := f.lastCall("invoiceCreate")
	require.True(t, ok)
	input := call.Variables["input"].(map[string]any)

	assert.Equal(t, "SAVED", input["status"])
	assert.Equal(t, "USD", input["currencyCode"])
	assert.Equal(t, "2026-09-15", input["dueDate"])
	assert.Equal(t, "Net 15", input["memo"])
	assert.Equal(t, "Wedding Shoot", input["title"])
	assert.Equal(t, testTenantPhoto, input["businessId"])
	assert.Equal(t, "cust-1", input["customerId"])

	items := input["items"].([]any)
	require.Len(t, items, 2)
	first := items[0].(map[string]any)
	assert.Equal(t, "2500.00", first["unitPrice"])
}

func TestCreateInvoiceAppliesTitleOverride(t *testing.T) {
	f := newFakeWave(t)
	stubWritePath(f)
	adapter := newTestAdapter(t, f)

	_, err := adapter.CreateInvoice(context.Background(), sampleCreateInput(testBusinessFilms))
	require.NoError(t, err)

	call, ok := f.lastCall("invoiceCreate")
	require.True(t, ok)
	input := call.Variables["input"].(map[string]any)
	assert.Equal(t, "Golden Hour Films Production Invoice", input["title"])
}

func TestCreateInvoiceProductsUseResolvedAccounts(t *testing.T) {
	f := newFakeWave(t)
	stubWritePath(f)
	adapter := newTestAdapter(t, f)

	_, err := adapter.CreateInvoice(context.Background(), sampleCreateInput(testBusinessFilms))
	require.NoError(t, err)

	call, ok := f.lastCall("productCreate")
	require.True(t, ok)
	input := call.Variables["input"].(map[string]any)
	assert.Equal(t, "acc-films-income", input["incomeAccountId"])
	assert.Equal(t, "acc-films-expense", input["expenseAccountId"])
	assert.Equal(t, testTenantFilms, input["businessId"])
	assert.Equal(t, "149.99", input["unitPrice"])
	assert.Equal(t, "50 prints", input["description"])
}

func TestCreateInvoiceOmitsOptionalFields(t *testing.T) {
	f := newFakeWave(t)
	stubWritePath(f)
	adapter := newTestAdapter(t, f)

	in := sampleCreateInput(testBusinessPhoto)
	in.DueDate = time.Time{}
	in.Notes = ""
	_, err := adapter.CreateInvoice(context.Background(), in)
	require.NoError(t, err)

	call, ok := f.lastCall("invoiceCreate")
	require.True(t, ok)
	input := call.Variables["input"].(map[string]any)
	_, hasDue := input["dueDate"]
	_, hasMemo := input["memo"]
	assert.False(t, hasDue)
	assert.False(t, hasMemo)
}

func TestCreateInvoiceValidationStopsBeforeRemoteCalls(t *testing.T) {
	f := newFakeWave(t)
	adapter := newTestAdapter(t, f)

	tests := []struct {
		name   string
		mutate func(*billing.CreateInvoiceInput)
	}{
		{"missing business", func(in *billing.CreateInvoiceInput) { in.Business = "" }},
		{"missing email", func(in *billing.CreateInvoiceInput) { in.CustomerEmail = "" }},
		{"no items", func(in *billing.CreateInvoiceInput) { in.Items = nil }},
		{"zero quantity", func(in *billing.CreateInvoiceInput) {
			in.Items[0].Quantity = decimal.RequireFromString("0")
		}},
		{"negative price", func(in *billing.CreateInvoiceInput) {
			in.Items[0].UnitPrice = decimal.RequireFromString("-1")
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := sampleCreateInput(testBusinessPhoto)
			tt.mutate(&in)
			_, err := adapter.CreateInvoice(context.Background(), in)
			assert.ErrorIs(t, err, billing.ErrInvalidInput)
		})
	}

	assert.Equal(t, 0, f.count("businesses"))
}

func TestCreateInvoiceMutationFailures(t *testing.T) {
	t.Run("product input errors", func(t *testing.T) {
		f := newFakeWave(t)
		stubWritePath(f)
		f.on("productCreate", func(map[string]any) (int, string) {
			return dataResponse(`{"productCreate":{"didSucceed":false,"inputErrors":[{"code":"INVALID_PRICE","message":"price out of range","path":["input","unitPrice"]}],"product":null}}`)
		})
		adapter := newTestAdapter(t, f)

		_, err := adapter.CreateInvoice(context.Background(), sampleCreateInput(testBusinessPhoto))
		assert.ErrorIs(t, err, billing.ErrProviderRejected)
		assert.Contains(t, err.Error(), "price out of range")
		assert.Equal(t, 0, f.count("invoiceCreate"))
	})

	t.Run("invoice input errors", func(t *testing.T) {
		f := newFakeWave(t)
		stubWritePath(f)
		f.on("invoiceCreate", func(map[string]any) (int, string) {
			return dataResponse(`{"invoiceCreate":{"didSucceed":false,"inputErrors":[{"code":"INVALID_CUSTOMER","message":"customer does not exist","path":["input","customerId"]}],"invoice":null}}`)
		})
		adapter := newTestAdapter(t, f)

		_, err := adapter.CreateInvoice(context.Background(), sampleCreateInput(testBusinessPhoto))
		assert.ErrorIs(t, err, billing.ErrProviderRejected)
		assert.Contains(t, err.Error(), "customer does not exist")
	})

	t.Run("invoice missing from payload", func(t *testing.T) {
		f := newFakeWave(t)
		stubWritePath(f)
		f.on("invoiceCreate", func(map[string]any) (int, string) {
			return dataResponse(`{"invoiceCreate":{"didSucceed":true,"inputErrors":[],"invoice":null}}`)
		})
		adapter := newTestAdapter(t, f)

		_, err := adapter.CreateInvoice(context.Background(), sampleCreateInput(testBusinessPhoto))
		assert.ErrorIs(t, err, billing.ErrInvalidResponse)
	})
}
