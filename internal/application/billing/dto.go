package billing

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineItemRequest is one billable line in an invoice creation request.
type LineItemRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// CreateInvoiceRequest creates a single-line invoice.
type CreateInvoiceRequest struct {
	Business      string          `json:"business"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Title         string          `json:"title"`
	Item          LineItemRequest `json:"item"`
	DueDate       time.Time       `json:"due_date"`
	Notes         string          `json:"notes"`
}

// CreateInvoiceWithItemsRequest creates a multi-line invoice.
type CreateInvoiceWithItemsRequest struct {
	Business      string            `json:"business"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email"`
	Title         string            `json:"title"`
	Items         []LineItemRequest `json:"items"`
	DueDate       time.Time         `json:"due_date"`
	Notes         string            `json:"notes"`
}

// InvoiceResult is the outcome of a successful invoice creation.
type InvoiceResult struct {
	InvoiceID string `json:"invoice_id"`
	ViewURL   string `json:"view_url"`
}
