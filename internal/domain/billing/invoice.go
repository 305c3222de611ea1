package billing

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the lifecycle status reported by the accounting provider.
type InvoiceStatus string

// Invoice statuses observed on the wire.
const (
	InvoiceStatusDraft   InvoiceStatus = "DRAFT"
	InvoiceStatusSaved   InvoiceStatus = "SAVED"
	InvoiceStatusSent    InvoiceStatus = "SENT"
	InvoiceStatusViewed  InvoiceStatus = "VIEWED"
	InvoiceStatusPaid    InvoiceStatus = "PAID"
	InvoiceStatusOverdue InvoiceStatus = "OVERDUE"
)

// Invoice is the normalized invoice record returned to callers. Monetary and
// date fields are already normalized regardless of the wire encoding; ID is
// unique within a business tenant only.
type Invoice struct {
	ID            string          `json:"id"`
	Business      string          `json:"business"`
	Title         string          `json:"title"`
	ViewURL       string          `json:"view_url"`
	CreatedAt     time.Time       `json:"created_at"`
	DueDate       *time.Time      `json:"due_date,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	Status        InvoiceStatus   `json:"status"`
	CustomerID    string          `json:"customer_id,omitempty"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Memo          string          `json:"memo,omitempty"`
	Footer        string          `json:"footer,omitempty"`
	LastSentAt    *time.Time      `json:"last_sent_at,omitempty"`
	LastSentVia   string          `json:"last_sent_via,omitempty"`
	LastViewedAt  *time.Time      `json:"last_viewed_at,omitempty"`
	Items         []LineItem      `json:"items"`
}

// LineItem is a single billed line on an invoice.
type LineItem struct {
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// SortInvoicesByCreatedAtDesc orders invoices newest first. The sort is
// stable so records with equal timestamps keep their insertion order.
func SortInvoicesByCreatedAtDesc(invoices []Invoice) {
	sort.SliceStable(invoices, func(i, j int) bool {
		return invoices[i].CreatedAt.After(invoices[j].CreatedAt)
	})
}
