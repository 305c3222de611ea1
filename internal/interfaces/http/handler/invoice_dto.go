package handler

import "github.com/shopspring/decimal"

// LineItemRequest is one billable line in an invoice creation request.
type LineItemRequest struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Quantity    int64           `json:"quantity" binding:"required,min=1"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"required"`
}

// CreateInvoiceRequest creates an invoice with one or more lines.
type CreateInvoiceRequest struct {
	Business      string            `json:"business" binding:"required"`
	CustomerName  string            `json:"customer_name"`
	CustomerEmail string            `json:"customer_email" binding:"required,email"`
	Title         string            `json:"title"`
	Items         []LineItemRequest `json:"items" binding:"required,min=1,dive"`
	DueDate       string            `json:"due_date"` // yyyy-MM-dd
	Notes         string            `json:"notes"`
}

// SetBusinessRequest switches the active business context.
type SetBusinessRequest struct {
	Business string `json:"business" binding:"required"`
}
