package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	appbilling "github.com/goldenhour/backend/internal/application/billing"
)

// InvoiceHandler exposes the invoicing integration over HTTP.
type InvoiceHandler struct {
	BaseHandler
	service *appbilling.InvoiceService
}

// NewInvoiceHandler creates an InvoiceHandler.
func NewInvoiceHandler(service *appbilling.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// RegisterRoutes registers the invoicing routes on a router group.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/invoices", h.Create)
	rg.GET("/invoices", h.List)
	rg.DELETE("/invoices/:id", h.Delete)
	rg.PUT("/business", h.SetBusiness)
}

// Create creates an invoice for a business.
func (h *InvoiceHandler) Create(c *gin.Context) {
	var req CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var dueDate time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse("2006-01-02", req.DueDate)
		if err != nil {
			h.BadRequest(c, "due_date must be formatted yyyy-MM-dd")
			return
		}
		dueDate = parsed
	}

	appReq := appbilling.CreateInvoiceWithItemsRequest{
		Business:      req.Business,
		CustomerName:  req.CustomerName,
		CustomerEmail: req.CustomerEmail,
		Title:         req.Title,
		DueDate:       dueDate,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		appReq.Items = append(appReq.Items, appbilling.LineItemRequest{
			Name:        item.Name,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}

	result, err := h.service.CreateInvoiceWithItems(c.Request.Context(), appReq)
	if err != nil {
		h.HandleBillingError(c, err)
		return
	}
	h.Created(c, result)
}

// List aggregates invoices across every configured business, optionally
// filtered by customer email.
func (h *InvoiceHandler) List(c *gin.Context) {
	invoices, err := h.service.ListInvoices(c.Request.Context(), c.Query("email"))
	if err != nil {
		h.HandleBillingError(c, err)
		return
	}
	h.SuccessWithMeta(c, invoices, len(invoices))
}

// Delete removes an invoice within the active business context.
func (h *InvoiceHandler) Delete(c *gin.Context) {
	invoiceID := c.Param("id")
	if err := h.service.DeleteInvoice(c.Request.Context(), invoiceID); err != nil {
		h.HandleBillingError(c, err)
		return
	}
	h.NoContent(c)
}

// SetBusiness switches the active business context.
func (h *InvoiceHandler) SetBusiness(c *gin.Context) {
	var req SetBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if err := h.service.SetActiveBusiness(c.Request.Context(), req.Business); err != nil {
		h.HandleBillingError(c, err)
		return
	}
	h.Success(c, gin.H{"business": req.Business})
}
