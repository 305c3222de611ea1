package handler

import "github.com/gin-gonic/gin"

// BusinessDirectory reports the configured businesses and the active context.
type BusinessDirectory interface {
	Businesses() []string
	ActiveBusiness() (string, bool)
}

// SystemHandler exposes health and status endpoints.
type SystemHandler struct {
	BaseHandler
	directory BusinessDirectory
}

// NewSystemHandler creates a SystemHandler.
func NewSystemHandler(directory BusinessDirectory) *SystemHandler {
	return &SystemHandler{directory: directory}
}

// RegisterRoutes registers the system routes.
func (h *SystemHandler) RegisterRoutes(r *gin.Engine) {
	r.GET("/health", h.Health)
}

// Health reports service liveness and business context state.
func (h *SystemHandler) Health(c *gin.Context) {
	active, initialized := h.directory.ActiveBusiness()
	h.Success(c, gin.H{
		"status":          "ok",
		"businesses":      h.directory.Businesses(),
		"active_business": active,
		"initialized":     initialized,
	})
}
