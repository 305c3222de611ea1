package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/goldenhour/backend/internal/infrastructure/logger"
	"github.com/goldenhour/backend/internal/interfaces/http/handler"
	"github.com/goldenhour/backend/internal/interfaces/http/middleware"
)

// Setup builds the gin engine with middleware and routes.
func Setup(log *zap.Logger, env string, invoiceHandler *handler.InvoiceHandler, systemHandler *handler.SystemHandler) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(logger.GinMiddleware(log))
	r.Use(logger.Recovery(log))

	systemHandler.RegisterRoutes(r)

	v1 := r.Group("/api/v1")
	invoiceHandler.RegisterRoutes(v1)

	return r
}
