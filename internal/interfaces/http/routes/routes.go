// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/cart-service/internal/config"
	"github.com/your-org/cart-service/internal/interfaces/http/handlers"
	"github.com/your-org/cart-service/internal/interfaces/http/middleware"
)

// SetupCartRoutes sets up cart related routes
func SetupCartRoutes(rg *gin.RouterGroup, cartHandler *handlers.CartHandler, cfg *config.Config) {
	carts := rg.Group("/carts")
	{
		carts.POST("", cartHandler.OpenCart)
		carts.GET("/:cart_id", cartHandler.GetCart)
		carts.POST("/:cart_id/products", cartHandler.AddProducts)
		carts.DELETE("/:cart_id/products", cartHandler.RemoveProducts)
		carts.POST("/:cart_id/checkout", cartHandler.Checkout)

		// Scheduler-only endpoints
		carts.POST("/expire", middleware.SchedulerAuth(cfg), cartHandler.ExpireCarts)
	}
}

// SetupRoutes sets up all API routes
func SetupRoutes(rg *gin.RouterGroup, cartHandler *handlers.CartHandler, cfg *config.Config) {
	SetupCartRoutes(rg, cartHandler, cfg)
}
