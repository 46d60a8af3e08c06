// internal/interfaces/http/handlers/cart.go
package handlers

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/cart-service/internal/application/usecase"
	"github.com/your-org/cart-service/internal/domain/cart"
	"github.com/your-org/cart-service/internal/interfaces/http/middleware"
	"github.com/your-org/cart-service/internal/pkg/apperror"
)

const (
	msgCartIDRequired   = "cartId path parameter is required"
	msgProductsRequired = "products array is required in the request body"
	msgInvalidBody      = "Invalid request body"
	msgInternalError    = "Internal Server Error"
)

type (
	CartOpener interface {
		Execute(ctx context.Context, in usecase.OpenCartInput) (*usecase.OpenCartOutput, error)
	}
	CartGetter interface {
		Execute(ctx context.Context, cartID string) (*usecase.GetCartOutput, error)
	}
	ProductAdder interface {
		Execute(ctx context.Context, cartID string, products []cart.LineItem) error
	}
	ProductRemover interface {
		Execute(ctx context.Context, cartID string, productIDs []string) error
	}
	CartCheckout interface {
		Execute(ctx context.Context, cartID string) error
	}
	CartExpirer interface {
		Execute(ctx context.Context) (int, error)
	}
)

// CartUseCases groups the operations exposed over HTTP
type CartUseCases struct {
	Open     CartOpener
	Get      CartGetter
	Add      ProductAdder
	Remove   ProductRemover
	Checkout CartCheckout
	Expire   CartExpirer
}

// CartHandler handles cart endpoints
type CartHandler struct {
	useCases CartUseCases
	log      *logrus.Logger
}

// NewCartHandler creates a new cart handler
func NewCartHandler(useCases CartUseCases, log *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCases: useCases,
		log:      log,
	}
}

// AddProductsRequest is the body of POST /carts/:cart_id/products
type AddProductsRequest struct {
	Products []cart.LineItem `json:"products"`
}

// RemoveProductsRequest is the body of DELETE /carts/:cart_id/products
type RemoveProductsRequest struct {
	Products []string `json:"products"`
}

// OpenCart handles POST /carts
func (h *CartHandler) OpenCart(c *gin.Context) {
	var req usecase.OpenCartInput
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return
	}

	out, err := h.useCases.Open.Execute(c.Request.Context(), req)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

// GetCart handles GET /carts/:cart_id
func (h *CartHandler) GetCart(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}

	out, err := h.useCases.Get.Execute(c.Request.Context(), cartID)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": out})
}

// AddProducts handles POST /carts/:cart_id/products
func (h *CartHandler) AddProducts(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}

	var req AddProductsRequest
	if !h.bindBody(c, &req) {
		return
	}
	if len(req.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgProductsRequired})
		return
	}

	if err := h.useCases.Add.Execute(c.Request.Context(), cartID, req.Products); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Products added to cart successfully"},
	})
}

// RemoveProducts handles DELETE /carts/:cart_id/products
func (h *CartHandler) RemoveProducts(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}

	var req RemoveProductsRequest
	if !h.bindBody(c, &req) {
		return
	}
	if len(req.Products) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgProductsRequired})
		return
	}

	if err := h.useCases.Remove.Execute(c.Request.Context(), cartID, req.Products); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Products removed from cart successfully"},
	})
}

// Checkout handles POST /carts/:cart_id/checkout
func (h *CartHandler) Checkout(c *gin.Context) {
	cartID, ok := h.cartID(c)
	if !ok {
		return
	}

	if err := h.useCases.Checkout.Execute(c.Request.Context(), cartID); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"data": gin.H{"message": "Cart checked out successfully"},
	})
}

// ExpireCarts handles POST /carts/expire
func (h *CartHandler) ExpireCarts(c *gin.Context) {
	removed, err := h.useCases.Expire.Execute(c.Request.Context())
	if err != nil {
		h.log.WithField("removed", removed).Warn("Cart expiry stopped early")
		h.respondError(c, err)
		return
	}

	h.log.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"removed":    removed,
	}).Info("Expired carts removed")

	c.JSON(http.StatusOK, gin.H{"data": nil})
}

func (h *CartHandler) cartID(c *gin.Context) (string, bool) {
	cartID := strings.TrimSpace(c.Param("cart_id"))
	if cartID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": msgCartIDRequired})
		return "", false
	}
	return cartID, true
}

// bindBody decodes a JSON body; an absent body counts as missing products
func (h *CartHandler) bindBody(c *gin.Context, dest interface{}) bool {
	if err := c.ShouldBindJSON(dest); err != nil {
		if errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, gin.H{"message": msgProductsRequired})
			return false
		}
		c.JSON(http.StatusBadRequest, gin.H{"message": msgInvalidBody})
		return false
	}
	return true
}

// respondError maps classified errors to their status; anything else is logged and hidden
func (h *CartHandler) respondError(c *gin.Context, err error) {
	if appErr, ok := apperror.As(err); ok && appErr.Kind != apperror.KindInternal {
		c.JSON(appErr.HTTPStatus(), gin.H{"message": appErr.Message})
		return
	}

	h.log.WithFields(logrus.Fields{
		"request_id": middleware.GetRequestID(c),
		"cart_id":    c.Param("cart_id"),
		"path":       c.FullPath(),
	}).WithError(err).Error("Unhandled error")

	c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternalError})
}
