package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/your-org/cart-service/internal/application/usecase"
	"github.com/your-org/cart-service/internal/domain/cart"
	"github.com/your-org/cart-service/internal/pkg/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubOpener func(ctx context.Context, in usecase.OpenCartInput) (*usecase.OpenCartOutput, error)

func (f stubOpener) Execute(ctx context.Context, in usecase.OpenCartInput) (*usecase.OpenCartOutput, error) {
	return f(ctx, in)
}

type stubGetter func(ctx context.Context, cartID string) (*usecase.GetCartOutput, error)

func (f stubGetter) Execute(ctx context.Context, cartID string) (*usecase.GetCartOutput, error) {
	return f(ctx, cartID)
}

type stubAdder func(ctx context.Context, cartID string, products []cart.LineItem) error

func (f stubAdder) Execute(ctx context.Context, cartID string, products []cart.LineItem) error {
	return f(ctx, cartID, products)
}

type stubRemover func(ctx context.Context, cartID string, productIDs []string) error

func (f stubRemover) Execute(ctx context.Context, cartID string, productIDs []string) error {
	return f(ctx, cartID, productIDs)
}

type stubCheckout func(ctx context.Context, cartID string) error

func (f stubCheckout) Execute(ctx context.Context, cartID string) error {
	return f(ctx, cartID)
}

type stubExpirer func(ctx context.Context) (int, error)

func (f stubExpirer) Execute(ctx context.Context) (int, error) {
	return f(ctx)
}

func newRouter(useCases CartUseCases) (*gin.Engine, *test.Hook) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	hook := test.NewLocal(log)

	h := NewCartHandler(useCases, log)

	router := gin.New()
	carts := router.Group("/api/v1/carts")
	carts.POST("", h.OpenCart)
	carts.POST("/expire", h.ExpireCarts)
	carts.GET("/:cart_id", h.GetCart)
	carts.POST("/:cart_id/products", h.AddProducts)
	carts.DELETE("/:cart_id/products", h.RemoveProducts)
	carts.POST("/:cart_id/checkout", h.Checkout)

	return router, hook
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestOpenCartHandler(t *testing.T) {
	var got usecase.OpenCartInput
	router, _ := newRouter(CartUseCases{
		Open: stubOpener(func(ctx context.Context, in usecase.OpenCartInput) (*usecase.OpenCartOutput, error) {
			got = in
			if in.CustomerID == "taken" {
				return nil, apperror.Conflict(usecase.ErrMsgCartExistsForCustomer)
			}
			return &usecase.OpenCartOutput{ID: "cart-1"}, nil
		}),
	})

	t.Run("empty body", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/carts", "")

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"data":{"id":"cart-1"}}`, w.Body.String())
	})

	t.Run("with customer", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/carts", `{"customer_id":"customer-1","document":"123"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, usecase.OpenCartInput{CustomerID: "customer-1", Document: "123"}, got)
	})

	t.Run("conflict", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/carts", `{"customer_id":"taken"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"message":"Cart already exists for this customer"}`, w.Body.String())
	})

	t.Run("camelCase customer id", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/carts", `{"customerId":"customer-2"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "customer-2", got.CustomerID)
	})

	t.Run("conflict with camelCase customer id", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/carts", `{"customerId":"taken"}`)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.JSONEq(t, `{"message":"Cart already exists for this customer"}`, w.Body.String())
	})

	t.Run("malformed body", func(t *testing.T) {
		w := do(router, http.MethodPost, "/api/v1/carts", `{"customer_id":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestGetCartHandler(t *testing.T) {
	router, _ := newRouter(CartUseCases{
		Get: stubGetter(func(ctx context.Context, cartID string) (*usecase.GetCartOutput, error) {
			if cartID != "cart-1" {
				return nil, apperror.NotFoundf("Cart with id %s not found", cartID)
			}
			c := &cart.Cart{ID: "cart-1", Status: cart.StatusOpen, Products: []cart.LineItem{
				{ProductID: "prod-1", Quantity: 2, Price: 1.5},
			}}
			return &usecase.GetCartOutput{Cart: c, Totals: c.Totals()}, nil
		}),
	})

	w := do(router, http.MethodGet, "/api/v1/carts/cart-1", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sub_total":"3"`)
	assert.Contains(t, w.Body.String(), `"item_count":1`)

	w = do(router, http.MethodGet, "/api/v1/carts/cart-9", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"message":"Cart with id cart-9 not found"}`, w.Body.String())
}

func TestAddProductsHandler(t *testing.T) {
	var gotID string
	var gotProducts []cart.LineItem
	router, _ := newRouter(CartUseCases{
		Add: stubAdder(func(ctx context.Context, cartID string, products []cart.LineItem) error {
			gotID, gotProducts = cartID, products
			if cartID == "closed" {
				return apperror.PreconditionFailedf("Cart with id %s is not open for adding products", cartID)
			}
			if products[0].Quantity <= 0 {
				return apperror.BadRequestf("Product quantity must be greater than zero for product id %s", products[0].ProductID)
			}
			return nil
		}),
	})

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		want   string
	}{
		{
			name:   "success",
			path:   "/api/v1/carts/cart-1/products",
			body:   `{"products":[{"product_id":"prod-1","quantity":2,"price":10}]}`,
			status: http.StatusOK,
			want:   `{"data":{"message":"Products added to cart successfully"}}`,
		},
		{
			name:   "missing products",
			path:   "/api/v1/carts/cart-1/products",
			body:   `{}`,
			status: http.StatusBadRequest,
			want:   `{"message":"products array is required in the request body"}`,
		},
		{
			name:   "empty products",
			path:   "/api/v1/carts/cart-1/products",
			body:   `{"products":[]}`,
			status: http.StatusBadRequest,
			want:   `{"message":"products array is required in the request body"}`,
		},
		{
			name:   "no body",
			path:   "/api/v1/carts/cart-1/products",
			status: http.StatusBadRequest,
			want:   `{"message":"products array is required in the request body"}`,
		},
		{
			name:   "malformed body",
			path:   "/api/v1/carts/cart-1/products",
			body:   `{"products":[`,
			status: http.StatusBadRequest,
			want:   `{"message":"Invalid request body"}`,
		},
		{
			name:   "invalid quantity",
			path:   "/api/v1/carts/cart-1/products",
			body:   `{"products":[{"product_id":"prod-1","quantity":0,"price":10}]}`,
			status: http.StatusBadRequest,
			want:   `{"message":"Product quantity must be greater than zero for product id prod-1"}`,
		},
		{
			name:   "closed cart",
			path:   "/api/v1/carts/closed/products",
			body:   `{"products":[{"product_id":"prod-1","quantity":1,"price":1}]}`,
			status: http.StatusPreconditionFailed,
			want:   `{"message":"Cart with id closed is not open for adding products"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, http.MethodPost, tt.path, tt.body)

			assert.Equal(t, tt.status, w.Code)
			assert.JSONEq(t, tt.want, w.Body.String())
		})
	}

	do(router, http.MethodPost, "/api/v1/carts/cart-1/products", `{"products":[{"product_id":"prod-1","quantity":2,"price":10}]}`)
	assert.Equal(t, "cart-1", gotID)
	assert.Equal(t, []cart.LineItem{{ProductID: "prod-1", Quantity: 2, Price: 10}}, gotProducts)
}

func TestRemoveProductsHandler(t *testing.T) {
	var gotIDs []string
	router, _ := newRouter(CartUseCases{
		Remove: stubRemover(func(ctx context.Context, cartID string, productIDs []string) error {
			gotIDs = productIDs
			return nil
		}),
	})

	w := do(router, http.MethodDelete, "/api/v1/carts/cart-1/products", `{"products":["prod-1","prod-2"]}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"message":"Products removed from cart successfully"}}`, w.Body.String())
	assert.Equal(t, []string{"prod-1", "prod-2"}, gotIDs)

	w = do(router, http.MethodDelete, "/api/v1/carts/cart-1/products", `{"products":[]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutHandler(t *testing.T) {
	router, hook := newRouter(CartUseCases{
		Checkout: stubCheckout(func(ctx context.Context, cartID string) error {
			switch cartID {
			case "empty":
				return apperror.PreconditionFailedf("Cart with id %s has no products to checkout", cartID)
			case "broken":
				return errors.New("redis: connection refused")
			}
			return nil
		}),
	})

	w := do(router, http.MethodPost, "/api/v1/carts/cart-1/checkout", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":{"message":"Cart checked out successfully"}}`, w.Body.String())

	w = do(router, http.MethodPost, "/api/v1/carts/empty/checkout", "")
	assert.Equal(t, http.StatusPreconditionFailed, w.Code)

	w = do(router, http.MethodPost, "/api/v1/carts/broken/checkout", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"message":"Internal Server Error"}`, w.Body.String())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
	assert.Equal(t, "broken", hook.LastEntry().Data["cart_id"])
}

func TestExpireCartsHandler(t *testing.T) {
	calls := 0
	router, hook := newRouter(CartUseCases{
		Expire: stubExpirer(func(ctx context.Context) (int, error) {
			calls++
			if calls > 1 {
				return 1, errors.New("delete failed")
			}
			return 3, nil
		}),
	})

	w := do(router, http.MethodPost, "/api/v1/carts/expire", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":null}`, w.Body.String())
	assert.Equal(t, 3, hook.LastEntry().Data["removed"])

	w = do(router, http.MethodPost, "/api/v1/carts/expire", "")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRequestBodyIsNotRequiredForCheckout(t *testing.T) {
	router, _ := newRouter(CartUseCases{
		Checkout: stubCheckout(func(ctx context.Context, cartID string) error { return nil }),
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/carts/cart-1/checkout", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
