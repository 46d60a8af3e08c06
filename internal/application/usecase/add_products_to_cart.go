// internal/application/usecase/add_products_to_cart.go
package usecase

import (
	"context"
	"fmt"

	"github.com/your-org/cart-service/internal/domain/cart"
	"github.com/your-org/cart-service/internal/pkg/apperror"
)

// AddProductsToCartUseCase adds line items to an open cart
type AddProductsToCartUseCase struct {
	repo      cart.Repository
	lifecycle Lifecycle
}

// NewAddProductsToCartUseCase creates a new add products use case
func NewAddProductsToCartUseCase(repo cart.Repository, lifecycle Lifecycle) *AddProductsToCartUseCase {
	return &AddProductsToCartUseCase{repo: repo, lifecycle: lifecycle}
}

// Execute validates every item before touching the cart; one bad item rejects the whole batch.
func (uc *AddProductsToCartUseCase) Execute(ctx context.Context, cartID string, products []cart.LineItem) error {
	c, err := loadCart(ctx, uc.repo, cartID)
	if err != nil {
		return err
	}

	if !c.IsOpen() {
		return apperror.PreconditionFailedf("Cart with id %s is not open for adding products", cartID)
	}

	for _, product := range products {
		if err := validateLineItem(product); err != nil {
			return err
		}
	}

	c.AddProducts(products, uc.lifecycle.now(), uc.lifecycle.ttl())

	if err := uc.repo.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update cart %s: %w", cartID, err)
	}

	return nil
}

func validateLineItem(product cart.LineItem) error {
	if product.Quantity <= 0 {
		return apperror.BadRequestf("Product quantity must be greater than zero for product id %s", product.ProductID)
	}
	if product.Price < 0 {
		return apperror.BadRequestf("Product price cannot be negative for product id %s", product.ProductID)
	}
	if product.ProductID == "" {
		return apperror.BadRequest("Product id is required")
	}
	return nil
}

func loadCart(ctx context.Context, repo cart.Repository, cartID string) (*cart.Cart, error) {
	c, err := repo.FindByID(ctx, cartID)
	if err != nil {
		return nil, fmt.Errorf("failed to load cart %s: %w", cartID, err)
	}
	if c == nil {
		return nil, apperror.NotFoundf("Cart with id %s not found", cartID)
	}
	return c, nil
}
