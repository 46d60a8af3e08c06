// internal/application/usecase/remove_products_from_cart.go
package usecase

import (
	"context"
	"fmt"

	"github.com/your-org/cart-service/internal/domain/cart"
	"github.com/your-org/cart-service/internal/pkg/apperror"
)

// RemoveProductsFromCartUseCase drops line items from an open cart
type RemoveProductsFromCartUseCase struct {
	repo      cart.Repository
	lifecycle Lifecycle
}

// NewRemoveProductsFromCartUseCase creates a new remove products use case
func NewRemoveProductsFromCartUseCase(repo cart.Repository, lifecycle Lifecycle) *RemoveProductsFromCartUseCase {
	return &RemoveProductsFromCartUseCase{repo: repo, lifecycle: lifecycle}
}

// Execute removes the given product ids; ids not in the cart are ignored
func (uc *RemoveProductsFromCartUseCase) Execute(ctx context.Context, cartID string, productIDs []string) error {
	c, err := loadCart(ctx, uc.repo, cartID)
	if err != nil {
		return err
	}

	if !c.IsOpen() {
		return apperror.PreconditionFailedf("Cart with id %s is not open for removing products", cartID)
	}

	c.RemoveProducts(productIDs, uc.lifecycle.now(), uc.lifecycle.ttl())

	if err := uc.repo.Update(ctx, c); err != nil {
		return fmt.Errorf("failed to update cart %s: %w", cartID, err)
	}

	return nil
}
