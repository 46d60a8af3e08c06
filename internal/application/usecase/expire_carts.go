// internal/application/usecase/expire_carts.go
package usecase

import (
	"context"
	"fmt"

	"github.com/your-org/cart-service/internal/domain/cart"
)

// ExpireCartsUseCase deletes open carts whose expiry has passed
type ExpireCartsUseCase struct {
	repo      cart.Repository
	lifecycle Lifecycle
}

// NewExpireCartsUseCase creates a new expire carts use case
func NewExpireCartsUseCase(repo cart.Repository, lifecycle Lifecycle) *ExpireCartsUseCase {
	return &ExpireCartsUseCase{repo: repo, lifecycle: lifecycle}
}

// Execute removes expired carts one at a time in the order the repository returns them.
// The first failed removal stops the run; the count of carts already removed is returned with it.
func (uc *ExpireCartsUseCase) Execute(ctx context.Context) (int, error) {
	expired, err := uc.repo.FindAllExpired(ctx, uc.lifecycle.now())
	if err != nil {
		return 0, fmt.Errorf("failed to list expired carts: %w", err)
	}

	removed := 0
	for _, c := range expired {
		if err := uc.repo.Remove(ctx, c.ID); err != nil {
			return removed, fmt.Errorf("failed to remove expired cart %s: %w", c.ID, err)
		}
		removed++
	}

	return removed, nil
}
