// internal/application/usecase/get_cart.go
package usecase

import (
	"context"

	"github.com/your-org/cart-service/internal/domain/cart"
)

// GetCartOutput is a cart together with its computed totals
type GetCartOutput struct {
	Cart   *cart.Cart  `json:"cart"`
	Totals cart.Totals `json:"totals"`
}

// GetCartUseCase reads a cart in any status
type GetCartUseCase struct {
	repo cart.Repository
}

// NewGetCartUseCase creates a new get cart use case
func NewGetCartUseCase(repo cart.Repository) *GetCartUseCase {
	return &GetCartUseCase{repo: repo}
}

func (uc *GetCartUseCase) Execute(ctx context.Context, cartID string) (*GetCartOutput, error) {
	c, err := loadCart(ctx, uc.repo, cartID)
	if err != nil {
		return nil, err
	}

	return &GetCartOutput{Cart: c, Totals: c.Totals()}, nil
}
