// internal/infrastructure/database/postgres/cart_repository.go
package postgres

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/your-org/cart-service/internal/domain/cart"
	"gorm.io/gorm"
)

// CartRecord is the carts table row
type CartRecord struct {
	ID         string      `gorm:"primaryKey;type:varchar(64)"`
	Status     string      `gorm:"type:varchar(16);not null"`
	CustomerID *string     `gorm:"type:varchar(64)"`
	Products   productList `gorm:"type:jsonb;not null"`
	ExpiresAt  *time.Time
	CreatedAt  time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime:false"`
}

func (CartRecord) TableName() string {
	return "carts"
}

// productList stores the cart lines as a JSONB array
type productList []cart.LineItem

func (p productList) Value() (driver.Value, error) {
	if p == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(p)
}

func (p *productList) Scan(value interface{}) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		*p = productList{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported products column type %T", value)
	}
	return json.Unmarshal(data, p)
}

func toRecord(c *cart.Cart) *CartRecord {
	return &CartRecord{
		ID:         c.ID,
		Status:     string(c.Status),
		CustomerID: c.CustomerID,
		Products:   productList(c.Products),
		ExpiresAt:  c.ExpiresAt,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

func fromRecord(r *CartRecord) *cart.Cart {
	products := []cart.LineItem(r.Products)
	if products == nil {
		products = []cart.LineItem{}
	}
	return &cart.Cart{
		ID:         r.ID,
		Status:     cart.Status(r.Status),
		CustomerID: r.CustomerID,
		Products:   products,
		ExpiresAt:  r.ExpiresAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// CartRepository persists carts through GORM
type CartRepository struct {
	db *gorm.DB
}

// NewCartRepository creates a GORM-backed cart repository
func NewCartRepository(db *gorm.DB) *CartRepository {
	return &CartRepository{db: db}
}

var _ cart.Repository = (*CartRepository)(nil)

func (r *CartRepository) Create(ctx context.Context, c *cart.Cart) error {
	if err := r.db.WithContext(ctx).Create(toRecord(c)).Error; err != nil {
		return fmt.Errorf("failed to create cart %s: %w", c.ID, err)
	}
	return nil
}

func (r *CartRepository) FindByID(ctx context.Context, id string) (*cart.Cart, error) {
	var record CartRecord
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cart %s: %w", id, err)
	}
	return fromRecord(&record), nil
}

func (r *CartRepository) FindByCustomerID(ctx context.Context, customerID string) (*cart.Cart, error) {
	var record CartRecord
	err := r.db.WithContext(ctx).
		Where("customer_id = ? AND status = ?", customerID, string(cart.StatusOpen)).
		Order("created_at ASC").
		First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cart for customer %s: %w", customerID, err)
	}
	return fromRecord(&record), nil
}

// FindAllExpired returns open carts whose expiry is at or before the given time, oldest first
func (r *CartRepository) FindAllExpired(ctx context.Context, before time.Time) ([]*cart.Cart, error) {
	var records []CartRecord
	err := r.db.WithContext(ctx).
		Where("status = ? AND expires_at <= ?", string(cart.StatusOpen), before).
		Order("expires_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list expired carts: %w", err)
	}

	carts := make([]*cart.Cart, 0, len(records))
	for i := range records {
		carts = append(carts, fromRecord(&records[i]))
	}
	return carts, nil
}

func (r *CartRepository) Update(ctx context.Context, c *cart.Cart) error {
	if err := r.db.WithContext(ctx).Save(toRecord(c)).Error; err != nil {
		return fmt.Errorf("failed to update cart %s: %w", c.ID, err)
	}
	return nil
}

func (r *CartRepository) Remove(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Where("id = ?", id).Delete(&CartRecord{}).Error; err != nil {
		return fmt.Errorf("failed to remove cart %s: %w", id, err)
	}
	return nil
}
