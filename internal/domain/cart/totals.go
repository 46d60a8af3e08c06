// internal/domain/cart/totals.go
package cart

import "github.com/shopspring/decimal"

// Totals represents calculated cart totals
type Totals struct {
	ItemCount     int             `json:"item_count"`     // Number of distinct products
	TotalQuantity int             `json:"total_quantity"` // Sum of all quantities
	SubTotal      decimal.Decimal `json:"sub_total"`
}

// Totals sums the cart lines with exact decimal arithmetic
func (c *Cart) Totals() Totals {
	totals := Totals{
		ItemCount: len(c.Products),
		SubTotal:  decimal.Zero,
	}

	for _, item := range c.Products {
		totals.TotalQuantity += item.Quantity
		line := decimal.NewFromFloat(item.Price).Mul(decimal.NewFromInt(int64(item.Quantity)))
		totals.SubTotal = totals.SubTotal.Add(line)
	}

	return totals
}
