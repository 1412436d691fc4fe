package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CartItem struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	SessionID     string          `json:"session_id" db:"session_id"`
	ProductName   string          `json:"product_name" db:"product_name"`
	ProductPrice  decimal.Decimal `json:"product_price" db:"product_price"`
	ProductFlavor string          `json:"product_flavor" db:"product_flavor"`
	Quantity      int             `json:"quantity" db:"quantity"`
	ProductImage  *string         `json:"product_image,omitempty" db:"product_image"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Cart struct {
	SessionID string          `json:"session_id"`
	Items     []CartItem      `json:"items"`
	Total     decimal.Decimal `json:"total"`
	Count     int             `json:"count"`
}

// NewCart computes the total (sum of quantity x unit price) and the badge
// count (sum of quantities) over items.
func NewCart(sessionID string, items []CartItem) Cart {
	if items == nil {
		items = []CartItem{}
	}

	total := decimal.Zero
	count := 0
	for _, item := range items {
		total = total.Add(item.Subtotal())
		count += item.Quantity
	}

	return Cart{
		SessionID: sessionID,
		Items:     items,
		Total:     total.Round(2),
		Count:     count,
	}
}
