package repositories

import (
	"context"
	"fmt"
	"time"

	"gummy-store/models"

	"github.com/google/uuid"
)

type CartRepository struct {
	table *Table
}

func NewCartRepository(db DBTX) *CartRepository {
	return &CartRepository{table: mustTable(db, "cart_items")}
}

func (r *CartRepository) ListBySession(ctx context.Context, sessionID string) ([]models.CartItem, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("sessionID is empty")
	}

	return SelectInto[models.CartItem](ctx, r.table, Query{
		Filters:    []Eq{{"session_id", sessionID}},
		OrderBy:    "created_at",
		Descending: true,
	})
}

func (r *CartRepository) Add(ctx context.Context, item *models.CartItem) error {
	if item.SessionID == "" {
		return fmt.Errorf("sessionID is empty")
	}

	created, err := InsertInto[models.CartItem](ctx, r.table, map[string]any{
		"session_id":     item.SessionID,
		"product_name":   item.ProductName,
		"product_price":  item.ProductPrice,
		"product_flavor": item.ProductFlavor,
		"quantity":       item.Quantity,
		"product_image":  item.ProductImage,
	})
	if err != nil {
		return err
	}

	*item = *created
	return nil
}

func (r *CartRepository) UpdateQuantity(ctx context.Context, sessionID string, id uuid.UUID, quantity int) (bool, error) {
	affected, err := r.table.Update(ctx,
		map[string]any{"quantity": quantity, "updated_at": time.Now()},
		[]Eq{{"id", id}, {"session_id", sessionID}},
	)
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *CartRepository) Remove(ctx context.Context, sessionID string, id uuid.UUID) (bool, error) {
	affected, err := r.table.Delete(ctx, []Eq{{"id", id}, {"session_id", sessionID}})
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *CartRepository) Clear(ctx context.Context, sessionID string) (int64, error) {
	if sessionID == "" {
		return 0, fmt.Errorf("sessionID is empty")
	}
	return r.table.Delete(ctx, []Eq{{"session_id", sessionID}})
}
