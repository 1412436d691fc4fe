package services

import (
	"context"
	"log"
	"strings"

	"gummy-store/models"

	"github.com/google/uuid"
)

type CartStore interface {
	ListBySession(ctx context.Context, sessionID string) ([]models.CartItem, error)
	Add(ctx context.Context, item *models.CartItem) error
	UpdateQuantity(ctx context.Context, sessionID string, id uuid.UUID, quantity int) (bool, error)
	Remove(ctx context.Context, sessionID string, id uuid.UUID) (bool, error)
	Clear(ctx context.Context, sessionID string) (int64, error)
}

type CartService struct {
	store CartStore
}

func NewCartService(store CartStore) *CartService {
	return &CartService{store: store}
}

// Get returns the session cart. A failed load is logged and shows as an
// empty cart.
func (s *CartService) Get(ctx context.Context, session models.Session) models.Cart {
	items, err := s.store.ListBySession(ctx, session.ID)
	if err != nil {
		log.Printf("[cart] load failed for %s: %v", session.ID, err)
		return models.NewCart(session.ID, nil)
	}
	return models.NewCart(session.ID, items)
}

func (s *CartService) Add(ctx context.Context, session models.Session, req models.AddCartItemRequest) (*models.CartItem, error) {
	item := &models.CartItem{
		SessionID:     session.ID,
		ProductName:   strings.TrimSpace(req.ProductName),
		ProductFlavor: strings.TrimSpace(req.ProductFlavor),
		Quantity:      req.Quantity,
		ProductImage:  req.ProductImage,
	}

	if item.ProductName == "" {
		item.ProductName = models.GummyHair.Name
	}
	if req.ProductPrice != nil {
		if req.ProductPrice.IsNegative() {
			return nil, &models.ValidationError{Fields: models.FieldErrors{"product_price": "Preço inválido"}}
		}
		item.ProductPrice = req.ProductPrice.Round(2)
	} else {
		item.ProductPrice = models.GummyHair.PixPrice
	}
	if item.ProductFlavor == "" {
		item.ProductFlavor = models.GummyHair.Flavors[0]
	} else if item.ProductName == models.GummyHair.Name && !models.GummyHair.HasFlavor(item.ProductFlavor) {
		return nil, &models.ValidationError{Fields: models.FieldErrors{"product_flavor": "Sabor indisponível"}}
	}
	if item.Quantity == 0 {
		item.Quantity = 1
	}
	if item.Quantity < 1 {
		return nil, models.ErrInvalidQuantity
	}
	if item.ProductImage == nil && item.ProductName == models.GummyHair.Name {
		image := models.GummyHair.ImageURL
		item.ProductImage = &image
	}

	if err := s.store.Add(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// UpdateQuantity sets an item's quantity. Values below 1 are rejected
// rather than deleting the row; removal goes through Remove.
func (s *CartService) UpdateQuantity(ctx context.Context, session models.Session, id uuid.UUID, quantity int) (models.Cart, error) {
	if quantity < 1 {
		return models.Cart{}, models.ErrInvalidQuantity
	}

	ok, err := s.store.UpdateQuantity(ctx, session.ID, id, quantity)
	if err != nil {
		return models.Cart{}, err
	}
	if !ok {
		return models.Cart{}, models.ErrNotFound
	}
	return s.Get(ctx, session), nil
}

func (s *CartService) Remove(ctx context.Context, session models.Session, id uuid.UUID) (models.Cart, error) {
	ok, err := s.store.Remove(ctx, session.ID, id)
	if err != nil {
		return models.Cart{}, err
	}
	if !ok {
		return models.Cart{}, models.ErrNotFound
	}
	return s.Get(ctx, session), nil
}

func (s *CartService) Clear(ctx context.Context, session models.Session) error {
	_, err := s.store.Clear(ctx, session.ID)
	return err
}

func (s *CartService) Count(ctx context.Context, session models.Session) int {
	return s.Get(ctx, session).Count
}
