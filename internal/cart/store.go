package cart

import (
	"context"

	"github.com/phuoctoan/shop-orders/internal/catalog"
)

// SessionStore persists one cart per shopper session key. Load returns an
// empty cart for an unknown key, never an error for absence.
type SessionStore interface {
	Load(ctx context.Context, key string) (Cart, error)
	Save(ctx context.Context, key string, c Cart) error
	Delete(ctx context.Context, key string) error
}

// Store is the shopper-facing cart API. Mutations are last-write-wins at
// session granularity; a cart has a single owner so no locking is done.
type Store struct {
	sessions SessionStore
	catalog  catalog.Lookup
}

func NewStore(sessions SessionStore, cat catalog.Lookup) *Store {
	return &Store{sessions: sessions, catalog: cat}
}

func (s *Store) Get(ctx context.Context, key string) (Cart, error) {
	return s.sessions.Load(ctx, key)
}

// AddItem puts quantity units of a product into the cart, merging with an
// existing line for the same product. The price and image are snapshotted
// from the catalog at add time. Returns catalog.ErrNotFound for an unknown
// product.
func (s *Store) AddItem(ctx context.Context, key string, productID int64, quantity int) (Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	p, err := s.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	c, err := s.sessions.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	if i := c.find(productID); i >= 0 {
		c[i].Quantity += quantity
	} else {
		c = append(c, Line{
			ProductID: p.ID,
			Name:      p.Name,
			ImageURL:  p.MainImage(),
			UnitPrice: p.UnitPrice(),
			Quantity:  quantity,
		})
	}
	if err := s.sessions.Save(ctx, key, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets the quantity of an existing line, coercing it to at
// least 1. Unknown products are a no-op.
func (s *Store) UpdateQuantity(ctx context.Context, key string, productID int64, quantity int) (Cart, error) {
	if quantity < 1 {
		quantity = 1
	}
	c, err := s.sessions.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	i := c.find(productID)
	if i < 0 {
		return c, nil
	}
	c[i].Quantity = quantity
	if err := s.sessions.Save(ctx, key, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops the line for a product; a no-op when absent.
func (s *Store) RemoveItem(ctx context.Context, key string, productID int64) (Cart, error) {
	c, err := s.sessions.Load(ctx, key)
	if err != nil {
		return nil, err
	}
	i := c.find(productID)
	if i < 0 {
		return c, nil
	}
	c = append(c[:i], c[i+1:]...)
	if err := s.sessions.Save(ctx, key, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) Clear(ctx context.Context, key string) error {
	return s.sessions.Delete(ctx, key)
}
