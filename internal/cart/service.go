// Package cart implements the storefront's cart operations. Mutations follow
// a strict load-mutate-persist cycle so a page reload never observes state
// older than the last completed operation.
package cart

import (
	"context"
	"errors"
	"log"

	"github.com/uyrtegeygr-a11y/Lojanew/internal/catalog"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/domain"
	"github.com/uyrtegeygr-a11y/Lojanew/internal/session"
)

type Service struct {
	catalog  catalog.Repository
	sessions *session.Store
}

func NewService(catalogRepo catalog.Repository, sessions *session.Store) *Service {
	return &Service{
		catalog:  catalogRepo,
		sessions: sessions,
	}
}

// Get returns the session's current cart.
func (s *Service) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	return s.sessions.Cart(ctx, sessionID)
}

// AddItem adds one unit of the product to the cart. A repeat add increments
// the existing line instead of appending a second one; an unknown product id
// is a tolerated no-op. The stored line snapshots name, price and image at
// add time.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.sessions.Do(sessionID, func() error {
		var err error
		cart, err = s.sessions.Cart(ctx, sessionID)
		if err != nil {
			return err
		}

		product, err := s.catalog.GetProduct(ctx, productID)
		if errors.Is(err, catalog.ErrProductNotFound) {
			log.Printf("add item ignored, unknown product id = %v", productID)
			return nil
		}
		if err != nil {
			return err
		}

		if item := cart.Find(productID); item != nil {
			item.Quantity++
		} else {
			cart.Items = append(cart.Items, domain.CartItem{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				ImageURL:  product.ImageURL,
				Quantity:  1,
			})
		}

		return s.sessions.SaveCart(ctx, sessionID, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// RemoveItem deletes the product's line. Removing a line that does not exist
// is a tolerated no-op.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int64) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.sessions.Do(sessionID, func() error {
		var err error
		cart, err = s.sessions.Cart(ctx, sessionID)
		if err != nil {
			return err
		}

		kept := cart.Items[:0]
		removed := false
		for _, item := range cart.Items {
			if item.ProductID == productID {
				removed = true
				continue
			}
			kept = append(kept, item)
		}
		if !removed {
			return nil
		}
		cart.Items = kept

		return s.sessions.SaveCart(ctx, sessionID, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// SetQuantity updates the product's line quantity, clamped to a minimum of 1.
// Removal is an explicit action, never an implicit zero-quantity delete.
// Setting quantity on an absent line is a tolerated no-op.
func (s *Service) SetQuantity(ctx context.Context, sessionID string, productID int64, quantity int) (*domain.Cart, error) {
	var cart *domain.Cart
	err := s.sessions.Do(sessionID, func() error {
		var err error
		cart, err = s.sessions.Cart(ctx, sessionID)
		if err != nil {
			return err
		}

		item := cart.Find(productID)
		if item == nil {
			return nil
		}

		if quantity < 1 {
			quantity = 1
		}
		item.Quantity = quantity

		return s.sessions.SaveCart(ctx, sessionID, cart)
	})
	if err != nil {
		return nil, err
	}
	return cart, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	return s.sessions.Do(sessionID, func() error {
		return s.sessions.SaveCart(ctx, sessionID, &domain.Cart{})
	})
}
