package cart

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/models"
)

type ProductFinder interface {
	GetProduct(ctx context.Context, id int) (*models.Product, error)
}

type Service struct {
	Store    Store
	Products ProductFinder
}

// AddItem puts one unit of the product into the session's cart, incrementing
// the existing line when the product is already there. The product must exist
// in the catalog.
func (s *Service) AddItem(ctx context.Context, sessionID string, productID int) (Cart, error) {
	if _, err := s.Products.GetProduct(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("product %d: %w", productID, ErrNotFound)
		}
		return nil, err
	}

	c, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if line, ok := c[productID]; ok {
		line.Quantity++
		c[productID] = line
	} else {
		c[productID] = Line{ProductID: productID, Quantity: 1}
	}

	if err := s.Store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateQuantity sets the quantity of an existing line. A product that is not
// in the cart is not silently created.
func (s *Service) UpdateQuantity(ctx context.Context, sessionID string, productID, quantity int) (Cart, error) {
	if quantity < 1 {
		return nil, fmt.Errorf("quantity must be positive: %w", ErrValidation)
	}

	c, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	line, ok := c[productID]
	if !ok {
		return nil, fmt.Errorf("product %d not in cart: %w", productID, ErrNotFound)
	}
	line.Quantity = quantity
	c[productID] = line

	if err := s.Store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops the line if present, a second call for the same product is
// a no-op. Removing the last line clears the session value instead of saving
// an empty blob.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, productID int) (Cart, error) {
	c, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, ok := c[productID]; !ok {
		return c, nil
	}
	delete(c, productID)

	if len(c) == 0 {
		if err := s.Store.Clear(ctx, sessionID); err != nil {
			return nil, err
		}
		return c, nil
	}

	if err := s.Store.Save(ctx, sessionID, c); err != nil {
		return nil, err
	}
	return c, nil
}

type ViewLine struct {
	Product   models.Product `json:"product"`
	Quantity  int            `json:"quantity"`
	LineTotal float64        `json:"line_total"`
}

type View struct {
	Items []ViewLine `json:"items"`
	Total float64    `json:"total"`
}

// CartView resolves every line against the current catalog. A line whose
// product has been removed from the catalog since it was added is skipped.
func (s *Service) CartView(ctx context.Context, sessionID string) (*View, error) {
	c, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	view := &View{Items: make([]ViewLine, 0, len(c))}
	for _, id := range ids {
		p, err := s.Products.GetProduct(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				continue
			}
			return nil, err
		}
		line := c[id]
		lineTotal := float64(line.Quantity) * p.Price
		view.Items = append(view.Items, ViewLine{
			Product:   *p,
			Quantity:  line.Quantity,
			LineTotal: lineTotal,
		})
		view.Total += lineTotal
	}
	return view, nil
}
