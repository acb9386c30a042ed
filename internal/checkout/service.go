package checkout

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/dsemenov/storefront/internal/cart"
	"github.com/dsemenov/storefront/internal/logging"
	"github.com/dsemenov/storefront/internal/models"
)

var (
	ErrNotFound  = errors.New("not found")
	ErrEmptyCart = errors.New("empty cart")
)

type ProfileFinder interface {
	GetByUserID(ctx context.Context, userID uint) (*models.UserDetail, error)
}

type OrderStore interface {
	CreateOrderWithLines(ctx context.Context, order *models.Order, lines []models.OrderLine) (uint, error)
}

type Service struct {
	Store    cart.Store
	Profiles ProfileFinder
	Orders   OrderStore
}

// SubmitOrder turns the session's cart into a persisted order. Shipping fields
// are copied from the user's profile. Lines carry product id and quantity
// only, the order store reads each product's price inside its write
// transaction. The cart is cleared only after the order write committed, so a
// storage failure leaves the cart untouched.
func (s *Service) SubmitOrder(ctx context.Context, sessionID string, userID uint) (uint, error) {
	detail, err := s.Profiles.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("profile for user %d: %w", userID, ErrNotFound)
		}
		return 0, err
	}

	c, err := s.Store.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if len(c) == 0 {
		return 0, ErrEmptyCart
	}

	order := &models.Order{
		UserID:     userID,
		OrderDate:  time.Now(),
		ShipToName: detail.FirstName + " " + detail.LastName,
		ShipCity:   detail.City,
		ShipState:  detail.State,
		ShipZip:    detail.Zip,
	}

	ids := make([]int, 0, len(c))
	for id := range c {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	lines := make([]models.OrderLine, 0, len(c))
	for _, id := range ids {
		lines = append(lines, models.OrderLine{
			ProductID: id,
			Quantity:  c[id].Quantity,
		})
	}

	orderID, err := s.Orders.CreateOrderWithLines(ctx, order, lines)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, fmt.Errorf("%v: %w", err, ErrNotFound)
		}
		return 0, err
	}

	if err := s.Store.Clear(ctx, sessionID); err != nil {
		// order is already durable, the session TTL collects the stale cart
		logging.FromContext(ctx).Error("cart clear after checkout failed",
			"session_id", sessionID, "order_id", orderID, "error", err)
	}
	return orderID, nil
}
