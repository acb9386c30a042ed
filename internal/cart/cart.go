package cart

import (
	"context"
	"errors"
)

var (
	ErrValidation = errors.New("validation")
	ErrNotFound   = errors.New("not found")
)

// Line holds only the product reference and the desired quantity. Product
// details are re-read from the catalog whenever the cart is displayed, so a
// price change in the catalog is visible immediately.
type Line struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// Cart is the per-session mapping of product id to line. Keying by product id
// guarantees a product appears at most once.
type Cart map[int]Line

// Store persists one serialized cart per session. Load never fails on a
// missing or corrupted payload, it degrades to an empty cart so a broken
// session value cannot break browsing.
type Store interface {
	Load(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, sessionID string, cart Cart) error
	Clear(ctx context.Context, sessionID string) error
}
