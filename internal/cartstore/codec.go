package cartstore

import (
	"context"
	"encoding/json"

	"github.com/dsemenov/storefront/internal/cart"
	"github.com/dsemenov/storefront/internal/logging"
)

// The wire format is a JSON object keyed by string-encoded product id.
// encoding/json writes map keys in sorted order, so the same cart content
// always serializes to the same blob.
func encode(c cart.Cart) ([]byte, error) {
	return json.Marshal(c)
}

// decode never fails: a corrupted session value is worth a warning, not a
// broken storefront.
func decode(ctx context.Context, sessionID string, data []byte) cart.Cart {
	if len(data) == 0 {
		return cart.Cart{}
	}
	var c cart.Cart
	if err := json.Unmarshal(data, &c); err != nil {
		logging.FromContext(ctx).Warn("malformed cart payload, treating as empty",
			"session_id", sessionID, "error", err)
		return cart.Cart{}
	}
	if c == nil {
		c = cart.Cart{}
	}
	return c
}
