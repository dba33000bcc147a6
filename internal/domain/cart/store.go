// internal/domain/cart/store.go
package cart

import "context"

// Store keeps one shopping cart per visitor session. Load returns an empty
// cart for a session without one, so callers never see a nil cart. Delete is
// the explicit end of a cart's lifecycle: after a committed order, or when
// the session itself ends.
type Store interface {
	Load(ctx context.Context, sessionID string) (*ShoppingCart, error)
	Save(ctx context.Context, sessionID string, cart *ShoppingCart) error
	Delete(ctx context.Context, sessionID string) error
}
