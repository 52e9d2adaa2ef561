package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/cart-session/internal/domain/product"
)

// Store is the sole authority for shopping-cart state: line-item membership,
// quantities, and the derived total. Every mutation writes the new state
// through to the backing Storage slot; the in-memory cart stays authoritative
// for the session even when a write fails.
//
// A Store serves a single session and is not safe for concurrent use.
type Store struct {
	storage Storage
	key     string
	lg      *zap.Logger
	cart    Cart
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the storage slot key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for persistence diagnostics.
func WithLogger(lg *zap.Logger) Option {
	return func(s *Store) { s.lg = lg }
}

// NewStore creates a Store bound to the given storage slot and restores any
// previously persisted state. An absent or unparseable persisted value is not
// an error: the store logs it and starts empty. The total is always recomputed
// from the restored items, never adopted from the persisted document.
func NewStore(storage Storage, opts ...Option) *Store {
	s := &Store{
		storage: storage,
		key:     DefaultKey,
		lg:      zap.NewNop(),
		cart:    Cart{Total: decimal.Zero},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.restore()
	return s
}

// restore loads persisted state, falling back to the empty cart.
func (s *Store) restore() {
	raw, err := s.storage.Read(s.key)
	if err != nil {
		if !errors.Is(err, ErrNotExist) {
			s.lg.Warn("Failed to read persisted cart, starting empty",
				zap.String("key", s.key), zap.Error(err))
		}
		return
	}

	restored, err := Decode(raw)
	if err != nil {
		s.lg.Warn("Failed to decode persisted cart, starting empty",
			zap.String("key", s.key), zap.Error(err))
		return
	}

	restored.Total = computeTotal(restored.Items)
	s.cart = restored
}

// Add puts a product snapshot into the cart. Adding a product already in the
// cart increments its quantity and keeps the original name/price/image
// snapshot. A quantity below 1 is clamped to 1 so every reachable state keeps
// the quantity floor.
func (s *Store) Add(p product.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	found := false
	for i, item := range s.cart.Items {
		if item.ProductID == p.ID {
			s.cart.Items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		s.cart.Items = append(s.cart.Items, Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  quantity,
			Image:     p.Thumbnail(),
		})
	}

	s.commit()
}

// Remove drops the line item matching productID. Removing an absent product
// is a no-op, not an error.
func (s *Store) Remove(productID string) {
	items := s.cart.Items[:0]
	for _, item := range s.cart.Items {
		if item.ProductID != productID {
			items = append(items, item)
		}
	}
	s.cart.Items = items

	s.commit()
}

// UpdateQuantity sets the quantity of the matching line item to exactly
// quantity. A quantity of zero or below removes the item instead, so callers
// decrementing past 1 get removal rather than an invalid state. An absent
// product ID is a no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.Remove(productID)
		return
	}

	for i, item := range s.cart.Items {
		if item.ProductID == productID {
			s.cart.Items[i].Quantity = quantity
			break
		}
	}

	s.commit()
}

// Clear resets the cart to its empty configuration.
func (s *Store) Clear() {
	s.cart = Cart{Total: decimal.Zero}

	s.commit()
}

// Cart returns a snapshot of the current cart. The snapshot is a copy:
// mutating it does not affect the store.
func (s *Store) Cart() Cart {
	snapshot := Cart{
		Items: make([]Item, len(s.cart.Items)),
		Total: s.cart.Total,
	}
	copy(snapshot.Items, s.cart.Items)
	return snapshot
}

// ItemCount returns the sum of quantities across all line items.
func (s *Store) ItemCount() int {
	return s.cart.ItemCount()
}

// commit recomputes the derived total and writes the new state through to
// storage. A write failure does not roll back the mutation: the in-memory
// state is the source of truth for the session and durability is best-effort.
func (s *Store) commit() {
	s.cart.Total = computeTotal(s.cart.Items)

	if err := s.storage.Write(s.key, Encode(s.cart)); err != nil {
		s.lg.Warn("Failed to persist cart",
			zap.String("key", s.key), zap.Error(err))
	}
}
