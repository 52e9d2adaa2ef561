package checkout

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/xenking/cart-session/internal/domain/cart"
)

// ErrEmptyCart is returned when checkout is attempted with no line items.
var ErrEmptyCart = errors.New("cart is empty")

// Draft is the order request handed off to the external order-creation
// collaborator. It carries the cart snapshot at checkout time; the total is
// rounded to 2 decimal places at this presentation boundary.
type Draft struct {
	ID        string
	Items     []cart.Item
	Total     decimal.Decimal
	CreatedAt time.Time
}

// Placer is the external order-creation collaborator. Whether it posts to a
// backend, enqueues, or writes a handoff file is outside this package.
type Placer interface {
	PlaceOrder(ctx context.Context, draft Draft) error
}

// Service drains the cart into an order draft once the external collaborator
// accepts it. It only uses the store's public surface and knows nothing about
// payments or order state.
type Service struct {
	store  *cart.Store
	placer Placer
	now    func() time.Time
}

// NewService creates a checkout Service over the given store and collaborator.
func NewService(store *cart.Store, placer Placer) *Service {
	return &Service{
		store:  store,
		placer: placer,
		now:    time.Now,
	}
}

// Checkout snapshots the cart, builds an order draft, and hands it to the
// placer. The cart is cleared only after the placer accepts the draft; on
// failure the cart is left untouched so the session can retry.
func (s *Service) Checkout(ctx context.Context) (*Draft, error) {
	snapshot := s.store.Cart()
	if len(snapshot.Items) == 0 {
		return nil, ErrEmptyCart
	}

	draft := Draft{
		ID:        uuid.New().String(),
		Items:     snapshot.Items,
		Total:     snapshot.Total.Round(2),
		CreatedAt: s.now().UTC(),
	}

	if err := s.placer.PlaceOrder(ctx, draft); err != nil {
		return nil, errors.Wrap(err, "place order")
	}

	s.store.Clear()
	return &draft, nil
}
