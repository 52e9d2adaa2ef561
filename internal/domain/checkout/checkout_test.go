package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/cart-session/internal/domain/cart"
	"github.com/xenking/cart-session/internal/domain/product"
	"github.com/xenking/cart-session/internal/storage/memory"
)

type mockPlacer struct {
	err    error
	placed []Draft
}

func (m *mockPlacer) PlaceOrder(_ context.Context, draft Draft) error {
	if m.err != nil {
		return m.err
	}
	m.placed = append(m.placed, draft)
	return nil
}

func newTestStore(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore(memory.New())
	store.Add(product.Product{
		ID:    "A",
		Name:  "Widget",
		Price: decimal.RequireFromString("10.005"),
	}, 2)
	store.Add(product.Product{
		ID:    "B",
		Name:  "Gadget",
		Price: decimal.RequireFromString("5.25"),
	}, 1)
	return store
}

func TestService_Checkout(t *testing.T) {
	fixedNow := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store := newTestStore(t)
	placer := &mockPlacer{}

	svc := NewService(store, placer)
	svc.now = func() time.Time { return fixedNow }

	draft, err := svc.Checkout(context.Background())
	require.NoError(t, err)
	require.NotNil(t, draft)

	_, err = uuid.Parse(draft.ID)
	require.NoError(t, err)

	require.Len(t, draft.Items, 2)
	assert.Equal(t, "A", draft.Items[0].ProductID)
	assert.Equal(t, 2, draft.Items[0].Quantity)
	assert.Equal(t, fixedNow, draft.CreatedAt)
	// 2*10.005 + 5.25 = 25.26, rounded at the handoff boundary.
	assert.True(t, decimal.RequireFromString("25.26").Equal(draft.Total),
		"total: got %s", draft.Total)

	// The collaborator accepted, so the cart drains.
	require.Len(t, placer.placed, 1)
	assert.Empty(t, store.Cart().Items)
	assert.Equal(t, 0, store.ItemCount())
}

func TestService_CheckoutEmptyCart(t *testing.T) {
	store := cart.NewStore(memory.New())
	svc := NewService(store, &mockPlacer{})

	draft, err := svc.Checkout(context.Background())
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, draft)
}

func TestService_CheckoutPlacerFailureKeepsCart(t *testing.T) {
	store := newTestStore(t)
	placer := &mockPlacer{err: errors.New("backend unavailable")}

	svc := NewService(store, placer)

	draft, err := svc.Checkout(context.Background())
	require.Error(t, err)
	assert.Nil(t, draft)

	// The cart is untouched so the session can retry.
	require.Len(t, store.Cart().Items, 2)
	assert.Equal(t, 3, store.ItemCount())
}
