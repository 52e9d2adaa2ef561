package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/cart-session/internal/domain/cart"
	"github.com/xenking/cart-session/internal/domain/checkout"
)

func TestStorage_ReadAbsentKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Read("ecommerce-cart")
	require.ErrorIs(t, err, cart.ErrNotExist)
}

func TestStorage_WriteRead(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Write("ecommerce-cart", `{"items":[],"total":"0"}`))

	got, err := s.Read("ecommerce-cart")
	require.NoError(t, err)
	assert.Equal(t, `{"items":[],"total":"0"}`, got)
}

func TestStorage_WriteOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, s.Write("k", "first"))
	require.NoError(t, s.Write("k", "second"))

	got, err := s.Read("k")
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStorage_WriteLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Write("k", "value"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}

func TestStorage_RejectsPathEscapingKeys(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../outside", "a/b", `a\b`} {
		_, err := s.Read(key)
		assert.Errorf(t, err, "key %q", key)
		assert.Errorf(t, s.Write(key, "v"), "key %q", key)
	}
}

func TestStorage_CreatesStateDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "state")

	_, err := New(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOrderExporter_PlaceOrder(t *testing.T) {
	dir := t.TempDir()
	x, err := NewOrderExporter(dir)
	require.NoError(t, err)

	draft := checkout.Draft{
		ID: "7f0b2a1c-0000-4000-8000-000000000000",
		Items: []cart.Item{
			{ProductID: "A", Name: "Widget", Price: decimal.RequireFromString("10.50"), Quantity: 2},
		},
		Total:     decimal.RequireFromString("21.00"),
		CreatedAt: time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC),
	}

	require.NoError(t, x.PlaceOrder(context.Background(), draft))

	data, err := os.ReadFile(filepath.Join(dir, "order-"+draft.ID+".json"))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"id": "7f0b2a1c-0000-4000-8000-000000000000",
		"created_at": "2025-06-15T12:00:00Z",
		"items": [{"product_id": "A", "name": "Widget", "price": "10.5", "quantity": 2}],
		"total": "21"
	}`, string(data))
}
