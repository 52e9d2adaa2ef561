package cart

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodec_RoundTrip(t *testing.T) {
	original := Cart{
		Items: []Item{
			{ProductID: "A", Name: "Widget", Price: decimal.RequireFromString("10.50"), Quantity: 2, Image: "img.png"},
			{ProductID: "B", Name: "Gadget", Price: decimal.RequireFromString("5.25"), Quantity: 3},
		},
	}
	original.Total = computeTotal(original.Items)

	decoded, err := Decode(Encode(original))
	require.NoError(t, err)

	require.Len(t, decoded.Items, 2)
	assert.Equal(t, original.Items[0].ProductID, decoded.Items[0].ProductID)
	assert.Equal(t, original.Items[0].Name, decoded.Items[0].Name)
	assert.Equal(t, original.Items[0].Image, decoded.Items[0].Image)
	assert.Equal(t, original.Items[0].Quantity, decoded.Items[0].Quantity)
	assert.True(t, original.Items[0].Price.Equal(decoded.Items[0].Price))
	assert.Equal(t, "", decoded.Items[1].Image)
	assert.True(t, original.Total.Equal(decoded.Total))
}

func TestCodec_EncodeEmptyCart(t *testing.T) {
	got := Encode(Cart{Total: decimal.Zero})

	assert.Equal(t, `{"items":[],"total":"0"}`, got)
}

func TestCodec_DecodeIgnoresUnknownFields(t *testing.T) {
	doc := `{"items":[{"product_id":"A","name":"W","price":"10","quantity":1,"sku":"X1"}],"total":"10","schema":2}`

	decoded, err := Decode(doc)
	require.NoError(t, err)
	require.Len(t, decoded.Items, 1)
	assert.Equal(t, "A", decoded.Items[0].ProductID)
}

func TestCodec_DecodeRejectsMalformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "garbage", doc: "][nope"},
		{name: "wrong top-level type", doc: `[1,2,3]`},
		{name: "non-numeric price", doc: `{"items":[{"product_id":"A","name":"W","price":"ten","quantity":1}]}`},
		{name: "missing product id", doc: `{"items":[{"name":"W","price":"10","quantity":1}]}`},
		{name: "zero quantity", doc: `{"items":[{"product_id":"A","name":"W","price":"10","quantity":0}]}`},
		{name: "duplicate product ids", doc: `{"items":[{"product_id":"A","name":"W","price":"10","quantity":1},{"product_id":"A","name":"W","price":"10","quantity":2}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.doc)
			require.Error(t, err)
		})
	}
}
