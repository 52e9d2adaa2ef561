package cart

import (
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// DefaultKey is the storage slot the cart persists to unless overridden.
const DefaultKey = "ecommerce-cart"

// ErrNotExist is returned by Storage.Read when the slot holds no value.
var ErrNotExist = errors.New("cart state not found")

// Storage is the persisted key-value slot the store writes through to.
// Implementations map a fixed key to a serialized cart document.
type Storage interface {
	// Read returns the value stored under key, or ErrNotExist when the
	// slot is empty.
	Read(key string) (string, error)
	Write(key, value string) error
}

// Item is a single cart line: a product snapshot plus the selected quantity.
// Name, Price and Image are captured at add time and never re-synced from
// the catalog.
type Item struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	Image     string
}

// Subtotal returns Price multiplied by Quantity.
func (i Item) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Cart is an ordered set of line items, unique by product ID, with a total
// derived from the items. Total is a cached projection: it is recomputed on
// every mutation and never adopted from persisted state.
type Cart struct {
	Items []Item
	Total decimal.Decimal
}

// ItemCount returns the sum of quantities across all line items.
func (c Cart) ItemCount() int {
	count := 0
	for _, item := range c.Items {
		count += item.Quantity
	}
	return count
}

// computeTotal derives the cart total from its line items.
func computeTotal(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.Subtotal())
	}
	return total
}
