package cart

import (
	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
)

// Encode serializes the cart to its persisted JSON document. Prices and the
// total are encoded as decimal strings. The total is written so the document
// is a complete snapshot for external readers, even though Decode callers are
// expected to recompute it.
func Encode(c Cart) string {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, item := range c.Items {
					encodeItem(e, item)
				}
			})
		})
		e.Field("total", func(e *jx.Encoder) {
			e.Str(c.Total.String())
		})
	})
	return e.String()
}

func encodeItem(e *jx.Encoder, item Item) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("product_id", func(e *jx.Encoder) { e.Str(item.ProductID) })
		e.Field("name", func(e *jx.Encoder) { e.Str(item.Name) })
		e.Field("price", func(e *jx.Encoder) { e.Str(item.Price.String()) })
		e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
		if item.Image != "" {
			e.Field("image", func(e *jx.Encoder) { e.Str(item.Image) })
		}
	})
}

// Decode parses a persisted cart document. The decoded Total is whatever the
// document carried; callers must treat it as a cached projection and
// recompute it from Items. Malformed documents, including items that break
// the product-ID or quantity-floor invariants, return an error.
func Decode(raw string) (Cart, error) {
	c := Cart{Total: decimal.Zero}

	d := jx.DecodeStr(raw)
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "items":
			return d.Arr(func(d *jx.Decoder) error {
				item, err := decodeItem(d)
				if err != nil {
					return err
				}
				c.Items = append(c.Items, item)
				return nil
			})
		case "total":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "total")
			}
			total, err := decimal.NewFromString(s)
			if err != nil {
				return errors.Wrap(err, "total")
			}
			c.Total = total
			return nil
		default:
			return d.Skip()
		}
	})
	if err != nil {
		return Cart{}, errors.Wrap(err, "decode cart")
	}

	if err := validate(c.Items); err != nil {
		return Cart{}, err
	}
	return c, nil
}

func decodeItem(d *jx.Decoder) (Item, error) {
	var item Item
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "product_id":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "product_id")
			}
			item.ProductID = s
			return nil
		case "name":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "name")
			}
			item.Name = s
			return nil
		case "price":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "price")
			}
			price, err := decimal.NewFromString(s)
			if err != nil {
				return errors.Wrap(err, "price")
			}
			item.Price = price
			return nil
		case "quantity":
			n, err := d.Int()
			if err != nil {
				return errors.Wrap(err, "quantity")
			}
			item.Quantity = n
			return nil
		case "image":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "image")
			}
			item.Image = s
			return nil
		default:
			return d.Skip()
		}
	})
	return item, err
}

// validate rejects documents that break the cart invariants: every item needs
// a product ID, product IDs are unique, and quantities stay at 1 or above.
func validate(items []Item) error {
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		if item.ProductID == "" {
			return errors.New("item without product_id")
		}
		if _, dup := seen[item.ProductID]; dup {
			return errors.Errorf("duplicate product_id %q", item.ProductID)
		}
		seen[item.ProductID] = struct{}{}
		if item.Quantity < 1 {
			return errors.Errorf("product %q has quantity %d", item.ProductID, item.Quantity)
		}
	}
	return nil
}
