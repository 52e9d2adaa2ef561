package file

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"

	"github.com/xenking/cart-session/internal/domain/checkout"
)

var _ checkout.Placer = (*OrderExporter)(nil)

// OrderExporter implements checkout.Placer by writing the order draft to
// `order-<id>.json` in the state directory. The file is the handoff artifact
// for the external order-creation backend.
type OrderExporter struct {
	dir string
}

// NewOrderExporter creates the directory if needed and returns an exporter.
func NewOrderExporter(dir string) (*OrderExporter, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(err, "create export dir")
	}
	return &OrderExporter{dir: dir}, nil
}

// PlaceOrder writes the draft document. A write failure is returned to the
// caller: checkout must not drain the cart when the handoff did not land.
func (x *OrderExporter) PlaceOrder(_ context.Context, draft checkout.Draft) error {
	path := filepath.Join(x.dir, "order-"+draft.ID+".json")

	if err := os.WriteFile(path, encodeDraft(draft), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}

func encodeDraft(draft checkout.Draft) []byte {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("id", func(e *jx.Encoder) { e.Str(draft.ID) })
		e.Field("created_at", func(e *jx.Encoder) {
			e.Str(draft.CreatedAt.Format(time.RFC3339))
		})
		e.Field("items", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, item := range draft.Items {
					e.Obj(func(e *jx.Encoder) {
						e.Field("product_id", func(e *jx.Encoder) { e.Str(item.ProductID) })
						e.Field("name", func(e *jx.Encoder) { e.Str(item.Name) })
						e.Field("price", func(e *jx.Encoder) { e.Str(item.Price.String()) })
						e.Field("quantity", func(e *jx.Encoder) { e.Int(item.Quantity) })
					})
				}
			})
		})
		e.Field("total", func(e *jx.Encoder) { e.Str(draft.Total.String()) })
	})
	return e.Bytes()
}
