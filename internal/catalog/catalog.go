package catalog

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/cart-session/internal/domain/product"
)

var _ product.Repository = (*Catalog)(nil)

// Catalog implements product.Repository over an in-memory product set.
// Reads are lock-free: the set is fixed after construction.
type Catalog struct {
	products map[string]product.Product
}

// New builds a Catalog from one or more product sets. Later sets override
// earlier ones by product ID, so directory catalogs can shadow embedded
// entries.
func New(sets ...[]product.Product) *Catalog {
	products := make(map[string]product.Product)
	for _, set := range sets {
		for _, p := range set {
			products[p.ID] = p
		}
	}
	return &Catalog{products: products}
}

// Load returns the embedded catalog, extended with any `*.json` catalog files
// found under extraDir when it is non-empty.
func Load(ctx context.Context, extraDir string) (*Catalog, error) {
	embedded, err := Parse(embeddedCatalog)
	if err != nil {
		return nil, errors.Wrap(err, "parse embedded catalog")
	}

	if extraDir == "" {
		return New(embedded), nil
	}

	extra, err := LoadDir(ctx, extraDir)
	if err != nil {
		return nil, err
	}
	return New(embedded, extra), nil
}

// LoadDir parses every `*.json` file under dir concurrently and returns the
// concatenation in file-name order, so overrides are deterministic.
func LoadDir(ctx context.Context, dir string) ([]product.Product, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, errors.Wrap(err, "glob catalog dir")
	}
	sort.Strings(paths)

	sets := make([][]product.Product, len(paths))

	g, _ := errgroup.WithContext(ctx)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			data, err := os.ReadFile(path)
			if err != nil {
				return errors.Wrapf(err, "read %s", path)
			}
			set, err := Parse(data)
			if err != nil {
				return errors.Wrapf(err, "parse %s", path)
			}
			sets[i] = set
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var products []product.Product
	for _, set := range sets {
		products = append(products, set...)
	}
	return products, nil
}

// Parse decodes a catalog document: a JSON array of products with prices as
// decimal strings.
func Parse(data []byte) ([]product.Product, error) {
	var products []product.Product

	d := jx.DecodeBytes(data)
	err := d.Arr(func(d *jx.Decoder) error {
		p, err := parseProduct(d)
		if err != nil {
			return err
		}
		if p.ID == "" {
			return errors.New("product without id")
		}
		products = append(products, p)
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return products, nil
}

func parseProduct(d *jx.Decoder) (product.Product, error) {
	var p product.Product
	err := d.Obj(func(d *jx.Decoder, key string) error {
		switch key {
		case "id":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "id")
			}
			p.ID = s
			return nil
		case "name":
			s, err := d.Str()
			if err != nil {
				return errors.Wrap(err, "name")
			}
			p.Name = s
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
			p.Price = price
			return nil
		case "images":
			return d.Arr(func(d *jx.Decoder) error {
				s, err := d.Str()
				if err != nil {
					return errors.Wrap(err, "images")
				}
				p.Images = append(p.Images, s)
				return nil
			})
		case "stock_quantity":
			n, err := d.Int()
			if err != nil {
				return errors.Wrap(err, "stock_quantity")
			}
			p.StockQuantity = n
			return nil
		default:
			return d.Skip()
		}
	})
	return p, err
}

// List returns all products ordered by ID.
func (c *Catalog) List(_ context.Context) ([]product.Product, error) {
	products := make([]product.Product, 0, len(c.products))
	for _, p := range c.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

// GetByID returns a single product by its identifier.
func (c *Catalog) GetByID(_ context.Context, id string) (*product.Product, error) {
	p, ok := c.products[id]
	if !ok {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

// GetByIDs returns the products found for the given identifiers. Unknown IDs
// are skipped; callers verify completeness.
func (c *Catalog) GetByIDs(_ context.Context, ids []string) ([]product.Product, error) {
	products := make([]product.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := c.products[id]; ok {
			products = append(products, p)
		}
	}
	return products, nil
}
