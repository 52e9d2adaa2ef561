package app

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/go-faster/errors"

	"github.com/xenking/cart-session/internal/catalog"
	"github.com/xenking/cart-session/internal/domain/cart"
	"github.com/xenking/cart-session/internal/domain/checkout"
)

// commandEnv bundles the dependencies shared by the subcommand handlers.
type commandEnv struct {
	store    *cart.Store
	catalog  *catalog.Catalog
	checkout *checkout.Service
}

func (e *commandEnv) add(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add", flag.ContinueOnError)
	id := fs.String("id", "", "product ID to add")
	qty := fs.Int("qty", 1, "quantity to add")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("--id is required")
	}

	p, err := e.catalog.GetByID(ctx, *id)
	if err != nil {
		return errors.Wrapf(err, "product %q", *id)
	}

	e.store.Add(*p, *qty)
	return e.show()
}

func (e *commandEnv) remove(args []string) error {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	id := fs.String("id", "", "product ID to remove")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("--id is required")
	}

	e.store.Remove(*id)
	return e.show()
}

func (e *commandEnv) update(args []string) error {
	fs := flag.NewFlagSet("update", flag.ContinueOnError)
	id := fs.String("id", "", "product ID to update")
	qty := fs.Int("qty", 1, "target quantity (0 removes the item)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" {
		return errors.New("--id is required")
	}

	e.store.UpdateQuantity(*id, *qty)
	return e.show()
}

func (e *commandEnv) clear() error {
	e.store.Clear()
	fmt.Println("cart cleared")
	return nil
}

func (e *commandEnv) show() error {
	c := e.store.Cart()
	if len(c.Items) == 0 {
		fmt.Println("cart is empty")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tPRICE\tQTY\tSUBTOTAL")
	for _, item := range c.Items {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			item.ProductID, item.Name, item.Price.StringFixed(2),
			item.Quantity, item.Subtotal().StringFixed(2))
	}
	fmt.Fprintf(w, "\t\t\t%d\t%s\n", c.ItemCount(), c.Total.StringFixed(2))
	return w.Flush()
}

func (e *commandEnv) products(ctx context.Context) error {
	products, err := e.catalog.List(ctx)
	if err != nil {
		return errors.Wrap(err, "list products")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "PRODUCT\tNAME\tPRICE\tSTOCK")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", p.ID, p.Name, p.Price.StringFixed(2), p.StockQuantity)
	}
	return w.Flush()
}

func (e *commandEnv) placeOrder(ctx context.Context) error {
	draft, err := e.checkout.Checkout(ctx)
	if err != nil {
		if errors.Is(err, checkout.ErrEmptyCart) {
			return errors.New("nothing to check out: cart is empty")
		}
		return err
	}

	fmt.Printf("order draft %s exported, total %s\n", draft.ID, draft.Total.StringFixed(2))
	return nil
}
