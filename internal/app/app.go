package app

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/xenking/cart-session/internal/catalog"
	"github.com/xenking/cart-session/internal/domain/cart"
	"github.com/xenking/cart-session/internal/domain/checkout"
	"github.com/xenking/cart-session/internal/storage/file"
)

// Run creates all dependencies and dispatches the requested subcommand. It is
// the composition root: the cart store is constructed here and handed to the
// command handlers, never held in ambient global state.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config, args []string) error {
	if len(args) == 0 {
		printUsage()
		return errors.New("command required")
	}

	storage, err := file.New(cfg.StateDir)
	if err != nil {
		return errors.Wrap(err, "open state dir")
	}

	store := cart.NewStore(storage,
		cart.WithKey(cfg.CartKey),
		cart.WithLogger(lg),
	)

	cat, err := catalog.Load(ctx, cfg.CatalogDir)
	if err != nil {
		return errors.Wrap(err, "load catalog")
	}

	exporter, err := file.NewOrderExporter(cfg.StateDir)
	if err != nil {
		return errors.Wrap(err, "open export dir")
	}
	checkoutSvc := checkout.NewService(store, exporter)

	env := &commandEnv{
		store:    store,
		catalog:  cat,
		checkout: checkoutSvc,
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "add":
		return env.add(ctx, rest)
	case "remove":
		return env.remove(rest)
	case "update":
		return env.update(rest)
	case "clear":
		return env.clear()
	case "show":
		return env.show()
	case "products":
		return env.products(ctx)
	case "checkout":
		return env.placeOrder(ctx)
	default:
		printUsage()
		return errors.Errorf("unknown command %q", cmd)
	}
}

func printUsage() {
	fmt.Print(`Usage: cart-session <command> [flags]

Commands:
  add --id <product-id> [--qty N]     add a catalog product to the cart
  remove --id <product-id>            remove a line item
  update --id <product-id> --qty N    set a line item quantity (0 removes)
  clear                               empty the cart
  show                                print the cart contents
  products                            list the product catalog
  checkout                            export an order draft and empty the cart
`)
}
