package app

import (
	"os"
	"path/filepath"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"
)

// Config holds the application configuration, loadable from environment
// variables (CART_ prefix) or YAML config files. Command-line flags belong to
// the subcommands, so the loader does not touch argv.
type Config struct {
	StateDir   string `usage:"Directory holding persisted cart state and order drafts" flag:"state-dir"`
	CartKey    string `default:"ecommerce-cart" usage:"Storage slot key for the cart" flag:"cart-key"`
	CatalogDir string `usage:"Directory with extra product catalog JSON files" flag:"catalog-dir"`
}

// LoadConfig loads configuration from environment variables and YAML config
// files, and resolves the default state directory.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "CART",
		SkipFlags: true,
		Files:     []string{"cart-session.yaml", "/etc/cart-session/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}
	cfg.applyDefaults()

	return &cfg, nil
}

// applyDefaults places the state directory under the user config dir when not
// set explicitly, falling back to a dotted directory in the working dir.
func (c *Config) applyDefaults() {
	if c.StateDir != "" {
		return
	}
	if base, err := os.UserConfigDir(); err == nil {
		c.StateDir = filepath.Join(base, "cart-session")
		return
	}
	c.StateDir = ".cart-session"
}
