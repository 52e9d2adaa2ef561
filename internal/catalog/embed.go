// Package catalog provides the product repository backed by embedded catalog
// data, optionally extended with catalog files from a local directory.
package catalog

import _ "embed"

// embeddedCatalog is the default product set shipped with the binary.
//
//go:embed products.json
var embeddedCatalog []byte
