// Package cards provides embedded card data, hands of selected cards, and
// program-advance (combo) matching.
package cards

import "embed"

// dataFS embeds all JSON files from this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
