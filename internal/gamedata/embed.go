// Package gamedata loads the embedded game catalog: enemies, items, traps,
// statuses, abilities, professions, board templates and colours.
package gamedata

import "embed"

// dataFS embeds every JSON catalog file in this directory.
//
//go:embed *.json
var dataFS embed.FS
