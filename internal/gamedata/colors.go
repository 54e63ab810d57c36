package gamedata

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Palette holds the colours used to draw the board and the side panels.
type Palette struct {
	Tiles     map[string]string `json:"tiles"`
	Highlight string            `json:"highlight"`
	Console   string            `json:"console"`
	Panel     string            `json:"panel"`
}

// Tile returns the colour for a tile code, or the default colour when the
// palette has no entry for it.
func (p Palette) Tile(code rune) tcell.Color {
	hex, ok := p.Tiles[string(code)]
	if !ok {
		return tcell.ColorDefault
	}
	c, err := ParseHexColor(hex)
	if err != nil {
		return tcell.ColorDefault
	}
	return c
}

// Validate checks that every colour in the palette parses.
func (p Palette) Validate() error {
	for code, hex := range p.Tiles {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("tile %s: %w", code, err)
		}
	}
	for name, hex := range map[string]string{"highlight": p.Highlight, "console": p.Console, "panel": p.Panel} {
		if _, err := ParseHexColor(hex); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// ParseHexColor converts "#RRGGBB" or "RRGGBB" to a tcell colour.
func ParseHexColor(hex string) (tcell.Color, error) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color length: %q", hex)
	}

	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return tcell.ColorDefault, fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return tcell.NewRGBColor(int32(v>>16&0xFF), int32(v>>8&0xFF), int32(v&0xFF)), nil
}

// MustParseHexColor is ParseHexColor for colours known at build time.
func MustParseHexColor(hex string) tcell.Color {
	color, err := ParseHexColor(hex)
	if err != nil {
		panic(err)
	}
	return color
}
