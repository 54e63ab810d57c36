package world

import (
	"errors"
	"fmt"

	"github.com/samdwyer/delve/internal/grid"
)

// ErrInvalidTemplate is returned for empty, ragged or unknown-tile templates.
var ErrInvalidTemplate = errors.New("invalid board template")

// Template is a rectangular board layout, one string per row.
type Template []string

// Size returns the template width and height.
func (t Template) Size() (int, int) {
	if len(t) == 0 {
		return 0, 0
	}
	return len([]rune(t[0])), len(t)
}

// At returns the tile at p, or TileWall outside the template.
func (t Template) At(p grid.Pos) Tile {
	w, h := t.Size()
	if !grid.InBounds(p, w, h) {
		return TileWall
	}
	return Tile([]rune(t[p.Y])[p.X])
}

// Validate checks the template is a non-empty rectangle of known tiles with
// at most one player start, and that every door opens onto open floor, an
// enemy or the player start.
func (t Template) Validate() error {
	w, h := t.Size()
	if w == 0 || h == 0 {
		return fmt.Errorf("%w: empty", ErrInvalidTemplate)
	}
	players := 0
	for y, row := range t {
		runes := []rune(row)
		if len(runes) != w {
			return fmt.Errorf("%w: row %d has width %d, want %d", ErrInvalidTemplate, y, len(runes), w)
		}
		for x, r := range runes {
			tile := Tile(r)
			if !tile.Valid() {
				return fmt.Errorf("%w: unknown tile %q at (%d,%d)", ErrInvalidTemplate, r, x, y)
			}
			if tile == TilePlayer {
				players++
			}
		}
	}
	if players > 1 {
		return fmt.Errorf("%w: %d player starts", ErrInvalidTemplate, players)
	}

	// Arrivals land just inside a door, so that tile must be floor a
	// character can stand on.
	doors := t.Doors()
	positions := make([]grid.Pos, 0, len(doors))
	for p := range doors {
		positions = append(positions, p)
	}
	grid.SortPositions(positions)
	for _, p := range positions {
		inside := p.Add(doors[p].Opposite())
		switch tile := t.At(inside); tile {
		case TileOpen, TileEnemy, TilePlayer:
		default:
			return fmt.Errorf("%w: door at (%d,%d) opens onto %q", ErrInvalidTemplate, p.X, p.Y, rune(tile))
		}
	}
	return nil
}

// Rotate returns the template turned 90 degrees clockwise.
func (t Template) Rotate() Template {
	w, h := t.Size()
	src := make([][]rune, h)
	for y, row := range t {
		src[y] = []rune(row)
	}
	out := make(Template, w)
	for y := 0; y < w; y++ {
		row := make([]rune, h)
		for x := 0; x < h; x++ {
			row[x] = src[h-1-x][y]
		}
		out[y] = string(row)
	}
	return out
}

// WithoutPlayer replaces any player start with an open tile.
func (t Template) WithoutPlayer() Template {
	out := make(Template, len(t))
	for y, row := range t {
		runes := []rune(row)
		for x, r := range runes {
			if Tile(r) == TilePlayer {
				runes[x] = rune(TileOpen)
			}
		}
		out[y] = string(runes)
	}
	return out
}

// DoorFacing returns the direction a door at p leads out of the board. A
// door on the edge faces that edge. An interior door faces away from its
// walkable neighbour.
func (t Template) DoorFacing(p grid.Pos) (grid.Direction, bool) {
	w, h := t.Size()
	return doorFacing(p, w, h, func(q grid.Pos) bool {
		tile := t.At(q)
		return tile.Walkable() && tile != TileDoor
	})
}

// Doors returns every door position with its facing.
func (t Template) Doors() map[grid.Pos]grid.Direction {
	doors := make(map[grid.Pos]grid.Direction)
	for y, row := range t {
		for x, r := range []rune(row) {
			if Tile(r) != TileDoor {
				continue
			}
			p := grid.Pos{X: x, Y: y}
			if d, ok := t.DoorFacing(p); ok {
				doors[p] = d
			}
		}
	}
	return doors
}

// doorsFacing returns the doors facing want in row-major order.
func (t Template) doorsFacing(want grid.Direction) []grid.Pos {
	var out []grid.Pos
	for p, d := range t.Doors() {
		if d == want {
			out = append(out, p)
		}
	}
	grid.SortPositions(out)
	return out
}

func doorFacing(p grid.Pos, w, h int, walkable func(grid.Pos) bool) (grid.Direction, bool) {
	switch {
	case p.X == 0:
		return grid.Left, true
	case p.X == w-1:
		return grid.Right, true
	case p.Y == 0:
		return grid.Up, true
	case p.Y == h-1:
		return grid.Down, true
	}
	for _, d := range grid.Directions {
		if walkable(p.Add(d)) {
			return d.Opposite(), true
		}
	}
	return 0, false
}
