// Package ability resolves the player's active abilities: which tiles they
// can target, which tiles a choice affects, and what happens to whoever
// stands there.
package ability

import (
	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
)

// Terrain is the board view targeting needs. *world.Board satisfies it.
type Terrain interface {
	IsWall(p grid.Pos) bool
	EnemyAt(p grid.Pos) (*entity.Enemy, bool)
	TileIsOpen(p grid.Pos) bool
}

// NeedsTarget reports whether the ability waits for a tile click.
func NeedsTarget(a *entity.ActiveAbility) bool {
	return a.Shape != entity.ShapeSelf
}

// Targets returns the tiles the player at from may choose for a, in
// row-major order.
func Targets(a *entity.ActiveAbility, t Terrain, from grid.Pos) []grid.Pos {
	set := grid.NewPosSet()
	switch a.Shape {
	case entity.ShapeSelf:
		set.Put(from)
	case entity.ShapeAdjacent:
		for _, n := range grid.Neighbors4(from) {
			if !t.IsWall(n) {
				set.Put(n)
			}
		}
	case entity.ShapeRadius, entity.ShapeRadiusSplash:
		r := max(a.Radius, 1)
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				p := grid.Pos{X: from.X + dx, Y: from.Y + dy}
				if d := grid.Manhattan(from, p); d == 0 || d > r {
					continue
				}
				if !t.IsWall(p) {
					set.Put(p)
				}
			}
		}
	case entity.ShapeCrossLine:
		r := max(a.Radius, 1)
		for _, d := range grid.Directions {
			p := from
			for i := 0; i < r; i++ {
				p = p.Add(d)
				if t.IsWall(p) {
					break
				}
				set.Put(p)
			}
		}
	}
	return grid.Sorted(set)
}

// IsTarget reports whether p is one of the legal targets.
func IsTarget(a *entity.ActiveAbility, t Terrain, from, p grid.Pos) bool {
	for _, q := range Targets(a, t, from) {
		if q == p {
			return true
		}
	}
	return false
}

// Expand returns every tile affected when the player at from picks chosen.
func Expand(a *entity.ActiveAbility, t Terrain, from, chosen grid.Pos) []grid.Pos {
	set := grid.NewPosSet(chosen)
	switch a.Splash {
	case entity.SplashOrthogonal:
		for _, n := range grid.Neighbors4(chosen) {
			if !t.IsWall(n) {
				set.Put(n)
			}
		}
	case entity.SplashSurround:
		for _, n := range grid.Neighbors4(from) {
			if !t.IsWall(n) {
				set.Put(n)
			}
		}
	case entity.SplashLine:
		// From the tile next to the player, through chosen, to the first wall.
		if d, ok := grid.DirectionBetween(from, chosen); ok {
			for p := from.Add(d); !t.IsWall(p); p = p.Add(d) {
				set.Put(p)
			}
		}
	}
	return grid.Sorted(set)
}
