// Package grid provides coordinates, directions and coordinate sets for the
// square tile boards.
package grid

import (
	"fmt"
	"sort"

	"github.com/zyedidia/generic/mapset"
)

// Pos is a tile coordinate. X grows to the right, Y grows downward.
type Pos struct {
	X, Y int
}

// String formats the position as "(x,y)".
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p moved one step in direction d.
func (p Pos) Add(d Direction) Pos {
	dx, dy := d.Delta()
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// Direction is one of the four orthogonal directions.
type Direction int

const (
	Up Direction = iota
	Right
	Down
	Left
)

// Directions lists the four directions in clockwise order starting at Up.
var Directions = [...]Direction{Up, Right, Down, Left}

// String returns the lowercase direction name.
func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// Delta returns the unit step for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Up:
		return 0, -1
	case Right:
		return 1, 0
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	default:
		return 0, 0
	}
}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Clockwise returns the direction after a quarter turn clockwise.
func (d Direction) Clockwise() Direction {
	return (d + 1) % 4
}

// DirectionBetween returns the direction of the dominant axis from a to b.
// The x axis wins ties. ok is false when a == b.
func DirectionBetween(a, b Pos) (d Direction, ok bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	if dx == 0 && dy == 0 {
		return Up, false
	}
	if abs(dx) >= abs(dy) {
		if dx > 0 {
			return Right, true
		}
		return Left, true
	}
	if dy > 0 {
		return Down, true
	}
	return Up, true
}

// Manhattan returns the taxicab distance between two positions.
func Manhattan(a, b Pos) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

// Neighbors4 returns the four orthogonal neighbours in Up, Right, Down, Left order.
func Neighbors4(p Pos) [4]Pos {
	return [4]Pos{p.Add(Up), p.Add(Right), p.Add(Down), p.Add(Left)}
}

// InBounds reports whether p lies inside a width x height rectangle at the origin.
func InBounds(p Pos, width, height int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
}

// PosSet is an unordered set of positions.
type PosSet = mapset.Set[Pos]

// NewPosSet creates a set holding the given positions.
func NewPosSet(ps ...Pos) PosSet {
	s := mapset.New[Pos]()
	for _, p := range ps {
		s.Put(p)
	}
	return s
}

// Clone returns an independent copy of s.
func Clone(s PosSet) PosSet {
	out := mapset.New[Pos]()
	s.Each(func(p Pos) {
		out.Put(p)
	})
	return out
}

// Sorted returns the members of s in row-major order. Map iteration order is
// random, so callers that need determinism go through this.
func Sorted(s PosSet) []Pos {
	out := make([]Pos, 0, s.Size())
	s.Each(func(p Pos) {
		out = append(out, p)
	})
	SortPositions(out)
	return out
}

// SortPositions orders positions row-major (by Y, then X).
func SortPositions(ps []Pos) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
