package pathfind

import "github.com/samdwyer/delve/internal/grid"

// Roller is the random source used for wandering.
type Roller interface {
	Intn(n int) int
}

// MoveTowardsTarget takes one greedy step from from toward target. It tries
// the axis with the larger gap first (x on ties) and falls back to the other
// axis. Returns false when neither step is open.
func MoveTowardsTarget(from, target grid.Pos, open grid.PosSet) (grid.Pos, bool) {
	dx, dy := target.X-from.X, target.Y-from.Y
	xStep := grid.Pos{X: from.X + sign(dx), Y: from.Y}
	yStep := grid.Pos{X: from.X, Y: from.Y + sign(dy)}

	order := [2]grid.Pos{xStep, yStep}
	if abs(dy) > abs(dx) {
		order = [2]grid.Pos{yStep, xStep}
	}
	for _, step := range order {
		if step != from && open.Has(step) {
			return step, true
		}
	}
	return grid.Pos{}, false
}

// Wander moves to a random open neighbour half of the time.
func Wander(rng Roller, from grid.Pos, open grid.PosSet) (grid.Pos, bool) {
	if rng.Intn(2) != 0 {
		return grid.Pos{}, false
	}
	var candidates []grid.Pos
	for _, n := range grid.Neighbors4(from) {
		if open.Has(n) {
			candidates = append(candidates, n)
		}
	}
	if len(candidates) == 0 {
		return grid.Pos{}, false
	}
	return candidates[rng.Intn(len(candidates))], true
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
