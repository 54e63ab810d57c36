package entity

import (
	"math"

	"github.com/google/uuid"

	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/stats"
)

// Enemy defaults.
const (
	DefaultAttackRange = 1
	DefaultAggroRange  = 3
)

// Enemy is a hostile character. Its ID is stable across moves; the board
// indexes enemies by position separately.
type Enemy struct {
	Character

	ID          uuid.UUID
	Key         string // catalog identifier, e.g. "large_rat"
	FlavourText string
	AttackRange int
	AggroRange  int
	Aggro       bool
	Level       int

	base   stats.Attributes
	growth map[stats.Attr]float64
}

// NewEnemy creates a level 1 enemy from its base attributes and per-level
// growth rates.
func NewEnemy(key, name string, attrs stats.Attributes, growth map[stats.Attr]float64) *Enemy {
	g := make(map[stats.Attr]float64, len(growth))
	for k, v := range growth {
		g[k] = v
	}
	return &Enemy{
		Character:   NewCharacter(name, attrs),
		ID:          uuid.New(),
		Key:         key,
		AttackRange: DefaultAttackRange,
		AggroRange:  DefaultAggroRange,
		Level:       1,
		base:        attrs,
		growth:      g,
	}
}

// SetLevel raises the enemy to level, recomputing attributes from the base
// values plus growth rounded to the nearest point, and refills HP and MP.
func (e *Enemy) SetLevel(level int) {
	if level < 1 {
		level = 1
	}
	e.Level = level
	attrs := e.base
	for attr, rate := range e.growth {
		attrs.Set(attr, attrs.Get(attr)+int(math.Round(rate*float64(level-1))))
	}
	e.Attrs = attrs
	e.RecomputeDerived()
	e.Health.Cur = e.Health.Max
	e.Mana.Cur = e.Mana.Max
}

// Subject returns "The <name>" for console sentences.
func (e *Enemy) Subject() string { return "The " + e.Name }

// IsEnemy always returns true.
func (e *Enemy) IsEnemy() bool { return true }

// OffRating is zero; enemies carry no equipment.
func (e *Enemy) OffRating() int { return 0 }

// DefRating is zero; enemies carry no equipment.
func (e *Enemy) DefRating() int { return 0 }

// Notice checks whether the player at target is within aggro range. Aggro is
// sticky. Returns true only on the turn aggro is first gained.
func (e *Enemy) Notice(target grid.Pos) bool {
	if e.Aggro {
		return false
	}
	r := e.AggroRange
	if r < 0 {
		r = 0
	}
	if grid.Manhattan(e.Pos, target) <= r {
		e.Aggro = true
		return true
	}
	return false
}

// InAttackRange reports whether target is within the enemy's attack range.
func (e *Enemy) InAttackRange(target grid.Pos) bool {
	return grid.Manhattan(e.Pos, target) <= e.AttackRange
}

// ExperienceValue is the XP the player gains for the kill.
func (e *Enemy) ExperienceValue() int {
	return 2 + 3*e.Level
}

var _ Actor = (*Enemy)(nil)
