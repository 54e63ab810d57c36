// Package entity provides the characters and objects that live on a board:
// the player, enemies, items, chests, traps and ability definitions.
package entity

import (
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/stats"
	"github.com/samdwyer/delve/internal/status"
)

// Per-point scaling of derived pools.
const (
	HPPerVit = 5
	MPPerWis = 2
)

// Roller is the source of randomness. *rand.Rand satisfies it; tests inject
// scripted rollers.
type Roller interface {
	Intn(n int) int
	Float64() float64
}

// Actor is any character that can move, fight and hold statuses. The player
// and enemies are the two implementations; callers branch on IsEnemy rather
// than on concrete types.
type Actor interface {
	status.Holder

	DisplayName() string
	Position() grid.Pos
	SetPosition(p grid.Pos)
	IsAlive() bool
	// OffRating is the flat offense bonus from equipment.
	OffRating() int
	// DefRating is the flat damage reduction from equipment and passives.
	DefRating() int
	// RegenCounter is the accumulator used by passive MP regeneration.
	RegenCounter() *int
}

// Character is the state shared by the player and enemies.
type Character struct {
	Name      string
	Pos       grid.Pos
	Attrs     stats.Attributes
	Health    stats.Pool
	Mana      stats.Pool
	Status    status.List
	ManaRegen int
}

// NewCharacter creates a character at full HP and MP for its attributes.
func NewCharacter(name string, attrs stats.Attributes) Character {
	c := Character{Name: name, Attrs: attrs}
	c.RecomputeDerived()
	c.Health.Cur = c.Health.Max
	c.Mana.Cur = c.Mana.Max
	return c
}

// RecomputeDerived updates max HP and MP from vitality and wisdom.
func (c *Character) RecomputeDerived() {
	c.Health.SetMax(c.Attrs.Vit * HPPerVit)
	c.Mana.SetMax(c.Attrs.Wis * MPPerWis)
}

// DisplayName returns the character's name.
func (c *Character) DisplayName() string { return c.Name }

// Position returns the tile the character stands on.
func (c *Character) Position() grid.Pos { return c.Pos }

// SetPosition moves the character without any board bookkeeping.
func (c *Character) SetPosition(p grid.Pos) { c.Pos = p }

// IsAlive returns true while HP remains.
func (c *Character) IsAlive() bool { return c.Health.Cur > 0 }

// HP returns the health pool.
func (c *Character) HP() *stats.Pool { return &c.Health }

// MP returns the mana pool.
func (c *Character) MP() *stats.Pool { return &c.Mana }

// Attributes returns the current attributes.
func (c *Character) Attributes() stats.Attributes { return c.Attrs }

// Statuses returns the status list.
func (c *Character) Statuses() *status.List { return &c.Status }

// RegenCounter returns the passive MP regeneration accumulator.
func (c *Character) RegenCounter() *int { return &c.ManaRegen }

// ModifyAttributes adds delta and recomputes max HP and MP.
func (c *Character) ModifyAttributes(delta stats.Attributes) {
	c.Attrs = c.Attrs.Add(delta)
	c.RecomputeDerived()
}
