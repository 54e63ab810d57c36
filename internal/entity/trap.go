package entity

import (
	"fmt"

	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/status"
)

// TrapCategory decides how a triggered trap affects its victim.
type TrapCategory int

const (
	// TrapDirect deals damage once.
	TrapDirect TrapCategory = iota
	// TrapDebuff inflicts a status.
	TrapDebuff
)

// String returns "direct" or "debuff".
func (c TrapCategory) String() string {
	switch c {
	case TrapDirect:
		return "direct"
	case TrapDebuff:
		return "debuff"
	default:
		return "unknown"
	}
}

// ParseTrapCategory converts a data-file category name.
func ParseTrapCategory(s string) (TrapCategory, error) {
	switch s {
	case "direct":
		return TrapDirect, nil
	case "debuff":
		return TrapDebuff, nil
	default:
		return 0, fmt.Errorf("unknown trap category %q", s)
	}
}

// Trap sits on a tile and may trigger when stepped on.
type Trap struct {
	Name     string
	Pos      grid.Pos
	Category TrapCategory
	// TriggerProb is the base chance (0..1) that the trap fires.
	TriggerProb float64
	// AvoidCoeff scales the victim's dexterity into extra avoidance.
	AvoidCoeff float64
	// DamagePercent of the victim's max HP, for direct traps.
	DamagePercent float64
	// Status inflicted by debuff traps.
	Status *status.Status
}

// Copy returns an independent trap placed at p.
func (t *Trap) Copy(p grid.Pos) *Trap {
	cp := *t
	cp.Pos = p
	return &cp
}
