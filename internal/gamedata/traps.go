package gamedata

import (
	"fmt"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/status"
)

// TrapDef is one trap type from traps.json.
type TrapDef struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Category      string  `json:"category"`
	TriggerProb   float64 `json:"triggerProb"`
	AvoidCoeff    float64 `json:"avoidCoeff"`
	DamagePercent float64 `json:"damagePercent,omitempty"`
	Status        string  `json:"status,omitempty"`
	MinTier       int     `json:"minTier"`
	SpawnWeight   int     `json:"spawnWeight"`
}

func (d TrapDef) DefID() string  { return d.ID }
func (d TrapDef) DefTier() int   { return d.MinTier }
func (d TrapDef) DefWeight() int { return d.SpawnWeight }

// Build creates the trap prototype. Boards place copies of it.
func (d TrapDef) Build(statuses map[string]*status.Status) (*entity.Trap, error) {
	cat, err := entity.ParseTrapCategory(d.Category)
	if err != nil {
		return nil, fmt.Errorf("trap %s: %w", d.ID, err)
	}
	t := &entity.Trap{
		Name:          d.Name,
		Category:      cat,
		TriggerProb:   d.TriggerProb,
		AvoidCoeff:    d.AvoidCoeff,
		DamagePercent: d.DamagePercent,
	}
	if cat == entity.TrapDebuff {
		s, ok := statuses[d.Status]
		if !ok {
			return nil, fmt.Errorf("trap %s: unknown status %q", d.ID, d.Status)
		}
		t.Status = s
	}
	return t, nil
}

type trapsFile struct {
	Traps []TrapDef `json:"traps"`
}
