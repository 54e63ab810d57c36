package gamedata

import (
	"fmt"

	"github.com/samdwyer/delve/internal/stats"
	"github.com/samdwyer/delve/internal/status"
)

// EffectDef is a tagged status effect. Type selects which fields apply.
type EffectDef struct {
	Type         string           `json:"type"`
	Flat         int              `json:"flat,omitempty"`
	PercentOfMax float64          `json:"percentOfMax,omitempty"`
	HP           int              `json:"hp,omitempty"`
	MP           int              `json:"mp,omitempty"`
	Delta        stats.Attributes `json:"delta,omitempty"`
	Percent      float64          `json:"percent,omitempty"`
	Absorb       bool             `json:"absorb,omitempty"`
}

// Effect converts the definition into its typed variant.
func (d EffectDef) Effect() (status.Effect, error) {
	switch d.Type {
	case "damage_over_time":
		return status.DamageOverTime{Flat: d.Flat, PercentOfMax: d.PercentOfMax}, nil
	case "regen_over_time":
		return status.RegenOverTime{HP: d.HP, MP: d.MP}, nil
	case "attribute_modifier":
		return status.AttributeModifier{Delta: d.Delta}, nil
	case "reflect_damage":
		return status.ReflectDamage{Percent: d.Percent, Absorb: d.Absorb}, nil
	case "bonus_damage":
		return status.BonusDamage{Flat: d.Flat, Percent: d.Percent}, nil
	}
	return nil, fmt.Errorf("unknown status effect type %q", d.Type)
}

// StatusDef is one status from statuses.json.
type StatusDef struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Kind        string      `json:"kind"`
	Duration    int         `json:"duration"`
	Effects     []EffectDef `json:"effects"`
}

// Build creates the status prototype. Callers apply clones of it.
func (d StatusDef) Build() (*status.Status, error) {
	kind, err := status.ParseKind(d.Kind)
	if err != nil {
		return nil, fmt.Errorf("status %s: %w", d.Name, err)
	}
	s := &status.Status{
		Name:        d.Name,
		Description: d.Description,
		Kind:        kind,
		Duration:    d.Duration,
		TurnsLeft:   d.Duration,
	}
	for _, ed := range d.Effects {
		e, err := ed.Effect()
		if err != nil {
			return nil, fmt.Errorf("status %s: %w", d.Name, err)
		}
		s.Effects = append(s.Effects, e)
	}
	return s, nil
}

type statusesFile struct {
	Statuses []StatusDef `json:"statuses"`
}
