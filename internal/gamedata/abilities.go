package gamedata

import (
	"fmt"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/status"
)

// AbilityEffectDef is a tagged active ability effect.
type AbilityEffectDef struct {
	Type      string  `json:"type"`
	Base      float64 `json:"base,omitempty"`
	PerLevel  float64 `json:"perLevel,omitempty"`
	Knockback bool    `json:"knockback,omitempty"`
	Status    string  `json:"status,omitempty"`
}

func (d AbilityEffectDef) effect(statuses map[string]*status.Status) (entity.AbilityEffect, error) {
	switch d.Type {
	case "strike":
		return entity.Strike{Base: d.Base, PerLevel: d.PerLevel, Knockback: d.Knockback}, nil
	case "blast":
		return entity.Blast{Base: int(d.Base), PerLevel: int(d.PerLevel)}, nil
	case "leap":
		return entity.Leap{}, nil
	case "self_heal":
		return entity.SelfHeal{Base: int(d.Base), PerLevel: int(d.PerLevel)}, nil
	case "self_status":
		s, ok := statuses[d.Status]
		if !ok {
			return nil, fmt.Errorf("unknown status %q", d.Status)
		}
		return entity.SelfStatus{Status: s}, nil
	}
	return nil, fmt.Errorf("unknown ability effect type %q", d.Type)
}

// LevelUpDef holds additive per-level changes.
type LevelUpDef struct {
	Cooldown int `json:"cooldown,omitempty"`
	Radius   int `json:"radius,omitempty"`
	MPCost   int `json:"mpCost,omitempty"`
}

// ActiveDef is one active ability from abilities.json.
type ActiveDef struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Shape         string           `json:"shape"`
	Radius        int              `json:"radius,omitempty"`
	Splash        string           `json:"splash,omitempty"`
	Effect        AbilityEffectDef `json:"effect"`
	MPCost        int              `json:"mpCost"`
	Cooldown      int              `json:"cooldown"`
	RequiredLevel int              `json:"requiredLevel"`
	LevelUp       LevelUpDef       `json:"levelUp"`
}

// Build creates the ability prototype at level 0. Learning copies it.
func (d ActiveDef) Build(statuses map[string]*status.Status) (*entity.ActiveAbility, error) {
	shape, err := entity.ParseTargetShape(d.Shape)
	if err != nil {
		return nil, fmt.Errorf("ability %s: %w", d.ID, err)
	}
	splash, err := entity.ParseSplashKind(d.Splash)
	if err != nil {
		return nil, fmt.Errorf("ability %s: %w", d.ID, err)
	}
	effect, err := d.Effect.effect(statuses)
	if err != nil {
		return nil, fmt.Errorf("ability %s: %w", d.ID, err)
	}
	return &entity.ActiveAbility{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Shape:         shape,
		Radius:        d.Radius,
		Splash:        splash,
		Effect:        effect,
		MPCost:        d.MPCost,
		Cooldown:      d.Cooldown,
		RequiredLevel: d.RequiredLevel,
		Growth: entity.LevelGrowth{
			Cooldown: d.LevelUp.Cooldown,
			Radius:   d.LevelUp.Radius,
			MPCost:   d.LevelUp.MPCost,
		},
	}, nil
}

// PassiveDef is one passive ability from abilities.json.
type PassiveDef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Group         string `json:"group"`
	Mod           string `json:"mod"`
	Value         int    `json:"value"`
	RequiredLevel int    `json:"requiredLevel"`
}

// Build creates the passive definition.
func (d PassiveDef) Build() *entity.PassiveAbility {
	return &entity.PassiveAbility{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Group:         d.Group,
		Mod:           d.Mod,
		Value:         d.Value,
		RequiredLevel: d.RequiredLevel,
	}
}

type abilitiesFile struct {
	Actives  []ActiveDef  `json:"actives"`
	Passives []PassiveDef `json:"passives"`
}
