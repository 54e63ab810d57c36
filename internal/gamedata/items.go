package gamedata

import (
	"fmt"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/stats"
	"github.com/samdwyer/delve/internal/status"
)

// ItemEffectDef is a tagged consumable effect.
type ItemEffectDef struct {
	Type    string         `json:"type"`
	Value   int            `json:"value,omitempty"`
	Changes map[string]int `json:"changes,omitempty"`
	Percent int            `json:"percent,omitempty"`
	Status  string         `json:"status,omitempty"`
	Damage  int            `json:"damage,omitempty"`
	Range   int            `json:"range,omitempty"`
}

func (d ItemEffectDef) effect(statuses map[string]*status.Status) (entity.ItemEffect, error) {
	switch d.Type {
	case "restore_hp":
		return entity.RestoreHP{Value: d.Value}, nil
	case "restore_mp":
		return entity.RestoreMP{Value: d.Value}, nil
	case "improve_conditions":
		changes := make(map[entity.Condition]int, len(d.Changes))
		for key, v := range d.Changes {
			c, err := entity.ParseCondition(key)
			if err != nil {
				return nil, err
			}
			changes[c] = v
		}
		return entity.ImproveConditions{Changes: changes}, nil
	case "chance_to_apply_status":
		s, ok := statuses[d.Status]
		if !ok {
			return nil, fmt.Errorf("unknown status %q", d.Status)
		}
		return entity.ChanceToApplyStatus{Percent: d.Percent, Status: s}, nil
	case "damage_target":
		return entity.DamageTarget{Damage: d.Damage, Range: d.Range}, nil
	}
	return nil, fmt.Errorf("unknown item effect type %q", d.Type)
}

// ConsumableDef is one consumable from items.json.
type ConsumableDef struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Details     []string        `json:"details"`
	UseText     string          `json:"useText"`
	Effects     []ItemEffectDef `json:"effects"`
	Prereqs     []string        `json:"prereqs"`
	MinTier     int             `json:"minTier"`
	SpawnWeight int             `json:"spawnWeight"`
}

func (d ConsumableDef) DefID() string  { return d.ID }
func (d ConsumableDef) DefTier() int   { return d.MinTier }
func (d ConsumableDef) DefWeight() int { return d.SpawnWeight }

// Build creates the consumable prototype.
func (d ConsumableDef) Build(statuses map[string]*status.Status) (*entity.Consumable, error) {
	c := &entity.Consumable{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Details:     d.Details,
		UseText:     d.UseText,
	}
	for _, ed := range d.Effects {
		e, err := ed.effect(statuses)
		if err != nil {
			return nil, fmt.Errorf("item %s: %w", d.ID, err)
		}
		c.Effects = append(c.Effects, e)
	}
	for _, p := range d.Prereqs {
		if entity.Prereq(p) != entity.PrereqNoEnemies {
			return nil, fmt.Errorf("item %s: unknown prerequisite %q", d.ID, p)
		}
		c.Prereqs = append(c.Prereqs, entity.Prereq(p))
	}
	return c, nil
}

// EquipmentDef is one piece of equipment from items.json.
type EquipmentDef struct {
	ID           string           `json:"id"`
	Name         string           `json:"name"`
	Description  string           `json:"description"`
	Slot         string           `json:"slot"`
	OffRating    int              `json:"offRating"`
	DefRating    int              `json:"defRating"`
	Requirements stats.Attributes `json:"requirements"`
	MinTier      int              `json:"minTier"`
	SpawnWeight  int              `json:"spawnWeight"`
}

func (d EquipmentDef) DefID() string  { return d.ID }
func (d EquipmentDef) DefTier() int   { return d.MinTier }
func (d EquipmentDef) DefWeight() int { return d.SpawnWeight }

// Build creates the equipment prototype.
func (d EquipmentDef) Build() (*entity.Equipment, error) {
	slot, err := entity.ParseSlot(d.Slot)
	if err != nil {
		return nil, fmt.Errorf("item %s: %w", d.ID, err)
	}
	return &entity.Equipment{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Slot:         slot,
		OffRating:    d.OffRating,
		DefRating:    d.DefRating,
		Requirements: d.Requirements,
	}, nil
}

// lootDef is a drawable entry across both item kinds.
type lootDef struct {
	id     string
	tier   int
	weight int
}

func (d lootDef) DefID() string  { return d.id }
func (d lootDef) DefTier() int   { return d.tier }
func (d lootDef) DefWeight() int { return d.weight }

type itemsFile struct {
	Consumables []ConsumableDef `json:"consumables"`
	Equipment   []EquipmentDef  `json:"equipment"`
}
