package entity

import (
	"fmt"

	"github.com/samdwyer/delve/internal/stats"
	"github.com/samdwyer/delve/internal/status"
)

// Record is the flat save-game representation of a player.
type Record struct {
	Name            string            `json:"name"`
	Profession      string            `json:"profession"`
	HP              [2]int            `json:"hp"`
	MP              [2]int            `json:"mp"`
	Attributes      stats.Attributes  `json:"attributes"`
	Statuses        []StatusRecord    `json:"statuses"`
	Inventory       []string          `json:"inventory"`
	Equipment       map[string]string `json:"equipment"`
	Conditions      map[string][3]int `json:"conditions"`
	Level           int               `json:"level"`
	Experience      [2]int            `json:"experience"`
	AttributePoints int               `json:"attribute_points"`
	SkillPoints     int               `json:"skill_points"`
	Abilities       []AbilityRecord   `json:"abilities"`
	Passives        map[string]int    `json:"passives"`
}

// StatusRecord is a saved status.
type StatusRecord struct {
	Name      string `json:"name"`
	Kind      string `json:"kind"`
	Duration  int    `json:"duration"`
	TurnsLeft int    `json:"turns_left"`
}

// AbilityRecord is a saved active ability.
type AbilityRecord struct {
	ID        string `json:"id"`
	Level     int    `json:"level"`
	TurnsLeft int    `json:"turns_left"`
}

// Lookup resolves catalog identifiers while restoring a record.
type Lookup interface {
	Item(id string) (Item, bool)
	Status(name string) (*status.Status, bool)
	Active(id string) (*ActiveAbility, bool)
	Passive(id string) (*PassiveAbility, bool)
}

// ToRecord flattens the player into a save record.
func (p *Player) ToRecord() Record {
	rec := Record{
		Name:            p.Name,
		Profession:      p.Profession,
		HP:              [2]int{p.Health.Cur, p.Health.Max},
		MP:              [2]int{p.Mana.Cur, p.Mana.Max},
		Attributes:      p.Attrs,
		Statuses:        []StatusRecord{},
		Inventory:       []string{},
		Equipment:       make(map[string]string),
		Conditions:      make(map[string][3]int),
		Level:           p.Level,
		Experience:      [2]int{p.Experience.Cur, p.Experience.Max},
		AttributePoints: p.AttributePoints,
		SkillPoints:     p.SkillPoints,
		Abilities:       []AbilityRecord{},
		Passives:        make(map[string]int),
	}
	for _, s := range p.Status.All() {
		rec.Statuses = append(rec.Statuses, StatusRecord{
			Name:      s.Name,
			Kind:      s.Kind.String(),
			Duration:  s.Duration,
			TurnsLeft: s.TurnsLeft,
		})
	}
	for _, item := range p.Inventory {
		rec.Inventory = append(rec.Inventory, item.ItemID())
	}
	for slot, eq := range p.Equipment {
		if eq != nil {
			rec.Equipment[string(slot)] = eq.ID
		}
	}
	for _, c := range Conditions {
		m := p.Conditions[c]
		rec.Conditions[c.String()] = [3]int{m.Cur, m.Max, m.Counter}
	}
	for _, a := range p.Abilities {
		rec.Abilities = append(rec.Abilities, AbilityRecord{ID: a.ID, Level: a.Level, TurnsLeft: a.TurnsLeft})
	}
	for id, ranks := range p.LearnedPassives {
		rec.Passives[id] = ranks
	}
	return rec
}

// FromRecord rebuilds a player from a save record.
func FromRecord(rec Record, lookup Lookup) (*Player, error) {
	p := NewPlayer(rec.Name, rec.Profession, rec.Attributes)
	p.Health = stats.Pool{Cur: rec.HP[0], Max: rec.HP[1]}
	p.Mana = stats.Pool{Cur: rec.MP[0], Max: rec.MP[1]}
	p.Level = rec.Level
	p.Experience = stats.Pool{Cur: rec.Experience[0], Max: rec.Experience[1]}
	p.AttributePoints = rec.AttributePoints
	p.SkillPoints = rec.SkillPoints

	for _, sr := range rec.Statuses {
		def, ok := lookup.Status(sr.Name)
		if !ok {
			return nil, fmt.Errorf("restore status: unknown status %q", sr.Name)
		}
		kind, err := status.ParseKind(sr.Kind)
		if err != nil {
			return nil, fmt.Errorf("restore status %q: %w", sr.Name, err)
		}
		s := def.Clone()
		s.Kind = kind
		s.Duration = sr.Duration
		s.TurnsLeft = sr.TurnsLeft
		status.Restore(p, s)
	}

	for _, id := range rec.Inventory {
		item, ok := lookup.Item(id)
		if !ok {
			return nil, fmt.Errorf("restore inventory: unknown item %q", id)
		}
		p.Inventory = append(p.Inventory, item)
	}

	for slotName, id := range rec.Equipment {
		slot, err := ParseSlot(slotName)
		if err != nil {
			return nil, fmt.Errorf("restore equipment: %w", err)
		}
		item, ok := lookup.Item(id)
		if !ok {
			return nil, fmt.Errorf("restore equipment: unknown item %q", id)
		}
		eq, ok := item.(*Equipment)
		if !ok {
			return nil, fmt.Errorf("restore equipment: %q is not equipment", id)
		}
		p.Equipment[slot] = eq
	}

	for name, v := range rec.Conditions {
		c, err := ParseCondition(name)
		if err != nil {
			return nil, fmt.Errorf("restore conditions: %w", err)
		}
		p.Conditions[c] = ConditionMeter{Cur: v[0], Max: v[1], Counter: v[2]}
	}
	// Saved attributes already include the penalty.
	p.fatigued = p.Conditions[Tired].Low()

	for _, ar := range rec.Abilities {
		def, ok := lookup.Active(ar.ID)
		if !ok {
			return nil, fmt.Errorf("restore abilities: unknown ability %q", ar.ID)
		}
		a := def.Copy()
		if a.Level < 1 {
			a.Level = 1
		}
		for a.Level < ar.Level {
			a.LevelUp()
		}
		a.TurnsLeft = ar.TurnsLeft
		p.Abilities = append(p.Abilities, a)
	}

	for id, ranks := range rec.Passives {
		def, ok := lookup.Passive(id)
		if !ok {
			return nil, fmt.Errorf("restore passives: unknown passive %q", id)
		}
		p.LearnedPassives[id] = ranks
		p.Passives.Add(def.Group, def.Mod, def.Value*ranks)
	}

	return p, nil
}
