package entity

import (
	"errors"
	"fmt"

	"github.com/samdwyer/delve/internal/stats"
	"github.com/samdwyer/delve/internal/status"
)

// Player limits and progression values.
const (
	InventoryLimit          = 12
	StartingExperienceMax   = 10
	AttributePointsPerLevel = 3
	SkillPointsPerLevel     = 1
)

// Player-facing errors. The turn controller turns these into console text
// without advancing the turn.
var (
	ErrInventoryFull     = errors.New("your inventory is full")
	ErrRequirementsUnmet = errors.New("you do not meet the requirements")
	ErrSlotEmpty         = errors.New("nothing is equipped there")
	ErrNoPoints          = errors.New("you have no points to spend")
	ErrLevelTooLow       = errors.New("your level is too low")
	ErrInvalidIndex      = errors.New("there is no such item")
)

// Player is the character controlled by the user.
type Player struct {
	Character

	Profession      string
	Inventory       []Item
	Equipment       map[Slot]*Equipment
	Conditions      [conditionCount]ConditionMeter
	Level           int
	Experience      stats.Pool
	AttributePoints int
	SkillPoints     int
	Abilities       []*ActiveAbility
	Passives        PassiveTable
	// LearnedPassives counts how many ranks of each passive were taken.
	LearnedPassives map[string]int

	fatigued bool
}

// NewPlayer creates a level 1 player with full pools and conditions.
func NewPlayer(name, profession string, attrs stats.Attributes) *Player {
	p := &Player{
		Character:       NewCharacter(name, attrs),
		Profession:      profession,
		Equipment:       make(map[Slot]*Equipment),
		Level:           1,
		Experience:      stats.Pool{Max: StartingExperienceMax},
		Passives:        make(PassiveTable),
		LearnedPassives: make(map[string]int),
	}
	for i := range p.Conditions {
		p.Conditions[i] = ConditionMeter{Cur: ConditionMax, Max: ConditionMax}
	}
	return p
}

// Subject returns "You".
func (p *Player) Subject() string { return "You" }

// IsEnemy always returns false.
func (p *Player) IsEnemy() bool { return false }

// OffRating sums the offense rating of equipped items.
func (p *Player) OffRating() int {
	total := 0
	for _, eq := range p.Equipment {
		if eq != nil {
			total += eq.OffRating
		}
	}
	return total
}

// DefRating sums equipped defense plus the base_def passive.
func (p *Player) DefRating() int {
	total := p.Passives.Get(GroupCombat, ModBaseDef)
	for _, eq := range p.Equipment {
		if eq != nil {
			total += eq.DefRating
		}
	}
	return total
}

// Fatigued reports whether the tiredness penalty is currently applied.
func (p *Player) Fatigued() bool { return p.fatigued }

// AddItem appends an item to the inventory.
func (p *Player) AddItem(item Item) error {
	if len(p.Inventory) >= InventoryLimit {
		return ErrInventoryFull
	}
	p.Inventory = append(p.Inventory, item)
	return nil
}

// RemoveItem removes and returns the item at index.
func (p *Player) RemoveItem(index int) (Item, error) {
	if index < 0 || index >= len(p.Inventory) {
		return nil, ErrInvalidIndex
	}
	item := p.Inventory[index]
	p.Inventory = append(p.Inventory[:index], p.Inventory[index+1:]...)
	return item, nil
}

// Equip wears the equipment at inventory index. Whatever was in the slot
// takes its place in the inventory.
func (p *Player) Equip(index int) (*Equipment, error) {
	if index < 0 || index >= len(p.Inventory) {
		return nil, ErrInvalidIndex
	}
	eq, ok := p.Inventory[index].(*Equipment)
	if !ok {
		return nil, fmt.Errorf("%s cannot be equipped", p.Inventory[index].ItemName())
	}
	if !p.Attrs.Meets(eq.Requirements) {
		return nil, ErrRequirementsUnmet
	}
	previous := p.Equipment[eq.Slot]
	if previous != nil {
		p.Inventory[index] = previous
	} else {
		p.Inventory = append(p.Inventory[:index], p.Inventory[index+1:]...)
	}
	p.Equipment[eq.Slot] = eq
	return previous, nil
}

// Unequip moves the item in slot back to the inventory.
func (p *Player) Unequip(slot Slot) (*Equipment, error) {
	eq := p.Equipment[slot]
	if eq == nil {
		return nil, ErrSlotEmpty
	}
	if err := p.AddItem(eq); err != nil {
		return nil, err
	}
	delete(p.Equipment, slot)
	return eq, nil
}

// Consume applies a consumable's effects to the player and, for thrown
// items, to target. Prerequisites are checked by the caller.
func (p *Player) Consume(c *Consumable, rng Roller, target Actor) []string {
	var lines []string
	if c.UseText != "" {
		lines = append(lines, c.UseText)
	}
	for _, e := range c.Effects {
		switch e := e.(type) {
		case RestoreHP:
			p.Health.Add(e.Value)
		case RestoreMP:
			p.Mana.Add(e.Value)
		case ImproveConditions:
			for cond, v := range e.Changes {
				p.Conditions[cond].Shift(v)
			}
		case ChanceToApplyStatus:
			if e.Status != nil && rng.Intn(100) < e.Percent {
				status.Apply(p, e.Status.Clone())
				lines = append(lines, fmt.Sprintf("You are afflicted with %s!", e.Status.Label()))
			}
		case DamageTarget:
			if target != nil {
				dealt := target.HP().Sub(e.Damage)
				lines = append(lines, fmt.Sprintf("%s hits %s for %d damage.", c.Name, objectName(target), dealt))
			}
		}
	}
	return lines
}

// GainExperience adds XP and levels up as often as it allows. Returns the
// number of levels gained.
func (p *Player) GainExperience(xp int) int {
	gained := 0
	p.Experience.Cur += xp
	for p.Experience.Cur >= p.Experience.Max {
		p.Experience.Cur -= p.Experience.Max
		p.Experience.Max = p.Experience.Max * 3 / 2
		p.Level++
		p.AttributePoints += AttributePointsPerLevel
		p.SkillPoints += SkillPointsPerLevel
		gained++
	}
	return gained
}

// AllocatePoint spends one attribute point on attr.
func (p *Player) AllocatePoint(attr stats.Attr) error {
	if p.AttributePoints <= 0 {
		return ErrNoPoints
	}
	p.AttributePoints--
	var delta stats.Attributes
	delta.Set(attr, 1)
	p.ModifyAttributes(delta)
	return nil
}

// Ability returns the learned active ability with id, or nil.
func (p *Player) Ability(id string) *ActiveAbility {
	for _, a := range p.Abilities {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// LearnActive adds a new ability at level 1 or levels up a known one.
func (p *Player) LearnActive(def *ActiveAbility) (*ActiveAbility, error) {
	if p.SkillPoints <= 0 {
		return nil, ErrNoPoints
	}
	if p.Level < def.RequiredLevel {
		return nil, ErrLevelTooLow
	}
	p.SkillPoints--
	if known := p.Ability(def.ID); known != nil {
		known.LevelUp()
		return known, nil
	}
	a := def.Copy()
	if a.Level < 1 {
		a.Level = 1
	}
	a.TurnsLeft = 0
	p.Abilities = append(p.Abilities, a)
	return a, nil
}

// LearnPassive merges one rank of a passive into the modifier table.
func (p *Player) LearnPassive(def *PassiveAbility) error {
	if p.SkillPoints <= 0 {
		return ErrNoPoints
	}
	if p.Level < def.RequiredLevel {
		return ErrLevelTooLow
	}
	p.SkillPoints--
	p.Passives.Add(def.Group, def.Mod, def.Value)
	p.LearnedPassives[def.ID]++
	return nil
}

// DecrementCooldowns reduces every positive cooldown by one. Returns true if
// any ability changed.
func (p *Player) DecrementCooldowns() bool {
	return p.ReduceCooldowns(1)
}

// ReduceCooldowns reduces every positive cooldown by n, floored at zero.
func (p *Player) ReduceCooldowns(n int) bool {
	changed := false
	for _, a := range p.Abilities {
		if a.TurnsLeft > 0 {
			a.TurnsLeft = max(0, a.TurnsLeft-n)
			changed = true
		}
	}
	return changed
}

// objectName renders an actor as a sentence object.
func objectName(a Actor) string {
	if a.IsEnemy() {
		return "the " + a.DisplayName()
	}
	return "you"
}

var _ Actor = (*Player)(nil)
