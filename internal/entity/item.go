package entity

import (
	"fmt"

	"github.com/samdwyer/delve/internal/stats"
	"github.com/samdwyer/delve/internal/status"
)

// Item is either a *Consumable or an *Equipment.
type Item interface {
	ItemID() string
	ItemName() string
	ItemDescription() string
	// Copy returns an independent instance, so catalog entries are never shared.
	Copy() Item
}

// Slot is an equipment slot.
type Slot string

const (
	SlotHead   Slot = "head"
	SlotBody   Slot = "body"
	SlotWeapon Slot = "weapon"
	SlotHands  Slot = "hands"
	SlotFeet   Slot = "feet"
)

// Slots lists every equipment slot in display order.
var Slots = [...]Slot{SlotHead, SlotBody, SlotWeapon, SlotHands, SlotFeet}

// ParseSlot validates a slot name.
func ParseSlot(s string) (Slot, error) {
	for _, slot := range Slots {
		if string(slot) == s {
			return slot, nil
		}
	}
	return "", fmt.Errorf("unknown equipment slot %q", s)
}

// Prereq is a usage condition on a consumable.
type Prereq string

// PrereqNoEnemies requires the current board to hold no enemies.
const PrereqNoEnemies Prereq = "no_enemies_on_board"

// ItemEffect is one effect of a consumable. The concrete types are
// RestoreHP, RestoreMP, ImproveConditions, ChanceToApplyStatus and
// DamageTarget.
type ItemEffect interface {
	itemEffect()
}

// RestoreHP heals the user.
type RestoreHP struct{ Value int }

// RestoreMP restores the user's mana.
type RestoreMP struct{ Value int }

// ImproveConditions shifts condition meters. Negative values worsen them.
type ImproveConditions struct {
	Changes map[Condition]int
}

// ChanceToApplyStatus applies Status to the user with Percent probability.
type ChanceToApplyStatus struct {
	Percent int
	Status  *status.Status
}

// DamageTarget hits a chosen tile within Range for flat Damage. Items with
// this effect need a target click before use.
type DamageTarget struct {
	Damage int
	Range  int
}

func (RestoreHP) itemEffect()           {}
func (RestoreMP) itemEffect()           {}
func (ImproveConditions) itemEffect()   {}
func (ChanceToApplyStatus) itemEffect() {}
func (DamageTarget) itemEffect()        {}

// Consumable is a single-use item.
type Consumable struct {
	ID          string
	Name        string
	Description string
	Details     []string
	UseText     string
	Effects     []ItemEffect
	Prereqs     []Prereq
}

// ItemID returns the catalog identifier.
func (c *Consumable) ItemID() string { return c.ID }

// ItemName returns the display name.
func (c *Consumable) ItemName() string { return c.Name }

// ItemDescription returns the flavour description.
func (c *Consumable) ItemDescription() string { return c.Description }

// Copy returns an independent copy.
func (c *Consumable) Copy() Item {
	cp := *c
	cp.Details = append([]string(nil), c.Details...)
	cp.Effects = append([]ItemEffect(nil), c.Effects...)
	cp.Prereqs = append([]Prereq(nil), c.Prereqs...)
	return &cp
}

// TargetRange returns the throw range when the consumable needs a target tile.
func (c *Consumable) TargetRange() (int, bool) {
	for _, e := range c.Effects {
		if d, ok := e.(DamageTarget); ok {
			return d.Range, true
		}
	}
	return 0, false
}

// Equipment is an item worn in a slot.
type Equipment struct {
	ID           string
	Name         string
	Description  string
	Slot         Slot
	OffRating    int
	DefRating    int
	Requirements stats.Attributes
}

// ItemID returns the catalog identifier.
func (e *Equipment) ItemID() string { return e.ID }

// ItemName returns the display name.
func (e *Equipment) ItemName() string { return e.Name }

// ItemDescription returns the flavour description.
func (e *Equipment) ItemDescription() string { return e.Description }

// Copy returns an independent copy.
func (e *Equipment) Copy() Item {
	cp := *e
	return &cp
}

// Chest holds one item on the board.
type Chest struct {
	Item   Item
	Opened bool
}
