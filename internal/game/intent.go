package game

import (
	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/stats"
)

// Intent is one player input. Only Move, Wait, UseItem (for consumables)
// and UseAbility can take a turn.
type Intent interface {
	intentName() string
}

// Move steps in a direction. Stepping into an enemy attacks it, into a
// chest loots it and into a door changes board.
type Move struct{ Dir grid.Direction }

// Wait passes the turn.
type Wait struct{}

// UseItem consumes or equips the inventory item at Index.
type UseItem struct{ Index int }

// UseAbility fires the learned ability at Index, entering targeting mode
// when it needs a tile.
type UseAbility struct{ Index int }

// ClickTile picks a target tile while targeting.
type ClickTile struct{ Pos grid.Pos }

// Hover moves the focus window to a tile.
type Hover struct{ Pos grid.Pos }

// Cancel leaves targeting mode.
type Cancel struct{}

// Unequip moves the item in Slot back to the inventory.
type Unequip struct{ Slot entity.Slot }

// Drop discards the inventory item at Index.
type Drop struct{ Index int }

// AllocatePoint spends an attribute point.
type AllocatePoint struct{ Attr stats.Attr }

// Learn spends a skill point on the active or passive ability with ID.
type Learn struct{ ID string }

func (Move) intentName() string          { return "move" }
func (Wait) intentName() string          { return "wait" }
func (UseItem) intentName() string       { return "use_item" }
func (UseAbility) intentName() string    { return "use_ability" }
func (ClickTile) intentName() string     { return "click_tile" }
func (Hover) intentName() string         { return "hover" }
func (Cancel) intentName() string        { return "cancel" }
func (Unequip) intentName() string       { return "unequip" }
func (Drop) intentName() string          { return "drop" }
func (AllocatePoint) intentName() string { return "allocate_point" }
func (Learn) intentName() string         { return "learn" }
