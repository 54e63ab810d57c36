package game

import (
	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
)

func (e *Engine) setFocus(p grid.Pos) {
	if e.focus != nil && *e.focus == p {
		return
	}
	e.focus = &p
	e.dirty.Focus = true
}

// refocus marks the focus window dirty if p is the focused tile.
func (e *Engine) refocus(p grid.Pos) {
	if e.focus != nil && *e.focus == p {
		e.dirty.Focus = true
	}
}

// FocusInfo describes the focused tile, or nil if it holds nothing worth
// showing.
func (e *Engine) FocusInfo() *TileInfo {
	if e.focus == nil {
		return nil
	}
	p := *e.focus
	b := e.board
	if enemy, ok := b.EnemyAt(p); ok {
		return &TileInfo{
			Pos:         p,
			Kind:        FocusEnemy,
			Name:        enemy.Name,
			Description: enemy.FlavourText,
			Level:       enemy.Level,
			HP:          *enemy.HP(),
		}
	}
	if _, ok := b.ChestAt(p); ok {
		return &TileInfo{Pos: p, Kind: FocusChest, Name: "Chest", Description: "Something might be inside."}
	}
	if trap, ok := b.TrapAt(p); ok {
		return &TileInfo{Pos: p, Kind: FocusTrap, Name: trap.Name, Description: "Better not step on it."}
	}
	if b.IsDoor(p) {
		return &TileInfo{Pos: p, Kind: FocusDoor, Name: "Door", Description: "It leads to another part of the dungeon."}
	}
	return nil
}

// Snapshot copies the player state shown on the side panel.
func (e *Engine) Snapshot() PlayerSnapshot {
	p := e.player
	snap := PlayerSnapshot{
		Name:            p.Name,
		Profession:      p.Profession,
		Level:           p.Level,
		HP:              p.Health,
		MP:              p.Mana,
		Experience:      p.Experience,
		Attributes:      p.Attrs,
		AttributePoints: p.AttributePoints,
		SkillPoints:     p.SkillPoints,
		OffRating:       p.OffRating(),
		DefRating:       p.DefRating(),
		Conditions:      make(map[entity.Condition]entity.ConditionMeter, len(entity.Conditions)),
		Equipment:       make(map[entity.Slot]string),
	}
	for _, c := range entity.Conditions {
		snap.Conditions[c] = p.Conditions[c]
	}
	for _, s := range p.Statuses().All() {
		snap.Statuses = append(snap.Statuses, s.Label())
	}
	for _, item := range p.Inventory {
		snap.Inventory = append(snap.Inventory, item.ItemName())
	}
	for slot, eq := range p.Equipment {
		if eq != nil {
			snap.Equipment[slot] = eq.Name
		}
	}
	for _, a := range p.Abilities {
		snap.Abilities = append(snap.Abilities, AbilitySnapshot{
			ID:        a.ID,
			Name:      a.Name,
			Level:     a.Level,
			MPCost:    a.MPCost,
			TurnsLeft: a.TurnsLeft,
		})
	}
	return snap
}
