package game

import (
	"fmt"
	"slices"

	"github.com/samdwyer/delve/internal/ability"
	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
)

// useItem equips equipment, consumes a consumable or, for thrown items,
// enters targeting mode. Only consuming takes a turn.
func (e *Engine) useItem(index int) action {
	p := e.player
	if index < 0 || index >= len(p.Inventory) {
		return refuse(sentence(entity.ErrInvalidIndex))
	}

	switch item := p.Inventory[index].(type) {
	case *entity.Equipment:
		previous, err := p.Equip(index)
		if err != nil {
			return refuse(sentence(err))
		}
		e.dirty.Panel = true
		if previous != nil {
			return action{lines: []string{fmt.Sprintf("You swap the %s for the %s.", previous.Name, item.Name)}}
		}
		return action{lines: []string{fmt.Sprintf("You equip the %s.", item.Name)}}

	case *entity.Consumable:
		if msg, ok := e.prereqsMet(item); !ok {
			return refuse(msg)
		}
		if r, ok := item.TargetRange(); ok {
			targets := e.throwTargets(r)
			if len(targets) == 0 {
				return refuse("There is nothing to throw at.")
			}
			e.pending = &pending{item: item, targets: targets}
			e.dirty.Board = true
			return action{lines: []string{fmt.Sprintf("Choose a target for the %s.", item.Name)}}
		}
		if _, err := p.RemoveItem(index); err != nil {
			return refuse(sentence(err))
		}
		e.dirty.Panel = true
		return action{lines: p.Consume(item, e.rng, nil), taken: true}
	}
	return refuse(sentence(errNotConsumable))
}

func (e *Engine) prereqsMet(c *entity.Consumable) (string, bool) {
	for _, pr := range c.Prereqs {
		if pr == entity.PrereqNoEnemies && e.board.HasEnemies() {
			return fmt.Sprintf("You cannot use the %s with enemies around.", c.Name), false
		}
	}
	return "", true
}

// throwTargets lists the enemies within r tiles of the player.
func (e *Engine) throwTargets(r int) []grid.Pos {
	from := e.player.Position()
	var out []grid.Pos
	for _, enemy := range e.board.Enemies() {
		if grid.Manhattan(from, enemy.Position()) <= r {
			out = append(out, enemy.Position())
		}
	}
	return out
}

// useAbility fires a self-targeted ability or enters targeting mode.
func (e *Engine) useAbility(index int) action {
	p := e.player
	if index < 0 || index >= len(p.Abilities) {
		return refuse("You do not know that ability.")
	}
	a := p.Abilities[index]
	if msg, ok := ability.Ready(p, a); !ok {
		return refuse(msg)
	}
	if !ability.NeedsTarget(a) {
		return e.applyAbility(ability.Use(e.rng, p, a, e.board, p.Position()))
	}

	targets := ability.Targets(a, e.board, p.Position())
	if len(targets) == 0 {
		return refuse("There is no target there.")
	}
	e.pending = &pending{ability: a, targets: targets}
	e.dirty.Board = true
	return action{lines: []string{fmt.Sprintf("Choose a target for %s.", a.Name)}}
}

// handleTargeting resolves input while an ability or item waits for a tile.
func (e *Engine) handleTargeting(in Intent) action {
	switch in := in.(type) {
	case Cancel:
		e.clearPending()
		return action{lines: []string{"Cancelled."}}
	case Hover:
		e.setFocus(in.Pos)
		return action{}
	case ClickTile:
		if !slices.Contains(e.pending.targets, in.Pos) {
			return refuse("You cannot target that tile.")
		}
		pend := e.pending
		e.clearPending()
		if pend.ability != nil {
			return e.applyAbility(ability.Use(e.rng, e.player, pend.ability, e.board, in.Pos))
		}
		return e.throw(pend.item, in.Pos)
	}
	return refuse("Choose a target or cancel.")
}

func (e *Engine) clearPending() {
	e.pending = nil
	e.dirty.Board = true
}

// throw uses a targeted consumable on the enemy at p.
func (e *Engine) throw(item *entity.Consumable, p grid.Pos) action {
	enemy, ok := e.board.EnemyAt(p)
	if !ok {
		return refuse("There is no target there.")
	}
	index := slices.IndexFunc(e.player.Inventory, func(it entity.Item) bool { return it == entity.Item(item) })
	if _, err := e.player.RemoveItem(index); err != nil {
		return refuse(sentence(err))
	}
	lines := e.player.Consume(item, e.rng, enemy)
	if !enemy.IsAlive() {
		lines = append(lines, e.enemyKilled(enemy)...)
	}
	e.dirty.Panel, e.dirty.Board = true, true
	e.refocus(p)
	return action{lines: lines, taken: true}
}

// applyAbility realizes an ability result: kills first, then movements for
// subjects that are still alive, onto tiles that are still open.
func (e *Engine) applyAbility(res ability.Result) action {
	if !res.Used {
		return action{lines: res.Lines}
	}
	lines := res.Lines
	for _, enemy := range res.Killed {
		lines = append(lines, e.enemyKilled(enemy)...)
	}
	for _, m := range res.Movements {
		if !m.Subject.IsAlive() || !e.board.TileIsOpen(m.To) {
			continue
		}
		from := m.Subject.Position()
		var moved *entity.Enemy
		if m.Subject.IsEnemy() {
			moved, _ = e.board.EnemyAt(from)
		}
		lines = append(lines, e.board.MoveCharacter(m.Subject, m.To)...)
		if moved != nil && !moved.IsAlive() {
			lines = append(lines, e.rewardKill(moved)...)
		}
		e.refocus(from)
		e.refocus(m.To)
	}
	e.dirty.Board, e.dirty.Panel = true, true
	return action{lines: lines, taken: true}
}
