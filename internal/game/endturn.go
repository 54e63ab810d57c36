package game

import "github.com/samdwyer/delve/internal/status"

// endOfTurn runs the player's status tick, MP regeneration, condition
// decay, fatigue check and cooldowns. Each step marks the panel dirty only
// if it changed something.
func (e *Engine) endOfTurn() []string {
	e.setPhase(PhaseApplyingEndOfTurn)
	p := e.player
	var lines []string

	hadStatuses := p.Statuses().Len() > 0
	lines = append(lines, status.Tick(p)...)
	if hadStatuses {
		e.dirty.Panel = true
	}
	if status.RegenerateMP(p, p.RegenCounter()) {
		e.dirty.Panel = true
	}
	if text, changed := p.WorsenConditions(); changed {
		lines = append(lines, text...)
		e.dirty.Panel = true
	}
	if text, changed := p.CheckFatigue(); changed {
		lines = append(lines, text)
		e.dirty.Panel = true
	}
	if p.DecrementCooldowns() {
		e.dirty.Panel = true
	}
	return lines
}
