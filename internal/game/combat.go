package game

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/delve/internal/combat"
	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/pathfind"
	"github.com/samdwyer/delve/internal/status"
)

// attack is a bump attack by the player.
func (e *Engine) attack(enemy *entity.Enemy) action {
	res := combat.ResolveAttack(e.rng, e.player, enemy, combat.Options{Passives: e.player.Passives})
	lines := res.Lines
	if res.Killed {
		lines = append(lines, e.enemyKilled(enemy)...)
	}
	e.dirty.Panel = true
	e.refocus(enemy.Position())
	return action{lines: lines, taken: true}
}

// enemyPhase gives every enemy alive at the start of the phase one turn.
// It walks a snapshot, so kills and moves during the phase do not disturb
// the iteration.
func (e *Engine) enemyPhase(ctx context.Context) []string {
	_, span := e.tracer.Start(ctx, "turn.enemy_phase")
	defer span.End()
	e.setPhase(PhaseResolvingEnemyTurn)

	snapshot := e.board.Enemies()
	var lines []string
	attacks := 0
	for _, enemy := range snapshot {
		if !e.player.IsAlive() {
			break
		}
		if !enemy.IsAlive() || !e.onBoard(enemy) {
			continue
		}
		turn, attacked := e.enemyTurn(enemy)
		lines = append(lines, turn...)
		if attacked {
			attacks++
		}
	}

	span.SetAttributes(
		attribute.Int("enemy_count", len(snapshot)),
		attribute.Int("attacks", attacks),
	)
	return lines
}

func (e *Engine) onBoard(enemy *entity.Enemy) bool {
	cur, ok := e.board.EnemyAt(enemy.Position())
	return ok && cur == enemy
}

// enemyTurn runs aggro, then attack or movement, then the enemy's own
// status tick and MP regeneration.
func (e *Engine) enemyTurn(enemy *entity.Enemy) ([]string, bool) {
	var lines []string
	target := e.player.Position()
	from := enemy.Position()
	attacked := false

	if enemy.Notice(target) {
		lines = append(lines, fmt.Sprintf("%s notices you!", enemy.Subject()))
	}

	switch {
	case enemy.InAttackRange(target):
		res := combat.ResolveAttack(e.rng, enemy, e.player, combat.Options{})
		lines = append(lines, res.Lines...)
		e.dirty.Panel = true
		attacked = true
		if !enemy.IsAlive() {
			// Killed by reflected damage.
			lines = append(lines, fmt.Sprintf("%s dies.", enemy.Subject()))
			return append(lines, e.enemyKilled(enemy)...), attacked
		}
	case enemy.Aggro:
		step, ok := pathfind.FindBestStep(from, target, e.board.OpenTiles())
		if ok && e.board.TileIsOpen(step) {
			lines = append(lines, e.board.MoveCharacter(enemy, step)...)
		}
	default:
		lines = append(lines, e.idle(enemy)...)
	}

	if enemy.Position() != from {
		e.dirty.Board = true
		e.refocus(from)
		e.refocus(enemy.Position())
	}
	if !enemy.IsAlive() {
		// A trap killed it; the board already removed it.
		return append(lines, e.rewardKill(enemy)...), attacked
	}

	lines = append(lines, status.Tick(enemy)...)
	if !enemy.IsAlive() {
		lines = append(lines, fmt.Sprintf("%s dies.", enemy.Subject()))
		return append(lines, e.enemyKilled(enemy)...), attacked
	}
	status.RegenerateMP(enemy, enemy.RegenCounter())
	return lines, attacked
}

// idle moves an enemy that has not noticed the player. Within twice its
// aggro range it drifts toward the player every other turn on average;
// further away it wanders.
func (e *Engine) idle(enemy *entity.Enemy) []string {
	from := enemy.Position()
	target := e.player.Position()
	open := e.board.OpenTiles()

	var (
		step grid.Pos
		ok   bool
	)
	if grid.Manhattan(from, target) <= 2*enemy.AggroRange {
		if e.rng.Intn(2) == 0 {
			step, ok = pathfind.MoveTowardsTarget(from, target, open)
		}
	} else {
		step, ok = pathfind.Wander(e.rng, from, open)
	}
	if !ok {
		return nil
	}
	return e.board.MoveCharacter(enemy, step)
}

// enemyKilled removes a dead enemy from the board and rewards the player.
func (e *Engine) enemyKilled(enemy *entity.Enemy) []string {
	if e.onBoard(enemy) {
		e.board.HandleEnemyDeath(enemy.Position())
	}
	return e.rewardKill(enemy)
}

// rewardKill grants experience and the on-kill passives.
func (e *Engine) rewardKill(enemy *entity.Enemy) []string {
	p := e.player
	xp := enemy.ExperienceValue()
	lines := []string{fmt.Sprintf("You gain %d experience.", xp)}
	if levels := p.GainExperience(xp); levels > 0 {
		lines = append(lines, fmt.Sprintf("You are now level %d!", p.Level))
		e.log.Info("level up", "level", p.Level, "attribute_points", p.AttributePoints, "skill_points", p.SkillPoints)
	}

	if hp := p.Passives.Get(entity.GroupOnKill, entity.ModGainHP); hp > 0 {
		if healed := p.HP().Add(hp); healed > 0 {
			lines = append(lines, fmt.Sprintf("You recover %d HP.", healed))
		}
	}
	if n := p.Passives.Get(entity.GroupOnKill, entity.ModCooldownReduction); n > 0 {
		p.ReduceCooldowns(n)
	}

	e.dirty.Board, e.dirty.Panel = true, true
	e.refocus(enemy.Position())
	return lines
}
