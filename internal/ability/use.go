package ability

import (
	"fmt"

	"github.com/samdwyer/delve/internal/combat"
	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/status"
)

// Movement asks the turn controller to move Subject to To. It is carried out
// only if Subject is alive and the tile is open.
type Movement struct {
	Subject entity.Actor
	To      grid.Pos
}

// Result is the outcome of one ability use.
type Result struct {
	// Used is false when the ability refused to fire or found no target;
	// no MP or cooldown was spent and no turn passes.
	Used      bool
	Lines     []string
	Movements []Movement
	Killed    []*entity.Enemy
}

// Ready reports whether the player can fire a now, with a message if not.
func Ready(p *entity.Player, a *entity.ActiveAbility) (string, bool) {
	switch {
	case a.OnCooldown():
		return fmt.Sprintf("%s is on cooldown for %d more turns.", a.Name, a.TurnsLeft), false
	case a.MPCost > p.Mana.Cur:
		return fmt.Sprintf("You do not have enough MP to use %s.", a.Name), false
	}
	return "", true
}

// Use fires a at the chosen tile. Self-targeted abilities ignore chosen.
func Use(rng entity.Roller, p *entity.Player, a *entity.ActiveAbility, t Terrain, chosen grid.Pos) Result {
	if msg, ok := Ready(p, a); !ok {
		return Result{Lines: []string{msg}}
	}
	if !NeedsTarget(a) {
		chosen = p.Position()
	}

	var res Result
	level := max(a.Level, 1)
	switch e := a.Effect.(type) {
	case entity.Strike:
		enemies := enemiesAt(t, Expand(a, t, p.Position(), chosen))
		if len(enemies) == 0 {
			return noTarget()
		}
		mult := e.Base + e.PerLevel*float64(level-1)
		res.Lines = append(res.Lines, fmt.Sprintf("You use %s!", a.Name))
		for _, enemy := range enemies {
			hit := combat.ResolveAttack(rng, p, enemy, combat.Options{Multiplier: mult, Passives: p.Passives})
			res.Lines = append(res.Lines, hit.Lines...)
			if hit.Killed {
				res.Killed = append(res.Killed, enemy)
				continue
			}
			if e.Knockback && !hit.Miss {
				if d, ok := grid.DirectionBetween(p.Position(), enemy.Position()); ok {
					res.Movements = append(res.Movements, Movement{Subject: enemy, To: enemy.Position().Add(d)})
				}
			}
		}

	case entity.Blast:
		enemies := enemiesAt(t, Expand(a, t, p.Position(), chosen))
		if len(enemies) == 0 {
			return noTarget()
		}
		damage := e.Base + e.PerLevel*(level-1) + p.Attrs.Int
		res.Lines = append(res.Lines, fmt.Sprintf("You use %s!", a.Name))
		for _, enemy := range enemies {
			dealt := enemy.HP().Sub(damage)
			res.Lines = append(res.Lines, fmt.Sprintf("The %s takes %d damage.", enemy.DisplayName(), dealt))
			if !enemy.IsAlive() {
				res.Killed = append(res.Killed, enemy)
				res.Lines = append(res.Lines, combat.DeathLine(rng))
			}
		}

	case entity.Leap:
		if chosen == p.Position() || !t.TileIsOpen(chosen) {
			return noTarget()
		}
		res.Lines = append(res.Lines, fmt.Sprintf("You use %s!", a.Name))
		res.Movements = append(res.Movements, Movement{Subject: p, To: chosen})

	case entity.SelfStatus:
		if e.Status == nil {
			return noTarget()
		}
		status.Apply(p, e.Status.Clone())
		res.Lines = append(res.Lines, fmt.Sprintf("You use %s and gain %s.", a.Name, e.Status.Label()))

	case entity.SelfHeal:
		healed := p.Health.Add(e.Base + e.PerLevel*(level-1))
		res.Lines = append(res.Lines, fmt.Sprintf("You use %s and recover %d HP.", a.Name, healed))

	default:
		return noTarget()
	}

	p.Mana.Sub(a.MPCost)
	a.TurnsLeft = a.Cooldown
	res.Used = true
	return res
}

func noTarget() Result {
	return Result{Lines: []string{"There is no target there."}}
}

func enemiesAt(t Terrain, tiles []grid.Pos) []*entity.Enemy {
	var out []*entity.Enemy
	for _, p := range tiles {
		if e, ok := t.EnemyAt(p); ok && e.IsAlive() {
			out = append(out, e)
		}
	}
	return out
}
