// Package combat resolves melee attacks and trap triggers between actors.
package combat

import (
	"fmt"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/status"
)

// Roll tuning shared by player and enemy attacks.
const (
	BaseAccuracy   = 70
	AccuracyPerDex = 5
	// RollSides is the exclusive upper bound of a percentile roll (0..100).
	RollSides = 101
)

// DeathLines are appended when the player kills something.
var DeathLines = []string{
	"It collapses in a heap.",
	"It lets out a final shriek and goes still.",
	"It crumples to the floor.",
	"Its eyes go dark.",
	"It falls and does not get up.",
}

// Options adjusts a single attack.
type Options struct {
	// Multiplier scales damage after mitigation. Zero means 1.
	Multiplier float64
	// Passives is the attacker's passive table. Only the combat group is read.
	Passives entity.PassiveTable
}

// Result is the outcome of one attack.
type Result struct {
	Damage int
	Crit   bool
	Miss   bool
	Killed bool
	Lines  []string
}

// BaseDamage is the mitigated pre-roll damage, floored at 1.
func BaseDamage(attacker, defender entity.Actor, opts Options) int {
	a, d := attacker.Attributes(), defender.Attributes()
	raw := a.Str + attacker.OffRating() + opts.Passives.Get(entity.GroupCombat, entity.ModDamage) - d.End
	if !defender.IsEnemy() {
		raw -= defender.DefRating()
	}
	if opts.Multiplier > 0 {
		raw = int(float64(raw) * opts.Multiplier)
	}
	return max(raw, 1)
}

// Accuracy is the percent chance to hit before the miss roll.
func Accuracy(attacker, defender entity.Actor, opts Options) int {
	a, d := attacker.Attributes(), defender.Attributes()
	return BaseAccuracy + AccuracyPerDex*(a.Dex-d.Dex) + opts.Passives.Get(entity.GroupCombat, entity.ModAccuracy)
}

// CritChance is the percent chance to land a critical hit.
func CritChance(attacker, defender entity.Actor, opts Options) int {
	a, d := attacker.Attributes(), defender.Attributes()
	return max(a.Dex+a.Wis-d.Wis, 0) + opts.Passives.Get(entity.GroupCombat, entity.ModCritRate)
}

// ResolveAttack rolls an attack and applies its damage to the defender.
// Crit is rolled first; a miss is only possible when the hit is not a crit.
func ResolveAttack(rng entity.Roller, attacker, defender entity.Actor, opts Options) Result {
	var res Result
	damage := BaseDamage(attacker, defender, opts)

	switch {
	case rng.Intn(RollSides) <= CritChance(attacker, defender, opts):
		damage *= 2
		res.Crit = true
		res.Lines = append(res.Lines, "Critical hit!")
	case rng.Intn(RollSides) >= Accuracy(attacker, defender, opts):
		damage = 0
		res.Miss = true
		res.Lines = append(res.Lines, "Miss!")
	}

	if damage > 0 {
		var extra []string
		damage, extra = status.ResolveOffense(attacker, defender, damage)
		res.Lines = append(res.Lines, extra...)
		damage, extra = status.ResolveDefense(attacker, defender, damage)
		res.Lines = append(res.Lines, extra...)
	}

	wasAlive := defender.IsAlive()
	res.Damage = defender.HP().Sub(damage)
	if !res.Miss {
		res.Lines = append(res.Lines, hitLine(attacker, defender, res.Damage))
	}
	if wasAlive && !defender.IsAlive() {
		res.Killed = true
		if !attacker.IsEnemy() {
			res.Lines = append(res.Lines, DeathLine(rng))
		}
	}
	return res
}

// DeathLine picks a random death flavour line.
func DeathLine(rng entity.Roller) string {
	return DeathLines[rng.Intn(len(DeathLines))]
}

func hitLine(attacker, defender entity.Actor, damage int) string {
	if attacker.IsEnemy() {
		return fmt.Sprintf("%s hits you for %d damage.", attacker.Subject(), damage)
	}
	return fmt.Sprintf("You hit the %s for %d damage.", defender.DisplayName(), damage)
}
