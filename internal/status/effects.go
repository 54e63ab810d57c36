package status

import (
	"fmt"
	"math"

	"github.com/samdwyer/delve/internal/stats"
)

// Phase tells an effect which moment of a status lifecycle it is running in.
type Phase int

const (
	PhaseAttach Phase = iota
	PhaseDetach
	PhaseEndOfTurn
	PhaseCombat
)

// Effect is one behaviour carried by a status. The concrete types are
// DamageOverTime, RegenOverTime, AttributeModifier, ReflectDamage and
// BonusDamage.
type Effect interface {
	effect()
}

// DamageOverTime deals Flat plus PercentOfMax (0..1, rounded up) of the
// target's max HP at the end of every turn.
type DamageOverTime struct {
	Flat         int
	PercentOfMax float64
}

// RegenOverTime restores HP and MP at the end of every turn.
type RegenOverTime struct {
	HP int
	MP int
}

// AttributeModifier adds Delta to the holder's attributes once when the
// status is attached and reverts it once when it is removed.
type AttributeModifier struct {
	Delta stats.Attributes
}

// ReflectDamage returns Percent (0..1) of incoming damage to the attacker.
// With Absorb set, the reflected part is also removed from the damage taken.
type ReflectDamage struct {
	Percent float64
	Absorb  bool
}

// BonusDamage increases outgoing damage by Flat plus Percent (0..1).
type BonusDamage struct {
	Flat    int
	Percent float64
}

func (DamageOverTime) effect()    {}
func (RegenOverTime) effect()     {}
func (AttributeModifier) effect() {}
func (ReflectDamage) effect()     {}
func (BonusDamage) effect()       {}

// Context is everything a single effect application may read or change.
type Context struct {
	Phase    Phase
	Target   Holder
	Attacker Holder
	Status   *Status
	// Damage is the in-flight attack damage during PhaseCombat. Effects may
	// rewrite it.
	Damage int
}

// apply dispatches one effect for the phase in ctx and returns console text.
func apply(e Effect, ctx *Context) string {
	switch e := e.(type) {
	case AttributeModifier:
		switch ctx.Phase {
		case PhaseAttach:
			ctx.Target.ModifyAttributes(e.Delta)
		case PhaseDetach:
			ctx.Target.ModifyAttributes(e.Delta.Neg())
		}
		return ""

	case DamageOverTime:
		if ctx.Phase != PhaseEndOfTurn {
			return ""
		}
		hp := ctx.Target.HP()
		amount := e.Flat + int(math.Ceil(e.PercentOfMax*float64(hp.Max)))
		taken := hp.Sub(amount)
		return fmt.Sprintf("%s %s %d damage from %s.", ctx.Target.Subject(), verb(ctx.Target, "take", "takes"), taken, ctx.Status.Label())

	case RegenOverTime:
		if ctx.Phase != PhaseEndOfTurn {
			return ""
		}
		healed := ctx.Target.HP().Add(e.HP)
		restored := ctx.Target.MP().Add(e.MP)
		if healed == 0 && restored == 0 {
			return ""
		}
		return fmt.Sprintf("%s %s %d HP and %d MP from %s.", ctx.Target.Subject(), verb(ctx.Target, "recover", "recovers"), healed, restored, ctx.Status.Label())

	case ReflectDamage:
		if ctx.Phase != PhaseCombat || ctx.Damage <= 0 || ctx.Attacker == nil {
			return ""
		}
		reflected := int(math.Ceil(e.Percent * float64(ctx.Damage)))
		if reflected <= 0 {
			return ""
		}
		dealt := ctx.Attacker.HP().Sub(reflected)
		if e.Absorb {
			ctx.Damage -= reflected
		}
		return fmt.Sprintf("%s reflects %d damage back at %s.", ctx.Status.Label(), dealt, objectOf(ctx.Attacker))

	case BonusDamage:
		if ctx.Phase != PhaseCombat || ctx.Damage <= 0 {
			return ""
		}
		ctx.Damage += e.Flat + int(math.Round(e.Percent*float64(ctx.Damage)))
		return ""
	}
	return ""
}

func objectOf(h Holder) string {
	if !h.IsEnemy() {
		return "you"
	}
	s := h.Subject()
	if len(s) > 4 && s[:4] == "The " {
		return "the " + s[4:]
	}
	return s
}
