package combat

import (
	"fmt"
	"math"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/status"
)

// AvoidChance is the percent chance that target steps over trap unharmed,
// rounded to the nearest whole percent.
func AvoidChance(target entity.Actor, trap *entity.Trap) int {
	return int(math.Round(100*(1-trap.TriggerProb) + trap.AvoidCoeff*float64(target.Attributes().Dex)))
}

// StepOnTrap rolls whether target avoids trap and applies its effect when it
// does not. The caller removes the trap from the board only when triggered
// is true.
func StepOnTrap(rng entity.Roller, target entity.Actor, trap *entity.Trap) (triggered bool, lines []string) {
	roll := rng.Intn(RollSides)
	if roll <= AvoidChance(target, trap) {
		return false, []string{fmt.Sprintf("%s %s triggering the %s.", target.Subject(), avoidVerb(target), trap.Name)}
	}

	lines = append(lines, fmt.Sprintf("%s %s the %s!", target.Subject(), triggerVerb(target), trap.Name))
	switch trap.Category {
	case entity.TrapDirect:
		damage := int(math.Floor(trap.DamagePercent * float64(target.HP().Max)))
		if !target.IsEnemy() {
			damage -= target.DefRating()
		}
		dealt := target.HP().Sub(max(damage, 0))
		lines = append(lines, fmt.Sprintf("It deals %d damage.", dealt))
	case entity.TrapDebuff:
		if trap.Status != nil {
			status.Apply(target, trap.Status.Clone())
			lines = append(lines, fmt.Sprintf("%s %s afflicted with %s.", target.Subject(), beVerb(target), trap.Status.Label()))
		}
	}
	return true, lines
}

func avoidVerb(a entity.Actor) string {
	if a.IsEnemy() {
		return "avoids"
	}
	return "avoid"
}

func triggerVerb(a entity.Actor) string {
	if a.IsEnemy() {
		return "triggers"
	}
	return "trigger"
}

func beVerb(a entity.Actor) string {
	if a.IsEnemy() {
		return "is"
	}
	return "are"
}
