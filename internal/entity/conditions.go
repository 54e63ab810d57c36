package entity

import (
	"fmt"

	"github.com/samdwyer/delve/internal/stats"
)

// Condition is one of the player's survival meters.
type Condition int

const (
	Tired Condition = iota
	Hungry
	Thirsty
	conditionCount
)

// Conditions lists every condition in display order.
var Conditions = [...]Condition{Tired, Hungry, Thirsty}

// String returns the condition key used in data files.
func (c Condition) String() string {
	switch c {
	case Tired:
		return "tired"
	case Hungry:
		return "hungry"
	case Thirsty:
		return "thirsty"
	default:
		return "unknown"
	}
}

// ParseCondition converts a data-file condition key.
func ParseCondition(s string) (Condition, error) {
	for _, c := range Conditions {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown condition %q", s)
}

// Condition tuning.
const (
	ConditionMax = 100
	// ConditionLowPercent is the share of max below which penalties apply.
	ConditionLowPercent = 15
)

// conditionBase and conditionPerEnd give the number of turns per point lost:
// base + perEnd*endurance.
var (
	conditionBase   = [conditionCount]int{Tired: 10, Hungry: 8, Thirsty: 6}
	conditionPerEnd = [conditionCount]int{Tired: 2, Hungry: 2, Thirsty: 2}
)

// FatiguePenalty is applied once while the player is fatigued.
var FatiguePenalty = stats.Attributes{Str: -2, Dex: -2}

// ConditionMeter is a [current, max, counter] survival meter. Higher is better.
type ConditionMeter struct {
	Cur     int
	Max     int
	Counter int
}

// Shift changes the meter by v, clamped to [0, Max].
func (m *ConditionMeter) Shift(v int) {
	m.Cur = min(max(m.Cur+v, 0), m.Max)
}

// Low reports whether the meter is below ConditionLowPercent of max.
func (m ConditionMeter) Low() bool {
	return m.Cur*100 < m.Max*ConditionLowPercent
}

// ConditionThreshold is the number of turns per point lost for c at the
// given endurance.
func ConditionThreshold(c Condition, endurance int) int {
	return conditionBase[c] + conditionPerEnd[c]*max(endurance, 0)
}

// WorsenConditions advances every condition counter by one turn and applies
// hunger and thirst drains. Returns console text and whether any meter,
// HP or MP changed.
func (p *Player) WorsenConditions() ([]string, bool) {
	var lines []string
	changed := false
	for _, c := range Conditions {
		m := &p.Conditions[c]
		m.Counter++
		if m.Counter >= ConditionThreshold(c, p.Attrs.End) {
			m.Counter = 0
			if m.Cur > 0 {
				m.Cur--
				changed = true
			}
		}
	}
	if p.Conditions[Hungry].Low() {
		if p.Health.Sub(1) > 0 {
			lines = append(lines, "You are starving and lose 1 HP.")
			changed = true
		}
	}
	if p.Conditions[Thirsty].Low() {
		if p.Mana.Sub(1) > 0 {
			lines = append(lines, "You are parched and lose 1 MP.")
			changed = true
		}
	}
	return lines, changed
}

// CheckFatigue applies the fatigue penalty exactly once when tiredness drops
// low and reverts it exactly once when it recovers. Returns console text and
// whether attributes changed.
func (p *Player) CheckFatigue() (string, bool) {
	low := p.Conditions[Tired].Low()
	switch {
	case low && !p.fatigued:
		p.fatigued = true
		p.ModifyAttributes(FatiguePenalty)
		return "You are exhausted. Your strength and dexterity suffer.", true
	case !low && p.fatigued:
		p.fatigued = false
		p.ModifyAttributes(FatiguePenalty.Neg())
		return "You feel rested again.", true
	}
	return "", false
}
