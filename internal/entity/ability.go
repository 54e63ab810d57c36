package entity

import (
	"fmt"

	"github.com/samdwyer/delve/internal/status"
)

// TargetShape is the pattern of tiles an ability may target around the player.
type TargetShape int

const (
	ShapeAdjacent TargetShape = iota
	ShapeSelf
	ShapeRadius
	ShapeCrossLine
	ShapeRadiusSplash
)

var targetShapeNames = map[string]TargetShape{
	"adjacent":      ShapeAdjacent,
	"self":          ShapeSelf,
	"radius":        ShapeRadius,
	"cross_line":    ShapeCrossLine,
	"radius_splash": ShapeRadiusSplash,
}

// ParseTargetShape converts a data-file shape name.
func ParseTargetShape(s string) (TargetShape, error) {
	if shape, ok := targetShapeNames[s]; ok {
		return shape, nil
	}
	return 0, fmt.Errorf("unknown target shape %q", s)
}

// SplashKind expands a chosen tile into extra affected tiles.
type SplashKind int

const (
	SplashNone SplashKind = iota
	// SplashOrthogonal adds the four tiles around the chosen tile.
	SplashOrthogonal
	// SplashLine continues from the player through the chosen tile to the board edge.
	SplashLine
	// SplashSurround adds the four tiles around the player (self-centred abilities).
	SplashSurround
)

var splashNames = map[string]SplashKind{
	"":           SplashNone,
	"none":       SplashNone,
	"orthogonal": SplashOrthogonal,
	"line":       SplashLine,
	"surround":   SplashSurround,
}

// ParseSplashKind converts a data-file splash name.
func ParseSplashKind(s string) (SplashKind, error) {
	if k, ok := splashNames[s]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("unknown splash kind %q", s)
}

// AbilityEffect is what an active ability does to its targets. The concrete
// types are Strike, Blast, Leap, SelfStatus and SelfHeal.
type AbilityEffect interface {
	abilityEffect()
}

// Strike is a weapon attack through the combat resolver with a damage
// multiplier of Base + PerLevel*(level-1). Knockback pushes each target one
// tile away from the player.
type Strike struct {
	Base      float64
	PerLevel  float64
	Knockback bool
}

// Blast deals Base + PerLevel*(level-1) + the user's intelligence to every
// target, bypassing the accuracy roll.
type Blast struct {
	Base     int
	PerLevel int
}

// Leap moves the player to the clicked tile.
type Leap struct{}

// SelfStatus attaches Status to the player.
type SelfStatus struct {
	Status *status.Status
}

// SelfHeal restores Base + PerLevel*(level-1) HP to the player.
type SelfHeal struct {
	Base     int
	PerLevel int
}

func (Strike) abilityEffect()     {}
func (Blast) abilityEffect()      {}
func (Leap) abilityEffect()       {}
func (SelfStatus) abilityEffect() {}
func (SelfHeal) abilityEffect()   {}

// LevelGrowth holds additive per-level changes to an ability.
type LevelGrowth struct {
	Cooldown int
	Radius   int
	MPCost   int
}

// ActiveAbility is an ability the player triggers and aims.
type ActiveAbility struct {
	ID            string
	Name          string
	Description   string
	Shape         TargetShape
	Radius        int
	Splash        SplashKind
	Effect        AbilityEffect
	MPCost        int
	Cooldown      int
	TurnsLeft     int
	Level         int
	RequiredLevel int
	Growth        LevelGrowth
}

// Copy returns an independent copy of the ability.
func (a *ActiveAbility) Copy() *ActiveAbility {
	cp := *a
	return &cp
}

// LevelUp raises the level by one and applies the growth deltas on top of the
// current values.
func (a *ActiveAbility) LevelUp() {
	a.Level++
	a.Cooldown = max(0, a.Cooldown+a.Growth.Cooldown)
	a.Radius = max(0, a.Radius+a.Growth.Radius)
	a.MPCost = max(0, a.MPCost+a.Growth.MPCost)
}

// OnCooldown reports whether the ability is still recharging.
func (a *ActiveAbility) OnCooldown() bool {
	return a.TurnsLeft > 0
}

// Passive modifier groups and keys.
const (
	GroupCombat = "combat"
	GroupOnKill = "on_kill"
	GroupBoard  = "board"

	ModCritRate            = "crit_rate"
	ModAccuracy            = "accuracy"
	ModDamage              = "damage"
	ModBaseDef             = "base_def"
	ModGainHP              = "gain_hp"
	ModCooldownReduction   = "cooldown_reduction"
	ModAggroRangeReduction = "aggro_range_reduction"
)

// PassiveAbility contributes Value to Group/Mod of the passive table each
// time it is learned.
type PassiveAbility struct {
	ID            string
	Name          string
	Description   string
	Group         string
	Mod           string
	Value         int
	RequiredLevel int
}

// PassiveTable accumulates passive modifiers by group and key.
type PassiveTable map[string]map[string]int

// Add merges value into group/mod.
func (t PassiveTable) Add(group, mod string, value int) {
	g, ok := t[group]
	if !ok {
		g = make(map[string]int)
		t[group] = g
	}
	g[mod] += value
}

// Get returns the accumulated value for group/mod.
func (t PassiveTable) Get(group, mod string) int {
	return t[group][mod]
}

// Group returns a copy of one modifier group.
func (t PassiveTable) Group(group string) map[string]int {
	out := make(map[string]int, len(t[group]))
	for k, v := range t[group] {
		out[k] = v
	}
	return out
}
