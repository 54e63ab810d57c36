// Package status implements buffs and debuffs: attaching, refreshing,
// expiring, end-of-turn effects and the combat-phase hooks used by the
// combat resolver.
package status

import (
	"fmt"
	"strings"

	"github.com/samdwyer/delve/internal/stats"
)

// ManaRegenThreshold is the counter value at which passive regeneration
// restores one MP.
const ManaRegenThreshold = 20

// Kind separates buffs from debuffs. A status is never both.
type Kind int

const (
	Buff Kind = iota
	Debuff
)

// String returns "buff" or "debuff".
func (k Kind) String() string {
	switch k {
	case Buff:
		return "buff"
	case Debuff:
		return "debuff"
	default:
		return "unknown"
	}
}

// ParseKind converts "buff"/"debuff" to a Kind.
func ParseKind(s string) (Kind, error) {
	switch s {
	case "buff":
		return Buff, nil
	case "debuff":
		return Debuff, nil
	default:
		return 0, fmt.Errorf("unknown status kind %q", s)
	}
}

// Holder is anything statuses can be attached to.
type Holder interface {
	// Subject is the sentence subject used in console text ("You", "The Skeleton").
	Subject() string
	IsEnemy() bool
	HP() *stats.Pool
	MP() *stats.Pool
	Attributes() stats.Attributes
	// ModifyAttributes adds delta to the attributes and recomputes derived values.
	ModifyAttributes(delta stats.Attributes)
	Statuses() *List
}

// Status is a timed buff or debuff.
type Status struct {
	Name        string
	Description string
	Kind        Kind
	Duration    int
	TurnsLeft   int
	Effects     []Effect
}

// Clone returns a fresh copy with TurnsLeft reset to the full duration.
func (s *Status) Clone() *Status {
	c := *s
	c.Effects = append([]Effect(nil), s.Effects...)
	c.TurnsLeft = c.Duration
	return &c
}

// Label returns the name in display form.
func (s *Status) Label() string {
	return strings.ReplaceAll(s.Name, "_", " ")
}

// AttributeDelta sums every AttributeModifier the status carries.
func (s *Status) AttributeDelta() stats.Attributes {
	var total stats.Attributes
	for _, e := range s.Effects {
		if m, ok := e.(AttributeModifier); ok {
			total = total.Add(m.Delta)
		}
	}
	return total
}

// IsCombat reports whether the status acts during attacks rather than at turn end.
func (s *Status) IsCombat() bool {
	for _, e := range s.Effects {
		switch e.(type) {
		case ReflectDamage, BonusDamage:
			return true
		}
	}
	return false
}

// Offensive reports whether the status modifies damage its holder deals.
func (s *Status) Offensive() bool {
	for _, e := range s.Effects {
		if _, ok := e.(BonusDamage); ok {
			return true
		}
	}
	return false
}

// List holds the statuses on a single character.
type List struct {
	Buffs   []*Status
	Debuffs []*Status
}

// All returns buffs followed by debuffs.
func (l *List) All() []*Status {
	out := make([]*Status, 0, len(l.Buffs)+len(l.Debuffs))
	out = append(out, l.Buffs...)
	return append(out, l.Debuffs...)
}

// Find returns the status with the given name and kind, or nil.
func (l *List) Find(name string, kind Kind) *Status {
	for _, s := range *l.slot(kind) {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Has reports whether a status of that name is present in either list.
func (l *List) Has(name string) bool {
	return l.Find(name, Buff) != nil || l.Find(name, Debuff) != nil
}

// Len returns the total number of statuses.
func (l *List) Len() int {
	return len(l.Buffs) + len(l.Debuffs)
}

func (l *List) slot(kind Kind) *[]*Status {
	if kind == Buff {
		return &l.Buffs
	}
	return &l.Debuffs
}

func (l *List) remove(s *Status) bool {
	slot := l.slot(s.Kind)
	for i, existing := range *slot {
		if existing == s {
			*slot = append((*slot)[:i], (*slot)[i+1:]...)
			return true
		}
	}
	return false
}

// Apply attaches s to h. If a status with the same name and kind is already
// present only its TurnsLeft is reset to s.Duration; attribute modifiers are
// never applied twice. Returns true when an existing status was refreshed.
func Apply(h Holder, s *Status) bool {
	list := h.Statuses()
	if existing := list.Find(s.Name, s.Kind); existing != nil {
		existing.TurnsLeft = s.Duration
		return true
	}
	if s.TurnsLeft <= 0 {
		s.TurnsLeft = s.Duration
	}
	slot := list.slot(s.Kind)
	*slot = append(*slot, s)
	for _, e := range s.Effects {
		apply(e, &Context{Phase: PhaseAttach, Target: h, Status: s})
	}
	return false
}

// Restore re-attaches a status loaded from a save record. The holder's saved
// attributes already include its modifiers, so nothing is re-applied.
func Restore(h Holder, s *Status) {
	slot := h.Statuses().slot(s.Kind)
	*slot = append(*slot, s)
}

// Remove detaches s from h and reverts its attribute modifiers exactly once.
func Remove(h Holder, s *Status) {
	if !h.Statuses().remove(s) {
		return
	}
	for _, e := range s.Effects {
		apply(e, &Context{Phase: PhaseDetach, Target: h, Status: s})
	}
}

// Tick runs end-of-turn effects for every status on h, buffs first, then
// decrements durations. Statuses reaching zero are removed after their effect
// ran for the turn.
func Tick(h Holder) []string {
	var lines []string
	for _, s := range h.Statuses().All() {
		for _, e := range s.Effects {
			if text := apply(e, &Context{Phase: PhaseEndOfTurn, Target: h, Status: s}); text != "" {
				lines = append(lines, text)
			}
		}
		s.TurnsLeft--
		if s.TurnsLeft <= 0 {
			Remove(h, s)
			lines = append(lines, fmt.Sprintf("%s %s no longer affected by %s.", h.Subject(), verb(h, "are", "is"), s.Label()))
		}
	}
	return lines
}

// RegenerateMP advances the passive MP counter by the holder's wisdom and
// restores one MP whenever it reaches ManaRegenThreshold. At full MP the
// counter is held at zero. Returns true when MP changed.
func RegenerateMP(h Holder, counter *int) bool {
	mp := h.MP()
	if mp.IsFull() {
		*counter = 0
		return false
	}
	*counter += h.Attributes().Wis
	if *counter < ManaRegenThreshold {
		return false
	}
	*counter = 0
	return mp.Add(1) > 0
}

// ResolveOffense lets the attacker's offensive combat statuses adjust damage
// it is about to deal.
func ResolveOffense(attacker, defender Holder, damage int) (int, []string) {
	return resolveCombat(attacker, attacker, defender, damage, true)
}

// ResolveDefense lets the defender's defensive combat statuses adjust damage
// it is about to receive, e.g. reflecting part of it onto the attacker.
func ResolveDefense(attacker, defender Holder, damage int) (int, []string) {
	return resolveCombat(defender, attacker, defender, damage, false)
}

func resolveCombat(owner, attacker, defender Holder, damage int, offensive bool) (int, []string) {
	var lines []string
	for _, s := range owner.Statuses().All() {
		if !s.IsCombat() || s.Offensive() != offensive {
			continue
		}
		for _, e := range s.Effects {
			ctx := &Context{Phase: PhaseCombat, Target: defender, Attacker: attacker, Damage: damage, Status: s}
			if text := apply(e, ctx); text != "" {
				lines = append(lines, text)
			}
			damage = ctx.Damage
		}
	}
	if damage < 0 {
		damage = 0
	}
	return damage, lines
}

func verb(h Holder, plural, singular string) string {
	if h.IsEnemy() {
		return singular
	}
	return plural
}
