package status

import (
	"strings"
	"testing"

	"github.com/samdwyer/delve/internal/stats"
)

// mockHolder is a test implementation of the Holder interface.
type mockHolder struct {
	subject  string
	enemy    bool
	hp, mp   stats.Pool
	attrs    stats.Attributes
	statuses List
}

func newMockHolder(enemy bool, hp, mp int) *mockHolder {
	subject := "You"
	if enemy {
		subject = "The Rat"
	}
	return &mockHolder{
		subject: subject,
		enemy:   enemy,
		hp:      stats.Full(hp),
		mp:      stats.Full(mp),
		attrs:   stats.Attributes{Str: 5, Dex: 5, Int: 5, End: 5, Vit: 5, Wis: 5},
	}
}

func (m *mockHolder) Subject() string              { return m.subject }
func (m *mockHolder) IsEnemy() bool                { return m.enemy }
func (m *mockHolder) HP() *stats.Pool              { return &m.hp }
func (m *mockHolder) MP() *stats.Pool              { return &m.mp }
func (m *mockHolder) Attributes() stats.Attributes { return m.attrs }
func (m *mockHolder) Statuses() *List              { return &m.statuses }

func (m *mockHolder) ModifyAttributes(d stats.Attributes) {
	m.attrs = m.attrs.Add(d)
}

func weakened() *Status {
	return &Status{
		Name:     "weakened",
		Kind:     Debuff,
		Duration: 3,
		Effects:  []Effect{AttributeModifier{Delta: stats.Attributes{Str: -2}}},
	}
}

func TestApplyAddsAttributeDeltaOnce(t *testing.T) {
	h := newMockHolder(false, 20, 10)

	if refreshed := Apply(h, weakened()); refreshed {
		t.Error("first Apply should not report a refresh")
	}
	if h.attrs.Str != 3 {
		t.Errorf("Str after apply = %d, want 3", h.attrs.Str)
	}

	// Tick once so TurnsLeft drops, then re-apply with a longer duration.
	Tick(h)
	again := weakened()
	again.Duration = 5
	if refreshed := Apply(h, again); !refreshed {
		t.Error("second Apply should refresh the existing status")
	}

	if h.attrs.Str != 3 {
		t.Errorf("Str after re-apply = %d, want 3 (delta applied once)", h.attrs.Str)
	}
	if got := h.statuses.Len(); got != 1 {
		t.Fatalf("status count = %d, want 1", got)
	}
	if got := h.statuses.Debuffs[0].TurnsLeft; got != 5 {
		t.Errorf("TurnsLeft = %d, want 5", got)
	}
}

func TestRemoveRevertsExactlyOnce(t *testing.T) {
	h := newMockHolder(false, 20, 10)
	s := weakened()
	Apply(h, s)

	Remove(h, s)
	Remove(h, s)

	if h.attrs.Str != 5 {
		t.Errorf("Str after removals = %d, want 5", h.attrs.Str)
	}
	if h.statuses.Len() != 0 {
		t.Error("status should be gone")
	}
}

func TestTickDamageAndExpiry(t *testing.T) {
	h := newMockHolder(true, 20, 0)
	Apply(h, &Status{
		Name:     "lesser_poison",
		Kind:     Debuff,
		Duration: 2,
		Effects:  []Effect{DamageOverTime{PercentOfMax: 0.1}},
	})

	lines := Tick(h)
	if h.hp.Cur != 18 {
		t.Errorf("HP after first tick = %d, want 18", h.hp.Cur)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "takes 2 damage from lesser poison") {
		t.Errorf("unexpected tick text: %v", lines)
	}

	lines = Tick(h)
	if h.hp.Cur != 16 {
		t.Errorf("HP after second tick = %d, want 16", h.hp.Cur)
	}
	if h.statuses.Len() != 0 {
		t.Error("poison should have expired after its last tick")
	}
	if len(lines) != 2 {
		t.Errorf("expected damage line and expiry line, got %v", lines)
	}

	if lines := Tick(h); len(lines) != 0 {
		t.Errorf("expected no ticks after expiry, got %v", lines)
	}
}

func TestTickOrderBuffsThenDebuffs(t *testing.T) {
	h := newMockHolder(false, 20, 10)
	h.hp.Cur = 10
	Apply(h, &Status{Name: "poison", Kind: Debuff, Duration: 3, Effects: []Effect{DamageOverTime{Flat: 1}}})
	Apply(h, &Status{Name: "regeneration", Kind: Buff, Duration: 3, Effects: []Effect{RegenOverTime{HP: 2}}})

	lines := Tick(h)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %v", lines)
	}
	if !strings.Contains(lines[0], "regeneration") {
		t.Errorf("buffs should tick first, got %q", lines[0])
	}
	if h.hp.Cur != 11 {
		t.Errorf("HP = %d, want 11", h.hp.Cur)
	}
}

func TestRegenerateMP(t *testing.T) {
	h := newMockHolder(false, 20, 10)
	counter := 7

	// At full MP the counter is held at zero.
	if RegenerateMP(h, &counter) {
		t.Error("no regen expected at full MP")
	}
	if counter != 0 {
		t.Errorf("counter = %d, want 0 at full MP", counter)
	}

	h.mp.Cur = 4
	for i := 0; i < 3; i++ {
		if RegenerateMP(h, &counter) {
			t.Fatalf("regen too early at step %d", i)
		}
	}
	if counter != 15 {
		t.Errorf("counter = %d, want 15", counter)
	}
	if !RegenerateMP(h, &counter) {
		t.Error("expected regen when threshold reached")
	}
	if h.mp.Cur != 5 || counter != 0 {
		t.Errorf("mp = %d counter = %d, want 5 and 0", h.mp.Cur, counter)
	}
}

func TestCombatStatuses(t *testing.T) {
	attacker := newMockHolder(true, 20, 0)
	defender := newMockHolder(false, 20, 0)

	Apply(attacker, &Status{Name: "rage", Kind: Buff, Duration: 2, Effects: []Effect{BonusDamage{Flat: 2}}})
	Apply(defender, &Status{Name: "iron_skin", Kind: Buff, Duration: 2, Effects: []Effect{ReflectDamage{Percent: 0.5, Absorb: true}}})

	dmg, _ := ResolveOffense(attacker, defender, 4)
	if dmg != 6 {
		t.Fatalf("offense damage = %d, want 6", dmg)
	}
	dmg, lines := ResolveDefense(attacker, defender, dmg)
	if dmg != 3 {
		t.Errorf("defense damage = %d, want 3", dmg)
	}
	if attacker.hp.Cur != 17 {
		t.Errorf("attacker HP = %d, want 17", attacker.hp.Cur)
	}
	if len(lines) != 1 || !strings.Contains(lines[0], "the Rat") {
		t.Errorf("unexpected reflect text %v", lines)
	}

	// Misses are never transformed.
	if dmg, _ := ResolveDefense(attacker, defender, 0); dmg != 0 {
		t.Errorf("miss damage = %d, want 0", dmg)
	}
}
