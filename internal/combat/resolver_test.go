package combat

import (
	"slices"
	"testing"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/stats"
	"github.com/samdwyer/delve/internal/status"
)

// scriptedRoller returns preset rolls in order, repeating the last one.
type scriptedRoller struct {
	rolls []int
	next  int
}

func rolls(v ...int) *scriptedRoller { return &scriptedRoller{rolls: v} }

func (s *scriptedRoller) Intn(n int) int {
	v := s.rolls[min(s.next, len(s.rolls)-1)]
	s.next++
	return min(v, n-1)
}

func (s *scriptedRoller) Float64() float64 { return 0 }

func newAttacker() *entity.Player {
	return entity.NewPlayer("Hero", "warrior", stats.Attributes{Str: 6, Dex: 4, End: 5, Vit: 7, Wis: 2})
}

func newDefender() *entity.Enemy {
	return entity.NewEnemy("large_rat", "Large Rat", stats.Attributes{Str: 4, Dex: 2, End: 3, Vit: 4, Wis: 2}, nil)
}

func TestResolveAttack(t *testing.T) {
	tests := []struct {
		name       string
		rolls      []int
		wantDamage int
		wantCrit   bool
		wantMiss   bool
	}{
		{name: "plain hit", rolls: []int{100, 0}, wantDamage: 3},
		{name: "critical hit doubles", rolls: []int{0}, wantDamage: 6, wantCrit: true},
		{name: "crit on boundary", rolls: []int{4}, wantDamage: 6, wantCrit: true},
		{name: "miss", rolls: []int{100, 100}, wantDamage: 0, wantMiss: true},
		{name: "miss on accuracy boundary", rolls: []int{100, 80}, wantDamage: 0, wantMiss: true},
		{name: "hit just under accuracy", rolls: []int{100, 79}, wantDamage: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker, defender := newAttacker(), newDefender()
			before := defender.Health.Cur

			res := ResolveAttack(rolls(tt.rolls...), attacker, defender, Options{})

			if res.Damage != tt.wantDamage {
				t.Errorf("Damage = %d, want %d", res.Damage, tt.wantDamage)
			}
			if res.Crit != tt.wantCrit || res.Miss != tt.wantMiss {
				t.Errorf("Crit/Miss = %v/%v, want %v/%v", res.Crit, res.Miss, tt.wantCrit, tt.wantMiss)
			}
			if defender.Health.Cur != before-tt.wantDamage {
				t.Errorf("defender HP = %d, want %d", defender.Health.Cur, before-tt.wantDamage)
			}
		})
	}
}

func TestBaseDamageFloorAndRatings(t *testing.T) {
	weak := entity.NewEnemy("bat", "Bat", stats.Attributes{Str: 1, Dex: 3, Vit: 2}, nil)
	player := newAttacker()
	player.Equipment[entity.SlotBody] = &entity.Equipment{ID: "tunic", Slot: entity.SlotBody, DefRating: 2}

	if got := BaseDamage(weak, player, Options{}); got != 1 {
		t.Errorf("weak attacker damage = %d, want floor of 1", got)
	}

	rat := newDefender()
	// 4 str - 5 end - 2 def rating, floored.
	if got := BaseDamage(rat, player, Options{}); got != 1 {
		t.Errorf("rat vs armored player = %d, want 1", got)
	}

	player.Equipment[entity.SlotWeapon] = &entity.Equipment{ID: "sword", Slot: entity.SlotWeapon, OffRating: 2}
	player.Passives.Add(entity.GroupCombat, entity.ModDamage, 1)
	if got := BaseDamage(player, rat, Options{}); got != 6 {
		t.Errorf("armed player damage = %d, want 6", got)
	}
	if got := BaseDamage(player, rat, Options{Multiplier: 1.5}); got != 9 {
		t.Errorf("multiplied damage = %d, want 9", got)
	}
}

func TestPassivesRaiseCritAndAccuracy(t *testing.T) {
	attacker, defender := newAttacker(), newDefender()
	opts := Options{Passives: entity.PassiveTable{}}
	opts.Passives.Add(entity.GroupCombat, entity.ModCritRate, 10)
	opts.Passives.Add(entity.GroupCombat, entity.ModAccuracy, 5)

	if got := CritChance(attacker, defender, opts); got != 14 {
		t.Errorf("CritChance = %d, want 14", got)
	}
	if got := Accuracy(attacker, defender, opts); got != 85 {
		t.Errorf("Accuracy = %d, want 85", got)
	}
}

func TestResolveAttackKillClampsAndAddsDeathLine(t *testing.T) {
	attacker, defender := newAttacker(), newDefender()
	defender.Health.Cur = 2

	res := ResolveAttack(rolls(100, 0, 0), attacker, defender, Options{})

	if res.Damage != 2 || defender.Health.Cur != 0 {
		t.Errorf("Damage = %d HP = %d, want 2 and 0", res.Damage, defender.Health.Cur)
	}
	if !res.Killed {
		t.Error("expected Killed")
	}
	if !slices.Contains(res.Lines, DeathLines[0]) {
		t.Errorf("lines = %v, want a death line", res.Lines)
	}
}

func TestEnemyKillHasNoDeathLine(t *testing.T) {
	rat, player := newDefender(), newAttacker()
	rat.Attrs.Str = 100
	res := ResolveAttack(rolls(100, 0), rat, player, Options{})

	if !res.Killed || player.Health.Cur != 0 {
		t.Fatalf("expected the player to die, got %+v", res)
	}
	for _, l := range DeathLines {
		if slices.Contains(res.Lines, l) {
			t.Errorf("enemy kill should not add a flavour line, got %v", res.Lines)
		}
	}
}

func TestDefensiveStatusReducesDamage(t *testing.T) {
	attacker, defender := newAttacker(), newDefender()
	attacker.Attrs.Str = 13
	status.Apply(defender, &status.Status{Name: "iron_skin", Kind: status.Buff, Duration: 3,
		Effects: []status.Effect{status.ReflectDamage{Percent: 0.5, Absorb: true}}})

	res := ResolveAttack(rolls(100, 0), attacker, defender, Options{})

	if res.Damage != 5 {
		t.Errorf("Damage = %d, want 5 after absorbing half of 10", res.Damage)
	}
	if attacker.Health.Cur != attacker.Health.Max-5 {
		t.Errorf("attacker HP = %d, want %d", attacker.Health.Cur, attacker.Health.Max-5)
	}
}
