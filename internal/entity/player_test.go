package entity

import (
	"errors"
	"testing"

	"github.com/samdwyer/delve/internal/stats"
	"github.com/samdwyer/delve/internal/status"
)

var warriorAttrs = stats.Attributes{Str: 6, Dex: 4, Int: 3, End: 7, Vit: 7, Wis: 3}

func rustySword() *Equipment {
	return &Equipment{ID: "rusty_sword", Name: "Rusty Sword", Slot: SlotWeapon, OffRating: 2,
		Requirements: stats.Attributes{Str: 2, Dex: 2}}
}

func TestNewPlayerDerivedPools(t *testing.T) {
	p := NewPlayer("Hero", "warrior", warriorAttrs)

	if p.Health.Max != 35 || p.Health.Cur != 35 {
		t.Errorf("HP = %+v, want 35/35", p.Health)
	}
	if p.Mana.Max != 6 || p.Mana.Cur != 6 {
		t.Errorf("MP = %+v, want 6/6", p.Mana)
	}
	for _, c := range Conditions {
		if p.Conditions[c].Cur != ConditionMax {
			t.Errorf("condition %v = %d, want %d", c, p.Conditions[c].Cur, ConditionMax)
		}
	}
}

func TestInventoryLimit(t *testing.T) {
	p := NewPlayer("Hero", "warrior", warriorAttrs)
	for i := 0; i < InventoryLimit; i++ {
		if err := p.AddItem(rustySword()); err != nil {
			t.Fatalf("AddItem %d failed: %v", i, err)
		}
	}
	if err := p.AddItem(rustySword()); !errors.Is(err, ErrInventoryFull) {
		t.Errorf("AddItem over limit = %v, want ErrInventoryFull", err)
	}
	if len(p.Inventory) != InventoryLimit {
		t.Errorf("inventory size = %d, want %d", len(p.Inventory), InventoryLimit)
	}
}

func TestEquipSwapsAndRatings(t *testing.T) {
	p := NewPlayer("Hero", "warrior", warriorAttrs)
	p.AddItem(rustySword())
	short := &Equipment{ID: "short_sword", Name: "Short Sword", Slot: SlotWeapon, OffRating: 3}
	p.AddItem(short)

	if _, err := p.Equip(0); err != nil {
		t.Fatalf("Equip rusty sword: %v", err)
	}
	if p.OffRating() != 2 {
		t.Errorf("OffRating = %d, want 2", p.OffRating())
	}
	if len(p.Inventory) != 1 {
		t.Fatalf("inventory size = %d, want 1", len(p.Inventory))
	}

	prev, err := p.Equip(0)
	if err != nil {
		t.Fatalf("Equip short sword: %v", err)
	}
	if prev == nil || prev.ID != "rusty_sword" {
		t.Errorf("previous = %v, want rusty sword", prev)
	}
	if p.Inventory[0].ItemID() != "rusty_sword" {
		t.Errorf("rusty sword should be back in the inventory")
	}
	if p.OffRating() != 3 {
		t.Errorf("OffRating = %d, want 3", p.OffRating())
	}
}

func TestEquipRequirementsUnmet(t *testing.T) {
	p := NewPlayer("Hero", "warrior", warriorAttrs)
	heavy := &Equipment{ID: "greatsword", Name: "Greatsword", Slot: SlotWeapon, Requirements: stats.Attributes{Str: 12}}
	p.AddItem(heavy)

	if _, err := p.Equip(0); !errors.Is(err, ErrRequirementsUnmet) {
		t.Errorf("Equip = %v, want ErrRequirementsUnmet", err)
	}
	if len(p.Inventory) != 1 || p.Equipment[SlotWeapon] != nil {
		t.Error("failed equip must not change state")
	}
}

func TestDefRatingIncludesPassive(t *testing.T) {
	p := NewPlayer("Hero", "warrior", warriorAttrs)
	p.Equipment[SlotBody] = &Equipment{ID: "tunic", Slot: SlotBody, DefRating: 3}
	p.Passives.Add(GroupCombat, ModBaseDef, 2)

	if got := p.DefRating(); got != 5 {
		t.Errorf("DefRating = %d, want 5", got)
	}
}

func TestGainExperienceLevelsUp(t *testing.T) {
	p := NewPlayer("Hero", "warrior", warriorAttrs)

	if gained := p.GainExperience(9); gained != 0 {
		t.Fatalf("gained %d levels, want 0", gained)
	}
	if gained := p.GainExperience(7); gained != 1 {
		t.Fatalf("gained %d levels, want 1", gained)
	}
	if p.Level != 2 || p.Experience.Cur != 6 || p.Experience.Max != 15 {
		t.Errorf("level %d xp %+v, want level 2 xp 6/15", p.Level, p.Experience)
	}
	if p.AttributePoints != AttributePointsPerLevel || p.SkillPoints != SkillPointsPerLevel {
		t.Errorf("points = %d/%d", p.AttributePoints, p.SkillPoints)
	}

	if err := p.AllocatePoint(stats.Vit); err != nil {
		t.Fatalf("AllocatePoint: %v", err)
	}
	if p.Health.Max != 40 {
		t.Errorf("max HP after vit point = %d, want 40", p.Health.Max)
	}
}

func TestLearnActiveLevelsUpAdditively(t *testing.T) {
	p := NewPlayer("Hero", "warrior", warriorAttrs)
	p.SkillPoints = 3
	def := &ActiveAbility{ID: "shockwave", Shape: ShapeRadiusSplash, Radius: 2, Cooldown: 4, MPCost: 1,
		Growth: LevelGrowth{Cooldown: -1, Radius: 1, MPCost: -1}}

	a, err := p.LearnActive(def)
	if err != nil {
		t.Fatalf("LearnActive: %v", err)
	}
	if a.Level != 1 || a.Radius != 2 {
		t.Errorf("new ability = level %d radius %d", a.Level, a.Radius)
	}

	p.LearnActive(def)
	p.LearnActive(def)
	if a.Level != 3 || a.Cooldown != 2 || a.Radius != 4 || a.MPCost != 0 {
		t.Errorf("after two level ups: level %d cooldown %d radius %d mp %d", a.Level, a.Cooldown, a.Radius, a.MPCost)
	}
	if def.Level != 0 || def.Radius != 2 {
		t.Error("catalog definition must not be mutated")
	}
	if _, err := p.LearnActive(def); !errors.Is(err, ErrNoPoints) {
		t.Errorf("LearnActive without points = %v, want ErrNoPoints", err)
	}
}

func TestCooldowns(t *testing.T) {
	p := NewPlayer("Hero", "warrior", warriorAttrs)
	p.Abilities = []*ActiveAbility{{ID: "a", TurnsLeft: 2}, {ID: "b"}}

	if !p.DecrementCooldowns() {
		t.Error("expected a change")
	}
	if p.Abilities[0].TurnsLeft != 1 {
		t.Errorf("TurnsLeft = %d, want 1", p.Abilities[0].TurnsLeft)
	}
	p.ReduceCooldowns(5)
	if p.Abilities[0].TurnsLeft != 0 {
		t.Errorf("TurnsLeft = %d, want 0", p.Abilities[0].TurnsLeft)
	}
	if p.DecrementCooldowns() {
		t.Error("no change expected once all cooldowns are ready")
	}
}

func TestConsumeEffects(t *testing.T) {
	p := NewPlayer("Hero", "warrior", warriorAttrs)
	p.Health.Cur = 10
	p.Conditions[Thirsty].Cur = 50

	potion := &Consumable{
		ID:      "small_hp_potion",
		Name:    "Small HP Potion",
		UseText: "You drink the Small HP Potion.",
		Effects: []ItemEffect{
			RestoreHP{Value: 5},
			ImproveConditions{Changes: map[Condition]int{Thirsty: 3}},
		},
	}
	lines := p.Consume(potion, scripted(0), nil)

	if p.Health.Cur != 15 {
		t.Errorf("HP = %d, want 15", p.Health.Cur)
	}
	if p.Conditions[Thirsty].Cur != 53 {
		t.Errorf("thirst = %d, want 53", p.Conditions[Thirsty].Cur)
	}
	if len(lines) != 1 {
		t.Errorf("lines = %v", lines)
	}

	liquid := &Consumable{Name: "Questionable Liquid", Effects: []ItemEffect{
		ChanceToApplyStatus{Percent: 5, Status: &status.Status{Name: "lesser_poison", Kind: status.Debuff, Duration: 3}},
	}}
	p.Consume(liquid, scripted(50), nil)
	if p.Status.Has("lesser_poison") {
		t.Error("roll 50 should not poison at 5%")
	}
	p.Consume(liquid, scripted(4), nil)
	if !p.Status.Has("lesser_poison") {
		t.Error("roll 4 should poison at 5%")
	}
}

// scriptedRoller returns preset values in order, repeating the last one.
type scriptedRoller struct {
	ints []int
	i    int
}

func scripted(v ...int) *scriptedRoller { return &scriptedRoller{ints: v} }

func (s *scriptedRoller) Intn(n int) int {
	v := s.ints[min(s.i, len(s.ints)-1)]
	s.i++
	if v >= n {
		v = n - 1
	}
	return v
}

func (s *scriptedRoller) Float64() float64 { return 0 }
