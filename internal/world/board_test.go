package world

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/stats"
)

var startTemplate = Template{
	"XXXXX",
	"XPOEX",
	"XTROD",
	"XOOOX",
	"XXXXX",
}

var southDoorTemplate = Template{
	"XXXXX",
	"XOOOX",
	"XOEOX",
	"XOOOX",
	"XXDXX",
}

type stubSpawner struct {
	trap      entity.Trap
	templates []Template
	drawn     int
}

func (s *stubSpawner) Enemy(entity.Roller, int) (*entity.Enemy, error) {
	return entity.NewEnemy("rat", "Rat", stats.Attributes{Str: 3, Dex: 1, End: 1, Vit: 2, Wis: 1}, nil), nil
}

func (s *stubSpawner) Chest(entity.Roller, int) (*entity.Chest, error) {
	return &entity.Chest{Item: &entity.Consumable{ID: "bread", Name: "Bread"}}, nil
}

func (s *stubSpawner) Trap(entity.Roller, int) (*entity.Trap, error) {
	t := s.trap
	return &t, nil
}

func (s *stubSpawner) Template(entity.Roller, int) (Template, error) {
	s.drawn++
	return s.templates[(s.drawn-1)%len(s.templates)], nil
}

// constRoller always rolls the same value.
type constRoller int

func (c constRoller) Intn(n int) int    { return min(int(c), n-1) }
func (c constRoller) Float64() float64 { return 0 }

func newSpawner() *stubSpawner {
	return &stubSpawner{
		trap:      entity.Trap{Name: "Spike Trap", Category: entity.TrapDirect, TriggerProb: 0, DamagePercent: 0.1},
		templates: []Template{southDoorTemplate},
	}
}

func mustBoard(t *testing.T, tmpl Template, spawner Spawner, rng entity.Roller) *Board {
	t.Helper()
	b, err := NewStartingBoard(context.Background(), tmpl, 1, spawner, rng)
	if err != nil {
		t.Fatalf("NewStartingBoard: %v", err)
	}
	return b
}

// assertPartition checks every tile is in exactly one registry, except
// that an enemy or the player may stand on a trap.
func assertPartition(t *testing.T, b *Board) {
	t.Helper()
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			p := grid.Pos{X: x, Y: y}
			_, enemy := b.enemies[p]
			_, chest := b.chests[p]
			_, trap := b.traps[p]
			_, door := b.doors[p]
			player := b.hasPlayer && b.player == p

			n := 0
			for _, in := range []bool{b.walls.Has(p), b.open.Has(p), enemy, chest, trap, door, player} {
				if in {
					n++
				}
			}
			overlap := trap && (enemy || player)
			if (overlap && n != 2) || (!overlap && n != 1) {
				t.Errorf("tile %v is in %d registries", p, n)
			}
		}
	}
}

func TestFromTemplateRegistries(t *testing.T) {
	b := mustBoard(t, startTemplate, newSpawner(), constRoller(0))

	if got := b.Rows(); !reflect.DeepEqual(got, []string(startTemplate)) {
		t.Errorf("Rows() = %v, want the template", got)
	}
	if p, ok := b.PlayerPos(); !ok || p != (grid.Pos{X: 1, Y: 1}) {
		t.Errorf("player at %v %v", p, ok)
	}
	if e, ok := b.EnemyAt(grid.Pos{X: 3, Y: 1}); !ok || e.Position() != (grid.Pos{X: 3, Y: 1}) {
		t.Error("enemy should be placed at its spawn tile")
	}
	if d, ok := b.DoorFacing(grid.Pos{X: 4, Y: 2}); !ok || d != grid.Right {
		t.Errorf("door facing = %v, want right", d)
	}
	if got := b.Doors(); !reflect.DeepEqual(got, []grid.Pos{{X: 4, Y: 2}}) {
		t.Errorf("Doors() = %v, want [(4,2)]", got)
	}
	assertPartition(t, b)
}

func TestRebuildIsIdempotent(t *testing.T) {
	b := mustBoard(t, startTemplate, newSpawner(), constRoller(0))
	first := b.Rows()
	b.Rebuild()
	if second := b.Rows(); !reflect.DeepEqual(first, second) {
		t.Errorf("Rebuild changed the grid:\n%v\n%v", first, second)
	}
}

func TestTemplateValidate(t *testing.T) {
	tests := []struct {
		name string
		tmpl Template
	}{
		{name: "empty", tmpl: Template{}},
		{name: "ragged", tmpl: Template{"XXX", "XX"}},
		{name: "unknown tile", tmpl: Template{"XQX"}},
		{name: "two players", tmpl: Template{"XPPX"}},
		{name: "chest inside door", tmpl: Template{"XXXXX", "XOOTD", "XXXXX"}},
		{name: "trap inside door", tmpl: Template{"XXDXX", "XOROX", "XXXXX"}},
		{name: "wall inside door", tmpl: Template{"XXXX", "DXOX", "XXXX"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.tmpl.Validate(); !errors.Is(err, ErrInvalidTemplate) {
				t.Errorf("Validate() = %v, want ErrInvalidTemplate", err)
			}
		})
	}

	for _, ok := range []Template{startTemplate, southDoorTemplate, {"XXXX", "XEPD", "XXXX"}} {
		if err := ok.Validate(); err != nil {
			t.Errorf("Validate(%v) = %v", ok, err)
		}
	}

	_, err := NewStartingBoard(context.Background(), southDoorTemplate, 1, newSpawner(), constRoller(0))
	if !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("starting board without P = %v, want ErrInvalidTemplate", err)
	}
}

func TestRotate(t *testing.T) {
	tmpl := Template{
		"XDX",
		"XOX",
		"XXX",
	}
	once := tmpl.Rotate()
	if want := (Template{"XXX", "XOD", "XXX"}); !reflect.DeepEqual(once, want) {
		t.Errorf("Rotate() = %v, want %v", once, want)
	}
	if d, ok := once.DoorFacing(grid.Pos{X: 2, Y: 1}); !ok || d != grid.Right {
		t.Errorf("rotated door faces %v, want right", d)
	}

	full := tmpl.Rotate().Rotate().Rotate().Rotate()
	if !reflect.DeepEqual(full, tmpl) {
		t.Errorf("four rotations = %v, want original", full)
	}

	wide := Template{"XXXX", "OOOO"}
	if w, h := wide.Rotate().Size(); w != 2 || h != 4 {
		t.Errorf("rotated size = %dx%d, want 2x4", w, h)
	}
}

func TestInteriorDoorFacing(t *testing.T) {
	tmpl := Template{
		"XXXXX",
		"XXDXX",
		"XOOOX",
		"XXXXX",
	}
	if d, ok := tmpl.DoorFacing(grid.Pos{X: 2, Y: 1}); !ok || d != grid.Up {
		t.Errorf("interior door faces %v, want up", d)
	}
}

func TestGenerateAdjacentBoardsMatchesOppositeDoor(t *testing.T) {
	spawner := newSpawner()
	b := mustBoard(t, startTemplate, spawner, constRoller(0))
	door := grid.Pos{X: 4, Y: 2}

	if err := b.GenerateAdjacentBoards(context.Background(), spawner); err != nil {
		t.Fatalf("GenerateAdjacentBoards: %v", err)
	}

	link, ok := b.Door(door)
	if !ok || link == nil || link.Board == nil {
		t.Fatal("door should be linked")
	}
	next := link.Board
	var back grid.Pos
	found := false
	for p, l := range next.doors {
		if l != nil && l.Board == b {
			back, found = p, true
		}
	}
	if !found {
		t.Fatal("new board has no door leading back")
	}
	if d, _ := next.DoorFacing(back); d != grid.Left {
		t.Errorf("matching door faces %v, want left", d)
	}
	if next.doors[back].Entry != (grid.Pos{X: 3, Y: 2}) {
		t.Errorf("return entry = %v, want (3,2)", next.doors[back].Entry)
	}
	if !next.TileIsOpen(link.Entry) {
		t.Errorf("arrival tile %v should be open", link.Entry)
	}
	if _, ok := next.PlayerPos(); ok {
		t.Error("generated board must not place the player")
	}
	assertPartition(t, next)

	// Already linked doors are left alone.
	drawn := spawner.drawn
	if err := b.GenerateAdjacentBoards(context.Background(), spawner); err != nil {
		t.Fatal(err)
	}
	if spawner.drawn != drawn {
		t.Error("linked doors should not be regenerated")
	}
}

func TestGenerateAdjacentBoardsNoMatch(t *testing.T) {
	spawner := newSpawner()
	spawner.templates = []Template{{"XXX", "XOX", "XXX"}}
	b := mustBoard(t, startTemplate, spawner, constRoller(0))

	err := b.GenerateAdjacentBoards(context.Background(), spawner)
	if !errors.Is(err, ErrNoMatchingEntrance) {
		t.Fatalf("err = %v, want ErrNoMatchingEntrance", err)
	}
	if spawner.drawn != MaxTemplateDraws {
		t.Errorf("drew %d templates, want %d", spawner.drawn, MaxTemplateDraws)
	}
}

func TestTrapTriggerRemovesTrap(t *testing.T) {
	spawner := newSpawner()
	spawner.trap.TriggerProb = 1
	b := mustBoard(t, startTemplate, spawner, constRoller(100))
	player := entity.NewPlayer("Hero", "warrior", stats.Attributes{Vit: 10})
	player.SetPosition(grid.Pos{X: 1, Y: 1})
	trapPos := grid.Pos{X: 2, Y: 2}

	lines := b.MoveCharacter(player, trapPos)

	if len(lines) == 0 {
		t.Error("expected trap text")
	}
	if _, ok := b.TrapAt(trapPos); ok {
		t.Error("triggered trap should be removed")
	}
	if player.Health.Cur != 45 {
		t.Errorf("player HP = %d, want 45", player.Health.Cur)
	}
	if !b.TileIsOpen(grid.Pos{X: 1, Y: 1}) {
		t.Error("previous tile should be open again")
	}
	assertPartition(t, b)
}

func TestAvoidedTrapStaysAndEnemyOverlap(t *testing.T) {
	b := mustBoard(t, startTemplate, newSpawner(), constRoller(0))
	trapPos := grid.Pos{X: 2, Y: 2}
	enemy, _ := b.EnemyAt(grid.Pos{X: 3, Y: 1})

	b.MoveCharacter(enemy, trapPos)
	if _, ok := b.TrapAt(trapPos); !ok {
		t.Fatal("avoided trap should stay")
	}
	if b.TileAt(trapPos) != TileEnemy {
		t.Errorf("tile = %c, want enemy drawn over trap", b.TileAt(trapPos))
	}
	if b.TileIsOpen(trapPos) {
		t.Error("occupied trap tile is not open")
	}
	assertPartition(t, b)

	b.MoveCharacter(enemy, grid.Pos{X: 3, Y: 3})
	if b.TileAt(trapPos) != TileTrap || !b.TileIsOpen(trapPos) {
		t.Error("trap should be steppable again once vacated")
	}
	assertPartition(t, b)
}

func TestEnemiesSnapshot(t *testing.T) {
	b := mustBoard(t, startTemplate, newSpawner(), constRoller(0))
	snapshot := b.Enemies()
	b.HandleEnemyDeath(snapshot[0].Position())

	if len(snapshot) != 1 || b.HasEnemies() {
		t.Errorf("snapshot len %d, board has enemies %v", len(snapshot), b.HasEnemies())
	}
	if !b.TileIsOpen(grid.Pos{X: 3, Y: 1}) {
		t.Error("dead enemy's tile should be open")
	}
}

func TestChestOpened(t *testing.T) {
	b := mustBoard(t, startTemplate, newSpawner(), constRoller(0))
	p := grid.Pos{X: 1, Y: 2}
	b.HandleChestOpened(p)
	if _, ok := b.ChestAt(p); ok || b.TileAt(p) != TileOpen {
		t.Error("opened chest should leave open floor")
	}
	assertPartition(t, b)
}

func TestApplyPlayerPassivesAppliesDeltaOnly(t *testing.T) {
	b := mustBoard(t, startTemplate, newSpawner(), constRoller(0))
	enemy := b.Enemies()[0]
	base := enemy.AggroRange

	mods := map[string]int{entity.ModAggroRangeReduction: 1}
	b.ApplyPlayerPassives(mods)
	b.ApplyPlayerPassives(mods)
	if enemy.AggroRange != base-1 {
		t.Errorf("AggroRange = %d, want %d", enemy.AggroRange, base-1)
	}

	b.ApplyPlayerPassives(map[string]int{entity.ModAggroRangeReduction: 2})
	if enemy.AggroRange != base-2 {
		t.Errorf("AggroRange = %d, want %d", enemy.AggroRange, base-2)
	}
}

func TestMoveCharacterLeavesForeignEnemy(t *testing.T) {
	b := mustBoard(t, startTemplate, newSpawner(), constRoller(0))
	stray := entity.NewEnemy("rat", "Rat", stats.Attributes{Vit: 2}, nil)
	stray.SetPosition(grid.Pos{X: 2, Y: 1})
	dest := grid.Pos{X: 3, Y: 3}

	if lines := b.MoveCharacter(stray, dest); lines != nil {
		t.Errorf("lines = %q, want none", lines)
	}
	if stray.Position() != (grid.Pos{X: 2, Y: 1}) {
		t.Errorf("stray enemy moved to %v", stray.Position())
	}
	if _, ok := b.EnemyAt(dest); ok || !b.TileIsOpen(dest) {
		t.Error("destination should stay open")
	}
	assertPartition(t, b)
}
