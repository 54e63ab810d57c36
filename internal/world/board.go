package world

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/delve/internal/combat"
	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/telemetry"
)

// Spawner supplies tier-appropriate content for a board.
type Spawner interface {
	Enemy(rng entity.Roller, tier int) (*entity.Enemy, error)
	Chest(rng entity.Roller, tier int) (*entity.Chest, error)
	Trap(rng entity.Roller, tier int) (*entity.Trap, error)
	Template(rng entity.Roller, tier int) (Template, error)
}

// DoorLink connects a door to the board behind it. Entry is the tile the
// player arrives on.
type DoorLink struct {
	Board *Board
	Entry grid.Pos
}

// Board is one room of the dungeon. Each tile belongs to exactly one of
// walls, open, doors, chests or traps, or is held by an enemy or the player.
// An enemy may stand on an untriggered trap; that tile stays in traps.
type Board struct {
	ID     uuid.UUID
	Tier   int
	Width  int
	Height int
	// Grid is the derived view. Only Rebuild writes it.
	Grid [][]Tile

	player    grid.Pos
	hasPlayer bool

	walls   grid.PosSet
	open    grid.PosSet
	enemies map[grid.Pos]*entity.Enemy
	chests  map[grid.Pos]*entity.Chest
	traps   map[grid.Pos]*entity.Trap
	doors   map[grid.Pos]*DoorLink
	facing  map[grid.Pos]grid.Direction

	// applied tracks passive modifiers already folded into this board.
	applied map[string]int

	rng entity.Roller
}

func newBoard(tier, width, height int, rng entity.Roller) *Board {
	return &Board{
		ID:      uuid.New(),
		Tier:    tier,
		Width:   width,
		Height:  height,
		walls:   grid.NewPosSet(),
		open:    grid.NewPosSet(),
		enemies: make(map[grid.Pos]*entity.Enemy),
		chests:  make(map[grid.Pos]*entity.Chest),
		traps:   make(map[grid.Pos]*entity.Trap),
		doors:   make(map[grid.Pos]*DoorLink),
		facing:  make(map[grid.Pos]grid.Direction),
		applied: make(map[string]int),
		rng:     rng,
	}
}

// FromTemplate builds a board, drawing an enemy, chest or trap from spawner
// for every E, T and R tile.
func FromTemplate(ctx context.Context, tmpl Template, tier int, spawner Spawner, rng entity.Roller) (*Board, error) {
	_, span := telemetry.Tracer("world").Start(ctx, "board.from_template")
	defer span.End()

	if err := tmpl.Validate(); err != nil {
		return nil, err
	}
	w, h := tmpl.Size()
	b := newBoard(tier, w, h, rng)

	for y, row := range tmpl {
		for x, r := range []rune(row) {
			p := grid.Pos{X: x, Y: y}
			switch Tile(r) {
			case TileWall:
				b.walls.Put(p)
			case TileOpen:
				b.open.Put(p)
			case TilePlayer:
				b.player, b.hasPlayer = p, true
			case TileDoor:
				d, ok := tmpl.DoorFacing(p)
				if !ok {
					return nil, fmt.Errorf("%w: door at %v has no walkable neighbour", ErrInvalidTemplate, p)
				}
				b.doors[p] = nil
				b.facing[p] = d
			case TileEnemy:
				e, err := spawner.Enemy(rng, tier)
				if err != nil {
					return nil, fmt.Errorf("spawn enemy at %v: %w", p, err)
				}
				e.SetPosition(p)
				b.enemies[p] = e
			case TileChest:
				c, err := spawner.Chest(rng, tier)
				if err != nil {
					return nil, fmt.Errorf("spawn chest at %v: %w", p, err)
				}
				b.chests[p] = c
			case TileTrap:
				t, err := spawner.Trap(rng, tier)
				if err != nil {
					return nil, fmt.Errorf("spawn trap at %v: %w", p, err)
				}
				b.traps[p] = t.Copy(p)
			}
		}
	}

	span.SetAttributes(
		attribute.Int("board.tier", tier),
		attribute.Int("board.enemies", len(b.enemies)),
		attribute.Int("board.doors", len(b.doors)),
	)
	b.Rebuild()
	return b, nil
}

// Rebuild recomputes Grid from the registries. Calling it twice without a
// mutation in between yields the same grid.
func (b *Board) Rebuild() {
	g := make([][]Tile, b.Height)
	for y := range g {
		g[y] = make([]Tile, b.Width)
		for x := range g[y] {
			g[y][x] = TileOpen
		}
	}
	set := func(p grid.Pos, t Tile) {
		if grid.InBounds(p, b.Width, b.Height) {
			g[p.Y][p.X] = t
		}
	}
	b.walls.Each(func(p grid.Pos) { set(p, TileWall) })
	for p := range b.doors {
		set(p, TileDoor)
	}
	for p := range b.chests {
		set(p, TileChest)
	}
	for p := range b.traps {
		set(p, TileTrap)
	}
	for p := range b.enemies {
		set(p, TileEnemy)
	}
	if b.hasPlayer {
		set(b.player, TilePlayer)
	}
	b.Grid = g
}

// TileAt returns the derived tile at p, or TileWall outside the board.
func (b *Board) TileAt(p grid.Pos) Tile {
	if !grid.InBounds(p, b.Width, b.Height) || b.Grid == nil {
		return TileWall
	}
	return b.Grid[p.Y][p.X]
}

// Rows renders Grid as one string per row.
func (b *Board) Rows() []string {
	rows := make([]string, len(b.Grid))
	for y, row := range b.Grid {
		runes := make([]rune, len(row))
		for x, t := range row {
			runes[x] = rune(t)
		}
		rows[y] = string(runes)
	}
	return rows
}

// PlayerPos returns the player's tile and whether the player is on this board.
func (b *Board) PlayerPos() (grid.Pos, bool) { return b.player, b.hasPlayer }

// EnemyAt returns the enemy standing on p.
func (b *Board) EnemyAt(p grid.Pos) (*entity.Enemy, bool) {
	e, ok := b.enemies[p]
	return e, ok
}

// ChestAt returns the chest on p.
func (b *Board) ChestAt(p grid.Pos) (*entity.Chest, bool) {
	c, ok := b.chests[p]
	return c, ok
}

// TrapAt returns the trap on p.
func (b *Board) TrapAt(p grid.Pos) (*entity.Trap, bool) {
	t, ok := b.traps[p]
	return t, ok
}

// IsWall reports whether p is a wall or outside the board.
func (b *Board) IsWall(p grid.Pos) bool {
	return !grid.InBounds(p, b.Width, b.Height) || b.walls.Has(p)
}

// IsDoor reports whether p is a door.
func (b *Board) IsDoor(p grid.Pos) bool {
	_, ok := b.doors[p]
	return ok
}

// Door returns the link behind the door at p. The link is nil until
// adjacent boards are generated.
func (b *Board) Door(p grid.Pos) (*DoorLink, bool) {
	l, ok := b.doors[p]
	return l, ok
}

// Doors returns the door positions in row-major order.
func (b *Board) Doors() []grid.Pos {
	out := make([]grid.Pos, 0, len(b.doors))
	for p := range b.doors {
		out = append(out, p)
	}
	grid.SortPositions(out)
	return out
}

// DoorFacing returns the direction the door at p leads.
func (b *Board) DoorFacing(p grid.Pos) (grid.Direction, bool) {
	d, ok := b.facing[p]
	return d, ok
}

// Enemies returns the live enemies in row-major order. The slice is a
// snapshot; mutating the board does not change it.
func (b *Board) Enemies() []*entity.Enemy {
	positions := make([]grid.Pos, 0, len(b.enemies))
	for p := range b.enemies {
		positions = append(positions, p)
	}
	grid.SortPositions(positions)
	out := make([]*entity.Enemy, len(positions))
	for i, p := range positions {
		out[i] = b.enemies[p]
	}
	return out
}

// HasEnemies reports whether any enemy remains.
func (b *Board) HasEnemies() bool { return len(b.enemies) > 0 }

// TileIsOpen reports whether a character could step onto p: open floor or
// an untriggered trap, with nobody standing on it.
func (b *Board) TileIsOpen(p grid.Pos) bool {
	if !b.open.Has(p) {
		if _, trap := b.traps[p]; !trap {
			return false
		}
	}
	if _, occupied := b.enemies[p]; occupied {
		return false
	}
	return !(b.hasPlayer && b.player == p)
}

// OpenTiles returns every tile TileIsOpen accepts. Callers own the set.
func (b *Board) OpenTiles() grid.PosSet {
	out := grid.Clone(b.open)
	for p := range b.traps {
		if b.TileIsOpen(p) {
			out.Put(p)
		}
	}
	return out
}

// vacate releases p after its occupant leaves.
func (b *Board) vacate(p grid.Pos) {
	if _, trap := b.traps[p]; !trap {
		b.open.Put(p)
	}
}

// PlacePlayer puts the player on p, e.g. after a board transition.
func (b *Board) PlacePlayer(player entity.Actor, p grid.Pos) {
	if b.hasPlayer {
		b.vacate(b.player)
	}
	b.open.Remove(p)
	b.player, b.hasPlayer = p, true
	player.SetPosition(p)
	b.Rebuild()
}

// RemovePlayer takes the player off the board when it leaves through a door.
func (b *Board) RemovePlayer() {
	if !b.hasPlayer {
		return
	}
	b.vacate(b.player)
	b.hasPlayer = false
	b.Rebuild()
}

// MoveCharacter moves actor to p, which the caller has checked with
// TileIsOpen, and resolves any trap there. An enemy killed by a trap is
// removed from the board. An enemy this board does not hold is not moved.
func (b *Board) MoveCharacter(actor entity.Actor, p grid.Pos) []string {
	from := actor.Position()
	isEnemy := actor.IsEnemy()
	if isEnemy {
		enemy, ok := b.enemies[from]
		if !ok {
			return nil
		}
		delete(b.enemies, from)
		b.vacate(from)
		b.enemies[p] = enemy
	} else {
		if b.hasPlayer {
			b.vacate(b.player)
		}
		b.player, b.hasPlayer = p, true
	}
	b.open.Remove(p)
	actor.SetPosition(p)

	var lines []string
	if trap, ok := b.traps[p]; ok {
		triggered, text := combat.StepOnTrap(b.rng, actor, trap)
		lines = append(lines, text...)
		if triggered {
			b.HandleTrapTriggered(p)
		}
		if isEnemy && !actor.IsAlive() {
			lines = append(lines, fmt.Sprintf("%s dies.", actor.Subject()))
			b.HandleEnemyDeath(p)
		}
	}
	b.Rebuild()
	return lines
}

// HandleEnemyDeath removes the enemy on p.
func (b *Board) HandleEnemyDeath(p grid.Pos) {
	if _, ok := b.enemies[p]; !ok {
		return
	}
	delete(b.enemies, p)
	b.vacate(p)
	b.Rebuild()
}

// HandleChestOpened removes the chest on p and frees the tile.
func (b *Board) HandleChestOpened(p grid.Pos) {
	if _, ok := b.chests[p]; !ok {
		return
	}
	delete(b.chests, p)
	b.open.Put(p)
	b.Rebuild()
}

// HandleTrapTriggered removes the trap on p. An occupied tile stays out of
// the open set until its occupant leaves.
func (b *Board) HandleTrapTriggered(p grid.Pos) {
	if _, ok := b.traps[p]; !ok {
		return
	}
	delete(b.traps, p)
	_, enemy := b.enemies[p]
	if !enemy && !(b.hasPlayer && b.player == p) {
		b.open.Put(p)
	}
	b.Rebuild()
}

// ApplyPlayerPassives folds the player's board-group passive modifiers into
// this board. Only the change since the last call is applied, so entering a
// board again does not stack the modifiers.
func (b *Board) ApplyPlayerPassives(mods map[string]int) {
	for key, value := range mods {
		delta := value - b.applied[key]
		if delta == 0 {
			continue
		}
		switch key {
		case entity.ModAggroRangeReduction:
			for _, e := range b.enemies {
				e.AggroRange -= delta
			}
		}
		b.applied[key] = value
	}
}

// entry is the tile just inside the door at p.
func (b *Board) entry(p grid.Pos) grid.Pos {
	return p.Add(b.facing[p].Opposite())
}

// clearTile removes whatever entity occupies p and makes it open floor.
func (b *Board) clearTile(p grid.Pos) {
	if b.walls.Has(p) || b.IsDoor(p) {
		return
	}
	delete(b.enemies, p)
	delete(b.chests, p)
	delete(b.traps, p)
	if !(b.hasPlayer && b.player == p) {
		b.open.Put(p)
	}
}
