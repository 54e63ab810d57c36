package game

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/grid"
	"github.com/samdwyer/delve/internal/telemetry"
	"github.com/samdwyer/delve/internal/world"
)

// Outcome is the result of handling one intent.
type Outcome struct {
	// TurnTaken is false for refused, cancelled and free actions.
	TurnTaken bool
	// Transitioned is set when the player went through a door.
	Transitioned bool
	Lines        []string
	Phase        Phase
	Dirty        Dirty
}

// action is what a player action did before the enemy phase.
type action struct {
	lines        []string
	taken        bool
	transitioned bool
}

func refuse(msg string) action {
	return action{lines: []string{msg}}
}

// pending is an ability or thrown item waiting for a target tile.
type pending struct {
	ability *entity.ActiveAbility
	item    *entity.Consumable
	targets []grid.Pos
}

// Engine runs a single-player game. It is not safe for concurrent use;
// the caller feeds it one intent at a time.
type Engine struct {
	log      *log.Logger
	rng      entity.Roller
	catalog  *gamedata.Catalog
	renderer Renderer
	tracer   trace.Tracer

	player *entity.Player
	board  *world.Board

	phase   Phase
	turn    int
	console Console
	dirty   Dirty
	focus   *grid.Pos
	pending *pending
}

// New builds the starting board, places the player and generates the boards
// behind its doors.
func New(ctx context.Context, cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()

	catalog := cfg.Catalog
	if catalog == nil {
		var err error
		if catalog, err = gamedata.LoadCatalog(); err != nil {
			return nil, fmt.Errorf("load catalog: %w", err)
		}
	}
	if tiers := catalog.Tiers(); !slices.Contains(tiers, cfg.StartTier) {
		return nil, fmt.Errorf("start tier %d: %w (have %v)", cfg.StartTier, gamedata.ErrUnknownTier, tiers)
	}

	rng := cfg.RNG
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		cfg.Logger.Debug("seeding rng", "seed", seed)
		rng = rand.New(rand.NewSource(seed))
	}

	player := cfg.Player
	if player == nil {
		var err error
		if player, err = catalog.NewPlayer(cfg.PlayerName, cfg.Profession); err != nil {
			return nil, err
		}
	}

	tmpl := cfg.Start
	if tmpl == nil {
		tmpl = catalog.StartTemplate()
	}
	board, err := world.NewStartingBoard(ctx, tmpl, cfg.StartTier, catalog, rng)
	if err != nil {
		return nil, fmt.Errorf("starting board: %w", err)
	}
	start, _ := board.PlayerPos()
	board.PlacePlayer(player, start)
	board.ApplyPlayerPassives(player.Passives.Group(entity.GroupBoard))
	if err := board.GenerateAdjacentBoards(ctx, catalog); err != nil {
		return nil, fmt.Errorf("starting board: %w", err)
	}

	e := &Engine{
		log:      cfg.Logger,
		rng:      rng,
		catalog:  catalog,
		renderer: cfg.Renderer,
		tracer:   telemetry.Tracer("game"),
		player:   player,
		board:    board,
		phase:    PhaseAwaitingInput,
		dirty:    allDirty(),
	}
	e.console.Add(fmt.Sprintf("%s enters the dungeon.", player.Name))
	e.log.Info("game started", "player", player.Name, "profession", player.Profession, "tier", board.Tier)
	e.flush()
	return e, nil
}

// Handle resolves one intent. The only error is a fatal board generation
// failure; everything the player can get wrong is reported on the console.
func (e *Engine) Handle(ctx context.Context, in Intent) (Outcome, error) {
	ctx, span := e.tracer.Start(ctx, "turn.resolve",
		trace.WithAttributes(attribute.String("turn.intent", in.intentName())))
	defer span.End()

	if e.phase == PhaseGameOver {
		return Outcome{Phase: e.phase}, nil
	}

	var (
		act action
		err error
	)
	if e.phase == PhaseTargeting {
		act = e.handleTargeting(in)
	} else {
		e.setPhase(PhaseResolvingPlayerAction)
		act, err = e.handleAction(ctx, in)
		if err != nil {
			span.RecordError(err)
			return Outcome{Phase: e.phase}, err
		}
	}

	lines := act.lines
	if act.taken {
		e.turn++
		// Enemies on the board just entered do not act on the arrival turn.
		if !act.transitioned && e.player.IsAlive() {
			lines = append(lines, e.enemyPhase(ctx)...)
		}
		if e.player.IsAlive() {
			lines = append(lines, e.endOfTurn()...)
		}
	}

	switch {
	case !e.player.IsAlive():
		lines = append(lines, "You have died.")
		e.setPhase(PhaseGameOver)
		e.dirty.Panel = true
		e.log.Info("player died", "turn", e.turn, "level", e.player.Level)
	case e.pending != nil:
		e.setPhase(PhaseTargeting)
	default:
		e.setPhase(PhaseAwaitingInput)
	}

	if e.console.Add(lines...) {
		e.dirty.Console = true
	}
	out := Outcome{
		TurnTaken:    act.taken,
		Transitioned: act.transitioned,
		Lines:        lines,
		Phase:        e.phase,
		Dirty:        e.dirty,
	}
	span.SetAttributes(
		attribute.String("turn.phase", e.phase.String()),
		attribute.Int("turn.number", e.turn),
		attribute.Bool("turn.taken", act.taken),
	)
	e.flush()
	return out, nil
}

func (e *Engine) handleAction(ctx context.Context, in Intent) (action, error) {
	switch in := in.(type) {
	case Move:
		return e.move(ctx, in.Dir)
	case Wait:
		return action{taken: true}, nil
	case UseItem:
		return e.useItem(in.Index), nil
	case UseAbility:
		return e.useAbility(in.Index), nil
	case Hover:
		e.setFocus(in.Pos)
		return action{}, nil
	case Unequip:
		return e.unequip(in.Slot), nil
	case Drop:
		return e.drop(in.Index), nil
	case AllocatePoint:
		return e.allocate(in), nil
	case Learn:
		return e.learn(in.ID), nil
	}
	// ClickTile and Cancel mean nothing outside targeting.
	return action{}, nil
}

func (e *Engine) setPhase(p Phase) {
	if e.phase == p {
		return
	}
	e.log.Debug("phase", "from", e.phase, "to", p)
	e.phase = p
}

// move steps the player one tile, attacking, looting or leaving the board
// when something other than floor is there.
func (e *Engine) move(ctx context.Context, d grid.Direction) (action, error) {
	to := e.player.Position().Add(d)
	if enemy, ok := e.board.EnemyAt(to); ok {
		return e.attack(enemy), nil
	}
	if chest, ok := e.board.ChestAt(to); ok {
		return e.loot(to, chest), nil
	}
	if e.board.IsDoor(to) {
		return e.transition(ctx, to)
	}
	if !e.board.TileIsOpen(to) {
		return action{}, nil
	}

	lines := e.board.MoveCharacter(e.player, to)
	e.dirty.Board = true
	if len(lines) > 0 {
		e.dirty.Panel = true
	}
	return action{lines: lines, taken: true}, nil
}

func (e *Engine) loot(p grid.Pos, chest *entity.Chest) action {
	if err := e.player.AddItem(chest.Item); err != nil {
		return refuse(sentence(err))
	}
	chest.Opened = true
	e.board.HandleChestOpened(p)
	e.dirty.Board, e.dirty.Panel = true, true
	e.refocus(p)
	return action{
		lines: []string{fmt.Sprintf("You open the chest and find %s.", chest.Item.ItemName())},
		taken: true,
	}
}

// transition moves the player through the door at p onto the linked board.
func (e *Engine) transition(ctx context.Context, p grid.Pos) (action, error) {
	link, _ := e.board.Door(p)
	if link == nil {
		if err := e.board.GenerateAdjacentBoards(ctx, e.catalog); err != nil {
			return action{}, err
		}
		link, _ = e.board.Door(p)
	}
	next := link.Board
	if _, blocked := next.EnemyAt(link.Entry); blocked {
		return refuse("Something blocks the way through the door."), nil
	}

	e.board.RemovePlayer()
	next.PlacePlayer(e.player, link.Entry)
	e.board = next
	next.ApplyPlayerPassives(e.player.Passives.Group(entity.GroupBoard))
	if err := next.GenerateAdjacentBoards(ctx, e.catalog); err != nil {
		return action{}, err
	}

	e.focus = nil
	e.dirty = allDirty()
	e.log.Info("entered board", "board", next.ID, "tier", next.Tier, "enemies", len(next.Enemies()))
	return action{
		lines:        []string{"You pass through the door."},
		taken:        true,
		transitioned: true,
	}, nil
}

func (e *Engine) unequip(slot entity.Slot) action {
	eq, err := e.player.Unequip(slot)
	if err != nil {
		return refuse(sentence(err))
	}
	e.dirty.Panel = true
	return action{lines: []string{fmt.Sprintf("You unequip the %s.", eq.Name)}}
}

func (e *Engine) drop(index int) action {
	item, err := e.player.RemoveItem(index)
	if err != nil {
		return refuse(sentence(err))
	}
	e.dirty.Panel = true
	return action{lines: []string{fmt.Sprintf("You drop the %s.", item.ItemName())}}
}

func (e *Engine) allocate(in AllocatePoint) action {
	if err := e.player.AllocatePoint(in.Attr); err != nil {
		return refuse(sentence(err))
	}
	e.dirty.Panel = true
	return action{lines: []string{fmt.Sprintf("Your %s increases.", strings.ToUpper(in.Attr.String()))}}
}

// learn spends a skill point on an ability from the player's skill tree.
func (e *Engine) learn(id string) action {
	tree, err := e.catalog.SkillTree(e.player.Profession)
	if err != nil {
		return refuse("You have nothing to learn.")
	}
	for _, def := range tree.Actives {
		if def.ID != id {
			continue
		}
		a, err := e.player.LearnActive(def)
		if err != nil {
			return refuse(sentence(err))
		}
		e.dirty.Panel = true
		e.log.Debug("learned ability", "ability", a.ID, "level", a.Level)
		if a.Level == 1 {
			return action{lines: []string{fmt.Sprintf("You learn %s.", a.Name)}}
		}
		return action{lines: []string{fmt.Sprintf("%s is now level %d.", a.Name, a.Level)}}
	}
	for _, def := range tree.Passives {
		if def.ID != id {
			continue
		}
		if err := e.player.LearnPassive(def); err != nil {
			return refuse(sentence(err))
		}
		e.dirty.Panel = true
		if def.Group == entity.GroupBoard {
			e.board.ApplyPlayerPassives(e.player.Passives.Group(entity.GroupBoard))
		}
		return action{lines: []string{fmt.Sprintf("You learn %s.", def.Name)}}
	}
	return refuse("You cannot learn that.")
}

// sentence turns a user-facing error into a console line.
func sentence(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	msg = strings.ToUpper(msg[:1]) + msg[1:]
	if !strings.HasSuffix(msg, ".") {
		msg += "."
	}
	return msg
}

// Player returns the player.
func (e *Engine) Player() *entity.Player { return e.player }

// Board returns the board the player is on.
func (e *Engine) Board() *world.Board { return e.board }

// Phase returns the current state.
func (e *Engine) Phase() Phase { return e.phase }

// Turn returns the number of turns taken.
func (e *Engine) Turn() int { return e.turn }

// Console returns the visible console lines.
func (e *Engine) Console() []string { return e.console.Lines() }

// Targets returns the legal target tiles while targeting.
func (e *Engine) Targets() []grid.Pos {
	if e.pending == nil {
		return nil
	}
	return append([]grid.Pos(nil), e.pending.targets...)
}

// Render redraws every section, e.g. after the terminal was resized.
func (e *Engine) Render() {
	e.dirty = allDirty()
	e.flush()
}

// flush calls the renderer for every dirty section and clears the flags.
func (e *Engine) flush() {
	if e.renderer != nil {
		if e.dirty.Board {
			e.renderer.RenderBoard(e.boardView())
		}
		if e.dirty.Console {
			e.renderer.RenderConsole(e.console.Lines())
		}
		if e.dirty.Panel {
			e.renderer.RenderPlayerPanel(e.Snapshot())
		}
		if e.dirty.Focus {
			e.renderer.RenderFocusWindow(e.FocusInfo())
		}
	}
	e.dirty = Dirty{}
}

func (e *Engine) boardView() BoardView {
	view := BoardView{
		Rows:    e.board.Rows(),
		Tier:    e.board.Tier,
		Targets: e.Targets(),
		Enemies: make(map[grid.Pos]string),
	}
	for _, enemy := range e.board.Enemies() {
		view.Enemies[enemy.Position()] = enemy.Key
	}
	return view
}

// errNotConsumable is reported when a targeted use resolves to equipment.
var errNotConsumable = errors.New("that cannot be used")
