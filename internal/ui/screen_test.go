package ui

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/delve/internal/game"
)

func newSimGame(t *testing.T) (*Screen, tcell.SimulationScreen, *game.Engine, *Input) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := newScreen(sim)
	if err != nil {
		t.Fatalf("newScreen: %v", err)
	}
	t.Cleanup(s.Close)

	tree, err := testCatalog.SkillTree("warrior")
	if err != nil {
		t.Fatalf("SkillTree: %v", err)
	}
	r := NewRenderer(s, testCatalog, tree)
	engine, err := game.New(context.Background(), game.Config{Seed: 1, Catalog: testCatalog, Renderer: r})
	if err != nil {
		t.Fatalf("game.New: %v", err)
	}
	return s, sim, engine, NewInput(r)
}

func TestRunQuitKey(t *testing.T) {
	s, sim, engine, in := newSimGame(t)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := Run(context.Background(), s, engine, in); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if ch, _, _, _ := sim.GetContent(0, 0); ch != 'D' {
		t.Errorf("cell (0,0) = %q, want the depth header", ch)
	}
	if engine.Turn() != 0 {
		t.Errorf("Turn = %d, quitting should not spend a turn", engine.Turn())
	}
}

func TestRunWaitThenQuit(t *testing.T) {
	s, sim, engine, in := newSimGame(t)
	sim.InjectKey(tcell.KeyRune, '.', tcell.ModNone)
	sim.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)

	if err := Run(context.Background(), s, engine, in); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if engine.Turn() != 1 {
		t.Errorf("Turn = %d, want 1 after waiting once", engine.Turn())
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	s, _, engine, in := newSimGame(t)
	ctx, cancel := context.WithCancel(context.Background())

	errc := make(chan error, 1)
	go func() { errc <- Run(ctx, s, engine, in) }()
	cancel()

	select {
	case err := <-errc:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Run = %v, want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
