package ui

import (
	"context"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/delve/internal/game"
)

// Run feeds terminal events to the engine until the player quits, the
// screen closes or ctx is cancelled. Once the game is over, any key ends
// the loop.
func Run(ctx context.Context, s *Screen, engine *game.Engine, in *Input) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			s.Interrupt()
		case <-done:
		}
	}()

	engine.Render()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		var intent game.Intent
		switch ev := s.PollEvent().(type) {
		case nil:
			return nil
		case *tcell.EventInterrupt:
			continue
		case *tcell.EventResize:
			s.Sync()
			engine.Render()
			continue
		case *tcell.EventKey:
			if engine.Phase() == game.PhaseGameOver {
				return nil
			}
			var quit bool
			intent, quit = in.Key(ev.Key(), ev.Rune())
			if quit {
				return nil
			}
		case *tcell.EventMouse:
			x, y := ev.Position()
			intent = in.Mouse(x, y, ev.Buttons())
		}

		if intent == nil {
			continue
		}
		if _, err := engine.Handle(ctx, intent); err != nil {
			return err
		}
	}
}
