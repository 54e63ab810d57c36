package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/samdwyer/delve/internal/entity"
	"github.com/samdwyer/delve/internal/game"
	"github.com/samdwyer/delve/internal/gamedata"
	"github.com/samdwyer/delve/internal/storage"
	"github.com/samdwyer/delve/internal/telemetry"
	"github.com/samdwyer/delve/internal/ui"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play, resuming the save slot if it holds a character",
	Args:  cobra.NoArgs,
	RunE:  runPlay,
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	shutdown, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     cfg.Telemetry.Enabled,
		SampleRatio: cfg.Telemetry.SampleRatio,
	})
	if err != nil {
		// The game still works without traces.
		logger.Warn("telemetry setup failed", "err", err)
	} else {
		defer func() {
			if err := shutdown(context.WithoutCancel(ctx)); err != nil {
				logger.Error("telemetry shutdown", "err", err)
			}
		}()
	}

	catalog, err := gamedata.LoadCatalog()
	if err != nil {
		return fmt.Errorf("load game data: %w", err)
	}

	store, err := openStore(cfg)
	if err != nil {
		logger.Warn("save database unavailable, progress will not be saved", "err", err)
		store = nil
	} else {
		defer store.Close()
	}

	gcfg := game.Config{
		Seed:       cfg.Seed,
		Logger:     logger,
		Catalog:    catalog,
		Profession: cfg.Profession,
		PlayerName: cfg.PlayerName,
		StartTier:  cfg.StartTier,
	}
	var runID uuid.UUID
	if store != nil {
		if runID, err = resume(ctx, store, cfg.Save.Slot, catalog, &gcfg, logger); err != nil {
			return err
		}
	}

	profession := gcfg.Profession
	if gcfg.Player != nil {
		profession = gcfg.Player.Profession
	}
	tree, err := catalog.SkillTree(profession)
	if err != nil {
		return err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	renderer := ui.NewRenderer(screen, catalog, tree)
	gcfg.Renderer = renderer

	engine, err := game.New(ctx, gcfg)
	if err != nil {
		screen.Close()
		return err
	}
	runErr := ui.Run(ctx, screen, engine, ui.NewInput(renderer))
	screen.Close()
	if errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	if store != nil {
		if err := saveRun(context.WithoutCancel(ctx), store, cfg.Save.Slot, runID, engine); err != nil {
			logger.Error("save failed", "slot", cfg.Save.Slot, "err", err)
			return errors.Join(runErr, err)
		}
	}
	if engine.Phase() == game.PhaseGameOver {
		fmt.Printf("%s died on depth %d after %d turns.\n", engine.Player().Name, engine.Board().Tier, engine.Turn())
	}
	return runErr
}

// resume loads the character in slot into gcfg. An empty slot starts a
// new character.
func resume(ctx context.Context, store *storage.Store, slot string, catalog *gamedata.Catalog, gcfg *game.Config, logger *log.Logger) (uuid.UUID, error) {
	sv, err := store.LoadRecord(ctx, slot)
	if errors.Is(err, storage.ErrSlotNotFound) {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, err
	}

	player, err := entity.FromRecord(sv.Record, catalog)
	if err != nil {
		return uuid.Nil, fmt.Errorf("restore slot %q: %w", slot, err)
	}
	gcfg.Player = player
	gcfg.StartTier = max(sv.Tier, 1)
	logger.Info("resuming", "slot", slot, "run", sv.RunID, "player", player.Name, "tier", sv.Tier)
	return sv.RunID, nil
}

// saveRun writes the character back to its slot, or clears the slot once
// the character is dead.
func saveRun(ctx context.Context, store *storage.Store, slot string, runID uuid.UUID, engine *game.Engine) error {
	p := engine.Player()
	if !p.IsAlive() {
		err := store.DeleteSlot(ctx, slot)
		if errors.Is(err, storage.ErrSlotNotFound) {
			return nil
		}
		return err
	}
	return store.SaveRecord(ctx, slot, storage.Save{
		RunID:  runID,
		Record: p.ToRecord(),
		Tier:   engine.Board().Tier,
		Turn:   engine.Turn(),
	})
}
