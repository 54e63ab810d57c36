package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samdwyer/delve/internal/game"
	"github.com/samdwyer/delve/internal/world"
)

var flagTier int

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Print a generated starting board and the boards behind its doors",
	Long: `Generate a starting board the way a new game would and print it, followed
by every board linked through its doors. Use --seed for a repeatable layout.

Examples:
  delve board --seed 7
  delve board --tier 2`,
	Args: cobra.NoArgs,
	RunE: runBoard,
}

func init() {
	boardCmd.Flags().IntVar(&flagTier, "tier", 0, "Tier to generate (default from config)")
}

func runBoard(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	tier := cfg.StartTier
	if flagTier > 0 {
		tier = flagTier
	}
	engine, err := game.New(cmd.Context(), game.Config{
		Seed:       cfg.Seed,
		Logger:     logger,
		Profession: cfg.Profession,
		PlayerName: cfg.PlayerName,
		StartTier:  tier,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	start := engine.Board()
	printBoard(out, "Start", start)
	for _, door := range start.Doors() {
		link, _ := start.Door(door)
		if link == nil || link.Board == nil {
			continue
		}
		d, _ := start.DoorFacing(door)
		printBoard(out, fmt.Sprintf("Door %v (%v), entry %v", door, d, link.Entry), link.Board)
	}
	return nil
}

func printBoard(w io.Writer, title string, b *world.Board) {
	fmt.Fprintf(w, "%s - depth %d, %dx%d, %d enemies\n", title, b.Tier, b.Width, b.Height, len(b.Enemies()))
	fmt.Fprintln(w, strings.Join(b.Rows(), "\n"))
	fmt.Fprintln(w)
}
