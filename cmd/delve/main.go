// delve is a turn-based tile dungeon crawler for the terminal.
//
// Usage:
//
//	delve                  - Play (resumes the save slot if it exists)
//	delve board            - Print a generated board and its neighbours
//	delve saves            - List save slots
//	delve saves rm <slot>  - Delete a save slot
//
// Global flags:
//
//	--config <path> - Settings file (default: ~/.delve/config.yaml, ./configs/config.yaml)
//	--seed <value>  - RNG seed for reproducible runs
//	--slot <name>   - Save slot
//	--db <path>     - Save database path
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	flagConfig string
	flagSeed   int64
	flagSlot   string
	flagDBPath string
)

func main() {
	// .env is optional; variables may be set directly.
	_ = godotenv.Load()
	setupOTelEnv()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "delve",
	Short: "Delve - a turn-based dungeon crawler in your terminal",
	Long: `Delve drops one adventurer into a dungeon of door-linked rooms.
Every move, attack and ability is one turn; the enemies answer each one.

Keys:
  arrows / hjkl   move, attack, open chests and doors
  . or space      wait
  1-9             use an ability (then click a highlighted tile)
  u<letter>       use or equip an inventory item
  x<letter>       drop an inventory item
  r<1-5>          unequip head, body, weapon, hands or feet
  +<s|d|i|e|v|w>  spend an attribute point
  L<letter>       learn from the skill tree
  Esc             cancel targeting
  q               save and quit`,
	SilenceUsage: true,
	RunE:         runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Settings file")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = from config, else time based)")
	rootCmd.PersistentFlags().StringVar(&flagSlot, "slot", "", "Save slot (default from config)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to the save database (default from config)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(boardCmd)
	rootCmd.AddCommand(savesCmd)
}

// setupOTelEnv maps DELVE_OTLP_* onto the standard OTEL_* variables the
// exporter reads. Explicit OTEL_* settings win.
func setupOTelEnv() {
	for from, to := range map[string]string{
		"DELVE_OTLP_ENDPOINT": "OTEL_EXPORTER_OTLP_ENDPOINT",
		"DELVE_OTLP_HEADERS":  "OTEL_EXPORTER_OTLP_HEADERS",
	} {
		if v := os.Getenv(from); v != "" && os.Getenv(to) == "" {
			os.Setenv(to, v)
		}
	}
}
