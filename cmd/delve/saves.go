package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "List save slots",
	Args:  cobra.NoArgs,
	RunE:  runSaves,
}

var savesRmCmd = &cobra.Command{
	Use:   "rm <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesRm,
}

func init() {
	savesCmd.AddCommand(savesRmCmd)
}

func runSaves(cmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	slots, err := store.ListSlots(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(slots) == 0 {
		fmt.Fprintln(out, "No saves yet.")
		fmt.Fprintln(out, "Run 'delve' to start a character.")
		return nil
	}

	fmt.Fprintf(out, "  %-12s  %-16s  %-10s  %5s  %5s  %6s  %s\n", "Slot", "Character", "Profession", "Level", "Depth", "Turn", "Saved")
	fmt.Fprintf(out, "  %-12s  %-16s  %-10s  %5s  %5s  %6s  %s\n", "----", "---------", "----------", "-----", "-----", "----", "-----")
	for _, sl := range slots {
		fmt.Fprintf(out, "  %-12s  %-16s  %-10s  %5d  %5d  %6d  %s\n",
			sl.Name, sl.Player, sl.Profession, sl.Level, sl.Tier, sl.Turn,
			sl.SavedAt.Local().Format("2006-01-02 15:04"))
	}
	return nil
}

func runSavesRm(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.DeleteSlot(cmd.Context(), args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s.\n", args[0])
	return nil
}
