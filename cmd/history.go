package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pitchkit/pitchkit/internal/artifacts"
	"github.com/pitchkit/pitchkit/internal/config"
)

var historyLimit int

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Number of entries to show")
	rootCmd.AddCommand(historyCmd)
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently generated artifacts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if !cfg.History.Enabled {
			return fmt.Errorf("artifact history is disabled in config")
		}
		store, err := artifacts.Open(cfg.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()

		recent, err := store.Recent(context.Background(), historyLimit)
		if err != nil {
			return err
		}
		if len(recent) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no artifacts recorded yet")
			return nil
		}
		for _, a := range recent {
			title := a.Title
			if title == "" {
				title = "-"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %-8s  %-30s  %s\n",
				a.CreatedAt.Format("2006-01-02 15:04"), a.Kind, title, a.Path)
		}
		return nil
	},
}
