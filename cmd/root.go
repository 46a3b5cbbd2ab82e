package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pitchkit/pitchkit/internal/artifacts"
	"github.com/pitchkit/pitchkit/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

var configFile string

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default ~/.config/pitchkit/config.yaml)")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if configFile != "" {
			// An explicit file takes precedence over the search paths
			// config.Load registers.
			viper.SetConfigFile(configFile)
		}
	}
}

var rootCmd = &cobra.Command{
	Use:   "pitchkit",
	Short: "Soccer coaching artifacts: fixed-width text repair, diagrams, session plans",
	Long: `pitchkit fixes box-drawing tables in coaching plans, renders tactical
diagrams, evaluates session plans, and compiles them to PDF or HTML.

Examples:
  pitchkit fix plan.txt --write         # realign tables in place
  pitchkit fix --dir plans/ --check     # report misalignment, exit 1 if found
  pitchkit format plan.txt --width 100  # realign tables and wrap prose
  pitchkit render drill.yaml            # drill definition to pitch diagram
  pitchkit evaluate session.yaml        # space-per-player report
  pitchkit compile plan.yaml --format pdf
  pitchkit serve                        # MCP server on stdio`,
	CompletionOptions: cobra.CompletionOptions{DisableDefaultCmd: true},
	Version:           Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openHistory opens the artifact database, or returns nil when history is
// disabled or unavailable. Callers treat a nil store as a no-op recorder.
func openHistory(cfg *config.Config) *artifacts.Store {
	if !cfg.History.Enabled {
		return nil
	}
	store, err := artifacts.Open(cfg.History.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: artifact history disabled: %v\n", err)
		return nil
	}
	return store
}
