package cmd

import (
	"github.com/spf13/cobra"

	"github.com/pitchkit/pitchkit/internal/config"
	"github.com/pitchkit/pitchkit/internal/mcpserver"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server on stdio",
	Long: `Serves the coaching toolset over the Model Context Protocol on
stdin/stdout, for use as an MCP server in an agent or editor config.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		store := openHistory(cfg)
		defer store.Close()
		return mcpserver.New(cfg, store).Run(cmd.Context())
	},
}
