package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pitchkit/pitchkit/internal/artifacts"
	"github.com/pitchkit/pitchkit/internal/config"
	"github.com/pitchkit/pitchkit/internal/diagram"
	"github.com/pitchkit/pitchkit/internal/drill"
)

var (
	renderFormat string
	renderOutDir string
)

func init() {
	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "png", "Output format: png or pdf")
	renderCmd.Flags().StringVar(&renderOutDir, "out-dir", "", "Override the configured diagrams directory")
	rootCmd.AddCommand(renderCmd)
}

var renderCmd = &cobra.Command{
	Use:   "render <drill.json|drill.yaml>",
	Short: "Render a drill definition to a pitch diagram",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		d, err := loadDrill(args[0])
		if err != nil {
			return err
		}

		outDir := renderOutDir
		if outDir == "" {
			outDir = cfg.Output.DiagramsDir
		}
		path, err := diagram.Render(d, renderFormat, outDir)
		if err != nil {
			return err
		}

		store := openHistory(cfg)
		defer store.Close()
		if err := store.Record(context.Background(), artifacts.Artifact{
			Kind: "diagram", Title: d.Meta.Title, Path: path, Tool: "render",
		}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: artifact history: %v\n", err)
		}

		fmt.Println(path)
		return nil
	},
}

func loadDrill(path string) (*drill.Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return drill.DecodeYAML(data)
	default:
		return drill.DecodeJSON(data)
	}
}
