package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/pitchkit/pitchkit/internal/artifacts"
	"github.com/pitchkit/pitchkit/internal/config"
	"github.com/pitchkit/pitchkit/internal/document"
)

var (
	compileFormat string
	compileOutput string
)

// manifest is the on-disk shape of a compile job.
type manifest struct {
	Title    string                  `json:"title" yaml:"title"`
	Sections []document.SectionInput `json:"sections" yaml:"sections"`
}

func init() {
	compileCmd.Flags().StringVarP(&compileFormat, "format", "f", "pdf", "Output format: pdf or html")
	compileCmd.Flags().StringVarP(&compileOutput, "output", "o", "", "Explicit output path")
	rootCmd.AddCommand(compileCmd)
}

var compileCmd = &cobra.Command{
	Use:   "compile <plan.yaml|plan.json>",
	Short: "Compile a session plan manifest to PDF or HTML",
	Long: `Compiles a manifest of ordered sections into a document. A manifest
lists a title and sections of type "markdown" (inline text) or "image"
(a file path with an optional caption):

  title: U12 Tuesday Session
  sections:
    - type: markdown
      content: |
        ## Warm-up
        - 4v2 rondo, two touch
    - type: image
      content: output/diagrams/rondo.png
      caption: Rondo setup`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var m manifest
		switch strings.ToLower(filepath.Ext(args[0])) {
		case ".yaml", ".yml":
			err = yaml.Unmarshal(data, &m)
		default:
			err = json.Unmarshal(data, &m)
		}
		if err != nil {
			return fmt.Errorf("parse manifest: %w", err)
		}
		if m.Title == "" {
			return fmt.Errorf("manifest has no title")
		}
		sections, err := document.ParseSections(m.Sections)
		if err != nil {
			return err
		}

		var path string
		switch compileFormat {
		case "pdf":
			path, err = document.CompilePDF(m.Title, sections, compileOutput, cfg.Output.PDFDir)
		case "html":
			path, err = document.CompileHTML(m.Title, sections, compileOutput, cfg.Output.HTMLDir)
		default:
			return fmt.Errorf("unsupported format %q (use pdf or html)", compileFormat)
		}
		if err != nil {
			return err
		}

		store := openHistory(cfg)
		defer store.Close()
		if err := store.Record(context.Background(), artifacts.Artifact{
			Kind: compileFormat, Title: m.Title, Path: path, Tool: "compile",
		}); err != nil {
			fmt.Fprintf(os.Stderr, "warning: artifact history: %v\n", err)
		}

		fmt.Println(path)
		return nil
	},
}
