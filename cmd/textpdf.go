package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pitchkit/pitchkit/internal/artifacts"
	"github.com/pitchkit/pitchkit/internal/config"
	"github.com/pitchkit/pitchkit/internal/document"
)

var (
	textpdfOutput string
	textpdfDir    string
)

func init() {
	textpdfCmd.Flags().StringVarP(&textpdfOutput, "output", "o", "", "Explicit output path")
	textpdfCmd.Flags().StringVar(&textpdfDir, "dir", "", "Convert every matching file in a directory")
	rootCmd.AddCommand(textpdfCmd)
}

var textpdfCmd = &cobra.Command{
	Use:   "textpdf [file]",
	Short: "Convert fixed-width text files to PDF",
	Long: `Renders a text file to PDF with a monospace font so box-drawing
tables keep their alignment. Wide content flips to landscape; existing
outputs are never overwritten.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		font := document.FontConfig{Family: cfg.PDF.FontFamily, RegularPath: cfg.PDF.FontPath}
		if font.RegularPath == "" {
			font = document.DefaultFontConfig()
		}
		opts := document.TextPDFOptions{
			Font:      font,
			OutputDir: cfg.Output.PDFDir,
		}

		store := openHistory(cfg)
		defer store.Close()
		ctx := context.Background()

		if textpdfDir != "" {
			results, err := document.TextDirToPDF(textpdfDir, cfg.Format.Pattern, opts)
			if err != nil {
				return err
			}
			for _, r := range results {
				if r.Status == document.StatusError {
					fmt.Printf("error: %s (%s)\n", r.InputPath, r.Error)
					continue
				}
				recordTextPDF(ctx, store, r)
				fmt.Printf("%s -> %s\n", r.InputPath, r.OutputPath)
			}
			return nil
		}

		if len(args) == 0 {
			return fmt.Errorf("provide a file or --dir")
		}
		opts.OutputPath = textpdfOutput
		result, err := document.TextToPDF(args[0], opts)
		if err != nil {
			return err
		}
		recordTextPDF(ctx, store, result)
		fmt.Println(result.OutputPath)
		return nil
	},
}

func recordTextPDF(ctx context.Context, store *artifacts.Store, r document.TextPDFResult) {
	err := store.Record(ctx, artifacts.Artifact{
		Kind: "text_pdf", Title: filepath.Base(r.InputPath), Path: r.OutputPath, Tool: "textpdf",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: artifact history: %v\n", err)
	}
}
