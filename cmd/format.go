package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/pitchkit/pitchkit/internal/config"
	"github.com/pitchkit/pitchkit/internal/tablefix"
)

var (
	formatWidth  int
	formatWrite  bool
	formatOutput string
	formatDir    string

	wrapWidth int
)

func init() {
	formatCmd.Flags().IntVar(&formatWidth, "width", 0, "Wrap width (0 uses the widest table or the configured default)")
	formatCmd.Flags().BoolVarP(&formatWrite, "write", "w", false, "Overwrite the input file(s)")
	formatCmd.Flags().StringVarP(&formatOutput, "output", "o", "", "Write the formatted file to this path")
	formatCmd.Flags().StringVar(&formatDir, "dir", "", "Format every matching file in a directory")
	rootCmd.AddCommand(formatCmd)

	wrapCmd.Flags().IntVar(&wrapWidth, "width", 0, "Wrap width (0 uses the widest table or 120)")
	rootCmd.AddCommand(wrapCmd)
}

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Realign tables and wrap long lines",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		width := formatWidth
		if width == 0 {
			width = cfg.Format.MaxWidth
		}

		if formatDir != "" {
			results, err := tablefix.FormatDir(formatDir, cfg.Format.Pattern, tablefix.FileOptions{
				InPlace:  formatWrite,
				MaxWidth: width,
			})
			if err != nil {
				return err
			}
			return printFileResults(results)
		}

		if len(args) == 0 {
			return fmt.Errorf("provide a file or --dir")
		}
		result, err := tablefix.FormatFile(args[0], tablefix.FileOptions{
			OutputPath: formatOutput,
			InPlace:    formatWrite,
			MaxWidth:   width,
		})
		if err != nil {
			return err
		}
		printFileResult(result)
		return nil
	},
}

// wrap reads from a file or stdin and writes the wrapped text to stdout,
// so it composes in pipelines.
var wrapCmd = &cobra.Command{
	Use:   "wrap [file]",
	Short: "Wrap long lines, leaving tables untouched",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var data []byte
		var err error
		if len(args) == 1 {
			data, err = os.ReadFile(args[0])
		} else {
			data, err = io.ReadAll(cmd.InOrStdin())
		}
		if err != nil {
			return err
		}
		r := tablefix.WrapLongLines(string(data), wrapWidth)
		fmt.Fprint(cmd.OutOrStdout(), r.Text)
		for _, c := range r.Changes {
			fmt.Fprintf(os.Stderr, "line %d: wrapped %d chars to %d lines\n", c.Line, c.OriginalLength, c.WrappedTo)
		}
		return nil
	},
}
