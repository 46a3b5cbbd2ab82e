package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/pitchkit/pitchkit/internal/config"
	"github.com/pitchkit/pitchkit/internal/tablefix"
)

var (
	fixDir     string
	fixPattern string
	fixWrite   bool
	fixOutput  string
	fixCheck   bool
)

func init() {
	fixCmd.Flags().StringVar(&fixDir, "dir", "", "Fix every matching file in a directory")
	fixCmd.Flags().StringVar(&fixPattern, "pattern", "", "Glob pattern for --dir (default from config, *.txt)")
	fixCmd.Flags().BoolVarP(&fixWrite, "write", "w", false, "Overwrite the input file(s)")
	fixCmd.Flags().StringVarP(&fixOutput, "output", "o", "", "Write the fixed file to this path")
	fixCmd.Flags().BoolVar(&fixCheck, "check", false, "Report needed fixes without writing; exit 1 if any")
	rootCmd.AddCommand(fixCmd)
}

var fixCmd = &cobra.Command{
	Use:   "fix [file]",
	Short: "Realign box-drawing tables in text files",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		if fixDir != "" {
			pattern := fixPattern
			if pattern == "" {
				pattern = cfg.Format.Pattern
			}
			if fixCheck {
				return checkDir(fixDir, pattern)
			}
			results, err := tablefix.FixDir(fixDir, pattern, tablefix.FileOptions{InPlace: fixWrite})
			if err != nil {
				return err
			}
			return printFileResults(results)
		}

		if len(args) == 0 {
			return fmt.Errorf("provide a file or --dir")
		}

		if fixCheck {
			needed, err := checkFile(args[0])
			if err != nil {
				return err
			}
			if needed {
				os.Exit(1)
			}
			return nil
		}

		result, err := tablefix.FixFile(args[0], tablefix.FileOptions{
			OutputPath: fixOutput,
			InPlace:    fixWrite,
		})
		if err != nil {
			return err
		}
		printFileResult(result)
		return nil
	},
}

// checkFile reports needed fixes without writing anything.
func checkFile(path string) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return false, err
	}
	r := tablefix.FixAlignment(string(data))
	printAlignSummary(path, r)
	return len(r.Fixes) > 0, nil
}

func checkDir(dir, pattern string) error {
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return err
	}
	needFixes := false
	for _, match := range matches {
		path := filepath.Join(dir, match)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}
		needed, err := checkFile(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %s: %v\n", path, err)
			continue
		}
		if needed {
			needFixes = true
		}
	}
	if needFixes {
		os.Exit(1)
	}
	return nil
}

func printAlignSummary(path string, r tablefix.AlignResult) {
	if len(r.Fixes) == 0 && len(r.Warnings) == 0 {
		fmt.Printf("%s: tables aligned\n", path)
		return
	}
	for _, f := range r.Fixes {
		for _, msg := range f.Fixes {
			fmt.Printf("%s:%d: %s\n", path, f.Line, msg)
		}
	}
	for _, w := range r.Warnings {
		for _, msg := range w.Warnings {
			fmt.Printf("%s:%d: warning: %s\n", path, w.Line, msg)
		}
	}
}

func printFileResult(r tablefix.FileResult) {
	if r.OutputPath != "" && r.OutputPath != r.InputPath {
		fmt.Printf("%s: %s -> %s (%s)\n", r.Status, r.InputPath, r.OutputPath, r.Message)
		return
	}
	fmt.Printf("%s: %s (%s)\n", r.Status, r.InputPath, r.Message)
}

func printFileResults(results []tablefix.FileResult) error {
	for _, r := range results {
		printFileResult(r)
	}
	return nil
}
