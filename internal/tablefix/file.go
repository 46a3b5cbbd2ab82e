package tablefix

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Status classifies the outcome of a file-level operation.
type Status string

const (
	StatusNoChanges    Status = "no_changes"
	StatusFixed        Status = "fixed"
	StatusPartial      Status = "partial"
	StatusWarningsOnly Status = "warnings_only"
	StatusFormatted    Status = "formatted"
	StatusError        Status = "error"
)

// FileResult reports what a file-level operation did to one file.
// OutputPath is empty when nothing was written.
type FileResult struct {
	Status     Status       `json:"status"`
	InputPath  string       `json:"input_path"`
	OutputPath string       `json:"output_path,omitempty"`
	Fixes      []Fix        `json:"fixes,omitempty"`
	Warnings   []Warning    `json:"warnings,omitempty"`
	Wraps      []WrapChange `json:"line_wraps,omitempty"`
	Message    string       `json:"message"`
	Error      string       `json:"error,omitempty"`
}

// FileOptions controls where file-level operations write their output.
type FileOptions struct {
	// OutputPath overrides the destination. Empty means derive it from
	// InPlace or a suffix-qualified sibling of the input.
	OutputPath string
	// InPlace overwrites the input file when OutputPath is empty.
	InPlace bool
	// MaxWidth is the wrap width for FormatFile. 0 means auto.
	MaxWidth int
}

// errorResult reports an I/O failure for one file. The result mirrors the
// error so callers that surface results instead of errors still see the
// failure.
func errorResult(inputPath string, err error) FileResult {
	return FileResult{
		Status:    StatusError,
		InputPath: inputPath,
		Error:     err.Error(),
		Message:   fmt.Sprintf("failed: %v", err),
	}
}

// FixFile repairs table alignment in a text file. Nothing is written when
// no fixes were computed; warnings alone never modify the file.
func FixFile(inputPath string, opts FileOptions) (FileResult, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		err = fmt.Errorf("read %s: %w", inputPath, err)
		return errorResult(inputPath, err), err
	}

	aligned := FixAlignment(string(data))
	result := FileResult{
		InputPath: inputPath,
		Fixes:     aligned.Fixes,
		Warnings:  aligned.Warnings,
	}

	if len(aligned.Fixes) == 0 && len(aligned.Warnings) == 0 {
		result.Status = StatusNoChanges
		result.Message = "No alignment issues found"
		return result, nil
	}

	if len(aligned.Fixes) > 0 {
		outputPath := resolveOutputPath(inputPath, opts, "_fixed")
		if err := os.WriteFile(outputPath, []byte(aligned.Text), 0644); err != nil {
			err = fmt.Errorf("write %s: %w", outputPath, err)
			return errorResult(inputPath, err), err
		}
		result.OutputPath = outputPath
	}

	switch {
	case len(aligned.Fixes) > 0 && len(aligned.Warnings) > 0:
		result.Status = StatusPartial
	case len(aligned.Fixes) > 0:
		result.Status = StatusFixed
	default:
		result.Status = StatusWarningsOnly
	}
	result.Message = summarize(aligned.Fixes, aligned.Warnings, nil)
	return result, nil
}

// FormatFile fixes table alignment and wraps long lines in a text file.
// Nothing is written when zero fixes and zero wraps were computed.
func FormatFile(inputPath string, opts FileOptions) (FileResult, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		err = fmt.Errorf("read %s: %w", inputPath, err)
		return errorResult(inputPath, err), err
	}

	formatted := Format(string(data), opts.MaxWidth)
	result := FileResult{
		InputPath: inputPath,
		Fixes:     formatted.Fixes,
		Warnings:  formatted.Warnings,
		Wraps:     formatted.Wraps,
	}

	if len(formatted.Fixes) == 0 && len(formatted.Warnings) == 0 && len(formatted.Wraps) == 0 {
		result.Status = StatusNoChanges
		result.Message = "No changes needed"
		return result, nil
	}

	if len(formatted.Fixes) > 0 || len(formatted.Wraps) > 0 {
		outputPath := resolveOutputPath(inputPath, opts, "_formatted")
		if err := os.WriteFile(outputPath, []byte(formatted.Text), 0644); err != nil {
			err = fmt.Errorf("write %s: %w", outputPath, err)
			return errorResult(inputPath, err), err
		}
		result.OutputPath = outputPath
		result.Status = StatusFormatted
	} else {
		result.Status = StatusWarningsOnly
	}
	result.Message = summarize(formatted.Fixes, formatted.Warnings, formatted.Wraps)
	return result, nil
}

// FixDir repairs table alignment in every file matching pattern under
// directory. An I/O failure on one file is captured as an error entry so
// sibling files still process.
func FixDir(directory, pattern string, opts FileOptions) ([]FileResult, error) {
	return batch(directory, pattern, func(path string) (FileResult, error) {
		return FixFile(path, opts)
	})
}

// FormatDir formats every file matching pattern under directory.
func FormatDir(directory, pattern string, opts FileOptions) ([]FileResult, error) {
	return batch(directory, pattern, func(path string) (FileResult, error) {
		return FormatFile(path, opts)
	})
}

func batch(directory, pattern string, op func(string) (FileResult, error)) ([]FileResult, error) {
	if pattern == "" {
		pattern = "*.txt"
	}
	matches, err := doublestar.Glob(os.DirFS(directory), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s in %s: %w", pattern, directory, err)
	}

	results := make([]FileResult, 0, len(matches))
	for _, match := range matches {
		path := filepath.Join(directory, match)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}
		// Per-file failures come back as error results so siblings still
		// process.
		result, _ := op(path)
		results = append(results, result)
	}
	return results, nil
}

// resolveOutputPath picks the destination for a file operation: an explicit
// path, the input itself, or a suffix-qualified sibling.
func resolveOutputPath(inputPath string, opts FileOptions, suffix string) string {
	if opts.OutputPath != "" {
		return opts.OutputPath
	}
	if opts.InPlace {
		return inputPath
	}
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(filepath.Base(inputPath), ext)
	return filepath.Join(filepath.Dir(inputPath), stem+suffix+ext)
}

func summarize(fixes []Fix, warnings []Warning, wraps []WrapChange) string {
	var parts []string
	if n := countFixes(fixes); n > 0 {
		parts = append(parts, fmt.Sprintf("Fixed %d issue(s) on %d line(s)", n, len(fixes)))
	}
	if n := countWarnings(warnings); n > 0 {
		parts = append(parts, fmt.Sprintf("%d unfixable issue(s) on %d line(s) need manual attention", n, len(warnings)))
	}
	if len(wraps) > 0 {
		parts = append(parts, fmt.Sprintf("Wrapped %d long line(s)", len(wraps)))
	}
	return strings.Join(parts, "; ")
}

func countFixes(fixes []Fix) int {
	n := 0
	for _, f := range fixes {
		n += len(f.Fixes)
	}
	return n
}

func countWarnings(warnings []Warning) int {
	n := 0
	for _, w := range warnings {
		n += len(w.Warnings)
	}
	return n
}
