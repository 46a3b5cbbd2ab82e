package tablefix

import "strings"

// FormatResult is the outcome of Format: alignment fixes followed by line
// wrapping on the fixed text.
type FormatResult struct {
	Text     string
	Fixes    []Fix
	Warnings []Warning
	Wraps    []WrapChange
}

// Format fixes table alignment and then wraps long non-table lines. A
// maxWidth of 0 defaults to the widest table in the document (120 with no
// tables).
func Format(text string, maxWidth int) FormatResult {
	aligned := FixAlignment(text)
	wrapped := WrapLongLines(aligned.Text, maxWidth)
	return FormatResult{
		Text:     wrapped.Text,
		Fixes:    aligned.Fixes,
		Warnings: aligned.Warnings,
		Wraps:    wrapped.Changes,
	}
}

func splitLines(text string) []string {
	return strings.Split(text, "\n")
}

func joinLines(lines []string) string {
	return strings.Join(lines, "\n")
}
