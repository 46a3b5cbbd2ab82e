// Package tablefix repairs box-drawing tables embedded in plain text.
//
// Coaching documents are full of hand-edited ASCII tables whose column
// separators drift out of alignment. This package detects those tables,
// recovers the column grid from their border rows, realigns data rows to
// that grid, and reflow-wraps long non-table lines to a target width.
package tablefix

import "strings"

// Box-drawing character sets used for table detection. All offsets in this
// package are rune offsets; the glyphs involved are single display width.
const (
	verticalGlyphs   = "│┃"
	cornerGlyphs     = "┌┐╭╮└┘╯╰"
	teeGlyphs        = "┬┴├┤"
	crossGlyph       = "┼"
	horizontalGlyphs = "─━┄┈╌"
)

// separatorGlyphs are the characters that mark a column boundary in a
// border line: corners, tees and the cross.
const separatorGlyphs = cornerGlyphs + teeGlyphs + crossGlyph

// borderStartGlyphs are the characters a border line may begin with.
const borderStartGlyphs = cornerGlyphs + "├"

// horizontalRatio is the minimum fraction of horizontal-rule glyphs a line
// must contain to count as a border. The threshold tolerates label text
// embedded in a titled separator row.
const horizontalRatio = 0.4

// IsBorderLine reports whether line is a table border (top, bottom, or an
// internal separator row).
func IsBorderLine(line string) bool {
	trimmed := []rune(strings.TrimSpace(line))
	if len(trimmed) == 0 {
		return false
	}
	if !strings.ContainsRune(borderStartGlyphs, trimmed[0]) {
		return false
	}
	horizontal := 0
	for _, r := range trimmed {
		if strings.ContainsRune(horizontalGlyphs, r) {
			horizontal++
		}
	}
	return float64(horizontal) > float64(len(trimmed))*horizontalRatio
}

// IsDataLine reports whether line is a table data row: after trimming it
// starts and ends with a vertical-bar glyph.
func IsDataLine(line string) bool {
	trimmed := []rune(strings.TrimSpace(line))
	if len(trimmed) == 0 {
		return false
	}
	return strings.ContainsRune(verticalGlyphs, trimmed[0]) &&
		strings.ContainsRune(verticalGlyphs, trimmed[len(trimmed)-1])
}

// IsTableLine reports whether line belongs to a table at all.
func IsTableLine(line string) bool {
	return IsBorderLine(line) || IsDataLine(line)
}
