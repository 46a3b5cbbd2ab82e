package tablefix

import "fmt"

// Fix records the alignment corrections applied to one line.
type Fix struct {
	Line  int      `json:"line"`
	Fixes []string `json:"fixes"`
}

// Warning records alignment defects on one line that could not be corrected.
type Warning struct {
	Line     int      `json:"line"`
	Warnings []string `json:"warnings"`
}

// AlignResult is the outcome of FixAlignment.
type AlignResult struct {
	Text     string
	Fixes    []Fix
	Warnings []Warning
}

// alignRow rewrites a data line so its vertical bars sit at the grid
// offsets. The input is treated as immutable; the corrected line is built
// into an append-only buffer while an explicit cumulative shift tracks how
// far earlier corrections have displaced later columns. Corrections cascade
// left to right, so fixing an early column's drift keeps later columns
// positioned relative to it.
func alignRow(line string, grid ColumnGrid) (string, []string, []string) {
	in := []rune(line)
	observed := pipeOffsets(in)

	if equalOffsets(observed, grid) {
		return line, nil, nil
	}
	if len(observed) != len(grid) {
		warning := fmt.Sprintf("column count mismatch: expected %d, got %d", len(grid), len(observed))
		return line, nil, []string{warning}
	}

	var fixes, warnings []string
	out := make([]rune, 0, len(in))
	copied := 0 // next input offset to copy from
	shift := 0  // net displacement applied by earlier corrections

	for i, want := range grid {
		// Copy cell content up to this separator. len(out) is now the
		// separator's position after earlier corrections.
		out = append(out, in[copied:observed[i]]...)
		copied = observed[i]

		delta := want - (observed[i] + shift)
		switch {
		case delta > 0:
			for range delta {
				out = append(out, ' ')
			}
			shift += delta
			fixes = append(fixes, fmt.Sprintf("col %d: added %d space(s)", i+1, delta))
		case delta < 0:
			available := trailingSpaces(out)
			remove := min(-delta, available)
			if remove > 0 {
				out = out[:len(out)-remove]
				shift -= remove
				fixes = append(fixes, fmt.Sprintf("col %d: removed %d space(s)", i+1, remove))
			} else {
				// Content is too long for the column. Leave the segment
				// untouched; the deficit is reported, not hidden.
				warnings = append(warnings, fmt.Sprintf("col %d: content %d char(s) too long (manual fix needed)", i+1, -delta))
			}
		}

		out = append(out, in[copied])
		copied++
	}
	out = append(out, in[copied:]...)

	return string(out), fixes, warnings
}

// trailingSpaces counts the run of space characters at the end of buf. The
// run never crosses a separator glyph, so only the current cell's padding
// is ever removable.
func trailingSpaces(buf []rune) int {
	n := 0
	for n < len(buf) && buf[len(buf)-1-n] == ' ' {
		n++
	}
	return n
}

func equalOffsets(a []int, b ColumnGrid) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// FixAlignment repairs every table in text. Tables are discovered in a
// single forward scan; each block is fully delimited before its rows are
// aligned so that the final grid, refined across all the block's borders,
// governs rows collected before the fullest border was seen. Lines outside
// tables are passed through byte for byte. Malformed table content degrades
// to warnings, never errors: partial damage in hand-edited documents is
// expected.
func FixAlignment(text string) AlignResult {
	lines := splitLines(text)
	result := AlignResult{}
	out := make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		if !IsBorderLine(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		block, next := scanBlock(lines, i)
		for _, tl := range block.lines {
			if !tl.isData {
				out = append(out, tl.text)
				continue
			}
			fixed, fixes, warnings := alignRow(tl.text, block.grid)
			out = append(out, fixed)
			if len(fixes) > 0 {
				result.Fixes = append(result.Fixes, Fix{Line: tl.num, Fixes: fixes})
			}
			if len(warnings) > 0 {
				result.Warnings = append(result.Warnings, Warning{Line: tl.num, Warnings: warnings})
			}
		}
		i = next
	}

	result.Text = joinLines(out)
	return result
}
