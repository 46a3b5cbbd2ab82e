package tablefix

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/muesli/reflow/wordwrap"
)

// DefaultMaxWidth is the wrap width used when a document contains no tables
// and no explicit width was given.
const DefaultMaxWidth = 120

// minWrapWidth is the smallest content width worth wrapping to. Below it,
// wrapping would produce degenerate fragments and the line is passed
// through instead.
const minWrapWidth = 20

// WrapChange records a long line that was split into continuation lines.
type WrapChange struct {
	Line           int `json:"line"`
	OriginalLength int `json:"original_length"`
	WrappedTo      int `json:"wrapped_to"`
}

// WrapResult is the outcome of WrapLongLines.
type WrapResult struct {
	Text    string
	Changes []WrapChange
}

// listPrefixPattern matches a leading list marker: a bullet glyph or a
// numeric ordinal, with its trailing whitespace.
var listPrefixPattern = regexp.MustCompile(`^([-*●├└]\s*|[0-9]+\.\s*)`)

// maxTableWidth returns the width of the widest table line in text, or 0 if
// there are no tables.
func maxTableWidth(text string) int {
	width := 0
	for _, line := range splitLines(text) {
		if IsTableLine(line) {
			if n := utf8.RuneCountInString(line); n > width {
				width = n
			}
		}
	}
	return width
}

// WrapLongLines reflows non-table lines longer than maxWidth. A maxWidth of
// 0 means "use the widest table in the document", falling back to
// DefaultMaxWidth when no tables exist. Table lines are never wrapped
// regardless of width; blank lines and lines within budget pass through
// untouched.
func WrapLongLines(text string, maxWidth int) WrapResult {
	if maxWidth <= 0 {
		maxWidth = maxTableWidth(text)
		if maxWidth == 0 {
			maxWidth = DefaultMaxWidth
		}
	}

	lines := splitLines(text)
	result := WrapResult{}
	out := make([]string, 0, len(lines))

	for i, line := range lines {
		wrapped, ok := wrapLine(line, maxWidth)
		if !ok {
			out = append(out, line)
			continue
		}
		out = append(out, wrapped...)
		result.Changes = append(result.Changes, WrapChange{
			Line:           i + 1,
			OriginalLength: utf8.RuneCountInString(line),
			WrappedTo:      len(wrapped),
		})
	}

	result.Text = joinLines(out)
	return result
}

// wrapLine reflows a single over-width line. ok is false when the line must
// pass through unchanged: it is a table line, blank, within budget, too
// constrained to wrap, or not actually reducible.
func wrapLine(line string, maxWidth int) ([]string, bool) {
	if IsTableLine(line) {
		return nil, false
	}
	content := strings.TrimSpace(line)
	if content == "" {
		return nil, false
	}
	if utf8.RuneCountInString(line) <= maxWidth {
		return nil, false
	}

	indent := line[:len(line)-len(strings.TrimLeftFunc(line, unicode.IsSpace))]
	prefix := listPrefixPattern.FindString(content)
	content = content[len(prefix):]
	continuation := indent + strings.Repeat(" ", utf8.RuneCountInString(prefix))

	firstWidth := maxWidth - utf8.RuneCountInString(indent) - utf8.RuneCountInString(prefix)
	restWidth := maxWidth - utf8.RuneCountInString(continuation)
	if firstWidth < minWrapWidth || restWidth < minWrapWidth {
		return nil, false
	}

	// Greedy wrap; wordwrap breaks on whitespace and hyphens but never
	// splits a single unbreakable token.
	pieces := strings.Split(wordwrap.String(content, firstWidth), "\n")
	if len(pieces) <= 1 {
		return nil, false
	}

	wrapped := []string{indent + prefix + pieces[0]}
	for _, piece := range pieces[1:] {
		for _, re := range strings.Split(wordwrap.String(piece, restWidth), "\n") {
			wrapped = append(wrapped, continuation+re)
		}
	}
	return wrapped, true
}
