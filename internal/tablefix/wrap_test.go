package tablefix

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrapLongLinesBulletedLine(t *testing.T) {
	line := "- " + strings.Repeat("word ", 29) + "end" // well over 80
	result := WrapLongLines(line, 80)

	out := strings.Split(result.Text, "\n")
	if len(out) < 2 {
		t.Fatalf("want >= 2 lines, got %d:\n%s", len(out), result.Text)
	}
	if !strings.HasPrefix(out[0], "- ") {
		t.Errorf("first line %q must keep the bullet prefix", out[0])
	}
	for _, cont := range out[1:] {
		if !strings.HasPrefix(cont, "  ") {
			t.Errorf("continuation %q must be indented to the prefix width", cont)
		}
	}
	for i, l := range out {
		if utf8.RuneCountInString(l) > 80 {
			t.Errorf("line %d exceeds width: %q", i+1, l)
		}
	}
	if len(result.Changes) != 1 {
		t.Fatalf("changes = %v, want one entry", result.Changes)
	}
	if c := result.Changes[0]; c.Line != 1 || c.WrappedTo != len(out) {
		t.Errorf("change = %+v, want line 1 wrapped to %d", c, len(out))
	}
}

func TestWrapLongLinesDefaultWidth(t *testing.T) {
	// 100 chars: wraps at 80, passes through at the no-table default of 120.
	line := "- " + strings.Repeat("note ", 19) + "end"

	if result := WrapLongLines(line, 0); result.Text != line {
		t.Errorf("line under default width must pass through, got:\n%s", result.Text)
	}
	if result := WrapLongLines(line, 80); len(result.Changes) != 1 {
		t.Errorf("explicit width 80 must wrap, changes = %v", result.Changes)
	}
}

func TestWrapLongLinesUsesWidestTable(t *testing.T) {
	border := "┌" + strings.Repeat("─", 38) + "┐"
	text := strings.Join([]string{
		border, // widest table line: 40
		"│" + strings.Repeat(" ", 38) + "│",
		"└" + strings.Repeat("─", 38) + "┘",
		strings.Repeat("alpha ", 9) + "omega", // 59 chars, over the table width
	}, "\n")

	result := WrapLongLines(text, 0)
	if len(result.Changes) != 1 {
		t.Fatalf("changes = %v, want the prose line wrapped to the table width", result.Changes)
	}
	if result.Changes[0].Line != 4 {
		t.Errorf("wrapped line = %d, want 4", result.Changes[0].Line)
	}
}

func TestWrapNeverTouchesTables(t *testing.T) {
	wide := "│ " + strings.Repeat("x", 150) + " │"
	text := strings.Join([]string{
		"┌" + strings.Repeat("─", 152) + "┐",
		wide,
		"└" + strings.Repeat("─", 152) + "┘",
	}, "\n")

	result := WrapLongLines(text, 40)
	if result.Text != text {
		t.Errorf("table lines must pass through regardless of width:\n%s", result.Text)
	}
	if len(result.Changes) != 0 {
		t.Errorf("changes = %v, want none", result.Changes)
	}
}

func TestWrapSkipsBlankAndShortLines(t *testing.T) {
	text := "short line\n\n   \nanother"
	result := WrapLongLines(text, 40)
	if result.Text != text {
		t.Errorf("got:\n%q\nwant unchanged input", result.Text)
	}
}

func TestWrapGivesUpOnNarrowBudget(t *testing.T) {
	// Deep indent leaves fewer than 20 columns of content width.
	line := strings.Repeat(" ", 25) + strings.Repeat("deep ", 10)
	result := WrapLongLines(line, 40)
	if result.Text != line {
		t.Errorf("narrow budget must pass through, got %q", result.Text)
	}
}

func TestWrapKeepsUnbreakableToken(t *testing.T) {
	token := strings.Repeat("x", 90)
	result := WrapLongLines(token, 40)
	if result.Text != token {
		t.Errorf("single unbreakable token must pass through, got %q", result.Text)
	}
}

func TestWrapNumericOrdinalPrefix(t *testing.T) {
	line := "3. " + strings.Repeat("drill ", 16) + "done"
	result := WrapLongLines(line, 60)

	out := strings.Split(result.Text, "\n")
	if len(out) < 2 {
		t.Fatalf("want wrapped output, got %q", result.Text)
	}
	if !strings.HasPrefix(out[0], "3. ") {
		t.Errorf("first line %q must keep the ordinal", out[0])
	}
	if !strings.HasPrefix(out[1], "   ") {
		t.Errorf("continuation %q must be indented past the ordinal", out[1])
	}
}
