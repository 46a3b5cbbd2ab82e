package tablefix

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const misaligned = "┌───┬────┐\n│x│y│\n└───┴────┘\n"

func writeTemp(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestFixFileInPlace(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "plan.txt", misaligned)

	result, err := FixFile(path, FileOptions{InPlace: true})
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if result.Status != StatusFixed {
		t.Errorf("status = %q, want %q", result.Status, StatusFixed)
	}
	if result.OutputPath != path {
		t.Errorf("output = %q, want in-place %q", result.OutputPath, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !strings.Contains(string(data), "│x  │y   │") {
		t.Errorf("file not rewritten:\n%s", data)
	}
}

func TestFixFileSuffixOutput(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "plan.txt", misaligned)

	result, err := FixFile(path, FileOptions{})
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	want := filepath.Join(dir, "plan_fixed.txt")
	if result.OutputPath != want {
		t.Errorf("output = %q, want %q", result.OutputPath, want)
	}
	if original, _ := os.ReadFile(path); string(original) != misaligned {
		t.Errorf("input file must stay untouched")
	}
}

func TestFixFileNoChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "notes.txt", "no tables here\njust notes\n")

	result, err := FixFile(path, FileOptions{InPlace: true})
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if result.Status != StatusNoChanges {
		t.Errorf("status = %q, want %q", result.Status, StatusNoChanges)
	}
	if result.OutputPath != "" {
		t.Errorf("output = %q, want none", result.OutputPath)
	}
}

func TestFixFileWarningsOnlyWritesNothing(t *testing.T) {
	dir := t.TempDir()
	content := "┌───┬────┐\n│ a │ b │ c │\n└───┴────┘\n"
	path := writeTemp(t, dir, "bad.txt", content)

	result, err := FixFile(path, FileOptions{InPlace: true})
	if err != nil {
		t.Fatalf("FixFile: %v", err)
	}
	if result.Status != StatusWarningsOnly {
		t.Errorf("status = %q, want %q", result.Status, StatusWarningsOnly)
	}
	if data, _ := os.ReadFile(path); string(data) != content {
		t.Errorf("file must stay untouched on warnings only")
	}
}

func TestFixFileMissingInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")
	result, err := FixFile(path, FileOptions{})
	if err == nil {
		t.Fatal("want error for missing input")
	}
	// The result must carry the failure too, for callers that surface
	// results instead of errors.
	if result.Status != StatusError {
		t.Errorf("status = %q, want %q", result.Status, StatusError)
	}
	if result.InputPath != path || result.Error == "" || result.Message == "" {
		t.Errorf("error result not populated: %+v", result)
	}
}

func TestFormatFileMissingInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")
	result, err := FormatFile(path, FileOptions{})
	if err == nil {
		t.Fatal("want error for missing input")
	}
	if result.Status != StatusError || result.InputPath != path || result.Error == "" {
		t.Errorf("error result not populated: %+v", result)
	}
}

func TestFormatFileNoChanges(t *testing.T) {
	dir := t.TempDir()
	path := writeTemp(t, dir, "short.txt", "all lines short\nno tables\n")

	result, err := FormatFile(path, FileOptions{InPlace: true})
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	if result.Status != StatusNoChanges {
		t.Errorf("status = %q, want %q", result.Status, StatusNoChanges)
	}
	if result.OutputPath != "" {
		t.Errorf("output = %q, want nothing written", result.OutputPath)
	}
}

func TestFormatFileWrapsAndFixes(t *testing.T) {
	dir := t.TempDir()
	long := "- " + strings.Repeat("coaching point ", 12) + "end\n"
	path := writeTemp(t, dir, "session.txt", misaligned+long)

	result, err := FormatFile(path, FileOptions{InPlace: true, MaxWidth: 60})
	if err != nil {
		t.Fatalf("FormatFile: %v", err)
	}
	if result.Status != StatusFormatted {
		t.Errorf("status = %q, want %q", result.Status, StatusFormatted)
	}
	if len(result.Fixes) == 0 || len(result.Wraps) == 0 {
		t.Errorf("want both fixes and wraps, got %+v", result)
	}
}

func TestFixDir(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "a.txt", misaligned)
	writeTemp(t, dir, "b.txt", "plain text\n")
	writeTemp(t, dir, "skip.md", misaligned)

	results, err := FixDir(dir, "*.txt", FileOptions{InPlace: true})
	if err != nil {
		t.Fatalf("FixDir: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("results = %d, want 2 (pattern must exclude skip.md)", len(results))
	}

	byName := map[string]Status{}
	for _, r := range results {
		byName[filepath.Base(r.InputPath)] = r.Status
	}
	if byName["a.txt"] != StatusFixed {
		t.Errorf("a.txt status = %q, want fixed", byName["a.txt"])
	}
	if byName["b.txt"] != StatusNoChanges {
		t.Errorf("b.txt status = %q, want no_changes", byName["b.txt"])
	}
}

func TestFixDirCapturesPerFileErrors(t *testing.T) {
	dir := t.TempDir()
	writeTemp(t, dir, "good.txt", misaligned)
	// Broken symlink: globbed, but unreadable.
	if err := os.Symlink(filepath.Join(dir, "gone"), filepath.Join(dir, "broken.txt")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	results, err := FixDir(dir, "*.txt", FileOptions{InPlace: true})
	if err != nil {
		t.Fatalf("FixDir: %v", err)
	}

	statuses := map[string]Status{}
	for _, r := range results {
		statuses[filepath.Base(r.InputPath)] = r.Status
	}
	if statuses["broken.txt"] != StatusError {
		t.Errorf("broken.txt status = %q, want error", statuses["broken.txt"])
	}
	if statuses["good.txt"] != StatusFixed {
		t.Errorf("good.txt status = %q, want fixed (siblings must still process)", statuses["good.txt"])
	}
}
