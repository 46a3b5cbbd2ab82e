package mcpserver

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pitchkit/pitchkit/internal/config"
	"github.com/pitchkit/pitchkit/internal/document"
	"github.com/pitchkit/pitchkit/internal/evaluate"
	"github.com/pitchkit/pitchkit/internal/tablefix"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	return New(&config.Config{
		Output: config.OutputConfig{
			DiagramsDir: filepath.Join(dir, "diagrams"),
			PDFDir:      filepath.Join(dir, "pdfs"),
			HTMLDir:     filepath.Join(dir, "html"),
		},
		Format: config.FormatConfig{Pattern: "*.txt"},
	}, nil) // nil store: history disabled
}

func decodeResult(t *testing.T, res *mcp.CallToolResult, into any) {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("got %d content items, want 1", len(res.Content))
	}
	text, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content is %T, want *mcp.TextContent", res.Content[0])
	}
	if err := json.Unmarshal([]byte(text.Text), into); err != nil {
		t.Fatalf("decode result %q: %v", text.Text, err)
	}
}

func TestFixTableAlignmentTool(t *testing.T) {
	s := testServer(t)
	res, _, err := s.fixTableAlignment(context.Background(), nil, fixTableArgs{
		Text: "┌───┬────┐\n│x│y│\n└───┴────┘",
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}

	var out struct {
		Text  string         `json:"text"`
		Fixes []tablefix.Fix `json:"fixes"`
	}
	decodeResult(t, res, &out)
	if !strings.Contains(out.Text, "│x  │y   │") {
		t.Errorf("table not realigned:\n%s", out.Text)
	}
	if len(out.Fixes) != 1 || out.Fixes[0].Line != 2 {
		t.Errorf("fixes = %+v", out.Fixes)
	}
}

func TestFormatTextToolWrapsAndFixes(t *testing.T) {
	s := testServer(t)
	long := strings.Repeat("coaching points matter ", 8) // ~184 chars
	res, _, err := s.formatText(context.Background(), nil, wrapArgs{Text: long, MaxWidth: 60})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	var out struct {
		Text  string                `json:"text"`
		Wraps []tablefix.WrapChange `json:"line_wraps"`
	}
	decodeResult(t, res, &out)
	if len(out.Wraps) != 1 {
		t.Fatalf("wraps = %+v", out.Wraps)
	}
	for _, line := range strings.Split(out.Text, "\n") {
		if len(line) > 60 {
			t.Errorf("line exceeds budget: %q", line)
		}
	}
}

func TestFixTextFileToolReportsErrorsInStatus(t *testing.T) {
	s := testServer(t)
	res, _, err := s.fixTextFile(context.Background(), nil, fileArgs{
		InputPath: filepath.Join(t.TempDir(), "missing.txt"),
	})
	if err != nil {
		t.Fatalf("handler should not fail, got %v", err)
	}
	var out tablefix.FileResult
	decodeResult(t, res, &out)
	if out.Status != tablefix.StatusError || out.Error == "" {
		t.Errorf("result = %+v, want error status", out)
	}
}

func TestFormatTextFileToolReportsErrorsInStatus(t *testing.T) {
	s := testServer(t)
	res, _, err := s.formatTextFile(context.Background(), nil, fileArgs{
		InputPath: filepath.Join(t.TempDir(), "missing.txt"),
	})
	if err != nil {
		t.Fatalf("handler should not fail, got %v", err)
	}
	var out tablefix.FileResult
	decodeResult(t, res, &out)
	if out.Status != tablefix.StatusError || out.Error == "" {
		t.Errorf("result = %+v, want error status", out)
	}
}

func TestFormatTextFileToolDefaultsToWidestTable(t *testing.T) {
	s := testServer(t)
	// The table is 150 runes wide, so with max_width omitted the wrap
	// budget comes from the widest table line and the 130-char prose
	// line stays intact.
	table := "┌" + strings.Repeat("─", 148) + "┐\n" +
		"│" + strings.Repeat(" ", 148) + "│\n" +
		"└" + strings.Repeat("─", 148) + "┘\n"
	prose := strings.Repeat("x", 130) + "\n"
	path := filepath.Join(t.TempDir(), "plan.txt")
	if err := os.WriteFile(path, []byte(table+prose), 0644); err != nil {
		t.Fatal(err)
	}

	res, _, err := s.formatTextFile(context.Background(), nil, fileArgs{InputPath: path})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	var out tablefix.FileResult
	decodeResult(t, res, &out)
	if len(out.Wraps) != 0 {
		t.Errorf("wraps = %+v, want none under the table-derived budget", out.Wraps)
	}
	if out.Status != tablefix.StatusNoChanges {
		t.Errorf("status = %q, want %q", out.Status, tablefix.StatusNoChanges)
	}
}

func TestRenderTacticalDiagramTool(t *testing.T) {
	s := testServer(t)
	drillJSON := `{
		"meta": {"title": "4v2 Rondo"},
		"elements": [
			{"id": "a", "x": 40, "y": 30, "team": "home"},
			{"id": "b", "x": 60, "y": 40, "team": "home"}
		],
		"actions": [{"type": "pass", "from_id": "a", "to_id": "b"}]
	}`
	res, _, err := s.renderTacticalDiagram(context.Background(), nil, renderArgs{
		Drill: json.RawMessage(drillJSON),
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	var out struct {
		Path string `json:"path"`
	}
	decodeResult(t, res, &out)
	if _, err := os.Stat(out.Path); err != nil {
		t.Errorf("diagram not written: %v", err)
	}
	if !strings.HasSuffix(out.Path, ".png") {
		t.Errorf("path = %q, want png", out.Path)
	}
}

func TestRenderTacticalDiagramToolRejectsBadDrill(t *testing.T) {
	s := testServer(t)
	_, _, err := s.renderTacticalDiagram(context.Background(), nil, renderArgs{
		Drill: json.RawMessage(`{"meta": {}}`),
	})
	if err == nil {
		t.Fatal("expected error for drill without a title")
	}
}

func TestEvaluateSessionPlanTool(t *testing.T) {
	s := testServer(t)
	res, _, err := s.evaluateSessionPlan(context.Background(), nil, evaluate.Session{
		PitchLength: 40,
		PitchWidth:  30,
		NumPlayers:  8,
		Activities: []evaluate.Activity{
			{Name: "Rondo", Intensity: "medium"},
		},
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	var out evaluate.Evaluation
	decodeResult(t, res, &out)
	if len(out.Activities) != 1 || out.Activities[0].Name != "Rondo" {
		t.Errorf("evaluation = %+v", out)
	}
}

func TestCompileToHTMLTool(t *testing.T) {
	s := testServer(t)
	res, _, err := s.compileToHTML(context.Background(), nil, compileArgs{
		Title: "Session",
		Sections: []document.SectionInput{
			{Type: "markdown", Content: "## Warm-up"},
		},
	})
	if err != nil {
		t.Fatalf("handler: %v", err)
	}
	var out struct {
		Path string `json:"path"`
	}
	decodeResult(t, res, &out)
	data, err := os.ReadFile(out.Path)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if !strings.Contains(string(data), "Warm-up") {
		t.Error("compiled HTML missing section content")
	}
}

func TestCompileRejectsUnknownSectionType(t *testing.T) {
	s := testServer(t)
	_, _, err := s.compileToPDF(context.Background(), nil, compileArgs{
		Title:    "Session",
		Sections: []document.SectionInput{{Type: "video", Content: "x"}},
	})
	if err == nil {
		t.Fatal("expected error for unknown section type")
	}
}
