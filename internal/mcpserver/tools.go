package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pitchkit/pitchkit/internal/artifacts"
	"github.com/pitchkit/pitchkit/internal/diagram"
	"github.com/pitchkit/pitchkit/internal/document"
	"github.com/pitchkit/pitchkit/internal/drill"
	"github.com/pitchkit/pitchkit/internal/evaluate"
	"github.com/pitchkit/pitchkit/internal/tablefix"
)

type fixTableArgs struct {
	Text string `json:"text" jsonschema:"text containing box-drawing tables to realign"`
}

type wrapArgs struct {
	Text     string `json:"text" jsonschema:"text to wrap"`
	MaxWidth int    `json:"max_width,omitempty" jsonschema:"wrap budget in characters; 0 uses the widest table or 120"`
}

type fileArgs struct {
	InputPath  string `json:"input_path" jsonschema:"path of the text file to fix"`
	OutputPath string `json:"output_path,omitempty" jsonschema:"explicit output path"`
	InPlace    bool   `json:"in_place,omitempty" jsonschema:"overwrite the input file"`
	MaxWidth   int    `json:"max_width,omitempty"`
}

type dirArgs struct {
	Directory string `json:"directory" jsonschema:"directory to scan"`
	Pattern   string `json:"pattern,omitempty" jsonschema:"glob pattern, default *.txt"`
	InPlace   bool   `json:"in_place,omitempty"`
}

type renderArgs struct {
	Drill  json.RawMessage `json:"drill" jsonschema:"drill definition object (meta, elements, actions, zones)"`
	Format string          `json:"format,omitempty" jsonschema:"png (default) or pdf"`
}

type compileArgs struct {
	Title      string                  `json:"title" jsonschema:"document title"`
	Sections   []document.SectionInput `json:"sections" jsonschema:"ordered markdown/image sections"`
	OutputPath string                  `json:"output_path,omitempty"`
}

type textPDFArgs struct {
	InputPath  string `json:"input_path" jsonschema:"fixed-width text file to convert"`
	OutputPath string `json:"output_path,omitempty"`
}

// textResponse is the shared wire shape for the in-memory text tools.
type textResponse struct {
	Text     string                `json:"text"`
	Fixes    []tablefix.Fix        `json:"fixes"`
	Warnings []tablefix.Warning    `json:"warnings"`
	Wraps    []tablefix.WrapChange `json:"line_wraps,omitempty"`
}

func (s *Server) fixTableAlignment(ctx context.Context, req *mcp.CallToolRequest, in fixTableArgs) (*mcp.CallToolResult, any, error) {
	r := tablefix.FixAlignment(in.Text)
	return jsonResult(textResponse{Text: r.Text, Fixes: r.Fixes, Warnings: r.Warnings})
}

func (s *Server) wrapLongLines(ctx context.Context, req *mcp.CallToolRequest, in wrapArgs) (*mcp.CallToolResult, any, error) {
	r := tablefix.WrapLongLines(in.Text, in.MaxWidth)
	return jsonResult(struct {
		Text  string                `json:"text"`
		Wraps []tablefix.WrapChange `json:"line_wraps"`
	}{r.Text, r.Changes})
}

func (s *Server) formatText(ctx context.Context, req *mcp.CallToolRequest, in wrapArgs) (*mcp.CallToolResult, any, error) {
	r := tablefix.Format(in.Text, in.MaxWidth)
	return jsonResult(textResponse{Text: r.Text, Fixes: r.Fixes, Warnings: r.Warnings, Wraps: r.Wraps})
}

func (s *Server) fixTextFile(ctx context.Context, req *mcp.CallToolRequest, in fileArgs) (*mcp.CallToolResult, any, error) {
	// I/O failures come back as error-status results, so the tool call
	// succeeds and the client reads the failure from the status field.
	result, _ := tablefix.FixFile(in.InputPath, tablefix.FileOptions{
		OutputPath: in.OutputPath,
		InPlace:    in.InPlace,
	})
	return jsonResult(result)
}

func (s *Server) formatTextFile(ctx context.Context, req *mcp.CallToolRequest, in fileArgs) (*mcp.CallToolResult, any, error) {
	maxWidth := in.MaxWidth
	if maxWidth == 0 {
		maxWidth = s.cfg.Format.MaxWidth
	}
	result, _ := tablefix.FormatFile(in.InputPath, tablefix.FileOptions{
		OutputPath: in.OutputPath,
		InPlace:    in.InPlace,
		MaxWidth:   maxWidth,
	})
	return jsonResult(result)
}

func (s *Server) fixAllTextFiles(ctx context.Context, req *mcp.CallToolRequest, in dirArgs) (*mcp.CallToolResult, any, error) {
	pattern := in.Pattern
	if pattern == "" {
		pattern = s.cfg.Format.Pattern
	}
	results, err := tablefix.FixDir(in.Directory, pattern, tablefix.FileOptions{InPlace: in.InPlace})
	if err != nil {
		return nil, nil, err
	}
	return jsonResult(struct {
		Files []tablefix.FileResult `json:"files"`
	}{results})
}

func (s *Server) renderTacticalDiagram(ctx context.Context, req *mcp.CallToolRequest, in renderArgs) (*mcp.CallToolResult, any, error) {
	d, err := drill.DecodeJSON(in.Drill)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid drill: %w", err)
	}
	path, err := diagram.Render(d, in.Format, s.cfg.Output.DiagramsDir)
	if err != nil {
		return nil, nil, err
	}
	s.record(ctx, "diagram", d.Meta.Title, path, "render_tactical_diagram")
	return jsonResult(struct {
		Path string `json:"path"`
	}{path})
}

func (s *Server) evaluateSessionPlan(ctx context.Context, req *mcp.CallToolRequest, in evaluate.Session) (*mcp.CallToolResult, any, error) {
	return jsonResult(evaluate.EvaluateSession(in))
}

func (s *Server) compileToPDF(ctx context.Context, req *mcp.CallToolRequest, in compileArgs) (*mcp.CallToolResult, any, error) {
	sections, err := document.ParseSections(in.Sections)
	if err != nil {
		return nil, nil, err
	}
	path, err := document.CompilePDF(in.Title, sections, in.OutputPath, s.cfg.Output.PDFDir)
	if err != nil {
		return nil, nil, err
	}
	s.record(ctx, "pdf", in.Title, path, "compile_to_pdf")
	return jsonResult(struct {
		Path string `json:"path"`
	}{path})
}

func (s *Server) compileToHTML(ctx context.Context, req *mcp.CallToolRequest, in compileArgs) (*mcp.CallToolResult, any, error) {
	sections, err := document.ParseSections(in.Sections)
	if err != nil {
		return nil, nil, err
	}
	path, err := document.CompileHTML(in.Title, sections, in.OutputPath, s.cfg.Output.HTMLDir)
	if err != nil {
		return nil, nil, err
	}
	s.record(ctx, "html", in.Title, path, "compile_to_html")
	return jsonResult(struct {
		Path string `json:"path"`
	}{path})
}

func (s *Server) textToPDF(ctx context.Context, req *mcp.CallToolRequest, in textPDFArgs) (*mcp.CallToolResult, any, error) {
	font := document.FontConfig{Family: s.cfg.PDF.FontFamily, RegularPath: s.cfg.PDF.FontPath}
	if font.RegularPath == "" {
		font = document.DefaultFontConfig()
	}
	out, err := document.TextToPDF(in.InputPath, document.TextPDFOptions{
		Font:       font,
		OutputPath: in.OutputPath,
		OutputDir:  s.cfg.Output.PDFDir,
	})
	if err != nil {
		return jsonResult(out)
	}
	s.record(ctx, "text_pdf", filepath.Base(in.InputPath), out.OutputPath, "text_to_pdf")
	return jsonResult(out)
}

// record logs a generated artifact, ignoring history failures: a broken
// history database must not fail the tool call.
func (s *Server) record(ctx context.Context, kind, title, path, tool string) {
	err := s.store.Record(ctx, artifacts.Artifact{Kind: kind, Title: title, Path: path, Tool: tool})
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: artifact history: %v\n", err)
	}
}
