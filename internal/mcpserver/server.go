// Package mcpserver exposes the coaching toolset over the Model Context
// Protocol on stdio.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/pitchkit/pitchkit/internal/artifacts"
	"github.com/pitchkit/pitchkit/internal/config"
)

const serverVersion = "0.2.0"

// Server wires tool handlers to configuration and the artifact history
// store. store may be nil when history is disabled.
type Server struct {
	cfg   *config.Config
	store *artifacts.Store
}

func New(cfg *config.Config, store *artifacts.Store) *Server {
	return &Server{cfg: cfg, store: store}
}

// Run serves MCP over stdio until the context is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	server := mcp.NewServer(&mcp.Implementation{Name: "pitchkit", Version: serverVersion}, nil)
	s.register(server)
	return server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) register(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fix_table_alignment",
		Description: "Fix misaligned box-drawing tables in text. Pads or trims cell spacing so every row matches the border grid; reports unfixable rows as warnings.",
	}, s.fixTableAlignment)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "wrap_long_lines",
		Description: "Wrap long plain-text lines to a width budget, preserving indentation and list bullets. Table lines are never wrapped.",
	}, s.wrapLongLines)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "format_text",
		Description: "Fix table alignment and then wrap long lines in one pass.",
	}, s.formatText)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fix_text_file",
		Description: "Fix table alignment in a text file. Writes only when something changed.",
	}, s.fixTextFile)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "format_text_file",
		Description: "Fix table alignment and wrap long lines in a text file.",
	}, s.formatTextFile)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "fix_all_text_files",
		Description: "Fix table alignment in every file in a directory matching a glob pattern (default *.txt).",
	}, s.fixAllTextFiles)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "render_tactical_diagram",
		Description: "Render a drill definition (players, cones, movement arrows, zones) to a pitch diagram image. Returns the output path.",
	}, s.renderTacticalDiagram)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "evaluate_session_plan",
		Description: "Evaluate a session plan's activities for space per player and intensity sequencing.",
	}, s.evaluateSessionPlan)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile_to_pdf",
		Description: "Compile markdown and image sections into a session plan PDF.",
	}, s.compileToPDF)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "compile_to_html",
		Description: "Compile markdown and image sections into a standalone HTML file with embedded images.",
	}, s.compileToHTML)
	mcp.AddTool(server, &mcp.Tool{
		Name:        "text_to_pdf",
		Description: "Convert a fixed-width text file to PDF, preserving column alignment with a monospace font.",
	}, s.textToPDF)
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v any) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
	}, nil, nil
}
