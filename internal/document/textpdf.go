package document

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-pdf/fpdf"
	"github.com/mattn/go-runewidth"
)

// Font sizing bounds for fixed-width text rendering, in points.
const (
	minTextFontSize = 5.0
	maxTextFontSize = 12.0

	// Character columns beyond which the page flips to landscape.
	landscapeThreshold = 130

	textPageMargin = 36.0 // pt
	monoCharRatio  = 0.6  // Courier advance width relative to font size
)

// Status describes the outcome of a text-to-PDF conversion.
type Status string

const (
	StatusConverted Status = "converted"
	StatusError     Status = "error"
)

// FontConfig selects the monospace font used for text rendering. Zero
// value means the built-in Courier. Callers that need box-drawing glyph
// coverage point RegularPath at a TTF such as DejaVu Sans Mono.
type FontConfig struct {
	Family      string
	RegularPath string
}

// monoFontPaths are well-known locations of Unicode-capable monospace
// fonts, probed in order by DefaultFontConfig.
var monoFontPaths = []string{
	"/usr/share/fonts/truetype/dejavu/DejaVuSansMono.ttf",
	"/usr/share/fonts/TTF/DejaVuSansMono.ttf",
	"/usr/share/fonts/dejavu/DejaVuSansMono.ttf",
	"/Library/Fonts/DejaVuSansMono.ttf",
	"/System/Library/Fonts/Menlo.ttc",
}

// DefaultFontConfig probes well-known monospace TTF locations. When none
// exists the zero config (built-in Courier) is returned; box-drawing
// glyphs then degrade but plain tables still render.
func DefaultFontConfig() FontConfig {
	for _, path := range monoFontPaths {
		if _, err := os.Stat(path); err == nil {
			return FontConfig{Family: "mono", RegularPath: path}
		}
	}
	return FontConfig{}
}

func (fc FontConfig) family() string {
	if fc.Family != "" {
		return fc.Family
	}
	return "Courier"
}

// TextPDFResult reports how a text file was rendered.
type TextPDFResult struct {
	Status      Status  `json:"status"`
	InputPath   string  `json:"input_path"`
	OutputPath  string  `json:"output_path,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	Orientation string  `json:"orientation,omitempty"`
	Lines       int     `json:"lines,omitempty"`
	Error       string  `json:"error,omitempty"`
}

// TextPDFOptions controls output placement and font selection.
type TextPDFOptions struct {
	Font       FontConfig
	OutputPath string // explicit output; versioning is skipped when set
	OutputDir  string // defaults to the input file's directory
}

// TextToPDF renders a fixed-width text file to PDF, preserving column
// alignment. The font size is derived from the widest line, and pages
// flip to landscape for very wide content. Existing outputs are never
// overwritten: a _v2, _v3, ... suffix is appended instead.
func TextToPDF(inputPath string, opts TextPDFOptions) (TextPDFResult, error) {
	result := TextPDFResult{Status: StatusError, InputPath: inputPath}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("read input: %w", err)
	}
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")

	maxCols := 1
	for _, line := range lines {
		if w := runewidth.StringWidth(line); w > maxCols {
			maxCols = w
		}
	}

	orientation := "P"
	if maxCols > landscapeThreshold {
		orientation = "L"
	}

	pdf := fpdf.New(orientation, "pt", "A4", "")
	pdf.SetMargins(textPageMargin, textPageMargin, textPageMargin)
	pdf.SetAutoPageBreak(true, textPageMargin)

	family := opts.Font.family()
	if opts.Font.RegularPath != "" {
		pdf.AddUTF8Font(family, "", opts.Font.RegularPath)
	}

	pageW, _ := pdf.GetPageSize()
	available := pageW - 2*textPageMargin
	size := available / (float64(maxCols) * monoCharRatio)
	if size > maxTextFontSize {
		size = maxTextFontSize
	}

	// If even the minimum size cannot fit the columns in portrait, retry
	// in landscape before clamping.
	if size < minTextFontSize && orientation == "P" {
		orientation = "L"
		pdf = fpdf.New(orientation, "pt", "A4", "")
		pdf.SetMargins(textPageMargin, textPageMargin, textPageMargin)
		pdf.SetAutoPageBreak(true, textPageMargin)
		if opts.Font.RegularPath != "" {
			pdf.AddUTF8Font(family, "", opts.Font.RegularPath)
		}
		pageW, _ = pdf.GetPageSize()
		available = pageW - 2*textPageMargin
		size = available / (float64(maxCols) * monoCharRatio)
		if size > maxTextFontSize {
			size = maxTextFontSize
		}
	}
	if size < minTextFontSize {
		size = minTextFontSize
	}

	pdf.SetFont(family, "", size)
	pdf.SetTextColor(0, 0, 0)
	pdf.AddPage()

	tr := func(s string) string { return s }
	if opts.Font.RegularPath == "" {
		tr = pdf.UnicodeTranslatorFromDescriptor("")
	}

	lineH := size * 1.25
	for _, line := range lines {
		pdf.CellFormat(available, lineH, tr(line), "", 1, "L", false, 0, "")
	}

	outputPath := opts.OutputPath
	if outputPath == "" {
		dir := opts.OutputDir
		if dir == "" {
			dir = filepath.Dir(inputPath)
		}
		stem := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
		outputPath = versionedPath(dir, stem, "pdf")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("create output directory: %w", err)
	}
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		result.Error = err.Error()
		return result, fmt.Errorf("write pdf: %w", err)
	}

	result.Status = StatusConverted
	result.OutputPath = outputPath
	result.FontSize = size
	result.Lines = len(lines)
	if orientation == "L" {
		result.Orientation = "landscape"
	} else {
		result.Orientation = "portrait"
	}
	return result, nil
}

// TextDirToPDF renders every file under directory matching pattern
// (doublestar glob, default "*.txt"). Per-file failures are reported in
// their result entries rather than aborting the batch.
func TextDirToPDF(directory, pattern string, opts TextPDFOptions) ([]TextPDFResult, error) {
	if pattern == "" {
		pattern = "*.txt"
	}
	matches, err := doublestar.Glob(os.DirFS(directory), pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", pattern, err)
	}

	var results []TextPDFResult
	for _, match := range matches {
		path := filepath.Join(directory, match)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			continue
		}
		perFile := opts
		perFile.OutputPath = ""
		result, _ := TextToPDF(path, perFile)
		results = append(results, result)
	}
	return results, nil
}

// versionedPath returns dir/stem.ext, or dir/stem_vN.ext for the first N
// that does not already exist.
func versionedPath(dir, stem, ext string) string {
	path := filepath.Join(dir, stem+"."+ext)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return path
	}
	for n := 2; ; n++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_v%d.%s", stem, n, ext))
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path
		}
	}
}
