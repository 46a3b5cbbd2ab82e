package document

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Layout constants for compiled PDFs, in millimeters.
const (
	pageMargin   = 20.0
	bodyLineH    = 6.0
	cellLineH    = 4.5
	cellPadX     = 1.5
	cellPadY     = 1.0
	tableSpacing = 3.0
)

var tableSeparatorPattern = regexp.MustCompile(`^\|[\s\-:|]+\|$`)

// pdfWriter renders markdown-ish content into an fpdf document.
type pdfWriter struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	left     float64
	contentW float64
	breakAt  float64
}

func newPDFWriter() *pdfWriter {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	return &pdfWriter{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		left:     pageMargin,
		contentW: pageW - 2*pageMargin,
		breakAt:  pageH - pageMargin,
	}
}

// CompilePDF compiles sections into a PDF document. outputPath may be
// empty, in which case a timestamped file is created under outputDir.
// Returns the written path.
func CompilePDF(title string, sections []Section, outputPath, outputDir string) (string, error) {
	w := newPDFWriter()
	w.title(title)

	for _, section := range sections {
		switch s := section.(type) {
		case Markdown:
			w.markdown(s.Text)
		case Image:
			if _, err := os.Stat(s.Path); err != nil {
				continue
			}
			w.image(s.Path, s.Caption)
		}
	}

	if outputPath == "" {
		outputPath = timestampedPath(outputDir, title, "pdf")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := w.pdf.OutputFileAndClose(outputPath); err != nil {
		return "", fmt.Errorf("write pdf: %w", err)
	}
	return outputPath, nil
}

func (w *pdfWriter) title(text string) {
	w.pdf.SetFont("Helvetica", "B", 22)
	w.pdf.SetTextColor(21, 101, 192)
	w.pdf.MultiCell(w.contentW, 10, w.tr(text), "", "L", false)
	w.pdf.Ln(4)
	w.resetBody()
}

func (w *pdfWriter) resetBody() {
	w.pdf.SetFont("Helvetica", "", 11)
	w.pdf.SetTextColor(33, 33, 33)
}

// markdown renders a markdown fragment: headings, bullets, horizontal
// rules, pipe tables and inline bold/italic.
func (w *pdfWriter) markdown(text string) {
	lines := strings.Split(text, "\n")
	i := 0
	for i < len(lines) {
		stripped := strings.TrimSpace(lines[i])

		if strings.HasPrefix(stripped, "|") && i+1 < len(lines) {
			var table []string
			j := i
			for j < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[j]), "|") {
				table = append(table, strings.TrimSpace(lines[j]))
				j++
			}
			if w.renderTable(table) {
				i = j
				continue
			}
		}

		switch {
		case stripped == "":
			w.pdf.Ln(3)
		case stripped == "---" || stripped == "***" || stripped == "___":
			w.pdf.Ln(4)
		case strings.HasPrefix(stripped, "### "):
			w.heading(strings.TrimPrefix(stripped, "### "), 12)
		case strings.HasPrefix(stripped, "## "):
			w.heading(strings.TrimPrefix(stripped, "## "), 14)
		case strings.HasPrefix(stripped, "# "):
			w.heading(strings.TrimPrefix(stripped, "# "), 18)
		case strings.HasPrefix(stripped, "- ") || strings.HasPrefix(stripped, "* "):
			w.bullet(stripped[2:])
		default:
			w.inline(stripped)
			w.pdf.Ln(bodyLineH)
		}
		i++
	}
}

func (w *pdfWriter) heading(text string, size float64) {
	w.pdf.Ln(2)
	w.pdf.SetFont("Helvetica", "B", size)
	w.pdf.SetTextColor(33, 33, 33)
	w.pdf.MultiCell(w.contentW, size*0.5, w.tr(stripInlineMarkers(text)), "", "L", false)
	w.pdf.Ln(1)
	w.resetBody()
}

func (w *pdfWriter) bullet(text string) {
	w.pdf.SetX(w.left + 4)
	w.pdf.Write(bodyLineH, w.tr("• "))
	w.inline(text)
	w.pdf.Ln(bodyLineH)
	w.pdf.SetX(w.left)
}

// inline writes text with **bold** and *italic* style switching.
func (w *pdfWriter) inline(text string) {
	bold, italic := false, false
	var chunk strings.Builder

	flush := func() {
		if chunk.Len() == 0 {
			return
		}
		style := ""
		if bold {
			style += "B"
		}
		if italic {
			style += "I"
		}
		w.pdf.SetFont("Helvetica", style, 11)
		w.pdf.Write(bodyLineH, w.tr(chunk.String()))
		chunk.Reset()
	}

	runes := []rune(text)
	for i := 0; i < len(runes); i++ {
		if runes[i] == '*' {
			if i+1 < len(runes) && runes[i+1] == '*' {
				flush()
				bold = !bold
				i++
				continue
			}
			flush()
			italic = !italic
			continue
		}
		chunk.WriteRune(runes[i])
	}
	flush()
	w.resetBody()
}

func stripInlineMarkers(text string) string {
	return strings.ReplaceAll(text, "*", "")
}

// renderTable draws a markdown pipe table with a repeated header row across
// page breaks. Returns false when the lines do not form a valid table, in
// which case the caller falls back to paragraph rendering.
func (w *pdfWriter) renderTable(lines []string) bool {
	if len(lines) < 2 || !tableSeparatorPattern.MatchString(lines[1]) {
		return false
	}

	parseRow := func(line string) []string {
		cells := strings.Split(strings.Trim(line, "|"), "|")
		for i := range cells {
			cells[i] = stripInlineMarkers(strings.TrimSpace(cells[i]))
		}
		return cells
	}

	header := parseRow(lines[0])
	var rows [][]string
	for _, line := range lines[2:] {
		if !strings.HasPrefix(line, "|") {
			break
		}
		cells := parseRow(line)
		for len(cells) < len(header) {
			cells = append(cells, "")
		}
		rows = append(rows, cells[:len(header)])
	}

	colW := w.contentW / float64(len(header))
	w.pdf.Ln(tableSpacing)
	w.tableRow(header, colW, true)
	for _, row := range rows {
		if w.pdf.GetY()+w.rowHeight(row, colW) > w.breakAt {
			w.pdf.AddPage()
			w.tableRow(header, colW, true)
		}
		w.tableRow(row, colW, false)
	}
	w.pdf.Ln(tableSpacing)
	w.resetBody()
	return true
}

func (w *pdfWriter) rowHeight(cells []string, colW float64) float64 {
	maxLines := 1
	for _, cell := range cells {
		if n := len(w.pdf.SplitText(w.tr(cell), colW-2*cellPadX)); n > maxLines {
			maxLines = n
		}
	}
	return float64(maxLines)*cellLineH + 2*cellPadY
}

func (w *pdfWriter) tableRow(cells []string, colW float64, isHeader bool) {
	if isHeader {
		w.pdf.SetFont("Helvetica", "B", 9)
		w.pdf.SetTextColor(21, 101, 192)
		w.pdf.SetFillColor(227, 242, 253)
	} else {
		w.pdf.SetFont("Helvetica", "", 9)
		w.pdf.SetTextColor(33, 33, 33)
		w.pdf.SetFillColor(255, 255, 255)
	}
	w.pdf.SetDrawColor(189, 189, 189)

	rowH := w.rowHeight(cells, colW)
	y := w.pdf.GetY()
	x := w.left
	for _, cell := range cells {
		w.pdf.Rect(x, y, colW, rowH, "FD")
		w.pdf.SetXY(x+cellPadX, y+cellPadY)
		w.pdf.MultiCell(colW-2*cellPadX, cellLineH, w.tr(cell), "", "L", false)
		x += colW
	}
	w.pdf.SetXY(w.left, y+rowH)
}

// image places an image scaled to the content width, with an optional
// caption underneath.
func (w *pdfWriter) image(path, caption string) {
	opts := fpdf.ImageOptions{ReadDpi: true}
	info := w.pdf.RegisterImageOptions(path, opts)
	if info == nil || w.pdf.Err() {
		// Unsupported image formats are skipped rather than aborting the
		// whole document.
		w.pdf.ClearError()
		return
	}

	imgW := w.contentW
	imgH := imgW * info.Height() / info.Width()
	if w.pdf.GetY()+imgH > w.breakAt {
		w.pdf.AddPage()
	}
	w.pdf.ImageOptions(path, w.left, w.pdf.GetY(), imgW, 0, true, opts, 0, "")
	w.pdf.Ln(2)

	if caption != "" {
		w.pdf.SetFont("Helvetica", "I", 9)
		w.pdf.SetTextColor(117, 117, 117)
		w.pdf.CellFormat(w.contentW, 5, w.tr(caption), "", 1, "C", false, 0, "")
		w.resetBody()
	}
	w.pdf.Ln(3)
}
