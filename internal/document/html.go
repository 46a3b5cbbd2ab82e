package document

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
	nethtml "golang.org/x/net/html"
)

// markdown is the shared goldmark instance. Tables matter here: session
// plans lean heavily on them.
var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Table, extension.Strikethrough),
	goldmark.WithRendererOptions(html.WithHardWraps()),
)

// statusIcons maps emoji status markers to styled text that renders
// reliably in PDF output.
var statusIcons = [...][2]string{
	{"✅", `<span class="status-pass">[PASS]</span>`},
	{"❌", `<span class="status-fail">[FAIL]</span>`},
	{"⚠️", `<span class="status-warning">[WARN]</span>`},
	{"⚠", `<span class="status-warning">[WARN]</span>`},
}

// stylesheet is shared by HTML output and print styling.
const stylesheet = `
body {
    font-family: Helvetica, Arial, sans-serif;
    font-size: 10pt;
    line-height: 1.4;
    color: #212121;
}

h1 {
    font-size: 20pt;
    color: #1565C0;
    margin-bottom: 10pt;
    border-bottom: 2px solid #1565C0;
    padding-bottom: 5pt;
}

h2 {
    font-size: 14pt;
    color: #1976D2;
    margin-top: 14pt;
    margin-bottom: 8pt;
}

h3 {
    font-size: 12pt;
    color: #424242;
    margin-top: 10pt;
    margin-bottom: 6pt;
}

p {
    margin-bottom: 6pt;
}

ul, ol {
    margin-bottom: 8pt;
    padding-left: 18pt;
}

li {
    margin-bottom: 3pt;
}

table {
    width: 100%;
    border-collapse: collapse;
    margin: 8pt 0;
    font-size: 9pt;
}

th, td {
    border: 1px solid #9e9e9e;
    padding: 5pt 6pt;
    text-align: left;
    vertical-align: top;
}

th {
    background-color: #e3f2fd;
    font-weight: bold;
    color: #1565C0;
}

.status-pass { color: #2e7d32; font-weight: bold; }
.status-fail { color: #c62828; font-weight: bold; }
.status-warning { color: #f57c00; font-weight: bold; }

.figure {
    margin: 12pt 0;
    text-align: center;
}

.figure img {
    max-width: 100%;
}

.figcaption {
    font-size: 8pt;
    color: #757575;
    font-style: italic;
    margin-top: 5pt;
}

hr {
    border: none;
    border-top: 1px solid #e0e0e0;
    margin: 12pt 0;
}
`

const screenStyles = `
body {
    max-width: 800px;
    margin: 40px auto;
    padding: 20px;
    background-color: #fff;
}
@media print {
    body { margin: 0; padding: 0; max-width: none; }
}
`

// MarkdownToHTML converts markdown to an HTML fragment with table support
// and status icon replacement.
func MarkdownToHTML(text string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(text), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	out := buf.String()
	for _, pair := range statusIcons {
		out = strings.ReplaceAll(out, pair[0], pair[1])
	}
	return out, nil
}

// CompileHTML compiles sections into a standalone HTML file with all images
// embedded as base64 data URIs. outputPath may be empty, in which case a
// timestamped file is created under outputDir. Returns the written path.
func CompileHTML(title string, sections []Section, outputPath, outputDir string) (string, error) {
	body, err := sectionsHTML(title, sections)
	if err != nil {
		return "", err
	}
	body = embedImages(body, "")

	full := fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <title>%s</title>
    <style>
    %s
    %s
    </style>
</head>
<body>
%s
</body>
</html>
`, htmlEscape(title), stylesheet, screenStyles, body)

	if outputPath == "" {
		outputPath = timestampedPath(outputDir, title, "html")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(outputPath, []byte(full), 0644); err != nil {
		return "", fmt.Errorf("write html: %w", err)
	}
	return outputPath, nil
}

func sectionsHTML(title string, sections []Section) (string, error) {
	parts := []string{fmt.Sprintf("<h1>%s</h1>", htmlEscape(title))}
	for _, section := range sections {
		switch s := section.(type) {
		case Markdown:
			fragment, err := MarkdownToHTML(s.Text)
			if err != nil {
				return "", err
			}
			parts = append(parts, fmt.Sprintf(`<div class="section">%s</div>`, fragment))
		case Image:
			if _, err := os.Stat(s.Path); err != nil {
				// Missing images are skipped, matching the tolerance for
				// hand-assembled plans referencing moved diagrams.
				continue
			}
			var caption string
			if s.Caption != "" {
				caption = fmt.Sprintf(`<div class="figcaption">%s</div>`, htmlEscape(s.Caption))
			}
			parts = append(parts, fmt.Sprintf(`<div class="figure"><img src="%s">%s</div>`, s.Path, caption))
		}
	}
	return strings.Join(parts, "\n"), nil
}

// embedImages rewrites every <img src> in src to a base64 data URI.
// Already-embedded and remote images pass through. The rewrite walks the
// HTML token stream and re-emits everything else verbatim.
func embedImages(src, baseDir string) string {
	z := nethtml.NewTokenizer(strings.NewReader(src))
	var sb strings.Builder
	for {
		tt := z.Next()
		if tt == nethtml.ErrorToken {
			break
		}
		raw := string(z.Raw())
		if tt == nethtml.StartTagToken || tt == nethtml.SelfClosingTagToken {
			tok := z.Token()
			if tok.Data == "img" {
				for i, attr := range tok.Attr {
					if attr.Key != "src" {
						continue
					}
					if uri, ok := imageDataURI(attr.Val, baseDir); ok {
						tok.Attr[i].Val = uri
					}
				}
				sb.WriteString(tok.String())
				continue
			}
		}
		sb.WriteString(raw)
	}
	return sb.String()
}

var imageMIMETypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".svg":  "image/svg+xml",
}

func imageDataURI(src, baseDir string) (string, bool) {
	if strings.HasPrefix(src, "data:") || strings.HasPrefix(src, "http") {
		return "", false
	}
	path := src
	if baseDir != "" && !filepath.IsAbs(path) {
		path = filepath.Join(baseDir, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	mime := imageMIMETypes[strings.ToLower(filepath.Ext(path))]
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, base64.StdEncoding.EncodeToString(data)), true
}

func htmlEscape(s string) string {
	return nethtml.EscapeString(s)
}

// timestampedPath builds `<dir>/<safe-title>_<timestamp>.<ext>`.
func timestampedPath(dir, title, ext string) string {
	safe := strings.ReplaceAll(title, " ", "_")
	if len(safe) > 30 {
		safe = safe[:30]
	}
	stamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", safe, stamp, ext))
}
