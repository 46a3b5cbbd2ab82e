// Package diagram renders drill definitions to pitch images.
package diagram

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fogleman/gg"
	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/pitchkit/pitchkit/internal/drill"
)

// Canvas scale and layout, pixels.
const (
	pxPerMeter = 10.0
	canvasPad  = 30.0
	titleBand  = 48.0
)

// Standard pitch feature dimensions, meters.
const (
	penaltyAreaDepth = 16.5
	penaltyAreaWidth = 40.32
	goalAreaDepth    = 5.5
	goalAreaWidth    = 18.32
	penaltySpotDist  = 11.0
	centerCircleR    = 9.15
)

var teamColors = map[drill.Team]string{
	drill.TeamHome:    "#1565C0",
	drill.TeamAway:    "#C62828",
	drill.TeamNeutral: "#F9A825",
}

type actionStyle struct {
	color  string
	dash   []float64
	curved bool
}

var actionStyles = map[drill.ActionType]actionStyle{
	drill.ActionPass:      {color: "#1565C0"},
	drill.ActionRun:       {color: "#2E7D32", dash: []float64{8, 6}},
	drill.ActionDribble:   {color: "#F57F17", dash: []float64{8, 5, 2, 5}},
	drill.ActionShot:      {color: "#C62828"},
	drill.ActionCurvedRun: {color: "#6A1B9A", dash: []float64{8, 6}, curved: true},
}

var (
	fontOnce  sync.Once
	titleFace font.Face
	labelFace font.Face
	smallFace font.Face
	fontErr   error
)

func loadFonts() {
	newFace := func(data []byte, size float64) (font.Face, error) {
		f, err := opentype.Parse(data)
		if err != nil {
			return nil, err
		}
		return opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	}
	if titleFace, fontErr = newFace(gobold.TTF, 26); fontErr != nil {
		return
	}
	if labelFace, fontErr = newFace(gobold.TTF, 13); fontErr != nil {
		return
	}
	smallFace, fontErr = newFace(goregular.TTF, 11)
}

// canvas maps pitch coordinates (meters, origin bottom-left) onto the
// image, restricted to the visible window for the chosen view.
type canvas struct {
	gc         *gg.Context
	minX, maxX float64
	width      float64 // pitch width in meters
}

func (c *canvas) pt(x, y float64) (float64, float64) {
	return canvasPad + (x-c.minX)*pxPerMeter,
		titleBand + canvasPad + (c.width-y)*pxPerMeter
}

func viewWindow(view drill.PitchView, length float64) (minX, maxX float64) {
	switch view {
	case drill.ViewHalf:
		return length / 2, length
	case drill.ViewAttackingThird:
		return length * 2 / 3, length
	default:
		return 0, length
	}
}

// Render draws a drill to a PNG, or to a one-page PDF wrapping the PNG
// when format is "pdf". The output file is named
// <safe-title>_<timestamp>.<ext> under outputDir; the path is returned.
func Render(d *drill.Definition, format, outputDir string) (string, error) {
	switch format {
	case "", "png":
		format = "png"
	case "pdf":
	default:
		return "", fmt.Errorf("unsupported diagram format %q (use png or pdf)", format)
	}

	fontOnce.Do(loadFonts)
	if fontErr != nil {
		return "", fmt.Errorf("load fonts: %w", fontErr)
	}

	length := d.Meta.PitchLength
	width := d.Meta.PitchWidth
	minX, maxX := viewWindow(d.Meta.PitchView, length)

	imgW := int((maxX-minX)*pxPerMeter + 2*canvasPad)
	imgH := int(width*pxPerMeter + 2*canvasPad + titleBand)
	gc := gg.NewContext(imgW, imgH)
	c := &canvas{gc: gc, minX: minX, maxX: maxX, width: width}

	gc.SetHexColor("#fafafa")
	gc.Clear()

	drawPitch(c, length, width)

	gc.SetFontFace(titleFace)
	gc.SetHexColor("#212121")
	gc.DrawStringAnchored(d.Meta.Title, float64(imgW)/2, titleBand/2+canvasPad/2, 0.5, 0.5)

	byID := make(map[string]drill.PlayerMarker, len(d.Elements))
	for _, e := range d.Elements {
		byID[e.ID] = e
	}

	for _, zone := range d.Zones {
		drawZone(c, zone)
	}
	for _, action := range d.Actions {
		drawAction(c, action, byID)
	}
	for _, elem := range d.Elements {
		drawMarker(c, elem)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("create output directory: %w", err)
	}
	outputPath := diagramPath(outputDir, d.Meta.Title, format)

	if format == "png" {
		if err := gc.SavePNG(outputPath); err != nil {
			return "", fmt.Errorf("save png: %w", err)
		}
		return outputPath, nil
	}
	return outputPath, wrapPNGInPDF(gc, outputPath, imgW, imgH)
}

// wrapPNGInPDF writes the rendered canvas as a temporary PNG and embeds it
// full-width in a single landscape page.
func wrapPNGInPDF(gc *gg.Context, outputPath string, imgW, imgH int) error {
	tmp, err := os.CreateTemp("", "diagram-*.png")
	if err != nil {
		return fmt.Errorf("temp png: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := gc.SavePNG(tmpPath); err != nil {
		return fmt.Errorf("save png: %w", err)
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pageW, pageH := pdf.GetPageSize()
	margin := 10.0
	w := pageW - 2*margin
	h := w * float64(imgH) / float64(imgW)
	if h > pageH-2*margin {
		h = pageH - 2*margin
		w = h * float64(imgW) / float64(imgH)
	}
	pdf.ImageOptions(tmpPath, (pageW-w)/2, (pageH-h)/2, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

func drawPitch(c *canvas, length, width float64) {
	gc := c.gc

	// Grass with mowing stripes.
	x0, y0 := c.pt(c.minX, width)
	x1, y1 := c.pt(c.maxX, 0)
	gc.SetHexColor("#3f7d37")
	gc.DrawRectangle(x0, y0, x1-x0, y1-y0)
	gc.Fill()
	stripe := length / 10
	for i := 0; i < 10; i += 2 {
		sx0 := math.Max(float64(i)*stripe, c.minX)
		sx1 := math.Min(float64(i+1)*stripe, c.maxX)
		if sx1 <= sx0 {
			continue
		}
		px0, py0 := c.pt(sx0, width)
		px1, py1 := c.pt(sx1, 0)
		gc.SetHexColor("#488c3e")
		gc.DrawRectangle(px0, py0, px1-px0, py1-py0)
		gc.Fill()
	}

	gc.SetHexColor("#ffffff")
	gc.SetLineWidth(2)

	rect := func(x, y, w, h float64) {
		px, py := c.pt(x, y+h)
		gc.DrawRectangle(px, py, w*pxPerMeter, h*pxPerMeter)
		gc.Stroke()
	}
	line := func(ax, ay, bx, by float64) {
		pax, pay := c.pt(ax, ay)
		pbx, pby := c.pt(bx, by)
		gc.DrawLine(pax, pay, pbx, pby)
		gc.Stroke()
	}
	spot := func(x, y float64) {
		px, py := c.pt(x, y)
		gc.DrawCircle(px, py, 3)
		gc.Fill()
	}

	rect(0, 0, length, width)
	line(length/2, 0, length/2, width)

	cx, cy := c.pt(length/2, width/2)
	gc.DrawCircle(cx, cy, centerCircleR*pxPerMeter)
	gc.Stroke()
	spot(length/2, width/2)

	// Penalty and goal areas at both ends.
	rect(0, (width-penaltyAreaWidth)/2, penaltyAreaDepth, penaltyAreaWidth)
	rect(length-penaltyAreaDepth, (width-penaltyAreaWidth)/2, penaltyAreaDepth, penaltyAreaWidth)
	rect(0, (width-goalAreaWidth)/2, goalAreaDepth, goalAreaWidth)
	rect(length-goalAreaDepth, (width-goalAreaWidth)/2, goalAreaDepth, goalAreaWidth)
	spot(penaltySpotDist, width/2)
	spot(length-penaltySpotDist, width/2)
}

func drawZone(c *canvas, zone drill.Zone) {
	gc := c.gc
	r, g, b := hexRGB(zone.Color)
	alpha := drill.DefaultZoneAlpha
	if zone.Alpha != nil {
		alpha = *zone.Alpha
	}
	gc.SetRGBA(r, g, b, alpha)

	var labelX, labelY float64
	switch zone.Type {
	case drill.ZoneRect:
		px, py := c.pt(zone.X, zone.Y+zone.Height)
		gc.DrawRoundedRectangle(px, py, zone.Width*pxPerMeter, zone.Height*pxPerMeter, 8)
		gc.Fill()
		labelX, labelY = c.pt(zone.X+zone.Width/2, zone.Y+zone.Height/2)
	case drill.ZoneCircle:
		px, py := c.pt(zone.X, zone.Y)
		gc.DrawCircle(px, py, zone.Radius*pxPerMeter)
		gc.Fill()
		labelX, labelY = px, py
	}

	if zone.Label != "" {
		gc.SetFontFace(labelFace)
		gc.SetHexColor("#ffffff")
		gc.DrawStringAnchored(zone.Label, labelX, labelY, 0.5, 0.5)
	}
}

func drawMarker(c *canvas, elem drill.PlayerMarker) {
	gc := c.gc
	color := elem.Color
	if color == "" {
		color = teamColors[elem.Team]
		if color == "" {
			color = "#333333"
		}
	}

	px, py := c.pt(elem.X, elem.Y)
	gc.SetHexColor(color)

	var topOffset float64
	switch elem.Marker {
	case drill.MarkerCone:
		half := 1.3 * pxPerMeter
		gc.MoveTo(px, py-1.8*pxPerMeter)
		gc.LineTo(px-half, py+0.9*pxPerMeter)
		gc.LineTo(px+half, py+0.9*pxPerMeter)
		gc.ClosePath()
		topOffset = 1.8 * pxPerMeter
	case drill.MarkerBall:
		r := 1.1 * pxPerMeter
		gc.DrawRegularPolygon(6, px, py, r, 0)
		topOffset = r
	case drill.MarkerDot:
		r := 0.7 * pxPerMeter
		gc.DrawCircle(px, py, r)
		topOffset = r
	default: // jersey
		r := 1.5 * pxPerMeter
		gc.DrawCircle(px, py, r)
		topOffset = r
	}
	gc.FillPreserve()
	gc.SetHexColor("#ffffff")
	gc.SetLineWidth(2)
	gc.Stroke()

	if elem.Label != "" {
		gc.SetFontFace(labelFace)
		gc.SetHexColor("#ffffff")
		gc.DrawStringAnchored(elem.Label, px, py-topOffset-4, 0.5, 1)
	}
}

func drawAction(c *canvas, action drill.Action, byID map[string]drill.PlayerMarker) {
	source, ok := byID[action.FromID]
	if !ok {
		return
	}
	tx, ty, ok := action.Target(byID)
	if !ok {
		return
	}

	style := actionStyles[action.Type]
	color := action.Color
	if color == "" {
		color = style.color
	}

	gc := c.gc
	sx, sy := c.pt(source.X, source.Y)
	ex, ey := c.pt(tx, ty)

	gc.SetHexColor(color)
	gc.SetLineWidth(3)
	if style.dash != nil {
		gc.SetDash(style.dash...)
	}

	var headAngle float64
	if style.curved {
		// Control point offset perpendicular to the chord, matching a
		// gentle arc bend.
		mx, my := (sx+ex)/2, (sy+ey)/2
		dx, dy := ex-sx, ey-sy
		if dx == 0 && dy == 0 {
			return
		}
		cpx := mx - dy*0.3
		cpy := my + dx*0.3
		gc.MoveTo(sx, sy)
		gc.QuadraticTo(cpx, cpy, ex, ey)
		gc.Stroke()
		headAngle = math.Atan2(ey-cpy, ex-cpx)
	} else {
		gc.DrawLine(sx, sy, ex, ey)
		gc.Stroke()
		headAngle = math.Atan2(ey-sy, ex-sx)
	}
	gc.SetDash()

	drawArrowhead(gc, ex, ey, headAngle, color)

	if action.Label != "" {
		gc.SetFontFace(smallFace)
		gc.SetHexColor(color)
		gc.DrawStringAnchored(action.Label, (sx+ex)/2, (sy+ey)/2-4, 0.5, 1)
	}
}

func drawArrowhead(gc *gg.Context, x, y, angle float64, color string) {
	const size = 11.0
	gc.SetHexColor(color)
	gc.MoveTo(x, y)
	gc.LineTo(x-size*math.Cos(angle-0.45), y-size*math.Sin(angle-0.45))
	gc.LineTo(x-size*math.Cos(angle+0.45), y-size*math.Sin(angle+0.45))
	gc.ClosePath()
	gc.Fill()
}

func hexRGB(hex string) (r, g, b float64) {
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) != 6 {
		return 0.13, 0.59, 0.95
	}
	var ri, gi, bi int
	if _, err := fmt.Sscanf(hex, "%02x%02x%02x", &ri, &gi, &bi); err != nil {
		return 0.13, 0.59, 0.95
	}
	return float64(ri) / 255, float64(gi) / 255, float64(bi) / 255
}

func diagramPath(dir, title, ext string) string {
	safe := strings.ReplaceAll(title, " ", "_")
	if len(safe) > 30 {
		safe = safe[:30]
	}
	stamp := time.Now().Format("20060102_150405")
	return filepath.Join(dir, fmt.Sprintf("%s_%s.%s", safe, stamp, ext))
}
