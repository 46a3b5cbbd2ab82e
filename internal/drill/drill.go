// Package drill defines the drill/session definition schema shared by the
// diagram renderer and the MCP tool surface.
package drill

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// PitchView selects how much of the pitch a diagram shows.
type PitchView string

const (
	ViewFull           PitchView = "full"
	ViewHalf           PitchView = "half"
	ViewAttackingThird PitchView = "attacking_third"
)

// Team assigns a marker to a side for default coloring.
type Team string

const (
	TeamHome    Team = "home"
	TeamAway    Team = "away"
	TeamNeutral Team = "neutral"
)

// MarkerType is the glyph drawn for an element on the pitch.
type MarkerType string

const (
	MarkerJersey MarkerType = "jersey"
	MarkerCone   MarkerType = "cone"
	MarkerBall   MarkerType = "ball"
	MarkerDot    MarkerType = "dot"
)

// ActionType is the kind of movement an arrow represents.
type ActionType string

const (
	ActionPass      ActionType = "pass"
	ActionRun       ActionType = "run"
	ActionDribble   ActionType = "dribble"
	ActionShot      ActionType = "shot"
	ActionCurvedRun ActionType = "curved_run"
)

// ZoneType is the shape of a highlighted area.
type ZoneType string

const (
	ZoneRect   ZoneType = "rect"
	ZoneCircle ZoneType = "circle"
)

// Meta carries diagram-level settings. Lengths are meters.
type Meta struct {
	Title       string    `json:"title" yaml:"title"`
	PitchView   PitchView `json:"pitch_view,omitempty" yaml:"pitch_view,omitempty"`
	PitchLength float64   `json:"pitch_length,omitempty" yaml:"pitch_length,omitempty"`
	PitchWidth  float64   `json:"pitch_width,omitempty" yaml:"pitch_width,omitempty"`
}

// PlayerMarker is one positioned element: a player, cone, or ball.
type PlayerMarker struct {
	ID     string     `json:"id" yaml:"id"`
	X      float64    `json:"x" yaml:"x"`
	Y      float64    `json:"y" yaml:"y"`
	Team   Team       `json:"team,omitempty" yaml:"team,omitempty"`
	Label  string     `json:"label,omitempty" yaml:"label,omitempty"`
	Marker MarkerType `json:"marker,omitempty" yaml:"marker,omitempty"`
	Color  string     `json:"color,omitempty" yaml:"color,omitempty"`
}

// Action is a movement arrow from one element toward another element or an
// explicit coordinate.
type Action struct {
	Type   ActionType `json:"type" yaml:"type"`
	FromID string     `json:"from_id" yaml:"from_id"`
	ToID   string     `json:"to_id,omitempty" yaml:"to_id,omitempty"`
	ToX    *float64   `json:"to_x,omitempty" yaml:"to_x,omitempty"`
	ToY    *float64   `json:"to_y,omitempty" yaml:"to_y,omitempty"`
	Color  string     `json:"color,omitempty" yaml:"color,omitempty"`
	Label  string     `json:"label,omitempty" yaml:"label,omitempty"`
}

// Zone is a highlighted pitch area drawn behind the markers.
type Zone struct {
	Type   ZoneType `json:"type" yaml:"type"`
	X      float64  `json:"x" yaml:"x"`
	Y      float64  `json:"y" yaml:"y"`
	Width  float64  `json:"width,omitempty" yaml:"width,omitempty"`
	Height float64  `json:"height,omitempty" yaml:"height,omitempty"`
	Radius float64  `json:"radius,omitempty" yaml:"radius,omitempty"`
	Color  string   `json:"color,omitempty" yaml:"color,omitempty"`
	Alpha  *float64 `json:"alpha,omitempty" yaml:"alpha,omitempty"`
	Label  string   `json:"label,omitempty" yaml:"label,omitempty"`
}

// Definition is a complete drill: metadata plus the elements, movement
// arrows and zones to draw.
type Definition struct {
	Meta     Meta           `json:"meta" yaml:"meta"`
	Elements []PlayerMarker `json:"elements,omitempty" yaml:"elements,omitempty"`
	Actions  []Action       `json:"actions,omitempty" yaml:"actions,omitempty"`
	Zones    []Zone         `json:"zones,omitempty" yaml:"zones,omitempty"`
}

// Defaults applied when fields are omitted.
const (
	DefaultPitchLength = 105.0
	DefaultPitchWidth  = 68.0
	DefaultZoneColor   = "#2196F3"
	DefaultZoneAlpha   = 0.2
)

// ApplyDefaults fills zero-valued optional fields in place.
func (d *Definition) ApplyDefaults() {
	if d.Meta.PitchView == "" {
		d.Meta.PitchView = ViewFull
	}
	if d.Meta.PitchLength == 0 {
		d.Meta.PitchLength = DefaultPitchLength
	}
	if d.Meta.PitchWidth == 0 {
		d.Meta.PitchWidth = DefaultPitchWidth
	}
	for i := range d.Elements {
		if d.Elements[i].Team == "" {
			d.Elements[i].Team = TeamHome
		}
		if d.Elements[i].Marker == "" {
			d.Elements[i].Marker = MarkerJersey
		}
	}
	for i := range d.Zones {
		if d.Zones[i].Color == "" {
			d.Zones[i].Color = DefaultZoneColor
		}
		if d.Zones[i].Alpha == nil {
			alpha := DefaultZoneAlpha
			d.Zones[i].Alpha = &alpha
		}
	}
}

// Validate checks the definition before it reaches the renderer. All schema
// problems are reported at this boundary so the renderer can assume a
// well-formed drill.
func (d *Definition) Validate() error {
	if d.Meta.Title == "" {
		return fmt.Errorf("meta.title is required")
	}
	switch d.Meta.PitchView {
	case ViewFull, ViewHalf, ViewAttackingThird:
	default:
		return fmt.Errorf("unknown pitch_view %q", d.Meta.PitchView)
	}

	ids := make(map[string]bool, len(d.Elements))
	for _, e := range d.Elements {
		if e.ID == "" {
			return fmt.Errorf("element without id")
		}
		if ids[e.ID] {
			return fmt.Errorf("duplicate element id %q", e.ID)
		}
		ids[e.ID] = true
		switch e.Team {
		case TeamHome, TeamAway, TeamNeutral:
		default:
			return fmt.Errorf("element %q: unknown team %q", e.ID, e.Team)
		}
		switch e.Marker {
		case MarkerJersey, MarkerCone, MarkerBall, MarkerDot:
		default:
			return fmt.Errorf("element %q: unknown marker %q", e.ID, e.Marker)
		}
	}

	for i, a := range d.Actions {
		switch a.Type {
		case ActionPass, ActionRun, ActionDribble, ActionShot, ActionCurvedRun:
		default:
			return fmt.Errorf("action %d: unknown type %q", i+1, a.Type)
		}
		if a.FromID == "" {
			return fmt.Errorf("action %d: from_id is required", i+1)
		}
		if !ids[a.FromID] {
			return fmt.Errorf("action %d: from_id %q does not match any element", i+1, a.FromID)
		}
		if a.ToID != "" && !ids[a.ToID] {
			return fmt.Errorf("action %d: to_id %q does not match any element", i+1, a.ToID)
		}
	}

	for i, z := range d.Zones {
		switch z.Type {
		case ZoneRect:
			if z.Width <= 0 || z.Height <= 0 {
				return fmt.Errorf("zone %d: rect requires width and height", i+1)
			}
		case ZoneCircle:
			if z.Radius <= 0 {
				return fmt.Errorf("zone %d: circle requires radius", i+1)
			}
		default:
			return fmt.Errorf("zone %d: unknown type %q", i+1, z.Type)
		}
	}
	return nil
}

// DecodeJSON parses, defaults and validates a drill definition from JSON.
func DecodeJSON(data []byte) (*Definition, error) {
	var d Definition
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse drill: %w", err)
	}
	return finish(&d)
}

// DecodeYAML parses, defaults and validates a drill definition from YAML.
func DecodeYAML(data []byte) (*Definition, error) {
	var d Definition
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse drill: %w", err)
	}
	return finish(&d)
}

func finish(d *Definition) (*Definition, error) {
	d.ApplyDefaults()
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return d, nil
}

// Target resolves where an action points: a referenced element's position,
// an explicit coordinate, or nothing.
func (a Action) Target(byID map[string]PlayerMarker) (x, y float64, ok bool) {
	if a.ToID != "" {
		if e, found := byID[a.ToID]; found {
			return e.X, e.Y, true
		}
	}
	if a.ToX != nil && a.ToY != nil {
		return *a.ToX, *a.ToY, true
	}
	return 0, 0, false
}
