// Package evaluate scores session plans on spatial and intensity metrics.
package evaluate

import "fmt"

// Activity is one planned exercise within a session. Zero-valued fields
// inherit from the session when evaluated.
type Activity struct {
	Name            string  `json:"name" yaml:"name"`
	AreaLength      float64 `json:"area_length,omitempty" yaml:"area_length,omitempty"`
	AreaWidth       float64 `json:"area_width,omitempty" yaml:"area_width,omitempty"`
	NumPlayers      int     `json:"num_players,omitempty" yaml:"num_players,omitempty"`
	DurationMinutes float64 `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	Intensity       string  `json:"intensity,omitempty" yaml:"intensity,omitempty"` // low/medium/high
}

// Session describes the plan to evaluate.
type Session struct {
	PitchLength float64    `json:"pitch_length" yaml:"pitch_length"`
	PitchWidth  float64    `json:"pitch_width" yaml:"pitch_width"`
	NumPlayers  int        `json:"num_players" yaml:"num_players"`
	Activities  []Activity `json:"activities" yaml:"activities"`
}

// ActivityMetrics is the evaluation of one activity.
type ActivityMetrics struct {
	Name            string   `json:"name"`
	AreaSqm         float64  `json:"area_sqm"`
	AreaPerPlayer   float64  `json:"area_per_player"`
	Category        string   `json:"category"`
	Recommendations []string `json:"recommendations"`
}

// Evaluation is the full session result.
type Evaluation struct {
	Activities             []ActivityMetrics `json:"activities"`
	OverallRecommendations []string          `json:"overall_recommendations"`
	IntensityProfile       []string          `json:"intensity_profile"`
}

// threshold maps an area-per-player ceiling to a spacing category.
type threshold struct {
	ceiling     float64
	category    string
	description string
}

var thresholds = []threshold{
	{20, "very_tight", "Very Tight — suited for 1v1/close-quarters technique drills"},
	{50, "possession", "Possession — good for rondos, small-sided possession games"},
	{100, "game_like", "Game-Like — realistic match spacing, SSGs"},
	{200, "transitions", "Transitions — good for counter-attacks, transition exercises"},
}

const openDescription = "Fitness/Open — large area, consider if players need more constraint"

func categorize(areaPerPlayer float64) (string, string) {
	for _, t := range thresholds {
		if areaPerPlayer < t.ceiling {
			return t.category, t.description
		}
	}
	return "fitness", openDescription
}

func recommend(a Activity, areaPerPlayer float64, category string) []string {
	var recs []string
	if areaPerPlayer < 15 {
		recs = append(recs, fmt.Sprintf(
			"Very cramped (%.0fm²/player). Consider enlarging the area or reducing player count.",
			areaPerPlayer))
	}
	if areaPerPlayer > 250 {
		recs = append(recs, fmt.Sprintf(
			"Very spacious (%.0fm²/player). Consider shrinking the area to increase engagement.",
			areaPerPlayer))
	}
	if a.DurationMinutes > 20 && category == "very_tight" {
		recs = append(recs,
			"Long duration in a tight space may cause fatigue and reduce quality. "+
				"Consider splitting into shorter bouts.")
	}
	return recs
}

// EvaluateActivity computes metrics for one fully-specified activity.
func EvaluateActivity(a Activity) ActivityMetrics {
	area := a.AreaLength * a.AreaWidth
	players := a.NumPlayers
	if players < 1 {
		players = 1
	}
	perPlayer := area / float64(players)
	category, _ := categorize(perPlayer)
	return ActivityMetrics{
		Name:            a.Name,
		AreaSqm:         area,
		AreaPerPlayer:   perPlayer,
		Category:        category,
		Recommendations: recommend(a, perPlayer, category),
	}
}

// EvaluateSession evaluates every activity, filling omitted activity fields
// from the session, and derives session-level recommendations.
func EvaluateSession(s Session) Evaluation {
	eval := Evaluation{}
	allHigh := true
	anyIntensity := false

	for _, raw := range s.Activities {
		a := raw
		if a.AreaLength == 0 {
			a.AreaLength = s.PitchLength
		}
		if a.AreaWidth == 0 {
			a.AreaWidth = s.PitchWidth
		}
		if a.NumPlayers == 0 {
			a.NumPlayers = s.NumPlayers
		}
		if a.DurationMinutes == 0 {
			a.DurationMinutes = 10
		}

		metrics := EvaluateActivity(a)
		eval.Activities = append(eval.Activities, metrics)

		intensity := a.Intensity
		if intensity == "" {
			intensity = "medium"
		} else {
			anyIntensity = true
		}
		if intensity != "high" {
			allHigh = false
		}
		eval.IntensityProfile = append(eval.IntensityProfile, fmt.Sprintf(
			"%s: %s intensity, %gmin, %s", a.Name, intensity, a.DurationMinutes, metrics.Category))
	}

	categories := map[string]bool{}
	for _, m := range eval.Activities {
		categories[m.Category] = true
	}
	if len(categories) == 1 && len(eval.Activities) > 0 {
		eval.OverallRecommendations = append(eval.OverallRecommendations,
			"All activities use similar spacing. Consider varying area sizes "+
				"to challenge players differently.")
	}
	if anyIntensity && allHigh {
		eval.OverallRecommendations = append(eval.OverallRecommendations,
			"All activities are high intensity. Include recovery or technical "+
				"activities to manage load.")
	}
	return eval
}
