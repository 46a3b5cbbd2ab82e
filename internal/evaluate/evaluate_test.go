package evaluate

import (
	"strings"
	"testing"
)

func TestCategorize(t *testing.T) {
	cases := []struct {
		areaPerPlayer float64
		want          string
	}{
		{10, "very_tight"},
		{19.9, "very_tight"},
		{20, "possession"},
		{49, "possession"},
		{50, "game_like"},
		{99, "game_like"},
		{100, "transitions"},
		{199, "transitions"},
		{200, "fitness"},
		{1000, "fitness"},
	}
	for _, tc := range cases {
		if got, _ := categorize(tc.areaPerPlayer); got != tc.want {
			t.Errorf("categorize(%g) = %q, want %q", tc.areaPerPlayer, got, tc.want)
		}
	}
}

func TestEvaluateActivity(t *testing.T) {
	m := EvaluateActivity(Activity{
		Name:       "rondo",
		AreaLength: 12,
		AreaWidth:  10,
		NumPlayers: 6,
	})
	if m.AreaSqm != 120 {
		t.Errorf("area = %g, want 120", m.AreaSqm)
	}
	if m.AreaPerPlayer != 20 {
		t.Errorf("per player = %g, want 20", m.AreaPerPlayer)
	}
	if m.Category != "possession" {
		t.Errorf("category = %q, want possession", m.Category)
	}
}

func TestEvaluateActivityZeroPlayers(t *testing.T) {
	m := EvaluateActivity(Activity{Name: "solo", AreaLength: 10, AreaWidth: 10})
	if m.AreaPerPlayer != 100 {
		t.Errorf("per player = %g, want 100 (players clamped to 1)", m.AreaPerPlayer)
	}
}

func TestCrampedRecommendation(t *testing.T) {
	m := EvaluateActivity(Activity{
		Name: "tight 1v1", AreaLength: 5, AreaWidth: 5, NumPlayers: 2,
	})
	if len(m.Recommendations) == 0 || !strings.Contains(m.Recommendations[0], "Very cramped") {
		t.Errorf("recommendations = %v, want cramped warning", m.Recommendations)
	}
}

func TestLongTightBoutRecommendation(t *testing.T) {
	m := EvaluateActivity(Activity{
		Name: "grind", AreaLength: 6, AreaWidth: 6, NumPlayers: 2, DurationMinutes: 25,
	})
	found := false
	for _, r := range m.Recommendations {
		if strings.Contains(r, "shorter bouts") {
			found = true
		}
	}
	if !found {
		t.Errorf("recommendations = %v, want a shorter-bouts warning", m.Recommendations)
	}
}

func TestEvaluateSessionInheritsDefaults(t *testing.T) {
	eval := EvaluateSession(Session{
		PitchLength: 40,
		PitchWidth:  30,
		NumPlayers:  12,
		Activities:  []Activity{{Name: "ssg"}},
	})
	if len(eval.Activities) != 1 {
		t.Fatalf("activities = %d, want 1", len(eval.Activities))
	}
	if got := eval.Activities[0].AreaSqm; got != 1200 {
		t.Errorf("area = %g, want inherited 1200", got)
	}
	if got := eval.Activities[0].AreaPerPlayer; got != 100 {
		t.Errorf("per player = %g, want 100", got)
	}
	if !strings.Contains(eval.IntensityProfile[0], "medium intensity, 10min") {
		t.Errorf("profile = %q, want medium/10min defaults", eval.IntensityProfile[0])
	}
}

func TestEvaluateSessionUniformSpacing(t *testing.T) {
	eval := EvaluateSession(Session{
		PitchLength: 20, PitchWidth: 20, NumPlayers: 10,
		Activities: []Activity{{Name: "a"}, {Name: "b"}},
	})
	if len(eval.OverallRecommendations) == 0 ||
		!strings.Contains(eval.OverallRecommendations[0], "similar spacing") {
		t.Errorf("overall = %v, want similar-spacing note", eval.OverallRecommendations)
	}
}

func TestEvaluateSessionAllHighIntensity(t *testing.T) {
	eval := EvaluateSession(Session{
		PitchLength: 40, PitchWidth: 30, NumPlayers: 10,
		Activities: []Activity{
			{Name: "press", Intensity: "high"},
			{Name: "sprint", Intensity: "high", AreaLength: 60, AreaWidth: 40},
		},
	})
	found := false
	for _, r := range eval.OverallRecommendations {
		if strings.Contains(r, "high intensity") {
			found = true
		}
	}
	if !found {
		t.Errorf("overall = %v, want all-high-intensity note", eval.OverallRecommendations)
	}
}
