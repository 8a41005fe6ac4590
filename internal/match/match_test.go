package match

import (
	"testing"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name     string
		a        string
		b        string
		expected float64
	}{
		{"identical", "Chrono Trigger", "Chrono Trigger", 1.0},
		{"case and region insensitive", "CHRONO TRIGGER (USA)", "chrono trigger", 1.0},
		{"no overlap", "Chrono Trigger", "Final Fantasy", 0.0},
		{"half overlap vs larger set", "Mega Man", "Mega Man X Collection", 0.5},
		{"empty a", "", "Chrono Trigger", 0.0},
		{"empty b", "Chrono Trigger", "", 0.0},
		{"both empty", "", "", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(tt.a, tt.b)
			if got != tt.expected {
				t.Errorf("Score(%q, %q) = %f, want %f", tt.a, tt.b, got, tt.expected)
			}
		})
	}
}

func TestScore_SizeBias(t *testing.T) {
	// Dividing by max(|A|,|B|) rather than the union: a short canonical
	// title inside a longer noisy one scores intersection/larger, which is
	// higher than plain Jaccard would give.
	got := Score("Doom", "Doom Eternal Deluxe Bundle")
	if got != 0.25 {
		t.Errorf("Expected 0.25, got %f", got)
	}
}

func TestBestMatch_Threshold(t *testing.T) {
	candidates := []Candidate{
		{ID: "1", Title: "Alpha Beta Delta Gamma"},
	}

	// Two of four tokens overlap: score 0.5, below 0.72.
	if _, ok := BestMatch("Alpha Beta", candidates, 0.72); ok {
		t.Error("Expected score 0.5 to be rejected at threshold 0.72")
	}

	// Four of five tokens overlap: score 0.8, above 0.72.
	candidates = []Candidate{
		{ID: "2", Title: "Alpha Beta Delta Gamma Omega"},
	}
	c, ok := BestMatch("Alpha Beta Delta Gamma", candidates, 0.72)
	if !ok {
		t.Fatal("Expected score 0.8 to be accepted at threshold 0.72")
	}
	if c.ID != "2" {
		t.Errorf("Expected candidate 2, got %s", c.ID)
	}
}

func TestBestMatch_FirstSeenWinsOnTie(t *testing.T) {
	candidates := []Candidate{
		{ID: "first", Title: "Chrono Trigger"},
		{ID: "second", Title: "chrono trigger"},
	}

	c, ok := BestMatch("Chrono Trigger", candidates, 0.72)
	if !ok {
		t.Fatal("Expected a match")
	}
	if c.ID != "first" {
		t.Errorf("Expected first-seen candidate to win the tie, got %s", c.ID)
	}
}

func TestBestMatch_EmptyCandidates(t *testing.T) {
	if _, ok := BestMatch("Chrono Trigger", nil, 0.5); ok {
		t.Error("Expected no match for empty candidate list")
	}
}

func TestBestMatch_EmptyTitle(t *testing.T) {
	candidates := []Candidate{{ID: "1", Title: "Chrono Trigger"}}
	if _, ok := BestMatch("", candidates, 0.0); ok {
		t.Error("Expected no match for empty title even at zero threshold")
	}
}
