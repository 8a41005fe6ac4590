// Package match scores title similarity for catalog candidate selection.
package match

import (
	"strings"

	"github.com/cesargomez89/gameshelf/internal/titlenorm"
)

// Candidate is one entry in a finite candidate list.
type Candidate struct {
	ID    string
	Title string
}

// Score returns a similarity score in [0,1] between two titles.
//
// Both titles are reduced to comparison-key token sets; the score is
// |intersection| / max(|A|,|B|). This is deliberately not standard Jaccard:
// dividing by the larger set instead of the union keeps a short canonical
// title from being over-penalized against a longer noisy one.
func Score(a, b string) float64 {
	tokensA := tokenSet(a)
	tokensB := tokenSet(b)

	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	intersection := 0
	for t := range tokensA {
		if tokensB[t] {
			intersection++
		}
	}

	larger := len(tokensA)
	if len(tokensB) > larger {
		larger = len(tokensB)
	}

	return float64(intersection) / float64(larger)
}

// BestMatch returns the highest-scoring candidate at or above threshold.
// Ties are broken by candidate order: the first candidate seen with the
// maximum score wins. Provider order is preserved, not interpreted.
func BestMatch(title string, candidates []Candidate, threshold float64) (Candidate, bool) {
	var best Candidate
	bestScore := -1.0

	for _, c := range candidates {
		s := Score(title, c.Title)
		if s > bestScore {
			bestScore = s
			best = c
		}
	}

	if bestScore < threshold || bestScore <= 0 {
		return Candidate{}, false
	}
	return best, true
}

func tokenSet(title string) map[string]bool {
	fields := strings.Fields(titlenorm.ComparisonKey(title))
	if len(fields) == 0 {
		return nil
	}
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
