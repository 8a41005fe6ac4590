// Package titlenorm turns raw external titles into search strings and
// comparison keys. All transforms are deterministic and side-effect free.
package titlenorm

import (
	"strings"
	"unicode"
)

// editionSuffixes is the vocabulary of edition qualifiers stripped from
// search strings. These never help a metadata search and frequently hurt it.
var editionSuffixes = map[string]bool{
	"deluxe":      true,
	"gold":        true,
	"ultimate":    true,
	"complete":    true,
	"anniversary": true,
	"remastered":  true,
	"definitive":  true,
	"edition":     true,
}

// Demash inserts separating spaces at casing boundaries and letter/digit
// boundaries. Some sources store titles with the spaces squeezed out
// ("TigerWoodsPGATOUR07"); Demash recovers word breaks without touching
// titles that already have them.
func Demash(title string) string {
	runes := []rune(title)
	var b strings.Builder
	b.Grow(len(title) + 8)

	for i, r := range runes {
		if i > 0 {
			prev := runes[i-1]
			switch {
			case unicode.IsLower(prev) && unicode.IsUpper(r):
				b.WriteRune(' ')
			case unicode.IsLetter(prev) && unicode.IsDigit(r):
				b.WriteRune(' ')
			case unicode.IsDigit(prev) && unicode.IsLetter(r):
				b.WriteRune(' ')
			case unicode.IsUpper(prev) && unicode.IsUpper(r) && i+1 < len(runes) && unicode.IsLower(runes[i+1]):
				// End of an acronym run: "PGATour" -> "PGA Tour"
				b.WriteRune(' ')
			}
		}
		b.WriteRune(r)
	}

	return b.String()
}

// CleanForSearch produces a string suitable for querying a metadata
// provider: demashed, with trademark glyphs, bracketed annotations and
// trailing edition qualifiers removed.
func CleanForSearch(title string) string {
	s := Demash(title)
	s = stripTrademarks(s)
	s = stripBrackets(s)

	// A trailing colon clause made of edition vocabulary ("Game: Gold
	// Edition") is cut from the colon onward.
	if idx := strings.LastIndex(s, ":"); idx != -1 {
		if isEditionClause(s[idx+1:]) {
			s = s[:idx]
		}
	}

	// Trailing edition words without a colon ("Game Deluxe Edition").
	fields := strings.Fields(s)
	for len(fields) > 1 && editionSuffixes[strings.ToLower(fields[len(fields)-1])] {
		fields = fields[:len(fields)-1]
	}

	return strings.Join(fields, " ")
}

// ComparisonKey produces the equality key used for exact-match lookups:
// lower-cased, "&" expanded to "and", bracketed content and punctuation
// stripped, whitespace collapsed. Two titles with equal keys are treated
// as the same title.
func ComparisonKey(title string) string {
	s := stripBrackets(title)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, "&", " and ")

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == '\'' || r == '’':
			// Apostrophes are dropped, not spaced, so "Schitt's" and
			// "Schitts" produce the same key.
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(' ')
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// isEditionClause reports whether a colon clause consists of edition
// vocabulary (plus incidental words like "the").
func isEditionClause(clause string) bool {
	fields := strings.Fields(strings.ToLower(clause))
	if len(fields) == 0 {
		return false
	}
	matched := false
	for _, f := range fields {
		if editionSuffixes[f] {
			matched = true
		}
	}
	return matched
}

func stripTrademarks(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '™', '®', '©':
			return -1
		}
		return r
	}, s)
}

// stripBrackets removes parenthetical and bracketed content, innermost
// last: "Chrono Trigger (USA) [!]" -> "Chrono Trigger".
func stripBrackets(s string) string {
	for _, pair := range [][2]string{{"(", ")"}, {"[", "]"}} {
		for {
			start := strings.LastIndex(s, pair[0])
			end := strings.LastIndex(s, pair[1])
			if start == -1 || end == -1 || end <= start {
				break
			}
			s = strings.TrimSpace(s[:start] + s[end+1:])
		}
	}
	return strings.TrimSpace(s)
}
