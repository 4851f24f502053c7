package inquire

import "strings"

// NewFuzzyFilter returns a Filter for list-style prompts that accepts
// options by fuzzy matching instead of plain substring search: exact,
// prefix, and substring matches all pass, and so does any option containing
// the query's characters in order.
//
//	sel := inquire.NewSelect("Pick a branch", branches)
//	sel.Filter = inquire.NewFuzzyFilter()
func NewFuzzyFilter() Filter {
	return func(query, option string, _ int) bool {
		return fuzzyScore(strings.ToLower(query), strings.ToLower(option)) > 0
	}
}

// fuzzyScore rates how well a query matches a candidate. Returns 0 for no
// match; higher scores mean better matches. Both arguments are expected in
// lower case.
func fuzzyScore(query, candidate string) int {
	if query == "" {
		return 1
	}
	if candidate == "" {
		return 0
	}

	// Exact match beats everything
	if query == candidate {
		return 1000
	}

	if strings.HasPrefix(candidate, query) {
		return 800 + len(query)*10
	}

	if strings.Contains(candidate, query) {
		return 500 + len(query)*5
	}

	// Character-by-character fuzzy matching: every query rune must appear in
	// the candidate, in order
	score := 0
	candidateRunes := []rune(candidate)
	candidateIdx := 0

	for _, queryChar := range query {
		matched := false
		for candidateIdx < len(candidateRunes) {
			r := candidateRunes[candidateIdx]
			candidateIdx++
			if r == queryChar {
				score += 10
				matched = true
				break
			}
		}
		if !matched {
			return 0
		}
	}

	return score
}
