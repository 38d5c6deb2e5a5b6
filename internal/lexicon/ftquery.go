package lexicon

import "strings"

// minWildcardLen is the shortest cleaned token that also gets a title prefix
// clause ("math" matching "mathematics").
const minWildcardLen = 4

// BuildFTQuery turns an expanded token set into a disjunctive RediSearch
// query scoped to the title and author fields. All clauses are OR-joined:
// recall is maximized here and precision is recovered by the ranker. An
// empty token set yields an empty string and the caller must short-circuit
// before hitting the store.
func BuildFTQuery(tokens []string) string {
	if len(tokens) == 0 {
		return ""
	}

	clauses := make([]string, 0, len(tokens)*3)
	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		// Multi-word aliases ("compiler design") contribute one clause per word.
		for _, word := range strings.Fields(tok) {
			clean := stripNonAlnum(word)
			if clean == "" {
				continue
			}
			if _, dup := seen[clean]; dup {
				continue
			}
			seen[clean] = struct{}{}
			clauses = append(clauses,
				"@title:"+clean,
				"@author:"+clean,
			)
			if len(clean) >= minWildcardLen {
				clauses = append(clauses, "@title:"+clean+"*")
			}
		}
	}

	return strings.Join(clauses, " | ")
}

func stripNonAlnum(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
