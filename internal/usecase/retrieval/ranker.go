package retrieval

import (
	"sort"
	"strings"

	"github.com/askshelf/askshelf/internal/domain/item"
)

const codingBonus = 0.5

// lexicalCandidates assigns every lexically matched item a synthetic score:
// 1 + matched-token-count/10, plus a fixed bonus when a coding query hits a
// coding-domain item. The floor of 1 keeps any lexical hit above a weak
// cosine score in max fusion.
func lexicalCandidates(items []item.Item, tokens []string, codingQuery bool) []Candidate {
	candidates := make([]Candidate, 0, len(items))
	for i := range items {
		haystack := items[i].SearchText()

		matches := 0
		for _, tok := range tokens {
			if strings.Contains(haystack, tok) {
				matches++
			}
		}

		score := 1 + float64(matches)/10
		if codingQuery && itemIsCoding(haystack) {
			score += codingBonus
		}

		candidates = append(candidates, Candidate{Item: items[i], Score: score})
	}
	return candidates
}

// rank sorts fused candidates, applies the intent-scoped filter, and
// truncates to topN. Ties sort by item ID so output never depends on store
// ordering.
func rank(fused []Candidate, rawQuery string, topN int) []item.Item {
	sort.SliceStable(fused, func(i, j int) bool {
		if fused[i].Score != fused[j].Score {
			return fused[i].Score > fused[j].Score
		}
		return fused[i].Item.ID() < fused[j].Item.ID()
	})

	fused = filterByIntent(fused, rawQuery)

	if len(fused) > topN {
		fused = fused[:topN]
	}

	items := make([]item.Item, 0, len(fused))
	for _, c := range fused {
		items = append(items, c.Item)
	}
	return items
}

// filterByIntent narrows candidates when the query signals a sub-topic.
// DSA wins over the broader coding branch when both match.
func filterByIntent(candidates []Candidate, rawQuery string) []Candidate {
	switch {
	case IsDSAQuery(rawQuery):
		return filterCandidates(candidates, func(c *Candidate) bool {
			return itemIsDSA(c.Item.Title())
		})
	case IsCodingQuery(rawQuery):
		return filterCandidates(candidates, func(c *Candidate) bool {
			return itemIsCoding(c.Item.SearchText())
		})
	default:
		return candidates
	}
}

func filterCandidates(candidates []Candidate, keep func(*Candidate) bool) []Candidate {
	filtered := candidates[:0]
	for i := range candidates {
		if keep(&candidates[i]) {
			filtered = append(filtered, candidates[i])
		}
	}
	return filtered
}
