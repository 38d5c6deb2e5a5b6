// Package lexicon derives a read-only token index from a catalog snapshot and
// expands free-text queries against it.
package lexicon

import (
	"sort"
	"strings"
	"unicode"

	"github.com/askshelf/askshelf/internal/domain/item"
)

const (
	// minCooccurCount is the minimum pair count for a derived synonym.
	minCooccurCount = 2
	// maxDerivedPerToken caps the derived synonym list per token.
	maxDerivedPerToken = 6
	// minTokenLen is the shortest token admitted anywhere.
	minTokenLen = 3
)

// Lexicon is an immutable derived index: curated synonyms, co-occurrence
// synonyms mined from catalog titles, and the title vocabulary used to gate
// morphological guesses. Built once from a snapshot; replace the whole value
// to refresh (see Holder).
type Lexicon struct {
	derived map[string][]string
	vocab   map[string]struct{}
}

// Build constructs a Lexicon from a full catalog snapshot.
func Build(items []item.Item) *Lexicon {
	vocab := make(map[string]struct{})

	// Per-token co-occurrence counts plus first-seen partner order for the
	// deterministic tie-break.
	counts := make(map[string]map[string]int)
	order := make(map[string][]string)

	for i := range items {
		tokens := TokenizeTitle(items[i].Title())
		for _, t := range tokens {
			vocab[t] = struct{}{}
		}

		seen := uniqueInOrder(tokens)
		for a := 0; a < len(seen); a++ {
			for b := 0; b < len(seen); b++ {
				if a == b {
					continue
				}
				ta, tb := seen[a], seen[b]
				if counts[ta] == nil {
					counts[ta] = make(map[string]int)
				}
				if counts[ta][tb] == 0 {
					order[ta] = append(order[ta], tb)
				}
				counts[ta][tb]++
			}
		}
	}

	derived := make(map[string][]string, len(counts))
	for tok, partners := range counts {
		ranked := make([]string, 0, len(order[tok]))
		for _, p := range order[tok] {
			if partners[p] >= minCooccurCount {
				ranked = append(ranked, p)
			}
		}
		// Descending count; first-seen order breaks ties.
		sort.SliceStable(ranked, func(i, j int) bool {
			return partners[ranked[i]] > partners[ranked[j]]
		})
		if len(ranked) > maxDerivedPerToken {
			ranked = ranked[:maxDerivedPerToken]
		}
		if len(ranked) > 0 {
			derived[tok] = ranked
		}
	}

	return &Lexicon{derived: derived, vocab: vocab}
}

// DerivedSynonyms returns the co-occurrence synonyms for a lowercase token.
func (l *Lexicon) DerivedSynonyms(token string) []string {
	return l.derived[token]
}

// InVocabulary reports whether the token appears in any catalog title.
func (l *Lexicon) InVocabulary(token string) bool {
	_, ok := l.vocab[token]
	return ok
}

// VocabularySize returns the number of distinct title tokens.
func (l *Lexicon) VocabularySize() int {
	return len(l.vocab)
}

// TokenizeTitle splits a title into lowercase tokens of length > 2,
// splitting on anything that is not alphanumeric, '+', or '#'. The '+' and
// '#' exceptions keep language names like "c++" and "c#" intact.
func TokenizeTitle(title string) []string {
	lower := strings.ToLower(title)
	fields := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})

	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) >= minTokenLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func uniqueInOrder(tokens []string) []string {
	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
