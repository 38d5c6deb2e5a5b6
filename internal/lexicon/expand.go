package lexicon

import "sort"

// Expand normalizes raw query text into an expanded token set: content
// tokens, curated and derived synonyms, and vocabulary-attested
// morphological variants. The result is deduplicated and sorted; an input of
// only stop words or punctuation yields nil, which callers must treat as "no
// retrievable query".
func (l *Lexicon) Expand(text string) []string {
	raw := normalize(text)
	if len(raw) == 0 {
		return nil
	}

	set := make(map[string]struct{}, len(raw)*3)
	for _, tok := range raw {
		set[tok] = struct{}{}

		// Synonym expansions are deliberately not re-filtered through the
		// stop-word set; see DESIGN.md.
		for _, syn := range CuratedSynonyms(tok) {
			set[syn] = struct{}{}
		}
		for _, syn := range l.DerivedSynonyms(tok) {
			set[syn] = struct{}{}
		}

		for _, variant := range morphVariants(tok) {
			if l.InVocabulary(variant) {
				set[variant] = struct{}{}
			}
		}
	}

	out := make([]string, 0, len(set))
	for tok := range set {
		out = append(out, tok)
	}
	sort.Strings(out)
	return out
}

// normalize lowercases, splits, and drops stop words and short tokens.
func normalize(text string) []string {
	tokens := TokenizeTitle(text)
	out := tokens[:0]
	for _, t := range tokens {
		if IsStopWord(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}
