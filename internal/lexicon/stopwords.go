package lexicon

// stopWords are dropped during normalization: articles, pleasantries, and
// generic catalog words that carry no retrieval signal.
var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "was": {}, "were": {},
	"this": {}, "that": {}, "with": {}, "from": {}, "have": {}, "has": {},
	"had": {}, "can": {}, "could": {}, "would": {}, "should": {}, "you": {},
	"your": {}, "about": {}, "any": {}, "all": {}, "there": {}, "their": {},
	"what": {}, "which": {}, "who": {}, "how": {}, "when": {}, "where": {},
	"why": {}, "does": {}, "did": {}, "will": {}, "shall": {}, "may": {},
	"might": {}, "must": {}, "been": {}, "being": {}, "into": {}, "onto": {},

	// pleasantries
	"please": {}, "thanks": {}, "thank": {}, "hello": {}, "hey": {},
	"kindly": {}, "want": {}, "need": {}, "looking": {}, "find": {},
	"show": {}, "give": {}, "get": {}, "tell": {}, "suggest": {},
	"recommend": {}, "some": {}, "good": {}, "best": {}, "nice": {},

	// generic catalog words
	"book": {}, "books": {}, "title": {}, "titles": {}, "copy": {},
	"copies": {}, "library": {}, "catalog": {}, "read": {}, "reading": {},
	"available": {}, "availability": {},
}

// IsStopWord reports whether the lowercased token is in the stop-word set.
func IsStopWord(token string) bool {
	_, ok := stopWords[token]
	return ok
}
