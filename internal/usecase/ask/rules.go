package ask

import (
	"regexp"
	"strings"
)

// The router is an explicit ordered rule list over the lowercased trimmed
// query. First match wins; the retrieval rule at the end always matches.

var (
	copiesOfRe       = regexp.MustCompile(`how many copies (?:of|for) (.+)`)
	isAvailableRe    = regexp.MustCompile(`(?:is|are) (.+?) available`)
	availabilityOfRe = regexp.MustCompile(`availability (?:of|for) (.+)`)

	availableCountRe = regexp.MustCompile(`how many .*(?:books|titles|items).* available|available books count`)
	totalCountRe     = regexp.MustCompile(`how many (?:books|titles|items)|total (?:books|titles|items)|books in total`)
	totalCopiesRe    = regexp.MustCompile(`how many copies|total copies|copies in total`)
	topicCountRe     = regexp.MustCompile(`how many (.+?) (?:books|titles)`)
)

// catalogKeywords gate the casual short-circuit: a query mentioning none of
// these never reaches the store.
var catalogKeywords = []string{
	"book", "author", "title", "available", "availability", "copy", "copies",
	"search", "find", "read", "library", "shelf", "novel", "textbook",
	"recommend", "suggest", "pages",
}

const casualReply = "I can help you find books in the catalog. " +
	"Ask me about titles, authors, or availability."

// aggregateKind selects one exact-count computation.
type aggregateKind int

const (
	aggNone aggregateKind = iota
	aggAvailableCount
	aggTotalTitles
	aggTotalCopies
	aggTopicCount
)

// matchCopiesOf extracts the subject of a "how many copies of X" question.
func matchCopiesOf(query string) (string, bool) {
	m := copiesOfRe.FindStringSubmatch(query)
	if m == nil {
		return "", false
	}
	return cleanSubject(m[1]), true
}

// matchAvailability extracts the subject of an availability question.
func matchAvailability(query string) (string, bool) {
	if m := isAvailableRe.FindStringSubmatch(query); m != nil {
		return cleanSubject(m[1]), true
	}
	if m := availabilityOfRe.FindStringSubmatch(query); m != nil {
		return cleanSubject(m[1]), true
	}
	return "", false
}

// matchAggregate classifies count questions. Specific patterns go before the
// generic topic-count catch-all so "how many total books" never parses as a
// topic named "total".
func matchAggregate(query string) (aggregateKind, string) {
	switch {
	case availableCountRe.MatchString(query):
		return aggAvailableCount, ""
	case totalCountRe.MatchString(query):
		return aggTotalTitles, ""
	case totalCopiesRe.MatchString(query):
		return aggTotalCopies, ""
	}
	if m := topicCountRe.FindStringSubmatch(query); m != nil {
		topic := cleanSubject(m[1])
		if topic != "" {
			return aggTopicCount, topic
		}
	}
	return aggNone, ""
}

// isCasual reports whether the query mentions no catalog keyword at all.
func isCasual(query string) bool {
	for _, kw := range catalogKeywords {
		if strings.Contains(query, kw) {
			return false
		}
	}
	return true
}

// fillerPhrases are stripped from extracted subjects before retrieval.
var fillerPhrases = []string{
	"do you have", "do we have", "are there", "is there",
	"the book", "a book", "books", "book",
	"in the library", "in stock",
}

// cleanSubject strips filler phrases and punctuation from a captured subject.
func cleanSubject(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.Trim(s, "?!.,")
	for _, f := range fillerPhrases {
		s = strings.ReplaceAll(s, f, " ")
	}
	return strings.Join(strings.Fields(s), " ")
}
