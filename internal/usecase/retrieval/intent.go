package retrieval

import "strings"

// dsaQueryMarkers detect the data-structures-and-algorithms sub-intent in a
// raw query.
var dsaQueryMarkers = []string{
	"dsa",
	"data structure",
	"algorithm",
}

// dsaTitleMarkers are the title indicators the DSA filter keeps.
var dsaTitleMarkers = []string{
	"data structure",
	"algorithm",
	"dsa",
}

// codingKeywords detect the broader programming intent and mark items as
// coding-domain. Matched as substrings of lowercased text.
var codingKeywords = []string{
	"programming",
	"coding",
	"code",
	"software",
	"computer",
	"compiler",
	"python",
	"java",
	"javascript",
	"golang",
	"c++",
	"algorithm",
	"data structure",
	"database",
	"operating system",
	"network",
	"web",
}

// IsDSAQuery reports whether the lowercased query targets DSA material.
func IsDSAQuery(query string) bool {
	return containsAny(strings.ToLower(query), dsaQueryMarkers)
}

// IsCodingQuery reports whether the lowercased query targets programming
// material. DSA queries are coding queries too.
func IsCodingQuery(query string) bool {
	return containsAny(strings.ToLower(query), codingKeywords)
}

// itemIsDSA checks the item title for a DSA indicator.
func itemIsDSA(title string) bool {
	return containsAny(strings.ToLower(title), dsaTitleMarkers)
}

// itemIsCoding checks title and author text for any coding keyword.
func itemIsCoding(searchText string) bool {
	return containsAny(searchText, codingKeywords)
}

func containsAny(haystack string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(haystack, n) {
			return true
		}
	}
	return false
}
