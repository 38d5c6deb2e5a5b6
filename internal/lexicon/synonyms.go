package lexicon

// curatedSynonyms is the hand-authored domain synonym table. Keys and values
// are lowercase. Entries are unioned into the expansion without passing back
// through the stop-word filter: a curated synonym of a short or stop-adjacent
// token still surfaces. Recall-maximizing, see DESIGN.md for the noise
// trade-off.
// Keys shorter than three characters would be dropped during normalization
// before the table is consulted, so every key here is length >= 3.
var curatedSynonyms = map[string][]string{
	"dsa":         {"data", "structures", "algorithms"},
	"algorithms":  {"dsa", "algorithm"},
	"algo":        {"algorithm", "algorithms"},
	"machine":     {"machine learning", "artificial intelligence"},
	"learning":    {"machine learning"},
	"dbms":        {"database", "management"},
	"sql":         {"database", "databases"},
	"database":    {"databases", "dbms", "sql"},
	"oop":         {"object", "oriented", "programming"},
	"oops":        {"object", "oriented", "programming"},
	"math":        {"mathematics", "maths"},
	"maths":       {"mathematics", "math"},
	"stats":       {"statistics", "probability"},
	"javascript":  {"web", "frontend"},
	"golang":      {"go programming"},
	"cpp":         {"c++"},
	"networks":    {"networking", "network"},
	"networking":  {"networks", "network"},
	"compiler":    {"compilers", "compiler design"},
	"compilers":   {"compiler", "compiler design"},
	"coding":      {"programming", "code"},
	"programming": {"coding", "code"},
	"web":         {"web development", "frontend", "backend"},
	"physics":     {"mechanics", "electromagnetism"},
	"chemistry":   {"organic", "inorganic"},
	"economics":   {"microeconomics", "macroeconomics"},
	"novel":       {"fiction", "novels"},
	"fiction":     {"novel", "novels"},
}

// CuratedSynonyms returns the curated synonyms for a lowercase token,
// nil when none exist.
func CuratedSynonyms(token string) []string {
	return curatedSynonyms[token]
}
