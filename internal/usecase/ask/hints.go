package ask

import (
	"regexp"
	"strconv"
)

// hintRule attaches boost terms to an auxiliary intent detected in the raw
// query. Boosts feed the expander, never the embedding text.
type hintRule struct {
	pattern *regexp.Regexp
	boosts  []string
}

var hintRules = []hintRule{
	{regexp.MustCompile(`exam|semester|revision|test prep`), []string{"solved", "examples", "practice"}},
	{regexp.MustCompile(`practice|exercise|problem`), []string{"problems", "exercises", "workbook"}},
	{regexp.MustCompile(`project`), []string{"projects", "practical", "applications"}},
	{regexp.MustCompile(`diagram|illustrat|visual`), []string{"illustrated", "diagrams"}},
	{regexp.MustCompile(`simple|easy|beginner|basics`), []string{"basic", "introduction", "easy"}},
	{regexp.MustCompile(`hands.?on|practical`), []string{"practical", "applied"}},
	{regexp.MustCompile(`graphic`), []string{"graphics", "visualization"}},
}

// hintBoosts collects boost terms for every auxiliary intent present in the
// lowercased query. Order follows the rule table for determinism.
func hintBoosts(query string) []string {
	var boosts []string
	seen := make(map[string]struct{})
	for _, r := range hintRules {
		if !r.pattern.MatchString(query) {
			continue
		}
		for _, b := range r.boosts {
			if _, dup := seen[b]; dup {
				continue
			}
			seen[b] = struct{}{}
			boosts = append(boosts, b)
		}
	}
	return boosts
}

var pageLimitRe = regexp.MustCompile(`(?:under|below|less than|within|max(?:imum)?(?: of)?)\s+(\d+)\s+pages`)

// parsePageLimit extracts an optional page-count ceiling from the query.
func parsePageLimit(query string) (int, bool) {
	m := pageLimitRe.FindStringSubmatch(query)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}
