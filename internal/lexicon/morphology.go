package lexicon

import "strings"

// morphVariants generates candidate word forms for a token. Candidates are
// guesses: the caller must only admit those attested in the title vocabulary.
func morphVariants(token string) []string {
	var variants []string

	switch {
	case strings.HasSuffix(token, "ies") && len(token) > 4:
		variants = append(variants, token[:len(token)-3]+"y")
	case strings.HasSuffix(token, "ics"):
		// statistics -> statistic, economics -> economic
		variants = append(variants, token[:len(token)-1])
	case strings.HasSuffix(token, "es") && len(token) > 4:
		variants = append(variants, token[:len(token)-2], token[:len(token)-1])
	case strings.HasSuffix(token, "s") && !strings.HasSuffix(token, "ss") && len(token) > 3:
		variants = append(variants, token[:len(token)-1])
	}

	if !strings.HasSuffix(token, "s") {
		variants = append(variants, token+"s", token+"es")
	}

	if strings.HasSuffix(token, "ic") {
		variants = append(variants, token+"s")
	}

	if strings.HasSuffix(token, "ing") && len(token) > 5 {
		variants = append(variants, token[:len(token)-3])
	}

	return variants
}
