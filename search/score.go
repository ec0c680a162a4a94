package search

import (
	"strings"
	"unicode/utf8"

	"github.com/pmezard/go-difflib/difflib"
)

// similarityThreshold is the minimum per-word similarity ratio for a query
// word to count as matching a text word.
const similarityThreshold = 0.70

// Field weights for the composite score. The best single weighted field
// wins; fields are never summed, so a strong title hit cannot be drowned
// out by weak matches elsewhere.
const (
	codeWeight        = 0.5
	tagWeight         = 0.8
	descriptionWeight = 0.6
)

// Score computes the fuzzy similarity between a query and a target string,
// in [0, 100]. Matching is tiered, and each tier occupies a disjoint band
// so a stronger kind of match always outranks a weaker one:
//
//	100       exact match (case-folded)
//	[80,100)  query contained in text, weighted toward full-length matches
//	[60,80]   every query word matches some text word, by substring
//	          containment or per-word similarity ratio
//	[0,50]    whole-string similarity ratio fallback
func Score(query, text string) float64 {
	if query == "" || text == "" {
		return 0
	}

	query = strings.ToLower(query)
	text = strings.ToLower(text)

	if query == text {
		return 100
	}

	if strings.Contains(text, query) {
		return 80 + float64(utf8.RuneCountInString(query))/float64(utf8.RuneCountInString(text))*20
	}

	queryWords := strings.Fields(query)
	textWords := strings.Fields(text)

	matched := 0
	for _, queryWord := range queryWords {
		// First text word that clears the bar wins; the matcher does not
		// look for the best candidate.
		for _, textWord := range textWords {
			if strings.Contains(textWord, queryWord) || ratio(queryWord, textWord) > similarityThreshold {
				matched++
				break
			}
		}
	}

	if len(queryWords) > 0 && matched == len(queryWords) {
		return 60 + float64(matched)/float64(len(queryWords))*20
	}

	return ratio(query, text) * 50
}

// ratio is the classic sequence-similarity ratio 2*M/T computed over the
// two strings' characters, where M is the total size of the longest common
// blocks and T the combined length.
func ratio(a, b string) float64 {
	matcher := difflib.NewMatcher(strings.Split(a, ""), strings.Split(b, ""))
	return matcher.Ratio()
}
