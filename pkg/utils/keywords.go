package utils

import (
	"sort"
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "are": {}, "but": {}, "not": {},
	"you": {}, "all": {}, "can": {}, "had": {}, "her": {}, "was": {},
	"one": {}, "our": {}, "out": {}, "day": {}, "get": {}, "has": {},
	"him": {}, "his": {}, "how": {}, "man": {}, "new": {}, "now": {},
	"old": {}, "see": {}, "two": {}, "way": {}, "who": {}, "did": {},
	"its": {}, "let": {}, "she": {}, "too": {}, "use": {}, "that": {},
	"with": {}, "have": {}, "this": {}, "will": {}, "your": {}, "from": {},
	"they": {}, "know": {}, "want": {}, "been": {}, "good": {}, "much": {},
	"some": {}, "time": {}, "very": {}, "when": {}, "just": {}, "like": {},
	"about": {}, "today": {}, "really": {}, "there": {}, "their": {},
	"would": {}, "could": {}, "where": {}, "which": {}, "while": {},
	"feel": {}, "felt": {}, "feeling": {}, "because": {},
}

type KeywordCount struct {
	Word  string
	Count int
}

// TopKeywords tokenizes the given texts and returns the most frequent
// non-stopword words of four letters or more, descending by count.
func TopKeywords(texts []string, limit int) []KeywordCount {
	counts := make(map[string]int)
	for _, text := range texts {
		for _, word := range tokenize(text) {
			if len(word) < 4 {
				continue
			}
			if _, skip := stopWords[word]; skip {
				continue
			}
			counts[word]++
		}
	}

	keywords := make([]KeywordCount, 0, len(counts))
	for word, count := range counts {
		keywords = append(keywords, KeywordCount{Word: word, Count: count})
	}
	sort.Slice(keywords, func(i, j int) bool {
		if keywords[i].Count != keywords[j].Count {
			return keywords[i].Count > keywords[j].Count
		}
		return keywords[i].Word < keywords[j].Word
	})

	if limit > 0 && len(keywords) > limit {
		keywords = keywords[:limit]
	}
	return keywords
}

func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}
