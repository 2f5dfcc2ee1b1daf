package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTopKeywords(t *testing.T) {
	texts := []string{
		"The big meeting about the project, great meeting!",
		"Another project update today.",
	}

	keywords := TopKeywords(texts, 10)

	counts := make(map[string]int)
	for _, kw := range keywords {
		counts[kw.Word] = kw.Count
	}

	assert.Equal(t, 2, counts["meeting"])
	assert.Equal(t, 2, counts["project"])
	assert.Equal(t, 1, counts["great"])

	// Stopwords and short words never surface.
	assert.NotContains(t, counts, "the")
	assert.NotContains(t, counts, "about")
	assert.NotContains(t, counts, "big")
}

func TestTopKeywords_OrderAndLimit(t *testing.T) {
	texts := []string{"alpha alpha beta gamma gamma gamma"}

	keywords := TopKeywords(texts, 2)
	assert.Len(t, keywords, 2)
	assert.Equal(t, "gamma", keywords[0].Word)
	assert.Equal(t, 3, keywords[0].Count)
	assert.Equal(t, "alpha", keywords[1].Word)

	// Ties break alphabetically.
	tied := TopKeywords([]string{"zulu echo"}, 0)
	assert.Equal(t, "echo", tied[0].Word)
	assert.Equal(t, "zulu", tied[1].Word)
}

func TestTopKeywords_Empty(t *testing.T) {
	assert.Empty(t, TopKeywords(nil, 10))
	assert.Empty(t, TopKeywords([]string{"a an it"}, 10))
}
