package extract

import (
	"cmp"
	"regexp"
	"slices"
	"strings"

	"github.com/matzehuels/wordsphere/pkg/keyword"
)

// Extraction defaults.
const (
	DefaultMaxFeatures = 50
	MinWords           = 5
)

// token matches runs of two or more word characters.
var token = regexp.MustCompile(`[\p{L}\p{M}\p{N}_]{2,}`)

// Keywords scores the unigrams and bigrams of text and returns the strongest
// maxFeatures of them, heaviest first, with weights scaled so the top term
// weighs exactly 1.
//
// Text is lowercased and tokenized into runs of at least two word
// characters, English stop words are dropped, and bigrams are formed from
// adjacent surviving tokens. For a single document every term has the same
// inverse document frequency, so TF-IDF ranking reduces to term frequency.
// Ties are broken alphabetically. Text with fewer than [MinWords]
// whitespace-separated words yields no keywords.
func Keywords(text string, maxFeatures int) []keyword.Keyword {
	if len(strings.Fields(text)) < MinWords {
		return nil
	}
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}

	counts := termCounts(tokens(text))
	if len(counts) == 0 {
		return nil
	}

	type term struct {
		word  string
		count int
	}
	terms := make([]term, 0, len(counts))
	for w, c := range counts {
		terms = append(terms, term{w, c})
	}
	slices.SortFunc(terms, func(a, b term) int {
		if c := cmp.Compare(b.count, a.count); c != 0 {
			return c
		}
		return cmp.Compare(a.word, b.word)
	})
	terms = terms[:min(len(terms), maxFeatures)]

	top := float64(terms[0].count)
	out := make([]keyword.Keyword, len(terms))
	for i, t := range terms {
		out[i] = keyword.Keyword{Word: t.word, Weight: float64(t.count) / top}
	}
	return out
}

// tokens returns the lowercased non-stop-word tokens of text in order.
func tokens(text string) []string {
	raw := token.FindAllString(strings.ToLower(text), -1)
	kept := raw[:0]
	for _, t := range raw {
		if !stopWords[t] {
			kept = append(kept, t)
		}
	}
	return kept
}

// termCounts counts unigrams and adjacent bigrams.
func termCounts(toks []string) map[string]int {
	counts := make(map[string]int, len(toks)*2)
	for i, t := range toks {
		counts[t]++
		if i > 0 {
			counts[toks[i-1]+" "+t]++
		}
	}
	return counts
}
