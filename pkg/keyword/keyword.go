// Package keyword defines the data exchanged between the analysis service and
// the word-cloud client.
//
// A [Keyword] is a (word, weight) pair. A [Result] is the ordered list of
// keywords produced for one article, in the rank order the service chose.
// Clients never re-sort it: the first keyword is the most relevant one.
package keyword

import "time"

// OverlaySize is the number of keywords shown in the "Top words" summary.
const OverlaySize = 5

// Keyword is a single extracted term and its normalized weight.
//
// Weight is expected to lie in [0, 1] but is not validated here; consumers
// that need a bounded value clamp it themselves. Duplicate words are
// permitted and are never merged.
type Keyword struct {
	Word   string  `json:"word" bson:"word"`
	Weight float64 `json:"weight" bson:"weight"`
}

// Result is one analysis of one article.
//
// ID is assigned when the result is created (client side on receipt, server
// side on extraction) and is the identity used to memoize derived layouts:
// two results with equal words but different IDs are laid out independently.
type Result struct {
	ID        string    `json:"id,omitempty"`
	URL       string    `json:"url,omitempty"`
	Words     []Keyword `json:"words"`
	CreatedAt time.Time `json:"created_at,omitzero"`
}

// Response is the wire shape of a successful POST /analyze.
type Response struct {
	Words []Keyword `json:"words"`
}

// Request is the wire shape of a POST /analyze body.
type Request struct {
	URL string `json:"url"`
}

// Top returns at most n keywords from the head of words.
// The returned slice aliases words and must not be modified.
func Top(words []Keyword, n int) []Keyword {
	if n <= 0 {
		return nil
	}
	if len(words) <= n {
		return words
	}
	return words[:n]
}

// Len returns the number of keywords, treating a nil result as empty.
func (r *Result) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Words)
}
