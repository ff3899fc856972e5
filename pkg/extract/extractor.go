package extract

import (
	"bytes"
	"context"

	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/httputil"
	"github.com/matzehuels/wordsphere/pkg/keyword"
)

// Extractor turns an article URL into ranked keywords.
type Extractor struct {
	fetcher     *httputil.Fetcher
	maxFeatures int
}

// New returns an Extractor. A nil fetcher uses [httputil.NewFetcher]; a
// non-positive maxFeatures uses [DefaultMaxFeatures].
func New(fetcher *httputil.Fetcher, maxFeatures int) *Extractor {
	if fetcher == nil {
		fetcher = httputil.NewFetcher()
	}
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &Extractor{fetcher: fetcher, maxFeatures: maxFeatures}
}

// Extract downloads rawURL and returns its keywords.
//
// Download failures carry code FETCH_FAILED. An article with too little
// paragraph text carries NOT_ENOUGH_TEXT.
func (e *Extractor) Extract(ctx context.Context, rawURL string) ([]keyword.Keyword, error) {
	body, err := e.fetcher.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	text, err := MainText(bytes.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, err, "parse %s", rawURL)
	}
	words := Keywords(text, e.maxFeatures)
	if len(words) == 0 {
		return nil, errors.New(errors.ErrCodeNotEnoughText, "Not enough text to analyze")
	}
	return words, nil
}
