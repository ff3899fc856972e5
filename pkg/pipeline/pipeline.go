// Package pipeline runs the server-side analysis: fetch an article, extract
// its keywords, cache the result and record it in the history store.
//
// Both the HTTP server and the CLI use a [Runner] so caching behaves the
// same everywhere.
//
//	runner := pipeline.NewRunner(c, nil, st, extract.New(nil, 0), logger)
//	res, cached, err := runner.Analyze(ctx, "https://www.bbc.com/news", false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Words[0].Word, cached)
package pipeline

import (
	"net/url"
	"slices"
	"strings"

	"github.com/matzehuels/wordsphere/pkg/errors"
)

// Output formats produced from an analysis layout.
const (
	FormatJSON = "json"
	FormatSVG  = "svg"
)

// ValidFormats lists the supported output formats.
var ValidFormats = []string{FormatJSON, FormatSVG}

// ValidateFormat checks that format is supported. Formats are case-sensitive.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format %q (valid: %s)", format, strings.Join(ValidFormats, ", "))
	}
	return nil
}

// ValidateFormats checks every format in formats.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// NormalizeURL trims raw and checks that it is an absolute http(s) URL.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.New(errors.ErrCodeInvalidURL, "url is required")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidURL, err, "invalid url %q", raw)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.New(errors.ErrCodeInvalidURL, "invalid url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return "", errors.New(errors.ErrCodeInvalidURL, "invalid url %q: missing host", raw)
	}
	return raw, nil
}
