package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/matzehuels/wordsphere/pkg/buildinfo"
	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/observability"
)

// Fetcher defaults.
const (
	DefaultTimeout = 10 * time.Second
	DefaultMaxBody = 8 << 20
)

// Fetcher downloads documents over HTTP.
type Fetcher struct {
	http     *http.Client
	attempts int
	delay    time.Duration
	maxBody  int64
}

// FetchOption configures a Fetcher.
type FetchOption func(*Fetcher)

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) FetchOption { return func(f *Fetcher) { f.http.Timeout = d } }

// WithClient replaces the HTTP client. Its timeout is used as is.
func WithClient(c *http.Client) FetchOption { return func(f *Fetcher) { f.http = c } }

// WithRetry sets the retry policy. attempts <= 1 disables retries.
func WithRetry(attempts int, delay time.Duration) FetchOption {
	return func(f *Fetcher) { f.attempts, f.delay = attempts, delay }
}

// WithMaxBody bounds the number of bytes read from a response.
func WithMaxBody(n int64) FetchOption { return func(f *Fetcher) { f.maxBody = n } }

// NewFetcher returns a Fetcher with a 10s timeout and 3 attempts.
func NewFetcher(opts ...FetchOption) *Fetcher {
	f := &Fetcher{
		http:     &http.Client{Timeout: DefaultTimeout},
		attempts: DefaultAttempts,
		delay:    DefaultDelay,
		maxBody:  DefaultMaxBody,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get downloads rawURL and returns its body. Failures are FETCH_FAILED
// errors; transient ones are retried first.
func (f *Fetcher) Get(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	err := Retry(ctx, f.attempts, f.delay, func() error {
		var err error
		body, err = f.get(ctx, rawURL)
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFetchFailed, err, "fetch %s", rawURL)
	}
	return body, nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", buildinfo.UserAgent())
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	host, path := req.URL.Host, req.URL.Path
	hooks := observability.HTTP()
	hooks.OnRequest(ctx, req.Method, host, path)
	start := time.Now()

	resp, err := f.http.Do(req)
	if err != nil {
		hooks.OnError(ctx, req.Method, host, path, err)
		return nil, Retryable(err)
	}
	defer resp.Body.Close()
	hooks.OnResponse(ctx, req.Method, host, path, resp.StatusCode, time.Since(start))

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}
	return io.ReadAll(io.LimitReader(resp.Body, f.maxBody))
}

func checkStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusTooManyRequests, code >= 500:
		return Retryable(fmt.Errorf("status %d", code))
	default:
		return fmt.Errorf("status %d", code)
	}
}
