// Package analysis is the client for the keyword service's POST /analyze
// endpoint.
//
// One call to [Client.Analyze] sends exactly one request. There is no retry,
// no timeout beyond what the caller puts on the context, no caching and no
// de-duplication of overlapping calls: two concurrent calls race and each
// returns its own response.
//
// Every failure (connection refused, DNS, a non-2xx status, an undecodable
// body) comes back as a single kind of error, an [errors.Error] with code
// [errors.ErrCodeAnalysisFailed]. Its user message is the response body text
// when the service sent one, otherwise "request failed with status N" or the
// transport error text:
//
//	res, err := client.Analyze(ctx, "https://www.bbc.com/news/articles/c0example")
//	if err != nil {
//	    fmt.Println(errors.UserMessage(err))
//	}
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wordsphere/pkg/buildinfo"
	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/keyword"
	"github.com/matzehuels/wordsphere/pkg/observability"
)

// DefaultBaseURL is where the keyword service listens in local development.
const DefaultBaseURL = "http://localhost:8000"

// maxErrorBody bounds how much of a failed response is read into the message.
const maxErrorBody = 64 << 10

// Client talks to one keyword service.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *log.Logger
	now     func() time.Time
	newID   func() string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client. The default has no timeout.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithLogger sets the logger used for debug output.
func WithLogger(l *log.Logger) Option { return func(c *Client) { c.logger = l } }

// NewClient returns a client for the service at baseURL (e.g.
// "http://localhost:8000"). An empty baseURL selects [DefaultBaseURL].
func NewClient(baseURL string, opts ...Option) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
		logger:  log.Default(),
		now:     time.Now,
		newID:   uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the service address requests are sent to.
func (c *Client) BaseURL() string { return c.baseURL }

// Analyze asks the service for the keywords of the article at url.
//
// The returned result keeps the service's order and carries a fresh ID.
// Every failure is an ANALYSIS_FAILED error. errors.UserMessage returns the
// human-readable text: a 500 with body "server error" yields exactly
// "server error", while err.Error() also carries the code and cause.
func (c *Client) Analyze(ctx context.Context, url string) (*keyword.Result, error) {
	start := time.Now()
	observability.Analysis().OnAnalyzeStart(ctx, url)

	res, err := c.analyze(ctx, url)

	observability.Analysis().OnAnalyzeComplete(ctx, url, res.Len(), time.Since(start), err)
	if err != nil {
		c.logger.Debug("analysis failed", "url", url, "err", err)
		return nil, err
	}
	c.logger.Debug("analysis complete", "url", url, "words", res.Len(), "duration", time.Since(start))
	return res, nil
}

func (c *Client) analyze(ctx context.Context, url string) (*keyword.Result, error) {
	body, err := json.Marshal(keyword.Request{URL: url})
	if err != nil {
		return nil, failed(err, err.Error())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze", bytes.NewReader(body))
	if err != nil {
		return nil, failed(err, err.Error())
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", buildinfo.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, failed(err, err.Error())
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, statusError(resp)
	}

	var out keyword.Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, failed(err, fmt.Sprintf("invalid response: %v", err))
	}
	if out.Words == nil {
		out.Words = []keyword.Keyword{}
	}

	return &keyword.Result{
		ID:        c.newID(),
		URL:       url,
		Words:     out.Words,
		CreatedAt: c.now(),
	}, nil
}

// statusError uses a non-empty body verbatim as message and falls back to
// the status.
func statusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	cause := fmt.Errorf("status %d", resp.StatusCode)
	if len(data) > 0 {
		return failed(cause, string(data))
	}
	return failed(cause, fmt.Sprintf("request failed with status %d", resp.StatusCode))
}

func failed(cause error, msg string) error {
	return errors.Wrap(errors.ErrCodeAnalysisFailed, cause, "%s", msg)
}
