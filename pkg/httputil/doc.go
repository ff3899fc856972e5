// Package httputil provides the outgoing HTTP plumbing used by the keyword
// service when it downloads articles.
//
//   - [Fetcher]: GET with a timeout, a user agent, a body size limit, status
//     classification and observability hooks
//   - [Retry]: retry with exponential backoff for transient failures
//
// # Retry
//
// Only errors wrapped in [RetryableError] are retried. [Fetcher] wraps
// transport failures, 429 and 5xx responses; every other status fails at once:
//
//	f := httputil.NewFetcher(httputil.WithTimeout(10 * time.Second))
//	body, err := f.Get(ctx, "https://www.bbc.com/news")
//
// The analysis client deliberately does not use this package: a request to
// /analyze is sent once and its failure is reported to the user as is.
package httputil
