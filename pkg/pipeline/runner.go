package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/keyword"
	"github.com/matzehuels/wordsphere/pkg/observability"
	"github.com/matzehuels/wordsphere/pkg/store"
)

// Extractor produces the ranked keywords of an article.
type Extractor interface {
	Extract(ctx context.Context, url string) ([]keyword.Keyword, error)
}

// Runner encapsulates analysis execution with caching and history.
//
// The Runner holds no per-request state; one Runner may serve many
// goroutines.
type Runner struct {
	Cache     cache.Cache
	Keyer     cache.Keyer
	Store     store.Store
	Extractor Extractor
	Logger    *log.Logger
}

// NewRunner creates a runner.
// A nil cache disables caching, a nil keyer uses DefaultKeyer and a nil
// store keeps history in memory.
func NewRunner(c cache.Cache, keyer cache.Keyer, st store.Store, ex Extractor, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if st == nil {
		st = store.NewMemoryStore()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:     c,
		Keyer:     keyer,
		Store:     st,
		Extractor: ex,
		Logger:    logger,
	}
}

// Analyze returns the keywords of the article at rawURL and whether they
// came from the cache. refresh skips the cache lookup but still writes the
// fresh result back.
//
// Every call yields a new Result ID and a new history record, cached or not.
func (r *Runner) Analyze(ctx context.Context, rawURL string, refresh bool) (*keyword.Result, bool, error) {
	u, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, false, err
	}
	key := r.Keyer.AnalysisKey(u)
	hooks := observability.Cache()
	start := time.Now()

	words, hit := r.cached(ctx, key, refresh)
	if hit {
		hooks.OnCacheHit(ctx, "analysis")
		r.Logger.Debug("cache hit", "url", u)
	} else {
		hooks.OnCacheMiss(ctx, "analysis")
		words, err = r.Extractor.Extract(ctx, u)
		if err != nil {
			r.Logger.Warn("analysis failed", "url", u, "error", err)
			return nil, false, err
		}
		if data, err := json.Marshal(keyword.Response{Words: words}); err == nil {
			if err := r.Cache.Set(ctx, key, data, cache.TTLAnalysis); err != nil {
				r.Logger.Warn("cache write failed", "url", u, "error", err)
			} else {
				hooks.OnCacheSet(ctx, "analysis", len(data))
			}
		}
	}

	res := &keyword.Result{
		ID:        uuid.NewString(),
		URL:       u,
		Words:     words,
		CreatedAt: time.Now().UTC(),
	}
	if err := r.Store.Save(ctx, store.FromResult(res, hit)); err != nil {
		r.Logger.Warn("history write failed", "id", res.ID, "error", err)
	}

	r.Logger.Info("analyzed article",
		"url", u,
		"words", len(words),
		"cached", hit,
		"duration", time.Since(start))
	return res, hit, nil
}

// cached returns the cached keywords for key, if any. Unreadable entries
// count as misses.
func (r *Runner) cached(ctx context.Context, key string, refresh bool) ([]keyword.Keyword, bool) {
	if refresh {
		return nil, false
	}
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		return nil, false
	}
	var resp keyword.Response
	if err := json.Unmarshal(data, &resp); err != nil || len(resp.Words) == 0 {
		return nil, false
	}
	return resp.Words, true
}

// Close releases the cache and the store.
func (r *Runner) Close() error {
	return errors.Join(r.Cache.Close(), r.Store.Close())
}
