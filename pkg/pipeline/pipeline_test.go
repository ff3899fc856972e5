package pipeline

import (
	"bytes"
	"context"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/keyword"
	"github.com/matzehuels/wordsphere/pkg/store"
)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"json", false},
		{"svg", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}

	if err := ValidateFormats([]string{"json", "svg"}); err != nil {
		t.Errorf("Valid formats should pass: %v", err)
	}
	if err := ValidateFormats([]string{"svg", "pdf"}); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Invalid format err = %v, want INVALID_FORMAT", err)
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		raw     string
		want    string
		wantErr bool
	}{
		{"https://www.bbc.com/news", "https://www.bbc.com/news", false},
		{"  http://example.com  ", "http://example.com", false},
		{"", "", true},
		{"   ", "", true},
		{"ftp://example.com", "", true},
		{"www.bbc.com", "", true},
		{"https://", "", true},
		{"://bad", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeURL(tt.raw)
		if (err != nil) != tt.wantErr {
			t.Errorf("NormalizeURL(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, errors.ErrCodeInvalidURL) {
			t.Errorf("NormalizeURL(%q) code = %s, want INVALID_URL", tt.raw, errors.GetCode(err))
		}
		if got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

type fakeExtractor struct {
	words []keyword.Keyword
	err   error
	calls int
}

func (f *fakeExtractor) Extract(context.Context, string) ([]keyword.Keyword, error) {
	f.calls++
	return f.words, f.err
}

type memCache struct {
	cache.NullCache
	data map[string][]byte
}

func (m *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	d, ok := m.data[key]
	return d, ok, nil
}

func (m *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	m.data[key] = data
	return nil
}

func newTestRunner(ex Extractor) (*Runner, *memCache, *store.MemoryStore) {
	c := &memCache{data: map[string][]byte{}}
	st := store.NewMemoryStore()
	return NewRunner(c, nil, st, ex, log.New(io.Discard)), c, st
}

func TestRunnerAnalyze(t *testing.T) {
	ctx := context.Background()
	words := []keyword.Keyword{{Word: "election", Weight: 1}, {Word: "vote", Weight: 0.5}}
	ex := &fakeExtractor{words: words}
	r, c, st := newTestRunner(ex)

	res, cached, err := r.Analyze(ctx, "https://example.com/a", false)
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if cached {
		t.Error("first call should miss the cache")
	}
	if diff := cmp.Diff(words, res.Words); diff != "" {
		t.Errorf("Words mismatch (-want +got):\n%s", diff)
	}
	if res.ID == "" || res.CreatedAt.IsZero() || res.URL != "https://example.com/a" {
		t.Errorf("result metadata not set: %+v", res)
	}
	if len(c.data) != 1 {
		t.Errorf("cache entries = %d, want 1", len(c.data))
	}

	res2, cached, err := r.Analyze(ctx, "https://example.com/a", false)
	if err != nil {
		t.Fatalf("second Analyze() error: %v", err)
	}
	if !cached || ex.calls != 1 {
		t.Errorf("second call cached=%v extract calls=%d, want hit and 1 call", cached, ex.calls)
	}
	if res2.ID == res.ID {
		t.Error("each analysis should get a fresh ID")
	}
	if diff := cmp.Diff(words, res2.Words); diff != "" {
		t.Errorf("cached Words mismatch (-want +got):\n%s", diff)
	}

	if _, cached, _ := r.Analyze(ctx, "https://example.com/a", true); cached || ex.calls != 2 {
		t.Errorf("refresh cached=%v calls=%d, want miss and 2 calls", cached, ex.calls)
	}

	recs, _ := st.Recent(ctx, 10)
	if len(recs) != 3 {
		t.Fatalf("history records = %d, want 3", len(recs))
	}
	rec, err := st.Get(ctx, res2.ID)
	if err != nil || !rec.Cached {
		t.Errorf("history record for cached result = %+v, %v", rec, err)
	}
}

func TestRunnerAnalyzeErrors(t *testing.T) {
	ctx := context.Background()

	r, c, st := newTestRunner(&fakeExtractor{err: errors.New(errors.ErrCodeNotEnoughText, "Not enough text to analyze")})
	_, _, err := r.Analyze(ctx, "https://example.com/short", false)
	if !errors.Is(err, errors.ErrCodeNotEnoughText) {
		t.Errorf("err = %v, want NOT_ENOUGH_TEXT", err)
	}
	if len(c.data) != 0 {
		t.Error("failures must not be cached")
	}
	if recs, _ := st.Recent(ctx, 10); len(recs) != 0 {
		t.Error("failures must not be recorded")
	}

	if _, _, err := r.Analyze(ctx, "not a url", false); !errors.Is(err, errors.ErrCodeInvalidURL) {
		t.Errorf("err = %v, want INVALID_URL", err)
	}
}

func TestRunnerCorruptCacheEntry(t *testing.T) {
	ex := &fakeExtractor{words: []keyword.Keyword{{Word: "x", Weight: 1}}}
	r, c, _ := newTestRunner(ex)
	c.data[r.Keyer.AnalysisKey("https://example.com")] = []byte("garbage")

	_, cached, err := r.Analyze(context.Background(), "https://example.com", false)
	if err != nil || cached || ex.calls != 1 {
		t.Errorf("corrupt entry: cached=%v err=%v calls=%d, want recompute", cached, err, ex.calls)
	}
	if !bytes.Contains(c.data[r.Keyer.AnalysisKey("https://example.com")], []byte(`"x"`)) {
		t.Error("corrupt entry should be overwritten")
	}
}
