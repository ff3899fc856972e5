package analysis

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/wordsphere/pkg/errors"
	"github.com/matzehuels/wordsphere/pkg/keyword"
)

func TestAnalyzeRequestShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if r.URL.Path != "/analyze" {
			t.Errorf("path = %s, want /analyze", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		var req keyword.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if req.URL != "https://www.bbc.com" {
			t.Errorf("url = %q", req.URL)
		}
		io.WriteString(w, `{"words":[{"word":"economy","weight":1.0},{"word":"sports","weight":0.25}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL + "/")
	res, err := client.Analyze(context.Background(), "https://www.bbc.com")
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}

	want := []keyword.Keyword{{Word: "economy", Weight: 1}, {Word: "sports", Weight: 0.25}}
	if diff := cmp.Diff(want, res.Words); diff != "" {
		t.Errorf("Words mismatch (-want +got):\n%s", diff)
	}
	if res.ID == "" {
		t.Error("result should carry an ID")
	}
	if res.URL != "https://www.bbc.com" {
		t.Errorf("URL = %q", res.URL)
	}
	if res.CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestAnalyzeEmptyWords(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"words":[]}`)
	}))
	defer server.Close()

	res, err := NewClient(server.URL).Analyze(context.Background(), "https://example.com")
	if err != nil {
		t.Fatalf("Analyze() error: %v", err)
	}
	if res.Words == nil || len(res.Words) != 0 {
		t.Errorf("Words = %#v, want empty non-nil slice", res.Words)
	}
}

func TestAnalyzeErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"body used verbatim", http.StatusInternalServerError, "server error", "server error"},
		{"empty body falls back to status", http.StatusBadGateway, "", "request failed with status 502"},
		{"whitespace body used verbatim", http.StatusServiceUnavailable, "  \n", "  \n"},
		{"body not trimmed", http.StatusBadRequest, "Failed to fetch article: timeout\n", "Failed to fetch article: timeout\n"},
		{"client error", http.StatusUnprocessableEntity, "Not enough text to analyze", "Not enough text to analyze"},
		{"redirect is not success", http.StatusNotModified, "", "request failed with status 304"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			}))
			defer server.Close()

			res, err := NewClient(server.URL).Analyze(context.Background(), "https://example.com")
			if err == nil {
				t.Fatalf("Analyze() = %+v, want error", res)
			}
			if !errors.Is(err, errors.ErrCodeAnalysisFailed) {
				t.Errorf("code = %q, want %q", errors.GetCode(err), errors.ErrCodeAnalysisFailed)
			}
			if got := errors.UserMessage(err); got != tt.wantMsg {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantMsg)
			}
			if tt.wantMsg != "" && !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("Error() = %q should contain the message", err.Error())
			}
		})
	}
}

func TestAnalyzeTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	_, err := NewClient(url).Analyze(context.Background(), "https://example.com")
	if err == nil {
		t.Fatal("Analyze() against a closed server should fail")
	}
	if !errors.Is(err, errors.ErrCodeAnalysisFailed) {
		t.Errorf("transport failure code = %q, want %q", errors.GetCode(err), errors.ErrCodeAnalysisFailed)
	}
	if errors.UserMessage(err) == "" {
		t.Error("transport failure should carry a message")
	}
}

func TestAnalyzeInvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"words":`)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Analyze(context.Background(), "https://example.com")
	if !errors.Is(err, errors.ErrCodeAnalysisFailed) {
		t.Fatalf("err = %v, want ANALYSIS_FAILED", err)
	}
	if !strings.HasPrefix(errors.UserMessage(err), "invalid response") {
		t.Errorf("UserMessage() = %q", errors.UserMessage(err))
	}
}

func TestAnalyzeOneRequestPerCall(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	for i := 0; i < 3; i++ {
		_, _ = client.Analyze(context.Background(), "https://example.com")
	}
	if got := calls.Load(); got != 3 {
		t.Errorf("requests = %d, want 3 (no retries)", got)
	}
}

func TestAnalyzeFreshIDs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"words":[{"word":"a","weight":1}]}`)
	}))
	defer server.Close()

	client := NewClient(server.URL)
	a, err := client.Analyze(context.Background(), "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	b, err := client.Analyze(context.Background(), "https://example.com")
	if err != nil {
		t.Fatal(err)
	}
	if a.ID == b.ID {
		t.Errorf("two analyses share ID %q", a.ID)
	}
}

func TestAnalyzeContextCancel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer server.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewClient(server.URL).Analyze(ctx, "https://example.com")
	if !errors.Is(err, errors.ErrCodeAnalysisFailed) {
		t.Errorf("err = %v, want ANALYSIS_FAILED", err)
	}
}

func TestNewClientDefaults(t *testing.T) {
	c := NewClient("")
	if c.BaseURL() != DefaultBaseURL {
		t.Errorf("BaseURL() = %q, want %q", c.BaseURL(), DefaultBaseURL)
	}
	if c.http.Timeout != 0 {
		t.Errorf("default client timeout = %v, want none", c.http.Timeout)
	}

	h := &http.Client{Timeout: time.Second}
	if NewClient("http://x", WithHTTPClient(h)).http != h {
		t.Error("WithHTTPClient not applied")
	}
}
