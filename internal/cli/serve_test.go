package cli

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/config"
	"github.com/matzehuels/wordsphere/pkg/store"
)

func TestApplyServeOpts(t *testing.T) {
	cfg := config.Default()
	applyServeOpts(cfg, serveOpts{})
	if cfg.Server.Addr != ":8000" || cfg.Server.NoCache {
		t.Errorf("empty opts should keep config: %+v", cfg.Server)
	}

	applyServeOpts(cfg, serveOpts{addr: ":9000", redis: "r:6379", mongo: "mongodb://m", noCache: true})
	if cfg.Server.Addr != ":9000" || cfg.Redis.Addr != "r:6379" || cfg.Mongo.URI != "mongodb://m" || !cfg.Server.NoCache {
		t.Errorf("opts not applied: %+v", cfg)
	}
}

func TestNewRunnerDefaults(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	cfg := config.Default()

	r, err := newRunner(context.Background(), cfg, log.New(io.Discard))
	if err != nil {
		t.Fatalf("newRunner() error: %v", err)
	}
	defer r.Close()
	if _, ok := r.Cache.(*cache.FileCache); !ok {
		t.Errorf("cache = %T, want *cache.FileCache", r.Cache)
	}
	if _, ok := r.Store.(*store.MemoryStore); !ok {
		t.Errorf("store = %T, want *store.MemoryStore", r.Store)
	}

	cfg.Server.NoCache = true
	r2, err := newRunner(context.Background(), cfg, log.New(io.Discard))
	if err != nil {
		t.Fatal(err)
	}
	defer r2.Close()
	if _, ok := r2.Cache.(*cache.NullCache); !ok {
		t.Errorf("--no-cache cache = %T, want *cache.NullCache", r2.Cache)
	}
}

func TestRunServeShutdown(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	cfg := config.Default()
	cfg.Server.Addr = addr
	cfg.Server.NoCache = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runServe(ctx, cfg, log.New(io.Discard)) }()

	var resp *http.Response
	for range 50 {
		resp, err = http.Get("http://" + addr + "/health")
		if err == nil {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	if err != nil {
		cancel()
		t.Fatalf("server never became ready: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("/health status = %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("runServe() = %v, want clean shutdown", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
