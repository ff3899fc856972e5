package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/wordsphere/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "wordsphere")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}
	if want := filepath.Join(xdg, "wordsphere"); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheCommands(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", xdg)
	var buf bytes.Buffer
	stdout = &buf
	defer func() { stdout = os.Stdout }()

	c := New(&bytes.Buffer{}, LogInfo)

	root := c.RootCommand()
	root.SetArgs([]string{"cache", "path"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache path: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != filepath.Join(xdg, "wordsphere") {
		t.Errorf("cache path printed %q", got)
	}

	fc, err := cache.NewFileCache(filepath.Join(xdg, "wordsphere"))
	if err != nil {
		t.Fatal(err)
	}
	fc.Set(context.Background(), "a", []byte("x"), time.Hour)
	fc.Set(context.Background(), "b", []byte("y"), time.Hour)

	buf.Reset()
	root = c.RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if !strings.Contains(buf.String(), "Cleared 2 cached entries") {
		t.Errorf("cache clear output = %q", buf.String())
	}
}
