package packcache

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFilename(t *testing.T) {
	a, err := Filename("https://example.com/packs/folders.tar.xz")
	if err != nil {
		t.Fatalf("Filename() error = %v", err)
	}
	if !strings.HasSuffix(a, ".tar.xz") || len(a) != 32+len(".tar.xz") {
		t.Errorf("Filename() = %q", a)
	}

	b, _ := Filename("https://example.com/packs/other.tar.xz")
	if a == b {
		t.Error("Filename() collides for different URLs")
	}

	again, _ := Filename("https://example.com/packs/folders.tar.xz")
	if a != again {
		t.Error("Filename() not deterministic")
	}

	if _, err := Filename("https://example.com/readme.txt"); err == nil {
		t.Error("Filename() expected error for non-archive URL")
	}
}

func TestGet(t *testing.T) {
	dir := t.TempDir()
	const url = "https://example.com/pack.zip"

	calls := 0
	fetch := func(_ context.Context, got string) ([]byte, error) {
		calls++
		if got != url {
			t.Errorf("fetch url = %q, want %q", got, url)
		}
		return []byte("archive"), nil
	}

	path, cached, err := Get(context.Background(), url, Options{Dir: dir, Fetch: fetch})
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if cached {
		t.Error("Get() first call reported cached")
	}
	if filepath.Dir(path) != dir {
		t.Errorf("Get() path = %q, want inside %q", path, dir)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "archive" {
		t.Fatalf("cached file = %q, %v", data, err)
	}

	if _, cached, _ = Get(context.Background(), url, Options{Dir: dir, Fetch: fetch}); !cached {
		t.Error("Get() second call not cached")
	}
	if calls != 1 {
		t.Errorf("fetch called %d times, want 1", calls)
	}

	if _, cached, _ = Get(context.Background(), url, Options{Dir: dir, Fetch: fetch, Refresh: true}); cached {
		t.Error("Get() with Refresh reported cached")
	}
	if calls != 2 {
		t.Errorf("fetch called %d times, want 2", calls)
	}
}

func TestGetFetchError(t *testing.T) {
	dir := t.TempDir()
	boom := errors.New("connection refused")
	_, _, err := Get(context.Background(), "https://example.com/pack.zip", Options{
		Dir:   dir,
		Fetch: func(context.Context, string) ([]byte, error) { return nil, boom },
	})
	if !errors.Is(err, boom) {
		t.Errorf("Get() error = %v, want %v", err, boom)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache dir has %d entries after failed fetch", len(entries))
	}
}
