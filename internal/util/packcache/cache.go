// Package packcache downloads remote icon packs into a local cache.
package packcache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmylchreest/foldertint/internal/compression"
	"github.com/jmylchreest/foldertint/internal/util"
	httputil "github.com/jmylchreest/foldertint/internal/util/http"
)

// Options configures a cache lookup.
type Options struct {
	// Dir is the cache directory. Empty uses DefaultDir.
	Dir string

	// Refresh downloads the pack even when a cached copy exists.
	Refresh bool

	// Fetch overrides the downloader (useful for testing).
	Fetch func(ctx context.Context, url string) ([]byte, error)
}

// DefaultDir returns the default cache directory, ~/.cache/foldertint/packs
// on Linux.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "foldertint", "packs"), nil
	}
	return filepath.Join(cacheDir, "foldertint", "packs"), nil
}

// Filename returns the deterministic cache filename for url: a hash of the
// URL plus the archive extension, so the format can still be detected.
func Filename(url string) (string, error) {
	format, err := compression.DetectFormat(url)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x.%s", hash[:16], format), nil
}

// Get returns the local path of the pack at url, downloading it first when
// it is not cached or opts.Refresh is set. cached reports whether an existing
// copy was used.
func Get(ctx context.Context, url string, opts Options) (path string, cached bool, err error) {
	name, err := Filename(url)
	if err != nil {
		return "", false, err
	}

	dir := opts.Dir
	if dir == "" {
		if dir, err = DefaultDir(); err != nil {
			return "", false, err
		}
	}
	path = filepath.Join(dir, name)

	if !opts.Refresh && util.FileExists(path) {
		return path, true, nil
	}

	fetch := opts.Fetch
	if fetch == nil {
		fetch = func(ctx context.Context, url string) ([]byte, error) {
			return httputil.Fetch(ctx, url, httputil.FetchOptions{})
		}
	}

	data, err := fetch(ctx, url)
	if err != nil {
		return "", false, fmt.Errorf("failed to download icon pack: %w", err)
	}

	if err := util.WriteFileAtomic(path, data, 0o644); err != nil {
		return "", false, fmt.Errorf("failed to cache icon pack: %w", err)
	}
	return path, false, nil
}
