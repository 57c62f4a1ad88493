// Package recolor renders folder icons in a requested colour and caches the
// results on disk.
package recolor

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/patrickmn/go-cache"

	"github.com/jmylchreest/foldertint/internal/colour"
	"github.com/jmylchreest/foldertint/internal/icon"
	imgutil "github.com/jmylchreest/foldertint/internal/image"
	"github.com/jmylchreest/foldertint/internal/util"
)

var (
	// ErrAssetNotFound is returned when no base asset exists for the requested size.
	ErrAssetNotFound = errors.New("base icon asset not found")

	// ErrWriteFailure is returned when a rendered asset cannot be written.
	ErrWriteFailure = errors.New("failed to write rendered icon")

	// ErrInvalidColor is returned for colours that cannot be parsed.
	ErrInvalidColor = colour.ErrInvalidColor
)

// DefaultMemoTTL is how long decoded base assets stay in memory.
const DefaultMemoTTL = 10 * time.Minute

// Options configures a Recolorer.
type Options struct {
	// BaseDir is the root of the icon layout (see icon.Layout).
	BaseDir string

	// Reference is the colour the base assets are authored in.
	// Defaults to colour.ReferenceHex.
	Reference string

	// MemoTTL controls how long decoded base assets are memoised.
	// Zero uses DefaultMemoTTL; a negative value disables expiry.
	MemoTTL time.Duration

	// Loader overrides the image loader (useful for testing).
	Loader imgutil.Loader

	Logger hclog.Logger
}

// Request describes a single render.
type Request struct {
	Size  int
	Color string
	// Force re-renders even when a cached asset exists.
	Force bool
}

// Result describes a rendered (or reused) asset.
type Result struct {
	Path   string
	Key    string
	Size   icon.SizeClass
	Cached bool
	Deltas colour.Deltas
}

// Recolorer renders base icons in target colours.
// It is safe for concurrent use; the only shared state is a memo of decoded
// base assets, which are never modified.
type Recolorer struct {
	layout    icon.Layout
	reference colour.RGB
	loader    imgutil.Loader
	memo      *cache.Cache
	logger    hclog.Logger
}

// New creates a Recolorer.
func New(opts Options) (*Recolorer, error) {
	if opts.BaseDir == "" {
		return nil, fmt.Errorf("base directory cannot be empty")
	}

	refHex := opts.Reference
	if refHex == "" {
		refHex = colour.ReferenceHex
	}
	ref, err := colour.Parse(refHex)
	if err != nil {
		return nil, fmt.Errorf("invalid reference colour: %w", err)
	}

	ttl := opts.MemoTTL
	if ttl == 0 {
		ttl = DefaultMemoTTL
	}
	if ttl < 0 {
		ttl = cache.NoExpiration
	}

	loader := opts.Loader
	if loader == nil {
		loader = imgutil.NewFileLoader()
	}

	logger := opts.Logger
	if logger == nil {
		logger = hclog.NewNullLogger()
	}

	return &Recolorer{
		layout:    icon.NewLayout(opts.BaseDir),
		reference: ref,
		loader:    loader,
		memo:      cache.New(ttl, 2*ttl),
		logger:    logger.Named("recolor"),
	}, nil
}

// Layout returns the asset layout the Recolorer reads and writes.
func (r *Recolorer) Layout() icon.Layout {
	return r.layout
}

// Reference returns the reference colour of the base assets.
func (r *Recolorer) Reference() colour.RGB {
	return r.reference
}

// RenderIcon renders the base icon of the given size in color and returns the
// path of the rendered asset.
func (r *Recolorer) RenderIcon(ctx context.Context, size int, color string) (string, error) {
	res, err := r.Render(ctx, Request{Size: size, Color: color})
	if err != nil {
		return "", err
	}
	return res.Path, nil
}

// Render renders a single request. An existing rendered asset is reused
// unless req.Force is set.
func (r *Recolorer) Render(ctx context.Context, req Request) (Result, error) {
	target, err := colour.Parse(req.Color)
	if err != nil {
		return Result{}, err
	}

	size, err := icon.ParseSizeClass(req.Size)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrAssetNotFound, err)
	}

	return r.render(ctx, size, target, req.Force)
}

// RenderAll renders every size class in color, stopping at the first error.
func (r *Recolorer) RenderAll(ctx context.Context, color string, force bool) ([]Result, error) {
	target, err := colour.Parse(color)
	if err != nil {
		return nil, err
	}

	results := make([]Result, 0, len(icon.SizeClasses()))
	for _, size := range icon.SizeClasses() {
		res, err := r.render(ctx, size, target, force)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}
	return results, nil
}

// FlushBaseCache drops memoised base assets, e.g. after new ones were installed.
func (r *Recolorer) FlushBaseCache() {
	r.memo.Flush()
}

func (r *Recolorer) render(ctx context.Context, size icon.SizeClass, target colour.RGB, force bool) (Result, error) {
	key := target.Key()
	deltas := colour.ComputeDeltas(target, r.reference)
	res := Result{
		Path:   r.layout.RenderedPath(size, key),
		Key:    key,
		Size:   size,
		Deltas: deltas,
	}

	if !force && util.FileExists(res.Path) {
		r.logger.Debug("reusing rendered icon", "size", int(size), "color", key, "path", res.Path)
		res.Cached = true
		return res, nil
	}

	base, err := r.loadBase(size)
	if err != nil {
		return Result{}, err
	}

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	out := base
	if deltas.IsIdentity() {
		// Encode the decoded base as is so 16-bit sources keep their depth.
		r.logger.Debug("reference colour, copying base icon", "size", int(size))
	} else {
		r.logger.Debug("rendering icon", "size", int(size), "color", key, "deltas", deltas.String())
		b, s, h := deltas.Percentages()
		out = colour.Modulate(base, b, s, h)
	}

	data, err := imgutil.EncodePNG(out)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %v", ErrWriteFailure, err)
	}

	if err := util.WriteFileAtomic(res.Path, data, 0o644); err != nil {
		r.logger.Error("failed to write rendered icon", "path", res.Path, "error", err)
		return Result{}, fmt.Errorf("%w: %s: %w", ErrWriteFailure, res.Path, err)
	}

	r.logger.Info("rendered icon", "size", int(size), "color", key, "path", res.Path)
	return res, nil
}

func (r *Recolorer) loadBase(size icon.SizeClass) (image.Image, error) {
	memoKey := size.String()
	if img, ok := r.memo.Get(memoKey); ok {
		return img.(image.Image), nil
	}

	path := r.layout.BasePath(size)
	img, err := r.loader.Load(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrAssetNotFound, path)
		}
		return nil, fmt.Errorf("failed to load base icon %s: %w", path, err)
	}

	r.memo.SetDefault(memoKey, img)
	return img, nil
}

// RenderedColors lists the colour keys already rendered for a size.
func (r *Recolorer) RenderedColors(size icon.SizeClass) ([]string, error) {
	entries, err := os.ReadDir(r.layout.RenderedDir(size))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var keys []string
	for _, e := range entries {
		key, ok := strings.CutSuffix(e.Name(), ".png")
		if e.IsDir() || !ok || !strings.HasPrefix(key, "#") {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}
