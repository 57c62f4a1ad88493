// Package service serves the recolorer RPC contract from the local
// recolouring and size-resolution packages.
package service

import (
	"context"
	"errors"
	"net/url"
	"path/filepath"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/foldertint/internal/icon"
	"github.com/jmylchreest/foldertint/internal/recolor"
	"github.com/jmylchreest/foldertint/internal/version"
	"github.com/jmylchreest/foldertint/internal/viewsize"
	"github.com/jmylchreest/foldertint/pkg/plugin"
)

// Service implements plugin.Recolorer.
// The recolorer and resolver can be swapped while requests are in flight,
// which is how settings changes take effect.
type Service struct {
	mu       sync.RWMutex
	rec      *recolor.Recolorer
	resolver *viewsize.Resolver
	logger   hclog.Logger
}

var _ plugin.Recolorer = (*Service)(nil)

// New creates a Service.
func New(rec *recolor.Recolorer, resolver *viewsize.Resolver, logger hclog.Logger) *Service {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Service{rec: rec, resolver: resolver, logger: logger.Named("service")}
}

// SetRecolorer replaces the recolorer used for subsequent renders.
func (s *Service) SetRecolorer(rec *recolor.Recolorer) {
	s.mu.Lock()
	s.rec = rec
	s.mu.Unlock()
}

// SetResolver replaces the resolver used for subsequent size lookups.
func (s *Service) SetResolver(resolver *viewsize.Resolver) {
	s.mu.Lock()
	s.resolver = resolver
	s.mu.Unlock()
}

// RenderIcon renders (or reuses) the icon for req.
func (s *Service) RenderIcon(ctx context.Context, req plugin.RenderRequest) (plugin.RenderResponse, error) {
	s.mu.RLock()
	rec := s.rec
	s.mu.RUnlock()

	res, err := rec.Render(ctx, recolor.Request{Size: req.Size, Color: req.Color, Force: req.Force})
	if err != nil {
		s.logger.Warn("render failed", "size", req.Size, "color", req.Color, "error", err)
		return plugin.RenderResponse{}, classify(err)
	}

	return plugin.RenderResponse{
		Path:   res.Path,
		URI:    FileURI(res.Path),
		Cached: res.Cached,
	}, nil
}

// ResolveIconSize resolves the icon size for the view described by req.
func (s *Service) ResolveIconSize(_ context.Context, req plugin.ResolveRequest) (plugin.ResolveResponse, error) {
	s.mu.RLock()
	resolver := s.resolver
	s.mu.RUnlock()

	var meta *viewsize.ViewMetadata
	if req.HasMetadata {
		meta = &viewsize.ViewMetadata{View: req.View, ZoomLevel: req.ZoomLevel}
	}

	px, err := resolver.ResolveIconSize(meta)
	if err != nil {
		return plugin.ResolveResponse{}, plugin.NewError(plugin.KindResolve, err)
	}

	return plugin.ResolveResponse{
		Pixels:    px,
		SizeClass: int(icon.NearestSizeClass(px)),
	}, nil
}

// GetMetadata describes this plugin.
func (s *Service) GetMetadata(_ context.Context) (plugin.PluginInfo, error) {
	s.mu.RLock()
	baseDir := s.rec.Layout().BaseDir
	s.mu.RUnlock()

	info := Info()
	info.BaseDir = baseDir
	return info, nil
}

// Info returns the static plugin metadata printed by --plugin-info.
func Info() plugin.PluginInfo {
	sizes := make([]int, 0, len(icon.SizeClasses()))
	for _, s := range icon.SizeClasses() {
		sizes = append(sizes, int(s))
	}
	return plugin.PluginInfo{
		Name:            "foldertint",
		Version:         version.Version,
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Recolours folder icons to a chosen colour",
		PluginProtocol:  plugin.PluginProtocol,
		SizeClasses:     sizes,
	}
}

// FileURI returns the file:// URI for an absolute path.
func FileURI(path string) string {
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(path)}).String()
}

func classify(err error) error {
	switch {
	case errors.Is(err, recolor.ErrAssetNotFound):
		return plugin.NewError(plugin.KindAssetNotFound, err)
	case errors.Is(err, recolor.ErrInvalidColor):
		return plugin.NewError(plugin.KindInvalidColor, err)
	case errors.Is(err, recolor.ErrWriteFailure):
		return plugin.NewError(plugin.KindWriteFailure, err)
	}
	return err
}
