// Package assets installs and inspects the base icon assets that the
// recolorer reads.
package assets

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/foldertint/internal/compression"
	"github.com/jmylchreest/foldertint/internal/icon"
	imgutil "github.com/jmylchreest/foldertint/internal/image"
	"github.com/jmylchreest/foldertint/internal/security"
	"github.com/jmylchreest/foldertint/internal/util"
	"github.com/jmylchreest/foldertint/internal/util/packcache"
)

// Installed describes one base asset written to disk.
type Installed struct {
	Size icon.SizeClass
	Path string
	// Source is the archive entry or image the asset came from.
	Source string
}

// Status describes the asset state for one size class.
type Status struct {
	Size         icon.SizeClass
	BasePath     string
	BasePresent  bool
	RenderedKeys int
}

// Manager installs base assets into a layout.
type Manager struct {
	layout icon.Layout
	logger hclog.Logger

	// Downloaded packs are cached under cacheDir (packcache.DefaultDir when
	// empty) and reused unless refresh is set.
	cacheDir string
	refresh  bool
	fetch    func(ctx context.Context, url string) ([]byte, error)
}

// NewManager creates a Manager for layout.
func NewManager(layout icon.Layout, logger hclog.Logger) *Manager {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Manager{
		layout: layout,
		logger: logger.Named("assets"),
	}
}

// SetDownloadCache configures where downloaded packs are cached and whether
// a cached copy is ignored.
func (m *Manager) SetDownloadCache(dir string, refresh bool) {
	m.cacheDir = dir
	m.refresh = refresh
}

// Import installs base assets from an icon-pack archive at a local path or an
// https URL. Entries named <size>.png for a supported size are installed; when
// several entries share a size the first one wins.
func (m *Manager) Import(ctx context.Context, source string) ([]Installed, error) {
	format, err := compression.DetectFormat(source)
	if err != nil {
		return nil, err
	}

	data, err := m.read(ctx, source)
	if err != nil {
		return nil, err
	}

	entries, err := compression.Extract(data, format, func(name string) bool {
		_, ok := sizeFromEntry(name)
		return ok
	})
	if err != nil {
		return nil, fmt.Errorf("failed to extract %s: %w", source, err)
	}

	var installed []Installed
	seen := make(map[icon.SizeClass]bool)
	for _, e := range entries {
		size, _ := sizeFromEntry(e.Name)
		if seen[size] {
			m.logger.Debug("skipping duplicate size", "entry", e.Name, "size", int(size))
			continue
		}

		if err := checkPNG(e.Data); err != nil {
			return installed, fmt.Errorf("%s: %w", e.Name, err)
		}

		dest := m.layout.BasePath(size)
		if err := util.WriteFileAtomic(dest, e.Data, 0o644); err != nil {
			return installed, fmt.Errorf("failed to install %s: %w", dest, err)
		}

		seen[size] = true
		installed = append(installed, Installed{Size: size, Path: dest, Source: e.Name})
		m.logger.Info("installed base asset", "size", int(size), "path", dest, "source", e.Name)
	}

	if len(installed) == 0 {
		return nil, fmt.Errorf("no <size>.png entries for sizes %v found in %s", icon.SizeClasses(), source)
	}
	return installed, nil
}

// Scale installs base assets for every size class by resampling a single
// master image.
func (m *Manager) Scale(master string) ([]Installed, error) {
	if !imgutil.IsImageFile(master) {
		return nil, fmt.Errorf("unsupported master image %s (supported: %s)",
			master, strings.Join(imgutil.SupportedImageExtensions(), ", "))
	}

	img, err := imgutil.NewFileLoader().Load(master)
	if err != nil {
		return nil, err
	}

	installed := make([]Installed, 0, len(icon.SizeClasses()))
	for _, size := range icon.SizeClasses() {
		data, err := imgutil.EncodePNG(imgutil.Scale(img, int(size)))
		if err != nil {
			return installed, err
		}

		dest := m.layout.BasePath(size)
		if err := util.WriteFileAtomic(dest, data, 0o644); err != nil {
			return installed, fmt.Errorf("failed to install %s: %w", dest, err)
		}

		installed = append(installed, Installed{Size: size, Path: dest, Source: master})
		m.logger.Info("scaled base asset", "size", int(size), "path", dest)
	}
	return installed, nil
}

// Status reports base and rendered asset state per size class.
func (m *Manager) Status() ([]Status, error) {
	statuses := make([]Status, 0, len(icon.SizeClasses()))
	for _, size := range icon.SizeClasses() {
		s := Status{
			Size:        size,
			BasePath:    m.layout.BasePath(size),
			BasePresent: util.FileExists(m.layout.BasePath(size)),
		}

		entries, err := os.ReadDir(m.layout.RenderedDir(size))
		if err != nil && !os.IsNotExist(err) {
			return nil, err
		}
		for _, e := range entries {
			if !e.IsDir() && strings.HasPrefix(e.Name(), "#") && strings.HasSuffix(e.Name(), ".png") {
				s.RenderedKeys++
			}
		}
		statuses = append(statuses, s)
	}
	return statuses, nil
}

func (m *Manager) read(ctx context.Context, source string) ([]byte, error) {
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		if err := security.ValidateHTTPURL(source); err != nil {
			return nil, err
		}
		local, cached, err := packcache.Get(ctx, source, packcache.Options{
			Dir:     m.cacheDir,
			Refresh: m.refresh,
			Fetch:   m.fetch,
		})
		if err != nil {
			return nil, err
		}
		m.logger.Debug("icon pack ready", "url", source, "path", local, "cached", cached)
		source = local
	}

	data, err := os.ReadFile(source) // #nosec G304 - User-specified icon pack
	if err != nil {
		return nil, fmt.Errorf("failed to read icon pack: %w", err)
	}
	return data, nil
}

// sizeFromEntry maps an entry such as "pack/copy/24.png" to its size class.
func sizeFromEntry(name string) (icon.SizeClass, bool) {
	stem, ok := strings.CutSuffix(path.Base(name), ".png")
	if !ok {
		return 0, false
	}
	var px int
	if _, err := fmt.Sscanf(stem, "%d", &px); err != nil || fmt.Sprint(px) != stem {
		return 0, false
	}
	size, err := icon.ParseSizeClass(px)
	if err != nil {
		return 0, false
	}
	return size, true
}

func checkPNG(data []byte) error {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("not a decodable image: %w", err)
	}
	if format != "png" {
		return fmt.Errorf("expected png, got %s", format)
	}
	return nil
}
