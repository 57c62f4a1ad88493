// Package viewsize resolves the icon pixel size a file-manager view displays
// folders at, from per-folder view metadata and the file manager's defaults.
package viewsize

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
)

// ZoomLevelCount is the number of zoom steps each view supports.
const ZoomLevelCount = 7

// NoParentSize is used when the folder being coloured has no known parent view.
const NoParentSize = 64

// Well-known view names.
const (
	IconView    = "icon-view"
	ListView    = "list-view"
	CompactView = "compact-view"
)

var (
	// ErrUnknownView is returned when the default view has no size table entry.
	ErrUnknownView = errors.New("unknown view")

	// ErrInvalidZoomLevel is returned for zoom levels outside 0..6 or unknown names.
	ErrInvalidZoomLevel = errors.New("invalid zoom level")
)

// ZoomTable maps a view name to the icon size at each zoom level.
type ZoomTable map[string][ZoomLevelCount]int

// DefaultZoomTable returns the built-in zoom table.
// List and compact view sizes are measured rather than taken from the file
// manager's headers, which do not match what it draws.
func DefaultZoomTable() ZoomTable {
	return ZoomTable{
		IconView:    {24, 32, 48, 64, 96, 128, 256},
		ListView:    {16, 16, 24, 32, 48, 72, 96},
		CompactView: {16, 16, 18, 24, 36, 48, 96},
	}
}

// Views returns the table's view names in sorted order.
func (t ZoomTable) Views() []string {
	return slices.Sorted(maps.Keys(t))
}

var zoomLevelNames = map[string]int{
	"smallest": 0,
	"smaller":  1,
	"small":    2,
	"standard": 3,
	"large":    4,
	"larger":   5,
	"largest":  6,
}

// ZoomLevelNames returns the named zoom levels in ascending order.
func ZoomLevelNames() []string {
	names := slices.Collect(maps.Keys(zoomLevelNames))
	slices.SortFunc(names, func(a, b string) int { return zoomLevelNames[a] - zoomLevelNames[b] })
	return names
}

// ParseZoomLevel accepts either a zoom name ("standard") or an index ("3").
func ParseZoomLevel(s string) (int, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if idx, ok := zoomLevelNames[s]; ok {
		return idx, nil
	}
	idx, err := strconv.Atoi(s)
	if err != nil || idx < 0 || idx >= ZoomLevelCount {
		return 0, fmt.Errorf("%w: %q", ErrInvalidZoomLevel, s)
	}
	return idx, nil
}

// Settings supplies the file manager's view preferences.
type Settings interface {
	// IgnoreViewMetadata reports whether per-folder view metadata is ignored.
	IgnoreViewMetadata() bool
	// DefaultView is the default folder view, e.g. "icon-view".
	DefaultView() string
	// DefaultZoomLevel is the default zoom level name for a view.
	DefaultZoomLevel(view string) string
}

// ViewMetadata is the per-folder view metadata stored by the file manager.
type ViewMetadata struct {
	// View is either a host view id such as "OAFIID:Nemo_File_Manager_List_View"
	// or a plain view name such as "list-view". Empty means the default view.
	View string
	// ZoomLevel is the stored zoom index ("0".."6"). Empty means the view's default.
	ZoomLevel string
}

var viewIDPattern = regexp.MustCompile(`OAFIID:[A-Za-z]+_File_Manager_(\w+)_View`)

// NormalizeView maps a host view id to a view name. Plain names pass through
// lower-cased; unrecognised ids are returned unchanged.
func NormalizeView(view string) string {
	if m := viewIDPattern.FindStringSubmatch(view); m != nil {
		return strings.ToLower(m[1]) + "-view"
	}
	return strings.ToLower(strings.TrimSpace(view))
}

// Resolver maps view metadata to an icon pixel size.
type Resolver struct {
	settings Settings
	table    ZoomTable
	logger   hclog.Logger
}

// NewResolver creates a Resolver. A nil table uses DefaultZoomTable.
func NewResolver(settings Settings, table ZoomTable, logger hclog.Logger) *Resolver {
	if table == nil {
		table = DefaultZoomTable()
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Resolver{
		settings: settings,
		table:    table,
		logger:   logger.Named("viewsize"),
	}
}

// ResolveIconSize returns the icon size in pixels for a folder whose parent
// has the given view metadata. A nil meta means there is no parent to inspect.
func (r *Resolver) ResolveIconSize(meta *ViewMetadata) (int, error) {
	if r.settings.IgnoreViewMetadata() {
		r.logger.Debug("view metadata ignored, using default view")
		return r.DefaultViewIconSize()
	}

	if meta == nil {
		r.logger.Debug("no parent view metadata", "size", NoParentSize)
		return NoParentSize, nil
	}

	view := meta.View
	if view == "" {
		view = r.settings.DefaultView()
	}
	view = NormalizeView(view)

	sizes, ok := r.table[view]
	if !ok {
		r.logger.Debug("unknown view, falling back to defaults", "view", view)
		return r.DefaultViewIconSize()
	}

	zoom := meta.ZoomLevel
	if zoom == "" {
		// The view was set for this folder but zoom never changed.
		zoom = r.settings.DefaultZoomLevel(view)
	}
	idx, err := ParseZoomLevel(zoom)
	if err != nil {
		return 0, fmt.Errorf("view %s: %w", view, err)
	}

	size := sizes[idx]
	r.logger.Debug("resolved icon size", "view", view, "zoom", idx, "size", size)
	return size, nil
}

// DefaultViewIconSize returns the icon size of the default view at its default zoom.
func (r *Resolver) DefaultViewIconSize() (int, error) {
	view := NormalizeView(r.settings.DefaultView())
	sizes, ok := r.table[view]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownView, view)
	}

	idx, err := ParseZoomLevel(r.settings.DefaultZoomLevel(view))
	if err != nil {
		return 0, fmt.Errorf("default zoom for %s: %w", view, err)
	}
	return sizes[idx], nil
}
