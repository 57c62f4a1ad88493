// Package config loads foldertint configuration from a TOML file and
// FOLDERTINT_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/jmylchreest/foldertint/internal/colour"
	"github.com/jmylchreest/foldertint/internal/viewsize"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "FOLDERTINT_"

// PathEnv names the environment variable that overrides DefaultPath.
const PathEnv = EnvPrefix + "CONFIG"

// DefaultZoomLevel is the zoom level assumed for views without a configured default.
const DefaultZoomLevel = "standard"

// Config is the complete foldertint configuration.
type Config struct {
	// BaseDir is the icon theme directory holding copy/ and places/.
	BaseDir string `toml:"base_dir" env:"BASE_DIR"`

	// ReferenceColor is the colour the base assets are authored in.
	ReferenceColor string `toml:"reference_color" env:"REFERENCE_COLOR"`

	// LogLevel is an hclog level name.
	LogLevel string `toml:"log_level" env:"LOG_LEVEL"`

	View View `toml:"view" envPrefix:"VIEW_"`
}

// View holds the file manager's view preferences used for icon size resolution.
type View struct {
	// Default is the default folder view, e.g. "icon-view".
	Default string `toml:"default" env:"DEFAULT"`

	// IgnoreMetadata makes size resolution ignore per-folder view metadata.
	IgnoreMetadata bool `toml:"ignore_metadata" env:"IGNORE_METADATA"`

	// ZoomDefaults maps a view to its default zoom level name.
	ZoomDefaults map[string]string `toml:"zoom_defaults"`

	// ZoomTable maps a view to the icon size at each of the 7 zoom levels.
	ZoomTable map[string][]int `toml:"zoom_table"`
}

// IgnoreViewMetadata implements viewsize.Settings.
func (v View) IgnoreViewMetadata() bool {
	return v.IgnoreMetadata
}

// DefaultView implements viewsize.Settings.
func (v View) DefaultView() string {
	return v.Default
}

// DefaultZoomLevel implements viewsize.Settings.
func (v View) DefaultZoomLevel(view string) string {
	if z, ok := v.ZoomDefaults[view]; ok && z != "" {
		return z
	}
	return DefaultZoomLevel
}

// Table converts the configured zoom table for the resolver.
// Call Validate first; rows of the wrong length are skipped.
func (v View) Table() viewsize.ZoomTable {
	table := make(viewsize.ZoomTable, len(v.ZoomTable))
	for view, sizes := range v.ZoomTable {
		if len(sizes) != viewsize.ZoomLevelCount {
			continue
		}
		var row [viewsize.ZoomLevelCount]int
		copy(row[:], sizes)
		table[view] = row
	}
	return table
}

// Default returns the built-in configuration.
func Default() Config {
	table := make(map[string][]int)
	for view, sizes := range viewsize.DefaultZoomTable() {
		table[view] = append([]int(nil), sizes[:]...)
	}

	return Config{
		BaseDir:        DefaultBaseDir(),
		ReferenceColor: colour.ReferenceHex,
		LogLevel:       "warn",
		View: View{
			Default: viewsize.IconView,
			ZoomDefaults: map[string]string{
				viewsize.IconView:    DefaultZoomLevel,
				viewsize.ListView:    DefaultZoomLevel,
				viewsize.CompactView: DefaultZoomLevel,
			},
			ZoomTable: table,
		},
	}
}

// DefaultBaseDir returns ~/.icons/custom, or a relative path if the home
// directory cannot be determined.
func DefaultBaseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".icons", "custom")
	}
	return filepath.Join(home, ".icons", "custom")
}

// DefaultPath returns $FOLDERTINT_CONFIG, or config.toml in the user's
// foldertint config directory.
func DefaultPath() (string, error) {
	if p := os.Getenv(PathEnv); p != "" {
		return p, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to determine config directory: %w", err)
	}
	return filepath.Join(dir, "foldertint", "config.toml"), nil
}

// Load builds a Config from defaults, then the TOML file at path (skipped
// when path is empty or the file does not exist), then the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	_, err := toml.DecodeFile(path, cfg)
	if err == nil {
		return nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to read config %s: %w", path, err)
}

// Validate checks the configuration for values that would fail at render time.
func (c Config) Validate() error {
	if c.BaseDir == "" {
		return fmt.Errorf("base_dir cannot be empty")
	}
	if _, err := colour.Parse(c.ReferenceColor); err != nil {
		return fmt.Errorf("reference_color: %w", err)
	}

	for view, sizes := range c.View.ZoomTable {
		if len(sizes) != viewsize.ZoomLevelCount {
			return fmt.Errorf("zoom_table.%s: expected %d sizes, got %d", view, viewsize.ZoomLevelCount, len(sizes))
		}
		for _, s := range sizes {
			if s <= 0 {
				return fmt.Errorf("zoom_table.%s: sizes must be positive, got %d", view, s)
			}
		}
	}

	if _, ok := c.View.ZoomTable[viewsize.NormalizeView(c.View.Default)]; !ok {
		return fmt.Errorf("view.default: %w: %q", viewsize.ErrUnknownView, c.View.Default)
	}

	for view, zoom := range c.View.ZoomDefaults {
		if _, err := viewsize.ParseZoomLevel(zoom); err != nil {
			return fmt.Errorf("zoom_defaults.%s: %w", view, err)
		}
	}

	return nil
}
