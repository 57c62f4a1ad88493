// Package icon defines the icon size classes and the on-disk asset layout.
package icon

import (
	"fmt"
	"path/filepath"
	"strconv"
)

// SizeClass is a pixel size at which folder icons are pre-rendered.
type SizeClass int

// Supported size classes.
const (
	Size16 SizeClass = 16
	Size22 SizeClass = 22
	Size24 SizeClass = 24
	Size32 SizeClass = 32
	Size48 SizeClass = 48
)

// SizeClasses returns every supported size class in ascending order.
func SizeClasses() []SizeClass {
	return []SizeClass{Size16, Size22, Size24, Size32, Size48}
}

// ParseSizeClass validates a pixel size against the supported classes.
func ParseSizeClass(px int) (SizeClass, error) {
	for _, s := range SizeClasses() {
		if int(s) == px {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unsupported icon size %d (supported: %v)", px, SizeClasses())
}

// NearestSizeClass snaps an arbitrary pixel size to the largest class that
// does not exceed it, or to the smallest class for tiny sizes.
func NearestSizeClass(px int) SizeClass {
	classes := SizeClasses()
	best := classes[0]
	for _, s := range classes {
		if int(s) <= px {
			best = s
		}
	}
	return best
}

// String returns the size as a plain integer string, the form used in paths.
func (s SizeClass) String() string {
	return strconv.Itoa(int(s))
}

// Layout maps size classes and colour keys to asset paths under a base directory.
//
//	<base>/copy/<size>.png               base assets (reference colour)
//	<base>/places/<size>/<key>.png       rendered assets
type Layout struct {
	BaseDir string
}

// NewLayout creates a Layout rooted at baseDir.
func NewLayout(baseDir string) Layout {
	return Layout{BaseDir: baseDir}
}

// BaseAssetDir returns the directory holding base assets.
func (l Layout) BaseAssetDir() string {
	return filepath.Join(l.BaseDir, "copy")
}

// BasePath returns the base asset path for a size.
func (l Layout) BasePath(size SizeClass) string {
	return filepath.Join(l.BaseAssetDir(), size.String()+".png")
}

// RenderedDir returns the directory holding rendered assets for a size.
func (l Layout) RenderedDir(size SizeClass) string {
	return filepath.Join(l.BaseDir, "places", size.String())
}

// RenderedPath returns the rendered asset path for a size and colour key.
func (l Layout) RenderedPath(size SizeClass, key string) string {
	return filepath.Join(l.RenderedDir(size), key+".png")
}
