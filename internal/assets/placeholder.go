package assets

import (
	"fmt"
	"image"
	"image/color"

	"github.com/jmylchreest/foldertint/internal/colour"
	"github.com/jmylchreest/foldertint/internal/icon"
	imgutil "github.com/jmylchreest/foldertint/internal/image"
	"github.com/jmylchreest/foldertint/internal/util"
)

// Placeholder draws a flat folder silhouette in c: a tab across the top left
// and a body below it with a darker bottom edge. Everything else is
// transparent.
func Placeholder(size int, c colour.RGB) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))

	fill := c.Color()
	shade := color.NRGBA{R: darken(c.R), G: darken(c.G), B: darken(c.B), A: 255}

	margin := max(size/16, 1)
	tabTop := size / 6
	bodyTop := tabTop + max(size/10, 1)
	bottom := size - margin - size/8
	tabRight := size / 2

	for y := tabTop; y < bottom; y++ {
		for x := margin; x < size-margin; x++ {
			if y < bodyTop && x >= tabRight {
				continue
			}
			if y == bottom-1 {
				img.SetNRGBA(x, y, shade)
				continue
			}
			img.SetNRGBA(x, y, fill)
		}
	}
	return img
}

// Generate installs placeholder base assets for every size class, drawn in
// the reference colour. Existing base assets are kept unless overwrite is set.
func (m *Manager) Generate(reference colour.RGB, overwrite bool) ([]Installed, error) {
	var installed []Installed
	for _, size := range icon.SizeClasses() {
		dest := m.layout.BasePath(size)
		if !overwrite && util.FileExists(dest) {
			m.logger.Debug("keeping existing base asset", "path", dest)
			continue
		}

		data, err := imgutil.EncodePNG(Placeholder(int(size), reference))
		if err != nil {
			return installed, err
		}
		if err := util.WriteFileAtomic(dest, data, 0o644); err != nil {
			return installed, fmt.Errorf("failed to install %s: %w", dest, err)
		}

		installed = append(installed, Installed{Size: size, Path: dest, Source: "placeholder"})
		m.logger.Info("generated base asset", "size", int(size), "path", dest)
	}
	return installed, nil
}

func darken(v uint8) uint8 {
	return uint8(int(v) * 7 / 10)
}
