package colour

import (
	"fmt"
	"image"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	imgutil "github.com/jmylchreest/foldertint/internal/image"
)

// Deltas are the modulation factors that move the reference colour onto a
// target colour. A value of 1.0 leaves the channel unchanged.
type Deltas struct {
	// Hue is 2*(target-reference+0.5). 1.0 is neutral and the period is 2.0.
	Hue float64
	// Saturation is 1+(target-reference).
	Saturation float64
	// Brightness is 1+(target-reference) on HSL lightness.
	Brightness float64
}

// ComputeDeltas derives the modulation deltas that turn reference into target.
func ComputeDeltas(target, reference RGB) Deltas {
	t := target.HSL()
	r := reference.HSL()

	return Deltas{
		Hue:        2 * (t.H - r.H + 0.5),
		Saturation: 1 + (t.S - r.S),
		Brightness: 1 + (t.L - r.L),
	}
}

// Percentages returns the deltas as modulate percentages in the conventional
// (brightness, saturation, hue) order.
func (d Deltas) Percentages() (brightness, saturation, hue float64) {
	return d.Brightness * 100, d.Saturation * 100, d.Hue * 100
}

// IsIdentity reports whether applying the deltas leaves an image unchanged.
func (d Deltas) IsIdentity() bool {
	b, s, h := d.Percentages()
	return b == 100 && s == 100 && h == 100
}

// String returns a compact representation used in log lines.
func (d Deltas) String() string {
	return fmt.Sprintf("hue=%.4f sat=%.4f bright=%.4f", d.Hue, d.Saturation, d.Brightness)
}

// Modulate applies a brightness/saturation/hue modulation in HSL space and
// returns a new image. Each argument is a percentage where 100 means no
// change. Hue cycles with a period of 200, so 0 and 200 both rotate by half a
// turn. Alpha is preserved and src is never modified.
func Modulate(src image.Image, brightness, saturation, hue float64) *image.NRGBA {
	dst := imgutil.ToNRGBA(src)
	if brightness == 100 && saturation == 100 && hue == 100 {
		return dst
	}

	shift := math.Mod(hue-100, 200) / 200
	sf := saturation / 100
	lf := brightness / 100

	for i := 0; i+3 < len(dst.Pix); i += 4 {
		c := colorful.Color{
			R: float64(dst.Pix[i]) / 255.0,
			G: float64(dst.Pix[i+1]) / 255.0,
			B: float64(dst.Pix[i+2]) / 255.0,
		}
		h, s, l := c.Hsl()

		h = wrapUnit(h/360.0 + shift)
		s = clampUnit(s * sf)
		l = clampUnit(l * lf)

		r, g, b := colorful.Hsl(h*360.0, s, l).Clamped().RGB255()
		dst.Pix[i] = r
		dst.Pix[i+1] = g
		dst.Pix[i+2] = b
	}

	return dst
}

func wrapUnit(v float64) float64 {
	v -= math.Floor(v)
	if v >= 1 {
		v = 0
	}
	return v
}

func clampUnit(v float64) float64 {
	return math.Max(0.0, math.Min(1.0, v))
}
