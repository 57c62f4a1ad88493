// Package colour parses folder colours and recolours icon bitmaps.
package colour

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ReferenceHex is the colour the base icon assets are authored in.
const ReferenceHex = "#ffff00"

// ErrInvalidColor is returned when a colour string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// RGB represents a color in RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// HSL is a normalised hue/saturation/lightness triple.
// H is in [0,1) and represents a full turn; S and L are in [0,1].
type HSL struct {
	H float64
	S float64
	L float64
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a hex string (e.g., "#1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// Key returns the canonical cache key for the colour. It is the lower-case
// "#rrggbb" form, so every 8-bit colour maps to exactly one key.
func (rgb RGB) Key() string {
	return rgb.Hex()
}

// HSL converts the colour to normalised HSL.
func (rgb RGB) HSL() HSL {
	h, s, l := rgb.colorful().Hsl()
	return HSL{H: h / 360.0, S: s, L: l}
}

// Color converts the value to an opaque color.NRGBA.
func (rgb RGB) Color() color.NRGBA {
	return color.NRGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

func (rgb RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// MustParse is like Parse but panics on error. Intended for constants.
func MustParse(s string) RGB {
	rgb, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return rgb
}

// Parse parses a colour string.
// Supported forms: #rgb, #rrggbb, #rrggbbaa, #rrrrggggbbbb and rgb(r, g, b).
// Alpha is accepted and ignored.
func Parse(s string) (RGB, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	if v == "" {
		return RGB{}, fmt.Errorf("%w: empty string", ErrInvalidColor)
	}

	if strings.HasPrefix(v, "rgb(") {
		return parseFunctional(v)
	}

	if !strings.HasPrefix(v, "#") || !isHex(v[1:]) {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}

	switch len(v) {
	case 4, 7:
		c, err := colorful.Hex(v)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		r, g, b := c.RGB255()
		return RGB{R: r, G: g, B: b}, nil
	case 9:
		return parseHexChannels(v[1:7], 2, s)
	case 13:
		return parseHexChannels(v[1:], 4, s)
	}

	return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
}

func isHex(s string) bool {
	for _, r := range s {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return false
		}
	}
	return true
}

// parseHexChannels reads three channels of width digits each and keeps the
// most significant byte of each.
func parseHexChannels(digits string, width int, orig string) (RGB, error) {
	var ch [3]uint8
	for i := range ch {
		part := digits[i*width : (i+1)*width]
		n, err := strconv.ParseUint(part, 16, 16)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
		}
		ch[i] = uint8(n >> (4 * (width - 2)))
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

func parseFunctional(v string) (RGB, error) {
	inner, ok := strings.CutPrefix(v, "rgb(")
	if !ok || !strings.HasSuffix(inner, ")") {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
	}
	parts := strings.Split(strings.TrimSuffix(inner, ")"), ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
	}

	var ch [3]uint8
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 || n > 255 {
			return RGB{}, fmt.Errorf("%w: %q", ErrInvalidColor, v)
		}
		ch[i] = uint8(n)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}
