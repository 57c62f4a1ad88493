package colour

import (
	"image"
	"image/color"
	"testing"
)

func TestComputeDeltasReference(t *testing.T) {
	ref := MustParse(ReferenceHex)
	d := ComputeDeltas(ref, ref)

	if d.Hue != 1.0 || d.Saturation != 1.0 || d.Brightness != 1.0 {
		t.Errorf("ComputeDeltas(ref, ref) = %s, want all 1.0", d)
	}
	if !d.IsIdentity() {
		t.Error("reference deltas should be the identity")
	}
}

func TestComputeDeltas(t *testing.T) {
	ref := MustParse(ReferenceHex)

	tests := []struct {
		name   string
		target string
		want   Deltas
	}{
		{
			name:   "red",
			target: "#ff0000",
			want:   Deltas{Hue: 2 * (0 - 1.0/6.0 + 0.5), Saturation: 1, Brightness: 1},
		},
		{
			name:   "blue",
			target: "#0000ff",
			want:   Deltas{Hue: 2 * (2.0/3.0 - 1.0/6.0 + 0.5), Saturation: 1, Brightness: 1},
		},
		{
			name:   "white",
			target: "#ffffff",
			want:   Deltas{Hue: 2 * (0 - 1.0/6.0 + 0.5), Saturation: 0, Brightness: 1.5},
		},
		{
			name:   "mid grey",
			target: "#808080",
			want:   Deltas{Hue: 2 * (0 - 1.0/6.0 + 0.5), Saturation: 0, Brightness: 1 + (128.0/255.0 - 0.5)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeDeltas(MustParse(tt.target), ref)
			if !closeTo(got.Hue, tt.want.Hue) || !closeTo(got.Saturation, tt.want.Saturation) || !closeTo(got.Brightness, tt.want.Brightness) {
				t.Errorf("ComputeDeltas(%s) = %s, want %s", tt.target, got, tt.want)
			}
		})
	}
}

func TestPercentagesOrder(t *testing.T) {
	d := Deltas{Hue: 0.5, Saturation: 1.25, Brightness: 0.75}
	b, s, h := d.Percentages()
	if b != 75 || s != 125 || h != 50 {
		t.Errorf("Percentages() = (%v, %v, %v), want (75, 125, 50)", b, s, h)
	}
}

func TestModulateIdentity(t *testing.T) {
	src := sampleIcon()
	got := Modulate(src, 100, 100, 100)

	if !got.Rect.Eq(src.Rect) {
		t.Fatalf("bounds = %v, want %v", got.Rect, src.Rect)
	}
	for i := range src.Pix {
		if got.Pix[i] != src.Pix[i] {
			t.Fatalf("pixel byte %d = %d, want %d", i, got.Pix[i], src.Pix[i])
		}
	}
}

func TestModulateDoesNotMutateSource(t *testing.T) {
	src := sampleIcon()
	before := append([]uint8(nil), src.Pix...)

	_ = Modulate(src, 80, 120, 40)

	for i := range before {
		if src.Pix[i] != before[i] {
			t.Fatalf("source pixel byte %d changed", i)
		}
	}
}

func TestModulateReferencePixels(t *testing.T) {
	ref := MustParse(ReferenceHex)

	tests := []struct {
		name   string
		target string
		want   color.NRGBA
	}{
		{name: "red", target: "#ff0000", want: color.NRGBA{R: 255, A: 255}},
		{name: "green", target: "#00ff00", want: color.NRGBA{G: 255, A: 255}},
		{name: "blue", target: "#0000ff", want: color.NRGBA{B: 255, A: 255}},
		{name: "reference", target: ReferenceHex, want: color.NRGBA{R: 255, G: 255, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := image.NewNRGBA(image.Rect(0, 0, 2, 2))
			for y := 0; y < 2; y++ {
				for x := 0; x < 2; x++ {
					src.SetNRGBA(x, y, ref.Color())
				}
			}

			b, s, h := ComputeDeltas(MustParse(tt.target), ref).Percentages()
			got := Modulate(src, b, s, h).NRGBAAt(1, 1)
			if got != tt.want {
				t.Errorf("Modulate(%s) pixel = %v, want %v", tt.target, got, tt.want)
			}
		})
	}
}

func TestModulatePreservesAlpha(t *testing.T) {
	src := sampleIcon()
	got := Modulate(src, 50, 50, 150)

	for y := 0; y < src.Rect.Dy(); y++ {
		for x := 0; x < src.Rect.Dx(); x++ {
			if got.NRGBAAt(x, y).A != src.NRGBAAt(x, y).A {
				t.Fatalf("alpha changed at (%d,%d)", x, y)
			}
		}
	}
}

func TestModulateHuePeriod(t *testing.T) {
	src := sampleIcon()
	a := Modulate(src, 100, 100, 0)
	b := Modulate(src, 100, 100, 200)

	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			t.Fatalf("hue 0 and 200 differ at byte %d", i)
		}
	}
}

func TestModulateOffsetOrigin(t *testing.T) {
	full := sampleIcon()
	sub := full.SubImage(image.Rect(2, 2, 6, 6)).(*image.NRGBA)

	got := Modulate(sub, 100, 100, 100)
	if got.Rect.Min != (image.Point{}) || got.Rect.Dx() != 4 {
		t.Fatalf("bounds = %v, want 4x4 at origin", got.Rect)
	}
	if got.NRGBAAt(0, 0) != full.NRGBAAt(2, 2) {
		t.Errorf("pixel (0,0) = %v, want %v", got.NRGBAAt(0, 0), full.NRGBAAt(2, 2))
	}
}

// sampleIcon builds an 8x8 image with a yellow body, a darker shade, and a
// transparent corner.
func sampleIcon() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			switch {
			case x == 0 && y == 0:
				img.SetNRGBA(x, y, color.NRGBA{})
			case y < 3:
				img.SetNRGBA(x, y, color.NRGBA{R: 200, G: 180, B: 20, A: 255})
			default:
				img.SetNRGBA(x, y, color.NRGBA{R: 255, G: 255, B: uint8(x * 10), A: uint8(128 + y*16)})
			}
		}
	}
	return img
}
