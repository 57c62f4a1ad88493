package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func checker(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			c := color.NRGBA{R: 255, G: 255, A: 255}
			if (x+y)%2 == 0 {
				c = color.NRGBA{R: 10, G: 20, B: 30, A: 128}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()
	data, err := EncodePNG(checker(4))
	if err != nil {
		t.Fatalf("EncodePNG() error = %v", err)
	}
	path := filepath.Join(dir, "icon.png")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	loader := NewFileLoader()

	img, err := loader.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if img.Bounds().Dx() != 4 {
		t.Errorf("Load() width = %d, want 4", img.Bounds().Dx())
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := loader.Load(filepath.Join(dir, "nope.png"))
		if !errors.Is(err, fs.ErrNotExist) {
			t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
		}
	})

	t.Run("directory", func(t *testing.T) {
		if _, err := loader.Load(dir); err == nil {
			t.Error("Load() expected error for directory")
		}
	})

	t.Run("empty path", func(t *testing.T) {
		if _, err := loader.Load(""); err == nil {
			t.Error("Load() expected error for empty path")
		}
	})

	t.Run("not an image", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.png")
		if err := os.WriteFile(bad, []byte("text"), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := loader.Load(bad); err == nil {
			t.Error("Load() expected decode error")
		}
	})
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"a.png", true},
		{"a.PNG", true},
		{"a.webp", true},
		{"a.svg", false},
		{"png", false},
	}
	for _, tt := range tests {
		if got := IsImageFile(tt.path); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestToNRGBA(t *testing.T) {
	src := checker(6)

	t.Run("sub image origin", func(t *testing.T) {
		sub := src.SubImage(image.Rect(2, 2, 5, 5)).(*image.NRGBA)
		got := ToNRGBA(sub)
		if got.Bounds() != image.Rect(0, 0, 3, 3) {
			t.Fatalf("ToNRGBA() bounds = %v, want 3x3 at origin", got.Bounds())
		}
		if got.NRGBAAt(0, 0) != src.NRGBAAt(2, 2) || got.NRGBAAt(2, 1) != src.NRGBAAt(4, 3) {
			t.Error("ToNRGBA() pixels not copied from sub image offset")
		}
	})

	t.Run("copy is independent", func(t *testing.T) {
		got := ToNRGBA(src)
		got.Pix[0] = 99
		if src.Pix[0] == 99 {
			t.Error("ToNRGBA() shares pixel data with source")
		}
	})

	t.Run("converts other models", func(t *testing.T) {
		gray := image.NewGray(image.Rect(0, 0, 2, 2))
		gray.Pix[0] = 200
		got := ToNRGBA(gray)
		if c := got.NRGBAAt(0, 0); c != (color.NRGBA{R: 200, G: 200, B: 200, A: 255}) {
			t.Errorf("ToNRGBA() pixel = %v", c)
		}
	})
}

func TestScale(t *testing.T) {
	for _, size := range []int{16, 22, 48} {
		got := Scale(checker(64), size)
		if got.Bounds() != image.Rect(0, 0, size, size) {
			t.Errorf("Scale(%d) bounds = %v", size, got.Bounds())
		}
	}
}

func TestEncodePNGDeterministic(t *testing.T) {
	img := checker(8)
	a, err := EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	b, err := EncodePNG(img)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a, b) {
		t.Error("EncodePNG() output differs between runs")
	}

	decoded, err := Decode(bytes.NewReader(a))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got := ToNRGBA(decoded).NRGBAAt(0, 0); got != img.NRGBAAt(0, 0) {
		t.Errorf("round trip pixel = %v, want %v", got, img.NRGBAAt(0, 0))
	}
}
