package colour

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  RGB
	}{
		{name: "six digit", input: "#ff8000", want: RGB{R: 255, G: 128, B: 0}},
		{name: "upper case", input: "#FFFF00", want: RGB{R: 255, G: 255, B: 0}},
		{name: "three digit", input: "#f00", want: RGB{R: 255, G: 0, B: 0}},
		{name: "alpha ignored", input: "#11223380", want: RGB{R: 0x11, G: 0x22, B: 0x33}},
		{name: "sixteen bit channels", input: "#ffff80800000", want: RGB{R: 255, G: 128, B: 0}},
		{name: "functional", input: "rgb(10, 20, 30)", want: RGB{R: 10, G: 20, B: 30}},
		{name: "surrounding whitespace", input: "  #000000\n", want: RGB{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseInvalid(t *testing.T) {
	inputs := []string{
		"",
		"ff0000",
		"#ff00",
		"#gg0000",
		"#12345z",
		"rgb(1, 2)",
		"rgb(1, 2, 256)",
		"rgb(a, b, c)",
		"red",
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			_, err := Parse(input)
			if !errors.Is(err, ErrInvalidColor) {
				t.Errorf("Parse(%q) error = %v, want ErrInvalidColor", input, err)
			}
		})
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"#FFFF00", "#ffff00"},
		{"#f00", "#ff0000"},
		{"rgb(1, 2, 3)", "#010203"},
		{"#0000ffff0000", "#00ff00"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := MustParse(tt.input).Key(); got != tt.want {
				t.Errorf("Key() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestKeyIsInjective(t *testing.T) {
	seen := make(map[string]RGB)
	for r := 0; r < 256; r += 17 {
		for g := 0; g < 256; g += 17 {
			for b := 0; b < 256; b += 17 {
				rgb := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				key := rgb.Key()
				if prev, ok := seen[key]; ok {
					t.Fatalf("key %s shared by %v and %v", key, prev, rgb)
				}
				seen[key] = rgb
			}
		}
	}
}

func TestHSL(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want HSL
	}{
		{name: "yellow", rgb: RGB{R: 255, G: 255}, want: HSL{H: 1.0 / 6.0, S: 1, L: 0.5}},
		{name: "red", rgb: RGB{R: 255}, want: HSL{H: 0, S: 1, L: 0.5}},
		{name: "blue", rgb: RGB{B: 255}, want: HSL{H: 2.0 / 3.0, S: 1, L: 0.5}},
		{name: "white", rgb: RGB{R: 255, G: 255, B: 255}, want: HSL{H: 0, S: 0, L: 1}},
		{name: "black", rgb: RGB{}, want: HSL{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.rgb.HSL()
			if !closeTo(got.H, tt.want.H) || !closeTo(got.S, tt.want.S) || !closeTo(got.L, tt.want.L) {
				t.Errorf("HSL() = %+v, want %+v", got, tt.want)
			}
			if got.H < 0 || got.H >= 1 {
				t.Errorf("hue %v outside [0,1)", got.H)
			}
		})
	}
}

func closeTo(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestSwatch(t *testing.T) {
	tests := []struct {
		name   string
		c      RGB
		text   string
		width  int
		wantFg string
		wantTx string
	}{
		{"light background", MustParse("#ffff80"), "ab", 6, "\033[38;2;0;0;0m", "  ab  "},
		{"dark background", MustParse("#000080"), "abcdefghij", 4, "\033[38;2;255;255;255m", "abcd"},
		{"default width", MustParse("#ff0000"), "", 0, "\033[38;2;", "        "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Swatch(tt.c, tt.text, tt.width)
			bg := fmt.Sprintf("\033[48;2;%d;%d;%dm", tt.c.R, tt.c.G, tt.c.B)
			if !strings.HasPrefix(got, bg) {
				t.Errorf("Swatch() = %q, want prefix %q", got, bg)
			}
			if !strings.Contains(got, tt.wantFg) {
				t.Errorf("Swatch() = %q, want foreground %q", got, tt.wantFg)
			}
			if !strings.HasSuffix(got, tt.wantTx+"\033[0m") {
				t.Errorf("Swatch() = %q, want text %q", got, tt.wantTx)
			}
		})
	}
}
