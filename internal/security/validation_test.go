package security

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestValidateHTTPURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "https://example.com/icons.tar.xz"},
		{url: "", wantErr: true},
		{url: "http://example.com/icons.tar.xz", wantErr: true},
		{url: "https:///icons.tar.xz", wantErr: true},
		{url: "https://localhost/icons.zip", wantErr: true},
		{url: "https://192.168.1.10/icons.zip", wantErr: true},
		{url: "https://172.20.0.1/icons.zip", wantErr: true},
		{url: "https://172.32.0.1/icons.zip"},
		{url: "https://[fe80::1]/icons.zip", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := ValidateHTTPURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}

func TestValidateArchiveEntry(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{name: "16.png"},
		{name: "pack/copy/32.png"},
		{name: "./pack/48.png"},
		{name: "", wantErr: true},
		{name: "/etc/passwd", wantErr: true},
		{name: "../16.png", wantErr: true},
		{name: "pack/../../16.png", wantErr: true},
		{name: "C:\\icons\\16.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArchiveEntry(tt.name)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateArchiveEntry(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestLimitedReader(t *testing.T) {
	r := NewLimitedReader(strings.NewReader("0123456789"), 4)

	got, err := io.ReadAll(r)
	if !errors.Is(err, ErrSizeLimitExceeded) {
		t.Fatalf("ReadAll() error = %v, want ErrSizeLimitExceeded", err)
	}
	if string(got) != "0123" {
		t.Errorf("read %q before limit, want %q", got, "0123")
	}

	r = NewLimitedReader(strings.NewReader("0123"), 10)
	got, err = io.ReadAll(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got) != "0123" {
		t.Errorf("read %q, want %q", got, "0123")
	}
}

func TestLimitedReaderExactLimit(t *testing.T) {
	r := NewLimitedReader(strings.NewReader("0123"), 4)
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll() error = %v, want nil at exactly the limit", err)
	}
	if string(got) != "0123" {
		t.Errorf("read %q, want %q", got, "0123")
	}

	r = NewLimitedReader(strings.NewReader("01234"), 4)
	if _, err := io.ReadAll(r); !errors.Is(err, ErrSizeLimitExceeded) {
		t.Errorf("ReadAll() one byte over error = %v, want ErrSizeLimitExceeded", err)
	}
}
