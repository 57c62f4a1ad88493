// Package compression extracts icon packs from compressed archives.
package compression

import (
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/jmylchreest/foldertint/internal/security"
)

// MaxEntrySize bounds the decompressed size of a single archive entry.
const MaxEntrySize = 16 * 1024 * 1024

// Format identifies an archive container and compression.
type Format string

// Supported archive formats.
const (
	FormatTarGz  Format = "tar.gz"
	FormatTarXz  Format = "tar.xz"
	FormatTarBz2 Format = "tar.bz2"
	FormatZip    Format = "zip"
)

// Entry is an accepted archive member.
type Entry struct {
	// Name is the entry's path inside the archive.
	Name string
	// Data is the decompressed content.
	Data []byte
}

// Selector decides whether an archive entry should be extracted.
type Selector func(name string) bool

// DetectFormat infers the archive format from a file name or URL.
func DetectFormat(name string) (Format, error) {
	lower := strings.ToLower(name)
	if idx := strings.IndexAny(lower, "?#"); idx != -1 && strings.Contains(lower, "://") {
		lower = lower[:idx]
	}

	switch {
	case strings.HasSuffix(lower, ".tar.gz"), strings.HasSuffix(lower, ".tgz"):
		return FormatTarGz, nil
	case strings.HasSuffix(lower, ".tar.xz"), strings.HasSuffix(lower, ".txz"):
		return FormatTarXz, nil
	case strings.HasSuffix(lower, ".tar.bz2"), strings.HasSuffix(lower, ".tbz"), strings.HasSuffix(lower, ".tbz2"):
		return FormatTarBz2, nil
	case strings.HasSuffix(lower, ".zip"):
		return FormatZip, nil
	}
	return "", fmt.Errorf("unsupported archive format: %s", name)
}

// Extract reads every regular-file entry accepted by sel from an archive.
// Entry names are validated against path traversal before selection, and each
// entry is limited to MaxEntrySize bytes once decompressed.
func Extract(data []byte, format Format, sel Selector) ([]Entry, error) {
	switch format {
	case FormatTarGz, FormatTarXz, FormatTarBz2:
		return extractTar(data, format, sel)
	case FormatZip:
		return extractZip(data, sel)
	}
	return nil, fmt.Errorf("unsupported archive format: %s", format)
}

// acceptEntry validates name and applies the selector.
func acceptEntry(name string, sel Selector) (bool, error) {
	if err := security.ValidateArchiveEntry(name); err != nil {
		return false, err
	}
	return sel == nil || sel(path.Clean(name)), nil
}

func readEntry(name string, r io.Reader) (Entry, error) {
	data, err := io.ReadAll(security.NewLimitedReader(r, MaxEntrySize))
	if err != nil {
		return Entry{}, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return Entry{Name: path.Clean(name), Data: data}, nil
}
