package compression

import (
	"archive/tar"
	"bytes"
	"compress/bzip2"
	"compress/gzip"
	"errors"
	"fmt"
	"io"

	"github.com/ulikunitz/xz"
)

// decompressor returns a reader for the tar stream inside a compressed archive.
func decompressor(data []byte, format Format) (io.Reader, func() error, error) {
	noop := func() error { return nil }

	switch format {
	case FormatTarGz:
		gzr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		return gzr, gzr.Close, nil
	case FormatTarXz:
		xzr, err := xz.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create xz reader: %w", err)
		}
		return xzr, noop, nil
	case FormatTarBz2:
		return bzip2.NewReader(bytes.NewReader(data)), noop, nil
	}
	return nil, nil, fmt.Errorf("not a tar format: %s", format)
}

func extractTar(data []byte, format Format, sel Selector) ([]Entry, error) {
	r, closeFn, err := decompressor(data, format)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	tr := tar.NewReader(r)

	var entries []Entry
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar archive: %w", err)
		}

		if header.Typeflag != tar.TypeReg {
			continue
		}

		ok, err := acceptEntry(header.Name, sel)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		entry, err := readEntry(header.Name, tr)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
