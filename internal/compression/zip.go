package compression

import (
	"archive/zip"
	"bytes"
	"fmt"
)

func extractZip(data []byte, sel Selector) ([]Entry, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to create zip reader: %w", err)
	}

	var entries []Entry
	for _, f := range zr.File {
		if !f.Mode().IsRegular() {
			continue
		}

		ok, err := acceptEntry(f.Name, sel)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", f.Name, err)
		}
		entry, err := readEntry(f.Name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}
