// Package security provides validation for untrusted icon-pack input.
package security

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

// ValidateHTTPURL validates an HTTP(S) URL for safe downloads.
// Only allows HTTPS from non-local hosts.
func ValidateHTTPURL(urlStr string) error {
	if urlStr == "" {
		return fmt.Errorf("empty URL")
	}

	// Parse the URL
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	// Only allow HTTPS (not HTTP)
	if !strings.EqualFold(parsed.Scheme, "https") {
		return fmt.Errorf("only HTTPS URLs are allowed (got %s)", parsed.Scheme)
	}

	// Require a host
	if parsed.Host == "" {
		return fmt.Errorf("URL must have a hostname")
	}

	// Block localhost and private IPs to prevent SSRF
	host := strings.ToLower(parsed.Hostname())
	if isLocalOrPrivateHost(host) {
		return fmt.Errorf("URL cannot point to local or private hosts: %s", host)
	}

	return nil
}

// ValidateArchiveEntry rejects archive entry names that are absolute or
// climb out of the extraction root. Archive names always use forward slashes.
func ValidateArchiveEntry(name string) error {
	if name == "" {
		return fmt.Errorf("empty archive entry name")
	}
	if strings.HasPrefix(name, "/") || strings.Contains(name, "\\") || strings.Contains(name, ":") {
		return fmt.Errorf("absolute paths in archives are not allowed: %s", name)
	}

	for _, part := range strings.Split(path.Clean(name), "/") {
		if part == ".." {
			return fmt.Errorf("archive entry contains directory traversal (..): %s", name)
		}
	}
	return nil
}

// ErrSizeLimitExceeded is returned by LimitedReader once the wrapped reader
// holds more than the allowed number of bytes.
var ErrSizeLimitExceeded = errors.New("decompression size limit exceeded")

// LimitedReader wraps an io.Reader and limits the total bytes that can be read.
// This prevents decompression bomb attacks when extracting archives.
// A stream of exactly the limit reads through to io.EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		var one [1]byte
		n, err := l.R.Read(one[:])
		if n > 0 {
			return 0, ErrSizeLimitExceeded
		}
		return 0, err
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a new LimitedReader with the specified size limit.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{
		R:         r,
		Remaining: maxBytes,
	}
}

// isLocalOrPrivateHost checks if a hostname is localhost or a private IP.
func isLocalOrPrivateHost(host string) bool {
	if host == "localhost" || host == "127.0.0.1" || host == "::1" {
		return true
	}

	for _, prefix := range []string{"192.168.", "10.", "169.254.", "127."} {
		if strings.HasPrefix(host, prefix) {
			return true
		}
	}

	// 172.16.0.0/12
	for i := 16; i <= 31; i++ {
		if strings.HasPrefix(host, fmt.Sprintf("172.%d.", i)) {
			return true
		}
	}

	// Link-local and unique-local IPv6
	if strings.HasPrefix(host, "fe80:") || strings.HasPrefix(host, "fc00:") || strings.HasPrefix(host, "fd00:") {
		return true
	}

	return false
}
