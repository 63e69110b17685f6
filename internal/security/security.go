// Package security guards archive extraction against path traversal and
// decompression bombs.
package security

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrLimitExceeded is returned by LimitedReader once its budget is spent.
var ErrLimitExceeded = errors.New("decompression size limit exceeded")

// ValidateArchivePath rejects archive entry names that would land outside
// baseDir once joined to it.
func ValidateArchivePath(name, baseDir string) error {
	if name == "" {
		return fmt.Errorf("empty file path")
	}
	if filepath.IsAbs(name) || strings.HasPrefix(name, "/") {
		return fmt.Errorf("absolute paths in archives are not allowed: %s", name)
	}
	for _, part := range strings.Split(filepath.ToSlash(name), "/") {
		if part == ".." {
			return fmt.Errorf("file path contains directory traversal: %s", name)
		}
	}

	cleanBase := filepath.Clean(baseDir)
	cleanFinal := filepath.Clean(filepath.Join(cleanBase, name))
	if cleanFinal != cleanBase && !strings.HasPrefix(cleanFinal, cleanBase+string(filepath.Separator)) {
		return fmt.Errorf("file path would escape base directory: %s", name)
	}
	return nil
}

// LimitedReader wraps an io.Reader and fails once more than Remaining bytes
// have been requested, unlike io.LimitReader which reports a silent EOF.
type LimitedReader struct {
	R         io.Reader
	Remaining int64
}

// Read implements io.Reader with size limits.
func (l *LimitedReader) Read(p []byte) (int, error) {
	if l.Remaining <= 0 {
		return 0, ErrLimitExceeded
	}
	if int64(len(p)) > l.Remaining {
		p = p[:l.Remaining]
	}
	n, err := l.R.Read(p)
	l.Remaining -= int64(n)
	return n, err
}

// NewLimitedReader creates a LimitedReader with the given budget.
func NewLimitedReader(r io.Reader, maxBytes int64) *LimitedReader {
	return &LimitedReader{R: r, Remaining: maxBytes}
}
