package raster

import (
	"context"
	"io"
)

// MockProcessRunner is a mock implementation of ProcessRunner for testing.
type MockProcessRunner struct {
	// RunFunc allows tests to provide custom behavior
	RunFunc func(ctx context.Context, path string, args []string, stdin io.Reader) (stdout, stderr []byte, err error)

	// LookPathErr is returned from LookPath when set.
	LookPathErr error

	// Calls records the arguments of every Run call.
	Calls [][]string

	// LastPath stores the last path passed to Run
	LastPath string
}

// Run executes the mock behavior.
func (m *MockProcessRunner) Run(ctx context.Context, path string, args []string, stdin io.Reader) ([]byte, []byte, error) {
	m.LastPath = path
	m.Calls = append(m.Calls, append([]string(nil), args...))

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	if m.RunFunc != nil {
		return m.RunFunc(ctx, path, args, stdin)
	}

	return nil, nil, nil
}

// LookPath returns LookPathErr or a fake location.
func (m *MockProcessRunner) LookPath(file string) (string, error) {
	if m.LookPathErr != nil {
		return "", m.LookPathErr
	}
	return "/usr/bin/" + file, nil
}
