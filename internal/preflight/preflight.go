// Package preflight performs checks before batch work touches the art tree.
package preflight

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/go-ps"
)

// ProcessLister returns the running processes.
type ProcessLister func() ([]ps.Process, error)

// OtherInstances returns the PIDs of processes named name, excluding self.
func OtherInstances(list ProcessLister, name string, self int) ([]int, error) {
	processes, err := list()
	if err != nil {
		return nil, fmt.Errorf("failed to get process list: %w", err)
	}

	var pids []int
	for _, p := range processes {
		if p.Pid() == self || p.Executable() != name {
			continue
		}
		pids = append(pids, p.Pid())
	}
	return pids, nil
}

// ExecutableName returns the base name of the running binary, as the
// process table reports it.
func ExecutableName() string {
	exe, err := os.Executable()
	if err != nil {
		return filepath.Base(os.Args[0])
	}
	return strings.TrimSuffix(filepath.Base(exe), ".exe")
}

// WarnConcurrentRuns logs a warning when another copy of this binary is
// running. It never fails the caller.
func WarnConcurrentRuns(logger hclog.Logger) {
	pids, err := OtherInstances(ps.Processes, ExecutableName(), os.Getpid())
	if err != nil {
		logger.Debug("skipping concurrent run check", "error", err)
		return
	}
	if len(pids) > 0 {
		logger.Warn("another artforge process is running; both may write the same files", "pids", pids)
	}
}
