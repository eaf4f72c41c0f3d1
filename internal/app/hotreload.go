package app

import (
	"context"
	"os"
	"path/filepath"
	"syscall"
	"time"
)

// HotReloader watches the running binary and reports when a newer build
// replaces it. It also ticks periodically so callers can flush preferences.
type HotReloader struct {
	execPath      string
	baseline      time.Time
	checkInterval time.Duration

	onTick      func()
	onNewBinary func()
}

// NewHotReloader watches the current executable. Returns nil if its path
// cannot be determined.
func NewHotReloader(checkInterval time.Duration) *HotReloader {
	execPath, err := os.Executable()
	if err != nil {
		return nil
	}
	return newHotReloader(execPath, checkInterval)
}

func newHotReloader(path string, checkInterval time.Duration) *HotReloader {
	// go build replaces the file behind a symlink
	if real, err := filepath.EvalSymlinks(path); err == nil {
		path = real
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil
	}
	return &HotReloader{
		execPath:      path,
		baseline:      info.ModTime(),
		checkInterval: checkInterval,
	}
}

// OnTick sets a callback run on every check.
func (h *HotReloader) OnTick(callback func()) {
	h.onTick = callback
}

// OnNewBinary sets the callback run once a newer binary is detected. It is
// called from the watcher goroutine.
func (h *HotReloader) OnNewBinary(callback func()) {
	h.onNewBinary = callback
}

// Run checks the binary until ctx is done or a newer binary is seen.
func (h *HotReloader) Run(ctx context.Context) {
	ticker := time.NewTicker(h.checkInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if h.onTick != nil {
				h.onTick()
			}
			if h.Changed() {
				if h.onNewBinary != nil {
					h.onNewBinary()
				}
				return
			}
		}
	}
}

// Changed reports whether the binary is newer than the baseline.
func (h *HotReloader) Changed() bool {
	info, err := os.Stat(h.execPath)
	if err != nil {
		return false
	}
	return info.ModTime().After(h.baseline)
}

// ExecPath returns the watched file.
func (h *HotReloader) ExecPath() string {
	return h.execPath
}

// Baseline returns the modification time changes are compared against.
func (h *HotReloader) Baseline() time.Time {
	return h.baseline
}

// ResetBaseline accepts the current binary, e.g. after the user declined a
// restart.
func (h *HotReloader) ResetBaseline() {
	if info, err := os.Stat(h.execPath); err == nil {
		h.baseline = info.ModTime()
	}
}

// Restart replaces the current process with the watched binary, keeping
// arguments and environment. It does not return on success.
func (h *HotReloader) Restart() error {
	return syscall.Exec(h.execPath, os.Args, os.Environ())
}
