package driver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSpawnFailed means the driver executable could not be started at
	// all: missing binary, bad permissions, or a port taken between
	// allocation and spawn.
	ErrSpawnFailed = errors.New("driver process could not be started")

	// ErrStartTimeout means the process spawned but never answered the
	// readiness probe within the startup timeout. The process is killed
	// before this is returned.
	ErrStartTimeout = errors.New("driver did not become ready in time")
)

// startError wraps a start failure with the download guidance from the
// config, so callers can surface "executable not found, get it from ..."
// without knowing the driver.
func startError(sentinel error, cfg Config, cause error) error {
	var b strings.Builder
	b.WriteString(cfg.ExecutableName)
	if cause != nil {
		fmt.Fprintf(&b, ": %v", cause)
	}
	if cfg.DownloadURL != "" {
		fmt.Fprintf(&b, "; see %s", cfg.DownloadURL)
	}
	return fmt.Errorf("%w: %s", sentinel, b.String())
}
