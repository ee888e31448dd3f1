// Package runtimepath resolves the per-user filesystem locations the
// daemon uses at runtime.
package runtimepath

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

// Dir returns the runtime directory used for the IPC socket, creating it
// when missing. xdg resolves XDG_RUNTIME_DIR and falls back to a per-user
// default when unset.
func Dir() (string, error) {
	dir := xdg.RuntimeDir
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create runtime dir: %w", err)
	}
	return dir, nil
}

// SocketPath returns the daemon IPC socket path.
func SocketPath() (string, error) {
	runtimeDir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(runtimeDir, "pixeldrift.sock"), nil
}

// DefaultLogPath returns the daemon log file location under the XDG state
// home, e.g. ~/.local/state/pixeldrift/pixeldrift.log.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, "pixeldrift", "pixeldrift.log")
}
