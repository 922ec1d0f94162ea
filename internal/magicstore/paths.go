// Package magicstore persists magic multipliers and perft results so that
// later runs verify known numbers instead of searching for them.
package magicstore

import (
	"fmt"
	"os"
	"path/filepath"
)

// DirEnv overrides the default database location.
const DirEnv = "STOCKDOGE_CACHE_DIR"

// DefaultDir returns the directory holding the magic database, creating it
// if needed. Everything stored there can be rebuilt, so it lives under the
// user cache directory ($XDG_CACHE_HOME, ~/Library/Caches or %LocalAppData%)
// unless DirEnv is set.
func DefaultDir() (string, error) {
	dir := os.Getenv(DirEnv)
	if dir == "" {
		cache, err := os.UserCacheDir()
		if err != nil {
			return "", fmt.Errorf("magicstore: locate cache dir: %w", err)
		}
		dir = filepath.Join(cache, "stockdoge", "magics")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("magicstore: %w", err)
	}
	return dir, nil
}
