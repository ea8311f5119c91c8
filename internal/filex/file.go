// Package filex resolves per-user filesystem locations following the host
// platform's conventions.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// AppDataDir returns the application's data directory under the user's
// configuration root. It only resolves the path; creating the directory is
// left to whoever first writes into it, so resolving a default never leaves
// an empty directory behind.
func AppDataDir(app string) (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving user config dir: %w", err)
	}
	return filepath.Join(base, app), nil
}
