//go:build android

package game

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// prepareStorage creates the saves directory gdata writes to on Android.
// gdata uses /data/data/{package}/ but does not create the subdirectory.
func prepareStorage() error {
	raw, err := os.ReadFile("/proc/self/cmdline")
	if err != nil {
		return fmt.Errorf("read package name: %w", err)
	}
	// cmdline 以 NUL 分隔，第一个字段是包名
	pkg := string(bytes.TrimRight(bytes.SplitN(raw, []byte{0}, 2)[0], "\n"))
	if pkg == "" {
		return fmt.Errorf("empty package name in /proc/self/cmdline")
	}

	dir := filepath.Join("/data/data", pkg, "saves")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	return nil
}
