package helper

import (
	"os"
	"path/filepath"
)

// ConfigDirEnv overrides the system-wide fallback directory for config files.
const ConfigDirEnv = "KUKKUTA_CONFIG_DIR"

// DefaultConfigDir is where packaged installs keep their configuration.
const DefaultConfigDir = "/etc/kukkuta"

// GetCfgPath returns the path to the configuration file.
//
// Priority:
// 1. If filename is an absolute path, return it directly.
// 2. Check ./{filename} and ./configs/{filename}
// 3. Otherwise, fallback to $KUKKUTA_CONFIG_DIR/{filename} or /etc/kukkuta/{filename}
func GetCfgPath(filename string) string {
	if filename == "" {
		panic("filename cannot be empty")
	}

	if filepath.IsAbs(filename) {
		return filename
	}

	if p := lookupLocal(filename); p != "" {
		return p
	}

	dir := DefaultConfigDir
	if v := os.Getenv(ConfigDirEnv); v != "" {
		dir = v
	}
	return filepath.Join(dir, filename)
}

func lookupLocal(filename string) string {
	wd, err := os.Getwd()
	if err != nil || wd == "" {
		return ""
	}

	for _, candidate := range []string{
		filepath.Join(wd, filename),
		filepath.Join(wd, "configs", filename),
	} {
		if _, err := os.Stat(candidate); err != nil {
			continue
		}
		if abs, err := filepath.Abs(candidate); err == nil {
			return abs
		}
	}
	return ""
}
