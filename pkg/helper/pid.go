package helper

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// DefaultPIDFile is used when the configuration leaves the pid path empty.
const DefaultPIDFile = "/var/run/kukkuta-apiserver.pid"

// GetPIDPath returns the path to the PID file.
//
// Absolute paths are returned as is. A relative path resolves against the
// working directory when its parent exists, otherwise DefaultPIDFile is used.
func GetPIDPath(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	if filename == "" {
		return DefaultPIDFile
	}

	wd, err := os.Getwd()
	if err != nil || wd == "" {
		return DefaultPIDFile
	}
	absPath, err := filepath.Abs(filepath.Join(wd, filename))
	if err != nil {
		return DefaultPIDFile
	}
	if _, err := os.Stat(filepath.Dir(absPath)); err != nil {
		return DefaultPIDFile
	}
	return absPath
}

// PIDFile writes and removes the process id file of a running server.
type PIDFile struct {
	path string
}

// NewPIDFile creates a PIDFile for the given (already resolved) path
func NewPIDFile(path string) *PIDFile {
	return &PIDFile{path: path}
}

// Path returns the PID file path
func (p *PIDFile) Path() string {
	return p.path
}

// Write stores the current process id, creating parent directories as needed
func (p *PIDFile) Write() error {
	if err := os.MkdirAll(filepath.Dir(p.path), 0o755); err != nil {
		return fmt.Errorf("failed to create PID directory: %w", err)
	}
	return os.WriteFile(p.path, []byte(strconv.Itoa(os.Getpid())+"\n"), 0o644)
}

// Remove deletes the PID file. A missing file is not an error.
func (p *PIDFile) Remove() error {
	if err := os.Remove(p.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
