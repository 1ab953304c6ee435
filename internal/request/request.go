package request

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNoSource  = errors.New("no source file selected")
	ErrNotPython = errors.New("source file must have a .py extension")
)

// Request carries the user-supplied parameters for one packaging
// attempt. A request lives for exactly one conversion; nothing is
// retained across attempts.
type Request struct {
	SourcePath string
	OutputName string
	IconPath   string
	OneFile    bool
	Windowed   bool
}

// Validate checks the source file and normalizes the request in place.
// A blank output name defaults to the source file stem. The icon path
// is kept as entered; whether it is usable is decided at invocation
// time.
func (r *Request) Validate() error {
	r.SourcePath = strings.TrimSpace(r.SourcePath)
	r.OutputName = strings.TrimSpace(r.OutputName)
	r.IconPath = strings.TrimSpace(r.IconPath)

	if r.SourcePath == "" {
		return ErrNoSource
	}
	info, err := os.Stat(r.SourcePath)
	if err != nil {
		return fmt.Errorf("source file: %w", err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("source file %q is not a regular file", r.SourcePath)
	}
	if !strings.EqualFold(filepath.Ext(r.SourcePath), ".py") {
		return ErrNotPython
	}

	if r.OutputName == "" {
		r.OutputName = Stem(r.SourcePath)
	}
	return nil
}

// SourceDir returns the directory containing the source file. It is
// the working directory for the whole conversion. filepath.Dir
// already yields "." for a bare filename.
func (r *Request) SourceDir() string {
	return filepath.Dir(r.SourcePath)
}

// IconUsable reports whether the icon path is set and refers to an
// existing regular file. An unusable icon is skipped, never an error.
func (r *Request) IconUsable() bool {
	if r.IconPath == "" {
		return false
	}
	info, err := os.Stat(r.IconPath)
	return err == nil && info.Mode().IsRegular()
}

// Stem returns the file name without its extension.
func Stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
