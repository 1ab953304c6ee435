package pyinstaller

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// CleanArtifacts removes the build/ and dist/ directories and the
// generated spec file left by a previous run for the same output name.
// Removal is best-effort: a locked or undeletable artifact is reported
// as a warning through the sink and never aborts the workflow. Calling
// it with nothing present is a no-op.
func CleanArtifacts(dir, name string, sink func(string)) {
	targets := []struct {
		path  string
		label string
		isDir bool
	}{
		{filepath.Join(dir, "build"), "'build' folder", true},
		{filepath.Join(dir, "dist"), "'dist' folder", true},
		{filepath.Join(dir, name+".spec"), ".spec file", false},
	}

	for _, target := range targets {
		if _, err := os.Stat(target.path); err != nil {
			continue
		}
		var err error
		if target.isDir {
			err = os.RemoveAll(target.path)
		} else {
			err = os.Remove(target.path)
		}
		if err != nil {
			sink(fmt.Sprintf("Warning: could not clean previous %s: %v", target.label, err))
			continue
		}
		sink(fmt.Sprintf("Removed previous %s.", target.label))
	}
}

// ArtifactPath returns where PyInstaller places the finished
// executable for the given source directory and output name.
func ArtifactPath(dir, name string) string {
	return artifactPath(dir, name, runtime.GOOS)
}

func artifactPath(dir, name, goos string) string {
	out := filepath.Join(dir, "dist", name)
	if goos == "windows" {
		out += ".exe"
	}
	return out
}
