package pyinstaller

import (
	"context"
	"fmt"
	"os/exec"
)

// Status reports the availability of one external dependency.
type Status struct {
	Name      string
	Command   string
	Available bool
	Detail    string
}

// Doctor evaluates the external dependencies the converter relies on:
// the Python interpreter, pip, and PyInstaller itself.
func (t *Tool) Doctor(ctx context.Context) []Status {
	results := make([]Status, 0, 3)

	python := Status{Name: "Python", Command: t.python}
	if _, err := exec.LookPath(t.python); err != nil {
		python.Detail = fmt.Sprintf("interpreter %q not found", t.python)
		results = append(results, python)
		// Without an interpreter neither pip nor PyInstaller can be probed.
		results = append(results,
			Status{Name: "pip", Command: t.python + " -m pip", Detail: "requires a Python interpreter"},
			Status{Name: "PyInstaller", Command: t.python + " -m PyInstaller", Detail: "requires a Python interpreter"},
		)
		return results
	}
	python.Available = true
	results = append(results, python)

	pip := Status{Name: "pip", Command: t.python + " -m pip"}
	if err := t.run(ctx, t.python, "-m", "pip", "--version"); err != nil {
		pip.Detail = err.Error()
	} else {
		pip.Available = true
	}
	results = append(results, pip)

	installer := Status{Name: "PyInstaller", Command: t.python + " -m PyInstaller"}
	if err := t.run(ctx, t.python, "-m", "PyInstaller", "--version"); err != nil {
		installer.Detail = "not installed; run a conversion or `pip install pyinstaller`"
	} else {
		installer.Available = true
	}
	results = append(results, installer)

	return results
}
