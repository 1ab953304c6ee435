package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pyforge/internal/config"
	"pyforge/internal/history"
	"pyforge/internal/logging"
	"pyforge/internal/pyinstaller"
	"pyforge/internal/request"
	"pyforge/internal/workflow"
)

var errBuildFailed = errors.New("build failed")

func newBuildCommand() *cobra.Command {
	req := &request.Request{}
	var python string

	cmd := &cobra.Command{
		Use:   "build <source.py>",
		Short: "Convert a script without opening the GUI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req.SourcePath = args[0]
			if err := req.Validate(); err != nil {
				return err
			}

			log := logging.New()
			var store *history.Store
			if path, err := config.HistoryPath(); err == nil {
				if s, err := history.Open(path); err == nil {
					store = s
					defer store.Close()
				}
			}

			tool := pyinstaller.New(pyinstaller.WithPython(python))
			orchestrator := workflow.New(tool, log, store)

			succeeded := false
			orchestrator.Convert(cmd.Context(), req,
				func(line string) { fmt.Fprintln(os.Stdout, line) },
				func(ok bool) { succeeded = ok },
			)
			if !succeeded {
				return errBuildFailed
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&req.OutputName, "name", "", "Output name (defaults to the source file stem)")
	cmd.Flags().StringVar(&req.IconPath, "icon", "", "Icon file to embed")
	cmd.Flags().BoolVar(&req.OneFile, "onefile", true, "Bundle into a single executable")
	cmd.Flags().BoolVar(&req.Windowed, "windowed", false, "Build without a console window")
	cmd.Flags().StringVar(&python, "python", "", "Python interpreter to use")

	return cmd
}
