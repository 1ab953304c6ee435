package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pyforge/internal/pyinstaller"
)

func newDoctorCommand() *cobra.Command {
	var python string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that Python, pip, and PyInstaller are available",
		RunE: func(cmd *cobra.Command, args []string) error {
			tool := pyinstaller.New(pyinstaller.WithPython(python))

			rows := make([][]string, 0, 3)
			for _, status := range tool.Doctor(cmd.Context()) {
				state := "missing"
				if status.Available {
					state = "ok"
				}
				rows = append(rows, []string{status.Name, status.Command, state, status.Detail})
			}

			fmt.Fprintln(cmd.OutOrStdout(), renderTable(
				[]string{"Dependency", "Command", "Status", "Detail"},
				rows))
			return nil
		},
	}

	cmd.Flags().StringVar(&python, "python", "", "Python interpreter to check")

	return cmd
}
