package main

import (
	"github.com/spf13/cobra"

	"pyforge/internal/app"
	"pyforge/internal/logging"
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "pyforge",
		Short:         "PyForge converts Python scripts into standalone executables",
		Long:          "PyForge is a PyInstaller front-end. Run without arguments to open the GUI, or use the build subcommand for headless conversions.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			application := app.NewApplication(logging.New())
			application.Run()
			return nil
		},
	}

	rootCmd.AddCommand(newBuildCommand())
	rootCmd.AddCommand(newHistoryCommand())
	rootCmd.AddCommand(newDoctorCommand())

	return rootCmd
}
