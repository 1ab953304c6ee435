package app

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
)

func (app *Application) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Script...", func() {
			app.handleBrowseSource()
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			app.cleanup()
			app.fyneApp.Quit()
		}),
	)

	historyMenu := fyne.NewMenu("History",
		fyne.NewMenuItem("Recent Builds", func() {
			dialog.ShowInformation("Recent Builds", app.recentBuildsSummary(), app.window)
		}),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() {
			dialog.ShowInformation("About",
				fmt.Sprintf("%s %s\nA PyInstaller front-end.", AppName, AppVersion),
				app.window)
		}),
	)

	mainMenu := fyne.NewMainMenu(fileMenu, historyMenu, helpMenu)
	app.window.SetMainMenu(mainMenu)
}

func (app *Application) recentBuildsSummary() string {
	if app.store == nil {
		return "Build history is unavailable."
	}
	records, err := app.store.Recent(10)
	if err != nil {
		return "Could not read build history: " + err.Error()
	}
	if len(records) == 0 {
		return "No builds recorded yet."
	}

	var sb strings.Builder
	for _, rec := range records {
		outcome := "failed"
		if rec.Succeeded {
			outcome = "ok"
		}
		fmt.Fprintf(&sb, "%s  %s  (%s)\n",
			rec.StartedAt.Local().Format("2006-01-02 15:04"),
			rec.OutputName,
			outcome)
	}
	return sb.String()
}
