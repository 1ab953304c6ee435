package app

import (
	"context"
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"

	"pyforge/internal/pyinstaller"
	"pyforge/internal/request"
)

func (app *Application) handleBrowseSource() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			app.showError("File Selection Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		app.mainGUI.SetSourcePath(path)
	}, app.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".py"}))
	fileDialog.Show()
}

func (app *Application) handleBrowseIcon() {
	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			app.showError("File Selection Error", err)
			return
		}
		if reader == nil {
			return
		}
		path := reader.URI().Path()
		reader.Close()
		app.mainGUI.SetIconPath(path)
	}, app.window)
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".ico"}))
	fileDialog.Show()
}

func (app *Application) handleConvert() {
	req := app.mainGUI.Request()
	if err := req.Validate(); err != nil {
		app.showError("Invalid Request", err)
		return
	}

	app.mainGUI.ClearLog()
	app.mainGUI.SetBusy(true)

	go func() {
		app.orchestrator.Convert(context.Background(), req, app.mainGUI.AppendLog, func(succeeded bool) {
			app.finishConversion(req, succeeded)
		})
	}()
}

// finishConversion runs on the worker goroutine after the last log
// line; everything user-facing is handed off to the UI thread. The
// surface is re-enabled on every path, exactly once per run.
func (app *Application) finishConversion(req *request.Request, succeeded bool) {
	app.saveConfig(req)

	fyne.Do(func() {
		if succeeded {
			artifact := pyinstaller.ArtifactPath(req.SourceDir(), req.OutputName)
			dialog.ShowInformation("Done",
				fmt.Sprintf("Conversion finished.\nExecutable should be in:\n%s", artifact),
				app.window)
		} else {
			dialog.ShowInformation("Error",
				"PyInstaller failed. Check the log for details.",
				app.window)
		}
		app.mainGUI.SetBusy(false)
	})
}

// saveConfig remembers the flags and icon for the next session.
func (app *Application) saveConfig(req *request.Request) {
	if app.cfgPath == "" {
		return
	}
	app.cfg.OneFile = req.OneFile
	app.cfg.Windowed = req.Windowed
	app.cfg.IconPath = req.IconPath
	if err := app.cfg.Save(app.cfgPath); err != nil {
		app.log.Warning("app", "could not save preferences", map[string]interface{}{"error": err.Error()})
	}
}

func (app *Application) showError(title string, err error) {
	app.log.Error("app", err, map[string]interface{}{"dialog": title})
	fyne.Do(func() {
		dialog.ShowError(err, app.window)
	})
}
