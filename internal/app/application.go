// Package app wires the Fyne front-end to the conversion workflow.
package app

import (
	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"

	"pyforge/internal/config"
	"pyforge/internal/gui"
	"pyforge/internal/history"
	"pyforge/internal/logging"
	"pyforge/internal/pyinstaller"
	"pyforge/internal/workflow"
)

const (
	AppName      = "PyForge"
	AppID        = "com.pyforge.converter"
	AppVersion   = "1.0.0"
	WindowWidth  = 720
	WindowHeight = 520
)

type Application struct {
	fyneApp fyne.App
	window  fyne.Window
	mainGUI *gui.MainInterface

	orchestrator *workflow.Orchestrator
	store        *history.Store
	log          *logging.Logger

	cfg     config.Config
	cfgPath string
}

func NewApplication(log *logging.Logger) *Application {
	fyneApp := fyneapp.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(WindowWidth, WindowHeight))
	window.SetFixedSize(true)

	app := &Application{
		fyneApp: fyneApp,
		window:  window,
		log:     log,
	}

	// Preferences and history are conveniences: failure to load either
	// must never keep the converter from starting.
	if path, err := config.Path(); err == nil {
		app.cfgPath = path
		cfg, err := config.Load(path)
		if err != nil {
			log.Warning("app", "could not load preferences", map[string]interface{}{"error": err.Error()})
			cfg = config.Default()
		}
		app.cfg = cfg
	} else {
		app.cfg = config.Default()
	}

	if path, err := config.HistoryPath(); err == nil {
		store, err := history.Open(path)
		if err != nil {
			log.Warning("app", "could not open build history", map[string]interface{}{"error": err.Error()})
		} else {
			app.store = store
		}
	}

	app.orchestrator = workflow.New(pyinstaller.New(), log, app.store)

	app.mainGUI = gui.NewMainInterface(window,
		app.handleBrowseSource, app.handleBrowseIcon, app.handleConvert)
	app.mainGUI.SetFlags(app.cfg.OneFile, app.cfg.Windowed)
	if app.cfg.IconPath != "" {
		app.mainGUI.SetIconPath(app.cfg.IconPath)
	}

	log.Info("app", "initialization complete", map[string]interface{}{"version": AppVersion})
	return app
}

func (app *Application) Run() {
	app.setupMenus()
	app.window.SetContent(app.mainGUI.GetMainContainer())

	app.window.SetCloseIntercept(func() {
		app.cleanup()
		app.window.Close()
	})

	app.window.ShowAndRun()
}

func (app *Application) cleanup() {
	if app.store != nil {
		app.store.Close()
	}
}
