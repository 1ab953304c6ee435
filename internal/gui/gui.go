// Package gui assembles the converter window: the options form on
// top, the streaming run log below, and a status bar.
package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pyforge/internal/request"
)

type MainInterface struct {
	window        fyne.Window
	mainContainer *fyne.Container

	form    *FormPanel
	logView *LogView
	status  *StatusBar

	// Callbacks
	onBrowseSource func()
	onBrowseIcon   func()
	onConvert      func()
}

func NewMainInterface(window fyne.Window, onBrowseSource, onBrowseIcon, onConvert func()) *MainInterface {
	gui := &MainInterface{
		window:         window,
		onBrowseSource: onBrowseSource,
		onBrowseIcon:   onBrowseIcon,
		onConvert:      onConvert,
	}

	gui.form = NewFormPanel(onBrowseSource, onBrowseIcon, onConvert)
	gui.logView = NewLogView()
	gui.status = NewStatusBar()

	logSection := container.NewBorder(
		widget.NewLabel("Log"),
		nil, nil, nil,
		gui.logView.GetContainer(),
	)

	gui.mainContainer = container.NewBorder(
		container.NewPadded(gui.form.GetContainer()), // top
		gui.status.GetContainer(),                    // bottom
		nil,
		nil,
		container.NewPadded(logSection), // center
	)

	return gui
}

func (gui *MainInterface) GetMainContainer() *fyne.Container {
	return gui.mainContainer
}

// Request snapshots the form into a conversion request.
func (gui *MainInterface) Request() *request.Request {
	return gui.form.Request()
}

func (gui *MainInterface) SetSourcePath(path string) {
	gui.form.SetSourcePath(path)
}

func (gui *MainInterface) SetIconPath(path string) {
	gui.form.SetIconPath(path)
}

func (gui *MainInterface) SetFlags(oneFile, windowed bool) {
	gui.form.SetFlags(oneFile, windowed)
}

// AppendLog forwards one line to the log view. Safe from any goroutine.
func (gui *MainInterface) AppendLog(line string) {
	gui.logView.Append(line)
}

func (gui *MainInterface) ClearLog() {
	gui.logView.Clear()
}

// SetBusy toggles the interactive surface. The declared control set is
// disabled for the whole run so a second conversion cannot start while
// one is in flight. Safe from any goroutine.
func (gui *MainInterface) SetBusy(busy bool) {
	fyne.Do(func() {
		gui.form.SetBusy(busy)
		if busy {
			gui.status.SetStatus("Converting...")
		} else {
			gui.status.SetStatus("Ready")
		}
	})
}
