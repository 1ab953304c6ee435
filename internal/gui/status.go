package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

type StatusBar struct {
	container *fyne.Container

	statusLabel *widget.Label
	noteLabel   *widget.Label
}

func NewStatusBar() *StatusBar {
	sb := &StatusBar{}
	sb.setupStatusBar()
	return sb
}

func (sb *StatusBar) setupStatusBar() {
	sb.statusLabel = widget.NewLabel("Ready")

	sb.noteLabel = widget.NewLabel("PyInstaller creates 'dist' and 'build' folders next to the source file.")
	sb.noteLabel.TextStyle = fyne.TextStyle{Italic: true}

	sb.container = container.NewBorder(
		nil, nil,
		sb.statusLabel,
		sb.noteLabel,
	)
}

func (sb *StatusBar) SetStatus(status string) {
	sb.statusLabel.SetText(status)
}

func (sb *StatusBar) GetContainer() *fyne.Container {
	return sb.container
}
