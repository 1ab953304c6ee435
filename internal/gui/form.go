package gui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"pyforge/internal/request"
)

// FormPanel collects the conversion parameters: source file, output
// name, icon, and the two packaging flags.
type FormPanel struct {
	container *fyne.Container

	sourceEntry   *widget.Entry
	outputEntry   *widget.Entry
	iconEntry     *widget.Entry
	oneFileCheck  *widget.Check
	windowedCheck *widget.Check

	browseSourceButton *widget.Button
	browseIconButton   *widget.Button
	convertButton      *widget.Button

	onBrowseSource func()
	onBrowseIcon   func()
	onConvert      func()
}

func NewFormPanel(onBrowseSource, onBrowseIcon, onConvert func()) *FormPanel {
	panel := &FormPanel{
		onBrowseSource: onBrowseSource,
		onBrowseIcon:   onBrowseIcon,
		onConvert:      onConvert,
	}
	panel.setupForm()
	return panel
}

func (fp *FormPanel) setupForm() {
	fp.sourceEntry = widget.NewEntry()
	fp.sourceEntry.SetPlaceHolder("Source .py file")

	fp.outputEntry = widget.NewEntry()
	fp.outputEntry.SetPlaceHolder("Output name (optional, defaults to source name)")

	fp.iconEntry = widget.NewEntry()
	fp.iconEntry.SetPlaceHolder("Icon .ico file (optional)")

	fp.oneFileCheck = widget.NewCheck("One-file (--onefile)", nil)
	fp.windowedCheck = widget.NewCheck("Windowed (--noconsole)", nil)

	fp.browseSourceButton = widget.NewButton("Browse...", fp.onBrowseSource)
	fp.browseIconButton = widget.NewButton("Browse Icon...", fp.onBrowseIcon)

	fp.convertButton = widget.NewButton("Start Convert", fp.onConvert)
	fp.convertButton.Importance = widget.HighImportance

	sourceRow := container.NewBorder(nil, nil, nil, fp.browseSourceButton, fp.sourceEntry)
	iconRow := container.NewBorder(nil, nil, nil, fp.browseIconButton, fp.iconEntry)
	flagRow := container.NewHBox(fp.oneFileCheck, fp.windowedCheck)

	fp.container = container.NewVBox(
		widget.NewLabel("Source script"),
		sourceRow,
		widget.NewLabel("Output name"),
		fp.outputEntry,
		flagRow,
		widget.NewLabel("Icon"),
		iconRow,
		fp.convertButton,
	)
}

func (fp *FormPanel) GetContainer() *fyne.Container {
	return fp.container
}

// Request snapshots the current form state. Validation happens in the
// caller before the request is handed to the workflow.
func (fp *FormPanel) Request() *request.Request {
	return &request.Request{
		SourcePath: fp.sourceEntry.Text,
		OutputName: fp.outputEntry.Text,
		IconPath:   fp.iconEntry.Text,
		OneFile:    fp.oneFileCheck.Checked,
		Windowed:   fp.windowedCheck.Checked,
	}
}

func (fp *FormPanel) SetSourcePath(path string) {
	fp.sourceEntry.SetText(path)
}

func (fp *FormPanel) SetIconPath(path string) {
	fp.iconEntry.SetText(path)
}

func (fp *FormPanel) SetFlags(oneFile, windowed bool) {
	fp.oneFileCheck.SetChecked(oneFile)
	fp.windowedCheck.SetChecked(windowed)
}

// disableables is the fixed set of controls toggled while a
// conversion runs. The log view stays interactive so the user can
// scroll during a build.
func (fp *FormPanel) disableables() []fyne.Disableable {
	return []fyne.Disableable{
		fp.sourceEntry,
		fp.outputEntry,
		fp.iconEntry,
		fp.oneFileCheck,
		fp.windowedCheck,
		fp.browseSourceButton,
		fp.browseIconButton,
		fp.convertButton,
	}
}

func (fp *FormPanel) SetBusy(busy bool) {
	for _, control := range fp.disableables() {
		if busy {
			control.Disable()
		} else {
			control.Enable()
		}
	}
}
