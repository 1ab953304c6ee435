package gui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// LogView is the append-only run log. Lines arrive from the worker
// goroutine and are marshaled onto the UI thread here; the view is the
// only surface both threads reach, and only through this hand-off.
type LogView struct {
	scroll *container.Scroll
	label  *widget.Label
	buffer strings.Builder
}

func NewLogView() *LogView {
	lv := &LogView{}
	lv.label = widget.NewLabel("")
	lv.label.TextStyle = fyne.TextStyle{Monospace: true}
	lv.label.Alignment = fyne.TextAlignLeading
	lv.scroll = container.NewVScroll(lv.label)
	return lv
}

func (lv *LogView) GetContainer() fyne.CanvasObject {
	return lv.scroll
}

// Append adds one line and keeps the view pinned to the bottom. Safe
// to call from any goroutine.
func (lv *LogView) Append(line string) {
	fyne.Do(func() {
		lv.buffer.WriteString(line)
		lv.buffer.WriteString("\n")
		lv.label.SetText(lv.buffer.String())
		lv.scroll.ScrollToBottom()
	})
}

// Clear resets the log for a fresh run.
func (lv *LogView) Clear() {
	fyne.Do(func() {
		lv.buffer.Reset()
		lv.label.SetText("")
	})
}
