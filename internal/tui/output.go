package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

type entryKind int

const (
	entryHost entryKind = iota
	entryLibrary
	entryInfo
	entryError
)

type outputEntry struct {
	at   time.Time
	text string
	kind entryKind
}

// maxOutputEntries bounds the scrollback.
const maxOutputEntries = 1000

// OutputModel is the scrollable panel of host and library output.
type OutputModel struct {
	entries []outputEntry
	// scroll counts lines hidden below the view; 0 follows the tail.
	scroll int
	keymap KeyMap
	width  int
	height int
}

// NewOutputModel creates an empty output panel.
func NewOutputModel() OutputModel {
	return OutputModel{keymap: DefaultKeyMap()}
}

// SetSize updates dimensions.
func (o *OutputModel) SetSize(w, h int) {
	o.width = w
	o.height = h
}

// AddLine appends a flushed output line. Lines starting with '[' and
// containing "Fibonacci Library" come from the library.
func (o *OutputModel) AddLine(msg OutputMsg) {
	kind := entryHost
	if strings.HasPrefix(msg.Line, "[") && strings.Contains(msg.Line, "Fibonacci Library") {
		kind = entryLibrary
	}
	o.add(outputEntry{at: msg.At, text: msg.Line, kind: kind})
}

// AddInfo appends a status line.
func (o *OutputModel) AddInfo(at time.Time, text string) {
	o.add(outputEntry{at: at, text: text, kind: entryInfo})
}

// AddError appends an error line.
func (o *OutputModel) AddError(at time.Time, err error) {
	o.add(outputEntry{at: at, text: "error: " + err.Error(), kind: entryError})
}

func (o *OutputModel) add(e outputEntry) {
	o.entries = append(o.entries, e)
	if len(o.entries) > maxOutputEntries {
		o.entries = o.entries[len(o.entries)-maxOutputEntries:]
	}
	if o.scroll > 0 {
		o.scroll++
	}
}

// Len returns the number of stored entries.
func (o OutputModel) Len() int { return len(o.entries) }

// Reset clears the panel.
func (o *OutputModel) Reset() {
	o.entries = nil
	o.scroll = 0
}

// Update scrolls the panel.
func (o *OutputModel) Update(msg tea.KeyMsg) {
	page := max(o.visibleLines(o.height)-1, 1)
	switch {
	case key.Matches(msg, o.keymap.Up):
		o.scroll++
	case key.Matches(msg, o.keymap.Down):
		o.scroll--
	case key.Matches(msg, o.keymap.PageUp):
		o.scroll += page
	case key.Matches(msg, o.keymap.PageDown):
		o.scroll -= page
	}
	o.clampScroll(o.visibleLines(o.height))
}

func (o *OutputModel) clampScroll(visible int) {
	maxScroll := max(len(o.entries)-visible, 0)
	o.scroll = min(max(o.scroll, 0), maxScroll)
}

// visibleLines is the number of entries that fit in a panel of height h
// (borders and title excluded).
func (o OutputModel) visibleLines(h int) int {
	return max(h-3, 1)
}

// View renders the panel at its configured height.
func (o OutputModel) View() string {
	return o.renderToHeight(o.height)
}

func (o OutputModel) renderToHeight(h int) string {
	visible := o.visibleLines(h)
	o.clampScroll(visible)
	end := len(o.entries) - o.scroll
	start := max(end-visible, 0)

	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("OUTPUT"))
	for _, e := range o.entries[start:end] {
		b.WriteString("\n")
		b.WriteString(o.renderEntry(e))
	}
	return panelStyle.
		Width(max(o.width-2, 0)).
		Height(max(h-2, 0)).
		Render(b.String())
}

func (o OutputModel) renderEntry(e outputEntry) string {
	ts := logTimeStyle.Render(e.at.Format("15:04:05"))
	text := e.text
	if limit := o.width - 14; limit > 3 && len(text) > limit {
		text = text[:limit-3] + "..."
	}
	switch e.kind {
	case entryLibrary:
		text = libraryLineStyle.Render(text)
	case entryInfo:
		text = dimStyle.Render(text)
	case entryError:
		text = logErrorStyle.Render(text)
	default:
		text = hostLineStyle.Render(text)
	}
	return ts + " " + text
}
