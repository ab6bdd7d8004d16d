package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/agbru/fibhost/internal/format"
)

// HeaderModel renders the top bar: title, library, elapsed time.
type HeaderModel struct {
	startTime time.Time
	endTime   time.Time
	title     string
	version   uint16
	loaded    bool
	width     int
	now       func() time.Time
}

// NewHeaderModel creates a new header for the library described by title.
func NewHeaderModel(title string) HeaderModel {
	return HeaderModel{startTime: time.Now(), title: title, now: time.Now}
}

// SetLibraryVersion records the version of the loaded library.
func (h *HeaderModel) SetLibraryVersion(v uint16) {
	h.version = v
	h.loaded = true
}

// SetDone freezes the elapsed timer at the current time.
func (h *HeaderModel) SetDone() {
	h.endTime = h.now()
}

// Reset restarts the elapsed timer.
func (h *HeaderModel) Reset() {
	h.startTime = h.now()
	h.endTime = time.Time{}
	h.loaded = false
}

// SetWidth updates the available width.
func (h *HeaderModel) SetWidth(w int) {
	h.width = w
}

// View renders the header.
func (h HeaderModel) View() string {
	lib := h.title
	if h.loaded {
		lib = fmt.Sprintf("%s v%d", h.title, h.version)
	}
	title := titleStyle.Render("fibhost Monitor")
	pipe := dimStyle.Render(" | ")

	end := h.endTime
	if end.IsZero() {
		end = h.now()
	}
	elapsed := elapsedStyle.Render("Elapsed: " + format.FormatExecutionDuration(end.Sub(h.startTime)))

	row := title + pipe + dimStyle.Render(lib) + pipe + elapsed
	if gap := h.width - 2 - lipgloss.Width(row); gap > 0 {
		row += spaces(gap)
	}
	return headerStyle.Width(h.width).Render(row)
}

// spaces returns a string of n space characters.
func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
