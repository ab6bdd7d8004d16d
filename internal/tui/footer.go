package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// FooterModel renders key help and the run status.
type FooterModel struct {
	keymap     KeyMap
	width      int
	paused     bool
	done       bool
	failed     bool
	pauseUntil time.Time
	now        func() time.Time
}

// NewFooterModel creates a footer.
func NewFooterModel() FooterModel {
	return FooterModel{keymap: DefaultKeyMap(), now: time.Now}
}

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// SetPaused toggles the frozen-view indicator.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone marks the run as finished.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the run as failed.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// SetWaiting records that the host sleeps until t.
func (f *FooterModel) SetWaiting(t time.Time) { f.pauseUntil = t }

// Status returns the status label.
func (f FooterModel) Status() string {
	switch {
	case f.failed:
		return "ERROR"
	case f.done:
		return "DONE"
	case f.paused:
		return "PAUSED"
	}
	if remaining := f.pauseUntil.Sub(f.now()); remaining > 0 {
		return fmt.Sprintf("WAITING %s", remaining.Round(time.Second))
	}
	return "RUNNING"
}

// View renders the footer.
func (f FooterModel) View() string {
	var keys []string
	for _, b := range f.keymap.ShortHelp() {
		h := b.Help()
		keys = append(keys, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}
	left := " " + strings.Join(keys, "  ")

	status := f.Status()
	var styled string
	switch {
	case f.failed:
		styled = statusErrorStyle.Render(status)
	case f.done:
		styled = statusDoneStyle.Render(status)
	case f.paused:
		styled = statusPausedStyle.Render(status)
	default:
		styled = statusRunningStyle.Render(status)
	}

	gap := f.width - lipgloss.Width(left) - lipgloss.Width(styled) - 1
	return left + spaces(gap) + styled
}
