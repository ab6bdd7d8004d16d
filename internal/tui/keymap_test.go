package tui

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestDefaultKeyMap_Matches(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()

	tests := []struct {
		name    string
		msg     tea.KeyMsg
		binding key.Binding
	}{
		{"q quits", runeKey('q'), km.Quit},
		{"ctrl+c quits", tea.KeyMsg{Type: tea.KeyCtrlC}, km.Quit},
		{"space freezes", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, km.Pause},
		{"p freezes", runeKey('p'), km.Pause},
		{"r restarts", runeKey('r'), km.Reset},
		{"up arrow scrolls", tea.KeyMsg{Type: tea.KeyUp}, km.Up},
		{"k scrolls up", runeKey('k'), km.Up},
		{"down arrow scrolls", tea.KeyMsg{Type: tea.KeyDown}, km.Down},
		{"j scrolls down", runeKey('j'), km.Down},
		{"page up", tea.KeyMsg{Type: tea.KeyPgUp}, km.PageUp},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, km.PageDown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if !key.Matches(tt.msg, tt.binding) {
				t.Errorf("%q does not match %v", tt.msg.String(), tt.binding.Keys())
			}
		})
	}
}

func TestDefaultKeyMap_NoOverlap(t *testing.T) {
	t.Parallel()
	km := DefaultKeyMap()
	seen := map[string]string{}
	for name, b := range map[string]key.Binding{
		"quit": km.Quit, "pause": km.Pause, "reset": km.Reset,
		"up": km.Up, "down": km.Down, "pgup": km.PageUp, "pgdown": km.PageDown,
	} {
		for _, k := range b.Keys() {
			if other, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, other, name)
			}
			seen[k] = name
		}
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	t.Parallel()
	want := []string{"quit", "pause view", "restart", "scroll up", "scroll down"}
	help := DefaultKeyMap().ShortHelp()
	if len(help) != len(want) {
		t.Fatalf("ShortHelp has %d entries, want %d", len(help), len(want))
	}
	for i, b := range help {
		if got := b.Help().Desc; got != want[i] {
			t.Errorf("ShortHelp[%d] = %q, want %q", i, got, want[i])
		}
	}
}
