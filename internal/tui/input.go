package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/LupasteanRaoul/myjob-careercopilot/internal/ui"
)

// field is a minimal single-line text input. No cursor movement; append and
// backspace cover every form in the app.
type field struct {
	label  string
	value  string
	secret bool
}

func (f *field) handleKey(msg tea.KeyMsg) {
	switch msg.Type {
	case tea.KeyRunes:
		f.value += string(msg.Runes)
	case tea.KeySpace:
		f.value += " "
	case tea.KeyBackspace:
		if len(f.value) > 0 {
			r := []rune(f.value)
			f.value = string(r[:len(r)-1])
		}
	case tea.KeyCtrlU:
		f.value = ""
	}
}

func (f *field) view(focused bool) string {
	shown := f.value
	if f.secret {
		shown = strings.Repeat("•", len([]rune(f.value)))
	}
	cursor := " "
	label := ui.Muted.Render(f.label + ": ")
	if focused {
		cursor = ui.Gold.Render("▌")
		label = ui.Key.Render(f.label + ": ")
	}
	return label + shown + cursor
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 1 || len(r) <= width {
		return s
	}
	return string(r[:width-1]) + "…"
}
