package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// MyJob theme (CLI + TUI).
// Kept intentionally small: reusable styles and a few emojis.

const (
	IconBriefcase = "💼"
	IconSparkle   = "✨"
	IconPlus      = "➕"
	IconDone      = "✅"
	IconTrophy    = "🏆"
	IconBolt      = "⚡"
	IconInfo      = "ℹ️"
	IconWarn      = "⚠️"
	IconError     = "🧨"
	IconMail      = "📧"
	IconChat      = "💬"
	IconMic       = "🎤"
	IconLink      = "🔗"
	IconChart     = "📊"
	IconDoc       = "📄"
)

var (
	cPrimary = lipgloss.Color("33")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

// StatusText colors an application status the way the web dashboard did.
func StatusText(status string) string {
	switch status {
	case "Applied":
		return H2.Render(status)
	case "Interview":
		return Warn.Render(status)
	case "Offer":
		return Good.Render(status)
	case "Rejected":
		return Bad.Render(status)
	default:
		return Muted.Render(status)
	}
}

// ScoreText colors an ATS score by band.
func ScoreText(score int) string {
	s := fmt.Sprintf("%d/100", score)
	switch {
	case score >= 60:
		return Good.Render(s)
	case score >= 40:
		return H2.Render(s)
	case score >= 20:
		return Warn.Render(s)
	default:
		return Bad.Render(s)
	}
}

func ProgressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}
