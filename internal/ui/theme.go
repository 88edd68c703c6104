package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"edurpg/internal/engine"
)

// EduRPG theme (CLI + TUI).

const (
	IconSword   = "⚔️"
	IconSparkle = "✨"
	IconShield  = "🛡️"
	IconDone    = "✅"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBag     = "🎒"
	IconGuild   = "🏰"
	IconScroll  = "📜"
	IconBook    = "📚"
	IconChat    = "💬"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
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

	Panel      = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)

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

// SeverityStyle maps a notification severity to a style.
func SeverityStyle(s engine.Severity) lipgloss.Style {
	switch s {
	case engine.SeveritySuccess:
		return Good
	case engine.SeverityWarn:
		return Warn
	case engine.SeverityError:
		return Bad
	default:
		return lipgloss.NewStyle()
	}
}

func SubjectIcon(s engine.Subject) string {
	switch s {
	case engine.SubjectMath:
		return "📐"
	case engine.SubjectScience:
		return "🧪"
	case engine.SubjectHistory:
		return "📜"
	case engine.SubjectLanguage:
		return "✒️"
	case engine.SubjectArts:
		return "🎨"
	default:
		return "🌐"
	}
}

// ProgressBar renders value/total as a fixed-width bar.
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
	filled := int(float64(value) / float64(total) * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

// PercentBar renders a 0..100 percentage.
func PercentBar(pct float64, width int) string {
	return ProgressBar(int(pct), 100, width)
}
