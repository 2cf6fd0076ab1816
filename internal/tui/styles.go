package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/rpggio/noteboard/internal/notify"
)

var (
	accent = lipgloss.Color("#667eea")
	muted  = lipgloss.Color("245")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Padding(0, 1)

	searchBarStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	searchBarActiveStyle = searchBarStyle.
				BorderForeground(accent)

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	cardSelectedStyle = cardStyle.
				BorderForeground(accent)

	cardTitleStyle = lipgloss.NewStyle().Bold(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(accent).
			Italic(true)

	metaStyle = lipgloss.NewStyle().Foreground(muted)

	emptyStyle = lipgloss.NewStyle().
			Foreground(muted).
			Padding(1, 2)

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(accent).
			Padding(1, 2)

	labelStyle = lipgloss.NewStyle().Bold(true)

	confirmStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#e53e3e")).
			Padding(0, 1)

	noticeStyles = map[notify.Kind]lipgloss.Style{
		notify.Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#38a169")).Padding(0, 1),
		notify.Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#e53e3e")).Padding(0, 1),
		notify.Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Background(lipgloss.Color("#3182ce")).Padding(0, 1),
	}
)
