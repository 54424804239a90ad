package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorRed      lipgloss.Color = "#f38ba8"
	colorYellow   lipgloss.Color = "#f9e2af"
	colorGreen    lipgloss.Color = "#a6e3a1"
	colorTeal     lipgloss.Color = "#94e2d5"
	colorLavender lipgloss.Color = "#b4befe"
	colorPink     lipgloss.Color = "#f5c2e7"
	colorText     lipgloss.Color = "#cdd6f4"
	colorOverlay0 lipgloss.Color = "#6c7086"
	colorSurface1 lipgloss.Color = "#45475a"
)

const (
	colorAccent  = colorPink
	colorFocus   = colorLavender
	colorSuccess = colorGreen
	colorError   = colorRed
	colorWarning = colorYellow
	colorInfo    = colorTeal
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	labelStyle    = lipgloss.NewStyle().Foreground(colorOverlay0)
	focusStyle    = lipgloss.NewStyle().Foreground(colorFocus).Bold(true)
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(colorText)
	cursorStyle   = lipgloss.NewStyle().Background(colorSurface1)
	dimStyle      = lipgloss.NewStyle().Foreground(colorOverlay0)
	infoStyle     = lipgloss.NewStyle().Foreground(colorInfo)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	buttonStyle   = lipgloss.NewStyle().Padding(0, 1).Foreground(colorText).Background(colorSurface1)
	disabledStyle = lipgloss.NewStyle().Padding(0, 1).Foreground(colorOverlay0)
	toastBase     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

func toastStyle(variant string) lipgloss.Style {
	switch variant {
	case "success":
		return toastBase.BorderForeground(colorSuccess)
	case "error":
		return toastBase.BorderForeground(colorError)
	default:
		return toastBase.BorderForeground(colorWarning)
	}
}
