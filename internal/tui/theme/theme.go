// Package theme holds the palette and shared lipgloss styles.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	ColorText     lipgloss.Color = "#cdd6f4"
	ColorMuted    lipgloss.Color = "#a6adc8"
	ColorBorder   lipgloss.Color = "#585b70"
	ColorAccent   lipgloss.Color = "#89b4fa"
	ColorSuccess  lipgloss.Color = "#a6e3a1"
	ColorWarn     lipgloss.Color = "#f9e2af"
	ColorError    lipgloss.Color = "#f38ba8"
	ColorMantle   lipgloss.Color = "#181825"
	ColorSurface0 lipgloss.Color = "#313244"
	ColorSurface1 lipgloss.Color = "#45475a"
)

var (
	Title = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	Muted = lipgloss.NewStyle().Foreground(ColorMuted)
	Label = lipgloss.NewStyle().Foreground(ColorText)
	Error = lipgloss.NewStyle().Foreground(ColorError)
	Warn  = lipgloss.NewStyle().Foreground(ColorWarn)

	ErrorBox = lipgloss.NewStyle().
			Foreground(ColorError).
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorError).
			Padding(0, 1)

	Pane = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	FocusedPane = Pane.BorderForeground(ColorAccent)

	Button = lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorSurface1).
		Padding(0, 1)
	PrimaryButton  = Button.Foreground(ColorMantle).Background(ColorAccent)
	DisabledButton = Button.Foreground(ColorMuted).Background(ColorSurface0)

	Header       = lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	SelectedRow  = lipgloss.NewStyle().Foreground(ColorMantle).Background(ColorAccent)
	Cell         = lipgloss.NewStyle().Padding(0, 1)
	TableBorder  = lipgloss.NewStyle().Foreground(ColorBorder)
	StatusBar    = lipgloss.NewStyle().Foreground(ColorSuccess).Background(ColorSurface0)
	StatusErrBar = Error.Background(ColorSurface0)
	HeaderBar    = lipgloss.NewStyle().Foreground(ColorText).Background(ColorMantle)
)
