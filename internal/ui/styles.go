package ui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	Red       = lipgloss.Color("#EF4444")
	Green     = lipgloss.Color("#10B981")
	Cyan      = lipgloss.Color("#06B6D4")
	Magenta   = lipgloss.Color("#D946EF")
	DimGray   = lipgloss.Color("#6B7280")
	LightGray = lipgloss.Color("#9CA3AF")
	White     = lipgloss.Color("#F9FAFB")
)

// Panel styles
var (
	BannerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Cyan).
			Foreground(White).
			Bold(true).
			Padding(0, 2)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	ValueStyle = lipgloss.NewStyle().
			Foreground(Cyan)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green).
			Bold(true)

	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Magenta)
)

// Table cell styles
var (
	HeaderCellStyle = lipgloss.NewStyle().
			Foreground(Magenta).
			Bold(true).
			Padding(0, 1)

	IndexCellStyle = lipgloss.NewStyle().
			Foreground(Cyan).
			Align(lipgloss.Right).
			Padding(0, 1)

	TitleCellStyle = lipgloss.NewStyle().
			Foreground(White).
			Padding(0, 1)
)

// Spinner renders one spinner frame
func Spinner(frame int) string {
	return SpinnerStyle.Render(SpinnerFrames[frame%len(SpinnerFrames)])
}
