package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/queuewatch/internal/render"
)

// Color palette
var (
	Amber      = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Amber)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Status panel styles
var (
	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	SlotLabelStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	SlotValueStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true)
)

// Table row styles, one per class token
var (
	HeaderRowStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			Padding(0, 1)

	ActiveRowStyle = lipgloss.NewStyle().
			Foreground(Amber).
			Bold(true).
			Padding(0, 1)

	DarkRowStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Background(SlateDark).
			Padding(0, 1)

	LightRowStyle = lipgloss.NewStyle().
			Foreground(White).
			Padding(0, 1)

	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight).
				Padding(0, 1)

	TableBorderStyle = lipgloss.NewStyle().
				Foreground(DimGray)
)

// RowStyle maps a row's class token to its terminal style
func RowStyle(s render.RowStyle) lipgloss.Style {
	switch s {
	case render.StyleHeader:
		return HeaderRowStyle
	case render.StyleActive:
		return ActiveRowStyle
	case render.StyleDark:
		return DarkRowStyle
	default:
		return LightRowStyle
	}
}

// Spinner frames
var SpinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Stale indicator characters
const (
	FreshChar = "●"
	StaleChar = "◐"
)
