package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/muurk/propsheet/internal/version"
)

// Application branding constants
const (
	AppName = "PROPSHEET"
)

// AppVersion returns the application version from the centralized version package
func AppVersion() string {
	return version.Version
}

// Layout constants
const (
	MinTerminalWidth = 60 // Minimum supported terminal width
	IndentWidth      = 2  // Columns of indentation per group level
	MaxTitleWidth    = 32 // Title column is capped at this width
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF5555") // Red

	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
	BorderColor    = lipgloss.Color("#7D56F4") // Purple (same as primary)
	HighlightColor = lipgloss.Color("#43BF6D") // Green (same as secondary)
)

// Row markers
const (
	MarkerExpanded  = "▾"
	MarkerCollapsed = "▸"
	MarkerChanged   = "●"
	MarkerInvalid   = "✗"
	MarkerCursor    = "→ "
	MarkerExternal  = "ƒ"
)

var (
	// Group header rows
	GroupTitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true)

	// Property titles
	TitleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ValueStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// Cursor row
	SelectedStyle = lipgloss.NewStyle().
			Foreground(HighlightColor).
			Bold(true)

	ChangedStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	InvalidStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	ExternalStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Italic(true)

	DescriptionStyle = lipgloss.NewStyle().
				Foreground(SubtleColor).
				Italic(true)

	StatusStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	ErrorStatusStyle = lipgloss.NewStyle().
				Foreground(ErrorColor)

	// Inline editor frame while a field is being edited
	EditingStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Background(lipgloss.Color("236"))

	OptionStyle = lipgloss.NewStyle().
			PaddingLeft(4).
			Foreground(TextColor)

	SelectedOptionStyle = lipgloss.NewStyle().
				PaddingLeft(2).
				Foreground(HighlightColor).
				Bold(true)
)

// BuildHeaderContent creates header content with app name, version and the
// inspected instance
func BuildHeaderContent(instanceID string) string {
	left := lipgloss.NewStyle().
		Foreground(TextColor).
		Bold(true).
		Render(AppName + " v" + AppVersion())

	right := lipgloss.NewStyle().
		Foreground(SubtleColor).
		Render(instanceID)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)
}

// RenderApplicationContainer wraps a screen in the header/content/footer frame.
// A zero width renders content without the frame.
func RenderApplicationContainer(header, content, footer string, width, height int) string {
	if width <= 0 {
		return lipgloss.JoinVertical(lipgloss.Left, header, "", content, "", footer)
	}
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	section := func(border lipgloss.Border) lipgloss.Style {
		return lipgloss.NewStyle().
			BorderStyle(border).
			BorderForeground(BorderColor).
			Width(width-4).
			Padding(0, 1)
	}

	inner := lipgloss.JoinVertical(
		lipgloss.Left,
		section(lipgloss.Border{Bottom: "─"}).Render(header),
		lipgloss.NewStyle().Width(width-4).Render(content),
		section(lipgloss.Border{Top: "─"}).Render(lipgloss.NewStyle().Foreground(SubtleColor).Render(footer)),
	)

	frame := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(BorderColor).
		Width(width - 2)
	if height > 2 {
		frame = frame.Height(height - 2).AlignVertical(lipgloss.Top)
	}
	return frame.Render(inner)
}

// padTitle pads or truncates a title to exactly width terminal columns.
func padTitle(title string, width int) string {
	if runewidth.StringWidth(title) > width {
		title = runewidth.Truncate(title, width, "…")
	}
	return runewidth.FillRight(title, width)
}

// indent returns the leading whitespace for a nesting level.
func indent(level int) string {
	if level < 0 {
		level = 0
	}
	return strings.Repeat(" ", level*IndentWidth)
}
