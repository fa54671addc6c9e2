package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/juliend/proxymon/internal/config"
)

// Theme-aware style getters

func color(c config.Color) lipgloss.Color {
	return lipgloss.Color(string(c))
}

// HeaderStyle returns the style for the main header title.
func HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(color(config.CurrentTheme.Palette.Header.TitleFg))
}

// LiveIndicatorStyle returns the style for the LIVE indicator.
func LiveIndicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(color(config.CurrentTheme.Palette.Header.LiveFg))
}

// WarnStyle returns the style for warnings and fetch errors.
func WarnStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Header.WarnFg))
}

// StatsStyle returns the style for muted header stats.
func StatsStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Header.StatsFg))
}

// StatusStyle returns the style for status lines.
func StatusStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Status))
}

// LoadingStyle returns the style for loading indicators.
func LoadingStyle() lipgloss.Style {
	return StatusStyle().Italic(true)
}

// EmptyStyle returns the style for empty state messages.
func EmptyStyle() lipgloss.Style {
	return StatusStyle().Italic(true)
}

// FooterKeyStyle returns the style for keyboard shortcut keys in footer.
func FooterKeyStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Footer.KeyFg))
}

// FooterDescStyle returns the style for key descriptions in footer.
func FooterDescStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Footer.DescFg))
}

// RowStyle returns the style for table rows.
func RowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Table.Fg))
}

// InactiveRowStyle returns the style for closed/retained rows.
func InactiveRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Table.InactiveFg))
}

// SelectedRowStyle returns the style for the cursor row.
func SelectedRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Table.CursorFg)).
		Background(color(config.CurrentTheme.Palette.Table.CursorBg))
}

// AddedRowStyle returns the style for newly appeared connections.
func AddedRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Table.AddedFg))
}

// ClosedRowStyle returns the style for just-closed connections.
func ClosedRowStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Table.ClosedFg))
}

// TableHeaderStyle returns the style for table column headers.
func TableHeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(color(config.CurrentTheme.Palette.Table.HeaderFg))
}

// TableHeaderSelectedStyle returns the style for the sort-mode column.
func TableHeaderSelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(color(config.CurrentTheme.Palette.Table.SelectedColumn)).
		Underline(true)
}

// SortIndicatorStyle returns the style for sort direction markers.
func SortIndicatorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Table.SortIndicator))
}

// ChainChipStyle returns the style for proxy-chain chips.
func ChainChipStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Chip.ChainFg))
}

// TypeChipStyle returns the style for type/network chips.
func TypeChipStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Chip.TypeFg))
}

// UpStyle returns the style for upload figures.
func UpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Chip.UpFg))
}

// DownStyle returns the style for download figures.
func DownStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Chip.DownFg))
}

// BorderStyle returns the style for frame borders.
func BorderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(color(config.CurrentTheme.Palette.Border))
}

// ErrorStyle returns the style for error messages.
func ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FF5555"))
}

// DangerColor returns the red used for destructive confirmations.
func DangerColor() lipgloss.Color {
	return lipgloss.Color("#FF5555")
}

// padRight pads a string to the specified visible width.
func padRight(s string, width int) string {
	visible := lipgloss.Width(s)
	if visible >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visible)
}

// renderModalFrame renders content inside a heavy box with a centered
// title on the top border.
func renderModalFrame(content, title string, width int, borderColor, titleColor lipgloss.Color) string {
	borderStyle := lipgloss.NewStyle().Foreground(borderColor)
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(titleColor)

	innerWidth := width - 2
	titleText := " " + title + " "
	remaining := innerWidth - len(titleText)
	if remaining < 0 {
		remaining = 0
		titleText = titleText[:innerWidth]
	}
	leftPad := remaining / 2

	var b strings.Builder
	b.WriteString(borderStyle.Render("┏" + strings.Repeat("━", leftPad)))
	b.WriteString(titleStyle.Render(titleText))
	b.WriteString(borderStyle.Render(strings.Repeat("━", remaining-leftPad) + "┓"))
	b.WriteString("\n")

	for _, line := range strings.Split(content, "\n") {
		b.WriteString(borderStyle.Render("┃"))
		b.WriteString(padRight(line, innerWidth))
		b.WriteString(borderStyle.Render("┃"))
		b.WriteString("\n")
	}

	b.WriteString(borderStyle.Render("┗" + strings.Repeat("━", innerWidth) + "┛"))
	return b.String()
}

// RenderModal renders a standard modal frame.
func RenderModal(content, title string, width int) string {
	return renderModalFrame(content, title, width,
		color(config.CurrentTheme.Palette.Modal.BorderFg),
		color(config.CurrentTheme.Palette.Modal.AccentFg))
}

// RenderDangerModal renders a modal frame in danger colors.
func RenderDangerModal(content, title string, width int) string {
	return renderModalFrame(content, title, width, DangerColor(), DangerColor())
}
