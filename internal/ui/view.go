package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Layout constants for fixed header/footer with scrollable content.
const (
	headerHeight = 3 // double-line box header
	footerHeight = 2 // status + keybindings
	frameHeight  = 2 // table header + spacer
)

// renderHeader renders the boxed header with live indicator and totals.
func (m Model) renderHeader() string {
	borderStyle := BorderStyle()
	titleStyle := HeaderStyle()
	liveStyle := LiveIndicatorStyle()
	statsStyle := StatsStyle()
	warnStyle := WarnStyle()

	innerWidth := m.width - 2

	title := " PROXYMON "
	remaining := innerWidth - len(title)
	if remaining < 0 {
		remaining = 0
	}
	leftPad := remaining / 2

	topBorder := borderStyle.Render("╔"+strings.Repeat("═", leftPad)) +
		titleStyle.Render(title) +
		borderStyle.Render(strings.Repeat("═", remaining-leftPad)+"╗")

	liveText := liveStyle.Render("◉ LIVE")

	active, total := 0, 0
	var up, down uint64
	if m.snapshot != nil {
		active = m.snapshot.ActiveCount()
		total = len(m.snapshot.Connections)
		up = m.snapshot.UploadTotal
		down = m.snapshot.DownloadTotal
	}

	stats := statsStyle.Render(fmt.Sprintf("  %d active / %d shown", active, total))
	ioText := statsStyle.Render(fmt.Sprintf("   ▲ %s   ▼ %s", formatBytes(up), formatBytes(down)))
	refreshText := statsStyle.Render(fmt.Sprintf("   %.1fs", m.refreshInterval.Seconds()))

	rightContent := ""
	if m.lastError != nil {
		rightContent = warnStyle.Render(fmt.Sprintf("  ⚠ %s", truncateString(m.lastError.Error(), 40)))
	} else if m.version != "" {
		rightContent = statsStyle.Render("  core " + m.version)
	}

	content := liveText + stats + ioText + refreshText + rightContent
	padding := innerWidth - lipgloss.Width(content) - 2
	if padding < 0 {
		padding = 0
	}

	contentLine := borderStyle.Render("║") + " " + content +
		strings.Repeat(" ", padding) + " " + borderStyle.Render("║")

	bottomBorder := borderStyle.Render("╚" + strings.Repeat("═", innerWidth) + "╝")

	return topBorder + "\n" + contentLine + "\n" + bottomBorder
}

// renderFooter renders the status line and keybinding hints.
func (m Model) renderFooter() string {
	var status string
	switch {
	case m.searchMode:
		status = StatusStyle().Render("/" + m.searchQuery + "▌")
	case m.activeFilter != "":
		status = StatusStyle().Render(fmt.Sprintf("filter: %q (esc clears)", m.activeFilter))
	case m.closeResult != "" && time.Since(m.closeResultAt) < 5*time.Second:
		status = StatusStyle().Render(m.closeResult)
	case m.sortMode:
		status = StatusStyle().Render("sort: ←/→ pick column, enter applies, esc cancels")
	}

	keyStyle := FooterKeyStyle()
	descStyle := FooterDescStyle()

	hint := func(k Keybinding) string {
		return keyStyle.Render(k.Key) + " " + descStyle.Render(k.Desc)
	}

	var hints []string
	if m.detailOpen {
		hints = []string{hint(KeyEsc), hint(KeyClose), hint(KeyQuit)}
	} else {
		hints = []string{
			hint(Keybinding{Key: "↑/↓", Desc: "Navigate"}),
			hint(KeyEnter),
			hint(KeyClose),
			hint(KeySortMode),
			hint(KeySearch),
			hint(KeyToggleView),
			hint(KeyHelp),
			hint(KeyQuit),
		}
	}

	return status + "\n" + strings.Join(hints, "  ")
}

// renderHelpContent builds the help modal body.
func renderHelpContent() string {
	lines := []struct{ key, desc string }{
		{"↑/k, ↓/j", "Move cursor"},
		{"enter", "Inspect connection (detail view)"},
		{"esc", "Close detail / cancel / clear filter"},
		{"x", "Close selected connection"},
		{"X", "Close all connections"},
		{"s", "Sort mode (←/→ choose, enter applies)"},
		{"/", "Filter by host, actor, chain or IP"},
		{"v", "Toggle active-only / all connections"},
		{"+/-", "Faster / slower refresh"},
		{"?", "This help"},
		{"q", "Quit"},
	}

	keyStyle := FooterKeyStyle()
	var b strings.Builder
	b.WriteString("\n")
	for _, l := range lines {
		b.WriteString(fmt.Sprintf("  %s  %s\n", keyStyle.Render(padRight(l.key, 10)), l.desc))
	}
	return b.String()
}

// View renders the UI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return LoadingStyle().Render("Connecting to controller...")
	}

	if m.helpMode {
		return m.placeModal(RenderModal(renderHelpContent(), "Keyboard Shortcuts", 56))
	}
	if m.closeMode && m.closeTarget != nil {
		title := "Close Connection"
		if m.closeTarget.All {
			title = "Close All Connections"
		}
		width := 50
		if l := len(m.closeTarget.Host) + 12; l > width {
			width = l
		}
		if maxw := m.width * 70 / 100; width > maxw {
			width = maxw
		}
		return m.placeModal(RenderDangerModal(m.renderCloseModalContent(), title, width))
	}
	if m.detailOpen && m.selected != nil {
		width := m.width * 3 / 4
		if width < 56 {
			width = 56
		}
		if width > m.width-2 {
			width = m.width - 2
		}
		return m.placeModal(RenderModal(m.renderDetailContent(width-4), "Connection Detail", width))
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderTableHeader(connectionColumns(), calculateColumnWidths(connectionColumns(), m.contentWidth())))
	b.WriteString("\n\n")

	vp := m.viewport
	vp.SetContent(m.renderTableBody())
	b.WriteString(vp.View())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

// placeModal centers a modal in the window.
func (m Model) placeModal(modal string) string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
