package ui

import (
	"fmt"
	"strings"

	"github.com/juliend/proxymon/internal/favicon"
)

// renderDetailContent builds the detail modal body for the inspected
// connection. The content tracks the freshest snapshot copy, kept live by
// the selection sync on every refresh.
func (m Model) renderDetailContent(width int) string {
	c := m.selected
	if c == nil {
		return ""
	}

	label := StatusStyle()
	value := RowStyle()

	field := func(name, val string) string {
		if val == "" {
			val = "-"
		}
		return fmt.Sprintf("  %s %s\n", label.Render(padRight(name, 12)), value.Render(truncateString(val, width-16)))
	}

	state := "active"
	if !c.IsActive {
		state = "closed"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(field("Host", c.DisplayHost()))
	b.WriteString(field("Icon", m.faviconLine()))
	b.WriteString(field("State", state))
	b.WriteString(field("Actor", m.actorFor(c)))
	if c.Metadata.ProcessPath != "" {
		b.WriteString(field("Path", c.Metadata.ProcessPath))
	}
	b.WriteString(field("Source", c.Metadata.SourceIP+":"+c.Metadata.SourcePort))
	b.WriteString(field("Destination", c.Metadata.DestinationIP+":"+c.Metadata.DestinationPort))
	b.WriteString(field("Type", typeChip(c)))
	if c.Rule != "" {
		rule := c.Rule
		if c.RulePayload != "" {
			rule += " (" + c.RulePayload + ")"
		}
		b.WriteString(field("Rule", rule))
	}
	b.WriteString(field("Chains", c.ChainString()))
	b.WriteString(field("Started", formatStart(c.Start)))

	up := formatBytes(c.Upload)
	if rate := formatRate(c.UploadSpeed); rate != "" {
		up += "  ↑ " + rate
	}
	down := formatBytes(c.Download)
	if rate := formatRate(c.DownloadSpeed); rate != "" {
		down += "  ↓ " + rate
	}
	b.WriteString(field("Upload", up))
	b.WriteString(field("Download", down))

	return b.String()
}

// faviconLine describes the icon resolution state for the detail view.
func (m Model) faviconLine() string {
	switch m.favState {
	case favicon.StateLoading:
		return LoadingStyle().Render("resolving…")
	case favicon.StateResolved:
		return "◆ " + m.favURL
	default:
		return "none"
	}
}
