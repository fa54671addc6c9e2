package ui

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/juliend/proxymon/internal/model"
)

// truncateString truncates a string to maxLen with ellipsis if needed.
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// formatBytes formats a byte count in binary units.
func formatBytes(bytes uint64) string {
	return humanize.IBytes(bytes)
}

// formatRate formats an instantaneous rate, or "" for a zero sample.
func formatRate(bytesPerSec uint64) string {
	if bytesPerSec == 0 {
		return ""
	}
	return humanize.IBytes(bytesPerSec) + "/s"
}

// formatAge renders elapsed time since start compactly for the table.
func formatAge(start time.Time, now time.Time) string {
	if start.IsZero() {
		return "-"
	}
	d := now.Sub(start)
	if d < 0 {
		d = 0
	}
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm%02ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh%02dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// formatStart renders the establishment time for the detail view.
func formatStart(start time.Time) string {
	if start.IsZero() {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", start.Local().Format("15:04:05"), humanize.Time(start))
}

// actorFor returns the row's actor label, preferring the process name,
// then a resolved container name for the source IP, then the source IP.
func (m Model) actorFor(c *model.Connection) string {
	if c.Metadata.Process != "" {
		return c.ActorLabel()
	}
	if ci, ok := m.containers[c.Metadata.SourceIP]; ok && ci.Name != "" {
		return ci.Name
	}
	return c.ActorLabel()
}

// typeChip renders the inbound type / network chip.
func typeChip(c *model.Connection) string {
	network := c.Metadata.Network
	if network == "" {
		network = "?"
	}
	if c.Metadata.Type == "" {
		return network
	}
	return c.Metadata.Type + "/" + network
}
