package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/juliend/proxymon/internal/config"
	"github.com/juliend/proxymon/internal/favicon"
)

// ensureFavicon starts icon resolution for the inspected host when the
// host actually changed. Re-rendering with the same host is a no-op, so no
// redundant probes are issued. Starting a resolution invalidates every
// earlier in-flight probe.
func (m *Model) ensureFavicon() tea.Cmd {
	if !config.CurrentSettings.Favicons {
		return nil
	}

	host := ""
	if m.detailOpen && m.selected != nil {
		host = m.selected.DisplayHost()
	}
	if host == m.favHost {
		return nil
	}
	m.favHost = host

	if host == "" {
		m.favicons.Stop()
		m.favState = favicon.StateUnavailable
		m.favURL = ""
		return nil
	}

	m.favState = favicon.StateLoading
	m.favURL = ""
	ch := m.favicons.Start(host)
	return func() tea.Msg {
		return FaviconMsg(<-ch)
	}
}

// applyFavicon commits a resolution result unless it is stale. Stale
// results are silently discarded; they belong to a host no longer shown.
func (m *Model) applyFavicon(msg FaviconMsg) {
	if !m.favicons.Commit(favicon.Result(msg)) {
		return
	}
	m.favState = msg.State
	m.favURL = msg.URL
}

// stopFavicon tears down resolution when the detail view closes.
func (m *Model) stopFavicon() {
	m.favicons.Stop()
	m.favHost = ""
	m.favURL = ""
	m.favState = favicon.StateUnavailable
}

// faviconMarker returns the inline marker rendered before the host text of
// a row whose site icon is known to resolve.
func (m Model) faviconMarker(host string) string {
	if !config.CurrentSettings.Favicons || m.favicons == nil {
		return ""
	}
	if res, ok := m.favicons.Cached(host); ok && res.State == favicon.StateResolved {
		return "◆ "
	}
	return ""
}
