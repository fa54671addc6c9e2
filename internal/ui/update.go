package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/juliend/proxymon/internal/config"
	"github.com/juliend/proxymon/internal/process"
)

// changeHighlightAge is how long added/closed rows stay highlighted.
const changeHighlightAge = 4 * time.Second

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		m.tickCmd(),
		m.fetchData(),
		m.fetchVersion(),
	}
	if config.CurrentSettings.DockerResolve {
		cmds = append(cmds, m.fetchContainers())
	}
	if config.CurrentSettings.ProcessLookup {
		cmds = append(cmds, m.fetchPortOwners())
	}
	return tea.Batch(cmds...)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		viewportHeight := msg.Height - headerHeight - footerHeight - frameHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}
		viewportWidth := msg.Width - 4
		if viewportWidth < 1 {
			viewportWidth = 1
		}

		if !m.ready {
			m.viewport = viewport.New(viewportWidth, viewportHeight)
			m.ready = true
		} else {
			m.viewport.Width = viewportWidth
			m.viewport.Height = viewportHeight
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.pruneExpiredChanges(changeHighlightAge)
		cmds := []tea.Cmd{m.tickCmd(), m.fetchData()}
		if config.CurrentSettings.DockerResolve {
			cmds = append(cmds, m.fetchContainers())
		}
		if config.CurrentSettings.ProcessLookup {
			cmds = append(cmds, m.fetchPortOwners())
		}
		return m, tea.Batch(cmds...)

	case DataMsg:
		if msg.Err != nil {
			m.lastError = msg.Err
			m.lastErrorTime = time.Now()
			return m, nil
		}
		m.lastError = nil

		snap := msg.Snapshot
		process.Apply(snap, m.portOwners)
		snap.ComputeSpeeds(m.snapshot)
		snap.MergeRetained(m.snapshot, m.retainClosed)

		if config.CurrentSettings.HighlightChanges {
			for id, change := range diffSnapshots(m.snapshot, snap) {
				m.changes[id] = change
			}
		}

		m.snapshot = snap
		m.syncSelection()
		m.followSelection()
		return m, m.ensureFavicon()

	case FaviconMsg:
		m.applyFavicon(msg)
		return m, nil

	case ContainersMsg:
		// Container resolution is best-effort; errors leave the old map.
		if msg.Err == nil && msg.Containers != nil {
			m.containers = msg.Containers
		}
		return m, nil

	case PortOwnersMsg:
		if msg.Err == nil && msg.Owners != nil {
			m.portOwners = msg.Owners
		}
		return m, nil

	case CloseResultMsg:
		if msg.Err != nil {
			m.closeResult = "Close failed: " + msg.Err.Error()
		} else if msg.ID == "" {
			m.closeResult = "Closed all connections"
		} else {
			m.closeResult = "Closed " + msg.ID
		}
		m.closeResultAt = time.Now()
		return m, m.fetchData()

	case VersionMsg:
		if msg.Err == nil {
			m.version = msg.Version
		}
		return m, nil
	}

	return m, nil
}

// handleKey dispatches key presses, with modal modes intercepting first.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Close confirmation intercepts all keys
	if m.closeMode {
		switch {
		case matchKey(key, KeyConfirmYes):
			return m.executeClose()
		case matchKey(key, KeyConfirmNo, KeyEsc):
			m.closeMode = false
			m.closeTarget = nil
			return m, nil
		}
		return m, nil
	}

	// Search mode intercepts all keys
	if m.searchMode {
		switch key {
		case "enter":
			m.activeFilter = m.searchQuery
			m.searchMode = false
			m.clampCursor()
			return m, nil
		case "esc":
			m.searchQuery = m.activeFilter // revert to confirmed
			m.searchMode = false
			return m, nil
		case "backspace":
			if len(m.searchQuery) > 0 {
				m.searchQuery = m.searchQuery[:len(m.searchQuery)-1]
			}
			return m, nil
		default:
			r := msg.Runes
			if len(r) == 1 && r[0] >= 32 {
				m.searchQuery += string(r)
			}
			return m, nil
		}
	}

	if m.helpMode {
		if matchKey(key, KeyHelp, KeyEsc, KeyQuit) {
			m.helpMode = false
		}
		return m, nil
	}

	// Detail view: esc closes, close keys arm for the inspected connection.
	if m.detailOpen {
		switch {
		case matchKey(key, KeyQuit, KeyQuitAlt):
			m.quitting = true
			return m, tea.Quit
		case matchKey(key, KeyEsc, KeyEnter):
			m.detailOpen = false
			m.stopFavicon()
			return m, nil
		case matchKey(key, KeyClose):
			return m.enterCloseMode(false), nil
		}
		return m, nil
	}

	switch {
	case matchKey(key, KeyQuit, KeyQuitAlt):
		m.quitting = true
		return m, tea.Quit

	case matchKey(key, KeyUp, KeyUpAlt):
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case matchKey(key, KeyDown, KeyDownAlt):
		if m.cursor < len(m.visibleConnections())-1 {
			m.cursor++
		}
		return m, nil

	case key == "left", key == "h":
		if m.sortMode {
			columns := tableColumns()
			idx := findColumnIndex(columns, m.selectedColumn)
			if idx > 0 {
				m.selectedColumn = columns[idx-1]
			}
		}
		return m, nil

	case key == "right", key == "l":
		if m.sortMode {
			columns := tableColumns()
			idx := findColumnIndex(columns, m.selectedColumn)
			if idx < len(columns)-1 {
				m.selectedColumn = columns[idx+1]
			}
		}
		return m, nil

	case matchKey(key, KeyEnter) || key == " ":
		if m.sortMode {
			if m.sortColumn == m.selectedColumn {
				m.sortAscending = !m.sortAscending
			} else {
				m.sortColumn = m.selectedColumn
				m.sortAscending = true
			}
			m.sortMode = false
			m.followSelection()
			return m, nil
		}
		m.selectConnection(m.connectionUnderCursor())
		return m, m.ensureFavicon()

	case matchKey(key, KeyEsc):
		if m.sortMode {
			m.sortMode = false
			return m, nil
		}
		if m.activeFilter != "" {
			m.activeFilter = ""
			m.searchQuery = ""
			m.clampCursor()
		}
		return m, nil

	case matchKey(key, KeySortMode):
		m.sortMode = true
		m.selectedColumn = m.sortColumn
		return m, nil

	case matchKey(key, KeyToggleView):
		m.activeOnly = !m.activeOnly
		m.clampCursor()
		return m, nil

	case matchKey(key, KeySearch):
		m.searchMode = true
		m.searchQuery = m.activeFilter
		return m, nil

	case matchKey(key, KeyHelp):
		m.helpMode = true
		return m, nil

	case key == "+", key == "=":
		if m.refreshInterval > MinRefreshInterval {
			m.refreshInterval -= RefreshStep
		}
		return m, nil

	case key == "-", key == "_":
		if m.refreshInterval < MaxRefreshInterval {
			m.refreshInterval += RefreshStep
		}
		return m, nil

	case matchKey(key, KeyClose):
		return m.enterCloseMode(false), nil

	case matchKey(key, KeyCloseAll):
		return m.enterCloseMode(true), nil

	default:
		if m.ready {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.refreshInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func (m Model) fetchData() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		snapshot, err := m.client.Connections(ctx)
		return DataMsg{Snapshot: snapshot, Err: err}
	}
}

func (m Model) fetchVersion() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		v, err := m.client.Version(ctx)
		return VersionMsg{Version: v, Err: err}
	}
}

func (m Model) fetchContainers() tea.Cmd {
	resolver := m.dockerResolver
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		containers, err := resolver.Resolve(ctx)
		return ContainersMsg{Containers: containers, Err: err}
	}
}

func (m Model) fetchPortOwners() tea.Cmd {
	enricher := m.enricher
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()

		owners, err := enricher.PortOwners(ctx)
		return PortOwnersMsg{Owners: owners, Err: err}
	}
}
