package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// enterCloseMode arms the close confirmation for the inspected or
// cursor-selected connection, or for all connections.
func (m Model) enterCloseMode(all bool) Model {
	if all {
		m.closeMode = true
		m.closeTarget = &closeTargetInfo{All: true}
		return m
	}

	target := m.selected
	if !m.detailOpen {
		target = m.connectionUnderCursor()
	}
	if target == nil {
		return m
	}

	m.closeMode = true
	m.closeTarget = &closeTargetInfo{
		ID:     target.ID,
		Host:   target.DisplayHost(),
		Actor:  m.actorFor(target),
		Active: target.IsActive,
	}
	return m
}

// executeClose performs the armed close action. Active connections are
// terminated through the controller; inactive ones are only removed from
// the local table.
func (m Model) executeClose() (tea.Model, tea.Cmd) {
	target := m.closeTarget
	m.closeMode = false
	m.closeTarget = nil
	if target == nil {
		return m, nil
	}

	if target.All {
		client := m.client
		return m, func() tea.Msg {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return CloseResultMsg{Err: client.CloseAll(ctx)}
		}
	}

	if !target.Active {
		m.removeRetained(target.ID)
		m.closeResult = fmt.Sprintf("Removed %s", target.Host)
		m.closeResultAt = time.Now()
		return m, nil
	}

	client := m.client
	id := target.ID
	return m, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return CloseResultMsg{ID: id, Err: client.CloseConnection(ctx, id)}
	}
}

// removeRetained drops an inactive connection from the local table.
func (m *Model) removeRetained(id string) {
	if m.snapshot == nil {
		return
	}
	conns := m.snapshot.Connections
	for i := range conns {
		if conns[i].ID == id {
			m.snapshot.Connections = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	delete(m.changes, id)
	m.clampCursor()
}

// renderCloseModalContent builds the confirmation text for the close modal.
func (m Model) renderCloseModalContent() string {
	t := m.closeTarget
	if t == nil {
		return ""
	}
	if t.All {
		count := 0
		if m.snapshot != nil {
			count = m.snapshot.ActiveCount()
		}
		return fmt.Sprintf("\n  Close all %d active connections?\n\n  [y] confirm   [n] cancel", count)
	}
	verb := "Close"
	if !t.Active {
		verb = "Remove"
	}
	return fmt.Sprintf("\n  %s connection?\n\n  Actor:  %s\n  Host:   %s\n\n  [y] confirm   [n] cancel",
		verb, t.Actor, t.Host)
}
