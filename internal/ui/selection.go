package ui

import (
	"github.com/juliend/proxymon/internal/model"
)

// selectConnection is the user-facing select action: it publishes the
// connection into the selection cell and opens the detail view.
func (m *Model) selectConnection(c *model.Connection) {
	if c == nil {
		return
	}
	copied := *c
	m.selected = &copied
	m.detailOpen = true
}

// syncSelection reconciles the selection cell against a fresh snapshot.
// When the snapshot still carries a connection with the selected ID, the
// cell is replaced with that fresher copy so the detail view never goes
// stale. When the connection is gone entirely, the held copy is flagged
// inactive. Rows with other IDs never touch the cell.
func (m *Model) syncSelection() {
	if m.selected == nil || m.snapshot == nil {
		return
	}
	if fresh := m.snapshot.Find(m.selected.ID); fresh != nil {
		copied := *fresh
		m.selected = &copied
		return
	}
	m.selected.IsActive = false
}

// findConnectionIndex returns the index of a connection ID in the visible
// list, or -1.
func (m Model) findConnectionIndex(id string) int {
	if id == "" {
		return -1
	}
	for i, c := range m.visibleConnections() {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// followSelection keeps the cursor on the inspected connection across
// re-sorts and refreshes, falling back to clamping when it is not visible.
func (m *Model) followSelection() {
	if m.selected != nil {
		if idx := m.findConnectionIndex(m.selected.ID); idx >= 0 {
			m.cursor = idx
			return
		}
	}
	m.clampCursor()
}

// clampCursor keeps the cursor within the visible list.
func (m *Model) clampCursor() {
	count := len(m.visibleConnections())
	if count == 0 {
		m.cursor = 0
		return
	}
	if m.cursor >= count {
		m.cursor = count - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// connectionUnderCursor returns the connection the cursor points at, or nil.
func (m Model) connectionUnderCursor() *model.Connection {
	conns := m.visibleConnections()
	if m.cursor < 0 || m.cursor >= len(conns) {
		return nil
	}
	c := conns[m.cursor]
	return &c
}
