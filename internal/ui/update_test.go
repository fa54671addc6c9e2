package ui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsg(key string) tea.KeyMsg {
	switch key {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
}

func pressKey(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(keyMsg(key))
	next, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return next, cmd
}

func TestUpdate_WindowSizeInitializesViewport(t *testing.T) {
	m := NewModel(&mockClient{})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	next := updated.(Model)

	if !next.ready {
		t.Error("expected model to be ready after window size")
	}
	if next.width != 120 || next.height != 40 {
		t.Errorf("expected 120x40, got %dx%d", next.width, next.height)
	}
	wantHeight := 40 - headerHeight - footerHeight - frameHeight
	if next.viewport.Height != wantHeight {
		t.Errorf("expected viewport height %d, got %d", wantHeight, next.viewport.Height)
	}
}

func TestUpdate_DataMsgComputesSpeeds(t *testing.T) {
	m := NewModel(&mockClient{})

	t0 := time.Now().Add(-time.Second)
	prev := testSnapshot(testConn("conn-1", "example.com", 1000))
	prev.Connections[0].Upload = 500
	prev.Timestamp = t0
	m.snapshot = prev

	curr := testSnapshot(testConn("conn-1", "example.com", 3000))
	curr.Connections[0].Upload = 1500
	curr.Timestamp = t0.Add(time.Second)

	updated, _ := m.Update(DataMsg{Snapshot: curr})
	next := updated.(Model)

	c := next.snapshot.Find("conn-1")
	if c == nil {
		t.Fatal("conn-1 missing after refresh")
	}
	if c.DownloadSpeed != 2000 {
		t.Errorf("expected download speed 2000, got %d", c.DownloadSpeed)
	}
	if c.UploadSpeed != 1000 {
		t.Errorf("expected upload speed 1000, got %d", c.UploadSpeed)
	}
}

func TestUpdate_DataMsgRetainsClosedConnections(t *testing.T) {
	m := NewModel(&mockClient{})

	prev := testSnapshot(
		testConn("conn-1", "example.com", 100),
		testConn("conn-2", "gone.net", 200),
	)
	prev.Timestamp = time.Now().Add(-time.Second)
	m.snapshot = prev

	curr := testSnapshot(testConn("conn-1", "example.com", 150))

	updated, _ := m.Update(DataMsg{Snapshot: curr})
	next := updated.(Model)

	gone := next.snapshot.Find("conn-2")
	if gone == nil {
		t.Fatal("expected closed conn-2 to be retained")
	}
	if gone.IsActive {
		t.Error("retained connection must be inactive")
	}
	if live := next.snapshot.Find("conn-1"); live == nil || !live.IsActive {
		t.Error("reported connection must stay active")
	}
}

func TestUpdate_DataMsgRecordsChanges(t *testing.T) {
	m := NewModel(&mockClient{})

	prev := testSnapshot(testConn("conn-old", "a.com", 1))
	prev.Timestamp = time.Now().Add(-time.Second)
	m.snapshot = prev

	curr := testSnapshot(
		testConn("conn-old", "a.com", 1),
		testConn("conn-new", "b.com", 1),
	)

	updated, _ := m.Update(DataMsg{Snapshot: curr})
	next := updated.(Model)

	change := next.GetChange("conn-new")
	if change == nil || change.Type != ChangeAdded {
		t.Errorf("expected conn-new recorded as added, got %v", change)
	}
}

func TestUpdate_DataMsgErrorKeepsSnapshot(t *testing.T) {
	m := NewModel(&mockClient{})
	m.snapshot = testSnapshot(testConn("conn-1", "example.com", 100))

	updated, _ := m.Update(DataMsg{Err: errors.New("connection refused")})
	next := updated.(Model)

	if next.lastError == nil {
		t.Error("expected fetch error to be recorded")
	}
	if next.snapshot == nil || next.snapshot.Find("conn-1") == nil {
		t.Error("stale snapshot must survive a failed refresh")
	}
}

func TestUpdate_VersionMsg(t *testing.T) {
	m := NewModel(&mockClient{})

	updated, _ := m.Update(VersionMsg{Version: "1.19.2"})
	next := updated.(Model)

	if next.version != "1.19.2" {
		t.Errorf("expected version 1.19.2, got %q", next.version)
	}
}

func TestHandleKey_CursorNavigation(t *testing.T) {
	m := NewModel(&mockClient{})
	m.snapshot = testSnapshot(
		testConn("conn-1", "a.com", 1),
		testConn("conn-2", "b.com", 2),
		testConn("conn-3", "c.com", 3),
	)

	m, _ = pressKey(t, m, "j")
	m, _ = pressKey(t, m, "j")
	if m.cursor != 2 {
		t.Errorf("expected cursor 2, got %d", m.cursor)
	}

	// At the bottom, down is a no-op.
	m, _ = pressKey(t, m, "down")
	if m.cursor != 2 {
		t.Errorf("expected cursor clamped at 2, got %d", m.cursor)
	}

	m, _ = pressKey(t, m, "k")
	if m.cursor != 1 {
		t.Errorf("expected cursor 1, got %d", m.cursor)
	}
}

func TestHandleKey_EnterOpensDetail(t *testing.T) {
	m := newFaviconModel(&countingProber{})
	m.snapshot = testSnapshot(testConn("conn-1", "a.com", 1))

	m, _ = pressKey(t, m, "enter")

	if !m.detailOpen {
		t.Error("expected detail view to open")
	}
	if m.selected == nil || m.selected.ID != "conn-1" {
		t.Error("expected conn-1 selected")
	}

	m, _ = pressKey(t, m, "esc")
	if m.detailOpen {
		t.Error("expected esc to close the detail view")
	}
}

func TestHandleKey_SortModeSelectsColumn(t *testing.T) {
	m := NewModel(&mockClient{})
	m.snapshot = testSnapshot(testConn("conn-1", "a.com", 1))

	m, _ = pressKey(t, m, "s")
	if !m.sortMode {
		t.Fatal("expected sort mode")
	}
	if m.selectedColumn != m.sortColumn {
		t.Error("sort mode must start on the current sort column")
	}

	m, _ = pressKey(t, m, "right")
	m, _ = pressKey(t, m, "enter")

	if m.sortMode {
		t.Error("enter must leave sort mode")
	}
	if m.sortColumn != SortUp {
		t.Errorf("expected sort column Up, got %s", m.sortColumn)
	}
	if !m.sortAscending {
		t.Error("new sort column starts ascending")
	}

	// Re-applying the same column flips direction.
	m, _ = pressKey(t, m, "s")
	m, _ = pressKey(t, m, "enter")
	if m.sortAscending {
		t.Error("expected direction flipped to descending")
	}
}

func TestHandleKey_SearchFlow(t *testing.T) {
	m := NewModel(&mockClient{})
	m.snapshot = testSnapshot(
		testConn("conn-1", "example.com", 1),
		testConn("conn-2", "other.net", 2),
	)

	m, _ = pressKey(t, m, "/")
	if !m.searchMode {
		t.Fatal("expected search mode")
	}

	for _, r := range "other" {
		m, _ = pressKey(t, m, string(r))
	}
	m, _ = pressKey(t, m, "enter")

	if m.searchMode {
		t.Error("enter must confirm and leave search mode")
	}
	if m.activeFilter != "other" {
		t.Errorf("expected filter %q, got %q", "other", m.activeFilter)
	}
	conns := m.visibleConnections()
	if len(conns) != 1 || conns[0].ID != "conn-2" {
		t.Errorf("expected only conn-2 visible, got %d rows", len(conns))
	}

	// esc clears the confirmed filter.
	m, _ = pressKey(t, m, "esc")
	if m.activeFilter != "" {
		t.Error("expected esc to clear the filter")
	}
}

func TestHandleKey_SearchEscReverts(t *testing.T) {
	m := NewModel(&mockClient{})
	m.activeFilter = "keep"
	m.searchQuery = "keep"

	m, _ = pressKey(t, m, "/")
	m, _ = pressKey(t, m, "z")
	m, _ = pressKey(t, m, "esc")

	if m.searchMode {
		t.Error("expected search mode exited")
	}
	if m.searchQuery != "keep" {
		t.Errorf("expected query reverted to %q, got %q", "keep", m.searchQuery)
	}
}

func TestHandleKey_ToggleView(t *testing.T) {
	m := NewModel(&mockClient{})
	snap := testSnapshot(
		testConn("conn-1", "a.com", 1),
		testConn("conn-2", "b.com", 2),
	)
	snap.Connections[1].IsActive = false
	m.snapshot = snap

	if got := len(m.visibleConnections()); got != 1 {
		t.Fatalf("expected 1 active row, got %d", got)
	}

	m, _ = pressKey(t, m, "v")
	if got := len(m.visibleConnections()); got != 2 {
		t.Errorf("expected 2 rows with all connections shown, got %d", got)
	}
}

func TestHandleKey_RefreshIntervalBounds(t *testing.T) {
	m := NewModel(&mockClient{})
	m.refreshInterval = MinRefreshInterval

	m, _ = pressKey(t, m, "+")
	if m.refreshInterval != MinRefreshInterval {
		t.Errorf("interval must not go below the minimum, got %v", m.refreshInterval)
	}

	m, _ = pressKey(t, m, "-")
	if m.refreshInterval != MinRefreshInterval+RefreshStep {
		t.Errorf("expected one step up, got %v", m.refreshInterval)
	}

	m.refreshInterval = MaxRefreshInterval
	m, _ = pressKey(t, m, "-")
	if m.refreshInterval != MaxRefreshInterval {
		t.Errorf("interval must not exceed the maximum, got %v", m.refreshInterval)
	}
}

func TestHandleKey_QuitSetsQuitting(t *testing.T) {
	m := NewModel(&mockClient{})

	m, cmd := pressKey(t, m, "q")
	if !m.quitting {
		t.Error("expected quitting flag")
	}
	if cmd == nil {
		t.Error("expected quit command")
	}
}

func TestCloseFlow_ActiveConnectionClosesViaController(t *testing.T) {
	client := &mockClient{}
	m := NewModel(client)
	m.snapshot = testSnapshot(testConn("conn-1", "example.com", 1))

	m, _ = pressKey(t, m, "x")
	if !m.closeMode || m.closeTarget == nil {
		t.Fatal("expected close confirmation armed")
	}
	if m.closeTarget.ID != "conn-1" || !m.closeTarget.Active {
		t.Errorf("unexpected close target %+v", m.closeTarget)
	}

	m, cmd := pressKey(t, m, "y")
	if m.closeMode {
		t.Error("confirmation must disarm after y")
	}
	if cmd == nil {
		t.Fatal("expected close command")
	}

	msg := cmd()
	res, ok := msg.(CloseResultMsg)
	if !ok {
		t.Fatalf("expected CloseResultMsg, got %T", msg)
	}
	if res.Err != nil {
		t.Errorf("unexpected close error: %v", res.Err)
	}
	if len(client.closedIDs) != 1 || client.closedIDs[0] != "conn-1" {
		t.Errorf("expected controller close for conn-1, got %v", client.closedIDs)
	}
}

func TestCloseFlow_InactiveConnectionRemovedLocally(t *testing.T) {
	client := &mockClient{}
	m := NewModel(client)
	snap := testSnapshot(testConn("conn-1", "example.com", 1))
	snap.Connections[0].IsActive = false
	m.snapshot = snap
	m.activeOnly = false

	m, _ = pressKey(t, m, "x")
	m, cmd := pressKey(t, m, "y")

	if cmd != nil {
		t.Error("inactive close must not hit the controller")
	}
	if len(client.closedIDs) != 0 {
		t.Errorf("controller must not be called, got %v", client.closedIDs)
	}
	if m.snapshot.Find("conn-1") != nil {
		t.Error("expected conn-1 removed from the local table")
	}
}

func TestCloseFlow_CancelKeepsConnection(t *testing.T) {
	client := &mockClient{}
	m := NewModel(client)
	m.snapshot = testSnapshot(testConn("conn-1", "example.com", 1))

	m, _ = pressKey(t, m, "x")
	m, _ = pressKey(t, m, "n")

	if m.closeMode || m.closeTarget != nil {
		t.Error("expected close confirmation disarmed")
	}
	if len(client.closedIDs) != 0 {
		t.Error("cancel must not close anything")
	}
}

func TestCloseFlow_CloseAll(t *testing.T) {
	client := &mockClient{}
	m := NewModel(client)
	m.snapshot = testSnapshot(testConn("conn-1", "example.com", 1))

	m, _ = pressKey(t, m, "X")
	if m.closeTarget == nil || !m.closeTarget.All {
		t.Fatal("expected close-all confirmation armed")
	}

	_, cmd := pressKey(t, m, "y")
	if cmd == nil {
		t.Fatal("expected close-all command")
	}
	cmd()
	if !client.closedAll {
		t.Error("expected CloseAll on the controller")
	}
}

func TestUpdate_CloseResultTriggersRefresh(t *testing.T) {
	m := NewModel(&mockClient{})

	updated, cmd := m.Update(CloseResultMsg{ID: "conn-1"})
	next := updated.(Model)

	if next.closeResult == "" {
		t.Error("expected close result status")
	}
	if cmd == nil {
		t.Error("expected an immediate data refresh")
	}
}

func TestHandleKey_HelpModal(t *testing.T) {
	m := NewModel(&mockClient{})

	m, _ = pressKey(t, m, "?")
	if !m.helpMode {
		t.Fatal("expected help modal")
	}

	// Navigation keys are swallowed while help is open.
	m, _ = pressKey(t, m, "j")
	if m.cursor != 0 {
		t.Error("help modal must swallow navigation keys")
	}

	m, _ = pressKey(t, m, "esc")
	if m.helpMode {
		t.Error("expected help modal closed")
	}
}
