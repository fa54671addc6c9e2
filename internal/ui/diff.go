package ui

import (
	"time"

	"github.com/juliend/proxymon/internal/model"
)

// ChangeType indicates whether a connection appeared or closed.
type ChangeType int

const (
	ChangeAdded ChangeType = iota
	ChangeClosed
)

// Change records a detected connection change.
type Change struct {
	Type      ChangeType
	Timestamp time.Time
}

// GetChange returns the Change for a connection ID, or nil if none.
func (m Model) GetChange(id string) *Change {
	if change, ok := m.changes[id]; ok {
		return &change
	}
	return nil
}

// pruneExpiredChanges removes changes older than maxAge.
func (m *Model) pruneExpiredChanges(maxAge time.Duration) {
	if m.changes == nil {
		return
	}
	cutoff := time.Now().Add(-maxAge)
	for id, change := range m.changes {
		if change.Timestamp.Before(cutoff) {
			delete(m.changes, id)
		}
	}
}

// diffSnapshots compares previous and current snapshots by connection ID.
// Added: active now, absent before. Closed: active before, inactive or
// absent now. The returned map is merged into the model's change set.
func diffSnapshots(prev, curr *model.Snapshot) map[string]Change {
	if prev == nil || curr == nil {
		return nil
	}

	now := time.Now()
	changes := make(map[string]Change)

	prevActive := make(map[string]struct{})
	for i := range prev.Connections {
		if prev.Connections[i].IsActive {
			prevActive[prev.Connections[i].ID] = struct{}{}
		}
	}

	currActive := make(map[string]struct{})
	for i := range curr.Connections {
		c := &curr.Connections[i]
		if c.IsActive {
			currActive[c.ID] = struct{}{}
			if _, found := prevActive[c.ID]; !found {
				changes[c.ID] = Change{Type: ChangeAdded, Timestamp: now}
			}
		}
	}

	for id := range prevActive {
		if _, found := currActive[id]; !found {
			changes[id] = Change{Type: ChangeClosed, Timestamp: now}
		}
	}

	return changes
}
