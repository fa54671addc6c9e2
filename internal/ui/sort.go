package ui

import (
	"sort"
	"strings"

	"github.com/juliend/proxymon/internal/model"
)

// matchesFilter reports whether a connection matches the filter string.
// Matching is a case-insensitive substring check over host, actor, chain
// hops and source IP.
func (m Model) matchesFilter(filter string, c *model.Connection) bool {
	if filter == "" {
		return true
	}
	f := strings.ToLower(filter)
	if strings.Contains(strings.ToLower(c.DisplayHost()), f) {
		return true
	}
	if strings.Contains(strings.ToLower(m.actorFor(c)), f) {
		return true
	}
	for _, hop := range c.Chains {
		if strings.Contains(strings.ToLower(hop), f) {
			return true
		}
	}
	return strings.Contains(c.Metadata.SourceIP, f)
}

// currentFilter returns the filter in effect: the live query while typing,
// the confirmed filter otherwise.
func (m Model) currentFilter() string {
	if m.searchMode {
		return m.searchQuery
	}
	return m.activeFilter
}

// visibleConnections returns the filtered, sorted connection list the
// table renders. Returned values are copies; rows are identified by ID.
func (m Model) visibleConnections() []model.Connection {
	if m.snapshot == nil {
		return nil
	}
	filter := m.currentFilter()

	var conns []model.Connection
	for i := range m.snapshot.Connections {
		c := &m.snapshot.Connections[i]
		if m.activeOnly && !c.IsActive {
			continue
		}
		if !m.matchesFilter(filter, c) {
			continue
		}
		conns = append(conns, *c)
	}

	m.sortConnections(conns)
	return conns
}

// sortConnections orders conns by the current sort column and direction.
func (m Model) sortConnections(conns []model.Connection) {
	asc := m.sortAscending
	less := func(i, j int) bool {
		a, b := &conns[i], &conns[j]
		var cmp int
		switch m.sortColumn {
		case SortHost:
			cmp = strings.Compare(strings.ToLower(a.DisplayHost()), strings.ToLower(b.DisplayHost()))
		case SortActor:
			cmp = strings.Compare(strings.ToLower(m.actorFor(a)), strings.ToLower(m.actorFor(b)))
		case SortChain:
			cmp = strings.Compare(a.FirstChain(), b.FirstChain())
		case SortType:
			cmp = strings.Compare(typeChip(a), typeChip(b))
		case SortAge:
			switch {
			case a.Start.Before(b.Start):
				cmp = -1
			case a.Start.After(b.Start):
				cmp = 1
			}
		case SortUp:
			cmp = compareUint(a.Upload, b.Upload)
		case SortDown:
			cmp = compareUint(a.Download, b.Download)
		}
		if cmp == 0 {
			// Stable tiebreak so equal rows don't jitter between refreshes.
			cmp = strings.Compare(a.ID, b.ID)
		}
		if asc {
			return cmp < 0
		}
		return cmp > 0
	}
	sort.SliceStable(conns, less)
}

func compareUint(a, b uint64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// tableColumns returns the column order used for sort-mode navigation.
func tableColumns() []SortColumn {
	return []SortColumn{SortActor, SortHost, SortChain, SortType, SortAge, SortUp, SortDown}
}

// findColumnIndex returns the index of col in columns, or 0.
func findColumnIndex(columns []SortColumn, col SortColumn) int {
	for i, c := range columns {
		if c == col {
			return i
		}
	}
	return 0
}
