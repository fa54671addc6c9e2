package ui

import (
	"strings"
	"time"

	"github.com/juliend/proxymon/internal/model"
)

// columnDef defines a table column with sizing properties.
type columnDef struct {
	label      string
	id         SortColumn
	minWidth   int
	flex       int // flex weight for extra space distribution (0 = fixed)
	rightAlign bool
}

func connectionColumns() []columnDef {
	return []columnDef{
		{label: "Actor", id: SortActor, minWidth: 14, flex: 1},
		{label: "Host", id: SortHost, minWidth: 24, flex: 3},
		{label: "Chain", id: SortChain, minWidth: 12, flex: 1},
		{label: "Type", id: SortType, minWidth: 12},
		{label: "Age", id: SortAge, minWidth: 7, rightAlign: true},
		{label: "Up", id: SortUp, minWidth: 16, rightAlign: true},
		{label: "Down", id: SortDown, minWidth: 16, rightAlign: true},
	}
}

// calculateColumnWidths distributes available width among columns.
// Fixed columns get their minWidth, remaining space goes to flex columns.
func calculateColumnWidths(columns []columnDef, availableWidth int) []int {
	widths := make([]int, len(columns))

	separators := len(columns) - 1
	statusMarker := 2 // "● " prefix on every row
	availableWidth -= separators + statusMarker

	totalMin := 0
	totalFlex := 0
	for i, col := range columns {
		widths[i] = col.minWidth
		totalMin += col.minWidth
		totalFlex += col.flex
	}

	extra := availableWidth - totalMin
	if extra > 0 && totalFlex > 0 {
		for i, col := range columns {
			if col.flex > 0 {
				widths[i] += extra * col.flex / totalFlex
			}
		}
	}
	return widths
}

// renderTableHeader renders the column header with sort indicators.
func (m Model) renderTableHeader(columns []columnDef, widths []int) string {
	var b strings.Builder
	b.WriteString("  ")

	headerStyle := TableHeaderStyle()
	selectedStyle := TableHeaderSelectedStyle()
	sortStyle := SortIndicatorStyle()

	for i, col := range columns {
		if i > 0 {
			b.WriteString(" ")
		}

		isSelected := m.sortMode && m.selectedColumn == col.id
		isSorted := m.sortColumn == col.id

		header := col.label
		var indicator string
		if isSorted {
			if m.sortAscending {
				indicator = "△"
			} else {
				indicator = "▽"
			}
		}

		padWidth := widths[i] - len(header)
		if isSorted {
			padWidth--
		}
		if padWidth < 0 {
			padWidth = 0
		}
		if col.rightAlign {
			header = strings.Repeat(" ", padWidth) + header
		} else {
			header = header + strings.Repeat(" ", padWidth)
		}

		if isSelected {
			b.WriteString(selectedStyle.Render(header))
		} else {
			b.WriteString(headerStyle.Render(header))
		}
		if isSorted {
			b.WriteString(sortStyle.Render(indicator))
		}
	}

	return b.String()
}

// renderConnectionRow renders one connection as a table row.
func (m Model) renderConnectionRow(c *model.Connection, widths []int, isCursor bool, now time.Time) string {
	columns := connectionColumns()

	host := m.faviconMarker(c.DisplayHost()) + c.DisplayHost()

	up := formatBytes(c.Upload)
	if rate := formatRate(c.UploadSpeed); rate != "" {
		up += " " + rate
	}
	down := formatBytes(c.Download)
	if rate := formatRate(c.DownloadSpeed); rate != "" {
		down += " " + rate
	}

	cells := []string{
		m.actorFor(c),
		host,
		c.FirstChain(),
		typeChip(c),
		formatAge(c.Start, now),
		up,
		down,
	}

	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" ")
		}
		w := widths[i]
		cell = truncateString(cell, w)
		if columns[i].rightAlign {
			b.WriteString(strings.Repeat(" ", w-len(cell)) + cell)
		} else {
			b.WriteString(padRight(cell, w))
		}
	}

	marker := "● "
	if !c.IsActive {
		marker = "○ "
	}
	row := marker + b.String()

	switch {
	case isCursor:
		return SelectedRowStyle().Render(row)
	case !c.IsActive:
		return InactiveRowStyle().Render(row)
	}

	if change := m.GetChange(c.ID); change != nil {
		switch change.Type {
		case ChangeAdded:
			return AddedRowStyle().Render(row)
		case ChangeClosed:
			return ClosedRowStyle().Render(row)
		}
	}

	return RowStyle().Render(row)
}

// renderTableBody renders all visible connection rows.
func (m Model) renderTableBody() string {
	conns := m.visibleConnections()
	if len(conns) == 0 {
		if m.currentFilter() != "" {
			return EmptyStyle().Render("No connections match the filter")
		}
		return EmptyStyle().Render("No connections")
	}

	widths := calculateColumnWidths(connectionColumns(), m.contentWidth())
	now := time.Now()

	var b strings.Builder
	for i := range conns {
		b.WriteString(m.renderConnectionRow(&conns[i], widths, i == m.cursor, now))
		b.WriteString("\n")
	}
	return b.String()
}

// contentWidth returns the available width for table content.
func (m Model) contentWidth() int {
	return m.width - 4
}
