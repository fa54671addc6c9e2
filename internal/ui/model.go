package ui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/juliend/proxymon/internal/api"
	"github.com/juliend/proxymon/internal/docker"
	"github.com/juliend/proxymon/internal/favicon"
	"github.com/juliend/proxymon/internal/model"
	"github.com/juliend/proxymon/internal/process"
)

// Refresh interval bounds.
const (
	MinRefreshInterval     = 500 * time.Millisecond
	MaxRefreshInterval     = 10 * time.Second
	DefaultRefreshInterval = 1 * time.Second
	RefreshStep            = 500 * time.Millisecond
)

// SortColumn represents the column to sort by in the connection table.
type SortColumn int

const (
	SortHost SortColumn = iota
	SortActor
	SortChain
	SortType
	SortAge
	SortUp
	SortDown
)

// String returns a human-readable name for the SortColumn.
func (s SortColumn) String() string {
	switch s {
	case SortHost:
		return "Host"
	case SortActor:
		return "Actor"
	case SortChain:
		return "Chain"
	case SortType:
		return "Type"
	case SortAge:
		return "Age"
	case SortUp:
		return "Up"
	case SortDown:
		return "Down"
	default:
		return fmt.Sprintf("SortColumn(%d)", int(s))
	}
}

// closeTargetInfo describes the connection the close modal is armed for.
type closeTargetInfo struct {
	ID     string
	Host   string
	Actor  string
	Active bool
	All    bool // close-all confirmation
}

// Model is the Bubble Tea model for the connection monitor.
type Model struct {
	// Data
	client   api.Client
	snapshot *model.Snapshot

	// Selection cell mirrored by the detail view. selected always holds the
	// freshest snapshot copy of the inspected connection.
	selected   *model.Connection
	detailOpen bool

	// Favicon resolution for the inspected host
	favicons *favicon.Resolver
	favHost  string
	favState favicon.State
	favURL   string

	// Enrichment
	containers     map[string]*docker.ContainerInfo
	portOwners     map[uint32]string
	dockerResolver docker.Resolver
	enricher       process.Enricher

	// Cursor and table state
	cursor         int
	sortColumn     SortColumn
	sortAscending  bool
	sortMode       bool
	selectedColumn SortColumn
	activeOnly     bool

	// Search/filter
	searchMode   bool
	searchQuery  string
	activeFilter string

	// Close confirmation
	closeMode     bool
	closeTarget   *closeTargetInfo
	closeResult   string
	closeResultAt time.Time

	// Modals
	helpMode bool

	// Change highlighting
	changes map[string]Change

	// Error tracking
	lastError     error
	lastErrorTime time.Time

	// Configuration
	refreshInterval time.Duration
	retainClosed    int
	version         string

	// UI state
	quitting bool
	width    int
	height   int
	viewport viewport.Model
	ready    bool
}

// NewModel creates a Model talking to the given controller client.
func NewModel(client api.Client) Model {
	return Model{
		client:          client,
		favicons:        favicon.NewResolver(),
		dockerResolver:  docker.NewResolver(),
		enricher:        process.NewEnricher(),
		refreshInterval: DefaultRefreshInterval,
		retainClosed:    50,
		sortColumn:      SortAge,
		sortAscending:   false,
		selectedColumn:  SortAge,
		activeOnly:      true,
		changes:         make(map[string]Change),
	}
}

// WithFilter pre-fills the search filter (e.g. from a CLI argument).
func (m Model) WithFilter(filter string) Model {
	m.activeFilter = filter
	m.searchQuery = filter
	return m
}

// WithRetainClosed sets how many closed connections linger in the table.
func (m Model) WithRetainClosed(n int) Model {
	if n >= 0 {
		m.retainClosed = n
	}
	return m
}

// Selected returns the currently inspected connection, or nil.
func (m *Model) Selected() *model.Connection {
	return m.selected
}

var _ tea.Model = Model{}
