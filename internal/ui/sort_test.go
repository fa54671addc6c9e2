package ui

import (
	"testing"

	"github.com/juliend/proxymon/internal/docker"
	"github.com/juliend/proxymon/internal/model"
)

func TestMatchesFilter_Fields(t *testing.T) {
	m := NewModel(&mockClient{})
	m.containers = map[string]*docker.ContainerInfo{
		"172.17.0.2": {Name: "media-server"},
	}

	c := testConn("conn-1", "www.example.com", 1)
	c.Metadata.SourceIP = "172.17.0.2"
	c.Chains = []string{"PROXY-HK", "auto"}

	cases := []struct {
		filter string
		want   bool
	}{
		{"", true},
		{"EXAMPLE", true},    // host, case-insensitive
		{"media", true},      // resolved container actor
		{"proxy-hk", true},   // chain hop
		{"172.17.0.2", true}, // source IP
		{"unrelated", false},
	}
	for _, tc := range cases {
		if got := m.matchesFilter(tc.filter, &c); got != tc.want {
			t.Errorf("matchesFilter(%q) = %v, want %v", tc.filter, got, tc.want)
		}
	}
}

func TestVisibleConnections_ActiveOnly(t *testing.T) {
	m := NewModel(&mockClient{})
	snap := testSnapshot(
		testConn("conn-live", "a.com", 1),
		testConn("conn-dead", "b.com", 2),
	)
	snap.Connections[1].IsActive = false
	m.snapshot = snap

	conns := m.visibleConnections()
	if len(conns) != 1 || conns[0].ID != "conn-live" {
		t.Fatalf("expected only the live connection, got %d rows", len(conns))
	}

	m.activeOnly = false
	if got := len(m.visibleConnections()); got != 2 {
		t.Errorf("expected 2 rows with activeOnly off, got %d", got)
	}
}

func TestSortConnections_ByDownload(t *testing.T) {
	m := NewModel(&mockClient{})
	m.sortColumn = SortDown
	m.sortAscending = false

	conns := []model.Connection{
		testConn("conn-small", "a.com", 10),
		testConn("conn-big", "b.com", 9000),
		testConn("conn-mid", "c.com", 500),
	}
	m.sortConnections(conns)

	want := []string{"conn-big", "conn-mid", "conn-small"}
	for i, id := range want {
		if conns[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, conns[i].ID)
		}
	}
}

func TestSortConnections_HostAscendingWithIDTiebreak(t *testing.T) {
	m := NewModel(&mockClient{})
	m.sortColumn = SortHost
	m.sortAscending = true

	conns := []model.Connection{
		testConn("conn-b", "same.com", 1),
		testConn("conn-a", "same.com", 2),
		testConn("conn-c", "aardvark.org", 3),
	}
	m.sortConnections(conns)

	want := []string{"conn-c", "conn-a", "conn-b"}
	for i, id := range want {
		if conns[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, conns[i].ID)
		}
	}
}

func TestVisibleConnections_ReturnsCopies(t *testing.T) {
	m := NewModel(&mockClient{})
	m.snapshot = testSnapshot(testConn("conn-1", "a.com", 1))

	conns := m.visibleConnections()
	conns[0].Download = 999

	if m.snapshot.Connections[0].Download != 1 {
		t.Error("visible rows must be copies of the snapshot")
	}
}
