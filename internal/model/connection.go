package model

import (
	"sort"
	"strings"
	"time"
)

// Network is the transport layer reported by the proxy core.
type Network string

const (
	NetworkTCP Network = "tcp"
	NetworkUDP Network = "udp"
)

// Metadata describes one connection as reported by the controller API.
// Field names follow the external controller JSON exactly.
type Metadata struct {
	Network         string `json:"network"`
	Type            string `json:"type"` // inbound type, e.g. "HTTP Connect", "Socks5"
	SourceIP        string `json:"sourceIP"`
	SourcePort      string `json:"sourcePort"`
	DestinationIP   string `json:"destinationIP"`
	DestinationPort string `json:"destinationPort"`
	Host            string `json:"host"`
	SniffHost       string `json:"sniffHost,omitempty"`
	RemoteDestination string `json:"remoteDestination,omitempty"`
	DNSMode         string `json:"dnsMode,omitempty"`
	Process         string `json:"process,omitempty"`
	ProcessPath     string `json:"processPath,omitempty"`
}

// Connection is a single proxied connection.
type Connection struct {
	ID       string    `json:"id"`
	Metadata Metadata  `json:"metadata"`
	Upload   uint64    `json:"upload"`
	Download uint64    `json:"download"`
	Start    time.Time `json:"start"`
	Chains   []string  `json:"chains"`
	Rule     string    `json:"rule"`
	RulePayload string `json:"rulePayload,omitempty"`

	// IsActive is false for connections the core no longer reports but the
	// UI still retains. Not part of the wire format.
	IsActive bool `json:"-"`

	// Instantaneous rates in bytes/s, computed between snapshots.
	// Zero when no previous sample exists.
	UploadSpeed   uint64 `json:"-"`
	DownloadSpeed uint64 `json:"-"`
}

// DisplayHost resolves the destination text for display.
// Precedence: host > sniffHost > destinationIP > remoteDestination.
// Empty string when all fields are absent.
func (c *Connection) DisplayHost() string {
	md := &c.Metadata
	switch {
	case md.Host != "":
		return md.Host
	case md.SniffHost != "":
		return md.SniffHost
	case md.DestinationIP != "":
		return md.DestinationIP
	default:
		return md.RemoteDestination
	}
}

// ActorLabel returns the connection originator for display: the process
// name with a trailing ".exe" stripped, or the source IP when the core
// reported no process.
func (c *Connection) ActorLabel() string {
	if p := c.Metadata.Process; p != "" {
		return strings.TrimSuffix(p, ".exe")
	}
	return c.Metadata.SourceIP
}

// FirstChain returns the first proxy-chain hop, or "" for an empty chain.
func (c *Connection) FirstChain() string {
	if len(c.Chains) == 0 {
		return ""
	}
	return c.Chains[0]
}

// ChainString joins the full proxy chain for the detail view.
func (c *Connection) ChainString() string {
	return strings.Join(c.Chains, " » ")
}

// Snapshot is the controller's connection table at a point in time.
type Snapshot struct {
	DownloadTotal uint64       `json:"downloadTotal"`
	UploadTotal   uint64       `json:"uploadTotal"`
	Connections   []Connection `json:"connections"`

	Timestamp time.Time `json:"-"`
}

// Find returns the connection with the given ID, or nil.
func (s *Snapshot) Find(id string) *Connection {
	for i := range s.Connections {
		if s.Connections[i].ID == id {
			return &s.Connections[i]
		}
	}
	return nil
}

// ActiveCount returns the number of connections still reported live.
func (s *Snapshot) ActiveCount() int {
	n := 0
	for i := range s.Connections {
		if s.Connections[i].IsActive {
			n++
		}
	}
	return n
}

// SortByStart sorts connections newest first.
func (s *Snapshot) SortByStart() {
	sort.SliceStable(s.Connections, func(i, j int) bool {
		return s.Connections[i].Start.After(s.Connections[j].Start)
	})
}

// ComputeSpeeds fills UploadSpeed/DownloadSpeed on s by comparing counters
// against the previous snapshot. Connections without a previous sample keep
// zero rates.
func (s *Snapshot) ComputeSpeeds(prev *Snapshot) {
	if prev == nil {
		return
	}
	elapsed := s.Timestamp.Sub(prev.Timestamp).Seconds()
	if elapsed <= 0 {
		return
	}
	byID := make(map[string]*Connection, len(prev.Connections))
	for i := range prev.Connections {
		byID[prev.Connections[i].ID] = &prev.Connections[i]
	}
	for i := range s.Connections {
		c := &s.Connections[i]
		p, ok := byID[c.ID]
		if !ok {
			continue
		}
		if c.Upload >= p.Upload {
			c.UploadSpeed = uint64(float64(c.Upload-p.Upload) / elapsed)
		}
		if c.Download >= p.Download {
			c.DownloadSpeed = uint64(float64(c.Download-p.Download) / elapsed)
		}
	}
}

// MergeRetained appends connections present in prev but missing from s,
// flagged inactive, so closed connections linger in the table. At most
// keep closed connections are retained, oldest dropped first. Connections
// reported by the core are flagged active.
func (s *Snapshot) MergeRetained(prev *Snapshot, keep int) {
	for i := range s.Connections {
		s.Connections[i].IsActive = true
	}
	if prev == nil || keep <= 0 {
		return
	}
	current := make(map[string]struct{}, len(s.Connections))
	for i := range s.Connections {
		current[s.Connections[i].ID] = struct{}{}
	}
	var retained []Connection
	for i := range prev.Connections {
		c := prev.Connections[i]
		if _, live := current[c.ID]; live {
			continue
		}
		c.IsActive = false
		c.UploadSpeed = 0
		c.DownloadSpeed = 0
		retained = append(retained, c)
	}
	if len(retained) > keep {
		sort.SliceStable(retained, func(i, j int) bool {
			return retained[i].Start.After(retained[j].Start)
		})
		retained = retained[:keep]
	}
	s.Connections = append(s.Connections, retained...)
}
