// Package process enriches connections originating on this machine with
// the owning process name when the proxy core reports none.
package process

import (
	"context"
	"strconv"
	"sync"

	gnet "github.com/shirou/gopsutil/v3/net"
	gproc "github.com/shirou/gopsutil/v3/process"

	"github.com/juliend/proxymon/internal/model"
)

// Enricher maps local source ports to process names.
type Enricher interface {
	// PortOwners returns a source-port → process-name map for this host.
	PortOwners(ctx context.Context) (map[uint32]string, error)
}

// localEnricher implements Enricher via gopsutil.
type localEnricher struct {
	mu        sync.RWMutex
	nameCache map[int32]string
}

// NewEnricher creates an Enricher for the local machine.
func NewEnricher() Enricher {
	return &localEnricher{nameCache: make(map[int32]string)}
}

func (e *localEnricher) PortOwners(ctx context.Context) (map[uint32]string, error) {
	connections, err := gnet.ConnectionsWithContext(ctx, "all")
	if err != nil {
		return nil, err
	}

	owners := make(map[uint32]string)
	for _, conn := range connections {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if conn.Pid == 0 || conn.Laddr.Port == 0 {
			continue
		}
		name := e.processName(ctx, conn.Pid)
		if name == "" {
			continue
		}
		owners[conn.Laddr.Port] = name
	}
	return owners, nil
}

func (e *localEnricher) processName(ctx context.Context, pid int32) string {
	e.mu.RLock()
	if name, ok := e.nameCache[pid]; ok {
		e.mu.RUnlock()
		return name
	}
	e.mu.RUnlock()

	proc, err := gproc.NewProcessWithContext(ctx, pid)
	if err != nil {
		return ""
	}
	name, err := proc.NameWithContext(ctx)
	if err != nil {
		return ""
	}

	e.mu.Lock()
	e.nameCache[pid] = name
	e.mu.Unlock()
	return name
}

// Apply fills Metadata.Process on connections whose source is a local
// address and whose process the core left empty. Best-effort: lookup
// misses leave the connection untouched.
func Apply(snap *model.Snapshot, owners map[uint32]string) {
	if snap == nil || len(owners) == 0 {
		return
	}
	for i := range snap.Connections {
		c := &snap.Connections[i]
		if c.Metadata.Process != "" || !isLocalSource(c.Metadata.SourceIP) {
			continue
		}
		port, err := strconv.ParseUint(c.Metadata.SourcePort, 10, 32)
		if err != nil {
			continue
		}
		if name, ok := owners[uint32(port)]; ok {
			c.Metadata.Process = name
		}
	}
}

// isLocalSource reports whether the source IP is a loopback address, the
// only case where this machine's port table is authoritative.
func isLocalSource(ip string) bool {
	return ip == "127.0.0.1" || ip == "::1"
}
