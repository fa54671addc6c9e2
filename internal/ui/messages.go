package ui

import (
	"time"

	"github.com/juliend/proxymon/internal/docker"
	"github.com/juliend/proxymon/internal/favicon"
	"github.com/juliend/proxymon/internal/model"
)

// TickMsg is sent on each refresh interval.
type TickMsg time.Time

// DataMsg contains a fresh connection snapshot from the controller.
type DataMsg struct {
	Snapshot *model.Snapshot
	Err      error
}

// FaviconMsg delivers a favicon resolution result for the inspected host.
type FaviconMsg favicon.Result

// ContainersMsg delivers the source-IP → container map.
type ContainersMsg struct {
	Containers map[string]*docker.ContainerInfo
	Err        error
}

// PortOwnersMsg delivers the local source-port → process-name map.
type PortOwnersMsg struct {
	Owners map[uint32]string
	Err    error
}

// CloseResultMsg reports the outcome of a close request.
type CloseResultMsg struct {
	ID  string // empty for close-all
	Err error
}

// VersionMsg delivers the controller core version.
type VersionMsg struct {
	Version string
	Err     error
}
