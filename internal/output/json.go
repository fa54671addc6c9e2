package output

import (
	"encoding/json"
	"io"
	"time"

	"github.com/juliend/proxymon/internal/model"
)

// JSONConnection represents one connection in JSON output.
type JSONConnection struct {
	ID       string    `json:"id"`
	Active   bool      `json:"active"`
	Actor    string    `json:"actor"`
	Host     string    `json:"host"`
	Network  string    `json:"network"`
	Type     string    `json:"type"`
	Chains   []string  `json:"chains"`
	Rule     string    `json:"rule,omitempty"`
	Upload   uint64    `json:"upload"`
	Download uint64    `json:"download"`
	Start    time.Time `json:"start"`
}

// JSONOutput is the root JSON output structure.
type JSONOutput struct {
	Timestamp     time.Time        `json:"timestamp"`
	UploadTotal   uint64           `json:"upload_total"`
	DownloadTotal uint64           `json:"download_total"`
	Connections   []JSONConnection `json:"connections"`
}

// RenderJSON writes the connection snapshot as JSON to the writer.
func RenderJSON(w io.Writer, snap *model.Snapshot) error {
	out := JSONOutput{
		Timestamp:     snap.Timestamp,
		UploadTotal:   snap.UploadTotal,
		DownloadTotal: snap.DownloadTotal,
		Connections:   make([]JSONConnection, 0, len(snap.Connections)),
	}

	for i := range snap.Connections {
		c := &snap.Connections[i]
		out.Connections = append(out.Connections, JSONConnection{
			ID:       c.ID,
			Active:   c.IsActive,
			Actor:    c.ActorLabel(),
			Host:     c.DisplayHost(),
			Network:  c.Metadata.Network,
			Type:     c.Metadata.Type,
			Chains:   c.Chains,
			Rule:     c.Rule,
			Upload:   c.Upload,
			Download: c.Download,
			Start:    c.Start,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
