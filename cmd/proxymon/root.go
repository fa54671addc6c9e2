package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/juliend/proxymon/internal/api"
	"github.com/juliend/proxymon/internal/config"
	"github.com/juliend/proxymon/internal/model"
	"github.com/juliend/proxymon/internal/output"
	"github.com/juliend/proxymon/internal/ui"
)

var (
	jsonOutput    bool
	followStream  bool
	controllerURL string
	apiSecret     string
)

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (for scripting/agent consumption)")
	rootCmd.PersistentFlags().BoolVar(&followStream, "follow", false, "Stream live snapshots over websocket (implies --json)")
	rootCmd.PersistentFlags().StringVar(&controllerURL, "controller", "", "External controller URL (overrides settings)")
	rootCmd.PersistentFlags().StringVar(&apiSecret, "secret", "", "Controller API secret (overrides settings)")
}

var rootCmd = &cobra.Command{
	Use:   "proxymon [filter]",
	Short: "Proxy connection monitor - view and manage proxied connections",
	Long: `proxymon is a TUI application for monitoring the connection table of a
Clash-compatible proxy core through its external controller API.

Optionally pass a filter to match hosts, actors, chains or source IPs:
  proxymon youtube          # TUI filtered to matching connections
  proxymon youtube --json   # JSON output filtered the same way
  proxymon --follow         # stream snapshots as JSON lines`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.InitSettings(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: using default settings: %v\n", err)
		}
		if err := config.InitTheme(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: using default theme: %v\n", err)
		}

		base, secret := controllerConfig()
		client := api.New(base, secret)

		var filter string
		if len(args) > 0 {
			filter = args[0]
		}

		if followStream {
			return runFollowMode(os.Stdout, base, secret, filter)
		}

		// JSON mode: explicit flag or non-TTY stdout
		if jsonOutput || !term.IsTerminal(int(os.Stdout.Fd())) {
			return runJSONMode(os.Stdout, client, filter)
		}

		m := ui.NewModel(client).WithRetainClosed(config.CurrentSettings.RetainClosed)
		if filter != "" {
			m = m.WithFilter(filter)
		}
		p := tea.NewProgram(m, tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to run UI: %w", err)
		}
		return nil
	},
}

// controllerConfig resolves the controller endpoint: flags win over the
// settings file.
func controllerConfig() (base, secret string) {
	base = config.CurrentSettings.ControllerURL
	secret = config.CurrentSettings.Secret
	if controllerURL != "" {
		base = controllerURL
	}
	if apiSecret != "" {
		secret = apiSecret
	}
	return base, secret
}

func runJSONMode(w io.Writer, client api.Client, filter string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot, err := client.Connections(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch connections: %w", err)
	}
	for i := range snapshot.Connections {
		snapshot.Connections[i].IsActive = true
	}

	if filter != "" {
		snapshot = filterSnapshot(snapshot, filter)
	}

	return output.RenderJSON(w, snapshot)
}

// runFollowMode subscribes to the controller's websocket feed and emits one
// JSON document per snapshot until the stream drops or is interrupted.
func runFollowMode(w io.Writer, base, secret, filter string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := api.Stream(ctx, base, secret)
	if err != nil {
		return fmt.Errorf("failed to open stream: %w", err)
	}

	for snapshot := range ch {
		for i := range snapshot.Connections {
			snapshot.Connections[i].IsActive = true
		}
		if filter != "" {
			snapshot = filterSnapshot(snapshot, filter)
		}
		if err := output.RenderJSON(w, snapshot); err != nil {
			return err
		}
	}
	return nil
}

// filterSnapshot keeps connections whose host, actor, chain hops or source
// IP contain the filter, case-insensitively.
func filterSnapshot(snapshot *model.Snapshot, filter string) *model.Snapshot {
	filtered := &model.Snapshot{
		DownloadTotal: snapshot.DownloadTotal,
		UploadTotal:   snapshot.UploadTotal,
		Connections:   make([]model.Connection, 0),
		Timestamp:     snapshot.Timestamp,
	}

	f := strings.ToLower(filter)
	for i := range snapshot.Connections {
		c := &snapshot.Connections[i]
		if connectionMatches(c, f) {
			filtered.Connections = append(filtered.Connections, *c)
		}
	}
	return filtered
}

func connectionMatches(c *model.Connection, lowered string) bool {
	if strings.Contains(strings.ToLower(c.DisplayHost()), lowered) {
		return true
	}
	if strings.Contains(strings.ToLower(c.ActorLabel()), lowered) {
		return true
	}
	for _, hop := range c.Chains {
		if strings.Contains(strings.ToLower(hop), lowered) {
			return true
		}
	}
	return strings.Contains(c.Metadata.SourceIP, lowered)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
