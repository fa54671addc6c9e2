package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/juliend/proxymon/internal/api"
	"github.com/juliend/proxymon/internal/config"
	"github.com/juliend/proxymon/internal/model"
)

var (
	closeAllFlag bool
	closeYes     bool
)

var closeCmd = &cobra.Command{
	Use:   "close [filter]",
	Short: "Close connections through the controller",
	Long: `Close proxied connections matching a filter, or all of them.

Examples:
  proxymon close youtube
  proxymon close 192.168.1.50
  proxymon close --all --yes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runClose,
}

func init() {
	closeCmd.Flags().BoolVar(&closeAllFlag, "all", false, "Close every connection")
	closeCmd.Flags().BoolVarP(&closeYes, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(closeCmd)
}

func runClose(cmd *cobra.Command, args []string) error {
	if err := config.InitSettings(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: using default settings: %v\n", err)
	}

	var filter string
	if len(args) > 0 {
		filter = args[0]
	}
	if !closeAllFlag && filter == "" {
		return fmt.Errorf("a filter argument or --all is required")
	}

	base, secret := controllerConfig()
	client := api.New(base, secret)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snapshot, err := client.Connections(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch connections: %w", err)
	}

	var targets []model.Connection
	lowered := strings.ToLower(filter)
	for i := range snapshot.Connections {
		c := &snapshot.Connections[i]
		if closeAllFlag || connectionMatches(c, lowered) {
			targets = append(targets, *c)
		}
	}

	if len(targets) == 0 {
		fmt.Println("No connections match")
		return nil
	}

	fmt.Println("Connections to close:")
	for _, t := range targets {
		fmt.Printf("  %s  %s (%s)\n", t.ID, t.DisplayHost(), t.ActorLabel())
	}

	if !closeYes {
		fmt.Print("\nProceed? [y/N] ")
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		if answer != "y" && answer != "yes" {
			fmt.Println("Aborted")
			return nil
		}
	}

	if closeAllFlag {
		if err := client.CloseAll(ctx); err != nil {
			return fmt.Errorf("failed to close all connections: %w", err)
		}
		fmt.Printf("Closed %d connection(s)\n", len(targets))
		return nil
	}

	var closed, failed int
	for _, t := range targets {
		if err := client.CloseConnection(ctx, t.ID); err != nil {
			fmt.Printf("Failed to close %s (%s): %v\n", t.ID, t.DisplayHost(), err)
			failed++
		} else {
			fmt.Printf("Closed %s (%s)\n", t.ID, t.DisplayHost())
			closed++
		}
	}

	fmt.Printf("\nClosed: %d, Failed: %d\n", closed, failed)
	if failed > 0 {
		return fmt.Errorf("%d connection(s) could not be closed", failed)
	}
	return nil
}
