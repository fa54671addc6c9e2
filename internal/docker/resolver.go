// Package docker resolves connection source IPs to container names, for
// setups where the proxy core acts as the gateway of a compose network.
package docker

import (
	"context"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/client"
)

// ContainerInfo identifies the container behind a source IP.
type ContainerInfo struct {
	Name  string // container name (e.g. "media-stack-jellyfin")
	Image string // image tag (e.g. "jellyfin:latest")
	ID    string // short container ID
}

// Resolver maps container network IPs to container info.
type Resolver interface {
	Resolve(ctx context.Context) (map[string]*ContainerInfo, error)
}

// dockerResolver implements Resolver using the Docker Engine API.
type dockerResolver struct {
	newClient func() (dockerAPI, error)
}

// dockerAPI is the subset of the Docker client we need (for testing).
type dockerAPI interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
	Close() error
}

// NewResolver creates a Resolver that talks to the Docker daemon.
func NewResolver() Resolver {
	return &dockerResolver{
		newClient: func() (dockerAPI, error) {
			return client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
		},
	}
}

// Resolve queries Docker for running containers and builds an IP →
// container map across all attached networks. Returns an empty map (not an
// error) when Docker is unavailable.
func (r *dockerResolver) Resolve(ctx context.Context) (map[string]*ContainerInfo, error) {
	cli, err := r.newClient()
	if err != nil {
		return map[string]*ContainerInfo{}, nil // graceful degradation
	}
	defer func() { _ = cli.Close() }()

	containers, err := cli.ContainerList(ctx, container.ListOptions{})
	if err != nil {
		// Context cancellation is a real error
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return map[string]*ContainerInfo{}, nil // Docker unavailable
	}

	result := make(map[string]*ContainerInfo)
	for _, c := range containers {
		ci := &ContainerInfo{
			Name:  cleanContainerName(c.Names),
			Image: c.Image,
			ID:    shortID(c.ID),
		}
		if c.NetworkSettings == nil {
			continue
		}
		for _, ep := range c.NetworkSettings.Networks {
			if ep == nil || ep.IPAddress == "" {
				continue
			}
			result[ep.IPAddress] = ci
		}
	}
	return result, nil
}

// cleanContainerName strips the leading "/" from Docker container names.
func cleanContainerName(names []string) string {
	if len(names) == 0 {
		return ""
	}
	return strings.TrimPrefix(names[0], "/")
}

// shortID returns the first 12 chars of a container ID.
func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
