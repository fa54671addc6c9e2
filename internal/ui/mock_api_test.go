package ui

import (
	"context"

	"github.com/juliend/proxymon/internal/docker"
	"github.com/juliend/proxymon/internal/model"
)

// mockClient is a test double for api.Client.
type mockClient struct {
	snapshot  *model.Snapshot
	err       error
	closedIDs []string
	closedAll bool
}

func (m *mockClient) Connections(ctx context.Context) (*model.Snapshot, error) {
	return m.snapshot, m.err
}

func (m *mockClient) CloseConnection(ctx context.Context, id string) error {
	m.closedIDs = append(m.closedIDs, id)
	return nil
}

func (m *mockClient) CloseAll(ctx context.Context) error {
	m.closedAll = true
	return nil
}

func (m *mockClient) Version(ctx context.Context) (string, error) {
	return "1.19.2", nil
}

// mockDockerResolver is a test double for docker.Resolver.
type mockDockerResolver struct {
	containers map[string]*docker.ContainerInfo
}

func (m *mockDockerResolver) Resolve(ctx context.Context) (map[string]*docker.ContainerInfo, error) {
	return m.containers, nil
}
