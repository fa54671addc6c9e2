package api

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/juliend/proxymon/internal/model"
)

// Stream subscribes to the controller's live connection feed over
// websocket. Snapshots are delivered on the returned channel until ctx is
// cancelled or the socket drops; the channel is closed on exit. Callers
// that need resilience fall back to polling via Client.Connections.
func Stream(ctx context.Context, base, secret string) (<-chan *model.Snapshot, error) {
	u, err := websocketURL(base, secret)
	if err != nil {
		return nil, err
	}

	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, resp, err := dialer.DialContext(ctx, u, http.Header{})
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		return nil, err
	}

	ch := make(chan *model.Snapshot)

	go func() {
		defer close(ch)
		defer func() { _ = conn.Close() }()

		// Unblock ReadJSON when the caller goes away.
		done := make(chan struct{})
		defer close(done)
		go func() {
			select {
			case <-ctx.Done():
				_ = conn.Close()
			case <-done:
			}
		}()

		for {
			var snap model.Snapshot
			if err := conn.ReadJSON(&snap); err != nil {
				return
			}
			snap.Timestamp = time.Now()
			select {
			case ch <- &snap:
			case <-ctx.Done():
				return
			}
		}
	}()

	return ch, nil
}

// websocketURL converts the controller base URL into the ws://
// /connections endpoint, carrying the secret as a query token the way the
// controller expects for websocket upgrades.
func websocketURL(base, secret string) (string, error) {
	u, err := url.Parse(strings.TrimRight(base, "/"))
	if err != nil {
		return "", err
	}
	switch u.Scheme {
	case "https":
		u.Scheme = "wss"
	default:
		u.Scheme = "ws"
	}
	u.Path = u.Path + "/connections"
	if secret != "" {
		q := u.Query()
		q.Set("token", secret)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}
