// Package favicon resolves a best-effort site icon for a connection's
// destination host. Probes are asynchronous and generation-tagged: a probe
// started for a host that is no longer current must never overwrite newer
// state, no matter when it completes.
package favicon

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/juliend/proxymon/internal/hostutil"
)

// State is the tri-state outcome of icon resolution for a host.
type State int

const (
	StateLoading State = iota
	StateResolved
	StateUnavailable
)

// String returns a human-readable name for the State.
func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateResolved:
		return "resolved"
	case StateUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Result is delivered once per started resolution.
type Result struct {
	Host  string
	URL   string // canonical favicon URL, set when State == StateResolved
	State State
	Gen   uint64 // generation token; stale results must not be committed
}

// Prober checks whether a favicon URL loads. Implementations return nil on
// a successful transfer and an error otherwise.
type Prober interface {
	Probe(ctx context.Context, url string) error
}

// httpProber fetches the URL and discards the body; only transfer
// success/failure is observed.
type httpProber struct {
	client *http.Client
}

func (p *httpProber) Probe(ctx context.Context, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("favicon probe returned %d", resp.StatusCode)
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64*1024))
	return nil
}

// Resolver issues generation-tagged favicon probes and caches outcomes by
// root domain. Safe for use from a single consumer; the cache is guarded
// for the probe goroutines.
type Resolver struct {
	mu     sync.Mutex
	gen    uint64
	prober Prober
	cache  map[string]Result // root domain → terminal result (gen unset)

	timeout time.Duration
}

// NewResolver creates a Resolver with the default HTTP prober.
func NewResolver() *Resolver {
	return &Resolver{
		prober:  &httpProber{client: &http.Client{Timeout: 5 * time.Second}},
		cache:   make(map[string]Result),
		timeout: 5 * time.Second,
	}
}

// NewResolverWithProber creates a Resolver with an injected prober (tests).
func NewResolverWithProber(p Prober) *Resolver {
	return &Resolver{
		prober:  p,
		cache:   make(map[string]Result),
		timeout: 5 * time.Second,
	}
}

// URLFor returns the canonical favicon URL for a host, or "" when the host
// yields no root domain.
func URLFor(host string) string {
	root := hostutil.ExtractRootDomain(host)
	if root == "" {
		return ""
	}
	return "https://" + root + "/favicon.ico"
}

// Start begins resolution for host and returns a channel that delivers
// exactly one Result. Starting a new resolution invalidates every earlier
// in-flight probe: their results carry an older generation and fail
// Commit. Hosts without a root domain resolve to Unavailable immediately,
// with no probe. Cached root domains also skip the probe.
func (r *Resolver) Start(host string) <-chan Result {
	r.mu.Lock()
	r.gen++
	gen := r.gen
	root := hostutil.ExtractRootDomain(host)
	var cached Result
	var hit bool
	if root != "" {
		cached, hit = r.cache[root]
	}
	r.mu.Unlock()

	ch := make(chan Result, 1)

	if root == "" {
		ch <- Result{Host: host, State: StateUnavailable, Gen: gen}
		close(ch)
		return ch
	}

	url := "https://" + root + "/favicon.ico"

	if hit {
		ch <- Result{Host: host, URL: cached.URL, State: cached.State, Gen: gen}
		close(ch)
		return ch
	}

	go func() {
		defer close(ch)

		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		defer cancel()

		res := Result{Host: host, Gen: gen}
		if err := r.prober.Probe(ctx, url); err != nil {
			res.State = StateUnavailable
		} else {
			res.State = StateResolved
			res.URL = url
		}

		// Cache the terminal outcome regardless of staleness; display
		// staleness is decided separately by Commit.
		r.mu.Lock()
		r.cache[root] = Result{URL: res.URL, State: res.State}
		r.mu.Unlock()

		ch <- res
	}()

	return ch
}

// Cached returns the terminal result previously recorded for host's root
// domain, for cheap synchronous lookups (e.g. row markers). The generation
// field of the returned result is zero; it must not be committed.
func (r *Resolver) Cached(host string) (Result, bool) {
	root := hostutil.ExtractRootDomain(host)
	if root == "" {
		return Result{}, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	res, ok := r.cache[root]
	return res, ok
}

// Stop invalidates all in-flight probes, for host teardown.
func (r *Resolver) Stop() {
	r.mu.Lock()
	r.gen++
	r.mu.Unlock()
}

// Commit reports whether res belongs to the current generation and may be
// applied to display state. Stale results are discarded, not errors.
func (r *Resolver) Commit(res Result) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return res.Gen == r.gen
}
