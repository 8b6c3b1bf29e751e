// Package roster queries a game server for the names of connected players.
package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rumblefrog/go-a2s"

	"github.com/pable/go-tf2-metrics/internal/model"
)

// DefaultTimeout bounds one roster query. The query is best effort and must
// not hold up a refresh cycle.
const DefaultTimeout = 3 * time.Second

// ErrNoServer is returned when no server address is known.
var ErrNoServer = errors.New("no server address")

// Querier lists the players connected to a server.
type Querier interface {
	Players(ctx context.Context, addr string) ([]model.PlayerName, error)
}

// A2SClient queries servers with the Source engine A2S_PLAYER request.
type A2SClient struct {
	timeout time.Duration
}

// NewA2SClient creates a client whose queries time out after timeout,
// DefaultTimeout when zero.
func NewA2SClient(timeout time.Duration) *A2SClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &A2SClient{timeout: timeout}
}

type queryResult struct {
	names []model.PlayerName
	err   error
}

// Players returns the non-empty player names reported by the server at addr.
// It returns when ctx is done even if the UDP exchange is still in flight.
func (c *A2SClient) Players(ctx context.Context, addr string) ([]model.PlayerName, error) {
	if addr == "" {
		return nil, ErrNoServer
	}

	done := make(chan queryResult, 1)
	go func() {
		names, err := c.query(addr)
		done <- queryResult{names: names, err: err}
	}()

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("query players %s: %w", addr, ctx.Err())
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("query players %s: %w", addr, r.err)
		}
		return r.names, nil
	}
}

func (c *A2SClient) query(addr string) ([]model.PlayerName, error) {
	client, err := a2s.NewClient(addr, a2s.TimeoutOption(c.timeout))
	if err != nil {
		return nil, fmt.Errorf("create a2s client: %w", err)
	}
	defer client.Close()

	info, err := client.QueryPlayer()
	if err != nil {
		return nil, err
	}
	names := make([]model.PlayerName, 0, len(info.Players))
	for _, p := range info.Players {
		// Players still connecting are listed without a name.
		if p.Name == "" {
			continue
		}
		names = append(names, model.PlayerName(p.Name))
	}
	return names, nil
}
