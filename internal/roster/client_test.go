package roster

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"
)

func TestPlayersNoServer(t *testing.T) {
	_, err := NewA2SClient(0).Players(context.Background(), "")
	if !errors.Is(err, ErrNoServer) {
		t.Errorf("want ErrNoServer, got %v", err)
	}
}

// silentServer accepts UDP packets and never answers.
func silentServer(t *testing.T) string {
	t.Helper()
	conn, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Skipf("udp listen: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn.LocalAddr().String()
}

func TestPlayersTimeout(t *testing.T) {
	addr := silentServer(t)
	start := time.Now()
	_, err := NewA2SClient(200*time.Millisecond).Players(context.Background(), addr)
	if err == nil {
		t.Fatal("expected an error from a silent server")
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("query took %v, timeout not honoured", elapsed)
	}
}

func TestPlayersContextCancel(t *testing.T) {
	addr := silentServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewA2SClient(10*time.Second).Players(ctx, addr)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("want context.DeadlineExceeded, got %v", err)
	}
}
