package mail

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// silentListener accepts connections and never writes a byte, like a
// server that stalls mid-handshake.
func silentListener(t *testing.T) net.Listener {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()
	return ln
}

func silentClient(t *testing.T, timeout time.Duration) *Client {
	t.Helper()

	ln := silentListener(t)
	host, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)

	return NewClient(Config{
		Host:        host,
		Port:        port,
		Username:    "poller",
		Password:    "secret",
		AuthTimeout: timeout,
	})
}

func TestFetchUnseen_StalledServerFailsWithinTimeout(t *testing.T) {
	c := silentClient(t, 200*time.Millisecond)

	start := time.Now()
	_, err := c.FetchUnseen(context.Background())

	assert.Error(t, err)
	// must come back in roughly one auth timeout, never hang the poll run
	assert.Less(t, time.Since(start), 3*time.Second)
}

func TestFetchUnseen_CancelledContext(t *testing.T) {
	c := silentClient(t, 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := c.FetchUnseen(ctx)

	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{Host: "imap.example.com", Port: "993"})

	assert.Equal(t, "INBOX", c.cfg.Folder)
	assert.Equal(t, defaultAuthTimeout, c.cfg.AuthTimeout)
}
