package serialline

import (
	"bufio"
	"net"
	"testing"
	"time"
)

const testPortName = "/dev/ttyTEST0"

// newTestConfig creates a Config with a short read poll suitable for tests.
func newTestConfig(t *testing.T, opts ...Option) *Config {
	t.Helper()

	defaults := []Option{
		WithReadPoll(10 * time.Millisecond),
		WithWriteTimeout(500 * time.Millisecond),
	}

	cfg, err := NewConfig(testPortName, DefaultBaudRate, append(defaults, opts...)...)
	if err != nil {
		t.Fatalf("newTestConfig: %v", err)
	}

	return cfg
}

// newTestConn creates a Conn backed by the local end of net.Pipe().
// Returns the connection and the remote end acting as the controller.
func newTestConn(t *testing.T, opts ...Option) (*Conn, net.Conn) {
	t.Helper()

	local, remote := net.Pipe()
	t.Cleanup(func() {
		_ = local.Close()
		_ = remote.Close()
	})

	return NewConn(local, newTestConfig(t, opts...)), remote
}

func mustWrite(t *testing.T, c net.Conn, s string) {
	t.Helper()

	if _, err := c.Write([]byte(s)); err != nil {
		t.Errorf("remote write %q: %v", s, err)
	}
}

func readRemoteLine(t *testing.T, r *bufio.Reader) string {
	t.Helper()

	line, err := r.ReadString('\n')
	if err != nil {
		t.Errorf("remote read: %v", err)
	}

	return line
}
