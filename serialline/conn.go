package serialline

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/arloliu/go-fine503/logger"
)

// Terminator ends every line in both directions.
const Terminator = "\r\n"

const readChunkSize = 256

// discardPolls bounds how many read polls Discard spends draining the port.
const discardPolls = 10

var (
	// ErrConfigNil indicates a nil Config.
	ErrConfigNil = errors.New("serialline: config is nil")

	// ErrOpen indicates the serial port could not be opened. It wraps the driver error.
	ErrOpen = errors.New("serialline: open port failed")

	// ErrTimeout indicates no complete line arrived, or a write did not finish, in time.
	ErrTimeout = errors.New("serialline: timeout")

	// ErrIO indicates a read or write failure of the port. It wraps the driver error.
	ErrIO = errors.New("serialline: i/o error")

	// ErrClosed indicates the line is closed.
	ErrClosed = errors.New("serialline: line closed")

	// ErrInvalidLine indicates an outgoing line that is not 7-bit ASCII or
	// contains a CR or LF.
	ErrInvalidLine = errors.New("serialline: line must be 7-bit ASCII without CR or LF")
)

type readDeadliner interface {
	SetReadDeadline(t time.Time) error
}

type writeDeadliner interface {
	SetWriteDeadline(t time.Time) error
}

// inputResetter is implemented by ports able to drop the driver's input buffer.
type inputResetter interface {
	ResetInputBuffer() error
}

// Conn is a CR+LF framed line connection over a serial port.
//
// Conn is NOT goroutine-safe for WriteLine and ReadLine. The caller must keep
// at most one request in flight, consistent with the half-duplex link. Close
// may be called concurrently to abort a pending ReadLine.
type Conn struct {
	cfg    *Config
	port   io.ReadWriteCloser
	logger logger.Logger

	// pending holds bytes read past the last returned line.
	pending []byte
	chunk   []byte

	closed atomic.Bool
}

// Open opens the port described by cfg with the configured driver.
func Open(cfg *Config) (*Conn, error) {
	if cfg == nil {
		return nil, ErrConfigNil
	}

	open := cfg.openFunc
	if open == nil {
		open = driverOpeners[cfg.driver]
	}

	port, err := open(cfg)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrOpen, cfg.portName, err)
	}

	cfg.logger.Info("serialline: port opened",
		"port", cfg.portName, "baudRate", cfg.baudRate, "driver", cfg.driver.String())

	return NewConn(port, cfg), nil
}

// NewConn creates a Conn on an already opened port.
func NewConn(port io.ReadWriteCloser, cfg *Config) *Conn {
	return &Conn{
		cfg:    cfg,
		port:   port,
		logger: cfg.logger.With("port", cfg.portName),
		chunk:  make([]byte, readChunkSize),
	}
}

// Config returns the configuration of the connection.
func (c *Conn) Config() *Config { return c.cfg }

// IsClosed reports whether Close was called.
func (c *Conn) IsClosed() bool { return c.closed.Load() }

// WriteLine writes text followed by the CR+LF terminator.
//
// A write not finished within the write timeout fails with ErrTimeout. On
// ports without write deadlines, such as the go.bug.st driver, the port is
// closed to give up the blocked write and the Conn is unusable afterwards.
func (c *Conn) WriteLine(text string) error {
	if c.closed.Load() {
		return ErrClosed
	}
	if !isLineASCII(text) {
		return fmt.Errorf("%w: %q", ErrInvalidLine, text)
	}

	if err := c.write([]byte(text + Terminator)); err != nil {
		if isTimeout(err) {
			return fmt.Errorf("%w: write %q", ErrTimeout, text)
		}

		return c.ioErr("write", err)
	}

	c.trace("tx", text)

	return nil
}

func (c *Conn) write(data []byte) error {
	if d, ok := c.port.(writeDeadliner); ok {
		if err := d.SetWriteDeadline(time.Now().Add(c.cfg.writeTimeout)); err != nil {
			return err
		}

		return c.writeAll(data)
	}

	done := make(chan error, 1)
	go func() { done <- c.writeAll(data) }()

	timer := time.NewTimer(c.cfg.writeTimeout)
	defer timer.Stop()

	select {
	case err := <-done:
		return err
	case <-timer.C:
		c.logger.Error("serialline: write blocked, closing port", "writeTimeout", c.cfg.writeTimeout)
		_ = c.Close()

		return os.ErrDeadlineExceeded
	}
}

// ReadLine returns the next line without its terminator, waiting at most
// timeout for it to complete.
//
// A bare LF is accepted as terminator; a trailing CR is always removed.
func (c *Conn) ReadLine(timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)

	for {
		if line, ok := c.nextLine(); ok {
			c.trace("rx", line)
			return line, nil
		}

		if c.closed.Load() {
			return "", ErrClosed
		}

		remaining := time.Until(deadline)
		if remaining <= 0 {
			return "", fmt.Errorf("%w: no reply within %v", ErrTimeout, timeout)
		}

		if d, ok := c.port.(readDeadliner); ok {
			if err := d.SetReadDeadline(time.Now().Add(min(remaining, c.cfg.readPoll))); err != nil {
				return "", c.ioErr("set read deadline", err)
			}
		}

		n, err := c.port.Read(c.chunk)
		c.pending = append(c.pending, c.chunk[:n]...)
		if err != nil && !isTimeout(err) {
			return "", c.ioErr("read", err)
		}
	}
}

// Discard drops received bytes not yet returned by ReadLine, such as a reply
// that arrived after its timeout. Besides the bytes already buffered by the
// Conn it resets the driver's input buffer when the port supports it and reads
// off whatever is still arriving, until a read poll yields nothing.
//
// It returns the number of bytes read and dropped.
func (c *Conn) Discard() (int, error) {
	if c.closed.Load() {
		return 0, ErrClosed
	}

	n := len(c.pending)
	c.pending = c.pending[:0]

	if r, ok := c.port.(inputResetter); ok {
		if err := r.ResetInputBuffer(); err != nil {
			return n, c.ioErr("reset input buffer", err)
		}
	}

	for i := 0; i < discardPolls; i++ {
		if d, ok := c.port.(readDeadliner); ok {
			if err := d.SetReadDeadline(time.Now().Add(c.cfg.readPoll)); err != nil {
				return n, c.ioErr("set read deadline", err)
			}
		}

		m, err := c.port.Read(c.chunk)
		n += m
		if err != nil && !isTimeout(err) {
			return n, c.ioErr("read", err)
		}
		if m == 0 {
			break
		}
	}

	return n, nil
}

// Close closes the port. It is safe to call Close more than once and
// concurrently with ReadLine, which then returns ErrClosed.
func (c *Conn) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	c.logger.Debug("serialline: closing port")

	return c.port.Close()
}

func (c *Conn) nextLine() (string, bool) {
	i := bytes.IndexByte(c.pending, '\n')
	if i < 0 {
		return "", false
	}

	line := string(bytes.TrimSuffix(c.pending[:i], []byte{'\r'}))
	c.pending = append(c.pending[:0], c.pending[i+1:]...)

	return line, true
}

// writeAll writes all bytes in data to the port.
func (c *Conn) writeAll(data []byte) error {
	for written := 0; written < len(data); {
		n, err := c.port.Write(data[written:])
		written += n

		if err != nil {
			return err
		}
		if n == 0 {
			return io.ErrShortWrite
		}
	}

	return nil
}

// ioErr wraps a port error in ErrIO, or reports ErrClosed when the failure
// was caused by Close.
func (c *Conn) ioErr(op string, err error) error {
	if c.closed.Load() {
		return ErrClosed
	}

	return fmt.Errorf("%w: %s: %w", ErrIO, op, err)
}

func (c *Conn) trace(dir string, line string) {
	if c.cfg.echo {
		c.logger.Info("serialline: "+dir, "line", line)
		return
	}
	c.logger.Debug("serialline: "+dir, "line", line)
}

func isLineASCII(s string) bool {
	if strings.ContainsAny(s, "\r\n") {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}

	return true
}

func isTimeout(err error) bool {
	if errors.Is(err, os.ErrDeadlineExceeded) {
		return true
	}

	var netErr net.Error

	return errors.As(err, &netErr) && netErr.Timeout()
}
