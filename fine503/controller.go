package fine503

import (
	"errors"
	"sync/atomic"
	"time"

	"github.com/arloliu/go-fine503/logger"
	"github.com/arloliu/go-fine503/protocol"
	"github.com/arloliu/go-fine503/serialline"
)

var (
	// ErrControllerClosed indicates an operation on a closed Controller.
	ErrControllerClosed = errors.New("fine503: controller closed")

	// ErrTransportNil indicates a nil LineTransport.
	ErrTransportNil = errors.New("fine503: line transport is nil")
)

// LineTransport is the line-oriented link to the device. *serialline.Conn
// implements it.
type LineTransport interface {
	// WriteLine writes one command line; the transport adds the terminator.
	WriteLine(text string) error
	// ReadLine reads one reply line without its terminator, waiting at most timeout.
	ReadLine(timeout time.Duration) (string, error)
	// Close releases the link and aborts a pending ReadLine.
	Close() error
}

// discarder is implemented by transports able to drop unread input, like *serialline.Conn.
type discarder interface {
	Discard() (int, error)
}

var _ LineTransport = (*serialline.Conn)(nil)

// Controller drives a FINE-503 over a LineTransport.
//
// It is safe for concurrent use; operations are executed one at a time.
type Controller struct {
	line   LineTransport
	logger logger.Logger
	opts   *options

	// sem is a one-slot semaphore guarding the line.
	sem    chan struct{}
	closed atomic.Bool
	// stale is set after a timeout: a late reply may still be buffered.
	stale atomic.Bool

	metrics Metrics
}

// Open opens the serial port portName at baudRate and returns a Controller
// owning it. baudRate must be one of serialline.BaudRates.
func Open(portName string, baudRate int, opts ...Option) (*Controller, error) {
	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	lineOpts := append([]serialline.Option{serialline.WithLogger(o.logger)}, o.lineOpts...)
	cfg, err := serialline.NewConfig(portName, baudRate, lineOpts...)
	if err != nil {
		return nil, err
	}

	conn, err := serialline.Open(cfg)
	if err != nil {
		return nil, err
	}

	return newController(conn, o), nil
}

// New returns a Controller owning line.
func New(line LineTransport, opts ...Option) (*Controller, error) {
	if line == nil {
		return nil, ErrTransportNil
	}

	o, err := newOptions(opts)
	if err != nil {
		return nil, err
	}

	return newController(line, o), nil
}

func newController(line LineTransport, o *options) *Controller {
	return &Controller{
		line:   line,
		logger: o.logger,
		opts:   o,
		sem:    make(chan struct{}, 1),
	}
}

// IsOpen reports whether the controller has not been closed.
func (c *Controller) IsOpen() bool {
	return !c.closed.Load()
}

// Metrics returns the counters of the controller.
func (c *Controller) Metrics() *Metrics {
	return &c.metrics
}

// Close releases the serial line.
//
// Operations started after Close fail with ErrControllerClosed. An operation
// in flight is given the close timeout to finish; after that the line is
// closed under it and it fails with serialline.ErrClosed. Close is idempotent.
func (c *Controller) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return nil
	}

	timer := time.NewTimer(c.opts.closeTimeout)
	defer timer.Stop()

	select {
	case c.sem <- struct{}{}:
		defer c.release()
	case <-timer.C:
		c.logger.Warn("fine503: operation still in flight, closing line", "closeTimeout", c.opts.closeTimeout)
	}

	if err := c.line.Close(); err != nil {
		c.logger.Error("fine503: close line failed", "error", err)
		return err
	}

	c.logger.Debug("fine503: controller closed")

	return nil
}

func (c *Controller) acquire() error {
	if c.closed.Load() {
		return ErrControllerClosed
	}

	c.sem <- struct{}{}

	if c.closed.Load() {
		c.release()
		return ErrControllerClosed
	}

	return nil
}

func (c *Controller) release() {
	<-c.sem
}

// exchange writes cmd and returns the reply line.
func (c *Controller) exchange(cmd string) (string, error) {
	if err := c.acquire(); err != nil {
		return "", err
	}
	defer c.release()

	if c.stale.Swap(false) {
		if err := c.discardLate(); err != nil {
			c.transportFailed(cmd, err)
			return "", err
		}
	}

	if err := c.line.WriteLine(cmd); err != nil {
		c.transportFailed(cmd, err)
		return "", err
	}
	c.metrics.incCommandCount()

	reply, err := c.line.ReadLine(c.opts.replyTimeout)
	if err != nil {
		c.transportFailed(cmd, err)
		return "", err
	}
	c.metrics.incReplyCount()

	return reply, nil
}

// discardLate drops a reply that arrived after its command timed out, so it
// is not taken as the reply to the next command.
func (c *Controller) discardLate() error {
	d, ok := c.line.(discarder)
	if !ok {
		return nil
	}

	n, err := d.Discard()
	if n > 0 {
		c.logger.Debug("fine503: discarded late reply bytes", "bytes", n)
	}

	return err
}

func (c *Controller) transportFailed(cmd string, err error) {
	if errors.Is(err, serialline.ErrTimeout) {
		c.stale.Store(true)
		c.metrics.incTimeoutCount()
	} else {
		c.metrics.incTransportErrCount()
	}
	c.logger.Error("fine503: command failed", "command", cmd, "error", err)
}

func (c *Controller) invalid(err error) error {
	c.metrics.incValidationErrCount()
	return err
}

func (c *Controller) undecodable(cmd string, reply string, err error) error {
	c.metrics.incDecodeErrCount()
	c.logger.Warn("fine503: undecodable reply", "command", cmd, "reply", reply, "error", err)

	return err
}

// command runs a command whose reply is an acknowledgement.
func (c *Controller) command(cmd string) (string, error) {
	reply, err := c.exchange(cmd)
	if err != nil {
		return "", err
	}

	return protocol.DecodeText(reply), nil
}

// queryInts runs an axis addressed query answered with one integer per channel.
func (c *Controller) queryInts(
	axis protocol.Axis,
	encode func(protocol.Axis) (string, error),
	decode func(protocol.Axis, string) ([]int, error),
) ([]int, error) {
	cmd, err := encode(axis)
	if err != nil {
		return nil, c.invalid(err)
	}

	reply, err := c.exchange(cmd)
	if err != nil {
		return nil, err
	}

	values, err := decode(axis, reply)
	if err != nil {
		return nil, c.undecodable(cmd, reply, err)
	}

	return values, nil
}
