// Package devsim simulates a FINE-503 controller on the far end of a serial line.
//
// A Device is the host side byte stream: whatever the host writes is parsed as
// command lines and the replies become readable. Reads behave like a serial
// port with a read timeout, returning (0, nil) when nothing arrives within
// the poll interval.
package devsim

import (
	"bytes"
	"io"
	"sync"
	"time"

	"github.com/arloliu/go-fine503/serialline"
	"github.com/puzpuzpuz/xsync/v3"
)

const (
	ModelName = "FINE-503"
	Version   = "Ver.1.00"

	DefaultStepAmount = 10
	DefaultPoll       = 10 * time.Millisecond
)

// Device is an in-memory FINE-503.
type Device struct {
	mu     sync.Mutex
	in     []byte
	out    []byte
	notify chan struct{}
	closed bool
	poll   time.Duration

	received []string
	axes     [axisCount]axisState
	mode     int

	// overrides maps a command line to a canned reply.
	overrides *xsync.MapOf[string, string]
	// drops holds command lines left unanswered.
	drops *xsync.MapOf[string, struct{}]
	// delays maps a command line to the latency of its reply.
	delays *xsync.MapOf[string, time.Duration]
}

var _ io.ReadWriteCloser = (*Device)(nil)

// New creates a Device at its mechanical origin.
func New() *Device {
	d := &Device{
		notify:    make(chan struct{}, 1),
		poll:      DefaultPoll,
		overrides: xsync.NewMapOf[string, string](),
		drops:     xsync.NewMapOf[string, struct{}](),
		delays:    xsync.NewMapOf[string, time.Duration](),
	}
	for i := range d.axes {
		d.axes[i].stepAmount = DefaultStepAmount
	}

	return d
}

// Open lets a Device stand in for a serial driver, see serialline.WithOpenFunc.
func (d *Device) Open(_ *serialline.Config) (io.ReadWriteCloser, error) {
	return d, nil
}

// SetReply makes the device answer cmd with reply instead of executing it.
func (d *Device) SetReply(cmd string, reply string) {
	d.overrides.Store(cmd, reply)
}

// Drop makes the device swallow cmd without answering.
func (d *Device) Drop(cmd string) {
	d.drops.Store(cmd, struct{}{})
}

// Delay makes the device answer cmd only after latency has passed.
func (d *Device) Delay(cmd string, latency time.Duration) {
	d.delays.Store(cmd, latency)
}

// Received returns the command lines received so far.
func (d *Device) Received() []string {
	d.mu.Lock()
	defer d.mu.Unlock()

	return append([]string(nil), d.received...)
}

// Positions returns the coordinate of each channel.
func (d *Device) Positions() [axisCount]int {
	d.mu.Lock()
	defer d.mu.Unlock()

	var pos [axisCount]int
	for i, ax := range d.axes {
		pos[i] = ax.position
	}

	return pos
}

// Read returns pending reply bytes, or (0, nil) after the poll interval.
func (d *Device) Read(p []byte) (int, error) {
	timer := time.NewTimer(d.poll)
	defer timer.Stop()

	for {
		d.mu.Lock()
		if len(d.out) > 0 {
			n := copy(p, d.out)
			d.out = d.out[n:]
			d.mu.Unlock()

			return n, nil
		}
		if d.closed {
			d.mu.Unlock()
			return 0, io.ErrClosedPipe
		}
		d.mu.Unlock()

		select {
		case <-d.notify:
		case <-timer.C:
			return 0, nil
		}
	}
}

// Write feeds command bytes to the device. Every complete line is answered
// immediately unless a delay is set for it.
func (d *Device) Write(p []byte) (int, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return 0, io.ErrClosedPipe
	}

	d.in = append(d.in, p...)
	for {
		i := bytes.IndexByte(d.in, '\n')
		if i < 0 {
			break
		}
		line := string(bytes.TrimSuffix(d.in[:i], []byte{'\r'}))
		d.in = d.in[i+1:]

		d.received = append(d.received, line)
		if _, drop := d.drops.Load(line); drop {
			continue
		}

		reply, ok := d.overrides.Load(line)
		if !ok {
			reply = d.execute(line)
		}

		if latency, ok := d.delays.Load(line); ok {
			time.AfterFunc(latency, func() { d.deliver(reply) })
			continue
		}
		d.out = append(d.out, reply...)
		d.out = append(d.out, serialline.Terminator...)
	}
	d.signal()

	return len(p), nil
}

// Close closes the device; pending and later reads fail.
func (d *Device) Close() error {
	d.mu.Lock()
	d.closed = true
	d.mu.Unlock()
	d.signal()

	return nil
}

func (d *Device) deliver(reply string) {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.out = append(d.out, reply...)
	d.out = append(d.out, serialline.Terminator...)
	d.mu.Unlock()

	d.signal()
}

func (d *Device) signal() {
	select {
	case d.notify <- struct{}{}:
	default:
	}
}
