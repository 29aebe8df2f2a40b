package serialline

import (
	"errors"
	"fmt"
	"io"
	"strings"

	tarm "github.com/tarm/serial"
	bugst "go.bug.st/serial"
)

// Driver selects the serial port implementation.
type Driver int

const (
	DriverBugST Driver = iota
	DriverTarm
)

// OpenFunc opens the byte stream a Conn is built on.
//
// Reads on the returned stream should not block much longer than
// cfg.ReadPoll(); returning (0, nil) when nothing arrived is fine.
type OpenFunc func(cfg *Config) (io.ReadWriteCloser, error)

var driverOpeners = map[Driver]OpenFunc{
	DriverBugST: openBugST,
	DriverTarm:  openTarm,
}

// IsValid reports whether d is a known driver.
func (d Driver) IsValid() bool {
	_, ok := driverOpeners[d]
	return ok
}

func (d Driver) String() string {
	switch d {
	case DriverBugST:
		return "bugst"
	case DriverTarm:
		return "tarm"
	default:
		return fmt.Sprintf("Driver(%d)", int(d))
	}
}

// ParseDriver parses a driver name as returned by Driver.String.
func ParseDriver(name string) (Driver, error) {
	switch strings.ToLower(name) {
	case "", "bugst":
		return DriverBugST, nil
	case "tarm":
		return DriverTarm, nil
	default:
		return 0, fmt.Errorf("serialline: unknown driver %q", name)
	}
}

func openBugST(cfg *Config) (io.ReadWriteCloser, error) {
	mode := &bugst.Mode{
		BaudRate: cfg.baudRate,
		DataBits: 8,
		Parity:   bugst.NoParity,
		StopBits: bugst.OneStopBit,
	}

	port, err := bugst.Open(cfg.portName, mode)
	if err != nil {
		return nil, err
	}

	if err := port.SetReadTimeout(cfg.readPoll); err != nil {
		_ = port.Close()
		return nil, err
	}

	// the controller expects RTS/CTS handshaking
	if err := port.SetRTS(true); err != nil {
		cfg.logger.Warn("serialline: failed to assert RTS", "port", cfg.portName, "error", err)
	}

	if err := port.ResetInputBuffer(); err != nil {
		cfg.logger.Warn("serialline: failed to reset input buffer", "port", cfg.portName, "error", err)
	}

	return port, nil
}

// tarmPort adapts tarm ports, which report an expired read timeout as io.EOF.
type tarmPort struct {
	*tarm.Port
}

func (p tarmPort) Read(b []byte) (int, error) {
	n, err := p.Port.Read(b)
	if n == 0 && errors.Is(err, io.EOF) {
		return 0, nil
	}

	return n, err
}

// ResetInputBuffer drops the received bytes held by the driver.
func (p tarmPort) ResetInputBuffer() error {
	return p.Flush()
}

func openTarm(cfg *Config) (io.ReadWriteCloser, error) {
	port, err := tarm.OpenPort(&tarm.Config{
		Name:        cfg.portName,
		Baud:        cfg.baudRate,
		ReadTimeout: cfg.readPoll,
		Size:        8,
		Parity:      tarm.ParityNone,
		StopBits:    tarm.Stop1,
	})
	if err != nil {
		return nil, err
	}

	if err := port.Flush(); err != nil {
		cfg.logger.Warn("serialline: failed to flush port", "port", cfg.portName, "error", err)
	}

	return tarmPort{Port: port}, nil
}
