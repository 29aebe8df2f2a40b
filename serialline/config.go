package serialline

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/arloliu/go-fine503/logger"
)

// Baud rates supported by the controller's memory switch.
var BaudRates = []int{4800, 9600, 19200, 38400}

const (
	DefaultBaudRate     = 38400
	DefaultReadPoll     = 50 * time.Millisecond
	DefaultWriteTimeout = 3 * time.Second
)

const (
	MinReadPoll = 1 * time.Millisecond
	MaxReadPoll = 1 * time.Second
)

var (
	// ErrEmptyPortName indicates an empty serial port name.
	ErrEmptyPortName = errors.New("serialline: port name must not be empty")

	// ErrInvalidBaudRate indicates a baud rate the controller does not support.
	ErrInvalidBaudRate = errors.New("serialline: baud rate must be 4800, 9600, 19200 or 38400")
)

// Config holds the configuration of a serial line.
type Config struct {
	portName string
	baudRate int

	driver   Driver
	openFunc OpenFunc

	readPoll     time.Duration
	writeTimeout time.Duration

	// echo logs every line written and read at info level instead of debug.
	echo bool

	logger logger.Logger
}

// NewConfig creates a serial line configuration.
//
// portName is the OS name of the port, e.g. "/dev/ttyUSB0" or "COM3".
// baudRate must be one of BaudRates and match the controller's memory switch.
func NewConfig(portName string, baudRate int, opts ...Option) (*Config, error) {
	if portName == "" {
		return nil, ErrEmptyPortName
	}
	if !slices.Contains(BaudRates, baudRate) {
		return nil, fmt.Errorf("%w, got %d", ErrInvalidBaudRate, baudRate)
	}

	cfg := &Config{
		portName:     portName,
		baudRate:     baudRate,
		driver:       DriverBugST,
		readPoll:     DefaultReadPoll,
		writeTimeout: DefaultWriteTimeout,
		logger:       logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// PortName returns the serial port name.
func (cfg *Config) PortName() string { return cfg.portName }

// BaudRate returns the baud rate.
func (cfg *Config) BaudRate() int { return cfg.baudRate }

// Driver returns the serial driver used by Open.
func (cfg *Config) Driver() Driver { return cfg.driver }

// ReadPoll returns the interval of a single port read poll.
func (cfg *Config) ReadPoll() time.Duration { return cfg.readPoll }

// WriteTimeout returns the write timeout.
func (cfg *Config) WriteTimeout() time.Duration { return cfg.writeTimeout }

// Echo returns whether traffic is logged at info level.
func (cfg *Config) Echo() bool { return cfg.echo }

// GetLogger returns the configured logger.
func (cfg *Config) GetLogger() logger.Logger { return cfg.logger }

// Option is a functional option for configuring a Config.
type Option interface {
	apply(*Config) error
}

type optFunc func(*Config) error

func (f optFunc) apply(cfg *Config) error { return f(cfg) }

// WithDriver selects the serial driver. DriverBugST is the default.
func WithDriver(d Driver) Option {
	return optFunc(func(cfg *Config) error {
		if !d.IsValid() {
			return fmt.Errorf("serialline: unknown driver %d", int(d))
		}
		cfg.driver = d

		return nil
	})
}

// WithOpenFunc replaces the driver with fn.
func WithOpenFunc(fn OpenFunc) Option {
	return optFunc(func(cfg *Config) error {
		if fn == nil {
			return errors.New("serialline: open func must not be nil")
		}
		cfg.openFunc = fn

		return nil
	})
}

// WithReadPoll sets the interval of a single port read poll, in [1ms, 1s].
func WithReadPoll(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d < MinReadPoll || d > MaxReadPoll {
			return fmt.Errorf("serialline: read poll %v out of range [%v, %v]", d, MinReadPoll, MaxReadPoll)
		}
		cfg.readPoll = d

		return nil
	})
}

// WithWriteTimeout sets how long a line write may block. Ports with write
// deadlines fail the write; on other ports, including both serial drivers, the
// port is closed when the timeout expires.
func WithWriteTimeout(d time.Duration) Option {
	return optFunc(func(cfg *Config) error {
		if d <= 0 {
			return errors.New("serialline: write timeout must be positive")
		}
		cfg.writeTimeout = d

		return nil
	})
}

// WithEcho logs every written and read line at info level.
func WithEcho(enabled bool) Option {
	return optFunc(func(cfg *Config) error {
		cfg.echo = enabled

		return nil
	})
}

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(cfg *Config) error {
		if l == nil {
			return errors.New("serialline: logger must not be nil")
		}
		cfg.logger = l

		return nil
	})
}
