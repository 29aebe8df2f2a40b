package serialline

import (
	"io"
	"testing"
	"time"

	"github.com/arloliu/go-fine503/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig("/dev/ttyUSB0", 9600)
	require.NoError(t, err)

	assert.Equal(t, "/dev/ttyUSB0", cfg.PortName())
	assert.Equal(t, 9600, cfg.BaudRate())
	assert.Equal(t, DriverBugST, cfg.Driver())
	assert.Equal(t, DefaultReadPoll, cfg.ReadPoll())
	assert.Equal(t, DefaultWriteTimeout, cfg.WriteTimeout())
	assert.False(t, cfg.Echo())
	assert.NotNil(t, cfg.GetLogger())
}

func TestNewConfig_WithOptions(t *testing.T) {
	l := logger.NewMockLogger()
	cfg, err := NewConfig("COM3", 4800,
		WithDriver(DriverTarm),
		WithReadPoll(100*time.Millisecond),
		WithWriteTimeout(time.Second),
		WithEcho(true),
		WithLogger(l),
	)
	require.NoError(t, err)

	assert.Equal(t, DriverTarm, cfg.Driver())
	assert.Equal(t, 100*time.Millisecond, cfg.ReadPoll())
	assert.Equal(t, time.Second, cfg.WriteTimeout())
	assert.True(t, cfg.Echo())
	assert.Same(t, l, cfg.GetLogger())
}

func TestNewConfig_BaudRate(t *testing.T) {
	for _, baud := range BaudRates {
		_, err := NewConfig("COM1", baud)
		require.NoError(t, err, baud)
	}

	for _, baud := range []int{0, -9600, 1200, 2400, 57600, 115200} {
		_, err := NewConfig("COM1", baud)
		require.ErrorIs(t, err, ErrInvalidBaudRate, baud)
	}
}

func TestNewConfig_EmptyPortName(t *testing.T) {
	_, err := NewConfig("", 9600)
	require.ErrorIs(t, err, ErrEmptyPortName)
}

func TestNewConfig_InvalidOptions(t *testing.T) {
	_, err := NewConfig("COM1", 9600, WithReadPoll(0))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read poll")

	_, err = NewConfig("COM1", 9600, WithReadPoll(2*time.Second))
	require.Error(t, err)

	_, err = NewConfig("COM1", 9600, WithWriteTimeout(0))
	require.Error(t, err)

	_, err = NewConfig("COM1", 9600, WithLogger(nil))
	require.Error(t, err)

	_, err = NewConfig("COM1", 9600, WithDriver(Driver(42)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")

	_, err = NewConfig("COM1", 9600, WithOpenFunc(nil))
	require.Error(t, err)
}

func TestParseDriver(t *testing.T) {
	d, err := ParseDriver("")
	require.NoError(t, err)
	assert.Equal(t, DriverBugST, d)

	d, err = ParseDriver("TARM")
	require.NoError(t, err)
	assert.Equal(t, DriverTarm, d)
	assert.Equal(t, "tarm", d.String())

	_, err = ParseDriver("ftdi")
	require.Error(t, err)

	assert.Equal(t, "Driver(9)", Driver(9).String())
}

type nopPort struct{ closed bool }

func (p *nopPort) Read([]byte) (int, error)    { return 0, nil }
func (p *nopPort) Write(b []byte) (int, error) { return len(b), nil }
func (p *nopPort) Close() error                { p.closed = true; return nil }

func TestOpen_WithOpenFunc(t *testing.T) {
	port := &nopPort{}
	var gotName string
	var gotBaud int

	cfg := newTestConfig(t, WithOpenFunc(func(cfg *Config) (io.ReadWriteCloser, error) {
		gotName, gotBaud = cfg.PortName(), cfg.BaudRate()
		return port, nil
	}))

	conn, err := Open(cfg)
	require.NoError(t, err)
	assert.Equal(t, testPortName, gotName)
	assert.Equal(t, DefaultBaudRate, gotBaud)
	assert.Same(t, cfg, conn.Config())

	require.NoError(t, conn.Close())
	assert.True(t, port.closed)
	assert.True(t, conn.IsClosed())
}

func TestOpen_Failure(t *testing.T) {
	cfg := newTestConfig(t, WithOpenFunc(func(*Config) (io.ReadWriteCloser, error) {
		return nil, io.ErrUnexpectedEOF
	}))

	_, err := Open(cfg)
	require.ErrorIs(t, err, ErrOpen)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
	assert.Contains(t, err.Error(), testPortName)

	_, err = Open(nil)
	require.ErrorIs(t, err, ErrConfigNil)
}
