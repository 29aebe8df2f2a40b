package fine503integration

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/arloliu/go-fine503/fine503"
	"github.com/arloliu/go-fine503/internal/devsim"
	"github.com/arloliu/go-fine503/logger"
	"github.com/arloliu/go-fine503/protocol"
	"github.com/arloliu/go-fine503/serialline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bridge serves a simulated device on the remote end of a net.Pipe, the way a
// TCP serial bridge would forward the port.
func bridge(t *testing.T, dev *devsim.Device) net.Conn {
	t.Helper()

	local, remote := net.Pipe()

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = io.Copy(dev, remote)
	}()
	go func() {
		defer wg.Done()
		buf := make([]byte, 256)
		for {
			n, err := dev.Read(buf)
			if err != nil {
				return
			}
			if n == 0 {
				continue
			}
			if _, err := remote.Write(buf[:n]); err != nil {
				return
			}
		}
	}()

	t.Cleanup(func() {
		_ = local.Close()
		_ = remote.Close()
		_ = dev.Close()
		wg.Wait()
	})

	return local
}

func newController(t *testing.T, dev *devsim.Device) *fine503.Controller {
	t.Helper()

	local := bridge(t, dev)

	l := logger.NewSlogWriter(io.Discard, logger.ErrorLevel, false)
	ctrl, err := fine503.Open("tcp-bridge", 9600,
		fine503.WithLogger(l),
		fine503.WithReplyTimeout(500*time.Millisecond),
		fine503.WithLineOptions(
			serialline.WithReadPoll(10*time.Millisecond),
			serialline.WithOpenFunc(func(*serialline.Config) (io.ReadWriteCloser, error) {
				return local, nil
			}),
		),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ctrl.Close() })

	return ctrl
}

func TestIntegration_SweepEachAxis(t *testing.T) {
	dev := devsim.New()
	ctrl := newController(t, dev)

	for i, a := range protocol.Axes() {
		reply, err := ctrl.EmergencyStop()
		require.NoError(t, err)
		require.True(t, protocol.IsOK(reply))

		for pos := 15; pos <= 150; pos += 15 {
			_, err := ctrl.MoveAbsolute(a, []int{pos})
			require.NoError(t, err)
			_, err = ctrl.Drive()
			require.NoError(t, err)

			st, err := ctrl.Status()
			require.NoError(t, err)
			assert.Equal(t, pos, st.Positions[i])
		}
	}

	var arms int
	for _, line := range dev.Received() {
		if strings.HasPrefix(line, "A:") {
			arms++
		}
	}
	assert.Equal(t, 30, arms)
}

func TestIntegration_AllAxes(t *testing.T) {
	dev := devsim.New()
	ctrl := newController(t, dev)

	_, err := ctrl.MoveAbsolute(protocol.All, []int{-5, 0, 7})
	require.NoError(t, err)
	_, err = ctrl.Drive()
	require.NoError(t, err)

	st, err := ctrl.Status()
	require.NoError(t, err)
	assert.Equal(t, [3]int{-5, 0, 7}, st.Positions)

	_, err = ctrl.SetStepAmount(protocol.All, []int{10, 20, 30})
	require.NoError(t, err)

	speed, err := ctrl.Speed(protocol.All)
	require.NoError(t, err)
	assert.Equal(t, []int{10, 20, 30}, speed)

	_, err = ctrl.MoveContinuous(protocol.All, []bool{true, false, true})
	require.NoError(t, err)
	_, err = ctrl.Drive()
	require.NoError(t, err)

	st, err = ctrl.Status()
	require.NoError(t, err)
	assert.Equal(t, [3]int{5, -20, 37}, st.Positions)
	assert.Equal(t, [3]byte{'B', 'B', 'B'}, st.States)

	_, err = ctrl.Stop(protocol.All)
	require.NoError(t, err)
	_, err = ctrl.ReturnMechanicalOrigin(protocol.All)
	require.NoError(t, err)

	st, err = ctrl.Status()
	require.NoError(t, err)
	assert.Equal(t, [3]int{0, 0, 0}, st.Positions)
	assert.Equal(t, [3]byte{'K', 'K', 'K'}, st.States)

	assert.Equal(t, []string{
		"A:W-P5+P0+P7", "G:", "Q:", "D:W10S20S30S", "?:DW", "J:W+-+", "G:", "Q:", "L:W", "H:W", "Q:",
	}, dev.Received())
}

func TestIntegration_TimeoutThenRecover(t *testing.T) {
	dev := devsim.New()
	ctrl := newController(t, dev)

	dev.Drop("?:V")
	_, err := ctrl.Version()
	require.ErrorIs(t, err, serialline.ErrTimeout)

	ready, err := ctrl.Ready()
	require.NoError(t, err)
	assert.Equal(t, byte('R'), ready)
}

func TestIntegration_RawWire(t *testing.T) {
	// the bytes on the wire are exactly the command followed by CR+LF
	local, remote := net.Pipe()
	t.Cleanup(func() {
		_ = local.Close()
		_ = remote.Close()
	})

	ctrl, err := fine503.New(
		serialline.NewConn(local, mustConfig(t)),
		fine503.WithLogger(logger.NewSlogWriter(io.Discard, logger.ErrorLevel, false)),
	)
	require.NoError(t, err)

	errCh := make(chan error, 1)
	go func() {
		_, err := ctrl.SetStepAmount(protocol.Second, []int{100})
		errCh <- err
	}()

	r := bufio.NewReader(remote)
	line, err := r.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, "D:2100S\r\n", line)

	_, err = fmt.Fprint(remote, "OK\r\n")
	require.NoError(t, err)
	require.NoError(t, <-errCh)
}

func mustConfig(t *testing.T) *serialline.Config {
	t.Helper()

	cfg, err := serialline.NewConfig("pipe", 19200, serialline.WithReadPoll(10*time.Millisecond))
	require.NoError(t, err)

	return cfg
}
