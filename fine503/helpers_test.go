package fine503

import (
	"io"
	"testing"
	"time"

	"github.com/arloliu/go-fine503/internal/devsim"
	"github.com/arloliu/go-fine503/logger"
	"github.com/arloliu/go-fine503/serialline"
	"github.com/stretchr/testify/mock"
)

func quietLogger() logger.Logger {
	return logger.NewSlogWriter(io.Discard, logger.ErrorLevel, false)
}

// newTestController opens a Controller on a simulated device with short
// timeouts suitable for tests.
func newTestController(t *testing.T, opts ...Option) (*Controller, *devsim.Device) {
	t.Helper()

	dev := devsim.New()

	defaults := []Option{
		WithLogger(quietLogger()),
		WithReplyTimeout(200 * time.Millisecond),
		WithLineOptions(
			serialline.WithOpenFunc(dev.Open),
			serialline.WithReadPoll(5*time.Millisecond),
		),
	}

	ctrl, err := Open("/dev/ttySIM0", 38400, append(defaults, opts...)...)
	if err != nil {
		t.Fatalf("newTestController: %v", err)
	}
	t.Cleanup(func() { _ = ctrl.Close() })

	return ctrl, dev
}

type mockLine struct {
	mock.Mock
}

var _ LineTransport = (*mockLine)(nil)

func (m *mockLine) WriteLine(text string) error {
	return m.Called(text).Error(0)
}

func (m *mockLine) ReadLine(timeout time.Duration) (string, error) {
	args := m.Called(timeout)
	return args.String(0), args.Error(1)
}

func (m *mockLine) Close() error {
	return m.Called().Error(0)
}

func (m *mockLine) Discard() (int, error) {
	args := m.Called()
	return args.Int(0), args.Error(1)
}
