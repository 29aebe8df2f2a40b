package fine503

import (
	"errors"
	"fmt"
	"time"

	"github.com/arloliu/go-fine503/logger"
	"github.com/arloliu/go-fine503/serialline"
)

const (
	DefaultReplyTimeout = 1 * time.Second
	DefaultCloseTimeout = 3 * time.Second
)

const (
	MinReplyTimeout = 10 * time.Millisecond
	MaxReplyTimeout = 60 * time.Second
)

type options struct {
	replyTimeout time.Duration
	closeTimeout time.Duration
	logger       logger.Logger
	lineOpts     []serialline.Option
}

func newOptions(opts []Option) (*options, error) {
	o := &options{
		replyTimeout: DefaultReplyTimeout,
		closeTimeout: DefaultCloseTimeout,
		logger:       logger.GetLogger(),
	}

	for _, opt := range opts {
		if err := opt.apply(o); err != nil {
			return nil, err
		}
	}

	return o, nil
}

// Option is a functional option for configuring a Controller.
type Option interface {
	apply(*options) error
}

type optFunc func(*options) error

func (f optFunc) apply(o *options) error { return f(o) }

// WithReplyTimeout sets how long an operation waits for the reply line,
// in [10ms, 60s].
func WithReplyTimeout(d time.Duration) Option {
	return optFunc(func(o *options) error {
		if d < MinReplyTimeout || d > MaxReplyTimeout {
			return fmt.Errorf("fine503: reply timeout %v out of range [%v, %v]", d, MinReplyTimeout, MaxReplyTimeout)
		}
		o.replyTimeout = d

		return nil
	})
}

// WithCloseTimeout sets how long Close waits for an operation in flight
// before closing the port under it.
func WithCloseTimeout(d time.Duration) Option {
	return optFunc(func(o *options) error {
		if d <= 0 {
			return errors.New("fine503: close timeout must be positive")
		}
		o.closeTimeout = d

		return nil
	})
}

// WithLogger sets the logger of the controller. Open also hands it to the
// serial line unless WithLineOptions sets another one.
func WithLogger(l logger.Logger) Option {
	return optFunc(func(o *options) error {
		if l == nil {
			return errors.New("fine503: logger must not be nil")
		}
		o.logger = l

		return nil
	})
}

// WithLineOptions passes options to the serial line created by Open.
// It has no effect on New.
func WithLineOptions(opts ...serialline.Option) Option {
	return optFunc(func(o *options) error {
		o.lineOpts = append(o.lineOpts, opts...)

		return nil
	})
}
