package fine503

import "sync/atomic"

// Metrics contains atomic counters of a Controller.
// The counters can be used as the value of a prometheus CounterFunc.
type Metrics struct {
	// CommandCount indicates the number of command lines written.
	CommandCount atomic.Uint64
	// ReplyCount indicates the number of reply lines received.
	ReplyCount atomic.Uint64
	// TimeoutCount indicates the number of writes or reads that timed out.
	TimeoutCount atomic.Uint64
	// TransportErrCount indicates the number of transport failures other than timeouts.
	TransportErrCount atomic.Uint64
	// DecodeErrCount indicates the number of replies that failed to decode.
	DecodeErrCount atomic.Uint64
	// ValidationErrCount indicates the number of requests rejected before encoding.
	ValidationErrCount atomic.Uint64
}

func (m *Metrics) incCommandCount() {
	m.CommandCount.Add(1)
}

func (m *Metrics) incReplyCount() {
	m.ReplyCount.Add(1)
}

func (m *Metrics) incTimeoutCount() {
	m.TimeoutCount.Add(1)
}

func (m *Metrics) incTransportErrCount() {
	m.TransportErrCount.Add(1)
}

func (m *Metrics) incDecodeErrCount() {
	m.DecodeErrCount.Add(1)
}

func (m *Metrics) incValidationErrCount() {
	m.ValidationErrCount.Add(1)
}
