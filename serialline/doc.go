// Package serialline provides the line-oriented serial transport of the
// FINE-503 controller.
//
// The controller talks 7-bit ASCII at 4800, 9600, 19200 or 38400 baud, 8N1,
// and terminates every line with CR+LF in both directions. The link is half
// duplex: one command line is written, then one reply line is read.
//
// # Drivers
//
// Two serial drivers are available:
//
//   - DriverBugST: go.bug.st/serial, the default.
//   - DriverTarm: github.com/tarm/serial.
//
// WithOpenFunc replaces the driver entirely, e.g. to reach the controller
// through a TCP serial bridge or an in-memory simulator.
//
// # Timeouts
//
// ReadLine waits at most the given timeout for a complete line and returns
// ErrTimeout otherwise. Ports are read in short polls (see WithReadPoll) so
// that the timeout is honored even by drivers without read deadlines. When
// the port implements SetReadDeadline or SetWriteDeadline, as net.Conn does,
// those deadlines are used as well.
package serialline
