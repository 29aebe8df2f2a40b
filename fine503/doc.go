// Package fine503 provides a controller for the FINE-503 three-axis piezo
// stage controller.
//
// A Controller owns one serial line and exposes one method per command of the
// device. Each method validates its parameters, encodes the command, writes it,
// waits for the single reply line and decodes it:
//
//	ctrl, err := fine503.Open("/dev/ttyUSB0", 38400)
//	if err != nil {
//		return err
//	}
//	defer ctrl.Close()
//
//	if _, err := ctrl.MoveAbsolute(protocol.First, []int{150}); err != nil {
//		return err
//	}
//	if _, err := ctrl.Drive(); err != nil {
//		return err
//	}
//
// # Arming and driving
//
// MoveAbsolute, MoveRelative and MoveContinuous only arm a move on the device.
// Nothing moves until Drive is called, which executes every armed move at
// once. Arm several single-axis moves, then Drive, to get coordinated motion.
//
// # Concurrency
//
// The serial link is half duplex and replies carry no request id, so a
// Controller runs one operation at a time; concurrent callers are serialized.
// No operation is retried: a relative move or jog sent twice moves twice.
//
// # Acknowledgements
//
// Commands that do not return data return the raw reply line, usually "OK" or
// "NG". The controller does not interpret it; see protocol.IsOK and
// protocol.IsNG.
package fine503
