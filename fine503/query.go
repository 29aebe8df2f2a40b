package fine503

import "github.com/arloliu/go-fine503/protocol"

// Status returns the position and state code of every channel.
func (c *Controller) Status() (protocol.Status, error) {
	cmd := protocol.EncodeQueryStatus()

	reply, err := c.exchange(cmd)
	if err != nil {
		return protocol.Status{}, err
	}

	st, err := protocol.DecodeStatus(reply)
	if err != nil {
		return protocol.Status{}, c.undecodable(cmd, reply, err)
	}

	return st, nil
}

// Voltage returns the output voltage of the addressed channels, one value
// per channel.
func (c *Controller) Voltage(axis protocol.Axis) ([]int, error) {
	return c.queryInts(axis, protocol.EncodeQueryVoltage, protocol.DecodeVoltage)
}

// Speed returns the speed setting of the addressed channels.
func (c *Controller) Speed(axis protocol.Axis) ([]int, error) {
	return c.queryInts(axis, protocol.EncodeQuerySpeed, protocol.DecodeSpeed)
}

// ControlMode returns the control mode of the addressed channels.
func (c *Controller) ControlMode(axis protocol.Axis) ([]int, error) {
	return c.queryInts(axis, protocol.EncodeQueryControlMode, protocol.DecodeControlMode)
}

// Ready returns the ACK/ready status character telling whether the device
// accepts further commands.
func (c *Controller) Ready() (byte, error) {
	cmd := protocol.EncodeQueryReady()

	reply, err := c.exchange(cmd)
	if err != nil {
		return 0, err
	}

	status, err := protocol.DecodeReady(reply)
	if err != nil {
		return 0, c.undecodable(cmd, reply, err)
	}

	return status, nil
}

// ModelName returns the model name reported by the device.
func (c *Controller) ModelName() (string, error) {
	return c.command(protocol.EncodeQueryModelName())
}

// Version returns the firmware version reported by the device.
func (c *Controller) Version() (string, error) {
	return c.command(protocol.EncodeQueryVersion())
}
