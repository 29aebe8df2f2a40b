package fine503

import "github.com/arloliu/go-fine503/protocol"

// MoveAbsolute arms an absolute move to steps, one target per addressed
// channel. Call Drive to execute it.
func (c *Controller) MoveAbsolute(axis protocol.Axis, steps []int) (string, error) {
	cmd, err := protocol.EncodeMoveAbsolute(axis, steps)
	if err != nil {
		return "", c.invalid(err)
	}

	return c.command(cmd)
}

// MoveRelative arms a relative move by steps, one offset per addressed
// channel. Call Drive to execute it.
func (c *Controller) MoveRelative(axis protocol.Axis, steps []int) (string, error) {
	cmd, err := protocol.EncodeMoveRelative(axis, steps)
	if err != nil {
		return "", c.invalid(err)
	}

	return c.command(cmd)
}

// MoveContinuous arms a jog, one direction per addressed channel, true
// meaning positive. Call Drive to start it and Stop to end it.
func (c *Controller) MoveContinuous(axis protocol.Axis, positive []bool) (string, error) {
	cmd, err := protocol.EncodeMoveContinuous(axis, positive)
	if err != nil {
		return "", c.invalid(err)
	}

	return c.command(cmd)
}

// Drive executes every armed move. It is the only operation causing motion
// from armed moves.
func (c *Controller) Drive() (string, error) {
	return c.command(protocol.EncodeDrive())
}

// ReturnMechanicalOrigin moves the addressed channels to their mechanical origin.
func (c *Controller) ReturnMechanicalOrigin(axis protocol.Axis) (string, error) {
	return c.axisCommand(axis, protocol.EncodeReturnMechanicalOrigin)
}

// ReturnLogicalOrigin moves the addressed channels to their logical origin.
func (c *Controller) ReturnLogicalOrigin(axis protocol.Axis) (string, error) {
	return c.axisCommand(axis, protocol.EncodeReturnLogicalOrigin)
}

// Stop stops the addressed channels.
func (c *Controller) Stop(axis protocol.Axis) (string, error) {
	return c.axisCommand(axis, protocol.EncodeStop)
}

// EmergencyStop stops every channel and returns the stage to its mechanical origin.
func (c *Controller) EmergencyStop() (string, error) {
	return c.command(protocol.EncodeEmergencyStop())
}

// ClearCoordinate resets the coordinate of the addressed channels to zero.
func (c *Controller) ClearCoordinate(axis protocol.Axis) (string, error) {
	return c.axisCommand(axis, protocol.EncodeClearCoordinate)
}

// SetStepAmount sets the step amount of the addressed channels.
func (c *Controller) SetStepAmount(axis protocol.Axis, steps []int) (string, error) {
	cmd, err := protocol.EncodeSetStepAmount(axis, steps)
	if err != nil {
		return "", c.invalid(err)
	}

	return c.command(cmd)
}

// AcquireHysteresis starts the hysteresis curve data acquisition.
func (c *Controller) AcquireHysteresis() (string, error) {
	return c.command(protocol.EncodeHysteresisAcquisition())
}

// SetClosedLoopMode sets the position-feedback mode.
func (c *Controller) SetClosedLoopMode(mode protocol.ClosedLoopMode) (string, error) {
	cmd, err := protocol.EncodeSetClosedLoopMode(mode)
	if err != nil {
		return "", c.invalid(err)
	}

	return c.command(cmd)
}

func (c *Controller) axisCommand(axis protocol.Axis, encode func(protocol.Axis) (string, error)) (string, error) {
	cmd, err := encode(axis)
	if err != nil {
		return "", c.invalid(err)
	}

	return c.command(cmd)
}
