package protocol

import (
	"strconv"
	"strings"
)

// Command headers. A command line is a header, the axis code when the command
// is axis-aware, and zero or more per-axis parameter groups.
const (
	cmdMoveAbsolute   = "A:"
	cmdMoveRelative   = "M:"
	cmdMoveContinuous = "J:"
	cmdDrive          = "G:"
	cmdMechOrigin     = "H:"
	cmdLogicalOrigin  = "N:"
	cmdStop           = "L:"
	cmdEmergencyStop  = "L:E"
	cmdClear          = "R:"
	cmdStepAmount     = "D:"
	cmdHysteresis     = "@:"
	cmdClosedLoop     = "K:"
	cmdStatus         = "Q:"
	cmdVoltage        = "V:"
	cmdReady          = "!:"
	cmdModelName      = "?:N"
	cmdVersion        = "?:V"
	cmdSpeed          = "?:D"
	cmdControlMode    = "?:C"
)

const (
	pulseMarker = 'P'
	stepSuffix  = 'S'
)

// EncodeMoveAbsolute builds the command arming an absolute move, one target per
// addressed channel: "A:1+P42", "A:W-P5+P0+P7".
func EncodeMoveAbsolute(axis Axis, steps []int) (string, error) {
	return encodeSignedMove(cmdMoveAbsolute, axis, steps)
}

// EncodeMoveRelative builds the command arming a relative move, one offset per
// addressed channel: "M:2-P10", "M:W+P1+P2+P3".
func EncodeMoveRelative(axis Axis, steps []int) (string, error) {
	return encodeSignedMove(cmdMoveRelative, axis, steps)
}

// EncodeMoveContinuous builds the command arming a jog, one direction per
// addressed channel: "J:3-", "J:W+-+".
func EncodeMoveContinuous(axis Axis, positive []bool) (string, error) {
	if err := ValidateArity(axis, positive); err != nil {
		return "", err
	}

	sb := newCommand(cmdMoveContinuous, axis)
	for _, p := range positive {
		sb.WriteByte(SignOfBool(p))
	}

	return sb.String(), nil
}

// EncodeDrive builds the trigger executing the armed moves. It carries no axis
// or magnitude.
func EncodeDrive() string {
	return cmdDrive
}

// EncodeReturnMechanicalOrigin builds "H:{axis}".
func EncodeReturnMechanicalOrigin(axis Axis) (string, error) {
	return encodeAxisOnly(cmdMechOrigin, axis)
}

// EncodeReturnLogicalOrigin builds "N:{axis}".
func EncodeReturnLogicalOrigin(axis Axis) (string, error) {
	return encodeAxisOnly(cmdLogicalOrigin, axis)
}

// EncodeStop builds "L:{axis}".
func EncodeStop(axis Axis) (string, error) {
	return encodeAxisOnly(cmdStop, axis)
}

// EncodeEmergencyStop builds "L:E", which stops every channel and returns the
// stage to its mechanical origin.
func EncodeEmergencyStop() string {
	return cmdEmergencyStop
}

// EncodeClearCoordinate builds "R:{axis}".
func EncodeClearCoordinate(axis Axis) (string, error) {
	return encodeAxisOnly(cmdClear, axis)
}

// EncodeSetStepAmount builds the step amount command: "D:2100S", "D:W1S2S3S".
// Step amounts are unsigned on the wire, a negative amount is rejected.
func EncodeSetStepAmount(axis Axis, steps []int) (string, error) {
	if err := ValidateArity(axis, steps); err != nil {
		return "", err
	}
	for _, v := range steps {
		if v < 0 {
			return "", ErrInvalidStepAmount
		}
	}

	sb := newCommand(cmdStepAmount, axis)
	for _, v := range steps {
		sb.WriteString(strconv.Itoa(v))
		sb.WriteByte(stepSuffix)
	}

	return sb.String(), nil
}

// EncodeHysteresisAcquisition builds "@:".
func EncodeHysteresisAcquisition() string {
	return cmdHysteresis
}

// EncodeSetClosedLoopMode builds "K:{mode}".
func EncodeSetClosedLoopMode(mode ClosedLoopMode) (string, error) {
	if !mode.IsValid() {
		return "", ErrInvalidClosedLoopMode
	}

	return cmdClosedLoop + strconv.Itoa(int(mode)), nil
}

// EncodeQueryStatus builds "Q:". The status query always covers every channel.
func EncodeQueryStatus() string {
	return cmdStatus
}

// EncodeQueryVoltage builds "V:{axis}".
func EncodeQueryVoltage(axis Axis) (string, error) {
	return encodeAxisOnly(cmdVoltage, axis)
}

// EncodeQueryReady builds "!:".
func EncodeQueryReady() string {
	return cmdReady
}

// EncodeQueryModelName builds "?:N".
func EncodeQueryModelName() string {
	return cmdModelName
}

// EncodeQueryVersion builds "?:V".
func EncodeQueryVersion() string {
	return cmdVersion
}

// EncodeQuerySpeed builds "?:D{axis}".
func EncodeQuerySpeed(axis Axis) (string, error) {
	return encodeAxisOnly(cmdSpeed, axis)
}

// EncodeQueryControlMode builds "?:C{axis}".
func EncodeQueryControlMode(axis Axis) (string, error) {
	return encodeAxisOnly(cmdControlMode, axis)
}

func encodeSignedMove(header string, axis Axis, steps []int) (string, error) {
	if err := ValidateArity(axis, steps); err != nil {
		return "", err
	}

	sb := newCommand(header, axis)
	for _, v := range steps {
		sb.WriteByte(SignOfInt(v))
		sb.WriteByte(pulseMarker)
		sb.WriteString(magnitude(v))
	}

	return sb.String(), nil
}

func encodeAxisOnly(header string, axis Axis) (string, error) {
	code, err := axis.Code()
	if err != nil {
		return "", err
	}

	return header + code, nil
}

// newCommand starts a command line with header and the code of a valid axis.
func newCommand(header string, axis Axis) *strings.Builder {
	code, _ := axis.Code()

	sb := &strings.Builder{}
	sb.Grow(len(header) + len(code) + 24)
	sb.WriteString(header)
	sb.WriteString(code)

	return sb
}

// magnitude formats |v| without overflowing on the minimum int.
func magnitude(v int) string {
	if v >= 0 {
		return strconv.FormatUint(uint64(v), 10)
	}

	return strconv.FormatUint(uint64(-(v+1))+1, 10)
}
