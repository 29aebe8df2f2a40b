package protocol

import (
	"fmt"
	"strconv"
	"strings"
)

const statusFieldCount = 2 * AxisCount

// Status is the decoded reply of the status query.
type Status struct {
	// Positions holds the coordinate of each channel in wire order.
	Positions [AxisCount]int
	// States holds the state code character of each channel in wire order.
	States [AxisCount]byte
}

// DecodeStatus parses a status reply such as "   100,   200,   300,K,K,B".
// Spaces are ignored; the reply must have exactly six comma separated fields,
// three integer positions followed by three state codes.
func DecodeStatus(line string) (Status, error) {
	var st Status

	fields := strings.Split(strings.ReplaceAll(trimLine(line), " ", ""), ",")
	if len(fields) != statusFieldCount {
		return Status{}, fmt.Errorf("%w: %q has %d fields, want %d",
			ErrMalformedStatusReply, line, len(fields), statusFieldCount)
	}

	for i := 0; i < AxisCount; i++ {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return Status{}, fmt.Errorf("%w: position %d: %w", ErrMalformedStatusReply, i+1, err)
		}
		st.Positions[i] = v
	}
	for i := 0; i < AxisCount; i++ {
		f := fields[AxisCount+i]
		if f == "" {
			return Status{}, fmt.Errorf("%w: state %d is empty", ErrMalformedStatusReply, i+1)
		}
		st.States[i] = f[0]
	}

	return st, nil
}

// DecodeVoltage parses a comma separated voltage reply to a query addressed to axis.
func DecodeVoltage(axis Axis, line string) ([]int, error) {
	return decodeArity(axis, line, ",")
}

// DecodeSpeed parses an 'S' terminated speed reply such as "10S20S30S" to a
// query addressed to axis.
func DecodeSpeed(axis Axis, line string) ([]int, error) {
	return decodeArity(axis, line, string(stepSuffix))
}

// DecodeControlMode parses a comma separated control mode reply to a query
// addressed to axis.
func DecodeControlMode(axis Axis, line string) ([]int, error) {
	return decodeArity(axis, line, ",")
}

// DecodeReady returns the first character of the ready status reply.
func DecodeReady(line string) (byte, error) {
	line = trimLine(line)
	if line == "" {
		return 0, ErrEmptyReply
	}

	return line[0], nil
}

// DecodeText returns a free-text or acknowledgement reply with its line
// terminator removed. The content is not interpreted.
func DecodeText(line string) string {
	return trimLine(line)
}

// IsOK reports whether reply is the device's positive acknowledgement.
func IsOK(reply string) bool {
	return trimLine(reply) == "OK"
}

// IsNG reports whether reply is the device's negative acknowledgement.
func IsNG(reply string) bool {
	return trimLine(reply) == "NG"
}

// decodeArity splits line on sep, drops empty tokens and parses the rest as
// integers. The token count must equal the cardinality of axis.
func decodeArity(axis Axis, line string, sep string) ([]int, error) {
	want, err := axis.Cardinality()
	if err != nil {
		return nil, err
	}

	tokens := strings.Split(strings.ReplaceAll(trimLine(line), " ", ""), sep)
	values := make([]int, 0, AxisCount)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			return nil, fmt.Errorf("%w: token %q: %w", ErrMalformedArityReply, tok, err)
		}
		values = append(values, v)
	}

	if len(values) != want {
		return nil, fmt.Errorf("%w: %q has %d value(s), axis %s expects %d",
			ErrMalformedArityReply, line, len(values), axis, want)
	}

	return values, nil
}

func trimLine(line string) string {
	return strings.TrimRight(line, "\r\n")
}
