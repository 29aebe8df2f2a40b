package protocol

import (
	"fmt"
	"strconv"
)

// Axis selects the channel a command addresses.
type Axis int

const (
	First Axis = iota + 1
	Second
	Third
	// All addresses the three channels at once.
	All

	axisEnd // sentinel, keep last
)

// AxisCount is the number of mechanical channels of the controller.
const AxisCount = 3

// WideCode is the axis code addressing all channels.
const WideCode = "W"

var axisNames = [axisEnd]string{
	First:  "first",
	Second: "second",
	Third:  "third",
	All:    "all",
}

var axisCardinality = [axisEnd]int{
	First:  1,
	Second: 1,
	Third:  1,
	All:    AxisCount,
}

func init() {
	// a variant added to the enumeration must also be added to the tables above
	for a := First; a < axisEnd; a++ {
		if axisNames[a] == "" || axisCardinality[a] == 0 {
			panic(fmt.Sprintf("protocol: axis %d is not fully declared", int(a)))
		}
	}
}

// Axes returns the single channels in wire order.
func Axes() []Axis {
	return []Axis{First, Second, Third}
}

// IsValid reports whether a is one of First, Second, Third or All.
func (a Axis) IsValid() bool {
	return a >= First && a < axisEnd
}

// IsAll reports whether a addresses every channel.
func (a Axis) IsAll() bool {
	return a == All
}

// Cardinality returns the number of parameters a command addressed to a takes.
func (a Axis) Cardinality() (int, error) {
	if !a.IsValid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidAxis, int(a))
	}

	return axisCardinality[a], nil
}

// Code returns the wire code of a: "1", "2", "3", or "W" for All.
func (a Axis) Code() (string, error) {
	switch a {
	case First, Second, Third:
		return strconv.Itoa(int(a)), nil
	case All:
		return WideCode, nil
	default:
		return "", fmt.Errorf("%w: %d", ErrInvalidAxis, int(a))
	}
}

func (a Axis) String() string {
	if !a.IsValid() {
		return "Axis(" + strconv.Itoa(int(a)) + ")"
	}

	return axisNames[a]
}

// ClosedLoopMode is the position-feedback mode of the controller.
type ClosedLoopMode int

const (
	Track ClosedLoopMode = 0
	Lock  ClosedLoopMode = 1
)

// IsValid reports whether m is Track or Lock.
func (m ClosedLoopMode) IsValid() bool {
	return m == Track || m == Lock
}

func (m ClosedLoopMode) String() string {
	switch m {
	case Track:
		return "track"
	case Lock:
		return "lock"
	default:
		return "ClosedLoopMode(" + strconv.Itoa(int(m)) + ")"
	}
}
