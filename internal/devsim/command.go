package devsim

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

const axisCount = 3

const (
	replyOK = "OK"
	replyNG = "NG"

	stateStable = 'K'
	stateBusy   = 'B'
	readyState  = "R"
)

type moveKind int

const (
	moveNone moveKind = iota
	moveAbsolute
	moveRelative
	moveJog
)

type axisState struct {
	position   int
	stepAmount int
	jogging    bool

	armed     moveKind
	armedArg  int
	armedSign int
}

var (
	signedGroup = regexp.MustCompile(`([+-])P(\d+)`)
	stepGroup   = regexp.MustCompile(`(\d+)S`)
)

// execute runs one command line against the device state and returns the
// reply. d.mu must be held.
func (d *Device) execute(line string) string {
	if len(line) < 2 || line[1] != ':' {
		return replyNG
	}
	arg := line[2:]

	switch line[0] {
	case 'A':
		return d.armSigned(moveAbsolute, arg)
	case 'M':
		return d.armSigned(moveRelative, arg)
	case 'J':
		return d.armJog(arg)
	case 'G':
		return d.drive(arg)
	case 'H', 'N', 'R':
		return d.forAxes(arg, func(ax *axisState) {
			ax.position = 0
			ax.jogging = false
		})
	case 'L':
		if arg == "E" {
			for i := range d.axes {
				d.axes[i] = axisState{stepAmount: d.axes[i].stepAmount}
			}
			return replyOK
		}
		return d.forAxes(arg, func(ax *axisState) {
			ax.armed = moveNone
			ax.jogging = false
		})
	case 'D':
		return d.setStepAmount(arg)
	case '@':
		return okIf(arg == "")
	case 'K':
		mode, err := strconv.Atoi(arg)
		if err != nil || (mode != 0 && mode != 1) {
			return replyNG
		}
		d.mode = mode
		return replyOK
	case 'Q':
		if arg != "" {
			return replyNG
		}
		return d.status()
	case 'V':
		return d.report(arg, ",", func(ax axisState) string { return strconv.Itoa(abs(ax.position) / 10) })
	case '!':
		return readyState
	case '?':
		return d.query(arg)
	}

	return replyNG
}

func (d *Device) query(arg string) string {
	switch {
	case arg == "N":
		return ModelName
	case arg == "V":
		return Version
	case strings.HasPrefix(arg, "D"):
		return d.report(arg[1:], "", func(ax axisState) string { return strconv.Itoa(ax.stepAmount) + "S" })
	case strings.HasPrefix(arg, "C"):
		return d.report(arg[1:], ",", func(axisState) string { return strconv.Itoa(d.mode) })
	}

	return replyNG
}

func (d *Device) armSigned(kind moveKind, arg string) string {
	idx, groups, ok := splitAxis(arg)
	if !ok {
		return replyNG
	}

	matches := signedGroup.FindAllStringSubmatch(groups, -1)
	if len(matches) != len(idx) || !coversAll(matches, groups) {
		return replyNG
	}

	for n, i := range idx {
		v, err := strconv.Atoi(matches[n][2])
		if err != nil {
			return replyNG
		}
		if matches[n][1] == "-" {
			v = -v
		}
		d.axes[i].armed = kind
		d.axes[i].armedArg = v
	}

	return replyOK
}

func (d *Device) armJog(arg string) string {
	idx, groups, ok := splitAxis(arg)
	if !ok || len(groups) != len(idx) {
		return replyNG
	}

	for n, i := range idx {
		switch groups[n] {
		case '+':
			d.axes[i].armedSign = 1
		case '-':
			d.axes[i].armedSign = -1
		default:
			return replyNG
		}
		d.axes[i].armed = moveJog
	}

	return replyOK
}

func (d *Device) drive(arg string) string {
	if arg != "" {
		return replyNG
	}

	moved := false
	for i := range d.axes {
		ax := &d.axes[i]
		switch ax.armed {
		case moveAbsolute:
			ax.position = ax.armedArg
		case moveRelative:
			ax.position += ax.armedArg
		case moveJog:
			ax.position += ax.armedSign * ax.stepAmount
			ax.jogging = true
		case moveNone:
			continue
		}
		ax.armed = moveNone
		moved = true
	}

	return okIf(moved)
}

func (d *Device) setStepAmount(arg string) string {
	idx, groups, ok := splitAxis(arg)
	if !ok {
		return replyNG
	}

	matches := stepGroup.FindAllStringSubmatch(groups, -1)
	if len(matches) != len(idx) || !coversAll(matches, groups) {
		return replyNG
	}

	for n, i := range idx {
		v, err := strconv.Atoi(matches[n][1])
		if err != nil {
			return replyNG
		}
		d.axes[i].stepAmount = v
	}

	return replyOK
}

func (d *Device) forAxes(arg string, fn func(*axisState)) string {
	idx, rest, ok := splitAxis(arg)
	if !ok || rest != "" {
		return replyNG
	}
	for _, i := range idx {
		fn(&d.axes[i])
	}

	return replyOK
}

func (d *Device) status() string {
	var states [axisCount]byte
	for i, ax := range d.axes {
		states[i] = stateStable
		if ax.jogging {
			states[i] = stateBusy
		}
	}

	return fmt.Sprintf("%6d,%6d,%6d,%c,%c,%c",
		d.axes[0].position, d.axes[1].position, d.axes[2].position,
		states[0], states[1], states[2])
}

func (d *Device) report(arg string, sep string, value func(axisState) string) string {
	idx, rest, ok := splitAxis(arg)
	if !ok || rest != "" {
		return replyNG
	}

	parts := make([]string, 0, len(idx))
	for _, i := range idx {
		parts = append(parts, value(d.axes[i]))
	}

	return strings.Join(parts, sep)
}

// splitAxis splits an axis code from the rest of the argument and returns
// the channel indexes it addresses.
func splitAxis(arg string) ([]int, string, bool) {
	if arg == "" {
		return nil, "", false
	}

	switch arg[0] {
	case '1', '2', '3':
		return []int{int(arg[0] - '1')}, arg[1:], true
	case 'W':
		return []int{0, 1, 2}, arg[1:], true
	}

	return nil, "", false
}

func coversAll(matches [][]string, s string) bool {
	n := 0
	for _, m := range matches {
		n += len(m[0])
	}

	return n == len(s)
}

func okIf(ok bool) string {
	if ok {
		return replyOK
	}

	return replyNG
}

func abs(v int) int {
	if v < 0 {
		return -v
	}

	return v
}
