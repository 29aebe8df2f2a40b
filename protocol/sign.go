package protocol

const (
	SignPositive byte = '+'
	SignNegative byte = '-'
)

// SignOfInt returns '+' for v >= 0 and '-' otherwise.
func SignOfInt(v int) byte {
	if v >= 0 {
		return SignPositive
	}

	return SignNegative
}

// SignOfBool returns '+' for true and '-' for false.
func SignOfBool(positive bool) byte {
	if positive {
		return SignPositive
	}

	return SignNegative
}
