package protocol

// ValidateArity checks that params has as many elements as the axis addresses
// channels. It returns ErrInvalidAxis for an unknown axis and an *ArityError
// for a length mismatch.
func ValidateArity[T any](axis Axis, params []T) error {
	want, err := axis.Cardinality()
	if err != nil {
		return err
	}
	if len(params) != want {
		return &ArityError{Axis: axis, Expected: want, Actual: len(params)}
	}

	return nil
}
