package protocol

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAxis_Cardinality(t *testing.T) {
	for _, a := range Axes() {
		n, err := a.Cardinality()
		require.NoError(t, err)
		assert.Equal(t, 1, n, a.String())
	}

	n, err := All.Cardinality()
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestAxis_Invalid(t *testing.T) {
	for _, a := range []Axis{0, -1, 5, 100} {
		assert.False(t, a.IsValid())

		_, err := a.Cardinality()
		require.ErrorIs(t, err, ErrInvalidAxis)

		_, err = a.Code()
		require.ErrorIs(t, err, ErrInvalidAxis)
	}
	assert.Equal(t, "Axis(7)", Axis(7).String())
}

func TestAxis_Code(t *testing.T) {
	tests := map[Axis]string{First: "1", Second: "2", Third: "3", All: "W"}
	for a, want := range tests {
		code, err := a.Code()
		require.NoError(t, err)
		assert.Equal(t, want, code)
	}
}

func TestAxis_Declared(t *testing.T) {
	// every variant between First and the sentinel is usable
	for a := First; a < axisEnd; a++ {
		assert.True(t, a.IsValid())
		assert.NotEmpty(t, a.String())
	}
	assert.Equal(t, Axis(5), axisEnd)
}

func TestClosedLoopMode(t *testing.T) {
	assert.True(t, Track.IsValid())
	assert.True(t, Lock.IsValid())
	assert.False(t, ClosedLoopMode(2).IsValid())
	assert.Equal(t, "lock", Lock.String())
	assert.Equal(t, "ClosedLoopMode(-1)", ClosedLoopMode(-1).String())
}

func TestSign(t *testing.T) {
	for _, v := range []int{0, 1, 42, int(^uint(0) >> 1)} {
		assert.Equal(t, SignPositive, SignOfInt(v), v)
	}
	for _, v := range []int{-1, -42, -int(^uint(0)>>1) - 1} {
		assert.Equal(t, SignNegative, SignOfInt(v), v)
	}

	assert.Equal(t, byte('+'), SignOfBool(true))
	assert.Equal(t, byte('-'), SignOfBool(false))
}

func TestValidateArity(t *testing.T) {
	for _, a := range Axes() {
		require.NoError(t, ValidateArity(a, []int{1}))

		for _, n := range []int{0, 2, 3} {
			err := ValidateArity(a, make([]bool, n))
			require.ErrorIs(t, err, ErrParameterArityMismatch)

			var arityErr *ArityError
			require.True(t, errors.As(err, &arityErr))
			assert.Equal(t, 1, arityErr.Expected)
			assert.Equal(t, n, arityErr.Actual)
			assert.Equal(t, a, arityErr.Axis)
		}
	}

	require.NoError(t, ValidateArity(All, []bool{true, false, true}))
	for _, n := range []int{0, 1, 2, 4} {
		err := ValidateArity(All, make([]int, n))
		require.ErrorIs(t, err, ErrParameterArityMismatch)
		assert.Contains(t, err.Error(), "expects 3")
	}

	require.ErrorIs(t, ValidateArity(Axis(9), []int{1}), ErrInvalidAxis)
}
