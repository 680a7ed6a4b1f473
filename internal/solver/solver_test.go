package solver

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quadratic(x float64) (float64, error) { return x*x - 2, nil }

// ===== Secant =====

func TestSolve_SecantConverges(t *testing.T) {
	res, err := Solve(quadratic, 1, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, MethodSecant, res.Method)
	assert.InDelta(t, math.Sqrt2, res.X, 1e-9)
	assert.LessOrEqual(t, math.Abs(res.F), 1e-9)
	assert.Greater(t, res.Iterations, 0)
}

func TestSolve_GuessIsRoot(t *testing.T) {
	res, err := Solve(func(x float64) (float64, error) { return x - 3, nil }, 3, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, 3.0, res.X)
	assert.Equal(t, 0, res.Iterations)
}

func TestSolve_ZeroOptionsUseDefaults(t *testing.T) {
	res, err := Solve(quadratic, 1, Options{})
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.X, 1e-9)
}

func TestSolve_GuessOutsideDomainIsClamped(t *testing.T) {
	opts := DefaultOptions()
	opts.Lo, opts.Hi = 0, 10
	res, err := Solve(quadratic, -50, opts)
	require.NoError(t, err)
	assert.InDelta(t, math.Sqrt2, res.X, 1e-9)
}

// ===== Bracketing fallback =====

// flatThenLinear defeats the secant: f is constant around the guess.
func flatThenLinear(x float64) (float64, error) {
	if x < 4 {
		return -1, nil
	}
	return x - 5, nil
}

func TestSolve_FallsBackToBrent(t *testing.T) {
	opts := DefaultOptions()
	opts.Lo, opts.Hi = 0, 10
	res, err := Solve(flatThenLinear, 1, opts)
	require.NoError(t, err)
	assert.Equal(t, MethodBrent, res.Method)
	assert.InDelta(t, 5.0, res.X, 1e-9)
}

func TestSolve_BrentPolishesInteriorRoot(t *testing.T) {
	// Root at 1.234 falls inside a scan cell, so Brent has work to do.
	f := func(x float64) (float64, error) {
		if x < 0.5 {
			return -1, nil
		}
		return math.Tanh(x - 1.234), nil
	}
	opts := DefaultOptions()
	opts.Lo, opts.Hi = 0, 3
	res, err := Solve(f, 0.1, opts)
	require.NoError(t, err)
	assert.InDelta(t, 1.234, res.X, 1e-9)
}

func TestSolve_ScanSkipsRejectedPoints(t *testing.T) {
	f := func(x float64) (float64, error) {
		if x > 6 {
			return 0, errors.New("out of domain")
		}
		return flatThenLinear(x)
	}
	opts := DefaultOptions()
	opts.Lo, opts.Hi = 0, 10
	res, err := Solve(f, 8, opts)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, res.X, 1e-9)
}

func TestSolve_PicksBracketNearestGuess(t *testing.T) {
	// Roots at 1 and 9. Starting beside 9 must find 9.
	f := func(x float64) (float64, error) {
		if x > 8.5 && x < 8.6 {
			return 0, errors.New("hole")
		}
		return (x - 1) * (x - 9), nil
	}
	opts := DefaultOptions()
	opts.Lo, opts.Hi = 0, 10
	res, err := Solve(f, 8.55, opts)
	require.NoError(t, err)
	assert.InDelta(t, 9.0, res.X, 1e-9)
}

// ===== Failures =====

func TestSolve_NoSignChange(t *testing.T) {
	opts := DefaultOptions()
	opts.Lo, opts.Hi = -5, 5
	_, err := Solve(func(x float64) (float64, error) { return x*x + 1, nil }, 0.5, opts)
	require.Error(t, err)
	assert.True(t, IsConvergenceError(err))

	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, MethodBrent, ce.Method)
	assert.Contains(t, ce.Error(), "no sign change")
}

func TestSolve_UnboundedStall(t *testing.T) {
	_, err := Solve(func(float64) (float64, error) { return 1, nil }, 0, DefaultOptions())
	require.Error(t, err)

	var ce *ConvergenceError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, MethodSecant, ce.Method)
	assert.Contains(t, ce.Reason, "unbounded")
}

func TestIsConvergenceError_Wrapped(t *testing.T) {
	err := &ConvergenceError{Method: MethodBrent, Reason: "x"}
	assert.True(t, IsConvergenceError(errors.Join(errors.New("outer"), err)))
	assert.False(t, IsConvergenceError(errors.New("plain")))
}
