package ring_test

import (
	"errors"
	"math"
	"testing"

	"github.com/aritexpr/ringexpr/internal/ring"
)

func TestIntRingAdd(t *testing.T) {
	t.Parallel()

	if v, err := ring.Int.Add(5, -3); err != nil || v != 2 {
		t.Errorf("unexpected result: v=%v err=%v", v, err)
	}

	_, err := ring.Int.Add(math.MaxInt64, 1)
	assertRingErr(t, err, ring.OverflowError, "Overflow")

	_, err = ring.Int.Add(math.MinInt64, -1)
	assertRingErr(t, err, ring.OverflowError, "Overflow")
}

func TestIntRingSub(t *testing.T) {
	t.Parallel()

	if v, err := ring.Int.Sub(5, 2); err != nil || v != 3 {
		t.Errorf("unexpected result: v=%v err=%v", v, err)
	}

	_, err := ring.Int.Sub(math.MinInt64, 1)
	assertRingErr(t, err, ring.OverflowError, "Overflow")

	_, err = ring.Int.Sub(math.MaxInt64, -1)
	assertRingErr(t, err, ring.OverflowError, "Overflow")
}

func TestIntRingMul(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		a, b, expected ring.IntElement
	}{
		{a: 5, b: 2, expected: 10},
		{a: 5, b: -2, expected: -10},
		{a: 0, b: math.MaxInt64, expected: 0},
		{a: math.MinInt64, b: 1, expected: math.MinInt64},
	} {
		if v, err := ring.Int.Mul(tt.a, tt.b); err != nil || v != tt.expected {
			t.Errorf("Mul(%v, %v): v=%v err=%v", tt.a, tt.b, v, err)
		}
	}

	_, err := ring.Int.Mul(math.MaxInt64, 2)
	assertRingErr(t, err, ring.OverflowError, "Overflow")

	_, err = ring.Int.Mul(math.MinInt64, -1)
	assertRingErr(t, err, ring.OverflowError, "Overflow")

	_, err = ring.Int.Mul(-1, math.MinInt64)
	assertRingErr(t, err, ring.OverflowError, "Overflow")
}

func TestIntRingDiv(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		a, b, expected ring.IntElement
	}{
		{a: 6, b: 2, expected: 3},
		{a: -6, b: 2, expected: -3},
		{a: 6, b: -2, expected: -3},
		{a: 0, b: 5, expected: 0},
	} {
		if v, err := ring.Int.Div(tt.a, tt.b); err != nil || v != tt.expected {
			t.Errorf("Div(%v, %v): v=%v err=%v", tt.a, tt.b, v, err)
		}
	}

	_, err := ring.Int.Div(5, 2)
	assertRingErr(t, err, ring.NotInRingError, "Result not in ring")

	_, err = ring.Int.Div(-5, 2)
	assertRingErr(t, err, ring.NotInRingError, "Result not in ring")

	_, err = ring.Int.Div(5, -2)
	assertRingErr(t, err, ring.NotInRingError, "Result not in ring")

	_, err = ring.Int.Div(2, 0)
	assertRingErr(t, err, ring.DivisionByZeroError, "Overflow")

	_, err = ring.Int.Div(0, 0)
	assertRingErr(t, err, ring.DivisionByZeroError, "Overflow")

	_, err = ring.Int.Div(math.MinInt64, -1)
	assertRingErr(t, err, ring.OverflowError, "Overflow")
}

func TestIntElement(t *testing.T) {
	t.Parallel()

	e := ring.Int.FromInt64(-42)
	if e.Int64() != -42 {
		t.Errorf("unexpected value: %d", e.Int64())
	}
	if e.String() != "-42" {
		t.Errorf("unexpected string: %q", e.String())
	}
}

func assertRingErr(t *testing.T, err error, kind ring.ErrorKind, message string) {
	t.Helper()

	var ringErr *ring.Error
	if !errors.As(err, &ringErr) {
		t.Errorf("should be a ring error: %v", err)
		return
	}
	if ringErr.Kind != kind {
		t.Errorf("unexpected kind: %q (expected %q)", ringErr.Kind, kind)
	}
	if ringErr.Message != message {
		t.Errorf("unexpected message: %q (expected %q)", ringErr.Message, message)
	}
}
