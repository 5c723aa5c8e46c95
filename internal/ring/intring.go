package ring

import (
	"math"
	"strconv"
)

// IntElement is the reference integer ring's element: a signed 64-bit
// integer.
type IntElement int64

func (e IntElement) String() string {
	return strconv.FormatInt(int64(e), 10)
}

func (e IntElement) Int64() int64 {
	return int64(e)
}

// IntRing is the ring of signed 64-bit integers with overflow-checked
// arithmetic. Division is defined only for exactly divisible operand pairs.
type IntRing struct{}

var _ Ring[IntElement] = IntRing{}

// Int is the shared IntRing instance.
var Int = IntRing{}

func (IntRing) FromInt64(value int64) IntElement {
	return IntElement(value)
}

func (IntRing) Add(a, b IntElement) (IntElement, error) {
	c := a + b
	if (b > 0 && c < a) || (b < 0 && c > a) {
		return 0, newOverflowError()
	}
	return c, nil
}

func (IntRing) Sub(a, b IntElement) (IntElement, error) {
	c := a - b
	if (b < 0 && c < a) || (b > 0 && c > a) {
		return 0, newOverflowError()
	}
	return c, nil
}

func (IntRing) Mul(a, b IntElement) (IntElement, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == math.MinInt64 && b == -1) || (b == math.MinInt64 && a == -1) {
		return 0, newOverflowError()
	}
	c := a * b
	if c/b != a {
		return 0, newOverflowError()
	}
	return c, nil
}

func (IntRing) Div(a, b IntElement) (IntElement, error) {
	if b == 0 {
		return 0, newDivisionByZeroError()
	}
	if a == math.MinInt64 && b == -1 {
		return 0, newOverflowError()
	}
	if a%b != 0 {
		return 0, newNotInRingError()
	}
	return a / b, nil
}
