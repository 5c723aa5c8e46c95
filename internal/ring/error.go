package ring

type ErrorKind string

const (
	OverflowError       ErrorKind = "Overflow"
	DivisionByZeroError ErrorKind = "DivisionByZero"
	NotInRingError      ErrorKind = "NotInRing"
)

// Error is a failed ring operation. DivisionByZeroError shares the
// "Overflow" message with OverflowError for output compatibility but stays
// a distinct kind.
type Error struct {
	Kind    ErrorKind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newOverflowError() *Error {
	return &Error{Kind: OverflowError, Message: "Overflow"}
}

func newDivisionByZeroError() *Error {
	return &Error{Kind: DivisionByZeroError, Message: "Overflow"}
}

func newNotInRingError() *Error {
	return &Error{Kind: NotInRingError, Message: "Result not in ring"}
}
