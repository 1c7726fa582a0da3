package ecc

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidOperand is returned when a modular inverse is requested for a
	// value that is zero (or otherwise not invertible) modulo the modulus, or
	// when a scalar multiplication is given a negative scalar.  It only occurs
	// for malformed inputs such as points that are not on the curve.
	ErrInvalidOperand = ErrorKind("ErrInvalidOperand")

	// ErrOutOfRange is returned when a private scalar is not in [1, n-1].
	ErrOutOfRange = ErrorKind("ErrOutOfRange")

	// ErrInvalidCurve is returned when curve parameters are missing or a
	// modulus is not positive.
	ErrInvalidCurve = ErrorKind("ErrInvalidCurve")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to elliptic curve arithmetic or keys.  It
// has full support for errors.Is and errors.As, so the caller can ascertain
// the specific reason for the error by checking the underlying error.
type Error struct {
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e Error) Unwrap() error {
	return e.Err
}

// makeError creates an Error given a set of arguments.
func makeError(kind ErrorKind, desc string) Error {
	return Error{Err: kind, Description: desc}
}
