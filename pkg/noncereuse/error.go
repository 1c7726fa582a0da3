package noncereuse

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrNonceMismatch is returned when two signatures passed to Recover have
	// different r values, so there is no evidence they share a nonce.
	ErrNonceMismatch = ErrorKind("ErrNonceMismatch")

	// ErrDegenerateRecovery is returned when the recovery equations cannot be
	// solved because a required divisor is 0 mod n.
	ErrDegenerateRecovery = ErrorKind("ErrDegenerateRecovery")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to key recovery.  It has full support
// for errors.Is and errors.As, so the caller can ascertain the specific
// reason for the error by checking the underlying error.
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
