package elgamal

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrInvalidPublicKey is returned when the recipient key is the point at
	// infinity or is not on the curve.
	ErrInvalidPublicKey = ErrorKind("ErrInvalidPublicKey")

	// ErrNonceExhausted is returned when no usable ephemeral scalar was found
	// within the attempt bound.
	ErrNonceExhausted = ErrorKind("ErrNonceExhausted")

	// ErrInvalidCiphertext is returned when a ciphertext pair is incomplete or
	// its first component is the point at infinity.
	ErrInvalidCiphertext = ErrorKind("ErrInvalidCiphertext")

	// ErrInvalidSymbol is returned when a decrypted value is not a Unicode
	// scalar value.
	ErrInvalidSymbol = ErrorKind("ErrInvalidSymbol")

	// ErrEncodingFailed is returned when a symbol cannot be mapped to a curve
	// point.
	ErrEncodingFailed = ErrorKind("ErrEncodingFailed")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// Error identifies an error related to ElGamal encryption.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
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
