package ecc

import (
	"errors"
	"testing"
)

// TestErrorKindStringer tests the stringized output for the ErrorKind type.
func TestErrorKindStringer(t *testing.T) {
	tests := []struct {
		in   ErrorKind
		want string
	}{
		{ErrInvalidOperand, "ErrInvalidOperand"},
		{ErrOutOfRange, "ErrOutOfRange"},
		{ErrInvalidCurve, "ErrInvalidCurve"},
	}

	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("#%d: got: %s want: %s", i, result, test.want)
			continue
		}
	}
}

// TestError tests the error output for the Error type.
func TestError(t *testing.T) {
	tests := []struct {
		in   Error
		want string
	}{{
		Error{Description: "some error"},
		"some error",
	}, {
		Error{Description: "human-readable error"},
		"human-readable error",
	}}

	for i, test := range tests {
		result := test.in.Error()
		if result != test.want {
			t.Errorf("#%d: got: %s want: %s", i, result, test.want)
			continue
		}
	}
}

// TestErrorKindIsAs ensures both ErrorKind and Error can be identified as being
// a specific error kind via errors.Is and unwrapped via errors.As.
func TestErrorKindIsAs(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		target    error
		wantMatch bool
		wantAs    ErrorKind
	}{{
		name:      "ErrInvalidOperand == ErrInvalidOperand",
		err:       ErrInvalidOperand,
		target:    ErrInvalidOperand,
		wantMatch: true,
		wantAs:    ErrInvalidOperand,
	}, {
		name:      "Error.ErrInvalidOperand == ErrInvalidOperand",
		err:       makeError(ErrInvalidOperand, ""),
		target:    ErrInvalidOperand,
		wantMatch: true,
		wantAs:    ErrInvalidOperand,
	}, {
		name:      "Error.ErrOutOfRange != ErrInvalidOperand",
		err:       makeError(ErrOutOfRange, ""),
		target:    ErrInvalidOperand,
		wantMatch: false,
		wantAs:    ErrOutOfRange,
	}, {
		name:      "ErrInvalidCurve != Error.ErrOutOfRange",
		err:       ErrInvalidCurve,
		target:    makeError(ErrOutOfRange, ""),
		wantMatch: false,
		wantAs:    ErrInvalidCurve,
	}}

	for _, test := range tests {
		result := errors.Is(test.err, test.target)
		if result != test.wantMatch {
			t.Errorf("%s: incorrect error identification -- got %v, want %v",
				test.name, result, test.wantMatch)
			continue
		}

		var kind ErrorKind
		if !errors.As(test.err, &kind) {
			t.Errorf("%s: unable to unwrap to error code", test.name)
			continue
		}
		if kind != test.wantAs {
			t.Errorf("%s: unexpected unwrapped error code -- got %v, want %v",
				test.name, kind, test.wantAs)
			continue
		}
	}
}
