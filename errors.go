package obf

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned when an accessor or container operation is
	// applied to a Value whose tag belongs to a different family.
	ErrTypeMismatch = errors.New("obf: type mismatch")
	// ErrMalformedData is returned by the decoder for truncated input,
	// unknown tags and lengths that run past the end of the buffer.
	ErrMalformedData = errors.New("obf: malformed data")
	// ErrIndexOutOfRange is returned by array mutators for an index past the end.
	ErrIndexOutOfRange = errors.New("obf: index out of range")
	// ErrKeyTooLong is returned when a Dictionary key exceeds MaxKeyLen bytes.
	ErrKeyTooLong = errors.New("obf: dictionary key too long")
)

func mismatch(op string, have Type) error {
	return fmt.Errorf("%w: %s on %s value", ErrTypeMismatch, op, have)
}

func malformed(off int, format string, args ...any) error {
	return fmt.Errorf("%w at offset %d: %s", ErrMalformedData, off, fmt.Sprintf(format, args...))
}
