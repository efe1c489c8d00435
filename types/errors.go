package types

import "github.com/pkg/errors"

var (
	// ErrIndexOutOfRange is returned when an index or an interval endpoint is outside [0, length).
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrInvalidRange is returned when left > right.
	ErrInvalidRange = errors.New("invalid range")
)

// CheckIndex validates a single position against a sequence of the given length.
func CheckIndex(i, length int) error {
	if i < 0 || i >= length {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d, length %d", i, length)
	}
	return nil
}

/*
CheckInterval validates [left, right] against a sequence of the given length.

Endpoints are bounds-checked first, so a reversed interval with an endpoint outside
the sequence reports ErrIndexOutOfRange rather than ErrInvalidRange.
*/
func CheckInterval(left, right, length int) error {
	if err := CheckIndex(left, length); err != nil {
		return errors.Wrap(err, "left endpoint")
	}
	if err := CheckIndex(right, length); err != nil {
		return errors.Wrap(err, "right endpoint")
	}
	if left > right {
		return errors.Wrapf(ErrInvalidRange, "left %d > right %d", left, right)
	}
	return nil
}
