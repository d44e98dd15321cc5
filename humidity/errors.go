package humidity

import (
	"errors"
	"fmt"
)

var (
	// ErrTimeout is returned when the line does not change level within the
	// bounded number of polls.
	ErrTimeout = errors.New("humidity: timeout during communication")
	// ErrChecksumMismatch is returned when the trailing byte does not match
	// the sum of the four data bytes.
	ErrChecksumMismatch = errors.New("humidity: checksum mismatch")
)

// HardwareError wraps a failure of the GPIO line itself.
type HardwareError struct {
	Op  string
	Err error
}

func (e *HardwareError) Error() string {
	return fmt.Sprintf("humidity: gpio %s: %v", e.Op, e.Err)
}

func (e *HardwareError) Unwrap() error { return e.Err }

func hardwareErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &HardwareError{Op: op, Err: err}
}

// IsRetryable reports whether another measurement attempt may succeed.
// Line failures are not retryable.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrTimeout) || errors.Is(err, ErrChecksumMismatch)
}
