package fetch

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// ErrTimeout indicates a fetch that exceeded its deadline or whose page
// never became ready.
type ErrTimeout struct {
	Err error
}

func (e ErrTimeout) Error() string {
	return fmt.Sprintf("fetch timed out: %v", e.Err)
}

func (e ErrTimeout) Unwrap() error {
	return e.Err
}

// ErrUnavailable indicates the target could not be reached or refused to
// serve the page.
type ErrUnavailable struct {
	Err error
}

func (e ErrUnavailable) Error() string {
	return fmt.Sprintf("target unavailable: %v", e.Err)
}

func (e ErrUnavailable) Unwrap() error {
	return e.Err
}

// Classify maps a raw transport error onto the fetch error taxonomy.
// Already-classified errors pass through unchanged.
func Classify(err error) error {
	if err == nil {
		return nil
	}

	var timeout ErrTimeout
	if errors.As(err, &timeout) {
		return err
	}
	var unavailable ErrUnavailable
	if errors.As(err, &unavailable) {
		return err
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout{Err: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return ErrTimeout{Err: err}
	}

	return ErrUnavailable{Err: err}
}

// IsTimeout reports whether err is a classified timeout.
func IsTimeout(err error) bool {
	var timeout ErrTimeout
	return errors.As(err, &timeout)
}

func errorTypeLabel(err error) string {
	if IsTimeout(err) {
		return "timeout"
	}
	return "unavailable"
}
