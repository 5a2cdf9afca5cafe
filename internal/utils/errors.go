package utils

import "fmt"

// AppError carries the failing operation alongside a human-facing message
// and the underlying cause. It unwraps cleanly for errors.Is/As.
type AppError struct {
	Op  string
	Msg string
	Err error
}

// NewAppError constructs an AppError.
func NewAppError(op, msg string, err error) error {
	return &AppError{Op: op, Msg: msg, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
}

func (e *AppError) Unwrap() error { return e.Err }
