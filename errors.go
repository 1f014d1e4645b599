package rent

import (
	"errors"
	"fmt"
)

// Sentinel errors for common contract pipeline failures.
var (
	ErrNoQuestions  = errors.New("rent: no question definitions loaded")
	ErrNoTemplate   = errors.New("rent: master template is empty")
	ErrUnknownMode  = errors.New("rent: unknown render mode")
	ErrInvalidParam = errors.New("rent: invalid parameter")
)

// OpError reports a failure in a specific pipeline operation.
// It wraps an underlying error and names the operation for context.
type OpError struct {
	Op  string // operation name, e.g. "ContractHTML", "PDF"
	Err error  // underlying error
}

func (e *OpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("rent.%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("rent.%s: unknown error", e.Op)
}

func (e *OpError) Unwrap() error {
	return e.Err
}

func newOpError(op string, err error) *OpError {
	return &OpError{Op: op, Err: err}
}
