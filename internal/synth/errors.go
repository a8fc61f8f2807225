package synth

import (
	"errors"
	"fmt"
)

// ErrInvalidOperation is returned when a logical-axis token is not X or Z.
var ErrInvalidOperation = errors.New("invalid logical operation: use 'X' or 'Z'")

// OperationError reports the rejected token.
type OperationError struct {
	Token string
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("logical operation %q: %v", e.Token, ErrInvalidOperation)
}

func (e *OperationError) Unwrap() error {
	return ErrInvalidOperation
}
