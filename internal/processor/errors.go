package processor

import (
	"errors"
	"fmt"
)

var ErrJoin = errors.New("task join error")

// JoinError reports a worker that terminated abnormally instead of
// returning. Ordinary I/O failures never produce one.
type JoinError struct {
	Unit  string
	Cause any
}

func (e *JoinError) Error() string {
	return fmt.Sprintf("task join error: %s: %v", e.Unit, e.Cause)
}

func (e *JoinError) Is(target error) bool { return target == ErrJoin }

func recoverJoin(unit string, err *error) {
	if r := recover(); r != nil {
		*err = &JoinError{Unit: unit, Cause: r}
	}
}
