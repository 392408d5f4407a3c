package deps

import (
	"errors"
	"fmt"
)

// NotFoundError is returned by Validate when the queried id is not part of
// the current snapshot. Missing tasks are never treated as satisfied.
type NotFoundError struct {
	TaskID TaskID
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("task %s not found in current snapshot", e.TaskID)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
