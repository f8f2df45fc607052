package eval

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateRegistration = errors.New("duplicate registration")
	ErrInvalidActionID       = errors.New("invalid action id")
	ErrRegistrySealed        = errors.New("registry is sealed")
	ErrIncompleteRegistry    = errors.New("registry is incomplete")
	ErrRegistryNotSealed     = errors.New("registry is not sealed")
)

// BuildError reports an action whose preconditions failed over an otherwise
// valid parse. It carries no position.
type BuildError struct {
	Action  int
	Message string
}

func (e *BuildError) Error() string {
	return e.Message
}

func newBuildError(action int, format string, args ...any) *BuildError {
	return &BuildError{Action: action, Message: fmt.Sprintf(format, args...)}
}
