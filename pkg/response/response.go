package response

import (
	"errors"
)

type Error struct {
	Code    int
	Err     error
	Payload map[string]interface{}
}

func (e *Error) Error() string {
	return e.Err.Error()
}

func (e *Error) Is(target error) bool {
	var t *Error
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Err.Error() == t.Err.Error()
}

func NewError(code int, err string) error {
	return &Error{Code: code, Err: errors.New(err)}
}

// NewErrorWithPayload builds a coded error carrying extra fields that the
// HTTP layer includes in the JSON body, e.g. the allocation difference.
func NewErrorWithPayload(code int, err string, payload map[string]interface{}) error {
	return &Error{Code: code, Err: errors.New(err), Payload: payload}
}
