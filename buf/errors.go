package buf

import "errors"

// ErrInvalidArgument marks requests that violate a buffer precondition: a
// zero-length allocation, a nil pointer handed to AdoptRaw, or a memory
// space the build cannot serve.
var ErrInvalidArgument = errors.New("invalid argument")
