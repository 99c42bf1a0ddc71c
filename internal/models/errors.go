package models

// AppError is a structured application error. Errors with the same Code are
// the same kind of failure regardless of Message, so callers match kinds with
// errors.Is against the sentinels below.
type AppError struct {
	Code    string `json:"error"`
	Message string `json:"message"`
}

func (e *AppError) Error() string { return e.Message }

// Is reports whether target is an *AppError with the same code.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	return ok && t.Code == e.Code
}

// Error codes.
const (
	CodeNotInitialized  = "NOT_INITIALIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeBindingRequired = "BINDING_REQUIRED"
)

// Error kinds.
var (
	// ErrNotInitialized is returned when reading a preference that was never set.
	ErrNotInitialized = &AppError{Code: CodeNotInitialized, Message: "value not initialized"}

	// ErrNotFound is returned by read-path lookups of identifiers with no entry.
	ErrNotFound = &AppError{Code: CodeNotFound, Message: "not found"}

	// ErrInvalidArgument covers malformed timestamps, out-of-range indexes and
	// missing identities.
	ErrInvalidArgument = &AppError{Code: CodeInvalidArgument, Message: "invalid argument"}

	// ErrBindingRequired is returned by operations that need a bound live source.
	ErrBindingRequired = &AppError{Code: CodeBindingRequired, Message: "no live source bound"}
)

// NotFound returns an ErrNotFound-kind error with a specific message.
func NotFound(msg string) *AppError {
	return &AppError{Code: CodeNotFound, Message: msg}
}

// InvalidArgument returns an ErrInvalidArgument-kind error with a specific message.
func InvalidArgument(msg string) *AppError {
	return &AppError{Code: CodeInvalidArgument, Message: msg}
}
