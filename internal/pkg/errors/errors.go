package errors

import "errors"

// Application-wide sentinel errors. Layers wrap them with fmt.Errorf("%w: ...")
// and handlers map them to HTTP status codes.
var (
	// ErrNotFound is used when a record or resource does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrUnauthorized is used for missing or invalid credentials.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden is used when the caller lacks the required role.
	ErrForbidden = errors.New("forbidden")

	// ErrValidation is used for invalid input.
	ErrValidation = errors.New("validation failed")

	// ErrExpiredToken is used when a bearer token has expired.
	ErrExpiredToken = errors.New("token is expired")

	// ErrConflict is used for uniqueness and state conflicts (e.g. duplicate email).
	ErrConflict = errors.New("resource state conflict")
)

// Error pairs a sentinel kind with a message that is safe to return to clients.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

// New returns an *Error of the given kind. errors.Is(err, kind) holds for the result.
func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

// PublicMessage returns the client-facing message carried by err, if any.
func PublicMessage(err error) (string, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Message, true
	}
	return "", false
}
