package providers

import (
	"errors"
	"fmt"
)

// ErrorCode identifies the kind of a connector error.
type ErrorCode string

// Connector error codes
const (
	// ErrorCodeInvalidConfig means the stored connector configuration failed schema validation.
	ErrorCodeInvalidConfig ErrorCode = "invalid_config"

	// ErrorCodeSocialAuthCodeInvalid means the token endpoint returned no usable access token.
	ErrorCodeSocialAuthCodeInvalid ErrorCode = "social_auth_code_invalid"

	// ErrorCodeSocialAccessTokenInvalid means the provider rejected the access token.
	ErrorCodeSocialAccessTokenInvalid ErrorCode = "social_access_token_invalid" //nolint:gosec // error code, not a credential

	// ErrorCodeUnmapped is reported by Classify for errors without a domain kind
	// (transport failures, unexpected status codes, malformed responses).
	ErrorCodeUnmapped ErrorCode = "unmapped"
)

// Error is a connector error with a domain-specific code.
type Error struct {
	Code        ErrorCode // Domain error code
	Description string    // Human-readable description
	Err         error     // Underlying cause, if any
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Description == "" {
		return string(e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// Unwrap returns the underlying cause so the original diagnostic stays reachable.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is a connector error with the same code.
// This lets callers match with errors.Is(err, providers.ErrInvalidConfig).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// NewError creates a new connector error
func NewError(code ErrorCode, description string) *Error {
	return &Error{
		Code:        code,
		Description: description,
	}
}

// WrapError creates a new connector error that keeps err as its cause
func WrapError(code ErrorCode, description string, err error) *Error {
	return &Error{
		Code:        code,
		Description: description,
		Err:         err,
	}
}

// Sentinels for errors.Is matching. Only the code is compared.
var (
	ErrInvalidConfig            = NewError(ErrorCodeInvalidConfig, "invalid connector config")
	ErrSocialAuthCodeInvalid    = NewError(ErrorCodeSocialAuthCodeInvalid, "authorization code rejected")
	ErrSocialAccessTokenInvalid = NewError(ErrorCodeSocialAccessTokenInvalid, "access token rejected")
)

// Classify maps err onto the connector error taxonomy.
// It returns "" for nil, the domain code for connector errors and
// ErrorCodeUnmapped for everything else.
func Classify(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ErrorCodeUnmapped
}
