package providers

import (
	"errors"
	"fmt"
	"testing"
)

func TestError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "with description",
			err:  NewError(ErrorCodeSocialAuthCodeInvalid, "authorization code rejected"),
			want: "social_auth_code_invalid: authorization code rejected",
		},
		{
			name: "without description",
			err:  NewError(ErrorCodeInvalidConfig, ""),
			want: "invalid_config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestError_Is(t *testing.T) {
	err := NewError(ErrorCodeSocialAccessTokenInvalid, "token expired")

	if !errors.Is(err, ErrSocialAccessTokenInvalid) {
		t.Error("errors.Is() should match errors with the same code")
	}
	if errors.Is(err, ErrSocialAuthCodeInvalid) {
		t.Error("errors.Is() should not match errors with a different code")
	}

	wrapped := fmt.Errorf("login failed: %w", err)
	if !errors.Is(wrapped, ErrSocialAccessTokenInvalid) {
		t.Error("errors.Is() should match through fmt.Errorf wrapping")
	}
}

func TestWrapError_Unwrap(t *testing.T) {
	cause := errors.New("unexpected status 401")
	err := WrapError(ErrorCodeSocialAccessTokenInvalid, "access token rejected", cause)

	if !errors.Is(err, cause) {
		t.Error("wrapped cause should be reachable with errors.Is")
	}
	if !errors.Is(err, ErrSocialAccessTokenInvalid) {
		t.Error("wrapped error should keep its code")
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{name: "nil", err: nil, want: ""},
		{name: "invalid config", err: ErrInvalidConfig, want: ErrorCodeInvalidConfig},
		{name: "auth code", err: NewError(ErrorCodeSocialAuthCodeInvalid, "x"), want: ErrorCodeSocialAuthCodeInvalid},
		{name: "access token wrapped", err: fmt.Errorf("ctx: %w", ErrSocialAccessTokenInvalid), want: ErrorCodeSocialAccessTokenInvalid},
		{name: "plain error", err: errors.New("connection refused"), want: ErrorCodeUnmapped},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.err); got != tt.want {
				t.Errorf("Classify() = %q, want %q", got, tt.want)
			}
		})
	}
}
