package apiclient

import (
	"errors"
	"net/http"

	"github.com/osse101/BurgerClient_Go/internal/domain"
)

// APIError is a failure the backend declared: a non-2xx status with an
// optional message body, or a 2xx body whose success flag is false.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return domain.ErrMsgGenericAPI
	}
	return e.Message
}

// UserMessage implements domain.Messager
func (e *APIError) UserMessage() string {
	return e.Error()
}

// Is reports expiry and auth failures as their domain sentinels
func (e *APIError) Is(target error) bool {
	switch target {
	case domain.ErrTokenExpired:
		return e.Message == domain.TokenExpiredMessage
	case domain.ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// NewAPIError builds an APIError, substituting the generic message when the
// body carried none
func NewAPIError(status int, message string) *APIError {
	if message == "" {
		message = domain.ErrMsgGenericAPI
	}
	return &APIError{Status: status, Message: message}
}

// RefreshError is the terminal error of a call whose token refresh failed.
// It matches domain.ErrRefreshFailed and prints the refresh failure's message.
type RefreshError struct {
	Err error
}

func (e *RefreshError) Error() string {
	if e.Err == nil {
		return domain.ErrMsgRefreshFailed
	}
	return e.Err.Error()
}

// UserMessage implements domain.Messager
func (e *RefreshError) UserMessage() string {
	return domain.Message(e.Err, domain.ErrMsgRefreshFailed)
}

func (e *RefreshError) Unwrap() error {
	return e.Err
}

func (e *RefreshError) Is(target error) bool {
	return target == domain.ErrRefreshFailed
}

// IsRefreshFailure reports whether err ended a call because the credential
// pair could not be renewed
func IsRefreshFailure(err error) bool {
	return errors.Is(err, domain.ErrRefreshFailed)
}
