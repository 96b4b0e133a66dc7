package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// API errors
	ErrMsgGenericAPI      = "API request failed"
	ErrMsgTokenExpired    = TokenExpiredMessage
	ErrMsgRefreshFailed   = "token refresh failed"
	ErrMsgTransport       = "transport failure"
	ErrMsgUnauthorized    = "unauthorized"
	ErrMsgNoRefreshToken  = "no refresh token stored"
	ErrMsgInvalidResponse = "invalid response body"

	// Order errors
	ErrMsgOrderNotFound      = "order not found"
	ErrMsgSubmissionInFlight = "an order submission is already in progress"
	ErrMsgIncompleteOrder    = "an order needs a bun and at least one filling"
	ErrMsgLoadIngredients    = "failed to load ingredients"
	ErrMsgLoadFeed           = "failed to load feed"
	ErrMsgLoadUserOrders     = "failed to load orders"
	ErrMsgLoadOrder          = "failed to load order"
	ErrMsgPlaceOrder         = "failed to place order"
	ErrMsgIngredientNotFound = "ingredient not found"

	// Session errors
	ErrMsgLoginFailed         = "login failed"
	ErrMsgRegisterFailed      = "registration failed"
	ErrMsgUpdateProfileFailed = "failed to update profile"
	ErrMsgResetNotRequested   = "password reset was not requested"
	ErrMsgPasswordReset       = "password reset failed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	ErrTokenExpired    = errors.New(ErrMsgTokenExpired)
	ErrRefreshFailed   = errors.New(ErrMsgRefreshFailed)
	ErrTransport       = errors.New(ErrMsgTransport)
	ErrUnauthorized    = errors.New(ErrMsgUnauthorized)
	ErrNoRefreshToken  = errors.New(ErrMsgNoRefreshToken)
	ErrInvalidResponse = errors.New(ErrMsgInvalidResponse)

	ErrOrderNotFound      = errors.New(ErrMsgOrderNotFound)
	ErrSubmissionInFlight = errors.New(ErrMsgSubmissionInFlight)
	ErrIncompleteOrder    = errors.New(ErrMsgIncompleteOrder)
	ErrIngredientNotFound = errors.New(ErrMsgIngredientNotFound)

	ErrResetNotRequested = errors.New(ErrMsgResetNotRequested)

	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
