package stubapi

import "time"

// Defaults
const (
	DefaultAccessTTL = 20 * time.Minute
	DefaultCookTime  = 15 * time.Second
	FeedLimit        = 50
	maxRequestBody   = 1 << 20
	bearerPrefix     = "Bearer "
)

// Response messages, matching the production backend where it has one
const (
	MsgJWTExpired        = "jwt expired"
	MsgUnauthorised      = "You should be authorised"
	MsgInvalidToken      = "Token is invalid"
	MsgUserExists        = "User already exists"
	MsgEmailTaken        = "User with such email already exists"
	MsgInvalidLogin      = "Invalid credentials"
	MsgLoggedOut         = "successful logout"
	MsgResetSent         = "Reset email sent"
	MsgResetDone         = "Password reset successful"
	MsgResetInvalid      = "Incorrect reset token"
	MsgUnknownIngredient = "One or more ids provided are incorrect"
	MsgInvalidRequest    = "Invalid request body"
	MsgInvalidNumber     = "Order number must be a positive integer"
	MsgNotFound          = "Not found"
)

// Log messages
const (
	LogMsgServerStarting   = "Stub backend starting"
	LogMsgRequestStarted   = "Request started"
	LogMsgRequestCompleted = "Request completed"
	LogMsgResetCodeIssued  = "Password reset code issued"
	LogMsgOrderAccepted    = "Order accepted"
	LogMsgSeedLoaded       = "Ingredient seed loaded"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
)
