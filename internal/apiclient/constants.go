package apiclient

import "time"

// Header names and values
const (
	HeaderContentType   = "Content-Type"
	HeaderAuthorization = "authorization"
	ContentTypeJSON     = "application/json;charset=utf-8"
)

// PathRefreshToken is the token exchange resource
const PathRefreshToken = "/auth/token"

// DefaultTimeout applies when NewClient is given a zero timeout
const DefaultTimeout = 10 * time.Second

// maxResponseBody caps how much of a response body is read
const maxResponseBody = 8 << 20

// Log messages
const (
	LogMsgRequestSent      = "API request"
	LogMsgRequestFailed    = "API request failed"
	LogMsgTokenExpired     = "Access token expired, refreshing"
	LogMsgTokenRefreshed   = "Access token refreshed"
	LogMsgRefreshFailed    = "Token refresh failed"
	LogMsgRetryingRequest  = "Retrying request with refreshed token"
	LogMsgCredentialsSaved = "Credentials stored"
)
