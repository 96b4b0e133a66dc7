package session

// State is the auth session state
type State string

const (
	StateAnonymous     State = "anonymous"
	StateChecking      State = "checking"
	StateAuthenticated State = "authenticated"
)

// Log messages
const (
	LogMsgProbeAnonymous   = "Session probe resolved to anonymous"
	LogMsgProbeFailed      = "Session probe failed"
	LogMsgLoggedIn         = "Logged in"
	LogMsgRegistered       = "Registered"
	LogMsgLogoutCallFailed = "Logout call failed, clearing local credentials anyway"
	LogMsgLoggedOut        = "Logged out"
	LogMsgForcedAnonymous  = "Session forced to anonymous"
	LogMsgPasswordChanged  = "Password changed, session ended"
	LogMsgResetRequested   = "Password reset requested"
	LogMsgResetConfirmed   = "Password reset confirmed"
	LogMsgTransition       = "Session state changed"
	LogMsgRefreshFailed    = "Credentials could not be refreshed"
)
