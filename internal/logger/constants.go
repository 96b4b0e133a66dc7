package logger

// Log Level String Values
const (
	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"
)

// Log Format String Values
const (
	LogFormatJSON = "json"
	LogFormatText = "text"
)

// Log Attribute Keys
const (
	AttrKeyService     = "service"
	AttrKeyVersion     = "version"
	AttrKeyEnvironment = "environment"
	AttrKeyRequestID   = "request_id"
)

// HeaderRequestID carries the request id on outbound API calls
const HeaderRequestID = "X-Request-ID"

// Session log files
const (
	// DefaultRetention is how many earlier session files are kept
	DefaultRetention = 9

	// SessionFileTimestamp names files so they sort chronologically
	SessionFileTimestamp = "2006-01-02_15-04-05"
	SessionFilePattern   = "session_%s.log"
	SessionFileExtension = ".log"

	dirPermission  = 0o755
	filePermission = 0o644
)

// Log messages
const (
	ErrMsgCreateLogDir       = "failed to create log directory"
	ErrMsgOpenLogFile        = "failed to open log file"
	LogMsgDeleteOldLogFailed = "Failed to delete old log file"
	LogMsgSessionLogOpened   = "Session log opened"
)
