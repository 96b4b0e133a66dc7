package event

// Event schema versioning
const (
	// EventSchemaVersion is the current event schema version
	EventSchemaVersion = "1.0"
)

// Log message constants
const (
	LogMsgHandlerErrorFormat = "encountered %d errors while handling event %s: %v"
	LogMsgPublishFailed      = "Event publish failed"
)

// Metadata keys
const (
	MetaKeySource    = "source"
	MetaKeyRequestID = "request_id"
)
