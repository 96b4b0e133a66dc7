package bootstrap

import "time"

// Log messages for logger initialization
const (
	LogMsgLoggingInitialized  = "Logging initialized"
	LogMsgStarting            = "Starting burger client"
	LogMsgConfigurationLoaded = "Configuration loaded"
)

// =============================================================================
// Application wiring
// =============================================================================

const (
	// FeedWatchWorkers is the worker pool size behind the feed watcher
	FeedWatchWorkers = 1

	// FeedWatchQueueSize bounds polls waiting behind a slow one
	FeedWatchQueueSize = 1

	// ShutdownTimeout bounds App.Close
	ShutdownTimeout = 5 * time.Second
)

const (
	LogMsgEventSystemInitialized     = "Event system initialized"
	LogMsgMetricsCollectorRegistered = "Metrics collector registered"
	LogMsgStateStoreOpened           = "Credential store opened"
	LogMsgWarmupFailed               = "Warm-up step failed"
	LogMsgFeedWatchStarted           = "Feed watch started"
	LogMsgFeedWatchStopped           = "Feed watch stopped"
	LogMsgCloseFailed                = "Failed to close state store"

	ErrMsgOpenStateStore = "failed to open credential store"
)

// =============================================================================
// Shutdown Messages
// =============================================================================

const (
	LogMsgShuttingDownServer   = "Shutting down server..."
	LogMsgServerForcedShutdown = "Server forced to shutdown"
	LogMsgServerStopped        = "Server stopped"
)
