package worker

// Log messages - worker pool
const (
	LogMsgWorkerJobFailed = "Worker job failed"
	LogMsgJobDropped      = "Job queue full, dropping job"
)

// Log messages - feed watch
const (
	LogMsgFeedPollFailed = "Feed poll failed"
	LogMsgFeedChanged    = "Feed changed"
)
