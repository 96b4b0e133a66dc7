package orders

import "time"

// Defaults for the lookup-by-number cache
const (
	DefaultCacheSize = 128
	DefaultCacheTTL  = 5 * time.Minute
)

// LookupTimeout bounds a shared lookup by number once detached from its callers
const LookupTimeout = 30 * time.Second

// DefaultBoardLimit caps each column of the status board
const DefaultBoardLimit = 20

// Log messages
const (
	LogMsgFeedLoaded         = "Feed loaded"
	LogMsgUserOrdersLoaded   = "User orders loaded"
	LogMsgOrderFetched       = "Order fetched by number"
	LogMsgOrderFromView      = "Order served from local view"
	LogMsgResponseSuperseded = "Discarding superseded response"
	LogMsgFetchFailed        = "Order fetch failed"
	LogMsgPlacedOrderRecord  = "Recorded placed order"
	LogMsgUserOrdersCleared  = "User orders cleared"
)

// resource names used for request sequencing
const (
	resourceFeed  = "feed"
	resourceUser  = "user_orders"
	resourceOrder = "order"
)
