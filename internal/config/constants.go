package config

import "time"

// Defaults used when the environment does not override them
const (
	DefaultAPIBaseURL       = "https://norma.nomoreparties.space/api"
	DefaultStateDB          = "burger_state.db"
	DefaultServiceName      = "burger-client"
	DefaultRequestTimeout   = 10 * time.Second
	DefaultOrderCacheSize   = 128
	DefaultOrderCacheTTL    = 5 * time.Minute
	DefaultFeedPollInterval = 15 * time.Second
	DefaultStubPort         = 3001
	DefaultStubAccessTTL    = 20 * time.Minute
	DefaultLogRetention     = 9
)
