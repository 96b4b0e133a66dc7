package domain

// Ingredient categories as returned by the catalog
const (
	CategoryBun   = "bun"
	CategorySauce = "sauce"
	CategoryMain  = "main"
)

// Order status values. The client compares them for equality only.
const (
	OrderStatusCreated = "created"
	OrderStatusPending = "pending"
	OrderStatusDone    = "done"
)

// BunPortions is how many times a bun is itemized in an order (top and bottom)
const BunPortions = 2

// Credential storage keys
const (
	CookieAccessToken   = "accessToken"
	StorageRefreshToken = "refreshToken"
	StorageResetFlag    = "resetPassword"
	ResetFlagValue      = "true"
)

// TokenExpiredMessage is the message the backend sends when the access token has expired
const TokenExpiredMessage = "jwt expired"
