package burgerapi

// Resource paths, relative to the configured base URL
const (
	PathIngredients    = "/ingredients"
	PathFeed           = "/orders/all"
	PathOrders         = "/orders"
	PathRegister       = "/auth/register"
	PathLogin          = "/auth/login"
	PathLogout         = "/auth/logout"
	PathUser           = "/auth/user"
	PathPasswordReset  = "/password-reset"
	PathPasswordSubmit = "/password-reset/reset"
)

// Log messages
const (
	LogMsgOrderPlaced = "Order placed"
	LogMsgLoggedOut   = "Logged out on backend"
)
