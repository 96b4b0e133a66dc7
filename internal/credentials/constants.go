package credentials

import "time"

// DefaultCookiePath is used when CookieOptions leaves Path empty
const DefaultCookiePath = "/"

// expiredOffset is how far in the past Delete sets a cookie's expiry
const expiredOffset = time.Second

// SQLite schema
const (
	sqliteDriverName = "sqlite"

	schemaSQL = `
	CREATE TABLE IF NOT EXISTS cookies (
		name       TEXT PRIMARY KEY,
		value      TEXT NOT NULL,
		path       TEXT NOT NULL DEFAULT '/',
		expires_at INTEGER NOT NULL DEFAULT 0,
		secure     INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS local_storage (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
)

// Log messages
const (
	LogMsgStateOpened      = "Credential state opened"
	LogMsgSchemaInitFailed = "Error creating credential schema"
	LogMsgCredentialsSaved = "Credential pair saved"
	LogMsgCredentialsClear = "Credentials cleared"
)
