package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend persists cookies and local storage in one sqlite file so
// credentials survive between CLI invocations. It implements both
// CookieJar and LocalStorage.
type SQLiteBackend struct {
	DB  *sql.DB
	now func() time.Time
}

// OpenSQLite opens (creating if needed) the state database at dataSourceName
func OpenSQLite(ctx context.Context, dataSourceName string) (*SQLiteBackend, error) {
	db, err := sql.Open(sqliteDriverName, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open state db: %w", err)
	}
	// one connection keeps ":memory:" databases coherent and serializes writers
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping state db: %w", err)
	}

	b := &SQLiteBackend{DB: db, now: time.Now}
	if err := b.InitSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}

	slog.Debug(LogMsgStateOpened, "path", dataSourceName)
	return b, nil
}

// InitSchema creates the cookies and local_storage tables
func (b *SQLiteBackend) InitSchema(ctx context.Context) error {
	if _, err := b.DB.ExecContext(ctx, schemaSQL); err != nil {
		slog.Error(LogMsgSchemaInitFailed, "error", err)
		return fmt.Errorf("init state schema: %w", err)
	}
	return nil
}

// Close closes the underlying database
func (b *SQLiteBackend) Close() error {
	return b.DB.Close()
}

// Get returns the decoded cookie value; expired cookies are reported absent
func (b *SQLiteBackend) Get(ctx context.Context, name string) (string, bool, error) {
	var value string
	var expiresAt int64
	err := b.DB.QueryRowContext(ctx,
		`SELECT value, expires_at FROM cookies WHERE name = ?`, name,
	).Scan(&value, &expiresAt)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read cookie %s: %w", name, err)
	}

	if expiresAt != 0 && !b.now().Before(time.Unix(0, expiresAt)) {
		return "", false, nil
	}
	decoded, err := decodeCookieValue(value)
	if err != nil {
		return "", false, fmt.Errorf("decode cookie %s: %w", name, err)
	}
	return decoded, true, nil
}

// Set upserts a cookie, storing the value encoded
func (b *SQLiteBackend) Set(ctx context.Context, name, value string, opts CookieOptions) error {
	var expiresAt int64
	if exp := opts.expiry(b.now()); !exp.IsZero() {
		expiresAt = exp.UnixNano()
	}

	_, err := b.DB.ExecContext(ctx, `
		INSERT INTO cookies (name, value, path, expires_at, secure)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			value = excluded.value,
			path = excluded.path,
			expires_at = excluded.expires_at,
			secure = excluded.secure`,
		name, encodeCookieValue(value), pathOrDefault(opts.Path), expiresAt, opts.Secure,
	)
	if err != nil {
		return fmt.Errorf("write cookie %s: %w", name, err)
	}
	return nil
}

// Delete expires the cookie one second in the past
func (b *SQLiteBackend) Delete(ctx context.Context, name string) error {
	return b.Set(ctx, name, "", CookieOptions{Expires: b.now().Add(-expiredOffset)})
}

func (b *SQLiteBackend) GetItem(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := b.DB.QueryRowContext(ctx, `SELECT value FROM local_storage WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("read item %s: %w", key, err)
	}
	return value, true, nil
}

func (b *SQLiteBackend) SetItem(ctx context.Context, key, value string) error {
	_, err := b.DB.ExecContext(ctx, `
		INSERT INTO local_storage (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("write item %s: %w", key, err)
	}
	return nil
}

func (b *SQLiteBackend) RemoveItem(ctx context.Context, key string) error {
	if _, err := b.DB.ExecContext(ctx, `DELETE FROM local_storage WHERE key = ?`, key); err != nil {
		return fmt.Errorf("remove item %s: %w", key, err)
	}
	return nil
}
