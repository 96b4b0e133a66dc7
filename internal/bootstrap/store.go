package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/osse101/BurgerClient_Go/internal/credentials"
)

// OpenCredentialStore opens the sqlite state file holding the access cookie
// and local storage. The closer releases the database.
func OpenCredentialStore(ctx context.Context, path string) (*credentials.Store, io.Closer, error) {
	backend, err := credentials.OpenSQLite(ctx, path)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", ErrMsgOpenStateStore, err)
	}
	slog.Debug(LogMsgStateStoreOpened, "path", path)
	return credentials.NewStore(backend, backend), backend, nil
}
