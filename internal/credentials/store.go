package credentials

import (
	"context"
	"fmt"
	"sync"

	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/logger"
)

// Store is the session's credential context: the access token cookie, the
// refresh token in local storage and the password-reset workflow flag.
// Pair writes and clears hold one lock so readers never see an access token
// without the refresh token that was issued with it.
type Store struct {
	mu      sync.RWMutex
	cookies CookieJar
	storage LocalStorage
}

// NewStore creates a Store over the given cookie jar and local storage
func NewStore(cookies CookieJar, storage LocalStorage) *Store {
	return &Store{cookies: cookies, storage: storage}
}

// NewMemoryStore creates a Store that forgets everything on exit
func NewMemoryStore() *Store {
	return NewStore(NewMemoryCookieJar(), NewMemoryStorage())
}

// AccessToken returns the access token, or "" when none is stored
func (s *Store) AccessToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, _, err := s.cookies.Get(ctx, domain.CookieAccessToken)
	return token, err
}

// RefreshToken returns the refresh token, or "" when none is stored
func (s *Store) RefreshToken(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, _, err := s.storage.GetItem(ctx, domain.StorageRefreshToken)
	return token, err
}

// SavePair writes a freshly issued credential pair. The refresh token is
// written first so a failure never leaves a new access token paired with a
// stale refresh token. An empty refresh token leaves the stored one alone.
func (s *Store) SavePair(ctx context.Context, access, refresh string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if refresh != "" {
		if err := s.storage.SetItem(ctx, domain.StorageRefreshToken, refresh); err != nil {
			return fmt.Errorf("save refresh token: %w", err)
		}
	}
	if err := s.cookies.Set(ctx, domain.CookieAccessToken, access, CookieOptions{Path: DefaultCookiePath}); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}

	logger.FromContext(ctx).Debug(LogMsgCredentialsSaved)
	return nil
}

// Clear deletes the access cookie and removes the refresh token
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.cookies.Delete(ctx, domain.CookieAccessToken); err != nil {
		return fmt.Errorf("delete access token: %w", err)
	}
	if err := s.storage.RemoveItem(ctx, domain.StorageRefreshToken); err != nil {
		return fmt.Errorf("remove refresh token: %w", err)
	}

	logger.FromContext(ctx).Debug(LogMsgCredentialsClear)
	return nil
}

// AllowPasswordReset sets the local flag that unlocks reset confirmation
func (s *Store) AllowPasswordReset(ctx context.Context) error {
	return s.storage.SetItem(ctx, domain.StorageResetFlag, domain.ResetFlagValue)
}

// PasswordResetAllowed reports whether a reset request preceded this call
func (s *Store) PasswordResetAllowed(ctx context.Context) (bool, error) {
	v, ok, err := s.storage.GetItem(ctx, domain.StorageResetFlag)
	if err != nil {
		return false, err
	}
	return ok && v == domain.ResetFlagValue, nil
}

// ClearPasswordReset removes the reset flag
func (s *Store) ClearPasswordReset(ctx context.Context) error {
	return s.storage.RemoveItem(ctx, domain.StorageResetFlag)
}
