package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/osse101/BurgerClient_Go/internal/burgerapi"
	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/event"
	"github.com/osse101/BurgerClient_Go/internal/logger"
)

// API is the part of the backend surface the session drives
type API interface {
	User(ctx context.Context) (domain.User, error)
	Login(ctx context.Context, req burgerapi.LoginRequest) (burgerapi.AuthResponse, error)
	Register(ctx context.Context, req burgerapi.RegisterRequest) (burgerapi.AuthResponse, error)
	Logout(ctx context.Context) error
	UpdateUser(ctx context.Context, req burgerapi.UpdateUserRequest) (domain.User, error)
	ForgotPassword(ctx context.Context, req burgerapi.ForgotPasswordRequest) error
	ResetPassword(ctx context.Context, req burgerapi.ResetPasswordRequest) error
}

// Credentials is the local credential storage the session writes and clears
type Credentials interface {
	SavePair(ctx context.Context, access, refresh string) error
	Clear(ctx context.Context) error
	AllowPasswordReset(ctx context.Context) error
	PasswordResetAllowed(ctx context.Context) (bool, error)
	ClearPasswordReset(ctx context.Context) error
}

// Snapshot is a copy of the session
type Snapshot struct {
	State  State         `json:"state"`
	User   *domain.User  `json:"user,omitempty"`
	Status domain.Status `json:"status"`
}

// Session tracks whether the caller is signed in and who they are
type Session struct {
	api   API
	creds Credentials
	bus   event.Bus

	mu     sync.RWMutex
	state  State
	user   *domain.User
	status domain.Status
}

// New creates an anonymous session
func New(api API, creds Credentials, bus event.Bus) *Session {
	return &Session{
		api:    api,
		creds:  creds,
		bus:    bus,
		state:  StateAnonymous,
		status: domain.Status{Phase: domain.PhaseIdle},
	}
}

// Subscribe registers the session for refresh failures on bus
func (s *Session) Subscribe(bus event.Bus) {
	bus.Subscribe(event.AuthRefreshFailed, s.HandleRefreshFailed)
}

// HandleRefreshFailed ends the session once no valid credential remains
func (s *Session) HandleRefreshFailed(ctx context.Context, evt event.Event) error {
	if payload, err := evt.RefreshFailedPayload(); err == nil {
		logger.FromContext(ctx).Info(LogMsgRefreshFailed, "reason", payload.Reason)
	}
	return s.ForceAnonymous(ctx)
}

// State returns the current session state
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// User returns the profile of the signed-in user
func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Snapshot returns a copy of the session
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{State: s.state, Status: s.status}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}

// transition moves to state with user and publishes the change
func (s *Session) transition(ctx context.Context, to State, user *domain.User, status domain.Status) {
	s.mu.Lock()
	from := s.state
	s.state = to
	s.user = user
	s.status = status
	s.mu.Unlock()

	if from == to {
		return
	}
	email := ""
	if user != nil {
		email = user.Email
	}
	logger.FromContext(ctx).Debug(LogMsgTransition, "from", from, "to", to)
	event.PublishBestEffort(ctx, s.bus, event.NewSessionChangedEvent(string(from), string(to), email))
}

func (s *Session) setStatus(status domain.Status) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}

// Probe fetches the current profile to find out whether stored credentials
// are still valid. Being signed out is a normal outcome, not an error.
func (s *Session) Probe(ctx context.Context) error {
	log := logger.FromContext(ctx)
	s.transition(ctx, StateChecking, nil, domain.Pending())

	user, err := s.api.User(ctx)
	if err != nil {
		if signedOut(err) {
			log.Debug(LogMsgProbeAnonymous, "reason", err)
			s.transition(ctx, StateAnonymous, nil, domain.Fulfilled())
			return nil
		}
		log.Warn(LogMsgProbeFailed, "error", err)
		s.transition(ctx, StateAnonymous, nil, domain.Rejected(err, domain.ErrMsgGenericAPI))
		return err
	}

	s.transition(ctx, StateAuthenticated, &user, domain.Fulfilled())
	return nil
}

// signedOut reports whether err only means that no valid credential exists
func signedOut(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) ||
		errors.Is(err, domain.ErrRefreshFailed) ||
		errors.Is(err, domain.ErrTokenExpired) ||
		errors.Is(err, domain.ErrNoRefreshToken)
}

// Login signs in and stores the issued credentials
func (s *Session) Login(ctx context.Context, req burgerapi.LoginRequest) (domain.User, error) {
	s.setStatus(domain.Pending())
	resp, err := s.api.Login(ctx, req)
	if err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgLoginFailed))
		return domain.User{}, err
	}
	if err := s.signIn(ctx, resp); err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgLoginFailed))
		return domain.User{}, err
	}
	logger.FromContext(ctx).Info(LogMsgLoggedIn, "email", resp.User.Email)
	return resp.User, nil
}

// Register creates an account and signs in with it
func (s *Session) Register(ctx context.Context, req burgerapi.RegisterRequest) (domain.User, error) {
	s.setStatus(domain.Pending())
	resp, err := s.api.Register(ctx, req)
	if err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgRegisterFailed))
		return domain.User{}, err
	}
	if err := s.signIn(ctx, resp); err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgRegisterFailed))
		return domain.User{}, err
	}
	logger.FromContext(ctx).Info(LogMsgRegistered, "email", resp.User.Email)
	return resp.User, nil
}

func (s *Session) signIn(ctx context.Context, resp burgerapi.AuthResponse) error {
	if resp.AccessToken == "" {
		return fmt.Errorf("%w: missing access token", domain.ErrInvalidResponse)
	}
	if err := s.creds.SavePair(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return err
	}
	user := resp.User
	s.transition(ctx, StateAuthenticated, &user, domain.Fulfilled())
	return nil
}

// Logout tells the backend to drop the refresh token, then clears local
// credentials. The backend call failing does not block the local cleanup.
func (s *Session) Logout(ctx context.Context) error {
	log := logger.FromContext(ctx)
	s.setStatus(domain.Pending())

	if err := s.api.Logout(ctx); err != nil {
		log.Warn(LogMsgLogoutCallFailed, "error", err)
	}
	if err := s.endSession(ctx); err != nil {
		return err
	}
	log.Info(LogMsgLoggedOut)
	return nil
}

// ForceAnonymous clears local credentials without calling the backend
func (s *Session) ForceAnonymous(ctx context.Context) error {
	if err := s.endSession(ctx); err != nil {
		return err
	}
	logger.FromContext(ctx).Info(LogMsgForcedAnonymous)
	return nil
}

func (s *Session) endSession(ctx context.Context) error {
	if err := s.creds.Clear(ctx); err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgGenericAPI))
		return err
	}
	s.transition(ctx, StateAnonymous, nil, domain.Fulfilled())
	return nil
}

// UpdateProfile changes profile fields. Changing the password ends the
// session locally because the backend invalidates it.
func (s *Session) UpdateProfile(ctx context.Context, req burgerapi.UpdateUserRequest) (domain.User, error) {
	s.setStatus(domain.Pending())
	user, err := s.api.UpdateUser(ctx, req)
	if err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgUpdateProfileFailed))
		return domain.User{}, err
	}

	if req.HasPassword() {
		if err := s.endSession(ctx); err != nil {
			return domain.User{}, err
		}
		logger.FromContext(ctx).Info(LogMsgPasswordChanged)
		return user, nil
	}

	s.transition(ctx, StateAuthenticated, &user, domain.Fulfilled())
	return user, nil
}

// ForgotPassword requests a reset code and unlocks reset confirmation
func (s *Session) ForgotPassword(ctx context.Context, email string) error {
	s.setStatus(domain.Pending())
	if err := s.api.ForgotPassword(ctx, burgerapi.ForgotPasswordRequest{Email: email}); err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgPasswordReset))
		return err
	}
	if err := s.creds.AllowPasswordReset(ctx); err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgPasswordReset))
		return err
	}
	s.setStatus(domain.Fulfilled())
	logger.FromContext(ctx).Info(LogMsgResetRequested)
	return nil
}

// CanResetPassword reports whether a reset request was made on this device
func (s *Session) CanResetPassword(ctx context.Context) (bool, error) {
	return s.creds.PasswordResetAllowed(ctx)
}

// ResetPassword confirms a reset with the mailed code. It is refused unless
// ForgotPassword succeeded first.
func (s *Session) ResetPassword(ctx context.Context, password, token string) error {
	allowed, err := s.creds.PasswordResetAllowed(ctx)
	if err != nil {
		return err
	}
	if !allowed {
		s.setStatus(domain.Rejected(domain.ErrResetNotRequested, domain.ErrMsgPasswordReset))
		return domain.ErrResetNotRequested
	}

	s.setStatus(domain.Pending())
	if err := s.api.ResetPassword(ctx, burgerapi.ResetPasswordRequest{Password: password, Token: token}); err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgPasswordReset))
		return err
	}
	if err := s.creds.ClearPasswordReset(ctx); err != nil {
		s.setStatus(domain.Rejected(err, domain.ErrMsgPasswordReset))
		return err
	}
	s.setStatus(domain.Fulfilled())
	logger.FromContext(ctx).Info(LogMsgResetConfirmed)
	return nil
}
