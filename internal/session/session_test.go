package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/BurgerClient_Go/internal/apiclient"
	"github.com/osse101/BurgerClient_Go/internal/burgerapi"
	"github.com/osse101/BurgerClient_Go/internal/credentials"
	"github.com/osse101/BurgerClient_Go/internal/domain"
	"github.com/osse101/BurgerClient_Go/internal/event"
)

var alice = domain.User{Email: "alice@example.com", Name: "Alice"}

type fixture struct {
	api     *MockAPI
	store   *credentials.Store
	bus     *event.MemoryBus
	session *Session
	changes []event.SessionChangedPayloadV1
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		api:   new(MockAPI),
		store: credentials.NewMemoryStore(),
		bus:   event.NewMemoryBus(),
	}
	f.session = New(f.api, f.store, f.bus)
	f.session.Subscribe(f.bus)
	f.bus.Subscribe(event.SessionChanged, func(_ context.Context, evt event.Event) error {
		p, err := evt.SessionChangedPayload()
		if err != nil {
			return err
		}
		f.changes = append(f.changes, p)
		return nil
	})
	return f
}

func (f *fixture) signIn(t *testing.T) {
	t.Helper()
	require.NoError(t, f.store.SavePair(context.Background(), "Bearer a1", "r1"))
	f.api.On("User", mock.Anything).Return(alice, nil).Once()
	require.NoError(t, f.session.Probe(context.Background()))
}

func tokens(t *testing.T, store *credentials.Store) (string, string) {
	t.Helper()
	ctx := context.Background()
	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	refresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)
	return access, refresh
}

func TestNew_StartsAnonymous(t *testing.T) {
	s := New(new(MockAPI), credentials.NewMemoryStore(), nil)

	assert.Equal(t, StateAnonymous, s.State())
	_, ok := s.User()
	assert.False(t, ok)
	assert.Equal(t, domain.PhaseIdle, s.Snapshot().Status.Phase)
}

func TestProbe(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		wantState State
		wantErr   bool
		wantPhase domain.Phase
	}{
		{name: "authenticated", wantState: StateAuthenticated, wantPhase: domain.PhaseFulfilled},
		{name: "unauthorized is a normal outcome", err: apiclient.NewAPIError(http.StatusUnauthorized, "You should be authorised"), wantState: StateAnonymous, wantPhase: domain.PhaseFulfilled},
		{name: "forbidden is a normal outcome", err: apiclient.NewAPIError(http.StatusForbidden, ""), wantState: StateAnonymous, wantPhase: domain.PhaseFulfilled},
		{name: "refresh failure is a normal outcome", err: &apiclient.RefreshError{Err: errors.New("Token is invalid")}, wantState: StateAnonymous, wantPhase: domain.PhaseFulfilled},
		{name: "transport failure surfaces", err: fmt.Errorf("%w: connection refused", domain.ErrTransport), wantState: StateAnonymous, wantErr: true, wantPhase: domain.PhaseRejected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.api.On("User", mock.Anything).Return(alice, tt.err)

			err := f.session.Probe(context.Background())

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			snap := f.session.Snapshot()
			assert.Equal(t, tt.wantState, snap.State)
			assert.Equal(t, tt.wantPhase, snap.Status.Phase)
			if tt.wantState == StateAuthenticated {
				require.NotNil(t, snap.User)
				assert.Equal(t, alice, *snap.User)
			} else {
				assert.Nil(t, snap.User)
			}
		})
	}
}

func TestProbe_PublishesTransitions(t *testing.T) {
	f := newFixture(t)
	f.api.On("User", mock.Anything).Return(alice, nil)

	require.NoError(t, f.session.Probe(context.Background()))

	require.Len(t, f.changes, 2)
	assert.Equal(t, "anonymous", f.changes[0].From)
	assert.Equal(t, "checking", f.changes[0].To)
	assert.Equal(t, "checking", f.changes[1].From)
	assert.Equal(t, "authenticated", f.changes[1].To)
	assert.Equal(t, alice.Email, f.changes[1].Email)
}

func TestLogin_StoresCredentials(t *testing.T) {
	f := newFixture(t)
	req := burgerapi.LoginRequest{Email: alice.Email, Password: "secret"}
	f.api.On("Login", mock.Anything, req).Return(burgerapi.AuthResponse{
		Envelope:     burgerapi.Envelope{Success: true},
		AccessToken:  "Bearer a1",
		RefreshToken: "r1",
		User:         alice,
	}, nil)

	user, err := f.session.Login(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, alice, user)
	assert.Equal(t, StateAuthenticated, f.session.State())
	access, refresh := tokens(t, f.store)
	assert.Equal(t, "Bearer a1", access)
	assert.Equal(t, "r1", refresh)
}

func TestLogin_Failure(t *testing.T) {
	f := newFixture(t)
	f.api.On("Login", mock.Anything, mock.Anything).Return(burgerapi.AuthResponse{}, apiclient.NewAPIError(http.StatusUnauthorized, "email or password are incorrect"))

	_, err := f.session.Login(context.Background(), burgerapi.LoginRequest{Email: alice.Email, Password: "bad"})

	require.Error(t, err)
	snap := f.session.Snapshot()
	assert.Equal(t, StateAnonymous, snap.State)
	assert.Equal(t, domain.PhaseRejected, snap.Status.Phase)
	assert.Equal(t, "email or password are incorrect", snap.Status.Error)
	access, _ := tokens(t, f.store)
	assert.Empty(t, access)
}

func TestLogin_MissingAccessToken(t *testing.T) {
	f := newFixture(t)
	f.api.On("Login", mock.Anything, mock.Anything).Return(burgerapi.AuthResponse{Envelope: burgerapi.Envelope{Success: true}, User: alice}, nil)

	_, err := f.session.Login(context.Background(), burgerapi.LoginRequest{Email: alice.Email, Password: "x"})

	assert.ErrorIs(t, err, domain.ErrInvalidResponse)
	assert.Equal(t, StateAnonymous, f.session.State())
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	req := burgerapi.RegisterRequest{Email: alice.Email, Name: alice.Name, Password: "secret"}
	f.api.On("Register", mock.Anything, req).Return(burgerapi.AuthResponse{
		Envelope:     burgerapi.Envelope{Success: true},
		AccessToken:  "Bearer a1",
		RefreshToken: "r1",
		User:         alice,
	}, nil)

	user, err := f.session.Register(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, alice, user)
	assert.Equal(t, StateAuthenticated, f.session.State())
}

func TestLogout(t *testing.T) {
	tests := []struct {
		name      string
		serverErr error
	}{
		{name: "server accepts"},
		{name: "server call fails", serverErr: fmt.Errorf("%w: timeout", domain.ErrTransport)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.signIn(t)
			f.api.On("Logout", mock.Anything).Return(tt.serverErr)

			require.NoError(t, f.session.Logout(context.Background()))

			assert.Equal(t, StateAnonymous, f.session.State())
			_, ok := f.session.User()
			assert.False(t, ok)
			access, refresh := tokens(t, f.store)
			assert.Empty(t, access)
			assert.Empty(t, refresh)
			f.api.AssertCalled(t, "Logout", mock.Anything)
		})
	}
}

func TestUpdateProfile(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	renamed := domain.User{Email: alice.Email, Name: "Alicia"}
	req := burgerapi.UpdateUserRequest{Name: "Alicia"}
	f.api.On("UpdateUser", mock.Anything, req).Return(renamed, nil)

	user, err := f.session.UpdateProfile(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, renamed, user)
	assert.Equal(t, StateAuthenticated, f.session.State())
	got, ok := f.session.User()
	assert.True(t, ok)
	assert.Equal(t, "Alicia", got.Name)
}

func TestUpdateProfile_PasswordEndsSession(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	req := burgerapi.UpdateUserRequest{Password: "new-secret"}
	f.api.On("UpdateUser", mock.Anything, req).Return(alice, nil)

	_, err := f.session.UpdateProfile(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, StateAnonymous, f.session.State())
	access, refresh := tokens(t, f.store)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	f.api.AssertNotCalled(t, "Logout", mock.Anything)
}

func TestUpdateProfile_FailureKeepsSession(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)
	f.api.On("UpdateUser", mock.Anything, mock.Anything).Return(domain.User{}, apiclient.NewAPIError(http.StatusBadRequest, ""))

	_, err := f.session.UpdateProfile(context.Background(), burgerapi.UpdateUserRequest{Password: "x"})

	require.Error(t, err)
	snap := f.session.Snapshot()
	assert.Equal(t, StateAuthenticated, snap.State)
	assert.Equal(t, domain.ErrMsgGenericAPI, snap.Status.Error)
	access, _ := tokens(t, f.store)
	assert.Equal(t, "Bearer a1", access)
}

func TestRefreshFailedEvent_ForcesAnonymous(t *testing.T) {
	f := newFixture(t)
	f.signIn(t)

	require.NoError(t, f.bus.Publish(context.Background(), event.NewRefreshFailedEvent(context.Background(), "Token is invalid")))

	assert.Equal(t, StateAnonymous, f.session.State())
	access, refresh := tokens(t, f.store)
	assert.Empty(t, access)
	assert.Empty(t, refresh)
	f.api.AssertNotCalled(t, "Logout", mock.Anything)
}

func TestPasswordResetWorkflow(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.api.On("ForgotPassword", mock.Anything, burgerapi.ForgotPasswordRequest{Email: alice.Email}).Return(nil)
	f.api.On("ResetPassword", mock.Anything, burgerapi.ResetPasswordRequest{Password: "new", Token: "code"}).Return(nil)

	err := f.session.ResetPassword(ctx, "new", "code")
	assert.ErrorIs(t, err, domain.ErrResetNotRequested)
	f.api.AssertNotCalled(t, "ResetPassword", mock.Anything, mock.Anything)

	require.NoError(t, f.session.ForgotPassword(ctx, alice.Email))
	allowed, err := f.session.CanResetPassword(ctx)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, f.session.ResetPassword(ctx, "new", "code"))
	allowed, err = f.session.CanResetPassword(ctx)
	require.NoError(t, err)
	assert.False(t, allowed)
}

func TestResetPassword_FailureKeepsFlag(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.AllowPasswordReset(ctx))
	f.api.On("ResetPassword", mock.Anything, mock.Anything).Return(apiclient.NewAPIError(http.StatusForbidden, "Incorrect reset token"))

	err := f.session.ResetPassword(ctx, "new", "wrong")

	require.Error(t, err)
	assert.Equal(t, "Incorrect reset token", f.session.Snapshot().Status.Error)
	allowed, err := f.session.CanResetPassword(ctx)
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestForgotPassword_FailureLeavesFlagUnset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.api.On("ForgotPassword", mock.Anything, mock.Anything).Return(fmt.Errorf("%w: offline", domain.ErrTransport))

	require.Error(t, f.session.ForgotPassword(ctx, alice.Email))

	allowed, err := f.session.CanResetPassword(ctx)
	require.NoError(t, err)
	assert.False(t, allowed)
}
