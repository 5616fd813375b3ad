// Copyright (c) 2025 Kavio
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"errors"
	"testing"

	"kavio/cli/internal/apierr"
	"kavio/cli/internal/model"
	"kavio/cli/internal/notify"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAPI is a hand-rolled backend double. Only the behavior each test pins
// down is configured; everything else answers zero values.
type stubAPI struct {
	loginUser model.User
	loginErr  error

	registerErr error

	updateUser model.User
	updateErr  error

	onUnauthorized func()
}

func (s *stubAPI) Login(ctx context.Context, creds model.Credentials) (model.User, error) {
	if s.loginErr != nil {
		if apierr.IsUnauthorized(s.loginErr) && s.onUnauthorized != nil {
			s.onUnauthorized()
		}
		return model.User{}, s.loginErr
	}
	return s.loginUser, nil
}

func (s *stubAPI) Register(ctx context.Context, user model.User) (model.User, error) {
	if s.registerErr != nil {
		return model.User{}, s.registerErr
	}
	user.ID = 99
	return user, nil
}

func (s *stubAPI) UpdateProfile(ctx context.Context, user model.User) (model.User, error) {
	if s.updateErr != nil {
		if apierr.IsUnauthorized(s.updateErr) && s.onUnauthorized != nil {
			s.onUnauthorized()
		}
		return model.User{}, s.updateErr
	}
	return s.updateUser, nil
}

func (s *stubAPI) ListClients(context.Context) ([]model.Client, error)    { return nil, nil }
func (s *stubAPI) GetClient(context.Context, int64) (model.Client, error) { return model.Client{}, nil }
func (s *stubAPI) CreateClient(context.Context, model.Client) (model.Client, error) {
	return model.Client{}, nil
}
func (s *stubAPI) UpdateClient(context.Context, model.Client) (model.Client, error) {
	return model.Client{}, nil
}
func (s *stubAPI) DeleteClient(context.Context, int64) error { return nil }

func (s *stubAPI) ListOpportunities(context.Context) ([]model.Opportunity, error) { return nil, nil }
func (s *stubAPI) GetOpportunity(context.Context, int64) (model.Opportunity, error) {
	return model.Opportunity{}, nil
}
func (s *stubAPI) CreateOpportunity(context.Context, model.Opportunity) (model.Opportunity, error) {
	return model.Opportunity{}, nil
}
func (s *stubAPI) UpdateOpportunity(context.Context, model.Opportunity) (model.Opportunity, error) {
	return model.Opportunity{}, nil
}
func (s *stubAPI) DeleteOpportunity(context.Context, int64) error { return nil }

func (s *stubAPI) SetUnauthorizedHandler(fn func()) { s.onUnauthorized = fn }

func newTestService(api *stubAPI) (*Service, *Store, *notify.Recorder) {
	store := NewStore()
	rec := notify.NewRecorder()
	return NewService(api, store, rec), store, rec
}

func TestLoginSuccessOverwritesSession(t *testing.T) {
	api := &stubAPI{loginUser: model.User{
		ID: 3, Name: "Grace", Handle: "grace@kavio.io", Photo: "http://img/g.png", Token: "tok-3",
	}}
	svc, store, rec := newTestService(api)

	ok := svc.Login(context.Background(), model.Credentials{Handle: "grace@kavio.io", Password: "hunter22"})
	require.True(t, ok)

	cur := store.Current()
	assert.Equal(t, int64(3), cur.UserID)
	assert.Equal(t, "Grace", cur.DisplayName)
	assert.Equal(t, "grace@kavio.io", cur.LoginHandle)
	assert.Equal(t, "tok-3", cur.Token)

	require.Len(t, rec.Notifications(), 1)
	assert.Equal(t, notify.KindSuccess, rec.Notifications()[0].Kind)
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	cases := []struct {
		name string
		err  error
	}{
		{"bad credentials", apierr.New(apierr.Unauthorized, "session expired or invalid")},
		{"server error", apierr.StatusError(500, "boom")},
		{"network down", apierr.Wrap(apierr.Network, "request failed", errors.New("connection refused"))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, store, rec := newTestService(&stubAPI{loginErr: tc.err})

			ok := svc.Login(context.Background(), model.Credentials{Handle: "x", Password: "y"})
			require.False(t, ok)
			assert.True(t, store.Current().Anonymous())

			// exactly one error notification regardless of the cause,
			// with the same wording every time
			ns := rec.Notifications()
			require.Len(t, ns, 1)
			assert.Equal(t, notify.KindError, ns[0].Kind)
			assert.Equal(t, "User credentials are incorrect", ns[0].Message)
		})
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc, store, rec := newTestService(&stubAPI{})
	store.Set(Session{UserID: 1, Token: "tok"})

	svc.Logout()
	assert.True(t, store.Current().Anonymous())

	svc.Logout()
	assert.True(t, store.Current().Anonymous())
	assert.Empty(t, rec.Notifications(), "logout should not notify")
}

func TestExpireClearsSessionAndNotifiesOnce(t *testing.T) {
	svc, store, rec := newTestService(&stubAPI{})
	store.Set(Session{UserID: 1, Token: "tok"})

	svc.Expire()

	assert.True(t, store.Current().Anonymous())
	ns := rec.ByKind(notify.KindError)
	require.Len(t, ns, 1)
	assert.Equal(t, "Session expired, please log in again", ns[0].Message)
}

func TestExpireOnAnonymousSessionIsSilent(t *testing.T) {
	svc, _, rec := newTestService(&stubAPI{})

	svc.Expire()
	assert.Empty(t, rec.Notifications())
}

func TestUnauthorizedResponseForcesLogout(t *testing.T) {
	api := &stubAPI{updateErr: apierr.New(apierr.Unauthorized, "session expired or invalid")}
	svc, store, rec := newTestService(api)
	store.Set(Session{UserID: 1, DisplayName: "Ada", Token: "stale"})

	err := svc.UpdateProfile(context.Background(), model.User{Name: "Ada L."})
	require.Error(t, err)
	assert.True(t, apierr.IsUnauthorized(err))

	// the 401 hook cleared the session and produced the single
	// "session expired" notification; UpdateProfile added nothing
	assert.True(t, store.Current().Anonymous())
	ns := rec.Notifications()
	require.Len(t, ns, 1)
	assert.Equal(t, "Session expired, please log in again", ns[0].Message)
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name     string
		password string
		confirm  string
		wantErr  bool
	}{
		{"valid", "longenough", "longenough", false},
		{"too short", "short", "short", true},
		{"mismatch", "longenough", "different9", true},
		{"empty", "", "", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc, _, rec := newTestService(&stubAPI{})

			err := svc.Register(context.Background(), model.User{
				Name: "Ada", Handle: "ada@kavio.io", Password: tc.password,
			}, tc.confirm)

			if tc.wantErr {
				require.Error(t, err)
				assert.Equal(t, apierr.ValidationFailed, apierr.KindOf(err))
				require.Len(t, rec.ByKind(notify.KindError), 1)
			} else {
				require.NoError(t, err)
				require.Len(t, rec.ByKind(notify.KindSuccess), 1)
			}
		})
	}
}

func TestUpdateProfileRefreshesSessionKeepingToken(t *testing.T) {
	api := &stubAPI{updateUser: model.User{ID: 5, Name: "Ada Lovelace", Handle: "ada@kavio.io"}}
	svc, store, _ := newTestService(api)
	store.Set(Session{UserID: 5, DisplayName: "Ada", LoginHandle: "ada@kavio.io", Token: "tok-5"})

	require.NoError(t, svc.UpdateProfile(context.Background(), model.User{Name: "Ada Lovelace"}))

	cur := store.Current()
	assert.Equal(t, "Ada Lovelace", cur.DisplayName)
	assert.Equal(t, "tok-5", cur.Token, "token must survive a profile update")
}
