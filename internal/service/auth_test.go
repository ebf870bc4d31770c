// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-console-client/internal/apiclient"
	"github.com/MKhiriev/go-console-client/internal/authz"
	"github.com/MKhiriev/go-console-client/internal/config"
	"github.com/MKhiriev/go-console-client/internal/events"
	"github.com/MKhiriev/go-console-client/internal/logger"
	"github.com/MKhiriev/go-console-client/internal/mock"
	"github.com/MKhiriev/go-console-client/models"
)

// newTestAuthSvc: хелпер для создания authService с моками
func newTestAuthSvc(t *testing.T, ctrl *gomock.Controller) (*authService, *mock.MockAPIClient, *mock.MockSessionStore, *authz.Tracker) {
	t.Helper()
	api := mock.NewMockAPIClient(ctrl)
	session := mock.NewMockSessionStore(ctrl)
	tracker := authz.NewTracker(0)

	svc := NewAuthService(api, session, tracker, config.Defaults().API, logger.Nop()).(*authService)
	return svc, api, session, tracker
}

func dataResponse(t *testing.T, v any) *apiclient.Response {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return &apiclient.Response{Status: http.StatusOK, Data: raw}
}

// ── Login ────────────────────────────────────────────────────────────────────

func TestAuthService_Login_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, session, tracker := newTestAuthSvc(t, ctrl)
	ctx := context.Background()

	result := models.AuthResult{
		AccessToken:  "a1",
		RefreshToken: "r1",
		User:         &models.User{ID: "u1", Email: "a@example.com", AuthzVersion: 7},
		Session:      &models.Session{ID: "s1"},
	}

	gomock.InOrder(
		api.EXPECT().Request(ctx, http.MethodPost, "/auth/login", models.LoginRequest{Email: "a@example.com", Password: "pw"}, gomock.Any()).
			Return(dataResponse(t, result), nil),
		session.EXPECT().SaveTokens(ctx, models.TokenPair{AccessToken: "a1", RefreshToken: "r1"}).Return(nil),
		session.EXPECT().SaveProfile(ctx, result.Profile()).Return(nil),
	)

	profile, err := svc.Login(ctx, "a@example.com", "pw")

	require.NoError(t, err)
	assert.Equal(t, "u1", profile.User.ID)
	assert.Equal(t, int64(7), tracker.Current())
}

func TestAuthService_Login_EmptyCredentials(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _ := newTestAuthSvc(t, ctrl)

	_, err := svc.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrEmptyCredentials)

	_, err = svc.Login(context.Background(), "a@example.com", "")
	assert.ErrorIs(t, err, ErrEmptyCredentials)
}

func TestAuthService_Login_Rejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _, tracker := newTestAuthSvc(t, ctrl)

	apiErr := &apiclient.APIError{Kind: apiclient.KindUnauthorized, Status: http.StatusUnauthorized, Message: "invalid credentials"}
	api.EXPECT().Request(gomock.Any(), http.MethodPost, "/auth/login", gomock.Any(), gomock.Any()).Return(nil, apiErr)

	_, err := svc.Login(context.Background(), "a@example.com", "bad")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrLogin)
	assert.ErrorIs(t, err, apiclient.ErrUnauthorized)
	assert.Equal(t, int64(0), tracker.Current())
}

func TestAuthService_Login_NoAccessToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _, _ := newTestAuthSvc(t, ctrl)

	api.EXPECT().Request(gomock.Any(), http.MethodPost, "/auth/login", gomock.Any(), gomock.Any()).
		Return(dataResponse(t, models.AuthResult{RefreshToken: "r1"}), nil)

	_, err := svc.Login(context.Background(), "a@example.com", "pw")

	assert.ErrorIs(t, err, ErrLogin)
}

func TestAuthService_Login_SaveTokensFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, session, _ := newTestAuthSvc(t, ctrl)

	api.EXPECT().Request(gomock.Any(), http.MethodPost, "/auth/login", gomock.Any(), gomock.Any()).
		Return(dataResponse(t, models.AuthResult{AccessToken: "a1", RefreshToken: "r1"}), nil)
	session.EXPECT().SaveTokens(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	_, err := svc.Login(context.Background(), "a@example.com", "pw")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

// ── Logout ───────────────────────────────────────────────────────────────────

func TestAuthService_Logout_RevokesAndClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, session, tracker := newTestAuthSvc(t, ctrl)
	tracker.Set(3)

	gomock.InOrder(
		session.EXPECT().RefreshToken(gomock.Any()).Return("r1", nil),
		api.EXPECT().Request(gomock.Any(), http.MethodPost, "/auth/logout", models.LogoutRequest{RefreshToken: "r1"}).
			Return(&apiclient.Response{Status: http.StatusNoContent}, nil),
		session.EXPECT().Clear(gomock.Any()).Return(nil),
	)

	require.NoError(t, svc.Logout(context.Background()))
	assert.Equal(t, int64(0), tracker.Current())
}

func TestAuthService_Logout_BackendFailureStillClears(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, session, _ := newTestAuthSvc(t, ctrl)

	session.EXPECT().RefreshToken(gomock.Any()).Return("r1", nil)
	api.EXPECT().Request(gomock.Any(), http.MethodPost, "/auth/logout", gomock.Any()).
		Return(nil, &apiclient.APIError{Kind: apiclient.KindNetwork})
	session.EXPECT().Clear(gomock.Any()).Return(nil)

	assert.NoError(t, svc.Logout(context.Background()))
}

func TestAuthService_Logout_WithoutRefreshTokenSkipsBackend(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, session, _ := newTestAuthSvc(t, ctrl)

	session.EXPECT().RefreshToken(gomock.Any()).Return("", nil)
	session.EXPECT().Clear(gomock.Any()).Return(nil)

	assert.NoError(t, svc.Logout(context.Background()))
}

func TestAuthService_Logout_ClearFails(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, session, _ := newTestAuthSvc(t, ctrl)

	session.EXPECT().RefreshToken(gomock.Any()).Return("", nil)
	session.EXPECT().Clear(gomock.Any()).Return(errors.New("locked"))

	assert.Error(t, svc.Logout(context.Background()))
}

// ── Me / RestoreSession ──────────────────────────────────────────────────────

func TestAuthService_Me(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, session, tracker := newTestAuthSvc(t, ctrl)

	profile := models.Profile{User: &models.User{ID: "u1", AuthzVersion: 9}}
	api.EXPECT().Request(gomock.Any(), http.MethodGet, "/auth/me", nil).Return(dataResponse(t, profile), nil)
	session.EXPECT().SaveProfile(gomock.Any(), profile).Return(nil)

	got, err := svc.Me(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "u1", got.User.ID)
	assert.Equal(t, int64(9), tracker.Current())
}

func TestAuthService_Me_NoUser(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, _, _ := newTestAuthSvc(t, ctrl)

	api.EXPECT().Request(gomock.Any(), http.MethodGet, "/auth/me", nil).Return(dataResponse(t, models.Profile{}), nil)

	_, err := svc.Me(context.Background())

	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestAuthService_RestoreSession(t *testing.T) {
	tests := []struct {
		name        string
		profile     models.Profile
		ok          bool
		err         error
		wantErr     error
		wantVersion int64
	}{
		{name: "cached", profile: models.Profile{User: &models.User{ID: "u1", AuthzVersion: 4}}, ok: true, wantVersion: 4},
		{name: "nothing cached", wantErr: ErrNotAuthenticated},
		{name: "storage error", err: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc, _, session, tracker := newTestAuthSvc(t, ctrl)
			session.EXPECT().Profile(gomock.Any()).Return(tt.profile, tt.ok, tt.err)

			got, err := svc.RestoreSession(context.Background())

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.err != nil:
				assert.Error(t, err)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.profile, got)
			}
			assert.Equal(t, tt.wantVersion, tracker.Current())
		})
	}
}

// ── Event handlers ───────────────────────────────────────────────────────────

func TestAuthService_HandleVersionOutdated_RefetchesProfile(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, session, tracker := newTestAuthSvc(t, ctrl)
	tracker.Set(1)

	profile := models.Profile{User: &models.User{ID: "u1", AuthzVersion: 2}}
	api.EXPECT().Request(gomock.Any(), http.MethodGet, "/auth/me", nil).Return(dataResponse(t, profile), nil)
	session.EXPECT().SaveProfile(gomock.Any(), profile).Return(nil)

	svc.HandleVersionOutdated(context.Background(), events.VersionOutdated{ServerVersion: 2, CurrentVersion: 1})
	svc.Wait()

	assert.Equal(t, int64(2), tracker.Current())
}

func TestAuthService_HandleVersionOutdated_RetriesAfterFailedRefetch(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, api, session, tracker := newTestAuthSvc(t, ctrl)
	tracker.Set(1)
	ev := events.VersionOutdated{ServerVersion: 2, CurrentVersion: 1}

	profile := models.Profile{User: &models.User{ID: "u1", AuthzVersion: 2}}
	gomock.InOrder(
		api.EXPECT().Request(gomock.Any(), http.MethodGet, "/auth/me", nil).
			Return(nil, &apiclient.APIError{Kind: apiclient.KindServer, Status: http.StatusBadGateway}),
		api.EXPECT().Request(gomock.Any(), http.MethodGet, "/auth/me", nil).Return(dataResponse(t, profile), nil),
	)
	session.EXPECT().SaveProfile(gomock.Any(), profile).Return(nil)

	svc.HandleVersionOutdated(context.Background(), ev)
	svc.Wait()
	assert.Equal(t, int64(1), tracker.Current())

	// версия всё ещё устарела, следующий ответ снова поднимает событие
	_, outdated := tracker.Observe(2)
	require.True(t, outdated)

	svc.HandleVersionOutdated(context.Background(), ev)
	svc.Wait()
	assert.Equal(t, int64(2), tracker.Current())
}

func TestAuthService_HandleVersionOutdated_IgnoresOtherPayloads(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, _ := newTestAuthSvc(t, ctrl)

	// no Request expected
	svc.HandleVersionOutdated(context.Background(), "not an event")
	svc.Wait()
}

func TestAuthService_HandleProfileUpdated(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc, _, _, tracker := newTestAuthSvc(t, ctrl)

	svc.HandleProfileUpdated(context.Background(), events.ProfileUpdated{User: &models.User{AuthzVersion: 5}})
	assert.Equal(t, int64(5), tracker.Current())

	svc.HandleProfileUpdated(context.Background(), events.ProfileUpdated{})
	assert.Equal(t, int64(5), tracker.Current())
}
