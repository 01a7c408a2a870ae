package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"travel-booking/internal/data/entity"
	"travel-booking/internal/data/repository"
	"travel-booking/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSessions struct {
	repository.SessionRepository
	live map[uuid.UUID]uuid.UUID
}

func (f *fakeSessions) FindValidSession(_ context.Context, token uuid.UUID) (*entity.Session, error) {
	userID, ok := f.live[token]
	if !ok {
		return nil, nil
	}
	return &entity.Session{UserID: userID, Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type fakeUsers struct {
	repository.UserRepository
	users map[uuid.UUID]*entity.User
}

func (f *fakeUsers) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	return f.users[id], nil
}

// echo reports the identity the middleware put into the context.
func echo(w http.ResponseWriter, r *http.Request) {
	userID, _ := utils.GetUserIDFromContext(r.Context())
	role, _ := utils.GetRoleFromContext(r.Context())
	token, _ := utils.GetTokenFromContext(r.Context())
	utils.ResponseSuccess(w, "ok", map[string]string{
		"user_id": userID.String(),
		"role":    role,
		"token":   token,
	})
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) utils.Response {
	t.Helper()
	var resp utils.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestAPIKey(t *testing.T) {
	h := APIKey("s3cret", zaptest.NewLogger(t))(http.HandlerFunc(echo))

	tests := []struct {
		name string
		key  string
		want int
	}{
		{name: "missing", key: "", want: http.StatusForbidden},
		{name: "wrong", key: "nope", want: http.StatusForbidden},
		{name: "prefix of key", key: "s3c", want: http.StatusForbidden},
		{name: "valid", key: "s3cret", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
			if tt.key != "" {
				req.Header.Set(APIKeyHeader, tt.key)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestAuthSession(t *testing.T) {
	active := &entity.User{Role: entity.RoleAdmin, IsActive: true}
	active.ID = uuid.New()
	disabled := &entity.User{Role: entity.RoleCustomer, IsActive: false}
	disabled.ID = uuid.New()

	liveToken := uuid.New()
	disabledToken := uuid.New()

	sessions := &fakeSessions{live: map[uuid.UUID]uuid.UUID{liveToken: active.ID, disabledToken: disabled.ID}}
	users := &fakeUsers{users: map[uuid.UUID]*entity.User{active.ID: active, disabled.ID: disabled}}
	h := AuthSession(sessions, users, zaptest.NewLogger(t))(http.HandlerFunc(echo))

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{name: "no header", header: "", want: http.StatusUnauthorized},
		{name: "not bearer", header: "Basic " + liveToken.String(), want: http.StatusUnauthorized},
		{name: "malformed token", header: "Bearer abc", want: http.StatusUnauthorized},
		{name: "unknown session", header: "Bearer " + uuid.NewString(), want: http.StatusUnauthorized},
		{name: "inactive user", header: "Bearer " + disabledToken.String(), want: http.StatusUnauthorized},
		{name: "live session", header: "bearer " + liveToken.String(), want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/user", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			require.Equal(t, tt.want, rec.Code)

			resp := decode(t, rec)
			if tt.want != http.StatusOK {
				assert.False(t, resp.Status)
				return
			}
			data := resp.Data.(map[string]any)
			assert.Equal(t, active.ID.String(), data["user_id"])
			assert.Equal(t, "admin", data["role"])
			assert.Equal(t, liveToken.String(), data["token"])
		})
	}
}

func TestAdmin(t *testing.T) {
	h := Admin(zaptest.NewLogger(t))(http.HandlerFunc(echo))

	serve := func(ctx context.Context) int {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil).WithContext(ctx)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusUnauthorized, serve(context.Background()))
	assert.Equal(t, http.StatusForbidden, serve(utils.SetUserContext(context.Background(), uuid.New(), string(entity.RoleCustomer))))
	assert.Equal(t, http.StatusOK, serve(utils.SetUserContext(context.Background(), uuid.New(), string(entity.RoleAdmin))))
}

func TestRecover(t *testing.T) {
	h := Recover(zaptest.NewLogger(t))(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, decode(t, rec).Status)
}
