package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func writeEnvelope(w http.ResponseWriter, code int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{
		"status":  code < 300,
		"message": message,
		"data":    data,
	})
}

func newTestClient(t *testing.T, h http.HandlerFunc, onUnauthorized func()) (*Client, *Session) {
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	log := zaptest.NewLogger(t)
	session := NewSession(&MemoryTokenStore{}, log)
	c := New(Config{
		BaseURL:        srv.URL + "/api/v1",
		APIKey:         "secret",
		Timeout:        2 * time.Second,
		OnUnauthorized: onUnauthorized,
	}, session, log)
	return c, session
}

func TestClient_SendsAPIKeyAndBearer(t *testing.T) {
	var gotKey, gotAuth, gotPath string
	c, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get(APIKeyHeader)
		gotAuth = r.Header.Get("Authorization")
		gotPath = r.URL.Path
		writeEnvelope(w, http.StatusOK, "success", []response.CategoryResponse{{ID: "c1", Name: "Beach"}})
	}, nil)

	cats, err := NewCategories(c).All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "secret", gotKey)
	assert.Empty(t, gotAuth)
	assert.Equal(t, "/api/v1/categories", gotPath)
	require.Len(t, cats, 1)
	assert.Equal(t, "Beach", cats[0].Name)

	require.NoError(t, session.Begin(Identity{Token: "tok-1"}))
	_, err = NewCategories(c).All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer tok-1", gotAuth)
}

func TestClient_UnauthorizedEndsSession(t *testing.T) {
	redirected := 0
	c, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnauthorized, "Invalid or expired session", nil)
	}, func() { redirected++ })

	require.NoError(t, session.Begin(Identity{Token: "stale"}))

	var ended bool
	session.Subscribe(func(_ Identity, active bool) { ended = !active })

	_, err := NewTransactions(c).Get(context.Background(), "trx-1")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, session.Active())
	assert.True(t, ended)
	assert.Equal(t, 1, redirected)
}

func TestClient_APIErrors(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/missing") {
			writeEnvelope(w, http.StatusNotFound, "transaction not found", nil)
			return
		}
		writeEnvelope(w, http.StatusBadRequest, "cannot decide a transaction in status pending", nil)
	}, nil)

	_, err := NewTransactions(c).Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "transaction not found", Message(err))

	_, err = NewTransactions(c).UpdateStatus(context.Background(), "x", &request.UpdateStatusRequest{Status: "success"})
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_ListPassesQuery(t *testing.T) {
	var got url.Values
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		writeEnvelope(w, http.StatusOK, "success", response.TransactionListResponse{
			PaginatedResponse: *response.NewPaginatedResponse([]response.TransactionResponse{{ID: "t1", Status: "pending"}}, 2, 5, 6),
			FilterActive:      true,
		})
	}, nil)

	q := url.Values{"status": {"pending"}, "page": {"2"}}
	list, err := NewTransactions(c).Mine(context.Background(), q)
	require.NoError(t, err)

	assert.Equal(t, "pending", got.Get("status"))
	assert.Equal(t, "2", got.Get("page"))
	assert.Equal(t, 2, list.Pagination.TotalPages)
	assert.True(t, list.FilterActive)
	require.Len(t, list.Data, 1)
	assert.Equal(t, "t1", list.Data[0].ID)
}

func TestAuth_LoginBeginsSession(t *testing.T) {
	c, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req request.LoginRequest
		json.NewDecoder(r.Body).Decode(&req)
		if req.Password != "rahasia123" {
			writeEnvelope(w, http.StatusUnauthorized, "invalid credentials", nil)
			return
		}
		writeEnvelope(w, http.StatusOK, "Login successful", response.AuthResponse{
			Token:     "tok-9",
			ExpiresAt: time.Now().Add(time.Hour),
			User:      response.UserResponse{ID: "u1", Name: "Sari", Role: "admin"},
		})
	}, nil)

	auth := NewAuth(c)
	_, err := auth.Login(context.Background(), &request.LoginRequest{Email: "sari@example.com", Password: "salah"})
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.False(t, session.Active())

	out, err := auth.Login(context.Background(), &request.LoginRequest{Email: "sari@example.com", Password: "rahasia123"})
	require.NoError(t, err)
	assert.Equal(t, "tok-9", out.Token)

	token, ok := session.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok-9", token)
	assert.True(t, session.IsAdmin())
}

func TestUploads_Image(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile(UploadField)
		if err != nil {
			writeEnvelope(w, http.StatusBadRequest, "image field is required", nil)
			return
		}
		defer file.Close()
		body, _ := io.ReadAll(file)
		writeEnvelope(w, http.StatusCreated, "Image uploaded", response.UploadResponse{
			URL: "https://cdn.example.com/" + header.Filename + "?n=" + string(rune('0'+len(body))),
		})
	}, nil)

	u, err := NewUploads(c).Image(context.Background(), "proof.png", strings.NewReader("12345"))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/proof.png?n=5", u)
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "", Message(nil))
	assert.Equal(t, "boom", Message(&APIError{StatusCode: 500, Message: "boom"}))
	assert.Contains(t, Message(ErrUnauthorized), "login")
	assert.Equal(t, "plain", Message(errors.New("plain")))
}

func TestSession_RestoreAndExpiry(t *testing.T) {
	log := zaptest.NewLogger(t)
	store := FileTokenStore{Path: filepath.Join(t.TempDir(), "nested", "session.json")}

	s := NewSession(store, log)
	require.NoError(t, s.Begin(Identity{Token: "tok", ExpiresAt: time.Now().Add(time.Hour)}))

	restored := NewSession(store, log)
	require.NoError(t, restored.Restore())
	token, ok := restored.Token()
	assert.True(t, ok)
	assert.Equal(t, "tok", token)

	require.NoError(t, restored.End())
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, store.Save(Identity{Token: "old", ExpiresAt: time.Now().Add(-time.Minute)}))
	expired := NewSession(store, log)
	require.NoError(t, expired.Restore())
	assert.False(t, expired.Active())
}

func TestSession_EndIsIdempotent(t *testing.T) {
	s := NewSession(nil, zaptest.NewLogger(t))
	calls := 0
	unsubscribe := s.Subscribe(func(Identity, bool) { calls++ })

	require.NoError(t, s.End())
	assert.Equal(t, 0, calls)

	require.NoError(t, s.Begin(Identity{Token: "x"}))
	require.NoError(t, s.End())
	require.NoError(t, s.End())
	assert.Equal(t, 2, calls)

	unsubscribe()
	require.NoError(t, s.Begin(Identity{Token: "y"}))
	assert.Equal(t, 2, calls)
}
