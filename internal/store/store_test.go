package store

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"travel-booking/internal/client"
	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func envelope(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]any{"status": code < 300, "message": http.StatusText(code), "data": data})
}

func newTestStore(t *testing.T) (*Store, *client.Session) {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/login", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, response.AuthResponse{
			Token:     "tok",
			ExpiresAt: time.Now().Add(time.Hour),
			User:      response.UserResponse{ID: "u1", Name: "Dewi", Role: "customer"},
		})
	})
	mux.HandleFunc("/api/v1/my-transactions", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, response.TransactionListResponse{
			PaginatedResponse: *response.NewPaginatedResponse([]response.TransactionResponse{{ID: "t1", Status: "pending"}}, 1, 5, 1),
		})
	})
	mux.HandleFunc("/api/v1/carts", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusUnauthorized, nil)
	})
	mux.HandleFunc("/api/v1/categories", func(w http.ResponseWriter, r *http.Request) {
		envelope(w, http.StatusOK, []response.CategoryResponse{{ID: "c1", Name: "Pantai"}})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	log := zaptest.NewLogger(t)
	session := client.NewSession(&client.MemoryTokenStore{}, log)
	c := client.New(client.Config{BaseURL: srv.URL + "/api/v1", APIKey: "k"}, session, log)

	s := New(client.NewServices(c), session, log)
	t.Cleanup(s.Close)
	return s, session
}

func TestStore_LoginThenUnauthorizedResetsUserSlices(t *testing.T) {
	ctx := context.Background()
	s, session := newTestStore(t)

	require.NoError(t, s.Login(ctx, &request.LoginRequest{Email: "dewi@example.com", Password: "secret1"}))
	require.NotNil(t, s.Auth.State().Data.User)
	assert.Equal(t, "Dewi", s.Auth.State().Data.User.Name)

	require.NoError(t, s.FetchMyTransactions(ctx, url.Values{}))
	require.NotNil(t, s.Transaction.State().Data.List)

	require.NoError(t, s.FetchCategories(ctx))

	err := s.FetchCart(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	assert.False(t, session.Active())
	assert.Nil(t, s.Auth.State().Data.User)
	assert.Nil(t, s.Transaction.State().Data.List)
	assert.Nil(t, s.Cart.State().Data)

	// public catalog data is not user-owned
	assert.Len(t, s.Categories.State().Data, 1)
}

func TestReplaceAndRemoveByID(t *testing.T) {
	id := func(c response.CategoryResponse) string { return c.ID }
	items := []response.CategoryResponse{{ID: "a", Name: "A"}, {ID: "b", Name: "B"}}

	replaced := replaceByID(items, response.CategoryResponse{ID: "b", Name: "B2"}, id)
	assert.Equal(t, "B2", replaced[1].Name)
	assert.Equal(t, "B", items[1].Name, "input untouched")

	removed := removeByID(items, "a", id)
	assert.Len(t, removed, 1)
	assert.Equal(t, "b", removed[0].ID)
}
