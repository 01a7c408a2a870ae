package adaptor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"travel-booking/internal/dto/request"
	"travel-booking/internal/dto/response"
	"travel-booking/internal/trxview"
	"travel-booking/internal/usecase"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeTransactionService struct {
	usecase.TransactionService

	lastList   *request.TransactionListRequest
	lastStatus *request.UpdateStatusRequest
	lastID     string
	err        error
}

func (f *fakeTransactionService) GetAll(_ context.Context, req *request.TransactionListRequest) (*response.TransactionListResponse, error) {
	f.lastList = req
	if f.err != nil {
		return nil, f.err
	}
	return &response.TransactionListResponse{
		PaginatedResponse: *response.NewPaginatedResponse([]response.TransactionResponse{}, req.Page, trxview.AdminPageSize, 0),
		FilterActive:      req.Filter.Active(),
		EmptyMessage:      req.Filter.EmptyMessage(),
	}, nil
}

func (f *fakeTransactionService) UpdateStatus(_ context.Context, _, id string, req *request.UpdateStatusRequest) (*response.TransactionResponse, error) {
	f.lastID = id
	f.lastStatus = req
	if f.err != nil {
		return nil, f.err
	}
	return &response.TransactionResponse{ID: id, Status: req.Status}, nil
}

func newTransactionRouter(t *testing.T, svc usecase.TransactionService, userID uuid.UUID) *chi.Mux {
	t.Helper()
	h := NewTransactionHandler(svc, time.UTC, zaptest.NewLogger(t))

	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			if userID != uuid.Nil {
				req = req.WithContext(utils.SetUserContext(req.Context(), userID, "admin"))
			}
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/admin/transactions", h.GetAll)
	r.Put("/admin/transactions/{id}/status", h.UpdateStatus)
	r.Post("/transactions", h.Create)
	return r
}

func TestTransactionHandler_GetAllParsesQuery(t *testing.T) {
	svc := &fakeTransactionService{}
	router := newTransactionRouter(t, svc, uuid.New())

	req := httptest.NewRequest(http.MethodGet,
		"/admin/transactions?status=waiting_confirmation&search=ab12&startDate=2024-03-01&sortBy=oldest&page=3", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.lastList)
	assert.Equal(t, "waiting_confirmation", svc.lastList.Filter.Status)
	assert.Equal(t, "ab12", svc.lastList.Filter.Search)
	assert.Equal(t, trxview.SortOldest, svc.lastList.Filter.Sort)
	require.NotNil(t, svc.lastList.Filter.StartDate)
	assert.Equal(t, "2024-03-01", svc.lastList.Filter.StartDate.Format("2006-01-02"))
	assert.Nil(t, svc.lastList.Filter.EndDate)
	assert.Equal(t, 3, svc.lastList.Page)

	var body struct {
		Status bool `json:"status"`
		Data   struct {
			FilterActive bool   `json:"filter_active"`
			EmptyMessage string `json:"empty_message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Status)
	assert.True(t, body.Data.FilterActive)
	assert.NotEmpty(t, body.Data.EmptyMessage)
}

func TestTransactionHandler_GetAllDefaultsOnGarbage(t *testing.T) {
	svc := &fakeTransactionService{}
	router := newTransactionRouter(t, svc, uuid.New())

	req := httptest.NewRequest(http.MethodGet, "/admin/transactions?status=bogus&sortBy=sideways&page=-2&startDate=yesterday", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, trxview.DefaultFilter(), svc.lastList.Filter)
	assert.Equal(t, 1, svc.lastList.Page)
}

func TestTransactionHandler_UpdateStatus(t *testing.T) {
	id := uuid.NewString()

	t.Run("decided", func(t *testing.T) {
		svc := &fakeTransactionService{}
		router := newTransactionRouter(t, svc, uuid.New())

		body := `{"status":"rejected","rejection_reason":"blurry"}`
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/transactions/"+id+"/status", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id, svc.lastID)
		require.NotNil(t, svc.lastStatus.Reason)
		assert.Equal(t, "blurry", *svc.lastStatus.Reason)
	})

	t.Run("unknown status never reaches the service", func(t *testing.T) {
		svc := &fakeTransactionService{}
		router := newTransactionRouter(t, svc, uuid.New())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/transactions/"+id+"/status", strings.NewReader(`{"status":"cancelled"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, svc.lastStatus)
	})

	t.Run("service refuses", func(t *testing.T) {
		svc := &fakeTransactionService{err: fmt.Errorf("cannot decide a transaction in status pending")}
		router := newTransactionRouter(t, svc, uuid.New())

		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/admin/transactions/"+id+"/status", strings.NewReader(`{"status":"success"}`)))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTransactionHandler_CreateRequiresUser(t *testing.T) {
	router := newTransactionRouter(t, &fakeTransactionService{}, uuid.Nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(`{}`)))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("transaction not found"), want: http.StatusNotFound},
		{err: fmt.Errorf("unauthorized: invalid email or password"), want: http.StatusUnauthorized},
		{err: fmt.Errorf("forbidden: transaction belongs to another user"), want: http.StatusForbidden},
		{err: fmt.Errorf("email already registered"), want: http.StatusConflict},
		{err: fmt.Errorf("validation failed: name is required"), want: http.StatusBadRequest},
		{err: fmt.Errorf("invalid transaction ID"), want: http.StatusBadRequest},
		{err: fmt.Errorf("cannot upload proof for a success transaction"), want: http.StatusBadRequest},
		{err: fmt.Errorf("save proof: %w", storage.ErrFileTooLarge), want: http.StatusRequestEntityTooLarge},
		{err: errors.New("connection reset"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			rec := httptest.NewRecorder()
			handleServiceError(rec, zaptest.NewLogger(t), tt.err, "test")
			assert.Equal(t, tt.want, rec.Code)

			var resp utils.Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Status)
			if tt.want == http.StatusForbidden {
				assert.Equal(t, "transaction belongs to another user", resp.Message)
			}
			if tt.want == http.StatusInternalServerError {
				assert.Equal(t, "Internal server error", resp.Message)
			}
		})
	}
}
