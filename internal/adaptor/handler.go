package adaptor

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

type Handler struct {
	Auth        *AuthHandler
	User        *UserHandler
	Catalog     *CatalogHandler
	Cart        *CartHandler
	Transaction *TransactionHandler
	Review      *ReviewHandler
	Upload      *UploadHandler
}

func NewHandler(service *usecase.Service, config *utils.Config, log *zap.Logger) *Handler {
	return &Handler{
		Auth:        NewAuthHandler(service.Auth, log),
		User:        NewUserHandler(service.User, log),
		Catalog:     NewCatalogHandler(service, log),
		Cart:        NewCartHandler(service.Cart, log),
		Transaction: NewTransactionHandler(service.Transaction, config.App.Location, log),
		Review:      NewReviewHandler(service.Review, log),
		Upload:      NewUploadHandler(service.Upload, config.Upload.MaxBytes, log),
	}
}

// decodeJSON reads the body into dst and validates it. It writes the 400
// response itself and returns false when the request is unusable.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.ResponseBadRequest(w, "Invalid request body", nil)
		return false
	}

	if validationErrors := utils.ValidateStruct(dst); len(validationErrors) > 0 {
		utils.ResponseBadRequest(w, "Validation failed", validationErrors)
		return false
	}

	return true
}

// currentUser returns the caller set by the auth middleware
func currentUser(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	userID, ok := utils.GetUserIDFromContext(r.Context())
	if !ok {
		utils.ResponseUnauthorized(w, "Authentication required")
		return "", "", false
	}
	role, _ := utils.GetRoleFromContext(r.Context())
	return userID.String(), role, true
}

// handleServiceError maps service errors onto HTTP statuses by their message
func handleServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, storage.ErrFileTooLarge):
		log.Warn(operation+" failed - too large", zap.Error(err))
		utils.ResponseTooLarge(w, errMsg)

	case strings.Contains(errMsg, "not found"):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case strings.Contains(errMsg, "unauthorized"):
		log.Warn(operation+" failed - unauthorized", zap.Error(err))
		utils.ResponseUnauthorized(w, strings.TrimPrefix(errMsg, "unauthorized: "))

	case strings.Contains(errMsg, "forbidden"):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, strings.TrimPrefix(errMsg, "forbidden: "))

	case strings.Contains(errMsg, "already"):
		log.Warn(operation+" failed - already exists", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case strings.Contains(errMsg, "validation failed"),
		strings.Contains(errMsg, "invalid"),
		strings.Contains(errMsg, "cannot"):
		log.Warn(operation+" failed - bad request", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}

// HealthCheck handles GET /health
func HealthCheck(started time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		utils.ResponseSuccess(w, "OK", map[string]any{
			"uptime": time.Since(started).Round(time.Second).String(),
		})
	}
}
