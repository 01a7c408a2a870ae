package adaptor

import (
	"errors"
	"net/http"

	"travel-booking/internal/usecase"
	"travel-booking/pkg/storage"
	"travel-booking/pkg/utils"

	"go.uber.org/zap"
)

// multipart framing allowance on top of the image limit
const formOverhead = 64 << 10

type UploadHandler struct {
	service  usecase.UploadService
	maxBytes int64
	log      *zap.Logger
}

func NewUploadHandler(service usecase.UploadService, maxBytes int64, log *zap.Logger) *UploadHandler {
	return &UploadHandler{
		service:  service,
		maxBytes: maxBytes,
		log:      log.With(zap.String("handler", "upload")),
	}
}

// UploadImage handles POST /api/v1/upload-image with a multipart "image" field
func (h *UploadHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	userID, _, ok := currentUser(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+formOverhead)

	file, header, err := r.FormFile("image")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			utils.ResponseTooLarge(w, storage.ErrFileTooLarge.Error())
			return
		}
		utils.ResponseBadRequest(w, "image field is required", nil)
		return
	}
	defer file.Close()

	if header.Size > h.maxBytes {
		utils.ResponseTooLarge(w, storage.ErrFileTooLarge.Error())
		return
	}

	uploaded, err := h.service.UploadImage(r.Context(), userID, header.Filename, file)
	if err != nil {
		handleServiceError(w, h.log, err, "upload image")
		return
	}

	utils.ResponseCreated(w, "Image uploaded", uploaded)
}
