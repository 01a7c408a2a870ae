package wire

import (
	"travel-booking/internal/adaptor"

	"github.com/go-chi/chi/v5"
)

func wireUpload(r chi.Router, h *adaptor.UploadHandler, g guards) {
	r.With(g.auth).Post("/upload-image", h.UploadImage)
}
