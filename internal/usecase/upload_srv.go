package usecase

import (
	"context"
	"io"

	"travel-booking/internal/dto/response"
	"travel-booking/pkg/storage"

	"go.uber.org/zap"
)

type UploadService interface {
	UploadImage(ctx context.Context, userID, filename string, r io.Reader) (*response.UploadResponse, error)
}

type uploadService struct {
	storage storage.Storage
	log     *zap.Logger
}

func NewUploadService(s storage.Storage, log *zap.Logger) UploadService {
	return &uploadService{
		storage: s,
		log:     log.With(zap.String("service", "upload")),
	}
}

// UploadImage returns storage.ErrNotImage, storage.ErrFileTooLarge or
// storage.ErrEmptyFile unwrapped so handlers can pick the status code.
func (s *uploadService) UploadImage(ctx context.Context, userID, filename string, r io.Reader) (*response.UploadResponse, error) {
	url, err := s.storage.Save(ctx, filename, r)
	if err != nil {
		s.log.Warn("Image upload rejected",
			zap.Error(err),
			zap.String("user_id", userID),
			zap.String("filename", filename),
		)
		return nil, err
	}

	s.log.Info("Image uploaded", zap.String("user_id", userID), zap.String("url", url))
	return &response.UploadResponse{URL: url}, nil
}
