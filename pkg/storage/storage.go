// Package storage keeps uploaded images, either on Cloudinary or on the
// local disk.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"travel-booking/pkg/utils"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrNotImage     = errors.New("invalid file: only image files are allowed")
	ErrFileTooLarge = errors.New("invalid file: image exceeds the size limit")
	ErrEmptyFile    = errors.New("invalid file: file is empty")
)

// Storage saves an image and returns the URL it is served from.
type Storage interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
}

// Sniff reads the whole image, enforcing the byte limit and checking the
// content is an image. It returns the bytes and the detected MIME type.
func Sniff(r io.Reader, maxBytes int64) ([]byte, *mimetype.MIME, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxBytes+1))
	if err != nil {
		return nil, nil, fmt.Errorf("read upload: %w", err)
	}
	if len(data) == 0 {
		return nil, nil, ErrEmptyFile
	}
	if int64(len(data)) > maxBytes {
		return nil, nil, ErrFileTooLarge
	}

	mime := mimetype.Detect(data)
	if !strings.HasPrefix(mime.String(), "image/") {
		return nil, nil, ErrNotImage
	}

	return data, mime, nil
}

// New picks Cloudinary when CLOUDINARY_URL is set and the local disk otherwise.
func New(cfg utils.UploadConfig, log *zap.Logger) (Storage, error) {
	log = log.With(zap.String("component", "storage"))

	if cfg.CloudinaryURL != "" {
		cld, err := cloudinary.NewFromURL(cfg.CloudinaryURL)
		if err != nil {
			return nil, fmt.Errorf("init cloudinary: %w", err)
		}
		log.Info("Image uploads go to Cloudinary", zap.String("folder", cfg.CloudinaryFolder))
		return &cloudinaryStorage{cld: cld, folder: cfg.CloudinaryFolder, maxBytes: cfg.MaxBytes, log: log}, nil
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", cfg.Dir, err)
	}
	log.Info("Image uploads go to local disk", zap.String("dir", cfg.Dir))
	return &diskStorage{dir: cfg.Dir, baseURL: strings.TrimRight(cfg.PublicBaseURL, "/"), maxBytes: cfg.MaxBytes, log: log}, nil
}

type cloudinaryStorage struct {
	cld      *cloudinary.Cloudinary
	folder   string
	maxBytes int64
	log      *zap.Logger
}

func (s *cloudinaryStorage) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, _, err := Sniff(r, s.maxBytes)
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	result, err := s.cld.Upload.Upload(ctx, bytes.NewReader(data), uploader.UploadParams{
		PublicID: uuid.New().String(),
		Folder:   s.folder,
	})
	if err != nil {
		s.log.Error("Cloudinary upload failed", zap.Error(err), zap.String("filename", filename))
		return "", fmt.Errorf("upload %s to cloudinary: %w", filename, err)
	}
	if result.Error.Message != "" {
		return "", fmt.Errorf("upload %s to cloudinary: %s", filename, result.Error.Message)
	}

	return result.SecureURL, nil
}

type diskStorage struct {
	dir      string
	baseURL  string
	maxBytes int64
	log      *zap.Logger
}

func (s *diskStorage) Save(ctx context.Context, filename string, r io.Reader) (string, error) {
	data, mime, err := Sniff(r, s.maxBytes)
	if err != nil {
		return "", err
	}

	name := uuid.New().String() + mime.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		s.log.Error("Failed to write upload", zap.Error(err), zap.String("filename", filename))
		return "", fmt.Errorf("write upload %s: %w", filename, err)
	}

	return s.baseURL + path.Join("/uploads", name), nil
}
