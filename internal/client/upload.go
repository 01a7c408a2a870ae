package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"travel-booking/internal/dto/response"
)

// UploadField is the multipart field the server reads.
const UploadField = "image"

type Uploads struct{ c *Client }

func NewUploads(c *Client) *Uploads { return &Uploads{c: c} }

// Image uploads r as filename and returns the public URL.
func (u *Uploads) Image(ctx context.Context, filename string, r io.Reader) (string, error) {
	var buf bytes.Buffer
	form := multipart.NewWriter(&buf)

	part, err := form.CreateFormFile(UploadField, filename)
	if err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if err := form.Close(); err != nil {
		return "", fmt.Errorf("build upload form: %w", err)
	}

	var out response.UploadResponse
	if err := u.c.send(ctx, http.MethodPost, "/upload-image", nil, form.FormDataContentType(), &buf, &out); err != nil {
		return "", err
	}
	return out.URL, nil
}
