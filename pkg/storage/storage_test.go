package storage

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"travel-booking/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func TestSniff(t *testing.T) {
	tests := []struct {
		name    string
		data    []byte
		max     int64
		wantErr error
	}{
		{name: "png", data: pngHeader, max: 1024},
		{name: "exactly at limit", data: pngHeader, max: int64(len(pngHeader))},
		{name: "empty", data: nil, max: 1024, wantErr: ErrEmptyFile},
		{name: "over limit", data: pngHeader, max: int64(len(pngHeader)) - 1, wantErr: ErrFileTooLarge},
		{name: "text", data: []byte("hello, this is not an image"), max: 1024, wantErr: ErrNotImage},
		{name: "pdf", data: []byte("%PDF-1.4\n%âãÏÓ\n"), max: 1024, wantErr: ErrNotImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, mime, err := Sniff(bytes.NewReader(tt.data), tt.max)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.data, data)
			assert.Equal(t, "image/png", mime.String())
		})
	}
}

func TestDiskStorage_Save(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := New(utils.UploadConfig{
		Dir:           dir,
		PublicBaseURL: "http://localhost:8080/",
		MaxBytes:      1024,
	}, zaptest.NewLogger(t))
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "bukti.png", bytes.NewReader(pngHeader))
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "http://localhost:8080/uploads/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	written, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, written)

	_, err = store.Save(context.Background(), "notes.txt", strings.NewReader("plain text"))
	assert.ErrorIs(t, err, ErrNotImage)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
