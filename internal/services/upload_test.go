package services

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds the header a multipart form parser would hand over.
func fileHeader(t *testing.T, filename, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(int64(len(content)) + 1024)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["file"][0]
}

func setupUploadService(t *testing.T) (*UploadService, string) {
	t.Helper()
	dir := t.TempDir()
	svc := NewUploadService(dir)
	svc.now = func() time.Time { return time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc, dir
}

func TestUploadService_Save(t *testing.T) {
	svc, dir := setupUploadService(t)
	content := []byte("meeting notes")

	file, err := svc.Save(fileHeader(t, "Notes.TXT", "text/plain; charset=utf-8", content))

	require.NoError(t, err)
	assert.Equal(t, "text/plain", file.Mimetype)
	assert.Equal(t, int64(len(content)), file.Size)
	assert.True(t, strings.HasSuffix(file.Filename, ".txt"))
	assert.Equal(t, "/uploads/application/2024-03-10/"+file.Filename, file.URL)

	stored, err := os.ReadFile(filepath.Join(dir, "application", "2024-03-10", file.Filename))
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestUploadService_Save_SniffsContentType(t *testing.T) {
	svc, _ := setupUploadService(t)
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 32)...)

	file, err := svc.Save(fileHeader(t, "avatar.png", "application/octet-stream", png))

	require.NoError(t, err)
	assert.Equal(t, "image/png", file.Mimetype)
	assert.Contains(t, file.URL, "/uploads/image/")
}

func TestUploadService_Save_Unsupported(t *testing.T) {
	svc, dir := setupUploadService(t)

	_, err := svc.Save(fileHeader(t, "run.sh", "application/x-sh", []byte("#!/bin/sh")))

	assert.ErrorIs(t, err, ErrUnsupportedFile)
	entries, _ := os.ReadDir(dir)
	assert.Empty(t, entries)
}

func TestClassify(t *testing.T) {
	tests := []struct {
		mimetype string
		size     int64
		want     string
		err      error
	}{
		{"image/png", 1024, "image", nil},
		{"IMAGE/JPEG", 1024, "image", nil},
		{"image/png", 10*mb + 1, "", ErrFileTooLarge},
		{"video/mp4", 50 * mb, "video", nil},
		{"audio/mpeg", 20*mb + 1, "", ErrFileTooLarge},
		{"text/plain; charset=utf-8", 10, "application", nil},
		{"application/pdf", 10 * mb, "application", nil},
		{"application/zip", 10, "", ErrUnsupportedFile},
	}

	for _, tt := range tests {
		t.Run(tt.mimetype, func(t *testing.T) {
			kind, err := classify(tt.mimetype, tt.size)
			if tt.err != nil {
				assert.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestStoredName(t *testing.T) {
	now := time.Now()

	a := storedName("report.PDF", now)
	b := storedName("report.PDF", now.Add(time.Nanosecond))

	assert.True(t, strings.HasSuffix(a, ".pdf"))
	assert.Len(t, a, 32+len(".pdf"))
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, storedName("../../report.PDF", now))
}
