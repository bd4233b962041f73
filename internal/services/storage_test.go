package services

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func uploadHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	_, header, err := req.FormFile("file")
	require.NoError(t, err)
	return header
}

func TestSaveUpload_RejectsUnsupportedExtension(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	_, err := storage.SaveUpload(uploadHeader(t, "resume.docx", "content"), "user-1")
	require.Error(t, err)

	var formatErr *UnsupportedFormatError
	require.ErrorAs(t, err, &formatErr)
	assert.Equal(t, ".docx", formatErr.Extension)
}

func TestSaveUpload_WritesUnderUserDir(t *testing.T) {
	uploadPath := t.TempDir()
	storage := NewStorageService(uploadPath)

	upload, err := storage.SaveUpload(uploadHeader(t, "profile.pdf", "pdf bytes"), "user-42")
	require.NoError(t, err)

	assert.Equal(t, ".pdf", upload.Extension)
	assert.Equal(t, filepath.Join(uploadPath, "user-42"), filepath.Dir(upload.FilePath))
	assert.True(t, strings.HasSuffix(upload.Filename, ".pdf"))

	saved, err := os.ReadFile(upload.FilePath)
	require.NoError(t, err)
	assert.Equal(t, "pdf bytes", string(saved))
}

func TestSaveUpload_UniqueFilenames(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	first, err := storage.SaveUpload(uploadHeader(t, "profile.png", "a"), "user-1")
	require.NoError(t, err)
	second, err := storage.SaveUpload(uploadHeader(t, "profile.png", "b"), "user-1")
	require.NoError(t, err)

	assert.NotEqual(t, first.FilePath, second.FilePath)
}

func TestSaveUpload_UppercaseExtensionAccepted(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	upload, err := storage.SaveUpload(uploadHeader(t, "scan.JPEG", "img"), "user-1")
	require.NoError(t, err)
	assert.Equal(t, ".jpeg", upload.Extension)
}

func TestDeleteFile(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	upload, err := storage.SaveUpload(uploadHeader(t, "profile.jpg", "img"), "user-1")
	require.NoError(t, err)

	require.NoError(t, storage.DeleteFile(upload.FilePath))
	_, err = os.Stat(upload.FilePath)
	assert.True(t, os.IsNotExist(err))

	assert.Error(t, storage.DeleteFile(upload.FilePath))
}
