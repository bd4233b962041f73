package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// allowedExtensions is the accepted upload set. Anything else is rejected
// before the file touches disk.
var allowedExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
}

type StorageService interface {
	SaveUpload(file *multipart.FileHeader, userID string) (*StoredUpload, error)
	DeleteFile(filePath string) error
	EnsureUploadDir() error
}

// StoredUpload describes one saved upload. Uploads are ephemeral: one
// write, one read for extraction, nothing versioned.
type StoredUpload struct {
	Filename  string
	FilePath  string
	Extension string
}

type storageService struct {
	uploadPath string
}

func NewStorageService(uploadPath string) StorageService {
	return &storageService{
		uploadPath: uploadPath,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveUpload writes the file under a per-user directory with a
// timestamped unique filename.
func (s *storageService) SaveUpload(file *multipart.FileHeader, userID string) (*StoredUpload, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return nil, &UnsupportedFormatError{Extension: ext}
	}

	userDir := filepath.Join(s.uploadPath, userID)
	if err := os.MkdirAll(userDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create user upload directory: %w", err)
	}

	uniqueFilename := fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.New().String(), ext)
	filePath := filepath.Join(userDir, uniqueFilename)

	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return nil, fmt.Errorf("failed to save file: %w", err)
	}

	return &StoredUpload{
		Filename:  uniqueFilename,
		FilePath:  filePath,
		Extension: ext,
	}, nil
}

func (s *storageService) DeleteFile(filePath string) error {
	if err := os.Remove(filePath); err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
