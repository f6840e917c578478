package storage

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"hospohub/internal/config"
)

// FileInfo describes a stored file and how to reach it.
type FileInfo struct {
	URL      string `json:"url"`
	Path     string `json:"path"`
	Size     int64  `json:"size"`
	MimeType string `json:"mimeType"`
	FileName string `json:"fileName"`
}

// StorageService abstracts where uploaded documents and profile images end up.
type StorageService interface {
	UploadFile(ctx context.Context, reader io.Reader, fileSize int64, fileName string, mimeType string) (*FileInfo, error)
	DeleteFile(ctx context.Context, path string) error
}

// LocalStorageService stores files on the local filesystem.
type LocalStorageService struct {
	basePath string // storage root, e.g. "./uploads"
	baseURL  string // URL prefix files are served under, e.g. "/uploads"
}

// NewLocalStorageService creates a LocalStorageService rooted at the
// configured local path.
func NewLocalStorageService(cfg config.StorageConfig, baseURL string) (StorageService, error) {
	if err := os.MkdirAll(cfg.LocalPath, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create local storage directory %q: %w", cfg.LocalPath, err)
	}
	return &LocalStorageService{
		basePath: cfg.LocalPath,
		baseURL:  baseURL,
	}, nil
}

// UploadFile saves the reader's contents under a unique name, keeping the
// original extension.
func (s *LocalStorageService) UploadFile(ctx context.Context, reader io.Reader, fileSize int64, fileName string, mimeType string) (*FileInfo, error) {
	ext := filepath.Ext(fileName)
	if ext == "" {
		// Infer an extension from the MIME type when the name has none.
		if extensions, _ := mime.ExtensionsByType(mimeType); len(extensions) > 0 {
			ext = extensions[0]
		}
	}
	uniqueFileName := uuid.New().String() + ext

	dstPath := filepath.Join(s.basePath, uniqueFileName)
	dst, err := os.Create(dstPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create destination file %q: %w", dstPath, err)
	}
	defer dst.Close()

	written, err := io.Copy(dst, reader)
	if err != nil {
		os.Remove(dstPath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}
	if written != fileSize {
		os.Remove(dstPath)
		return nil, fmt.Errorf("file size mismatch: expected %d, wrote %d", fileSize, written)
	}

	fileURL := strings.TrimSuffix(s.baseURL, "/") + "/" + url.PathEscape(uniqueFileName)

	return &FileInfo{
		URL:      fileURL,
		Path:     dstPath,
		Size:     fileSize,
		MimeType: mimeType,
		FileName: fileName,
	}, nil
}

// DeleteFile removes a stored file. A missing file is not an error; the
// metadata row is the source of truth and may outlive a manually pruned disk.
func (s *LocalStorageService) DeleteFile(ctx context.Context, path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %q: %w", path, err)
	}
	return nil
}
