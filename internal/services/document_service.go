package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"

	"gorm.io/gorm"

	"hospohub/internal/models"
	"hospohub/internal/storage"
)

var ErrDocumentNotFound = errors.New("document not found")

// DocumentService handles resume/reference uploads: the bytes go to a
// StorageService, the metadata row to the document repository.
type DocumentService interface {
	Upload(ctx context.Context, ownerID string, reader io.Reader, fileSize int64, fileName, mimeType string) (*models.Document, error)
	// Delete removes a document. Only its owner may delete it.
	Delete(ctx context.Context, actorID, documentID string) error
	ListForUser(ctx context.Context, userID string) ([]models.Document, error)
}

type documentService struct {
	documentRepo   storage.DocumentRepository
	storageService storage.StorageService
}

// NewDocumentService creates a new DocumentService instance.
func NewDocumentService(documentRepo storage.DocumentRepository, storageService storage.StorageService) DocumentService {
	return &documentService{
		documentRepo:   documentRepo,
		storageService: storageService,
	}
}

func (s *documentService) Upload(ctx context.Context, ownerID string, reader io.Reader, fileSize int64, fileName, mimeType string) (*models.Document, error) {
	fileInfo, err := s.storageService.UploadFile(ctx, reader, fileSize, fileName, mimeType)
	if err != nil {
		return nil, fmt.Errorf("failed to store file: %w", err)
	}

	document := &models.Document{
		UserID:   ownerID,
		FileName: fileInfo.FileName,
		URL:      fileInfo.URL,
		Path:     fileInfo.Path,
		Size:     fileInfo.Size,
		MimeType: fileInfo.MimeType,
	}
	if err := s.documentRepo.Create(ctx, document); err != nil {
		// The metadata row is the source of truth; without it the stored file
		// is unreachable, so clean it up.
		if delErr := s.storageService.DeleteFile(ctx, fileInfo.Path); delErr != nil {
			log.Printf("Error removing orphaned file %s after failed insert: %v", fileInfo.Path, delErr)
		}
		return nil, fmt.Errorf("failed to create document record: %w", err)
	}
	return document, nil
}

func (s *documentService) Delete(ctx context.Context, actorID, documentID string) error {
	document, err := s.documentRepo.GetByID(ctx, documentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrDocumentNotFound
		}
		return fmt.Errorf("failed to load document: %w", err)
	}

	if document.UserID != actorID {
		return ErrNotAuthorized
	}

	rows, err := s.documentRepo.Delete(ctx, documentID)
	if err != nil {
		return fmt.Errorf("failed to delete document record: %w", err)
	}
	if rows == 0 {
		return ErrDocumentNotFound
	}

	if err := s.storageService.DeleteFile(ctx, document.Path); err != nil {
		// Row is gone; the stray file only wastes disk.
		log.Printf("Error deleting stored file %s for document %s: %v", document.Path, documentID, err)
	}
	return nil
}

func (s *documentService) ListForUser(ctx context.Context, userID string) ([]models.Document, error) {
	documents, err := s.documentRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}
	return documents, nil
}
