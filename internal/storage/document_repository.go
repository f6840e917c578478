package storage

import (
	"context"

	"gorm.io/gorm"

	"hospohub/internal/models"
)

// DocumentRepository defines the interface for document metadata operations.
// File bytes live in a StorageService; these rows only describe them.
type DocumentRepository interface {
	Create(ctx context.Context, document *models.Document) error
	GetByID(ctx context.Context, id string) (*models.Document, error)
	ListForUser(ctx context.Context, userID string) ([]models.Document, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type gormDocumentRepository struct {
	db *gorm.DB
}

// NewGormDocumentRepository creates a new GORM-based DocumentRepository.
func NewGormDocumentRepository(db *gorm.DB) DocumentRepository {
	return &gormDocumentRepository{db: db}
}

func (r *gormDocumentRepository) Create(ctx context.Context, document *models.Document) error {
	return r.db.WithContext(ctx).Create(document).Error
}

func (r *gormDocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	var document models.Document
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&document).Error
	if err != nil {
		return nil, err
	}
	return &document, nil
}

func (r *gormDocumentRepository) ListForUser(ctx context.Context, userID string) ([]models.Document, error) {
	var documents []models.Document
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&documents).Error
	return documents, err
}

func (r *gormDocumentRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Document{})
	return result.RowsAffected, result.Error
}
