package storage

import (
	"context"

	"gorm.io/gorm"

	"hospohub/internal/models"
)

// EndorsementRepository defines the interface for endorsement data operations.
type EndorsementRepository interface {
	Create(ctx context.Context, endorsement *models.Endorsement) error
	GetByID(ctx context.Context, id string) (*models.Endorsement, error)
	ListForUser(ctx context.Context, userID string) ([]models.Endorsement, error)
	Delete(ctx context.Context, id string) (int64, error)
}

type gormEndorsementRepository struct {
	db *gorm.DB
}

// NewGormEndorsementRepository creates a new GORM-based EndorsementRepository.
func NewGormEndorsementRepository(db *gorm.DB) EndorsementRepository {
	return &gormEndorsementRepository{db: db}
}

func (r *gormEndorsementRepository) Create(ctx context.Context, endorsement *models.Endorsement) error {
	return r.db.WithContext(ctx).Create(endorsement).Error
}

func (r *gormEndorsementRepository) GetByID(ctx context.Context, id string) (*models.Endorsement, error) {
	var endorsement models.Endorsement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&endorsement).Error
	if err != nil {
		return nil, err
	}
	return &endorsement, nil
}

// ListForUser returns endorsements posted on the user's profile, newest first.
func (r *gormEndorsementRepository) ListForUser(ctx context.Context, userID string) ([]models.Endorsement, error) {
	var endorsements []models.Endorsement
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&endorsements).Error
	return endorsements, err
}

func (r *gormEndorsementRepository) Delete(ctx context.Context, id string) (int64, error) {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Endorsement{})
	return result.RowsAffected, result.Error
}
