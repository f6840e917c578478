package storage

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hospohub/internal/models"
)

// LocationRepository defines the interface for location data operations.
type LocationRepository interface {
	Upsert(ctx context.Context, location *models.Location) error
	GetByPlaceID(ctx context.Context, placeID string) (*models.Location, error)
}

type gormLocationRepository struct {
	db *gorm.DB
}

// NewGormLocationRepository creates a new GORM-based LocationRepository.
func NewGormLocationRepository(db *gorm.DB) LocationRepository {
	return &gormLocationRepository{db: db}
}

// Upsert inserts the location if the place id is new and leaves existing rows
// untouched (place data is immutable once stored).
func (r *gormLocationRepository) Upsert(ctx context.Context, location *models.Location) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "place_id"}},
			DoNothing: true,
		}).
		Create(location).Error
}

func (r *gormLocationRepository) GetByPlaceID(ctx context.Context, placeID string) (*models.Location, error) {
	var location models.Location
	err := r.db.WithContext(ctx).Where("place_id = ?", placeID).First(&location).Error
	if err != nil {
		return nil, err
	}
	return &location, nil
}
