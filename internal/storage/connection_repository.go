package storage

import (
	"context"

	"gorm.io/gorm"

	"hospohub/internal/models"
)

// ConnectionRepository defines the interface for connection data operations.
// Delete and UpdateStatus report the number of rows touched so callers can
// distinguish "acted on a missing row" from a store failure.
type ConnectionRepository interface {
	Create(ctx context.Context, connection *models.Connection) error
	Get(ctx context.Context, userID, targetUserID string) (*models.Connection, error)
	Delete(ctx context.Context, userID, targetUserID string) (int64, error)
	UpdateStatus(ctx context.Context, userID, targetUserID string, status models.ConnectionStatus) (int64, error)
	ListSent(ctx context.Context, userID string) ([]models.Connection, error)
	ListReceived(ctx context.Context, userID string) ([]models.Connection, error)
}

type gormConnectionRepository struct {
	db *gorm.DB
}

// NewGormConnectionRepository creates a new GORM-based ConnectionRepository.
func NewGormConnectionRepository(db *gorm.DB) ConnectionRepository {
	return &gormConnectionRepository{db: db}
}

// Create inserts a connection row. A duplicate ordered pair surfaces as
// gorm.ErrDuplicatedKey via the composite primary key.
func (r *gormConnectionRepository) Create(ctx context.Context, connection *models.Connection) error {
	return r.db.WithContext(ctx).Create(connection).Error
}

// Get retrieves the row for the exact ordered pair.
func (r *gormConnectionRepository) Get(ctx context.Context, userID, targetUserID string) (*models.Connection, error) {
	var connection models.Connection
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND target_user_id = ?", userID, targetUserID).
		First(&connection).Error
	if err != nil {
		return nil, err
	}
	return &connection, nil
}

// Delete removes the row for the exact ordered pair and reports how many rows
// were removed (zero when there was nothing to delete).
func (r *gormConnectionRepository) Delete(ctx context.Context, userID, targetUserID string) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND target_user_id = ?", userID, targetUserID).
		Delete(&models.Connection{})
	return result.RowsAffected, result.Error
}

// UpdateStatus sets the status on the row for the exact ordered pair.
func (r *gormConnectionRepository) UpdateStatus(ctx context.Context, userID, targetUserID string, status models.ConnectionStatus) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Connection{}).
		Where("user_id = ? AND target_user_id = ?", userID, targetUserID).
		Update("status", status)
	return result.RowsAffected, result.Error
}

// ListSent returns every connection the user initiated.
func (r *gormConnectionRepository) ListSent(ctx context.Context, userID string) ([]models.Connection, error) {
	var connections []models.Connection
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&connections).Error
	return connections, err
}

// ListReceived returns every connection where the user is the target.
func (r *gormConnectionRepository) ListReceived(ctx context.Context, userID string) ([]models.Connection, error) {
	var connections []models.Connection
	err := r.db.WithContext(ctx).
		Where("target_user_id = ?", userID).
		Find(&connections).Error
	return connections, err
}
