package storage

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"hospohub/internal/models"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	SetLocation(ctx context.Context, userID, placeID string) error
	SetAvatarURL(ctx context.Context, userID, avatarURL string) error
	GetPublicProfileByID(ctx context.Context, id string) (*models.UserPublicProfile, error)
	SearchUsers(ctx context.Context, query string, currentUserID string) ([]models.UserPublicProfile, error)
}

// gormUserRepository implements UserRepository using GORM.
type gormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based UserRepository.
func NewGormUserRepository(db *gorm.DB) UserRepository {
	return &gormUserRepository{db: db}
}

// Create creates a new user record in the database.
func (r *gormUserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// GetByID retrieves a user by their ID.
func (r *gormUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err // includes gorm.ErrRecordNotFound
	}
	return &user, nil
}

// GetByUsername retrieves a user by their username, with their location preloaded.
func (r *gormUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).
		Preload("Location").
		Where("username = ?", username).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by their email.
func (r *gormUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Update updates an existing user record in the database.
func (r *gormUserRepository) Update(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		return gorm.ErrMissingWhereClause
	}
	return r.db.WithContext(ctx).Save(user).Error
}

// SetLocation points the user at a location row.
func (r *gormUserRepository) SetLocation(ctx context.Context, userID, placeID string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("location_id", placeID).Error
}

// SetAvatarURL updates only the user's avatar reference.
func (r *gormUserRepository) SetAvatarURL(ctx context.Context, userID, avatarURL string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar_url", avatarURL).Error
}

// GetPublicProfileByID retrieves the public display fields of a user.
func (r *gormUserRepository) GetPublicProfileByID(ctx context.Context, id string) (*models.UserPublicProfile, error) {
	var profile models.UserPublicProfile
	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "username", "first_name", "last_name", "avatar_url").
		Where("id = ?", id).
		First(&profile).Error
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SearchUsers performs a case-insensitive match on username and name fields,
// excluding the searching user.
func (r *gormUserRepository) SearchUsers(ctx context.Context, query string, currentUserID string) ([]models.UserPublicProfile, error) {
	var profiles []models.UserPublicProfile
	searchTerm := "%" + strings.ToLower(query) + "%"

	err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Select("id", "username", "first_name", "last_name", "avatar_url").
		Where("(LOWER(username) LIKE ? OR LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?) AND id != ?",
			searchTerm, searchTerm, searchTerm, currentUserID).
		Limit(10).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
