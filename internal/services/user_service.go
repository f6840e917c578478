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

// acceptedImageTypes are the MIME types allowed for profile images.
var acceptedImageTypes = map[string]bool{
	"image/gif":  true,
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/heic": true,
	"image/heif": true,
}

// UserService handles profile reads and updates.
type UserService interface {
	GetUserProfile(ctx context.Context, userID string) (*models.User, error)
	GetProfileByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID, firstName, lastName, bio string) (*models.User, error)
	// UpdateLocation upserts the shared location row by place id and points
	// the user at it. Existing location rows are never modified.
	UpdateLocation(ctx context.Context, userID, placeID, city, region string) error
	// UpdateAvatar stores a new profile image and points the user at it,
	// returning the image URL.
	UpdateAvatar(ctx context.Context, userID string, reader io.Reader, fileSize int64, fileName, mimeType string) (string, error)
	SearchUsers(ctx context.Context, query string, currentUserID string) ([]models.UserPublicProfile, error)
}

type userService struct {
	userRepo       storage.UserRepository
	locationRepo   storage.LocationRepository
	storageService storage.StorageService
}

// NewUserService creates a new UserService instance.
func NewUserService(userRepo storage.UserRepository, locationRepo storage.LocationRepository, storageService storage.StorageService) UserService {
	return &userService{
		userRepo:       userRepo,
		locationRepo:   locationRepo,
		storageService: storageService,
	}
}

func (s *userService) GetUserProfile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return user, nil
}

func (s *userService) GetProfileByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateUserProfile(ctx context.Context, userID, firstName, lastName, bio string) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if firstName != "" {
		user.FirstName = firstName
	}
	if lastName != "" {
		user.LastName = lastName
	}
	if bio != "" {
		user.Bio = bio
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *userService) UpdateLocation(ctx context.Context, userID, placeID, city, region string) error {
	errs := ValidationErrors{}
	if placeID == "" || region == "" {
		errs["placeId"] = "Please select a valid address from the list."
	}
	if city == "" {
		errs["city"] = "Please select a valid address from the list."
	}
	if len(errs) > 0 {
		return errs
	}

	location := &models.Location{
		PlaceID: placeID,
		City:    city,
		Region:  region,
	}
	if err := s.locationRepo.Upsert(ctx, location); err != nil {
		return fmt.Errorf("failed to upsert location: %w", err)
	}

	if err := s.userRepo.SetLocation(ctx, userID, placeID); err != nil {
		return fmt.Errorf("failed to set user location: %w", err)
	}
	return nil
}

func (s *userService) UpdateAvatar(ctx context.Context, userID string, reader io.Reader, fileSize int64, fileName, mimeType string) (string, error) {
	if !acceptedImageTypes[mimeType] {
		return "", ValidationErrors{"profile": "Please choose a GIF, JPEG, PNG, WebP or HEIC image."}
	}

	fileInfo, err := s.storageService.UploadFile(ctx, reader, fileSize, fileName, mimeType)
	if err != nil {
		return "", fmt.Errorf("failed to store profile image: %w", err)
	}

	if err := s.userRepo.SetAvatarURL(ctx, userID, fileInfo.URL); err != nil {
		// The stored file is unreachable without the reference; clean it up.
		if delErr := s.storageService.DeleteFile(ctx, fileInfo.Path); delErr != nil {
			log.Printf("Error removing orphaned profile image %s after failed update: %v", fileInfo.Path, delErr)
		}
		return "", fmt.Errorf("failed to set avatar URL: %w", err)
	}

	return fileInfo.URL, nil
}

func (s *userService) SearchUsers(ctx context.Context, query string, currentUserID string) ([]models.UserPublicProfile, error) {
	profiles, err := s.userRepo.SearchUsers(ctx, query, currentUserID)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return profiles, nil
}
