package services

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"gorm.io/gorm"

	"hospohub/internal/models"
	"hospohub/internal/storage"
)

var ErrEndorsementNotFound = errors.New("endorsement not found")

const maxEndorsementLength = 500

// EndorsementService handles public endorsements on user profiles.
type EndorsementService interface {
	// Create posts an endorsement on endorsedUserID's profile, snapshotting
	// the author's display fields at posting time.
	Create(ctx context.Context, authorID, endorsedUserID, body string) (*models.Endorsement, error)
	// Delete removes an endorsement. Only its author may delete it.
	Delete(ctx context.Context, actorID, endorsementID string) error
	ListForUser(ctx context.Context, userID string) ([]models.Endorsement, error)
}

type endorsementService struct {
	endorsementRepo storage.EndorsementRepository
	userRepo        storage.UserRepository
}

// NewEndorsementService creates a new EndorsementService instance.
func NewEndorsementService(endorsementRepo storage.EndorsementRepository, userRepo storage.UserRepository) EndorsementService {
	return &endorsementService{
		endorsementRepo: endorsementRepo,
		userRepo:        userRepo,
	}
}

func (s *endorsementService) Create(ctx context.Context, authorID, endorsedUserID, body string) (*models.Endorsement, error) {
	errs := ValidationErrors{}
	if body == "" {
		errs["body"] = "Please provide a public endorsement."
	} else if utf8.RuneCountInString(body) > maxEndorsementLength {
		errs["body"] = "Public endorsement must be less than 500 characters."
	}
	if endorsedUserID == "" {
		errs["endorsedUserId"] = "Invalid user ID format."
	}
	if len(errs) > 0 {
		return nil, errs
	}

	author, err := s.userRepo.GetPublicProfileByID(ctx, authorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotAuthorized
		}
		return nil, fmt.Errorf("failed to load author profile: %w", err)
	}

	fullName := author.FirstName
	if author.LastName != "" {
		if fullName != "" {
			fullName += " "
		}
		fullName += author.LastName
	}

	endorsement := &models.Endorsement{
		UserID:         endorsedUserID,
		Body:           body,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		AuthorFullName: fullName,
		AuthorURL:      author.AvatarURL,
	}
	if err := s.endorsementRepo.Create(ctx, endorsement); err != nil {
		return nil, fmt.Errorf("failed to create endorsement: %w", err)
	}
	return endorsement, nil
}

func (s *endorsementService) Delete(ctx context.Context, actorID, endorsementID string) error {
	endorsement, err := s.endorsementRepo.GetByID(ctx, endorsementID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEndorsementNotFound
		}
		return fmt.Errorf("failed to load endorsement: %w", err)
	}

	if endorsement.AuthorID != actorID {
		return ErrNotAuthorized
	}

	rows, err := s.endorsementRepo.Delete(ctx, endorsementID)
	if err != nil {
		return fmt.Errorf("failed to delete endorsement: %w", err)
	}
	if rows == 0 {
		return ErrEndorsementNotFound
	}
	return nil
}

func (s *endorsementService) ListForUser(ctx context.Context, userID string) ([]models.Endorsement, error) {
	endorsements, err := s.endorsementRepo.ListForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list endorsements: %w", err)
	}
	return endorsements, nil
}
