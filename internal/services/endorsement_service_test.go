package services

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hospohub/internal/models"
)

type mockEndorsementRepository struct {
	mock.Mock
}

func (m *mockEndorsementRepository) Create(ctx context.Context, endorsement *models.Endorsement) error {
	args := m.Called(ctx, endorsement)
	return args.Error(0)
}

func (m *mockEndorsementRepository) GetByID(ctx context.Context, id string) (*models.Endorsement, error) {
	args := m.Called(ctx, id)
	if endorsement, ok := args.Get(0).(*models.Endorsement); ok {
		return endorsement, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEndorsementRepository) ListForUser(ctx context.Context, userID string) ([]models.Endorsement, error) {
	args := m.Called(ctx, userID)
	if endorsements, ok := args.Get(0).([]models.Endorsement); ok {
		return endorsements, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockEndorsementRepository) Delete(ctx context.Context, id string) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if user, ok := args.Get(0).(*models.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepository) SetLocation(ctx context.Context, userID, placeID string) error {
	args := m.Called(ctx, userID, placeID)
	return args.Error(0)
}

func (m *mockUserRepository) SetAvatarURL(ctx context.Context, userID, avatarURL string) error {
	args := m.Called(ctx, userID, avatarURL)
	return args.Error(0)
}

func (m *mockUserRepository) GetPublicProfileByID(ctx context.Context, id string) (*models.UserPublicProfile, error) {
	args := m.Called(ctx, id)
	if profile, ok := args.Get(0).(*models.UserPublicProfile); ok {
		return profile, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockUserRepository) SearchUsers(ctx context.Context, query string, currentUserID string) ([]models.UserPublicProfile, error) {
	args := m.Called(ctx, query, currentUserID)
	if profiles, ok := args.Get(0).([]models.UserPublicProfile); ok {
		return profiles, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestCreateEndorsement_SnapshotsAuthor(t *testing.T) {
	author := &models.UserPublicProfile{
		ID:        testUserID,
		Username:  "jsmith",
		FirstName: "Jordan",
		LastName:  "Smith",
		AvatarURL: "/uploads/jsmith.png",
	}

	userRepo := new(mockUserRepository)
	userRepo.On("GetPublicProfileByID", mock.Anything, testUserID).Return(author, nil).Once()

	endorsementRepo := new(mockEndorsementRepository)
	endorsementRepo.On("Create", mock.Anything, mock.MatchedBy(func(e *models.Endorsement) bool {
		return e.UserID == testTargetID &&
			e.AuthorID == testUserID &&
			e.AuthorUsername == "jsmith" &&
			e.AuthorFullName == "Jordan Smith" &&
			e.AuthorURL == "/uploads/jsmith.png"
	})).Return(nil).Once()

	svc := NewEndorsementService(endorsementRepo, userRepo)

	endorsement, err := svc.Create(context.Background(), testUserID, testTargetID, "Great to work with.")
	require.NoError(t, err)
	assert.Equal(t, "Jordan Smith", endorsement.AuthorFullName)
	endorsementRepo.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestCreateEndorsement_Validation(t *testing.T) {
	svc := NewEndorsementService(nil, nil)

	testCases := []struct {
		name           string
		endorsedUserID string
		body           string
		wantField      string
	}{
		{"empty body", testTargetID, "", "body"},
		{"body too long", testTargetID, strings.Repeat("a", 501), "body"},
		{"multibyte body too long", testTargetID, strings.Repeat("é", 501), "body"},
		{"missing endorsed user", "", "Solid colleague.", "endorsedUserId"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), testUserID, tc.endorsedUserID, tc.body)
			var fieldErrs ValidationErrors
			require.ErrorAs(t, err, &fieldErrs)
			assert.Contains(t, fieldErrs, tc.wantField)
		})
	}
}

func TestCreateEndorsement_MultibyteBodyAtLimit(t *testing.T) {
	// The limit counts characters, not bytes: 500 two-byte runes are fine.
	body := strings.Repeat("é", 500)

	userRepo := new(mockUserRepository)
	userRepo.On("GetPublicProfileByID", mock.Anything, testUserID).
		Return(&models.UserPublicProfile{ID: testUserID, Username: "jsmith"}, nil).Once()

	endorsementRepo := new(mockEndorsementRepository)
	endorsementRepo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	svc := NewEndorsementService(endorsementRepo, userRepo)

	_, err := svc.Create(context.Background(), testUserID, testTargetID, body)
	require.NoError(t, err)
	endorsementRepo.AssertExpectations(t)
}

func TestCreateEndorsement_UnknownAuthor(t *testing.T) {
	userRepo := new(mockUserRepository)
	userRepo.On("GetPublicProfileByID", mock.Anything, testUserID).
		Return(nil, gorm.ErrRecordNotFound).Once()

	svc := NewEndorsementService(new(mockEndorsementRepository), userRepo)

	_, err := svc.Create(context.Background(), testUserID, testTargetID, "Great to work with.")
	assert.ErrorIs(t, err, ErrNotAuthorized)
}

func TestDeleteEndorsement_AuthorOnly(t *testing.T) {
	const endorsementID = "endorsement-1"

	endorsementRepo := new(mockEndorsementRepository)
	endorsementRepo.On("GetByID", mock.Anything, endorsementID).
		Return(&models.Endorsement{AuthorID: testTargetID}, nil).Once()

	svc := NewEndorsementService(endorsementRepo, nil)

	err := svc.Delete(context.Background(), testUserID, endorsementID)
	assert.ErrorIs(t, err, ErrNotAuthorized)
	endorsementRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteEndorsement_NotFound(t *testing.T) {
	const endorsementID = "endorsement-1"

	endorsementRepo := new(mockEndorsementRepository)
	endorsementRepo.On("GetByID", mock.Anything, endorsementID).
		Return(nil, gorm.ErrRecordNotFound).Once()

	svc := NewEndorsementService(endorsementRepo, nil)

	err := svc.Delete(context.Background(), testUserID, endorsementID)
	assert.ErrorIs(t, err, ErrEndorsementNotFound)
}

func TestDeleteEndorsement_ByAuthor(t *testing.T) {
	const endorsementID = "endorsement-1"

	endorsementRepo := new(mockEndorsementRepository)
	endorsementRepo.On("GetByID", mock.Anything, endorsementID).
		Return(&models.Endorsement{AuthorID: testUserID}, nil).Once()
	endorsementRepo.On("Delete", mock.Anything, endorsementID).
		Return(int64(1), nil).Once()

	svc := NewEndorsementService(endorsementRepo, nil)

	err := svc.Delete(context.Background(), testUserID, endorsementID)
	require.NoError(t, err)
	endorsementRepo.AssertExpectations(t)
}
