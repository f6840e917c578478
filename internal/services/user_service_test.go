package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hospohub/internal/storage"
)

type mockStorageService struct {
	mock.Mock
}

func (m *mockStorageService) UploadFile(ctx context.Context, reader io.Reader, fileSize int64, fileName string, mimeType string) (*storage.FileInfo, error) {
	args := m.Called(ctx, reader, fileSize, fileName, mimeType)
	if fileInfo, ok := args.Get(0).(*storage.FileInfo); ok {
		return fileInfo, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockStorageService) DeleteFile(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}

func TestUpdateAvatar_StoresImageAndSetsURL(t *testing.T) {
	reader := strings.NewReader("png bytes")

	storageService := new(mockStorageService)
	storageService.On("UploadFile", mock.Anything, reader, int64(9), "me.png", "image/png").
		Return(&storage.FileInfo{URL: "/uploads/abc.png", Path: "uploads/abc.png"}, nil).Once()

	userRepo := new(mockUserRepository)
	userRepo.On("SetAvatarURL", mock.Anything, testUserID, "/uploads/abc.png").Return(nil).Once()

	svc := NewUserService(userRepo, nil, storageService)

	avatarURL, err := svc.UpdateAvatar(context.Background(), testUserID, reader, 9, "me.png", "image/png")
	require.NoError(t, err)
	assert.Equal(t, "/uploads/abc.png", avatarURL)
	storageService.AssertExpectations(t)
	userRepo.AssertExpectations(t)
}

func TestUpdateAvatar_RejectsNonImageType(t *testing.T) {
	storageService := new(mockStorageService)
	svc := NewUserService(new(mockUserRepository), nil, storageService)

	_, err := svc.UpdateAvatar(context.Background(), testUserID, strings.NewReader("%PDF"), 4, "cv.pdf", "application/pdf")

	var fieldErrs ValidationErrors
	require.ErrorAs(t, err, &fieldErrs)
	assert.Contains(t, fieldErrs, "profile")
	storageService.AssertNotCalled(t, "UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateAvatar_FailedUpdateRemovesStoredFile(t *testing.T) {
	storageService := new(mockStorageService)
	storageService.On("UploadFile", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(&storage.FileInfo{URL: "/uploads/abc.png", Path: "uploads/abc.png"}, nil).Once()
	storageService.On("DeleteFile", mock.Anything, "uploads/abc.png").Return(nil).Once()

	userRepo := new(mockUserRepository)
	userRepo.On("SetAvatarURL", mock.Anything, testUserID, "/uploads/abc.png").
		Return(errors.New("connection refused")).Once()

	svc := NewUserService(userRepo, nil, storageService)

	_, err := svc.UpdateAvatar(context.Background(), testUserID, strings.NewReader("png bytes"), 9, "me.png", "image/png")
	require.Error(t, err)
	storageService.AssertExpectations(t)
}
