package apiserver

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"hospohub/internal/middleware"
	"hospohub/internal/models"
	"hospohub/internal/services"
)

type mockNotificationService struct {
	mock.Mock
}

func (m *mockNotificationService) MarkAllAsRead(ctx context.Context, actorID, userID string) error {
	args := m.Called(ctx, actorID, userID)
	return args.Error(0)
}

func (m *mockNotificationService) List(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	if notifications, ok := args.Get(0).([]models.Notification); ok {
		return notifications, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockNotificationService) CountUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func newMarkAllAsReadRequest(t *testing.T, asUser, claimedUserID string) *http.Request {
	t.Helper()
	form := url.Values{"userId": {claimedUserID}}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/notifications/mark-all-as-read", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if asUser != "" {
		req = req.WithContext(middleware.WithUserID(req.Context(), asUser))
	}
	return req
}

func TestMarkAllAsReadHandler(t *testing.T) {
	svc := new(mockNotificationService)
	svc.On("MarkAllAsRead", mock.Anything, actorID, actorID).Return(nil).Once()

	handler := NewNotificationHandler(svc)
	rr := httptest.NewRecorder()

	handler.MarkAllAsReadHandler(rr, newMarkAllAsReadRequest(t, actorID, actorID))

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.JSONEq(t, `{"success": true}`, rr.Body.String())
	svc.AssertExpectations(t)
}

func TestMarkAllAsReadHandler_ClaimedUserMismatch(t *testing.T) {
	svc := new(mockNotificationService)
	svc.On("MarkAllAsRead", mock.Anything, actorID, targetID).
		Return(services.ErrNotAuthorized).Once()

	handler := NewNotificationHandler(svc)
	rr := httptest.NewRecorder()

	handler.MarkAllAsReadHandler(rr, newMarkAllAsReadRequest(t, actorID, targetID))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertExpectations(t)
}

func TestMarkAllAsReadHandler_NoAuthenticatedUser(t *testing.T) {
	svc := new(mockNotificationService)
	handler := NewNotificationHandler(svc)
	rr := httptest.NewRecorder()

	handler.MarkAllAsReadHandler(rr, newMarkAllAsReadRequest(t, "", actorID))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertNotCalled(t, "MarkAllAsRead", mock.Anything, mock.Anything, mock.Anything)
}

func TestListNotificationsHandler(t *testing.T) {
	notifications := []models.Notification{
		{UserID: actorID, Type: models.NotificationTypeConnectionRequest},
	}

	svc := new(mockNotificationService)
	svc.On("List", mock.Anything, actorID).Return(notifications, nil).Once()

	handler := NewNotificationHandler(svc)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actorID))

	handler.ListNotificationsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), string(models.NotificationTypeConnectionRequest))
}

func TestListNotificationsHandler_EmptyListIsNotNull(t *testing.T) {
	svc := new(mockNotificationService)
	svc.On("List", mock.Anything, actorID).Return(nil, nil).Once()

	handler := NewNotificationHandler(svc)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actorID))

	handler.ListNotificationsHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rr.Body.String()))
}

func TestUnreadCountHandler(t *testing.T) {
	svc := new(mockNotificationService)
	svc.On("CountUnread", mock.Anything, actorID).Return(int64(2), nil).Once()

	handler := NewNotificationHandler(svc)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/notifications/unread-count", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), actorID))

	handler.UnreadCountHandler(rr, req)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"unread": 2}`, rr.Body.String())
}
