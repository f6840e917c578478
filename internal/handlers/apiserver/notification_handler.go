package apiserver

import (
	"errors"
	"log"
	"net/http"

	"hospohub/internal/middleware"
	"hospohub/internal/models"
	"hospohub/internal/services"
)

// NotificationHandler handles HTTP requests for the notification inbox.
type NotificationHandler struct {
	notificationService services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(ns services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: ns}
}

// ListNotificationsHandler handles GET /api/v1/notifications.
func (h *NotificationHandler) ListNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	notifications, err := h.notificationService.List(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing notifications for user %s: %v", userID, err)
		writeJSONError(w, "failed to list notifications", http.StatusInternalServerError)
		return
	}

	if notifications == nil {
		notifications = []models.Notification{}
	}
	writeJSONResponse(w, http.StatusOK, notifications)
}

// UnreadCountHandler handles GET /api/v1/notifications/unread-count.
func (h *NotificationHandler) UnreadCountHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	count, err := h.notificationService.CountUnread(r.Context(), userID)
	if err != nil {
		log.Printf("Error counting unread notifications for user %s: %v", userID, err)
		writeJSONError(w, "failed to count unread notifications", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, http.StatusOK, map[string]int64{"unread": count})
}

// MarkAllAsReadHandler handles POST /api/v1/notifications/mark-all-as-read.
// The form carries the claimed userId; the service rejects it when it does
// not match the authenticated actor.
func (h *NotificationHandler) MarkAllAsReadHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, "invalid form body", http.StatusBadRequest)
		return
	}
	claimedUserID := r.PostFormValue("userId")

	if err := h.notificationService.MarkAllAsRead(r.Context(), actorID, claimedUserID); err != nil {
		if errors.Is(err, services.ErrNotAuthorized) {
			writeJSONError(w, "not authorized", http.StatusUnauthorized)
			return
		}
		log.Printf("Error marking notifications as read for user %s: %v", claimedUserID, err)
		writeJSONError(w, "failed to mark notifications as read", http.StatusInternalServerError)
		return
	}

	writeSuccess(w, http.StatusCreated)
}
