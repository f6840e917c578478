package apiserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"hospohub/internal/config"
	"hospohub/internal/middleware"
	"hospohub/internal/services"
)

// UserHandler handles profile requests.
type UserHandler struct {
	userService services.UserService
	storageCfg  config.StorageConfig
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(us services.UserService, storageCfg config.StorageConfig) *UserHandler {
	return &UserHandler{userService: us, storageCfg: storageCfg}
}

// GetMyProfileHandler handles GET /api/v1/users/me.
func (h *UserHandler) GetMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	user, err := h.userService.GetUserProfile(r.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Error fetching profile for user %s: %v", userID, err)
		writeJSONError(w, "failed to fetch profile", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, http.StatusOK, user)
}

// UpdateMyProfileRequest is the JSON body for PUT /api/v1/users/me.
type UpdateMyProfileRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Bio       string `json:"bio,omitempty"`
}

// UpdateMyProfileHandler handles PUT /api/v1/users/me.
func (h *UserHandler) UpdateMyProfileHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	var req UpdateMyProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	user, err := h.userService.UpdateUserProfile(r.Context(), userID, req.FirstName, req.LastName, req.Bio)
	if err != nil {
		log.Printf("Error updating profile for user %s: %v", userID, err)
		writeJSONError(w, "failed to update profile", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, http.StatusOK, user)
}

// UpdateLocationHandler handles POST /api/v1/users/me/location with a
// form-encoded place selection.
func (h *UserHandler) UpdateLocationHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, "invalid form body", http.StatusBadRequest)
		return
	}

	err := h.userService.UpdateLocation(r.Context(), userID,
		r.PostFormValue("placeId"), r.PostFormValue("city"), r.PostFormValue("region"))
	if err != nil {
		var fieldErrs services.ValidationErrors
		if errors.As(err, &fieldErrs) {
			writeFieldErrors(w, fieldErrs)
			return
		}
		log.Printf("Error updating location for user %s: %v", userID, err)
		writeJSONError(w, "failed to update location", http.StatusInternalServerError)
		return
	}
	writeSuccess(w, http.StatusCreated)
}

// UploadAvatarHandler handles POST /api/v1/users/me/avatar (multipart form,
// field "profile").
func (h *UserHandler) UploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	maxBytes := h.storageCfg.MaxFileSizeMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeJSONError(w, fmt.Sprintf("image too large (max %d MB)", h.storageCfg.MaxFileSizeMB), http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("profile")
	if err != nil {
		writeJSONError(w, "missing profile field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	avatarURL, err := h.userService.UpdateAvatar(r.Context(), userID, file, header.Size, header.Filename, mimeType)
	if err != nil {
		var fieldErrs services.ValidationErrors
		if errors.As(err, &fieldErrs) {
			writeFieldErrors(w, fieldErrs)
			return
		}
		log.Printf("Error updating avatar for user %s: %v", userID, err)
		writeJSONError(w, "failed to update profile image", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, http.StatusCreated, map[string]string{"avatarUrl": avatarURL})
}

// GetUserProfileHandler handles GET /users/{username} (public).
func (h *UserHandler) GetUserProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := mux.Vars(r)["username"]
	if username == "" {
		writeJSONError(w, "missing username", http.StatusBadRequest)
		return
	}

	user, err := h.userService.GetProfileByUsername(r.Context(), username)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			writeJSONError(w, err.Error(), http.StatusNotFound)
			return
		}
		log.Printf("Error fetching profile %s: %v", username, err)
		writeJSONError(w, "failed to fetch profile", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, http.StatusOK, user)
}

// SearchUsersHandler handles GET /api/v1/users/search?q=...
func (h *UserHandler) SearchUsersHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	query := r.URL.Query().Get("q")
	if query == "" {
		writeJSONError(w, "missing search query", http.StatusBadRequest)
		return
	}

	profiles, err := h.userService.SearchUsers(r.Context(), query, userID)
	if err != nil {
		log.Printf("Error searching users for %q: %v", query, err)
		writeJSONError(w, "search failed", http.StatusInternalServerError)
		return
	}
	writeJSONResponse(w, http.StatusOK, profiles)
}
