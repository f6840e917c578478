package apiserver

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"hospohub/internal/config"
	"hospohub/internal/middleware"
	"hospohub/internal/models"
	"hospohub/internal/services"
)

// UploadHandler handles document uploads and downloads metadata.
type UploadHandler struct {
	documentService services.DocumentService
	storageCfg      config.StorageConfig
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(ds services.DocumentService, storageCfg config.StorageConfig) *UploadHandler {
	return &UploadHandler{documentService: ds, storageCfg: storageCfg}
}

// UploadDocumentHandler handles POST /api/v1/documents (multipart form,
// field "file").
func (h *UploadHandler) UploadDocumentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	maxBytes := h.storageCfg.MaxFileSizeMB * 1024 * 1024
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		writeJSONError(w, fmt.Sprintf("file too large (max %d MB)", h.storageCfg.MaxFileSizeMB), http.StatusRequestEntityTooLarge)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSONError(w, "missing file field", http.StatusBadRequest)
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	document, err := h.documentService.Upload(r.Context(), userID, file, header.Size, header.Filename, mimeType)
	if err != nil {
		log.Printf("Error uploading document for user %s: %v", userID, err)
		writeJSONError(w, "upload failed", http.StatusInternalServerError)
		return
	}

	writeJSONResponse(w, http.StatusCreated, document)
}

// ListDocumentsHandler handles GET /api/v1/users/{userID}/documents.
func (h *UploadHandler) ListDocumentsHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	if userID == "" {
		writeJSONError(w, "missing user id", http.StatusBadRequest)
		return
	}

	documents, err := h.documentService.ListForUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing documents for user %s: %v", userID, err)
		writeJSONError(w, "failed to list documents", http.StatusInternalServerError)
		return
	}

	if documents == nil {
		documents = []models.Document{}
	}
	writeJSONResponse(w, http.StatusOK, documents)
}

// DeleteDocumentHandler handles DELETE /api/v1/documents/{documentID}.
func (h *UploadHandler) DeleteDocumentHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	documentID := mux.Vars(r)["documentID"]
	if err := h.documentService.Delete(r.Context(), userID, documentID); err != nil {
		switch {
		case errors.Is(err, services.ErrDocumentNotFound):
			writeJSONError(w, err.Error(), http.StatusNotFound)
		case errors.Is(err, services.ErrNotAuthorized):
			writeJSONError(w, "not authorized", http.StatusUnauthorized)
		default:
			log.Printf("Error deleting document %s for user %s: %v", documentID, userID, err)
			writeJSONError(w, "failed to delete document", http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, http.StatusOK)
}
