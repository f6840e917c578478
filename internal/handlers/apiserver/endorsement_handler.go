package apiserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"hospohub/internal/middleware"
	"hospohub/internal/models"
	"hospohub/internal/services"
)

// Endorsement form intents.
const (
	IntentPublicEndorsement = "public-endorsement"
	IntentDeleteEndorsement = "delete-endorsement"
)

// EndorsementHandler handles public endorsement requests.
type EndorsementHandler struct {
	endorsementService services.EndorsementService
}

// NewEndorsementHandler creates a new EndorsementHandler.
func NewEndorsementHandler(es services.EndorsementService) *EndorsementHandler {
	return &EndorsementHandler{endorsementService: es}
}

// EndorsementActionHandler handles POST /api/v1/endorsements with a
// form-encoded intent (create or delete).
func (h *EndorsementHandler) EndorsementActionHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, "invalid form body", http.StatusBadRequest)
		return
	}

	switch r.PostFormValue("intent") {
	case IntentPublicEndorsement:
		_, err := h.endorsementService.Create(r.Context(), actorID,
			r.PostFormValue("endorsedUserId"), r.PostFormValue("body"))
		if err != nil {
			h.writeEndorsementError(w, err, actorID)
			return
		}
		writeSuccess(w, http.StatusCreated)
	case IntentDeleteEndorsement:
		err := h.endorsementService.Delete(r.Context(), actorID, r.PostFormValue("endorsementId"))
		if err != nil {
			h.writeEndorsementError(w, err, actorID)
			return
		}
		writeSuccess(w, http.StatusCreated)
	default:
		writeJSONError(w, "invalid intent", http.StatusBadRequest)
	}
}

// ListEndorsementsHandler handles GET /api/v1/users/{userID}/endorsements.
func (h *EndorsementHandler) ListEndorsementsHandler(w http.ResponseWriter, r *http.Request) {
	userID := mux.Vars(r)["userID"]
	if userID == "" {
		writeJSONError(w, "missing user id", http.StatusBadRequest)
		return
	}

	endorsements, err := h.endorsementService.ListForUser(r.Context(), userID)
	if err != nil {
		log.Printf("Error listing endorsements for user %s: %v", userID, err)
		writeJSONError(w, "failed to list endorsements", http.StatusInternalServerError)
		return
	}

	if endorsements == nil {
		endorsements = []models.Endorsement{}
	}
	writeJSONResponse(w, http.StatusOK, endorsements)
}

func (h *EndorsementHandler) writeEndorsementError(w http.ResponseWriter, err error, actorID string) {
	var fieldErrs services.ValidationErrors
	switch {
	case errors.As(err, &fieldErrs):
		writeFieldErrors(w, fieldErrs)
	case errors.Is(err, services.ErrNotAuthorized):
		writeJSONError(w, "not authorized", http.StatusUnauthorized)
	case errors.Is(err, services.ErrEndorsementNotFound):
		writeJSONError(w, err.Error(), http.StatusNotFound)
	default:
		log.Printf("Error handling endorsement action for user %s: %v", actorID, err)
		writeJSONError(w, "endorsement action failed", http.StatusInternalServerError)
	}
}
