package apiserver

import (
	"errors"
	"log"
	"net/http"

	"hospohub/internal/middleware"
	"hospohub/internal/models"
	"hospohub/internal/services"
)

// Connection action intents, matching the values submitted by the web client.
const (
	IntentInitiateConnection = "initiate-connection"
	IntentCancelConnection   = "cancel-connection"
	IntentAcceptConnection   = "accept-connection"
	IntentDeclineConnection  = "decline-connection"
)

// ConnectionHandler handles HTTP requests for connection actions.
type ConnectionHandler struct {
	connectionService services.ConnectionService
}

// NewConnectionHandler creates a new ConnectionHandler.
func NewConnectionHandler(cs services.ConnectionService) *ConnectionHandler {
	return &ConnectionHandler{connectionService: cs}
}

// ConnectionActionHandler handles POST /api/v1/connections.
// The body is form-encoded with an intent plus the ordered user pair. The
// authenticated actor must be the acting side (userId) for every intent.
func (h *ConnectionHandler) ConnectionActionHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	if err := r.ParseForm(); err != nil {
		writeJSONError(w, "invalid form body", http.StatusBadRequest)
		return
	}

	intent := r.PostFormValue("intent")
	userID := r.PostFormValue("userId")
	targetUserID := r.PostFormValue("targetUserId")

	if userID != actorID {
		writeJSONError(w, "not authorized", http.StatusUnauthorized)
		return
	}

	var err error
	switch intent {
	case IntentInitiateConnection:
		_, err = h.connectionService.Initiate(r.Context(), userID, targetUserID)
	case IntentCancelConnection:
		err = h.connectionService.Cancel(r.Context(), userID, targetUserID)
	case IntentAcceptConnection:
		err = h.connectionService.Accept(r.Context(), userID, targetUserID)
	case IntentDeclineConnection:
		err = h.connectionService.Decline(r.Context(), userID, targetUserID)
	default:
		writeJSONError(w, "invalid intent", http.StatusBadRequest)
		return
	}

	if err != nil {
		var fieldErrs services.ValidationErrors
		switch {
		case errors.As(err, &fieldErrs):
			writeFieldErrors(w, fieldErrs)
		case errors.Is(err, services.ErrConnectionExists):
			writeJSONError(w, err.Error(), http.StatusConflict)
		case errors.Is(err, services.ErrConnectionNotFound), errors.Is(err, services.ErrRequesterNotFound):
			// Acting on a row that isn't there is stale client state, not a
			// server fault.
			writeJSONError(w, err.Error(), http.StatusNotFound)
		default:
			log.Printf("Error handling %s for %s -> %s: %v", intent, userID, targetUserID, err)
			writeJSONError(w, "connection action failed", http.StatusInternalServerError)
		}
		return
	}

	writeSuccess(w, http.StatusOK)
}

// connectionOverviewResponse is the reply for GET /api/v1/connections.
type connectionOverviewResponse struct {
	Sent     []models.Connection      `json:"sent"`
	Received []models.Connection      `json:"received"`
	Status   services.ConnectionState `json:"status,omitempty"`
}

// GetConnectionsHandler handles GET /api/v1/connections. With a targetUserId
// query parameter it also derives the viewer's status toward that user.
func (h *ConnectionHandler) GetConnectionsHandler(w http.ResponseWriter, r *http.Request) {
	actorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		writeJSONError(w, "could not resolve user from context", http.StatusUnauthorized)
		return
	}

	sent, received, err := h.connectionService.Overview(r.Context(), actorID)
	if err != nil {
		log.Printf("Error fetching connections for user %s: %v", actorID, err)
		writeJSONError(w, "failed to fetch connections", http.StatusInternalServerError)
		return
	}

	if sent == nil {
		sent = []models.Connection{}
	}
	if received == nil {
		received = []models.Connection{}
	}

	resp := connectionOverviewResponse{Sent: sent, Received: received}
	if targetUserID := r.URL.Query().Get("targetUserId"); targetUserID != "" {
		resp.Status = services.DeriveConnectionState(sent, received, targetUserID)
	}

	writeJSONResponse(w, http.StatusOK, resp)
}
