package services

import "hospohub/internal/models"

// ConnectionState is the viewer-facing relationship state toward another user.
type ConnectionState string

const (
	ConnectionStateNotConnected    ConnectionState = "NOT_CONNECTED"
	ConnectionStateRequestSent     ConnectionState = "REQUEST_SENT"
	ConnectionStateRequestReceived ConnectionState = "REQUEST_RECEIVED"
	ConnectionStateConnected       ConnectionState = "CONNECTED"
)

// DeriveConnectionState projects the viewer's sent and received connection
// lists onto a single state toward targetUserID. An ACCEPTED row in either
// direction wins: the accept operation mutates the original requester's row,
// so the accepted edge can live on either side depending on who initiated.
// Pure read-side derivation, recomputed on every call.
func DeriveConnectionState(sent, received []models.Connection, targetUserID string) ConnectionState {
	for _, c := range sent {
		if c.TargetUserID == targetUserID && c.Status == models.ConnectionStatusAccepted {
			return ConnectionStateConnected
		}
	}
	for _, c := range received {
		if c.UserID == targetUserID && c.Status == models.ConnectionStatusAccepted {
			return ConnectionStateConnected
		}
	}
	for _, c := range sent {
		if c.TargetUserID == targetUserID && c.Status == models.ConnectionStatusPending {
			return ConnectionStateRequestSent
		}
	}
	for _, c := range received {
		if c.UserID == targetUserID && c.Status == models.ConnectionStatusPending {
			return ConnectionStateRequestReceived
		}
	}
	return ConnectionStateNotConnected
}
