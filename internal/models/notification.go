package models

import "encoding/json"

// NotificationType enumerates the kinds of inbox events.
type NotificationType string

const (
	NotificationTypeConnectionRequest NotificationType = "CONNECTION_REQUEST"
)

// Notification is a per-user inbox event. Metadata is an opaque serialized
// payload whose shape depends on Type.
type Notification struct {
	BaseModel
	UserID   string           `gorm:"type:varchar(36);not null;index" json:"userId"`
	Type     NotificationType `gorm:"type:varchar(40);not null" json:"type"`
	Metadata string           `gorm:"type:text" json:"metadata,omitempty"`
	IsRead   bool             `gorm:"not null;default:false" json:"isRead"`
}

// TableName specifies the table name for the Notification model.
func (Notification) TableName() string {
	return "notifications"
}

// ConnectionRequestMetadata is the payload stored on CONNECTION_REQUEST
// notifications. It snapshots the requester's public profile at request time;
// later profile edits deliberately do not rewrite past notifications.
type ConnectionRequestMetadata struct {
	RequestedBy string `json:"requestedBy"`
	Name        string `json:"name"`
	Username    string `json:"username"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}

// NewConnectionRequestMetadata builds the snapshot payload from a requester's
// public profile.
func NewConnectionRequestMetadata(requester *UserPublicProfile) ConnectionRequestMetadata {
	name := requester.FirstName
	if requester.LastName != "" {
		if name != "" {
			name += " "
		}
		name += requester.LastName
	}
	return ConnectionRequestMetadata{
		RequestedBy: requester.ID,
		Name:        name,
		Username:    requester.Username,
		AvatarURL:   requester.AvatarURL,
	}
}

// Encode serializes the metadata for storage.
func (m ConnectionRequestMetadata) Encode() (string, error) {
	raw, err := json.Marshal(m)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

// DecodeConnectionRequestMetadata parses a stored metadata payload.
func DecodeConnectionRequestMetadata(raw string) (ConnectionRequestMetadata, error) {
	var m ConnectionRequestMetadata
	err := json.Unmarshal([]byte(raw), &m)
	return m, err
}
