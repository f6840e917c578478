package models

import "time"

// ConnectionStatus defines the lifecycle states of a connection request.
type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "PENDING"
	ConnectionStatusAccepted ConnectionStatus = "ACCEPTED"
	ConnectionStatusDeclined ConnectionStatus = "DECLINED"
)

// Connection is a directed edge from the requester (UserID) to the recipient
// (TargetUserID). The composite primary key guarantees at most one row per
// ordered pair; the reverse pair is a distinct row. Accepting a request
// mutates the original requester's row rather than creating a reverse edge,
// so "connected" between two users has to be read from both directions.
type Connection struct {
	UserID       string           `gorm:"type:varchar(36);primaryKey" json:"userId"`
	TargetUserID string           `gorm:"type:varchar(36);primaryKey" json:"targetUserId"`
	Status       ConnectionStatus `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`
	CreatedAt    time.Time        `json:"createdAt"`
}

// TableName specifies the table name for the Connection model.
func (Connection) TableName() string {
	return "connections"
}
