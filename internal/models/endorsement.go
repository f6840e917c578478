package models

// Endorsement is a public recommendation posted on a user's profile.
// Author display fields are denormalized at creation time so profile pages
// render without join-time author lookups.
type Endorsement struct {
	BaseModel
	UserID         string `gorm:"type:varchar(36);not null;index" json:"userId"` // endorsed user
	Body           string `gorm:"type:text;not null" json:"body"`
	AuthorID       string `gorm:"type:varchar(36);not null" json:"authorId"`
	AuthorUsername string `gorm:"type:varchar(100)" json:"authorUsername"`
	AuthorFullName string `gorm:"type:varchar(200)" json:"authorFullName"`
	AuthorURL      string `gorm:"type:varchar(255)" json:"authorUrl,omitempty"` // author's avatar at posting time
}

// TableName specifies the table name for the Endorsement model.
func (Endorsement) TableName() string {
	return "endorsements"
}
