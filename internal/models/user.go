package models

// User represents a member of the network.
type User struct {
	BaseModel
	Username     string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	FirstName    string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName     string    `gorm:"type:varchar(100)" json:"lastName"`
	AvatarURL    string    `gorm:"type:varchar(255)" json:"avatarUrl,omitempty"`
	Bio          string    `gorm:"type:text" json:"bio,omitempty"`
	LocationID   *string   `gorm:"type:varchar(100)" json:"locationId,omitempty"`
	Location     *Location `gorm:"foreignKey:LocationID" json:"location,omitempty"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// FullName joins first and last name for display.
func (u *User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserPublicProfile holds the public fields of a user.
// It is what gets snapshotted into notification and endorsement records.
type UserPublicProfile struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}
