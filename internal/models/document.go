package models

// Document is an uploaded resume or reference file owned by a user.
type Document struct {
	BaseModel
	UserID   string `gorm:"type:varchar(36);not null;index" json:"userId"`
	FileName string `gorm:"type:varchar(255);not null" json:"fileName"`
	URL      string `gorm:"type:varchar(255);not null" json:"url"`
	Path     string `gorm:"type:varchar(255);not null" json:"-"` // location in backing storage
	Size     int64  `json:"size"`
	MimeType string `gorm:"type:varchar(100)" json:"mimeType"`
}

// TableName specifies the table name for the Document model.
func (Document) TableName() string {
	return "documents"
}
