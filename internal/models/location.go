package models

import "time"

// Location is a shared place record keyed by the geocoder's place id.
// Rows are upserted when a user sets their location and never deleted.
type Location struct {
	PlaceID   string    `gorm:"type:varchar(100);primaryKey" json:"placeId"`
	City      string    `gorm:"type:varchar(100);not null" json:"city"`
	Region    string    `gorm:"type:varchar(100);not null" json:"region"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for the Location model.
func (Location) TableName() string {
	return "locations"
}
