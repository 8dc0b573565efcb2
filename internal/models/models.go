package models

import (
	"time"
)

// Seasons is the fixed set of values accepted for a post's best season.
var Seasons = []string{"Any", "Summer", "Winter", "Spring", "Autumn", "Monsoon"}

// ValidSeason reports whether s is one of the allowed season values.
func ValidSeason(s string) bool {
	for _, v := range Seasons {
		if s == v {
			return true
		}
	}
	return false
}

// Post is a single trip entry submitted through the form.
type Post struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	UserID       uint        `gorm:"not null" json:"user_id"`
	Title        string      `gorm:"not null" json:"title"`
	LocationName string      `gorm:"not null" json:"location_name"`
	Latitude     *float64    `json:"latitude"`
	Longitude    *float64    `json:"longitude"`
	Experience   string      `gorm:"type:text;not null" json:"experience"`
	Budget       float64     `gorm:"not null" json:"budget"`
	DurationDays *int        `json:"duration_days"`
	BestSeason   string      `gorm:"not null;default:Any" json:"best_season"`
	CreatedAt    time.Time   `json:"created_at"`
	Images       []PostImage `gorm:"foreignKey:PostID" json:"-"` // Has-many relationship
}

// PostImage is one uploaded photo belonging to exactly one Post. Rows are
// written only inside the owning post's creation transaction.
type PostImage struct {
	ID       uint   `gorm:"primarykey" json:"id"`
	PostID   uint   `gorm:"not null;index" json:"post_id"`
	ImageURL string `gorm:"not null" json:"image_url"`
}
