package models

import (
	"time"
)

// DateLayout is how Post.Date is stamped, e.g. "March 04, 2024".
const DateLayout = "January 02, 2006"

type Post struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      User      `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"author"`
	Title     string    `gorm:"size:250;uniqueIndex;not null" json:"title"`
	Subtitle  string    `gorm:"size:250;not null" json:"subtitle"`
	Date      string    `gorm:"size:250;not null" json:"date"` // display date, set once at creation
	Body      string    `gorm:"type:text;not null" json:"body"`
	ImgURL    string    `gorm:"size:250;not null" json:"img_url"`
	Comments  []Comment `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
