package models

import (
	"time"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Email     string    `gorm:"size:250;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:250;not null" json:"-"` // bcrypt hash
	Name      string    `gorm:"size:250;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
