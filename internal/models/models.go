package models

import (
	"time"
)

type User struct {
	ID           uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string `gorm:"not null"                 json:"name"`
	Email        string `gorm:"uniqueIndex;not null"     json:"email"`
	PasswordHash string `gorm:"not null"                 json:"-"`
	Role         string `gorm:"not null;default:user"    json:"role"`
}

// RefreshToken is one row per issued refresh token. A token is valid only
// while its row exists and ExpiresAt is in the future; logout deletes the row.
type RefreshToken struct {
	ID        uint   `gorm:"primaryKey"           json:"id"`
	Token     string `gorm:"uniqueIndex;not null" json:"token"`
	UserID    uint   `gorm:"index;not null"       json:"user_id"`
	ExpiresAt int64  `gorm:"not null"             json:"expires_at"`
}

type Category struct {
	ID   uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"uniqueIndex;not null"     json:"name"`
}

type Job struct {
	ID              uint      `gorm:"primaryKey;autoIncrement"   json:"id"`
	Title           string    `gorm:"not null"                   json:"title"`
	Description     string    `gorm:"not null"                   json:"description"`
	CategoryID      uint      `gorm:"index;not null"             json:"category_id"`
	UserID          uint      `gorm:"index;not null"             json:"user_id"`
	Remote          bool      `gorm:"default:false"              json:"remote"`
	JobType         string    `gorm:"not null;default:full-time" json:"job_type"`
	ExperienceLevel string    `gorm:"not null;default:entry"     json:"experience_level"`
	CreatedAt       time.Time `json:"created_at"`
}

type Comment struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Content   string    `gorm:"not null"                 json:"content"`
	JobID     uint      `gorm:"index;not null"           json:"job_id"`
	UserID    uint      `gorm:"index;not null"           json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
