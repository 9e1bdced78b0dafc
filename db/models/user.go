package models

import "time"

// User represents an application login. The wire contract addresses users by
// their integer Id, so the surrogate key is a plain auto-increment.
type User struct {
	ID           uint      `gorm:"primaryKey" json:"Id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"Username"`
	PasswordHash string    `gorm:"not null" json:"-"` // Never include in JSON responses
	IsAdmin      bool      `gorm:"default:false" json:"IsAdmin"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"CreatedAt"`
}
