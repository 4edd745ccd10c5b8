// Package model defines database models
package model

import "time"

const (
	StatusPending  = "PENDING"
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type User struct {
	ID           string `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Status       string `gorm:"default:PENDING" json:"status"`

	// A pending code and its expiry. Both are cleared together as soon as
	// the code is consumed or seen expired, never left stale
	VerificationCode        *string    `json:"-"`
	VerificationCodeExpires *time.Time `json:"-"`

	Matrices []Matrix `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ClearCode drops the outstanding verification code and its expiry.
func (u *User) ClearCode() {
	u.VerificationCode = nil
	u.VerificationCodeExpires = nil
}
