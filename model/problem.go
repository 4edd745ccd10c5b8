package model

import "time"

type Problem struct {
	ID       string `gorm:"primaryKey" json:"id"`
	MatrixID string `gorm:"index" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"not null" json:"description"`

	// Position of the problem within its matrix. Unique per matrix
	OrderNumber int `json:"orderNumber"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
