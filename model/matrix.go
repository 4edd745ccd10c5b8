package model

import "time"

const (
	MatrixDraft     = "DRAFT"
	MatrixCompleted = "COMPLETED"
	MatrixArchived  = "ARCHIVED"
)

// MatrixStatuses lists every valid matrix status value.
var MatrixStatuses = []string{MatrixDraft, MatrixCompleted, MatrixArchived}

type Matrix struct {
	ID     string `gorm:"primaryKey" json:"id"`
	UserID string `gorm:"index" json:"-"`

	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`

	// Square grid of pairwise scores. Stored as a single JSON column so the
	// whole aggregate travels with the row
	References Grid `gorm:"type:text" json:"references"`

	Problems []Problem `gorm:"foreignKey:MatrixID" json:"problems"`

	Status        string     `gorm:"default:DRAFT" json:"status"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ProblemByID returns the embedded problem with the given ID, or nil.
func (m *Matrix) ProblemByID(id string) *Problem {
	for i := range m.Problems {
		if m.Problems[i].ID == id {
			return &m.Problems[i]
		}
	}

	return nil
}

// LastActivity is the most recent of the matrix's timestamps, used for
// recency ordering in the sidebar listing.
func (m *Matrix) LastActivity() time.Time {
	if m.UpdatedAt.After(m.CreatedAt) {
		return m.UpdatedAt
	}

	return m.CreatedAt
}
