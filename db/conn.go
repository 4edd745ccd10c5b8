// Package db contains things related to SQLite
package db

import (
	"fmt"

	"bitwise74/matrix-api/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// New opens the SQLite database at the given path and migrates the schema.
// Tests pass an in-memory DSN here.
func New(path string) (*gorm.DB, error) {
	// TranslateError turns driver unique-constraint failures into
	// gorm.ErrDuplicatedKey so handlers can answer Conflict
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite database, %w", err)
	}

	err = db.AutoMigrate(model.User{}, model.Matrix{}, model.Problem{})
	if err != nil {
		return nil, fmt.Errorf("failed to automigrate tables, %w", err)
	}

	return db, nil
}
