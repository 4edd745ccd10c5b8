package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Custom implementation of the [][]int serializer

type Grid [][]int

// Value implements the driver.Valuer interface.
// The grid is stored as a JSON string since nesting rules out
// simple separator joins.
func (g Grid) Value() (driver.Value, error) {
	if len(g) == 0 {
		return "[]", nil
	}

	b, err := json.Marshal(g)
	if err != nil {
		return "", fmt.Errorf("failed to serialize grid, %w", err)
	}

	return string(b), nil
}

// Scan implements the sql.Scanner interface.
// This defines how the database value is converted back into go.
func (g *Grid) Scan(value interface{}) error {
	if value == nil {
		*g = Grid{}
		return nil
	}

	str, ok := value.(string)
	if !ok {
		b, ok := value.([]byte)
		if !ok {
			return fmt.Errorf("failed to scan Grid, %v", value)
		}

		str = string(b)
	}

	if str == "" {
		*g = Grid{}
		return nil
	}

	return json.Unmarshal([]byte(str), g)
}

// Size returns the row count of the grid.
func (g Grid) Size() int {
	return len(g)
}
