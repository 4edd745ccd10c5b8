package validators

import (
	"fmt"
	"slices"
	"strings"
)

const (
	// Grid bounds. A matrix always has exactly as many problems as grid
	// rows, so the problem count shares the same ceiling up to MaxProblems
	MinGridSize = 2
	MaxGridSize = 20
	MinCellVal  = 0
	MaxCellVal  = 4

	MinProblems = 2
	MaxProblems = 12

	MaxNameLen        = 100
	MaxDescriptionLen = 500
)

// ProblemPayload is a single inbound problem. OrderNumber is a pointer so
// a missing field can be told apart from an explicit 0.
type ProblemPayload struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	OrderNumber *int   `json:"orderNumber"`
}

type MatrixCreatePayload struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	References  [][]int          `json:"references"`
	Problems    []ProblemPayload `json:"problems"`
}

// MatrixUpdatePayload carries partial updates. nil fields are absent and
// leave the stored value untouched.
type MatrixUpdatePayload struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	References  [][]int          `json:"references"`
	Problems    []ProblemPayload `json:"problems"`
	Status      *string          `json:"status"`
}

// MatrixCreateValidator normalizes the payload in place and returns a list
// of field error messages, or nil if the payload is valid. It never touches
// storage, cross-field invariants included.
func MatrixCreateValidator(p *MatrixCreatePayload) []string {
	var errs []string

	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)

	if p.Name == "" {
		errs = append(errs, "matrix name is required")
	} else if len(p.Name) > MaxNameLen {
		errs = append(errs, fmt.Sprintf("matrix name can't exceed %d characters", MaxNameLen))
	}

	if len(p.Description) > MaxDescriptionLen {
		errs = append(errs, fmt.Sprintf("matrix description can't exceed %d characters", MaxDescriptionLen))
	}

	errs = append(errs, referencesErrors(p.References)...)
	errs = append(errs, problemsErrors(p.Problems)...)

	if len(p.Problems) != len(p.References) {
		errs = append(errs, "the number of problems must match the dimensions of the references matrix")
	}

	return errs
}

// MatrixUpdateValidator validates only the fields present in the payload.
// When both references and problems are supplied the same cross-field
// checks as creation apply.
func MatrixUpdateValidator(p *MatrixUpdatePayload) []string {
	var errs []string

	if p.Name != nil {
		*p.Name = strings.TrimSpace(*p.Name)

		if *p.Name == "" {
			errs = append(errs, "matrix name can't be empty")
		} else if len(*p.Name) > MaxNameLen {
			errs = append(errs, fmt.Sprintf("matrix name can't exceed %d characters", MaxNameLen))
		}
	}

	if p.Description != nil {
		*p.Description = strings.TrimSpace(*p.Description)

		if len(*p.Description) > MaxDescriptionLen {
			errs = append(errs, fmt.Sprintf("matrix description can't exceed %d characters", MaxDescriptionLen))
		}
	}

	if p.References != nil {
		errs = append(errs, referencesErrors(p.References)...)
	}

	if p.Problems != nil {
		errs = append(errs, problemsErrors(p.Problems)...)
	}

	if p.References != nil && p.Problems != nil && len(p.Problems) != len(p.References) {
		errs = append(errs, "the number of problems must match the dimensions of the references matrix")
	}

	if p.Status != nil && !slices.Contains(matrixStatuses, *p.Status) {
		errs = append(errs, "status must be one of DRAFT, COMPLETED or ARCHIVED")
	}

	return errs
}

// Mirrors model.MatrixStatuses without importing the model package
var matrixStatuses = []string{"DRAFT", "COMPLETED", "ARCHIVED"}

func referencesErrors(refs [][]int) []string {
	var errs []string

	if len(refs) == 0 {
		errs = append(errs, "the references matrix can't be empty")
		return errs
	}

	if len(refs) < MinGridSize {
		errs = append(errs, fmt.Sprintf("the references matrix must be at least %dx%d", MinGridSize, MinGridSize))
	}

	if len(refs) > MaxGridSize {
		errs = append(errs, fmt.Sprintf("the references matrix can't exceed %dx%d", MaxGridSize, MaxGridSize))
	}

	square := true
	for _, row := range refs {
		if len(row) != len(refs) {
			square = false
			break
		}
	}

	if !square {
		errs = append(errs, "the references matrix must be square")
	}

	for _, row := range refs {
		for _, cell := range row {
			if cell < MinCellVal || cell > MaxCellVal {
				errs = append(errs, fmt.Sprintf("all matrix values must be integers between %d and %d", MinCellVal, MaxCellVal))
				return errs
			}
		}
	}

	return errs
}

func problemsErrors(problems []ProblemPayload) []string {
	var errs []string

	if len(problems) < MinProblems {
		errs = append(errs, fmt.Sprintf("a matrix must have at least %d problems", MinProblems))
	}

	if len(problems) > MaxProblems {
		errs = append(errs, fmt.Sprintf("a matrix can't have more than %d problems", MaxProblems))
	}

	seen := make(map[int]bool, len(problems))
	duplicate := false

	for i := range problems {
		p := &problems[i]

		p.Name = strings.TrimSpace(p.Name)
		p.Description = strings.TrimSpace(p.Description)

		if p.Name == "" {
			errs = append(errs, fmt.Sprintf("problem %d has no name", i))
		} else if len(p.Name) > MaxNameLen {
			errs = append(errs, fmt.Sprintf("problem %d name can't exceed %d characters", i, MaxNameLen))
		}

		if p.Description == "" {
			errs = append(errs, fmt.Sprintf("problem %d has no description", i))
		} else if len(p.Description) > MaxDescriptionLen {
			errs = append(errs, fmt.Sprintf("problem %d description can't exceed %d characters", i, MaxDescriptionLen))
		}

		switch {
		case p.OrderNumber == nil:
			errs = append(errs, fmt.Sprintf("problem %d has no order number", i))
		case *p.OrderNumber < 0:
			errs = append(errs, fmt.Sprintf("problem %d order number must be 0 or greater", i))
		default:
			if seen[*p.OrderNumber] {
				duplicate = true
			}
			seen[*p.OrderNumber] = true
		}
	}

	if duplicate {
		errs = append(errs, "problem order numbers must be unique")
	}

	return errs
}
