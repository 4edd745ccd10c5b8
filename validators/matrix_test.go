package validators

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func intp(v int) *int { return &v }

func validCreatePayload() MatrixCreatePayload {
	return MatrixCreatePayload{
		Name: "Urban problems",
		References: [][]int{
			{0, 1},
			{1, 0},
		},
		Problems: []ProblemPayload{
			{Name: "A", Description: "d", OrderNumber: intp(0)},
			{Name: "B", Description: "d", OrderNumber: intp(1)},
		},
	}
}

func TestMatrixCreateValidator(t *testing.T) {
	t.Parallel()

	t.Run("accepts a minimal 2x2 matrix", func(t *testing.T) {
		p := validCreatePayload()
		require.Nil(t, MatrixCreateValidator(&p))
	})

	t.Run("accepts cell value 4", func(t *testing.T) {
		p := validCreatePayload()
		p.References = [][]int{{0, 4}, {4, 0}}
		require.Nil(t, MatrixCreateValidator(&p))
	})

	t.Run("rejects cell value 5", func(t *testing.T) {
		p := validCreatePayload()
		p.References = [][]int{{0, 5}, {1, 0}}
		require.NotEmpty(t, MatrixCreateValidator(&p))
	})

	t.Run("rejects negative cell values", func(t *testing.T) {
		p := validCreatePayload()
		p.References = [][]int{{0, -1}, {1, 0}}
		require.NotEmpty(t, MatrixCreateValidator(&p))
	})

	t.Run("rejects a 1x1 matrix", func(t *testing.T) {
		p := validCreatePayload()
		p.References = [][]int{{0}}
		p.Problems = p.Problems[:1]
		require.NotEmpty(t, MatrixCreateValidator(&p))
	})

	t.Run("rejects a non-square matrix", func(t *testing.T) {
		p := validCreatePayload()
		p.References = [][]int{{0, 1}, {1, 0, 2}}
		require.Contains(t, MatrixCreateValidator(&p), "the references matrix must be square")
	})

	t.Run("rejects an empty references matrix", func(t *testing.T) {
		p := validCreatePayload()
		p.References = nil
		require.Contains(t, MatrixCreateValidator(&p), "the references matrix can't be empty")
	})

	t.Run("rejects more than 12 problems", func(t *testing.T) {
		p := MatrixCreatePayload{Name: "big"}

		refs := make([][]int, 13)
		for i := range refs {
			refs[i] = make([]int, 13)
		}
		p.References = refs

		for i := 0; i < 13; i++ {
			p.Problems = append(p.Problems, ProblemPayload{
				Name: "P", Description: "d", OrderNumber: intp(i),
			})
		}

		require.NotEmpty(t, MatrixCreateValidator(&p))
	})

	t.Run("rejects dimension mismatch", func(t *testing.T) {
		p := validCreatePayload()
		p.Problems = append(p.Problems, ProblemPayload{
			Name: "C", Description: "d", OrderNumber: intp(2),
		})

		require.Contains(t, MatrixCreateValidator(&p),
			"the number of problems must match the dimensions of the references matrix")
	})

	t.Run("rejects duplicate order numbers", func(t *testing.T) {
		p := validCreatePayload()
		p.Problems[1].OrderNumber = intp(0)

		require.Contains(t, MatrixCreateValidator(&p), "problem order numbers must be unique")
	})

	t.Run("rejects a missing order number", func(t *testing.T) {
		p := validCreatePayload()
		p.Problems[0].OrderNumber = nil
		require.NotEmpty(t, MatrixCreateValidator(&p))
	})

	t.Run("rejects empty problem names and descriptions", func(t *testing.T) {
		p := validCreatePayload()
		p.Problems[0].Name = "   "
		p.Problems[1].Description = ""
		require.Len(t, MatrixCreateValidator(&p), 2)
	})

	t.Run("rejects overlong fields", func(t *testing.T) {
		p := validCreatePayload()
		p.Name = strings.Repeat("x", MaxNameLen+1)
		p.Problems[0].Description = strings.Repeat("y", MaxDescriptionLen+1)
		require.Len(t, MatrixCreateValidator(&p), 2)
	})

	t.Run("trims names and descriptions in place", func(t *testing.T) {
		p := validCreatePayload()
		p.Name = "  spaced  "
		p.Problems[0].Name = " A "

		require.Nil(t, MatrixCreateValidator(&p))
		require.Equal(t, "spaced", p.Name)
		require.Equal(t, "A", p.Problems[0].Name)
	})
}

func TestMatrixUpdateValidator(t *testing.T) {
	t.Parallel()

	strp := func(s string) *string { return &s }

	t.Run("empty payload is valid", func(t *testing.T) {
		p := MatrixUpdatePayload{}
		require.Nil(t, MatrixUpdateValidator(&p))
	})

	t.Run("rejects blanking the name", func(t *testing.T) {
		p := MatrixUpdatePayload{Name: strp("  ")}
		require.Contains(t, MatrixUpdateValidator(&p), "matrix name can't be empty")
	})

	t.Run("rejects an unknown status", func(t *testing.T) {
		p := MatrixUpdatePayload{Status: strp("DONE")}
		require.NotEmpty(t, MatrixUpdateValidator(&p))
	})

	t.Run("cross-checks both fields when supplied together", func(t *testing.T) {
		p := MatrixUpdatePayload{
			References: [][]int{{0, 1}, {1, 0}},
			Problems: []ProblemPayload{
				{Name: "A", Description: "d", OrderNumber: intp(0)},
				{Name: "B", Description: "d", OrderNumber: intp(1)},
				{Name: "C", Description: "d", OrderNumber: intp(2)},
			},
		}

		require.Contains(t, MatrixUpdateValidator(&p),
			"the number of problems must match the dimensions of the references matrix")
	})

	t.Run("skips cross-check when only one side is supplied", func(t *testing.T) {
		p := MatrixUpdatePayload{
			Problems: []ProblemPayload{
				{Name: "A", Description: "d", OrderNumber: intp(0)},
				{Name: "B", Description: "d", OrderNumber: intp(1)},
			},
		}

		require.Nil(t, MatrixUpdateValidator(&p))
	})

	t.Run("still rejects duplicate order numbers", func(t *testing.T) {
		p := MatrixUpdatePayload{
			Problems: []ProblemPayload{
				{Name: "A", Description: "d", OrderNumber: intp(1)},
				{Name: "B", Description: "d", OrderNumber: intp(1)},
			},
		}

		require.Contains(t, MatrixUpdateValidator(&p), "problem order numbers must be unique")
	})
}
