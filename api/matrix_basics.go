package api

import (
	"net/http"
	"sort"
	"time"

	"bitwise74/matrix-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// matrixBasic is the trimmed-down shape the frontend sidebar renders.
type matrixBasic struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	ProblemsCount int       `json:"problemsCount"`
	LastActivity  time.Time `json:"lastActivity"`
	FirstProblem  string    `json:"firstProblem"`
}

// MatrixBasics returns a recency-sorted projection of the user's matrices
// plus summary counts. Read-only, safe to cache briefly.
func (a *API) MatrixBasics(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var matrices []model.Matrix

	err := a.DB.
		Where("user_id = ?", userID).
		Preload("Problems", problemOrder).
		Find(&matrices).
		Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch matrices", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	basics := make([]matrixBasic, 0, len(matrices))
	var active, completed, drafts int

	for i := range matrices {
		m := &matrices[i]

		firstProblem := "No problems defined"
		if len(m.Problems) > 0 {
			firstProblem = m.Problems[0].Name
		}

		basics = append(basics, matrixBasic{
			ID:            m.ID,
			Name:          m.Name,
			Description:   m.Description,
			Status:        m.Status,
			CreatedAt:     m.CreatedAt,
			UpdatedAt:     m.UpdatedAt,
			ProblemsCount: len(m.Problems),
			LastActivity:  m.LastActivity(),
			FirstProblem:  firstProblem,
		})

		switch m.Status {
		case model.MatrixCompleted:
			completed++
			active++
		case model.MatrixDraft:
			drafts++
			active++
		}
	}

	sort.Slice(basics, func(i, j int) bool {
		return basics[i].LastActivity.After(basics[j].LastActivity)
	})

	c.JSON(http.StatusOK, gin.H{
		"matrices": basics,
		"total":    len(basics),
		"summary": gin.H{
			"active":    active,
			"completed": completed,
			"drafts":    drafts,
		},
		"requestID": requestID,
	})
}
