package api

import (
	"net/http"
	"time"

	"bitwise74/matrix-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MatrixStatistics aggregates the user's matrices per status along with the
// latest modification timestamp. Pure read-side projection.
func (a *API) MatrixStatistics(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var matrices []model.Matrix

	err := a.DB.
		Where("user_id = ?", userID).
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

	var drafts, completed, archived int
	var lastModification *time.Time

	for i := range matrices {
		switch matrices[i].Status {
		case model.MatrixDraft:
			drafts++
		case model.MatrixCompleted:
			completed++
		case model.MatrixArchived:
			archived++
		}

		t := matrices[i].LastActivity()
		if lastModification == nil || t.After(*lastModification) {
			lastModification = &t
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"statistics": gin.H{
			"total":            len(matrices),
			"drafts":           drafts,
			"completed":        completed,
			"archived":         archived,
			"lastModification": lastModification,
		},
		"requestID": requestID,
	})
}
