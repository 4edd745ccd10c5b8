package api

import (
	"net/http"
	"slices"

	"bitwise74/matrix-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) MatrixList(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	status := c.Query("status")
	if status != "" && !slices.Contains(model.MatrixStatuses, status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "status must be one of DRAFT, COMPLETED or ARCHIVED",
			"requestID": requestID,
		})
		return
	}

	q := a.DB.
		Where("user_id = ?", userID).
		Preload("Problems", problemOrder)

	if status != "" {
		q = q.Where("status = ?", status)
	}

	var matrices []model.Matrix
	if err := q.Find(&matrices).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch matrices", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matrices":  matrices,
		"total":     len(matrices),
		"requestID": requestID,
	})
}

// Problems always come back in their matrix order
func problemOrder(db *gorm.DB) *gorm.DB {
	return db.Order("order_number ASC")
}
