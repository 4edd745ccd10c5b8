package api

import (
	"net/http"

	"bitwise74/matrix-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (a *API) MatrixFetch(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	matrixID := c.Param("id")
	if matrixID == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No matrix ID provided",
			"requestID": requestID,
		})
		return
	}

	var matrix model.Matrix

	err := a.DB.
		Where("user_id = ? AND id = ?", userID, matrixID).
		Preload("Problems", problemOrder).
		First(&matrix).
		Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "Matrix not found. It either doesn't exist or you don't own it",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to fetch matrix", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matrix":    matrix,
		"requestID": requestID,
	})
}
