package api

import (
	"net/http"

	"bitwise74/matrix-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatrixDelete removes a matrix and its problems. Deleting an already
// removed ID is not idempotent, it reports NotFound again.
func (a *API) MatrixDelete(c *gin.Context) {
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

	err := a.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.
			Where("user_id = ? AND id = ?", userID, matrixID).
			Delete(model.Matrix{})
		if res.Error != nil {
			return res.Error
		}

		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.
			Where("matrix_id = ?", matrixID).
			Delete(model.Problem{}).
			Error
	})
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

		zap.L().Error("Failed to delete matrix", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Matrix deleted successfully",
		"requestID": requestID,
	})
}
