package api

import (
	"net/http"
	"time"

	"bitwise74/matrix-api/model"
	"bitwise74/matrix-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// MatrixUpdate applies a partial update to a matrix. Only name,
// description, references, problems and status can change; absent fields
// keep their stored values. The merged result must satisfy every creation
// invariant, a payload that would leave the grid and the problem list with
// different dimensions is rejected rather than padded.
func (a *API) MatrixUpdate(c *gin.Context) {
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

	var data validators.MatrixUpdatePayload
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to read JSON body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if errs := validators.MatrixUpdateValidator(&data); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Validation failed",
			"errors":    errs,
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

	if data.Name != nil {
		matrix.Name = *data.Name
	}

	if data.Description != nil {
		matrix.Description = *data.Description
	}

	if data.References != nil {
		matrix.References = model.Grid(data.References)
	}

	replaceProblems := data.Problems != nil
	if replaceProblems {
		matrix.Problems, err = buildProblems(matrix.ID, data.Problems)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":     "Internal server error",
				"requestID": requestID,
			})

			zap.L().Error("Failed to generate problem IDs", zap.Error(err), zap.String("requestID", requestID))
			return
		}
	}

	// The cross-field check has to run against the merged state: updating
	// one side of the pair against a stored counterpart of a different
	// size would corrupt the matrix
	if len(matrix.Problems) != matrix.References.Size() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Validation failed",
			"errors":    []string{"the number of problems must match the dimensions of the references matrix"},
			"requestID": requestID,
		})
		return
	}

	if data.Status != nil {
		if *data.Status == model.MatrixCompleted && matrix.Status != model.MatrixCompleted {
			now := time.Now()
			matrix.CompletedDate = &now
		}

		matrix.Status = *data.Status
	}

	err = a.DB.Transaction(func(tx *gorm.DB) error {
		if replaceProblems {
			if err := tx.Where("matrix_id = ?", matrix.ID).Delete(model.Problem{}).Error; err != nil {
				return err
			}
		}

		return tx.Session(&gorm.Session{FullSaveAssociations: replaceProblems}).Save(&matrix).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update matrix", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matrix":    matrix,
		"requestID": requestID,
	})
}
