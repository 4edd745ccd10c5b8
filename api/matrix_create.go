package api

import (
	"net/http"

	"bitwise74/matrix-api/model"
	"bitwise74/matrix-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (a *API) MatrixCreate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var data validators.MatrixCreatePayload
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to read JSON body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if errs := validators.MatrixCreateValidator(&data); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Validation failed",
			"errors":    errs,
			"requestID": requestID,
		})
		return
	}

	matrixID, err := newID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate matrix ID", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	matrix := model.Matrix{
		ID:          matrixID,
		UserID:      userID,
		Name:        data.Name,
		Description: data.Description,
		References:  model.Grid(data.References),
		Status:      model.MatrixDraft,
	}

	matrix.Problems, err = buildProblems(matrixID, data.Problems)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate problem IDs", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if err := a.DB.Create(&matrix).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to create matrix", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"matrix":    matrix,
		"requestID": requestID,
	})
}

// buildProblems turns validated problem payloads into rows with fresh IDs.
func buildProblems(matrixID string, payloads []validators.ProblemPayload) ([]model.Problem, error) {
	problems := make([]model.Problem, 0, len(payloads))

	for _, p := range payloads {
		id, err := newID()
		if err != nil {
			return nil, err
		}

		problems = append(problems, model.Problem{
			ID:          id,
			MatrixID:    matrixID,
			Name:        p.Name,
			Description: p.Description,
			OrderNumber: *p.OrderNumber,
		})
	}

	return problems, nil
}
