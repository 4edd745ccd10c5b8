package api

import (
	"fmt"
	"net/http"
	"strings"

	"bitwise74/matrix-api/model"
	"bitwise74/matrix-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type problemUpdateBody struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	OrderNumber *int    `json:"orderNumber"`
}

// ProblemUpdate changes a single problem inside a matrix. A new order
// number that collides with a sibling fails with Conflict and leaves the
// matrix untouched.
func (a *API) ProblemUpdate(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	matrixID := c.Param("id")
	problemID := c.Param("problemId")

	var data problemUpdateBody
	if err := c.BindJSON(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})

		zap.L().Debug("Failed to read JSON body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if errs := problemFieldErrors(&data); errs != nil {
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

	problem := matrix.ProblemByID(problemID)
	if problem == nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error":     "Problem not found",
			"requestID": requestID,
		})
		return
	}

	if data.OrderNumber != nil && *data.OrderNumber != problem.OrderNumber {
		for i := range matrix.Problems {
			sibling := &matrix.Problems[i]
			if sibling.ID != problemID && sibling.OrderNumber == *data.OrderNumber {
				c.JSON(http.StatusConflict, gin.H{
					"error":     "This order number is already in use by another problem",
					"requestID": requestID,
				})
				return
			}
		}

		problem.OrderNumber = *data.OrderNumber
	}

	if data.Name != nil {
		problem.Name = *data.Name
	}

	if data.Description != nil {
		problem.Description = *data.Description
	}

	err = a.DB.Model(model.Problem{}).
		Where("id = ?", problem.ID).
		Updates(map[string]any{
			"name":         problem.Name,
			"description":  problem.Description,
			"order_number": problem.OrderNumber,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to update problem", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"problem":   problem,
		"requestID": requestID,
	})
}

func problemFieldErrors(data *problemUpdateBody) []string {
	var errs []string

	if data.Name != nil {
		*data.Name = strings.TrimSpace(*data.Name)

		if *data.Name == "" {
			errs = append(errs, "problem name can't be empty")
		} else if len(*data.Name) > validators.MaxNameLen {
			errs = append(errs, fmt.Sprintf("problem name can't exceed %d characters", validators.MaxNameLen))
		}
	}

	if data.Description != nil {
		*data.Description = strings.TrimSpace(*data.Description)

		if *data.Description == "" {
			errs = append(errs, "problem description can't be empty")
		} else if len(*data.Description) > validators.MaxDescriptionLen {
			errs = append(errs, fmt.Sprintf("problem description can't exceed %d characters", validators.MaxDescriptionLen))
		}
	}

	if data.OrderNumber != nil && *data.OrderNumber < 0 {
		errs = append(errs, "problem order number must be 0 or greater")
	}

	return errs
}
