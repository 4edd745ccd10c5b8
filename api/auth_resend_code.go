package api

import (
	"net/http"

	"bitwise74/matrix-api/model"
	"bitwise74/matrix-api/security"
	"bitwise74/matrix-api/service"
	"bitwise74/matrix-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type resendCodeBody struct {
	Email string `json:"email"`
}

// AuthResendCode re-issues the registration verification code with a fresh
// expiry, replacing whatever code was pending before.
func (a *API) AuthResendCode(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data resendCodeBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return
	}

	email, err := validators.EmailValidator(data.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return
	}

	var user model.User
	if err := a.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if user.Status == model.StatusActive {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Account is already verified",
			"requestID": requestID,
		})
		return
	}

	emailSent, err := a.issueCode(&user, security.RegisterCodeLifetime, service.PurposeVerification)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to re-issue verification code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"emailSent": emailSent,
		"requestID": requestID,
	})
}
