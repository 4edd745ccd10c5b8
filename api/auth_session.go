package api

import (
	"net/http"

	"bitwise74/matrix-api/model"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthVerify returns the authenticated user. Runs behind the JWT
// middleware, so the identity is already resolved.
func (a *API) AuthVerify(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)

	var user model.User
	if err := a.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to load user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user":      user,
		"requestID": requestID,
	})
}

// AuthLogout clears the session cookie. Tokens are stateless so there is
// nothing to revoke server-side.
func (a *API) AuthLogout(c *gin.Context) {
	clearAuthCookie(c)
	c.Status(http.StatusOK)
}
