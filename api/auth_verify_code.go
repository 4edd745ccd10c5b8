package api

import (
	"net/http"
	"time"

	"bitwise74/matrix-api/model"
	"bitwise74/matrix-api/security"
	"bitwise74/matrix-api/validators"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type verifyCodeBody struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// AuthVerifyCode consumes the emailed registration code and activates the
// account. The code is single-use: consumed, mismatching attempts aside,
// or seen expired, it is cleared.
func (a *API) AuthVerifyCode(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	user, ok := a.lookupCodeOwner(c)
	if !ok {
		return
	}

	if user.Status == model.StatusActive {
		c.JSON(http.StatusConflict, gin.H{
			"error":     "Account is already verified",
			"requestID": requestID,
		})
		return
	}

	if !a.checkPendingCode(c, user) {
		return
	}

	err := a.DB.Model(model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"status":                    model.StatusActive,
			"verification_code":         nil,
			"verification_code_expires": nil,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to activate user", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.Status = model.StatusActive
	user.ClearCode()

	a.issueSession(c, user)
}

// AuthSecondFactor consumes the emailed login code and mints the session
// token. Only ACTIVE accounts get here; registration codes on pending
// accounts belong to AuthVerifyCode.
func (a *API) AuthSecondFactor(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	user, ok := a.lookupCodeOwner(c)
	if !ok {
		return
	}

	// A pending account only holds a registration code. Refusing here keeps
	// that code alive for verifyCode instead of burning it on a login that
	// could never finish
	if user.Status != model.StatusActive {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "account_not_verified",
			"requestID": requestID,
		})
		return
	}

	if !a.checkPendingCode(c, user) {
		return
	}

	err := a.DB.Model(model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"verification_code":         nil,
			"verification_code_expires": nil,
		}).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to clear login code", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	user.ClearCode()

	a.issueSession(c, user)
}

// lookupCodeOwner binds the email+code body and resolves the user. On
// failure the response is already written and ok is false.
func (a *API) lookupCodeOwner(c *gin.Context) (user *model.User, ok bool) {
	requestID := c.MustGet("requestID").(string)

	var data verifyCodeBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Malformed or invalid JSON request body",
			"requestID": requestID,
		})
		return nil, false
	}

	email, err := validators.EmailValidator(data.Email)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     err.Error(),
			"requestID": requestID,
		})
		return nil, false
	}

	if len(data.Code) != security.CodeDigits {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Incorrect code",
			"requestID": requestID,
		})
		return nil, false
	}

	var u model.User
	if err := a.DB.Where("email = ?", email).First(&u).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{
				"error":     "User not found",
				"requestID": requestID,
			})
			return nil, false
		}

		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to look up user", zap.Error(err), zap.String("requestID", requestID))
		return nil, false
	}

	c.Set("pendingCode", data.Code)

	return &u, true
}

// checkPendingCode verifies the code bound by lookupCodeOwner against the
// user's stored one. Expired codes are cleared before the failure is
// reported so they never linger.
func (a *API) checkPendingCode(c *gin.Context, user *model.User) bool {
	requestID := c.MustGet("requestID").(string)
	code := c.GetString("pendingCode")

	if user.VerificationCode == nil || user.VerificationCodeExpires == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "No verification code was issued, request a new one",
			"requestID": requestID,
		})
		return false
	}

	if time.Now().After(*user.VerificationCodeExpires) {
		err := a.DB.Model(model.User{}).
			Where("id = ?", user.ID).
			Updates(map[string]any{
				"verification_code":         nil,
				"verification_code_expires": nil,
			}).Error
		if err != nil {
			zap.L().Error("Failed to clear expired code", zap.Error(err), zap.String("requestID", requestID))
		}

		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Code expired, request a new one",
			"requestID": requestID,
		})
		return false
	}

	if !codeMatches(*user.VerificationCode, code) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Incorrect code",
			"requestID": requestID,
		})
		return false
	}

	return true
}

// issueSession mints the 7-day session token, sets the cookie and writes
// the success body.
func (a *API) issueSession(c *gin.Context, user *model.User) {
	requestID := c.MustGet("requestID").(string)

	token, err := security.MakeToken(user.ID, security.PurposeAuth, security.AuthTokenLifetime)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":     "Internal server error",
			"requestID": requestID,
		})

		zap.L().Error("Failed to generate JWT auth token", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	setAuthCookie(c, token)

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"user":      user,
		"requestID": requestID,
	})
}
