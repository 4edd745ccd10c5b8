package api

import (
	"crypto/subtle"
	"time"

	"bitwise74/matrix-api/model"
	"bitwise74/matrix-api/security"
	"bitwise74/matrix-api/service"

	"github.com/gin-gonic/gin"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

func newID() (string, error) {
	return gonanoid.Generate(idCharset, 16)
}

func setAuthCookie(c *gin.Context, token string) {
	c.SetCookie("auth_token", token,
		int(security.AuthTokenLifetime.Seconds()),
		"/", "", viper.GetBool("host.ssl.enabled"), true)
}

func clearAuthCookie(c *gin.Context) {
	c.SetCookie("auth_token", "", -1, "/", "", viper.GetBool("host.ssl.enabled"), true)
}

func codeMatches(issued, provided string) bool {
	return subtle.ConstantTimeCompare([]byte(issued), []byte(provided)) == 1
}

// issueCode stamps a fresh verification code on the user, persists it and
// only then mails it, so a failed send never leaves the code unset.
// The returned flag tells whether the mail went out.
func (a *API) issueCode(user *model.User, lifetime time.Duration, purpose string) (emailSent bool, err error) {
	code, err := security.GenerateCode()
	if err != nil {
		return false, err
	}

	expires := time.Now().Add(lifetime)
	user.VerificationCode = &code
	user.VerificationCodeExpires = &expires

	err = a.DB.Model(model.User{}).
		Where("id = ?", user.ID).
		Updates(map[string]any{
			"verification_code":         code,
			"verification_code_expires": expires,
		}).Error
	if err != nil {
		return false, err
	}

	err = a.Mailer.Send(&service.Mail{
		To:      user.Email,
		Name:    user.Username,
		Purpose: purpose,
		Code:    code,
	})
	if err != nil {
		zap.L().Error("Failed to send code mail",
			zap.String("purpose", purpose), zap.Error(err))
		return false, nil
	}

	return true, nil
}
