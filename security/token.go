package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
)

const (
	PurposeAuth  = "auth"
	PurposeReset = "password_reset"

	AuthTokenLifetime  = time.Hour * 24 * 7
	ResetTokenLifetime = time.Hour
)

var (
	ErrTokenInvalid = errors.New("token is invalid or expired")
	ErrWrongPurpose = errors.New("token was issued for a different purpose")
)

// MakeToken mints a signed HS256 token carrying the user's identity, a
// purpose claim and an expiry.
func MakeToken(userID, purpose string, lifetime time.Duration) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"type":    purpose,
		"iat":     time.Now().Unix(),
		"exp":     time.Now().Add(lifetime).Unix(),
	})

	return t.SignedString([]byte(viper.GetString("jwt.secret")))
}

// ParseToken verifies signature, expiry and purpose of a token and returns
// the embedded user ID.
func ParseToken(tokenStr, purpose string) (userID string, err error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, fmt.Errorf("unexpected signing method: %s", t.Method.Alg())
		}

		return []byte(viper.GetString("jwt.secret")), nil
	})
	if err != nil || !token.Valid {
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrTokenInvalid
	}

	// jwt.Parse already rejects expired tokens when an exp claim is
	// present, but a token without one is never accepted either
	if _, ok := claims["exp"].(float64); !ok {
		return "", ErrTokenInvalid
	}

	if p, _ := claims["type"].(string); p != purpose {
		return "", ErrWrongPurpose
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", ErrTokenInvalid
	}

	return userID, nil
}
