package security

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestArgonHash(t *testing.T) {
	t.Parallel()

	a := NewArgon()

	encoded, err := a.GenerateFromPassword("Passw0rd!")
	require.NoError(t, err)
	require.Contains(t, encoded, "$argon2id$")

	t.Run("verifies the right password", func(t *testing.T) {
		ok, err := a.VerifyPasswd("Passw0rd!", encoded)
		require.NoError(t, err)
		require.True(t, ok)
	})

	t.Run("rejects the wrong password", func(t *testing.T) {
		ok, err := a.VerifyPasswd("Passw0rd?", encoded)
		require.NoError(t, err)
		require.False(t, ok)
	})

	t.Run("rejects a mangled hash", func(t *testing.T) {
		_, err := a.VerifyPasswd("Passw0rd!", "not-a-phc-string")
		require.Error(t, err)
	})

	t.Run("salts are unique per hash", func(t *testing.T) {
		again, err := a.GenerateFromPassword("Passw0rd!")
		require.NoError(t, err)
		require.NotEqual(t, encoded, again)
	})
}

func TestTokens(t *testing.T) {
	viper.Set("jwt.secret", "test-secret")

	t.Run("round trips identity and purpose", func(t *testing.T) {
		token, err := MakeToken("user123", PurposeAuth, AuthTokenLifetime)
		require.NoError(t, err)

		userID, err := ParseToken(token, PurposeAuth)
		require.NoError(t, err)
		require.Equal(t, "user123", userID)
	})

	t.Run("rejects a token minted for another purpose", func(t *testing.T) {
		token, err := MakeToken("user123", PurposeReset, ResetTokenLifetime)
		require.NoError(t, err)

		_, err = ParseToken(token, PurposeAuth)
		require.ErrorIs(t, err, ErrWrongPurpose)
	})

	t.Run("rejects an expired token", func(t *testing.T) {
		token, err := MakeToken("user123", PurposeAuth, -time.Minute)
		require.NoError(t, err)

		_, err = ParseToken(token, PurposeAuth)
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, err := ParseToken("definitely.not.ajwt", PurposeAuth)
		require.ErrorIs(t, err, ErrTokenInvalid)
	})

	t.Run("rejects a token signed with another secret", func(t *testing.T) {
		token, err := MakeToken("user123", PurposeAuth, AuthTokenLifetime)
		require.NoError(t, err)

		viper.Set("jwt.secret", "different-secret")
		defer viper.Set("jwt.secret", "test-secret")

		_, err = ParseToken(token, PurposeAuth)
		require.ErrorIs(t, err, ErrTokenInvalid)
	})
}

func TestGenerateCode(t *testing.T) {
	t.Parallel()

	for n := 0; n < 50; n++ {
		code, err := GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, CodeDigits)

		for _, r := range code {
			require.True(t, r >= '0' && r <= '9')
		}
	}
}
