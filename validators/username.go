package validators

import (
	"errors"
	"strings"
)

var (
	ErrUsernameEmpty    = errors.New("no username provided")
	ErrUsernameTooShort = errors.New("username must be at least 3 characters long")
	ErrUsernameTooLong  = errors.New("username must be at most 30 characters long")
)

// UsernameValidator checks and normalizes a username. The returned value
// is trimmed.
func UsernameValidator(u string) (string, error) {
	u = strings.TrimSpace(u)

	if u == "" {
		return "", ErrUsernameEmpty
	}

	if len(u) < 3 {
		return "", ErrUsernameTooShort
	}

	if len(u) > 30 {
		return "", ErrUsernameTooLong
	}

	return u, nil
}
