package validators

import (
	"errors"
	"unicode"
)

var (
	ErrPasswordEmpty     = errors.New("no password provided")
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong   = errors.New("password must be at most 20 characters long")
	ErrPasswordNoDigit   = errors.New("password must include a number")
	ErrPasswordNoSpecial = errors.New("password must include a special character")
)

func PasswordValidator(p string) error {
	if p == "" {
		return ErrPasswordEmpty
	}

	if len(p) < 8 {
		return ErrPasswordTooShort
	}

	if len(p) > 20 {
		return ErrPasswordTooLong
	}

	var hasDigit, hasSpecial bool
	for _, r := range p {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case !unicode.IsLetter(r):
			hasSpecial = true
		}
	}

	if !hasDigit {
		return ErrPasswordNoDigit
	}

	if !hasSpecial {
		return ErrPasswordNoSpecial
	}

	return nil
}
