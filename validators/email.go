// Package validators contains validators found throughout the application
// that have been abstracted away from the main code
package validators

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrEmailEmpty   = errors.New("no email address provided")
	ErrEmailInvalid = errors.New("invalid email address provided")
)

// EmailValidator checks and normalizes an email address. The returned
// address is trimmed and lower-cased, which is the form stored and
// compared everywhere else.
func EmailValidator(e string) (string, error) {
	e = strings.ToLower(strings.TrimSpace(e))

	if e == "" {
		return "", ErrEmailEmpty
	}

	if _, err := mail.ParseAddress(e); err != nil {
		return "", ErrEmailInvalid
	}

	return e, nil
}
