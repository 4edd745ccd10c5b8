// Package service contains background jobs and external collaborators
// used by the API handlers
package service

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
)

const (
	PurposeVerification   = "verification"
	PurposeAuthentication = "authentication"
	PurposeReset          = "password_reset"
)

// Mail is a structured outbound message. Code carries either a numeric
// verification code or, for password resets, the full reset link.
type Mail struct {
	To      string
	Name    string
	Purpose string
	Code    string
}

// Mailer delivers account mails. It is injected into the API so tests can
// swap it for a recorder.
type Mailer interface {
	Send(m *Mail) error
}

// SMTPMailer sends mail through the SMTP relay from the mail.* config keys.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTPMailer() *SMTPMailer {
	from := viper.GetString("mail.sender_address")

	return &SMTPMailer{
		from: from,
		dialer: gomail.NewDialer(
			viper.GetString("mail.host"),
			viper.GetInt("mail.port"),
			from,
			viper.GetString("mail.password"),
		),
	}
}

func (s *SMTPMailer) Send(m *Mail) error {
	if m.To == s.from {
		return errors.New("invalid email address")
	}

	subject, body := renderMail(m)

	msg := gomail.NewMessage()
	msg.SetHeader("From", s.from)
	msg.SetHeader("To", m.To)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	return s.dialer.DialAndSend(msg)
}

func renderMail(m *Mail) (subject, body string) {
	switch m.Purpose {
	case PurposeAuthentication:
		return "Your login code",
			fmt.Sprintf("Hi %v,<br><br>Your login code is <b>%v</b>.<br>It expires in 15 minutes.", m.Name, m.Code)
	case PurposeReset:
		return "Reset your password",
			fmt.Sprintf("Hi %v,<br><br>Click <a href='%v'>here</a> to choose a new password.<br>The link expires in 1 hour.", m.Name, m.Code)
	default:
		return "Verify your email address",
			fmt.Sprintf("Hi %v,<br><br>Your verification code is <b>%v</b>.<br>It expires in 30 minutes.", m.Name, m.Code)
	}
}
