package smtp

import (
	"fmt"
	smtpPkg "net/smtp"
	"os"
)

type ItfSmtp interface {
	SendInvite(partnerEmail string, inviterName string, code string) error
}

type smtp struct {
	auth smtpPkg.Auth
	mail string
}

func New() ItfSmtp {
	mail := os.Getenv("SMTP_MAIL")
	password := os.Getenv("SMTP_PASSWORD")
	auth := smtpPkg.PlainAuth("", mail, password, "smtp.gmail.com")

	return &smtp{auth: auth, mail: mail}
}

func (s *smtp) SendInvite(partnerEmail string, inviterName string, code string) error {
	to := []string{partnerEmail}

	message := []byte(fmt.Sprintf("To: %s\r\nSubject: You have been invited to OurLittleWorld\r\n\r\n%s wants to share their little world with you. Your invite code: %s\r\nThe code expires in 24 hours.",
		partnerEmail, inviterName, code))

	err := smtpPkg.SendMail("smtp.gmail.com:587", s.auth, s.mail, to, message)
	if err != nil {
		return err
	}

	return nil
}
