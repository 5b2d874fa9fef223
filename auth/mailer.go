package auth

import (
	"log"
	"net/smtp"
	"os"
)

// sendMail delivers via SMTP when configured. Without SMTP_* in the
// environment it logs the message instead, so OTP and reset flows stay
// usable in development.
func sendMail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	from := os.Getenv("SMTP_FROM")
	pass := os.Getenv("SMTP_PASSWORD")
	port := os.Getenv("SMTP_PORT")
	if port == "" {
		port = "587"
	}

	if host == "" || from == "" {
		log.Printf("mail (not configured) to=%s subject=%q body=%q", to, subject, body)
		return nil
	}

	msg := []byte("Subject: " + subject + "\r\n\r\n" + body)
	a := smtp.PlainAuth("", from, pass, host)
	return smtp.SendMail(host+":"+port, a, from, []string{to}, msg)
}
