package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
	"time"
)

// SendBookingConfirmationEmail notifies the booker that their booking was
// approved. Best-effort: when SMTP env is not configured we only log.
func SendBookingConfirmationEmail(recipientEmail, recipientName, referenceCode, roomName string, start, end time.Time) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USERNAME")
	smtpPass := os.Getenv("SMTP_PASSWORD")
	fromName := os.Getenv("SMTP_FROM_NAME")

	if smtpUser == "" || smtpPass == "" || smtpHost == "" || smtpPort == "" {
		log.Printf("[MOCK EMAIL] booking confirmed to:%s ref:%s room:%s %s - %s",
			recipientEmail, referenceCode, roomName,
			start.Format("2006-01-02 15:04"), end.Format("15:04"))
		return nil
	}

	safe := func(s string) string {
		return strings.ReplaceAll(strings.TrimSpace(s), "\r\n", " ")
	}
	recipientName = safe(recipientName)
	roomName = safe(roomName)
	referenceCode = safe(referenceCode)

	from := fmt.Sprintf("%s <%s>", fromName, smtpUser)
	to := []string{recipientEmail}
	auth := smtp.PlainAuth("", smtpUser, smtpPass, smtpHost)
	addr := fmt.Sprintf("%s:%s", smtpHost, smtpPort)

	subject := fmt.Sprintf("Booking %s confirmed", referenceCode)
	body := fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your boardroom booking %s has been confirmed.\n"+
			"Room: %s\nDate: %s\nTime: %s - %s\n\n"+
			"If you need to change or cancel, please contact the office.\n",
		recipientName, referenceCode, roomName,
		start.Format("2006-01-02"),
		start.Format("15:04"), end.Format("15:04"),
	)

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("From: %s\r\n", from))
	sb.WriteString(fmt.Sprintf("To: %s\r\n", recipientEmail))
	sb.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	sb.WriteString("MIME-Version: 1.0\r\n")
	sb.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	sb.WriteString(body + "\r\n")

	if err := smtp.SendMail(addr, auth, smtpUser, to, []byte(sb.String())); err != nil {
		log.Printf("Failed to send confirmation email to %s: %v", recipientEmail, err)
		return err
	}

	log.Printf("Confirmation email sent to %s (ref %s)", recipientEmail, referenceCode)
	return nil
}
