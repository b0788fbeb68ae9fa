package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"hostelcare/config"
)

// SendEmail sends an HTML email through the configured SMTP relay
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := config.AppConfig.SMTPHost
	smtpPort := config.AppConfig.SMTPPort

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Hostel Maintenance <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	return smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
}

// SendStatusUpdateEmail notifies a complaint owner that an admin moved
// their complaint to a new status
func SendStatusUpdateEmail(email, category, status string) error {
	subject := "Update on your maintenance complaint"

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif;">
				<p>Hello,</p>
				<p>Your <b>%s</b> complaint has been moved to status <b>%s</b>.</p>
				<p>You can review the details from your dashboard.</p>
				<p>— Hostel Maintenance Team</p>
			</body>
		</html>`, category, status)

	return SendEmail([]string{email}, subject, body)
}
