package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"strings"

	"github.com/Consistent-coder/QuizMaster/config"
)

// SendEmail delivers an HTML email through the configured SMTP account.
// Delivery failures are logged and swallowed; email is a side channel, not
// part of any request's success.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.EmailPassword

	if from == "" || password == "" {
		log.Println("Email sender not configured, skipping email:", subject)
		return nil
	}

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: QuizMaster <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email %q: %v", subject, err)
		return err
	}
	return nil
}

func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1E2A5E; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1E2A5E; line-height: 1.6; }
			.content h2 { color: #1E2A5E; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>QUIZMASTER</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 QuizMaster. Keep learning.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendWelcomeEmail greets a new user after signup.
func SendWelcomeEmail(email, name string) {
	subject := "Welcome to QuizMaster"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>Welcome to <strong>QuizMaster</strong>! Your account has been created.</p>
		<p>Browse the catalog, take a quiz and ask the review assistant about anything you got wrong.</p>
	`, name)

	SendEmail([]string{email}, subject, getEmailTemplate("Welcome aboard!", body))
}

// SendAttemptReminderEmail nudges a user about a quiz left unfinished.
func SendAttemptReminderEmail(email, name, quizName string) {
	subject := "You have an unfinished quiz on QuizMaster"
	body := fmt.Sprintf(`
		<p>Hi %s,</p>
		<p>You started <strong>%s</strong> but never submitted it.</p>
		<p>Your answers are saved right where you left them. Jump back in whenever you are ready.</p>
	`, name, quizName)

	SendEmail([]string{email}, subject, getEmailTemplate("Pick up where you left off", body))
}
