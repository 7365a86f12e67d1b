package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// EmailConfig holds email configuration
type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func loadEmailConfig() EmailConfig {
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			port = n
		}
	}
	return EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     port,
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

// SendEmail sends an HTML email using SMTP
func SendEmail(to, subject, body string) error {
	config := loadEmailConfig()

	m := gomail.NewMessage()
	m.SetHeader("From", config.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(config.Host, config.Port, config.Username, config.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}

	return nil
}

// SendWelcomeEmail greets a newly registered member
func SendWelcomeEmail(to, firstName string) error {
	subject := "Welcome to HerVentures!"
	body := fmt.Sprintf(`
		<h2>Welcome, %s!</h2>
		<p>Your HerVentures account is ready. Explore the community, list your
		business, and check out our membership plans to unlock the full directory.</p>
		<p><a href="%s/plans">View membership plans</a></p>
	`, firstName, os.Getenv("FRONTEND_URL"))

	return SendEmail(to, subject, body)
}

// SendCommissionEarnedEmail notifies an ambassador about a new commission
func SendCommissionEarnedEmail(to string, amount float64) error {
	subject := "You earned a new commission"
	body := fmt.Sprintf(`
		<h2>Congratulations!</h2>
		<p>A member you referred just completed a membership purchase.</p>
		<h1 style="color: #9C27B0; font-size: 28px;">%.2f</h1>
		<p>The commission is now pending and will appear in your ambassador
		dashboard. Payouts are processed by our team at the end of each month.</p>
	`, amount)

	return SendEmail(to, subject, body)
}

// SendSubscriptionActiveEmail confirms an activated membership to a member
func SendSubscriptionActiveEmail(to, planName string) error {
	subject := "Your membership is active"
	body := fmt.Sprintf(`
		<h2>Payment received</h2>
		<p>Your <strong>%s</strong> membership is now active and your business
		listings are visible in the directory.</p>
		<p><a href="%s/dashboard">Go to your dashboard</a></p>
	`, planName, os.Getenv("FRONTEND_URL"))

	return SendEmail(to, subject, body)
}
