package utils

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

type EmailConfig struct {
	Host     string
	Port     string
	Username string
	Password string
	From     string
}

func GetEmailConfig() *EmailConfig {
	return &EmailConfig{
		Host:     os.Getenv("SMTP_HOST"),
		Port:     os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		From:     os.Getenv("SMTP_FROM"),
	}
}

func SendEmail(to, subject, htmlBody string) error {
	config := GetEmailConfig()
	if config.Host == "" || config.Port == "" || config.From == "" {
		return fmt.Errorf("SMTP not configured")
	}

	headers := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n",
		config.From, to, subject)
	msg := []byte(headers + htmlBody)

	var auth smtp.Auth
	if config.Username != "" && config.Password != "" {
		auth = smtp.PlainAuth("", config.Username, config.Password, config.Host)
	}

	addr := config.Host + ":" + config.Port
	return smtp.SendMail(addr, auth, config.From, []string{to}, msg)
}

func SendWelcomeEmail(email, name string) {
	go func() {
		subject := "Welcome to Storefront!"
		body := fmt.Sprintf(`<h2>Welcome, %s!</h2>
<p>Thank you for creating your account. You can now browse the catalog,
fill a cart and place orders.</p>
<p>Happy shopping!</p>`, firstWord(name))
		if err := SendEmail(email, subject, body); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}()
}

// SendOrderConfirmation emails the customer after an order is placed.
// Unlike the other mail helpers this runs on the caller's goroutine, so
// it can be used as an order_created subscriber that completes before
// the placing request returns.
func SendOrderConfirmation(email, name string, orderID uint, total float64) {
	subject := fmt.Sprintf("Order Confirmed - #%d", orderID)
	body := fmt.Sprintf(`<h2>Order Confirmed!</h2>
<p>Hi %s,</p>
<p>Your order <strong>#%d</strong> has been placed successfully.</p>
<p>Order total: <strong>%.2f</strong></p>
<p>We'll notify you when your payment status changes.</p>`, firstWord(name), orderID, total)
	if err := SendEmail(email, subject, body); err != nil {
		log.Printf("Failed to send order confirmation to %s: %v", email, err)
	}
}

func firstWord(name string) string {
	if name == "" {
		return "there"
	}
	return strings.Split(name, " ")[0]
}
