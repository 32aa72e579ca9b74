package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail delivers a plain-text mail through the configured SMTP relay.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return fmt.Errorf("SMTP not configured")
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("FROM_ADDRESS"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USER"), os.Getenv("SMTP_PASS"))
	return d.DialAndSend(m)
}

// SendOrderConfirmation mails the buyer after a successful placement.
// Callers treat delivery as best-effort.
func SendOrderConfirmation(to string, orderID uint, total float64, accessToken string) error {
	subject := fmt.Sprintf("Your order #%d has been placed", orderID)
	body := fmt.Sprintf(
		"Thank you for your order!\n\nOrder ID: %d\nTotal: %.2f\n\nTrack your order any time: /orders/token/%s\n",
		orderID, total, accessToken,
	)
	return SendEmail(to, subject, body)
}

// SendOrderCancellation mails the buyer after a cancellation.
func SendOrderCancellation(to string, orderID uint, reason string) error {
	subject := fmt.Sprintf("Your order #%d has been cancelled", orderID)
	body := fmt.Sprintf("Order %d was cancelled.\nReason: %s\n", orderID, reason)
	return SendEmail(to, subject, body)
}
